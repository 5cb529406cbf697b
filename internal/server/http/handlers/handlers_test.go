package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	domainErrors "github.com/velikanov/docflow/internal/domain/errors"
	"github.com/velikanov/docflow/internal/domain/model"
	"github.com/velikanov/docflow/internal/server/http/dto"
	"github.com/velikanov/docflow/internal/server/http/middleware"
	testhelpers "github.com/velikanov/docflow/internal/test"
	"github.com/velikanov/docflow/internal/usecase"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(t *testing.T, method, path, route string, handler gin.HandlerFunc, setup func(*gin.Context), body []byte) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, route, func(c *gin.Context) {
		if setup != nil {
			setup(c)
		}
		handler(c)
	})

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func asUser(id, role string) func(*gin.Context) {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDContextKey, id)
		c.Set(middleware.UserRoleContextKey, role)
	}
}

func TestCurrentUserID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := CurrentUserID(c); got != "" {
		t.Fatalf("expected empty id when not set, got %q", got)
	}

	c.Set(middleware.UserIDContextKey, "u-42")
	if got := CurrentUserID(c); got != "u-42" {
		t.Fatalf("expected u-42, got %q", got)
	}
}

func TestCurrentUserRole(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := CurrentUserRole(c); got != "" {
		t.Fatalf("expected empty role when not set, got %q", got)
	}

	c.Set(middleware.UserRoleContextKey, "manager")
	if got := CurrentUserRole(c); got != "manager" {
		t.Fatalf("expected manager, got %q", got)
	}
}

func TestAuthHandlerRegister(t *testing.T) {
	body, _ := json.Marshal(dto.AuthRequest{Login: "user", Password: "pass", Role: "manager"})
	handler := NewAuthHandler(&testhelpers.AuthFacadeStub{RegisterFn: func(ctx context.Context, login, password string, role model.Role) (string, error) {
		if login != "user" || password != "pass" || role != model.RoleManager {
			t.Fatalf("unexpected registration payload: %q %q %q", login, password, role)
		}
		return "session-token", nil
	}})
	resp := performRequest(t, http.MethodPost, "/register", "/register", handler.Register, nil, body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if got := resp.Header().Get("Authorization"); got != "Bearer session-token" {
		t.Fatalf("unexpected authorization header %q", got)
	}
	result := resp.Result()
	t.Cleanup(func() { _ = result.Body.Close() })
	found := false
	for _, cookie := range result.Cookies() {
		if cookie.Name == "docflow_token" && cookie.Value == "session-token" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected auth cookie named docflow_token")
	}
}

func TestAuthHandlerRegisterFailures(t *testing.T) {
	validBody, _ := json.Marshal(dto.AuthRequest{Login: "user", Password: "pass"})
	tests := []struct {
		name   string
		err    error
		body   []byte
		status int
	}{
		{name: "malformed body", body: []byte("{"), status: http.StatusBadRequest},
		{name: "invalid credentials", err: domainErrors.ErrInvalidCredentials, body: validBody, status: http.StatusBadRequest},
		{name: "duplicate login", err: domainErrors.ErrAlreadyExists, body: validBody, status: http.StatusConflict},
		{name: "internal error", err: errors.New("boom"), body: validBody, status: http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewAuthHandler(&testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string, model.Role) (string, error) {
				return "", tc.err
			}})
			resp := performRequest(t, http.MethodPost, "/register", "/register", handler.Register, nil, tc.body)
			if resp.Code != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, resp.Code)
			}
		})
	}
}

func TestAuthHandlerLogin(t *testing.T) {
	body, _ := json.Marshal(dto.AuthRequest{Login: "user", Password: "pass"})
	handler := NewAuthHandler(&testhelpers.AuthFacadeStub{})
	resp := performRequest(t, http.MethodPost, "/login", "/login", handler.Login, nil, body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if resp.Header().Get("Authorization") == "" {
		t.Fatal("expected auth header to be set")
	}
}

func TestAuthHandlerLoginFailures(t *testing.T) {
	validBody, _ := json.Marshal(dto.AuthRequest{Login: "user", Password: "wrong"})
	tests := []struct {
		name   string
		err    error
		body   []byte
		status int
	}{
		{name: "malformed body", body: []byte("{"), status: http.StatusBadRequest},
		{name: "wrong password", err: domainErrors.ErrInvalidCredentials, body: validBody, status: http.StatusUnauthorized},
		{name: "internal error", err: errors.New("boom"), body: validBody, status: http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewAuthHandler(&testhelpers.AuthFacadeStub{AuthenticateFn: func(context.Context, string, string) (string, error) {
				return "", tc.err
			}})
			resp := performRequest(t, http.MethodPost, "/login", "/login", handler.Login, nil, tc.body)
			if resp.Code != tc.status {
				t.Fatalf("expected status %d, got %d", tc.status, resp.Code)
			}
		})
	}
}

func TestDocumentHandlerCreate(t *testing.T) {
	session := "cart-1"
	body, _ := json.Marshal(dto.CreateDocumentRequest{
		Type:          "order",
		ClientID:      "c-1",
		Items:         []dto.ItemPayload{{ProductID: "p-1", Quantity: 2, UnitPrice: decimal.RequireFromString("10.50")}},
		TotalAmount:   decimal.RequireFromString("21.00"),
		CartSessionID: &session,
	})

	t.Run("created", func(t *testing.T) {
		handler := NewDocumentHandler(&testhelpers.DocumentFacadeStub{CreateDocumentFn: func(ctx context.Context, p usecase.CreateDocumentParams) (*model.Document, bool, error) {
			if p.Type != model.TypeOrder || p.ClientID != "c-1" {
				t.Fatalf("unexpected params: %+v", p)
			}
			if p.CartSessionID == nil || *p.CartSessionID != session {
				t.Fatal("expected cart session to be forwarded")
			}
			return &model.Document{ID: "o-1", Type: p.Type, Status: model.StatusNewPlanned, ClientID: p.ClientID}, true, nil
		}})
		resp := performRequest(t, http.MethodPost, "/documents", "/documents", handler.Create, nil, body)
		if resp.Code != http.StatusCreated {
			t.Fatalf("expected status 201, got %d", resp.Code)
		}
		var payload dto.DocumentResponse
		if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if payload.ID != "o-1" || payload.Status != "NEW_PLANNED" {
			t.Fatalf("unexpected payload: %+v", payload)
		}
	})

	t.Run("replayed session returns existing", func(t *testing.T) {
		handler := NewDocumentHandler(&testhelpers.DocumentFacadeStub{CreateDocumentFn: func(ctx context.Context, p usecase.CreateDocumentParams) (*model.Document, bool, error) {
			return &model.Document{ID: "o-1", Type: p.Type}, false, nil
		}})
		resp := performRequest(t, http.MethodPost, "/documents", "/documents", handler.Create, nil, body)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected status 200 for replay, got %d", resp.Code)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		handler := NewDocumentHandler(&testhelpers.DocumentFacadeStub{})
		resp := performRequest(t, http.MethodPost, "/documents", "/documents", handler.Create, nil, []byte("{"))
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", resp.Code)
		}
	})

	t.Run("validation failure", func(t *testing.T) {
		handler := NewDocumentHandler(&testhelpers.DocumentFacadeStub{CreateDocumentFn: func(context.Context, usecase.CreateDocumentParams) (*model.Document, bool, error) {
			return nil, false, domainErrors.Validation("client_id", "required")
		}})
		resp := performRequest(t, http.MethodPost, "/documents", "/documents", handler.Create, nil, body)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", resp.Code)
		}
	})

	t.Run("unknown parent", func(t *testing.T) {
		handler := NewDocumentHandler(&testhelpers.DocumentFacadeStub{CreateDocumentFn: func(context.Context, usecase.CreateDocumentParams) (*model.Document, bool, error) {
			return nil, false, domainErrors.ErrNotFound
		}})
		resp := performRequest(t, http.MethodPost, "/documents", "/documents", handler.Create, nil, body)
		if resp.Code != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", resp.Code)
		}
	})
}

func TestDocumentHandlerGet(t *testing.T) {
	handler := NewDocumentHandler(&testhelpers.DocumentFacadeStub{DocumentFn: func(ctx context.Context, id string) (*model.Document, error) {
		if id != "q-1" {
			return nil, domainErrors.ErrNotFound
		}
		return &model.Document{ID: "q-1", Type: model.TypeQuote, Number: "KP-1"}, nil
	}})

	resp := performRequest(t, http.MethodGet, "/documents/q-1", "/documents/:id", handler.Get, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodGet, "/documents/missing", "/documents/:id", handler.Get, nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestDocumentHandlerChangeStatus(t *testing.T) {
	body, _ := json.Marshal(dto.ChangeStatusRequest{Status: "PAID"})

	t.Run("success", func(t *testing.T) {
		handler := NewDocumentHandler(&testhelpers.DocumentFacadeStub{ChangeStatusFn: func(ctx context.Context, p usecase.ChangeStatusParams) (*model.Document, error) {
			if p.DocumentID != "o-1" || p.Status != model.StatusPaid {
				t.Fatalf("unexpected params: %+v", p)
			}
			return &model.Document{ID: p.DocumentID, Type: model.TypeOrder, Status: p.Status}, nil
		}})
		resp := performRequest(t, http.MethodPut, "/documents/o-1/status", "/documents/:id/status", handler.ChangeStatus, nil, body)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", resp.Code)
		}
	})

	t.Run("invalid transition", func(t *testing.T) {
		handler := NewDocumentHandler(&testhelpers.DocumentFacadeStub{ChangeStatusFn: func(context.Context, usecase.ChangeStatusParams) (*model.Document, error) {
			return nil, &domainErrors.InvalidTransitionError{DocumentType: "order", From: "COMPLETED", To: "PAID"}
		}})
		resp := performRequest(t, http.MethodPut, "/documents/o-1/status", "/documents/:id/status", handler.ChangeStatus, nil, body)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", resp.Code)
		}
	})

	t.Run("concurrent change", func(t *testing.T) {
		handler := NewDocumentHandler(&testhelpers.DocumentFacadeStub{ChangeStatusFn: func(context.Context, usecase.ChangeStatusParams) (*model.Document, error) {
			return nil, &domainErrors.ConflictError{DocumentID: "o-1", Expected: "NEW_PLANNED", Actual: "PAID"}
		}})
		resp := performRequest(t, http.MethodPut, "/documents/o-1/status", "/documents/:id/status", handler.ChangeStatus, nil, body)
		if resp.Code != http.StatusConflict {
			t.Fatalf("expected status 409, got %d", resp.Code)
		}
	})

	t.Run("missing document", func(t *testing.T) {
		handler := NewDocumentHandler(&testhelpers.DocumentFacadeStub{ChangeStatusFn: func(context.Context, usecase.ChangeStatusParams) (*model.Document, error) {
			return nil, domainErrors.ErrNotFound
		}})
		resp := performRequest(t, http.MethodPut, "/documents/o-1/status", "/documents/:id/status", handler.ChangeStatus, nil, body)
		if resp.Code != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", resp.Code)
		}
	})
}

func TestDocumentHandlerTransitions(t *testing.T) {
	handler := NewDocumentHandler(&testhelpers.DocumentFacadeStub{
		DocumentFn: func(ctx context.Context, id string) (*model.Document, error) {
			return &model.Document{ID: id, Type: model.TypeOrder, Status: model.StatusPaid}, nil
		},
		ValidTransitionsFn: func(ctx context.Context, documentID string) ([]model.Status, error) {
			return []model.Status{model.StatusUnderReview, model.StatusCancelled}, nil
		},
	})
	resp := performRequest(t, http.MethodGet, "/documents/o-1/transitions", "/documents/:id/transitions", handler.Transitions, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var payload dto.TransitionsResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Status != "PAID" {
		t.Fatalf("unexpected current status %q", payload.Status)
	}
	if len(payload.Transitions) != 2 || payload.Transitions[0] != "UNDER_REVIEW" {
		t.Fatalf("unexpected transitions: %v", payload.Transitions)
	}
}

func TestDocumentHandlerChildren(t *testing.T) {
	parent := "q-1"
	handler := NewDocumentHandler(&testhelpers.DocumentFacadeStub{ChildrenFn: func(ctx context.Context, documentID string) (*usecase.ChainResult, error) {
		return &usecase.ChainResult{
			Parent: &model.Document{ID: documentID, Type: model.TypeQuote},
			Children: []model.Document{
				{ID: "i-1", Type: model.TypeInvoice, ParentDocumentID: &parent},
				{ID: "o-1", Type: model.TypeOrder, ParentDocumentID: &parent},
			},
			Counts: model.ChildCounts{Invoices: 1, Orders: 1},
		}, nil
	}})
	resp := performRequest(t, http.MethodGet, "/documents/q-1/children", "/documents/:id/children", handler.Children, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var payload dto.ChildrenResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(payload.Children))
	}
	if payload.Counts.Total != 2 || payload.Counts.Invoices != 1 {
		t.Fatalf("unexpected counts: %+v", payload.Counts)
	}
}

func TestDocumentHandlerUpdateItems(t *testing.T) {
	body, _ := json.Marshal(dto.UpdateItemsRequest{Items: []dto.ItemPayload{{ProductID: "p-2", Quantity: 1, UnitPrice: decimal.RequireFromString("5.00")}}})

	t.Run("success", func(t *testing.T) {
		handler := NewDocumentHandler(&testhelpers.DocumentFacadeStub{UpdateItemsFn: func(ctx context.Context, id string, items []model.Item) (*model.Document, error) {
			if len(items) != 1 || items[0].ProductID != "p-2" {
				t.Fatalf("unexpected items: %+v", items)
			}
			return &model.Document{ID: id, Type: model.TypeQuote, Items: items}, nil
		}})
		resp := performRequest(t, http.MethodPut, "/documents/q-1/items", "/documents/:id/items", handler.UpdateItems, nil, body)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", resp.Code)
		}
	})

	t.Run("not editable", func(t *testing.T) {
		handler := NewDocumentHandler(&testhelpers.DocumentFacadeStub{UpdateItemsFn: func(context.Context, string, []model.Item) (*model.Document, error) {
			return nil, domainErrors.ErrNotEditable
		}})
		resp := performRequest(t, http.MethodPut, "/documents/o-1/items", "/documents/:id/items", handler.UpdateItems, nil, body)
		if resp.Code != http.StatusConflict {
			t.Fatalf("expected status 409, got %d", resp.Code)
		}
	})
}

func TestDocumentHandlerDelete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		handler := NewDocumentHandler(&testhelpers.DocumentFacadeStub{})
		resp := performRequest(t, http.MethodDelete, "/documents/q-1", "/documents/:id", handler.Delete, nil, nil)
		if resp.Code != http.StatusNoContent {
			t.Fatalf("expected status 204, got %d", resp.Code)
		}
	})

	t.Run("not deletable", func(t *testing.T) {
		handler := NewDocumentHandler(&testhelpers.DocumentFacadeStub{DeleteDocumentFn: func(context.Context, string) error {
			return domainErrors.ErrNotDeletable
		}})
		resp := performRequest(t, http.MethodDelete, "/documents/o-1", "/documents/:id", handler.Delete, nil, nil)
		if resp.Code != http.StatusConflict {
			t.Fatalf("expected status 409, got %d", resp.Code)
		}
	})
}

func TestDocumentHandlerAttachProject(t *testing.T) {
	body, _ := json.Marshal(dto.AttachProjectRequest{ProjectFileURL: "https://files.local/plan.pdf"})
	handler := NewDocumentHandler(&testhelpers.DocumentFacadeStub{AttachProjectFn: func(ctx context.Context, documentID, fileURL string) error {
		if documentID != "o-1" || fileURL != "https://files.local/plan.pdf" {
			t.Fatalf("unexpected attach call: %q %q", documentID, fileURL)
		}
		return nil
	}})
	resp := performRequest(t, http.MethodPut, "/documents/o-1/project", "/documents/:id/project", handler.AttachProject, nil, body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
}

func TestCommentHandlerAdd(t *testing.T) {
	body, _ := json.Marshal(dto.CommentRequest{Text: "call the client"})
	handler := NewCommentHandler(&testhelpers.CommentFacadeStub{AddCommentFn: func(ctx context.Context, documentID, authorID, text string) (*model.Comment, error) {
		if documentID != "o-1" || authorID != "u-7" || text != "call the client" {
			t.Fatalf("unexpected comment call: %q %q %q", documentID, authorID, text)
		}
		return &model.Comment{ID: "cm-1", DocumentID: documentID, AuthorID: authorID, Text: text}, nil
	}})
	resp := performRequest(t, http.MethodPost, "/documents/o-1/comments", "/documents/:id/comments", handler.Add, asUser("u-7", "manager"), body)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}
}

func TestCommentHandlerList(t *testing.T) {
	handler := NewCommentHandler(&testhelpers.CommentFacadeStub{CommentsFn: func(ctx context.Context, documentID string) ([]model.Comment, error) {
		return []model.Comment{{ID: "cm-1", DocumentID: documentID, Text: "first"}}, nil
	}})
	resp := performRequest(t, http.MethodGet, "/documents/o-1/comments", "/documents/:id/comments", handler.List, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	var payload []dto.CommentResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload) != 1 || payload[0].Text != "first" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestCommentHandlerHistory(t *testing.T) {
	body, _ := json.Marshal(dto.HistoryRequest{Field: "notes", OldValue: "", NewValue: "urgent"})
	handler := NewCommentHandler(&testhelpers.CommentFacadeStub{AppendHistoryFn: func(ctx context.Context, documentID, field, oldValue, newValue, changedBy string) (*model.HistoryEntry, error) {
		if field != "notes" || newValue != "urgent" || changedBy != "u-7" {
			t.Fatalf("unexpected history call: %q %q %q", field, newValue, changedBy)
		}
		return &model.HistoryEntry{ID: "h-1", DocumentID: documentID, Field: field, NewValue: newValue, ChangedBy: changedBy}, nil
	}})
	resp := performRequest(t, http.MethodPost, "/documents/o-1/history", "/documents/:id/history", handler.AppendHistory, asUser("u-7", "manager"), body)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.Code)
	}

	listHandler := NewCommentHandler(&testhelpers.CommentFacadeStub{HistoryFn: func(ctx context.Context, documentID string) ([]model.HistoryEntry, error) {
		return []model.HistoryEntry{{ID: "h-1", DocumentID: documentID, Field: "notes"}}, nil
	}})
	resp = performRequest(t, http.MethodGet, "/documents/o-1/history", "/documents/:id/history", listHandler.ListHistory, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
}

func TestNotificationHandlerList(t *testing.T) {
	t.Run("returns notifications", func(t *testing.T) {
		handler := NewNotificationHandler(&testhelpers.NotificationFacadeStub{NotificationsFn: func(ctx context.Context, recipientID string, unreadOnly bool) ([]model.Notification, error) {
			if recipientID != "u-7" {
				t.Fatalf("unexpected recipient %q", recipientID)
			}
			if unreadOnly {
				t.Fatal("expected unreadOnly to be false without query param")
			}
			return []model.Notification{{ID: "n-1", RecipientUserID: recipientID, Title: "Order paid"}}, nil
		}})
		resp := performRequest(t, http.MethodGet, "/notifications", "/notifications", handler.List, asUser("u-7", "manager"), nil)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", resp.Code)
		}
	})

	t.Run("unread filter", func(t *testing.T) {
		handler := NewNotificationHandler(&testhelpers.NotificationFacadeStub{NotificationsFn: func(ctx context.Context, recipientID string, unreadOnly bool) ([]model.Notification, error) {
			if !unreadOnly {
				t.Fatal("expected unreadOnly to be true")
			}
			return []model.Notification{{ID: "n-1"}}, nil
		}})
		resp := performRequest(t, http.MethodGet, "/notifications?unread=true", "/notifications", handler.List, asUser("u-7", "manager"), nil)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", resp.Code)
		}
	})

	t.Run("empty list", func(t *testing.T) {
		handler := NewNotificationHandler(&testhelpers.NotificationFacadeStub{})
		resp := performRequest(t, http.MethodGet, "/notifications", "/notifications", handler.List, asUser("u-7", "manager"), nil)
		if resp.Code != http.StatusNoContent {
			t.Fatalf("expected status 204, got %d", resp.Code)
		}
	})
}

func TestNotificationHandlerMarkRead(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		handler := NewNotificationHandler(&testhelpers.NotificationFacadeStub{MarkReadFn: func(ctx context.Context, id, recipientID string) error {
			if id != "n-1" || recipientID != "u-7" {
				t.Fatalf("unexpected mark read call: %q %q", id, recipientID)
			}
			return nil
		}})
		resp := performRequest(t, http.MethodPost, "/notifications/n-1/read", "/notifications/:id/read", handler.MarkRead, asUser("u-7", "manager"), nil)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", resp.Code)
		}
	})

	t.Run("foreign notification", func(t *testing.T) {
		handler := NewNotificationHandler(&testhelpers.NotificationFacadeStub{MarkReadFn: func(context.Context, string, string) error {
			return domainErrors.ErrNotFound
		}})
		resp := performRequest(t, http.MethodPost, "/notifications/n-9/read", "/notifications/:id/read", handler.MarkRead, asUser("u-7", "manager"), nil)
		if resp.Code != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", resp.Code)
		}
	})
}
