package test

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/velikanov/docflow/internal/domain/model"
	pkgAuth "github.com/velikanov/docflow/internal/pkg/auth"
	"github.com/velikanov/docflow/internal/usecase"
)

// AuthFacadeStub fakes the authentication surface of the facade.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, string, string, model.Role) (string, error)
	AuthenticateFn func(context.Context, string, string) (string, error)
	ParseTokenFn   func(string) (pkgAuth.Claims, error)
}

// Register returns a static token unless overridden.
func (s *AuthFacadeStub) Register(ctx context.Context, login, password string, role model.Role) (string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, login, password, role)
	}
	return "token-" + login, nil
}

// Authenticate returns a static token unless overridden.
func (s *AuthFacadeStub) Authenticate(ctx context.Context, login, password string) (string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, login, password)
	}
	return "token-" + login, nil
}

// ParseToken returns fixed claims unless overridden.
func (s *AuthFacadeStub) ParseToken(token string) (pkgAuth.Claims, error) {
	if s.ParseTokenFn != nil {
		return s.ParseTokenFn(token)
	}
	return pkgAuth.Claims{UserID: "u-1", Role: "manager"}, nil
}

// DocumentFacadeStub fakes document operations for handler tests.
type DocumentFacadeStub struct {
	CreateDocumentFn   func(context.Context, usecase.CreateDocumentParams) (*model.Document, bool, error)
	DocumentFn         func(context.Context, string) (*model.Document, error)
	UpdateItemsFn      func(context.Context, string, []model.Item) (*model.Document, error)
	DeleteDocumentFn   func(context.Context, string) error
	ChangeStatusFn     func(context.Context, usecase.ChangeStatusParams) (*model.Document, error)
	ValidTransitionsFn func(context.Context, string) ([]model.Status, error)
	AttachProjectFn    func(context.Context, string, string) error
	ChildrenFn         func(context.Context, string) (*usecase.ChainResult, error)
}

func (s *DocumentFacadeStub) CreateDocument(ctx context.Context, p usecase.CreateDocumentParams) (*model.Document, bool, error) {
	if s.CreateDocumentFn != nil {
		return s.CreateDocumentFn(ctx, p)
	}
	return &model.Document{ID: "d-1", Type: p.Type, ClientID: p.ClientID}, true, nil
}

func (s *DocumentFacadeStub) Document(ctx context.Context, id string) (*model.Document, error) {
	if s.DocumentFn != nil {
		return s.DocumentFn(ctx, id)
	}
	return &model.Document{ID: id, Type: model.TypeQuote}, nil
}

func (s *DocumentFacadeStub) UpdateItems(ctx context.Context, id string, items []model.Item) (*model.Document, error) {
	if s.UpdateItemsFn != nil {
		return s.UpdateItemsFn(ctx, id, items)
	}
	return &model.Document{ID: id, Type: model.TypeQuote, Items: items}, nil
}

func (s *DocumentFacadeStub) DeleteDocument(ctx context.Context, id string) error {
	if s.DeleteDocumentFn != nil {
		return s.DeleteDocumentFn(ctx, id)
	}
	return nil
}

func (s *DocumentFacadeStub) ChangeStatus(ctx context.Context, p usecase.ChangeStatusParams) (*model.Document, error) {
	if s.ChangeStatusFn != nil {
		return s.ChangeStatusFn(ctx, p)
	}
	return &model.Document{ID: p.DocumentID, Type: model.TypeOrder, Status: p.Status}, nil
}

func (s *DocumentFacadeStub) ValidTransitions(ctx context.Context, documentID string) ([]model.Status, error) {
	if s.ValidTransitionsFn != nil {
		return s.ValidTransitionsFn(ctx, documentID)
	}
	return nil, nil
}

func (s *DocumentFacadeStub) AttachProject(ctx context.Context, documentID, fileURL string) error {
	if s.AttachProjectFn != nil {
		return s.AttachProjectFn(ctx, documentID, fileURL)
	}
	return nil
}

func (s *DocumentFacadeStub) Children(ctx context.Context, documentID string) (*usecase.ChainResult, error) {
	if s.ChildrenFn != nil {
		return s.ChildrenFn(ctx, documentID)
	}
	return &usecase.ChainResult{Parent: &model.Document{ID: documentID, Type: model.TypeQuote}}, nil
}

// CommentFacadeStub fakes comment and history operations.
type CommentFacadeStub struct {
	AddCommentFn    func(context.Context, string, string, string) (*model.Comment, error)
	CommentsFn      func(context.Context, string) ([]model.Comment, error)
	AppendHistoryFn func(context.Context, string, string, string, string, string) (*model.HistoryEntry, error)
	HistoryFn       func(context.Context, string) ([]model.HistoryEntry, error)
}

func (s *CommentFacadeStub) AddComment(ctx context.Context, documentID, authorID, text string) (*model.Comment, error) {
	if s.AddCommentFn != nil {
		return s.AddCommentFn(ctx, documentID, authorID, text)
	}
	return &model.Comment{ID: "cm-1", DocumentID: documentID, AuthorID: authorID, Text: text}, nil
}

func (s *CommentFacadeStub) Comments(ctx context.Context, documentID string) ([]model.Comment, error) {
	if s.CommentsFn != nil {
		return s.CommentsFn(ctx, documentID)
	}
	return nil, nil
}

func (s *CommentFacadeStub) AppendHistory(ctx context.Context, documentID, field, oldValue, newValue, changedBy string) (*model.HistoryEntry, error) {
	if s.AppendHistoryFn != nil {
		return s.AppendHistoryFn(ctx, documentID, field, oldValue, newValue, changedBy)
	}
	return &model.HistoryEntry{ID: "h-1", DocumentID: documentID, Field: field, OldValue: oldValue, NewValue: newValue, ChangedBy: changedBy}, nil
}

func (s *CommentFacadeStub) History(ctx context.Context, documentID string) ([]model.HistoryEntry, error) {
	if s.HistoryFn != nil {
		return s.HistoryFn(ctx, documentID)
	}
	return nil, nil
}

// NotificationFacadeStub fakes the notification surface.
type NotificationFacadeStub struct {
	NotificationsFn func(context.Context, string, bool) ([]model.Notification, error)
	MarkReadFn      func(context.Context, string, string) error
}

func (s *NotificationFacadeStub) Notifications(ctx context.Context, recipientID string, unreadOnly bool) ([]model.Notification, error) {
	if s.NotificationsFn != nil {
		return s.NotificationsFn(ctx, recipientID, unreadOnly)
	}
	return nil, nil
}

func (s *NotificationFacadeStub) MarkNotificationRead(ctx context.Context, id, recipientID string) error {
	if s.MarkReadFn != nil {
		return s.MarkReadFn(ctx, id, recipientID)
	}
	return nil
}

// DocflowFacadeStub aggregates all facade stubs into the full handler facade.
type DocflowFacadeStub struct {
	AuthFacadeStub
	DocumentFacadeStub
	CommentFacadeStub
	NotificationFacadeStub
}

// TokenParserStub satisfies the auth middleware contract.
type TokenParserStub struct {
	ParseFn func(string) (pkgAuth.Claims, error)
}

// ParseToken returns fixed claims unless overridden.
func (s *TokenParserStub) ParseToken(token string) (pkgAuth.Claims, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return pkgAuth.Claims{UserID: "u-1", Role: "manager"}, nil
}

// NotifierFacadeStub feeds the notification worker a scripted sequence of
// outbox batches and records dispatch outcomes. Safe for concurrent use.
type NotifierFacadeStub struct {
	DispatchFn func(context.Context, model.StatusEvent) error

	mu      sync.Mutex
	Batches [][]model.StatusEvent

	Dispatched []int64
	Failed     []int64

	fetchCalls atomic.Int64
}

// Enqueue appends a batch to be served by a later fetch.
func (s *NotifierFacadeStub) Enqueue(events ...model.StatusEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Batches = append(s.Batches, events)
}

// EventsForDispatch pops the next scripted batch, or nothing.
func (s *NotifierFacadeStub) EventsForDispatch(ctx context.Context, limit int) ([]model.StatusEvent, error) {
	s.fetchCalls.Add(1)
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Batches) == 0 {
		return nil, nil
	}
	batch := s.Batches[0]
	s.Batches = s.Batches[1:]
	if limit < len(batch) {
		batch = batch[:limit]
	}
	return batch, nil
}

// DispatchStatusEvent delegates to DispatchFn or succeeds.
func (s *NotifierFacadeStub) DispatchStatusEvent(ctx context.Context, event model.StatusEvent) error {
	if s.DispatchFn != nil {
		return s.DispatchFn(ctx, event)
	}
	return nil
}

// MarkEventDispatched records the event id.
func (s *NotifierFacadeStub) MarkEventDispatched(ctx context.Context, eventID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Dispatched = append(s.Dispatched, eventID)
	return nil
}

// MarkEventFailed records the event id.
func (s *NotifierFacadeStub) MarkEventFailed(ctx context.Context, eventID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Failed = append(s.Failed, eventID)
	return nil
}

// FetchCalls reports how many poll cycles the worker ran.
func (s *NotifierFacadeStub) FetchCalls() int64 {
	return s.fetchCalls.Load()
}

// DispatchedIDs returns a copy of recorded successful dispatches.
func (s *NotifierFacadeStub) DispatchedIDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int64, len(s.Dispatched))
	copy(out, s.Dispatched)
	return out
}

// FailedIDs returns a copy of recorded failed dispatches.
func (s *NotifierFacadeStub) FailedIDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int64, len(s.Failed))
	copy(out, s.Failed)
	return out
}
