package test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/velikanov/docflow/internal/domain/errors"
	"github.com/velikanov/docflow/internal/domain/model"
)

// DocumentRepositoryStub keeps documents in-memory and allows per-method
// overrides for failure scenarios. Safe for concurrent use, so the
// checkout race can be exercised with plain goroutines.
type DocumentRepositoryStub struct {
	CreateFn            func(context.Context, *model.Document) (*model.Document, bool, error)
	GetByIDFn           func(context.Context, string) (*model.Document, error)
	GetByTypeAndIDFn    func(context.Context, model.DocumentType, string) (*model.Document, error)
	FindByCartSessionFn func(context.Context, model.DocumentType, string) (*model.Document, error)
	ListChildrenFn      func(context.Context, string) ([]model.Document, error)
	UpdateStatusFn      func(context.Context, model.DocumentType, string, model.Status, model.Status, string) (*model.Document, error)
	UpdateItemsFn       func(context.Context, model.DocumentType, string, []model.Item, decimal.Decimal) (*model.Document, error)
	AttachProjectFileFn func(context.Context, string, string) error
	DeleteFn            func(context.Context, model.DocumentType, string) error

	mu     sync.Mutex
	Docs   map[string]*model.Document
	Events []model.StatusEvent
}

// NewDocumentRepositoryStub constructs stub repository with an initialized map.
func NewDocumentRepositoryStub() *DocumentRepositoryStub {
	return &DocumentRepositoryStub{Docs: make(map[string]*model.Document)}
}

// Add seeds a document.
func (s *DocumentRepositoryStub) Add(doc *model.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Docs == nil {
		s.Docs = make(map[string]*model.Document)
	}
	s.Docs[doc.ID] = doc
}

// Create stores the document unless its cart session already holds one of
// the same kind.
func (s *DocumentRepositoryStub) Create(ctx context.Context, doc *model.Document) (*model.Document, bool, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, doc)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if doc.CartSessionID != nil {
		if existing := s.findBySession(doc.Type, *doc.CartSessionID); existing != nil {
			return existing, false, nil
		}
	}
	stored := *doc
	now := time.Now()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	if s.Docs == nil {
		s.Docs = make(map[string]*model.Document)
	}
	s.Docs[stored.ID] = &stored
	return &stored, true, nil
}

// GetByID looks documents up across all kinds.
func (s *DocumentRepositoryStub) GetByID(ctx context.Context, id string) (*model.Document, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if doc, ok := s.Docs[id]; ok {
		return doc, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByTypeAndID looks a document up inside a single kind.
func (s *DocumentRepositoryStub) GetByTypeAndID(ctx context.Context, t model.DocumentType, id string) (*model.Document, error) {
	if s.GetByTypeAndIDFn != nil {
		return s.GetByTypeAndIDFn(ctx, t, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if doc, ok := s.Docs[id]; ok && doc.Type == t {
		return doc, nil
	}
	return nil, domainErrors.ErrNotFound
}

// FindByCartSession scans stored documents for a non-cancelled session match.
func (s *DocumentRepositoryStub) FindByCartSession(ctx context.Context, t model.DocumentType, sessionID string) (*model.Document, error) {
	if s.FindByCartSessionFn != nil {
		return s.FindByCartSessionFn(ctx, t, sessionID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if doc := s.findBySession(t, sessionID); doc != nil {
		return doc, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *DocumentRepositoryStub) findBySession(t model.DocumentType, sessionID string) *model.Document {
	for _, doc := range s.Docs {
		if doc.Type != t || doc.CartSessionID == nil || *doc.CartSessionID != sessionID {
			continue
		}
		if doc.Status == model.StatusCancelled {
			continue
		}
		return doc
	}
	return nil
}

// ListChildren returns direct children of the given parent.
func (s *DocumentRepositoryStub) ListChildren(ctx context.Context, parentID string) ([]model.Document, error) {
	if s.ListChildrenFn != nil {
		return s.ListChildrenFn(ctx, parentID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var children []model.Document
	for _, doc := range s.Docs {
		if doc.ParentDocumentID != nil && *doc.ParentDocumentID == parentID {
			children = append(children, *doc)
		}
	}
	return children, nil
}

// UpdateStatus performs the compare-and-swap against the stored document
// and records the would-be outbox event.
func (s *DocumentRepositoryStub) UpdateStatus(ctx context.Context, t model.DocumentType, id string, expected, next model.Status, notes string) (*model.Document, error) {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, t, id, expected, next, notes)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.Docs[id]
	if !ok || doc.Type != t {
		return nil, domainErrors.ErrNotFound
	}
	if doc.Status != expected {
		return nil, &domainErrors.ConflictError{DocumentID: id, Expected: string(expected), Actual: string(doc.Status)}
	}
	doc.Status = next
	if notes != "" {
		doc.Notes = notes
	}
	doc.UpdatedAt = time.Now()
	s.Events = append(s.Events, model.StatusEvent{
		ID:           int64(len(s.Events) + 1),
		DocumentID:   doc.ID,
		DocumentType: doc.Type,
		Number:       doc.Number,
		OldStatus:    expected,
		NewStatus:    next,
		ClientID:     doc.ClientID,
		State:        model.EventPending,
	})
	return doc, nil
}

// UpdateItems replaces line items and the total.
func (s *DocumentRepositoryStub) UpdateItems(ctx context.Context, t model.DocumentType, id string, items []model.Item, total decimal.Decimal) (*model.Document, error) {
	if s.UpdateItemsFn != nil {
		return s.UpdateItemsFn(ctx, t, id, items, total)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.Docs[id]
	if !ok || doc.Type != t {
		return nil, domainErrors.ErrNotFound
	}
	doc.Items = items
	doc.TotalAmount = total
	doc.UpdatedAt = time.Now()
	return doc, nil
}

// AttachProjectFile stores the artifact reference.
func (s *DocumentRepositoryStub) AttachProjectFile(ctx context.Context, id string, fileURL string) error {
	if s.AttachProjectFileFn != nil {
		return s.AttachProjectFileFn(ctx, id, fileURL)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.Docs[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	doc.ProjectFileURL = &fileURL
	return nil
}

// Delete removes the document.
func (s *DocumentRepositoryStub) Delete(ctx context.Context, t model.DocumentType, id string) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, t, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.Docs[id]
	if !ok || doc.Type != t {
		return domainErrors.ErrNotFound
	}
	delete(s.Docs, id)
	return nil
}

// NotificationRepositoryStub records notifications and enforces the dedup
// window the way the real storage does.
type NotificationRepositoryStub struct {
	CreateFn   func(context.Context, *model.Notification, time.Duration) (*model.Notification, bool, error)
	ListFn     func(context.Context, string, bool) ([]model.Notification, error)
	MarkReadFn func(context.Context, string, string) error

	Created []model.Notification
}

// Create returns a recent duplicate when one exists within the window.
func (s *NotificationRepositoryStub) Create(ctx context.Context, n *model.Notification, window time.Duration) (*model.Notification, bool, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, n, window)
	}
	cutoff := time.Now().Add(-window)
	for i := range s.Created {
		existing := &s.Created[i]
		if existing.RecipientUserID == n.RecipientUserID &&
			existing.RelatedDocumentID == n.RelatedDocumentID &&
			existing.Type == n.Type &&
			existing.CreatedAt.After(cutoff) {
			return existing, false, nil
		}
	}
	stored := *n
	stored.CreatedAt = time.Now()
	s.Created = append(s.Created, stored)
	return &stored, true, nil
}

// ListByRecipient returns stored notifications for the recipient.
func (s *NotificationRepositoryStub) ListByRecipient(ctx context.Context, recipientID string, unreadOnly bool) ([]model.Notification, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, recipientID, unreadOnly)
	}
	var result []model.Notification
	for _, n := range s.Created {
		if n.RecipientUserID != recipientID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		result = append(result, n)
	}
	return result, nil
}

// MarkRead flags a stored notification.
func (s *NotificationRepositoryStub) MarkRead(ctx context.Context, id, recipientID string) error {
	if s.MarkReadFn != nil {
		return s.MarkReadFn(ctx, id, recipientID)
	}
	for i := range s.Created {
		if s.Created[i].ID == id && s.Created[i].RecipientUserID == recipientID {
			s.Created[i].IsRead = true
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

// StatusEventRepositoryStub serves a queue of outbox batches.
type StatusEventRepositoryStub struct {
	SelectFn     func(context.Context, int) ([]model.StatusEvent, error)
	DispatchedFn func(context.Context, int64) error
	FailedFn     func(context.Context, int64, int) error

	Pending    []model.StatusEvent
	Dispatched []int64
	Failed     []int64
}

// SelectBatchForDispatch drains up to limit pending events.
func (s *StatusEventRepositoryStub) SelectBatchForDispatch(ctx context.Context, limit int) ([]model.StatusEvent, error) {
	if s.SelectFn != nil {
		return s.SelectFn(ctx, limit)
	}
	if len(s.Pending) == 0 {
		return nil, nil
	}
	if limit > len(s.Pending) {
		limit = len(s.Pending)
	}
	batch := s.Pending[:limit]
	s.Pending = s.Pending[limit:]
	return batch, nil
}

// MarkDispatched records the event id.
func (s *StatusEventRepositoryStub) MarkDispatched(ctx context.Context, eventID int64) error {
	if s.DispatchedFn != nil {
		return s.DispatchedFn(ctx, eventID)
	}
	s.Dispatched = append(s.Dispatched, eventID)
	return nil
}

// MarkFailed records the event id.
func (s *StatusEventRepositoryStub) MarkFailed(ctx context.Context, eventID int64, maxAttempts int) error {
	if s.FailedFn != nil {
		return s.FailedFn(ctx, eventID, maxAttempts)
	}
	s.Failed = append(s.Failed, eventID)
	return nil
}

// UserRepositoryStub stores accounts in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[string]*model.User
	Next  int
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[string]*model.User),
		Next:  1,
	}
}

// Create registers a user unless the login is taken.
func (s *UserRepositoryStub) Create(ctx context.Context, login, passwordHash string, role model.Role) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[string]*model.User)
	}
	if _, exists := s.Users[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{
		ID:           fmt.Sprintf("u-%d", s.Next),
		Login:        login,
		PasswordHash: passwordHash,
		Role:         role,
		Active:       true,
		CreatedAt:    time.Now(),
	}
	s.Next++
	s.Users[login] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByLogin fetches user by login or returns not found.
func (s *UserRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[login]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListActiveByRole returns active accounts of the requested role in
// insertion order.
func (s *UserRepositoryStub) ListActiveByRole(ctx context.Context, role model.Role) ([]model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.User
	for i := 1; i < s.Next; i++ {
		user, ok := s.ByID[fmt.Sprintf("u-%d", i)]
		if !ok {
			continue
		}
		if user.Role == role && user.Active {
			result = append(result, *user)
		}
	}
	return result, nil
}

// ClientRepositoryStub stores customers in-memory for tests.
type ClientRepositoryStub struct {
	Clients map[string]*model.Client
	Next    int
	Err     error
}

// NewClientRepositoryStub constructs stub repository with an initialized map.
func NewClientRepositoryStub() *ClientRepositoryStub {
	return &ClientRepositoryStub{Clients: make(map[string]*model.Client), Next: 1}
}

// Add seeds a client and returns its id.
func (s *ClientRepositoryStub) Add(name string) string {
	if s.Clients == nil {
		s.Clients = make(map[string]*model.Client)
	}
	if s.Next == 0 {
		s.Next = 1
	}
	id := fmt.Sprintf("c-%d", s.Next)
	s.Next++
	s.Clients[id] = &model.Client{ID: id, Name: name, CreatedAt: time.Now()}
	return id
}

// Create registers a customer record.
func (s *ClientRepositoryStub) Create(ctx context.Context, name, email, phone string) (*model.Client, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	id := s.Add(name)
	client := s.Clients[id]
	client.Email = email
	client.Phone = phone
	return client, nil
}

// GetByID fetches client by identifier or returns not found.
func (s *ClientRepositoryStub) GetByID(ctx context.Context, id string) (*model.Client, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if client, ok := s.Clients[id]; ok {
		return client, nil
	}
	return nil, domainErrors.ErrNotFound
}

// CommentRepositoryStub stores comments for tests.
type CommentRepositoryStub struct {
	CreateFn func(context.Context, *model.Comment) (*model.Comment, error)
	ListFn   func(context.Context, string) ([]model.Comment, error)

	Comments []model.Comment
}

// Create stores the comment.
func (s *CommentRepositoryStub) Create(ctx context.Context, c *model.Comment) (*model.Comment, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, c)
	}
	stored := *c
	stored.CreatedAt = time.Now()
	s.Comments = append(s.Comments, stored)
	return &stored, nil
}

// ListByDocument returns stored comments for the document.
func (s *CommentRepositoryStub) ListByDocument(ctx context.Context, documentID string) ([]model.Comment, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, documentID)
	}
	var result []model.Comment
	for _, c := range s.Comments {
		if c.DocumentID == documentID {
			result = append(result, c)
		}
	}
	return result, nil
}

// HistoryRepositoryStub stores audit trail entries for tests.
type HistoryRepositoryStub struct {
	AppendFn func(context.Context, *model.HistoryEntry) (*model.HistoryEntry, error)
	ListFn   func(context.Context, string) ([]model.HistoryEntry, error)

	Entries []model.HistoryEntry
}

// Append stores the entry.
func (s *HistoryRepositoryStub) Append(ctx context.Context, e *model.HistoryEntry) (*model.HistoryEntry, error) {
	if s.AppendFn != nil {
		return s.AppendFn(ctx, e)
	}
	stored := *e
	stored.CreatedAt = time.Now()
	s.Entries = append(s.Entries, stored)
	return &stored, nil
}

// ListByDocument returns stored entries for the document.
func (s *HistoryRepositoryStub) ListByDocument(ctx context.Context, documentID string) ([]model.HistoryEntry, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, documentID)
	}
	var result []model.HistoryEntry
	for _, e := range s.Entries {
		if e.DocumentID == documentID {
			result = append(result, e)
		}
	}
	return result, nil
}
