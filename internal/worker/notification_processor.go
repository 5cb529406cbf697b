package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/velikanov/docflow/internal/domain/model"
)

// NotifierFacade exposes the subset of application functionality required by the worker.
type NotifierFacade interface {
	EventsForDispatch(ctx context.Context, limit int) ([]model.StatusEvent, error)
	DispatchStatusEvent(ctx context.Context, event model.StatusEvent) error
	MarkEventDispatched(ctx context.Context, eventID int64) error
	MarkEventFailed(ctx context.Context, eventID int64) error
}

// NotificationProcessor drains the status event outbox and fans events out
// to notifications concurrently.
type NotificationProcessor struct {
	facade       NotifierFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.StatusEvent
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewNotificationProcessor constructs the outbox worker pool.
func NewNotificationProcessor(facade NotifierFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *NotificationProcessor {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &NotificationProcessor{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.StatusEvent, batchSize*workers),
	}
}

// Start launches background processing.
func (p *NotificationProcessor) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx)
	}

	p.wg.Add(1)
	go p.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (p *NotificationProcessor) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *NotificationProcessor) dispatch(ctx context.Context) {
	defer p.wg.Done()
	defer close(p.jobs)
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetchAndDispatch(ctx)
		}
	}
}

func (p *NotificationProcessor) fetchAndDispatch(ctx context.Context) {
	events, err := p.facade.EventsForDispatch(ctx, p.batchSize)
	if err != nil {
		p.logger.Error("fetch status events failed", slog.String("error", err.Error()))
		return
	}
	for _, event := range events {
		select {
		case <-ctx.Done():
			return
		case p.jobs <- event:
		}
	}
}

func (p *NotificationProcessor) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-p.jobs:
			if !ok {
				return
			}
			p.handleEvent(ctx, event)
		}
	}
}

func (p *NotificationProcessor) handleEvent(ctx context.Context, event model.StatusEvent) {
	if err := p.facade.DispatchStatusEvent(ctx, event); err != nil {
		p.logger.Error("dispatch status event failed",
			slog.Int64("event_id", event.ID),
			slog.String("document", event.DocumentID),
			slog.String("error", err.Error()),
		)
		if err := p.facade.MarkEventFailed(ctx, event.ID); err != nil {
			p.logger.Error("mark event failed errored", slog.Int64("event_id", event.ID), slog.String("error", err.Error()))
		}
		return
	}

	if err := p.facade.MarkEventDispatched(ctx, event.ID); err != nil {
		p.logger.Error("mark event dispatched errored", slog.Int64("event_id", event.ID), slog.String("error", err.Error()))
	}
}
