package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ticketdesk/ticketdesk/backend/go-services/internal/audit"
	"github.com/ticketdesk/ticketdesk/backend/go-services/internal/ticket"
	"github.com/ticketdesk/ticketdesk/backend/go-services/internal/ticket/repository"
	"github.com/ticketdesk/ticketdesk/backend/go-services/pkg/logger"
	"github.com/ticketdesk/ticketdesk/backend/go-services/pkg/metrics"
)

var (
	ErrNotFound = errors.New("ticket not found")
)

const recordTimeout = 5 * time.Second

// Sample is the ticket every fresh collection starts with.
var Sample = ticket.CreateRequest{Title: "Sample ticket", Description: "This is a test ticket"}

// Service defines the ticket operations used by the handler layer.
type Service interface {
	List(ctx context.Context) ([]ticket.Ticket, error)
	Get(ctx context.Context, id int) (ticket.Ticket, error)
	Create(ctx context.Context, req ticket.CreateRequest) (ticket.Ticket, error)
	Update(ctx context.Context, id int, req ticket.UpdateRequest) (ticket.Ticket, error)
}

type Option func(*ticketService)

// WithRecorder sends create/update events to rec.
func WithRecorder(rec audit.Recorder) Option {
	return func(s *ticketService) {
		if rec != nil {
			s.recorder = rec
		}
	}
}

// WithSeed controls whether the sample ticket is inserted. Default true.
func WithSeed(seed bool) Option {
	return func(s *ticketService) { s.seed = seed }
}

// NewMemoryService returns a Service backed by a fresh in-memory repository.
func NewMemoryService(opts ...Option) Service {
	return NewService(repository.NewMemoryRepo(), opts...)
}

// NewService wraps repo. When seeding is enabled and repo is empty the sample
// ticket is inserted, so it always receives id 1.
func NewService(repo repository.Repository, opts ...Option) Service {
	s := &ticketService{repo: repo, recorder: audit.NopRecorder{}, seed: true}
	for _, o := range opts {
		o(s)
	}
	if s.seed && repo.Len() == 0 {
		if _, err := repo.Create(Sample); err != nil {
			logger.Errorf("failed to seed sample ticket: %v", err)
		}
	}
	metrics.Tickets.Set(float64(repo.Len()))
	return s
}

type ticketService struct {
	repo     repository.Repository
	recorder audit.Recorder
	seed     bool
}

func (s *ticketService) List(ctx context.Context) ([]ticket.Ticket, error) {
	return s.repo.List()
}

func (s *ticketService) Get(ctx context.Context, id int) (ticket.Ticket, error) {
	t, err := s.repo.Get(id)
	if err != nil {
		return ticket.Ticket{}, s.mapErr("get", id, err)
	}
	return t, nil
}

func (s *ticketService) Create(ctx context.Context, req ticket.CreateRequest) (ticket.Ticket, error) {
	t, err := s.repo.Create(req)
	if err != nil {
		return ticket.Ticket{}, fmt.Errorf("create ticket: %w", err)
	}
	metrics.TicketsCreated.Inc()
	metrics.Tickets.Set(float64(s.repo.Len()))
	logger.Debugf("ticket %d created", t.ID)
	s.record(ctx, audit.Event{TicketID: t.ID, Action: audit.ActionCreate, Ticket: t})
	return t, nil
}

func (s *ticketService) Update(ctx context.Context, id int, req ticket.UpdateRequest) (ticket.Ticket, error) {
	var changed []string
	t, err := s.repo.Update(id, func(t *ticket.Ticket) {
		changed = req.Apply(t)
	})
	if err != nil {
		return ticket.Ticket{}, s.mapErr("update", id, err)
	}
	if len(changed) == 0 {
		return t, nil
	}
	metrics.TicketsUpdated.Inc()
	logger.Debugf("ticket %d updated: %v", t.ID, changed)
	s.record(ctx, audit.Event{TicketID: t.ID, Action: audit.ActionUpdate, Changed: changed, Ticket: t})
	return t, nil
}

func (s *ticketService) mapErr(op string, id int, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		metrics.TicketNotFound.WithLabelValues(op).Inc()
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return fmt.Errorf("%s ticket %d: %w", op, id, err)
}

// record never fails the request; the collection is the source of truth.
func (s *ticketService) record(ctx context.Context, ev audit.Event) {
	ev.At = time.Now().UTC()
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()
	if err := s.recorder.Record(ctx, ev); err != nil {
		metrics.AuditFailures.Inc()
		logger.Warnf("audit: %v", err)
	}
}
