package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ticketdesk/ticketdesk/backend/go-services/internal/audit"
	"github.com/ticketdesk/ticketdesk/backend/go-services/internal/ticket"
	"github.com/ticketdesk/ticketdesk/backend/go-services/internal/ticket/repository"
	"github.com/ticketdesk/ticketdesk/backend/go-services/pkg/metrics"
)

// fake recorder for testing
type fakeRecorder struct {
	mu     sync.Mutex
	events []audit.Event
	err    error
}

func (f *fakeRecorder) Record(ctx context.Context, ev audit.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
	return f.err
}

func strPtr(s string) *string { return &s }

func TestNewMemoryService_Seeded(t *testing.T) {
	svc := NewMemoryService()
	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Equal(t, []ticket.Ticket{{ID: 1, Title: "Sample ticket", Description: "This is a test ticket", Status: "open"}}, list)
}

func TestNewMemoryService_WithoutSeed(t *testing.T) {
	svc := NewMemoryService(WithSeed(false))
	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestNewService_DoesNotReseedPopulatedRepo(t *testing.T) {
	repo := repository.NewMemoryRepo()
	_, err := repo.Create(ticket.CreateRequest{Title: "existing"})
	require.NoError(t, err)

	svc := NewService(repo)
	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "existing", list[0].Title)
}

func TestCreate_ForcesOpenAndSizeBasedID(t *testing.T) {
	ctx := context.Background()
	svc := NewMemoryService()

	before, _ := svc.List(ctx)
	created, err := svc.Create(ctx, ticket.CreateRequest{Title: "Bug", Description: "Crash on save"})
	require.NoError(t, err)
	assert.Equal(t, ticket.Ticket{ID: len(before) + 1, Title: "Bug", Description: "Crash on save", Status: "open"}, created)

	created2, err := svc.Create(ctx, ticket.CreateRequest{Title: "", Description: ""})
	require.NoError(t, err)
	assert.Equal(t, 3, created2.ID)
	assert.Equal(t, ticket.StatusOpen, created2.Status)
}

func TestGet_IdempotentAndNotFound(t *testing.T) {
	ctx := context.Background()
	svc := NewMemoryService()

	a, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	b, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	notFoundBefore := testutil.ToFloat64(metrics.TicketNotFound.WithLabelValues("get"))
	for _, id := range []int{0, -1, 2, 99} {
		_, err := svc.Get(ctx, id)
		require.ErrorIs(t, err, ErrNotFound)
	}
	assert.Equal(t, notFoundBefore+4, testutil.ToFloat64(metrics.TicketNotFound.WithLabelValues("get")))
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("status only", func(t *testing.T) {
		svc := NewMemoryService()
		got, err := svc.Update(ctx, 1, ticket.UpdateRequest{Status: strPtr("closed")})
		require.NoError(t, err)
		assert.Equal(t, ticket.Ticket{ID: 1, Title: "Sample ticket", Description: "This is a test ticket", Status: "closed"}, got)

		again, err := svc.Get(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, got, again)
	})

	t.Run("empty payload is a no-op", func(t *testing.T) {
		svc := NewMemoryService()
		before, _ := svc.Get(ctx, 1)
		got, err := svc.Update(ctx, 1, ticket.UpdateRequest{})
		require.NoError(t, err)
		assert.Equal(t, before, got)
	})

	t.Run("empty string leaves field unchanged", func(t *testing.T) {
		svc := NewMemoryService()
		got, err := svc.Update(ctx, 1, ticket.UpdateRequest{Title: strPtr("")})
		require.NoError(t, err)
		assert.Equal(t, "Sample ticket", got.Title)
	})

	t.Run("unknown id", func(t *testing.T) {
		svc := NewMemoryService()
		_, err := svc.Update(ctx, 99, ticket.UpdateRequest{Status: strPtr("closed")})
		require.True(t, errors.Is(err, ErrNotFound))
	})
}

func TestAuditEvents(t *testing.T) {
	ctx := context.Background()
	rec := &fakeRecorder{}
	svc := NewMemoryService(WithRecorder(rec))

	_, err := svc.Create(ctx, ticket.CreateRequest{Title: "Bug", Description: "Crash on save"})
	require.NoError(t, err)
	_, err = svc.Update(ctx, 2, ticket.UpdateRequest{Status: strPtr("closed"), Title: strPtr("")})
	require.NoError(t, err)
	// nothing changed, nothing recorded
	_, err = svc.Update(ctx, 2, ticket.UpdateRequest{})
	require.NoError(t, err)

	require.Len(t, rec.events, 2)
	assert.Equal(t, audit.ActionCreate, rec.events[0].Action)
	assert.Equal(t, 2, rec.events[0].TicketID)
	assert.Equal(t, audit.ActionUpdate, rec.events[1].Action)
	assert.Equal(t, []string{"status"}, rec.events[1].Changed)
	assert.Equal(t, "closed", rec.events[1].Ticket.Status)
	assert.False(t, rec.events[1].At.IsZero())
}

func TestAuditFailureDoesNotFailRequest(t *testing.T) {
	ctx := context.Background()
	rec := &fakeRecorder{err: errors.New("mongo down")}
	svc := NewMemoryService(WithRecorder(rec))

	before := testutil.ToFloat64(metrics.AuditFailures)
	created, err := svc.Create(ctx, ticket.CreateRequest{Title: "Bug", Description: "x"})
	require.NoError(t, err)
	assert.Equal(t, 2, created.ID)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.AuditFailures))
}
