package repository

import (
	"errors"
	"sync"

	"github.com/ticketdesk/ticketdesk/backend/go-services/internal/ticket"
)

var (
	ErrNotFound = errors.New("ticket not found")
)

// Repository is the storage contract of the ticket service.
type Repository interface {
	List() ([]ticket.Ticket, error)
	Get(id int) (ticket.Ticket, error)
	Create(req ticket.CreateRequest) (ticket.Ticket, error)
	Update(id int, mutate func(*ticket.Ticket)) (ticket.Ticket, error)
	Len() int
}

// MemoryRepo keeps tickets in insertion order in process memory. Nothing
// survives a restart. All reads return copies, so callers never alias the
// stored tickets.
type MemoryRepo struct {
	mu      sync.RWMutex
	tickets []*ticket.Ticket
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{tickets: make([]*ticket.Ticket, 0, 8)}
}

func (m *MemoryRepo) List() ([]ticket.Ticket, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]ticket.Ticket, 0, len(m.tickets))
	for _, t := range m.tickets {
		out = append(out, *t)
	}
	return out, nil
}

func (m *MemoryRepo) Get(id int) (ticket.Ticket, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t := m.find(id)
	if t == nil {
		return ticket.Ticket{}, ErrNotFound
	}
	return *t, nil
}

// Create appends a new open ticket. The id is the collection size plus one,
// taken under the write lock so concurrent creates never share an id.
func (m *MemoryRepo) Create(req ticket.CreateRequest) (ticket.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &ticket.Ticket{
		ID:          len(m.tickets) + 1,
		Title:       req.Title,
		Description: req.Description,
		Status:      ticket.StatusOpen,
	}
	m.tickets = append(m.tickets, t)
	return *t, nil
}

// Update runs mutate on the stored ticket in place and returns the result.
func (m *MemoryRepo) Update(id int, mutate func(*ticket.Ticket)) (ticket.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := m.find(id)
	if t == nil {
		return ticket.Ticket{}, ErrNotFound
	}
	if mutate != nil {
		mutate(t)
	}
	return *t, nil
}

func (m *MemoryRepo) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.tickets)
}

// find returns the first ticket with the given id. Callers hold mu.
func (m *MemoryRepo) find(id int) *ticket.Ticket {
	for _, t := range m.tickets {
		if t.ID == id {
			return t
		}
	}
	return nil
}
