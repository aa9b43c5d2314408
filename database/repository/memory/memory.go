// Package memory implements the repository interfaces in process memory. It
// backs the service and handler tests and the DATABASE_URL=memory dev mode.
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"auracare/database/repository"
	"auracare/models"
)

// NewSet returns a Set whose repositories share nothing but live in memory.
func NewSet() *repository.Set {
	return &repository.Set{
		Users:        NewUserRepo(),
		Customers:    NewCustomerRepo(),
		Salons:       NewSalonRepo(),
		Staff:        NewStaffRepo(),
		Services:     NewServiceRepo(),
		Appointments: NewAppointmentRepo(),
		Schedules:    NewScheduleRequestRepo(),
		GiftCards:    NewGiftCardRepo(),
		Feedback:     NewFeedbackRepo(),
		Policies:     NewPolicyRepo(),
		Payrolls:     NewPayrollRepo(),
	}
}

var (
	_ repository.UserRepository               = (*UserRepo)(nil)
	_ repository.CustomerRepository           = (*CustomerRepo)(nil)
	_ repository.SalonRepository              = (*SalonRepo)(nil)
	_ repository.StaffRepository              = (*StaffRepo)(nil)
	_ repository.ServiceRepository            = (*ServiceRepo)(nil)
	_ repository.AppointmentRepository        = (*AppointmentRepo)(nil)
	_ repository.ScheduleRequestRepository    = (*ScheduleRequestRepo)(nil)
	_ repository.GiftCardRepository           = (*GiftCardRepo)(nil)
	_ repository.FeedbackRepository           = (*FeedbackRepo)(nil)
	_ repository.CancellationPolicyRepository = (*PolicyRepo)(nil)
	_ repository.PayrollRepository            = (*PayrollRepo)(nil)
)

// table is a mutex-guarded map of documents keyed by id. Values are stored
// and returned by copy so callers never alias stored state.
type table[T any] struct {
	mu   sync.RWMutex
	rows map[string]T
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[string]T)}
}

func (t *table[T]) get(id string) *T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	row, ok := t.rows[id]
	if !ok {
		return nil
	}
	return &row
}

func (t *table[T]) find(match func(*T) bool) *T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, row := range t.rows {
		if match(&row) {
			out := row
			return &out
		}
	}
	return nil
}

func (t *table[T]) filter(match func(*T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := []T{}
	for _, row := range t.rows {
		if match(&row) {
			out = append(out, row)
		}
	}
	return out
}

func (t *table[T]) insert(id string, row T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows[id] = row
}

func (t *table[T]) replace(id string, row T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return repository.ErrNotFound
	}
	t.rows[id] = row
	return nil
}

func (t *table[T]) remove(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(t.rows, id)
	return nil
}

// mutate applies fn to the row with id under the write lock.
func (t *table[T]) mutate(id string, fn func(*T) bool) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	row, ok := t.rows[id]
	if !ok {
		return false
	}
	if !fn(&row) {
		return false
	}
	t.rows[id] = row
	return true
}

func page[T any](items []T, q models.PageQuery) ([]T, int64) {
	total := int64(len(items))
	start := q.Skip()
	if start >= total {
		return []T{}, total
	}
	end := start + int64(q.Normalize().Limit)
	if end > total {
		end = total
	}
	return items[start:end], total
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func stamp(created, updated *time.Time) {
	now := time.Now()
	if created.IsZero() {
		*created = now
	}
	*updated = now
}

func sortNewest[T any](items []T, at func(*T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool { return at(&items[i]).After(at(&items[j])) })
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
