package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/timeentry"
)

type timeEntryRepository struct {
	mu      sync.RWMutex
	entries map[string]timeentry.TimeEntry
	order   []string
	// (employee, date) -> id
	byDay map[dayKey]string
}

type dayKey struct {
	employeeID string
	date       string
}

func NewTimeEntryRepository() timeentry.TimeEntryRepository {
	return &timeEntryRepository{
		entries: make(map[string]timeentry.TimeEntry),
		byDay:   make(map[dayKey]string),
	}
}

// GetByID implements timeentry.TimeEntryRepository.
func (r *timeEntryRepository) GetByID(ctx context.Context, id string) (timeentry.TimeEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[id]
	if !ok {
		return timeentry.TimeEntry{}, timeentry.ErrTimeEntryNotFound
	}
	return e.Clone(), nil
}

// GetByEmployeeAndDate implements timeentry.TimeEntryRepository.
func (r *timeEntryRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date string) (*timeentry.TimeEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byDay[dayKey{employeeID, date}]
	if !ok {
		return nil, nil
	}
	e := r.entries[id].Clone()
	return &e, nil
}

// ListByDate implements timeentry.TimeEntryRepository.
func (r *timeEntryRepository) ListByDate(ctx context.Context, date string) ([]timeentry.TimeEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]timeentry.TimeEntry, 0)
	for _, id := range r.order {
		if e := r.entries[id]; e.Date == date {
			result = append(result, e.Clone())
		}
	}
	return result, nil
}

// List implements timeentry.TimeEntryRepository.
func (r *timeEntryRepository) List(ctx context.Context) ([]timeentry.TimeEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]timeentry.TimeEntry, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.entries[id].Clone())
	}
	return result, nil
}

// Save implements timeentry.TimeEntryRepository.
func (r *timeEntryRepository) Save(ctx context.Context, entry timeentry.TimeEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.put(entry)
	return nil
}

func (r *timeEntryRepository) put(entry timeentry.TimeEntry) {
	if old, ok := r.entries[entry.ID]; ok {
		key := dayKey{old.EmployeeID, old.Date}
		if r.byDay[key] == entry.ID {
			delete(r.byDay, key)
		}
	} else {
		r.order = append(r.order, entry.ID)
	}
	r.entries[entry.ID] = entry.Clone()
	r.byDay[dayKey{entry.EmployeeID, entry.Date}] = entry.ID
}

// Delete implements timeentry.TimeEntryRepository.
func (r *timeEntryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[id]; !ok {
		return timeentry.ErrTimeEntryNotFound
	}
	r.remove(id)
	return nil
}

func (r *timeEntryRepository) remove(id string) {
	e := r.entries[id]
	key := dayKey{e.EmployeeID, e.Date}
	if r.byDay[key] == id {
		delete(r.byDay, key)
	}
	delete(r.entries, id)
	r.order = slices.DeleteFunc(r.order, func(v string) bool { return v == id })
}

// DeleteByEmployee implements timeentry.TimeEntryRepository.
func (r *timeEntryRepository) DeleteByEmployee(ctx context.Context, employeeID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var ids []string
	for _, id := range r.order {
		if r.entries[id].EmployeeID == employeeID {
			ids = append(ids, id)
		}
	}
	for _, id := range ids {
		r.remove(id)
	}
	return len(ids), nil
}

// ReplaceAll implements timeentry.TimeEntryRepository.
func (r *timeEntryRepository) ReplaceAll(ctx context.Context, entries []timeentry.TimeEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = make(map[string]timeentry.TimeEntry, len(entries))
	r.byDay = make(map[dayKey]string, len(entries))
	r.order = r.order[:0]
	for _, e := range entries {
		r.put(e)
	}
	return nil
}
