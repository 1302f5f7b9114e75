package mockapi

import (
	"errors"
	"strings"
	"sync"

	"rhystmorgan/clientDesk/internal/models"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New(`duplicate key value violates unique constraint "users_email_key"`)
)

// Repository is an in-memory stand-in for the backend's user table. Emails
// are unique, ids are assigned sequentially and never reused.
type Repository struct {
	mu      sync.RWMutex
	records []models.Record
	nextID  int64
}

func NewRepository(seed ...models.Record) *Repository {
	repo := &Repository{nextID: 1}
	for _, record := range seed {
		if record.ID >= repo.nextID {
			repo.nextID = record.ID + 1
		}
		repo.records = append(repo.records, record.Clone())
	}
	return repo
}

func (r *Repository) List() []models.Record {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Record, len(r.records))
	for i, record := range r.records {
		out[i] = record.Clone()
	}
	return out
}

func (r *Repository) Get(id int64) (models.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, record := range r.records {
		if record.ID == id {
			return record.Clone(), nil
		}
	}
	return models.Record{}, ErrNotFound
}

func (r *Repository) Create(record models.Record) (models.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.emailTaken(record.Email, 0) {
		return models.Record{}, ErrDuplicateEmail
	}

	record.ID = r.nextID
	r.nextID++
	r.records = append(r.records, record.Clone())
	return record, nil
}

func (r *Repository) Replace(record models.Record) (models.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.records {
		if r.records[i].ID == record.ID {
			if r.emailTaken(record.Email, record.ID) {
				return models.Record{}, ErrDuplicateEmail
			}
			r.records[i] = record.Clone()
			return record, nil
		}
	}
	return models.Record{}, ErrNotFound
}

func (r *Repository) Delete(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.records {
		if r.records[i].ID == id {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.records)
}

func (r *Repository) emailTaken(email string, exceptID int64) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	for _, existing := range r.records {
		if existing.ID != exceptID && strings.EqualFold(existing.Email, email) {
			return true
		}
	}
	return false
}
