// Package store persists contact submissions.
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/byteik/site/internal/contact"
	"github.com/byteik/site/internal/errors"
)

// Backend names accepted by New.
const (
	BackendNotion = "notion"
	BackendDiskv  = "diskv"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Backends lists the accepted backend names.
func Backends() []string {
	return []string{BackendNotion, BackendDiskv, BackendSQLite, BackendMemory}
}

// Record is one stored submission.
type Record struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Form returns the submitted fields.
func (r Record) Form() contact.Form {
	return contact.Form{Name: r.Name, Email: r.Email, Message: r.Message}
}

// NewRecord stamps a form with a fresh id and the current time.
func NewRecord(form contact.Form) Record {
	return Record{
		ID:        uuid.NewString(),
		Name:      form.Name,
		Email:     form.Email,
		Message:   form.Message,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

// Store persists contact submissions.
type Store interface {
	Save(ctx context.Context, form contact.Form) (Record, error)
	Close() error
}

// Lister is implemented by stores that can read submissions back.
type Lister interface {
	List(ctx context.Context) ([]Record, error)
}

// Options selects and configures a backend.
type Options struct {
	Backend    string
	Dir        string
	SQLitePath string
	Notion     NotionOptions
}

// New opens the configured backend.
func New(opts Options) (Store, error) {
	switch opts.Backend {
	case BackendNotion:
		return NewNotionStore(opts.Notion, nil)
	case BackendDiskv:
		return NewDiskvStore(opts.Dir)
	case BackendSQLite:
		return NewSQLiteStore(opts.SQLitePath)
	case BackendMemory, "":
		return NewMemoryStore(), nil
	}
	return nil, errors.NewConfigError(errors.ErrCodeUnknownBackend,
		fmt.Sprintf("unknown contact backend %q", opts.Backend)).WithContext("backend", opts.Backend)
}

// Submitter adapts a store to the contact controller.
func Submitter(s Store) contact.Submitter {
	return contact.SubmitterFunc(func(ctx context.Context, form contact.Form) error {
		_, err := s.Save(ctx, form)
		return err
	})
}

// MemoryStore keeps submissions in memory.
type MemoryStore struct {
	mu      sync.Mutex
	records []Record
}

// NewMemoryStore creates an empty memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save implements Store.
func (m *MemoryStore) Save(ctx context.Context, form contact.Form) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, errors.NewStorageError(errors.ErrCodeStoreFailed, "save cancelled", err)
	}
	r := NewRecord(form)
	m.mu.Lock()
	m.records = append(m.records, r)
	m.mu.Unlock()
	return r, nil
}

// List implements Lister.
func (m *MemoryStore) List(ctx context.Context) ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Record, len(m.records))
	copy(out, m.records)
	return out, nil
}

// Close implements Store.
func (m *MemoryStore) Close() error { return nil }

func sortRecords(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].ID < records[j].ID
		}
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
}
