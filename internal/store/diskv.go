package store

import (
	"context"
	"encoding/json"

	"github.com/mitchellh/go-homedir"
	"github.com/peterbourgon/diskv/v3"

	"github.com/byteik/site/internal/contact"
	"github.com/byteik/site/internal/errors"
)

// DefaultDir is where local backends keep their files.
const DefaultDir = "~/.byteik/contact"

// DiskvStore writes one JSON file per submission, sharded by the first two
// characters of the record id.
type DiskvStore struct {
	d        *diskv.Diskv
	basePath string
}

// NewDiskvStore opens a store rooted at dir. A leading ~ is expanded.
func NewDiskvStore(dir string) (*DiskvStore, error) {
	if dir == "" {
		dir = DefaultDir
	}
	basePath, err := homedir.Expand(dir)
	if err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStoreFailed, "resolve contact store directory", err).
			WithContext("dir", dir)
	}

	return &DiskvStore{
		d: diskv.New(diskv.Options{
			BasePath:     basePath,
			Transform:    shard,
			CacheSizeMax: 1024 * 1024,
		}),
		basePath: basePath,
	}, nil
}

func shard(key string) []string {
	if len(key) < 2 {
		return []string{}
	}
	return []string{key[:2]}
}

// BasePath returns the resolved directory.
func (s *DiskvStore) BasePath() string {
	return s.basePath
}

// Save implements Store.
func (s *DiskvStore) Save(ctx context.Context, form contact.Form) (Record, error) {
	r := NewRecord(form)
	data, err := json.Marshal(r)
	if err != nil {
		return Record{}, errors.NewInternalError(errors.ErrCodeInternalError, "encode contact record", err)
	}
	if err := s.d.Write(r.ID, data); err != nil {
		return Record{}, errors.NewStorageError(errors.ErrCodeStoreFailed, "write contact record", err).
			WithContext("id", r.ID)
	}
	return r, nil
}

// List implements Lister. Records are returned oldest first; unreadable
// files are skipped.
func (s *DiskvStore) List(ctx context.Context) ([]Record, error) {
	var out []Record
	for key := range s.d.Keys(ctx.Done()) {
		data, err := s.d.Read(key)
		if err != nil {
			continue
		}
		var r Record
		if err := json.Unmarshal(data, &r); err != nil {
			continue
		}
		out = append(out, r)
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStoreFailed, "list contact records", err)
	}
	sortRecords(out)
	return out, nil
}

// Close implements Store.
func (s *DiskvStore) Close() error { return nil }
