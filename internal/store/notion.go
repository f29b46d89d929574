package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/byteik/site/internal/contact"
	"github.com/byteik/site/internal/errors"
)

// Notion API defaults.
const (
	DefaultNotionBaseURL = "https://api.notion.com"
	DefaultNotionVersion = "2022-06-28"
)

// NotionOptions configures the Notion backend.
type NotionOptions struct {
	Token      string
	DatabaseID string
	BaseURL    string
	Version    string
}

// NotionStore creates one database page per submission with the properties
// Name (title), Email (email) and Message (rich_text).
type NotionStore struct {
	opts   NotionOptions
	client *http.Client
}

// NewNotionStore validates opts and returns a store. A nil client gets a
// default with a 15 second timeout.
func NewNotionStore(opts NotionOptions, client *http.Client) (*NotionStore, error) {
	if opts.Token == "" {
		return nil, errors.NewConfigError(errors.ErrCodeConfigInvalid, "notion token is required")
	}
	if opts.DatabaseID == "" {
		return nil, errors.NewConfigError(errors.ErrCodeConfigInvalid, "notion database id is required")
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultNotionBaseURL
	}
	if opts.Version == "" {
		opts.Version = DefaultNotionVersion
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &NotionStore{opts: opts, client: client}, nil
}

type notionText struct {
	Text struct {
		Content string `json:"content"`
	} `json:"text"`
}

func richText(s string) []notionText {
	var t notionText
	t.Text.Content = s
	return []notionText{t}
}

type notionPage struct {
	Parent struct {
		DatabaseID string `json:"database_id"`
	} `json:"parent"`
	Properties struct {
		Name struct {
			Title []notionText `json:"title"`
		} `json:"Name"`
		Email struct {
			Email string `json:"email"`
		} `json:"Email"`
		Message struct {
			RichText []notionText `json:"rich_text"`
		} `json:"Message"`
	} `json:"properties"`
}

type notionCreated struct {
	ID string `json:"id"`
}

type notionError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func pageFor(databaseID string, form contact.Form) notionPage {
	var p notionPage
	p.Parent.DatabaseID = databaseID
	p.Properties.Name.Title = richText(form.Name)
	p.Properties.Email.Email = form.Email
	p.Properties.Message.RichText = richText(form.Message)
	return p
}

// Save implements Store. The returned record carries the Notion page id.
func (s *NotionStore) Save(ctx context.Context, form contact.Form) (Record, error) {
	body, err := json.Marshal(pageFor(s.opts.DatabaseID, form))
	if err != nil {
		return Record{}, errors.NewInternalError(errors.ErrCodeInternalError, "encode notion page", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.opts.BaseURL+"/v1/pages", bytes.NewReader(body))
	if err != nil {
		return Record{}, errors.NewStorageError(errors.ErrCodeStoreFailed, "build notion request", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.opts.Token)
	req.Header.Set("Notion-Version", s.opts.Version)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return Record{}, errors.NewStorageError(errors.ErrCodeStoreFailed, "notion request failed", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Record{}, errors.NewStorageError(errors.ErrCodeStoreFailed, "read notion response", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr notionError
		_ = json.Unmarshal(payload, &apiErr)
		return Record{}, errors.NewStorageError(errors.ErrCodeStoreFailed,
			fmt.Sprintf("notion returned %s", resp.Status), nil).
			WithContext("status", resp.StatusCode).
			WithContext("notion_code", apiErr.Code).
			WithContext("notion_message", apiErr.Message)
	}

	var created notionCreated
	if err := json.Unmarshal(payload, &created); err != nil {
		return Record{}, errors.NewStorageError(errors.ErrCodeStoreFailed, "decode notion response", err)
	}

	r := NewRecord(form)
	if created.ID != "" {
		r.ID = created.ID
	}
	return r, nil
}

// Close implements Store.
func (s *NotionStore) Close() error {
	s.client.CloseIdleConnections()
	return nil
}
