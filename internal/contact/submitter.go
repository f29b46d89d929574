package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/byteik/site/internal/errors"
)

// maxResponseBytes caps how much of the endpoint's reply is decoded.
const maxResponseBytes = 64 << 10

// Response is the body of POST /api/contact.
type Response struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// HTTPSubmitter posts forms to the contact endpoint. Non-2xx statuses,
// malformed bodies, transport errors and success=false are all reported as
// one kind of submission error.
type HTTPSubmitter struct {
	endpoint string
	client   *http.Client
}

// NewHTTPSubmitter creates a submitter for endpoint. A nil client gets a
// default with a 10 second timeout.
func NewHTTPSubmitter(endpoint string, client *http.Client) *HTTPSubmitter {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPSubmitter{endpoint: endpoint, client: client}
}

// Submit implements Submitter.
func (s *HTTPSubmitter) Submit(ctx context.Context, form Form) error {
	body, err := json.Marshal(form)
	if err != nil {
		return errors.NewInternalError(errors.ErrCodeInternalError, "encode contact form", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.NewNetworkError(errors.ErrCodeSubmissionFailed, "build contact request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return errors.NewNetworkError(errors.ErrCodeSubmissionFailed, "contact endpoint unreachable", err)
	}
	defer resp.Body.Close()

	var out Response
	decodeErr := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&out)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.NewNetworkError(errors.ErrCodeSubmissionFailed,
			fmt.Sprintf("contact endpoint returned %s", resp.Status), nil).
			WithContext("status", resp.StatusCode).
			WithContext("detail", out.Error)
	}
	if decodeErr != nil {
		return errors.NewNetworkError(errors.ErrCodeSubmissionFailed, "malformed contact response", decodeErr)
	}
	if !out.Success {
		return errors.NewNetworkError(errors.ErrCodeSubmissionFailed, "contact endpoint reported failure", nil).
			WithContext("detail", out.Error)
	}
	return nil
}
