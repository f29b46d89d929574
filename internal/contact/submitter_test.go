package contact

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byteik/site/internal/errors"
)

func TestHTTPSubmitter(t *testing.T) {
	form := Form{Name: "Ana", Email: "ana@x.com", Message: "Hi"}

	tests := []struct {
		name    string
		status  int
		body    string
		wantErr bool
	}{
		{"success", http.StatusOK, `{"success":true}`, false},
		{"reported failure", http.StatusOK, `{"success":false,"error":"nope"}`, true},
		{"server error", http.StatusInternalServerError, `{"success":false,"error":"Internal Server Error"}`, true},
		{"malformed body", http.StatusOK, `<html>`, true},
		{"empty body", http.StatusOK, ``, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Form
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
				require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			err := NewHTTPSubmitter(srv.URL, nil).Submit(context.Background(), form)

			assert.Equal(t, form, got)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsNetwork(err))
			assert.Equal(t, errors.ErrCodeSubmissionFailed, errors.CodeOf(err))
		})
	}
}

func TestHTTPSubmitterUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := NewHTTPSubmitter(url, nil).Submit(context.Background(), Form{})
	require.Error(t, err)
	assert.True(t, errors.IsRecoverable(err))
}

func TestHTTPSubmitterDrivesController(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Response{Success: true})
	}))
	defer srv.Close()

	c := NewController(NewHTTPSubmitter(srv.URL, srv.Client()))
	fillForm(c)
	require.True(t, c.Submit(context.Background()))
	c.Wait()

	assert.Equal(t, AlertSuccess, c.State().Alert.Kind)
	assert.True(t, c.State().Form.IsZero())
}
