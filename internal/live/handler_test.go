package live

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byteik/site/internal/contact"
	"github.com/byteik/site/internal/sections"
	"github.com/byteik/site/internal/store"
)

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/live" + query
	conn, resp, err := websocket.Dial(ctx, wsURL, &websocket.DialOptions{
		HTTPHeader: http.Header{"Origin": []string{srv.URL}},
	})
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	return conn
}

func readPatch(t *testing.T, conn *websocket.Conn) Patch {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var p Patch
	require.NoError(t, wsjson.Read(ctx, conn, &p))
	return p
}

func readUntil(t *testing.T, conn *websocket.Conn, op string) Patch {
	t.Helper()
	for i := 0; i < 20; i++ {
		if p := readPatch(t, conn); p.Op == op {
			return p
		}
	}
	t.Fatalf("no %s patch received", op)
	return Patch{}
}

func newLiveServer(submitter contact.Submitter) *httptest.Server {
	mux := http.NewServeMux()
	mux.Handle("/live", &Handler{Registry: sections.Default(), Submitter: submitter})
	return httptest.NewServer(mux)
}

func TestHandlerRoundTrip(t *testing.T) {
	mem := store.NewMemoryStore()
	srv := newLiveServer(store.Submitter(mem))
	defer srv.Close()

	conn := dial(t, srv, "?locale=en&fragment=%23portfolio")
	defer conn.Close(websocket.StatusNormalClosure, "")

	assert.Equal(t, Patch{Op: OpNav, Active: sections.Portfolio}, readPatch(t, conn))
	assert.Equal(t, Patch{Op: OpForm, SubmitLabel: "Send Message"}, readPatch(t, conn))

	ctx := context.Background()
	require.NoError(t, wsjson.Write(ctx, conn, scrollTo(1200)))
	assert.Equal(t, Patch{Op: OpNav, Active: sections.WhyUs}, readPatch(t, conn))
	assert.Equal(t, Patch{Op: OpFragment, Fragment: "#whyus"}, readPatch(t, conn))
	assert.Equal(t, Patch{Op: OpHeader, Scrolled: true}, readPatch(t, conn))

	for _, ev := range []Event{
		{Type: EventInput, Field: "name", Value: "Ana"},
		{Type: EventInput, Field: "email", Value: "ana@x.com"},
		{Type: EventInput, Field: "message", Value: "Hello"},
		{Type: EventSubmit},
	} {
		require.NoError(t, wsjson.Write(ctx, conn, ev))
	}

	alert := readUntil(t, conn, OpAlert)
	require.NotNil(t, alert.Alert)
	assert.Equal(t, "alert alert-success", alert.Alert.Class)

	records, err := mem.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Hello", records[0].Message)
}

func TestHandlerReportsBadEvents(t *testing.T) {
	srv := newLiveServer(nil)
	defer srv.Close()

	conn := dial(t, srv, "")
	defer conn.Close(websocket.StatusNormalClosure, "")
	readUntil(t, conn, OpForm)

	require.NoError(t, wsjson.Write(context.Background(), conn, Event{Type: "teleport"}))
	p := readPatch(t, conn)
	assert.Equal(t, OpError, p.Op)
	assert.Contains(t, p.Message, "teleport")
}

func submitForm(t *testing.T, conn *websocket.Conn) {
	t.Helper()
	for _, ev := range []Event{
		{Type: EventInput, Field: "name", Value: "Ana"},
		{Type: EventInput, Field: "email", Value: "ana@x.com"},
		{Type: EventInput, Field: "message", Value: "Hello"},
		{Type: EventSubmit},
	} {
		require.NoError(t, wsjson.Write(context.Background(), conn, ev))
	}
}

func TestHandlerAdmitRejects(t *testing.T) {
	mem := store.NewMemoryStore()
	admitted := make(chan string, 1)
	h := &Handler{
		Registry:  sections.Default(),
		Submitter: store.Submitter(mem),
		Admit: func(r *http.Request) error {
			admitted <- r.URL.Query().Get("locale")
			return assert.AnError
		},
	}
	srv := httptest.NewServer(h)
	defer srv.Close()

	conn := dial(t, srv, "?locale=id")
	defer conn.Close(websocket.StatusNormalClosure, "")
	submitForm(t, conn)

	var alert Patch
	for alert.Alert == nil || alert.Alert.Message == "" {
		alert = readUntil(t, conn, OpAlert)
	}
	assert.Equal(t, "alert alert-error", alert.Alert.Class)
	assert.Equal(t, "id", <-admitted, "the upgrade request is passed to Admit")

	records, err := mem.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestHandlerDrainWaitsForSubmissions(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	h := &Handler{
		Registry: sections.Default(),
		Submitter: contact.SubmitterFunc(func(context.Context, contact.Form) error {
			close(entered)
			<-release
			return nil
		}),
	}
	srv := httptest.NewServer(h)
	defer srv.Close()

	conn := dial(t, srv, "")
	defer conn.CloseNow()
	submitForm(t, conn)

	select {
	case <-entered:
	case <-time.After(5 * time.Second):
		t.Fatal("submission never started")
	}

	drained := make(chan error, 1)
	go func() { drained <- h.Drain(context.Background()) }()

	select {
	case <-drained:
		t.Fatal("drain returned while a submission was running")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	select {
	case err := <-drained:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("drain never returned")
	}

	err := h.submitter(httptest.NewRequest(http.MethodGet, "/live", nil)).Submit(context.Background(), contact.Form{})
	assert.Error(t, err, "no submissions after drain")
}

func TestHandlerDrainTimeout(t *testing.T) {
	h := &Handler{}
	require.True(t, h.begin())
	defer h.pending.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, h.Drain(ctx), context.DeadlineExceeded)
}

func TestHandlerRejectsForeignOrigin(t *testing.T) {
	srv := newLiveServer(nil)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/live"
	_, resp, err := websocket.Dial(ctx, wsURL, &websocket.DialOptions{
		HTTPHeader: http.Header{"Origin": []string{"https://evil.example"}},
	})
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestCheckOrigin(t *testing.T) {
	h := &Handler{AllowedOrigins: []string{"byteik.com"}}

	tests := []struct {
		origin string
		want   bool
	}{
		{"", false},
		{"http://site.local", true},
		{"https://byteik.com", true},
		{"https://evil.example", false},
		{"file://site.local", false},
		{"::bad", false},
	}
	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "http://site.local/live", nil)
			if tt.origin != "" {
				r.Header.Set("Origin", tt.origin)
			}
			assert.Equal(t, tt.want, h.checkOrigin(r))
		})
	}
}

func TestScript(t *testing.T) {
	rec := httptest.NewRecorder()
	Script().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/live.js", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "javascript")
	assert.Contains(t, rec.Body.String(), "replaceState")
}
