package server

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mwiater/ccboard/internal/logging"
	"github.com/mwiater/ccboard/internal/view"
)

const doc = `models:
  A:
    baseline: { average: 2 }
    bm25: { average: 5, python: 5, java: 5, typescript: 5, "c#": 5 }
  B:
    bm25: { average: 8, python: 8, java: 8, typescript: 8, "c#": 8 }
`

func newTestServer(t *testing.T, content string) (*Server, string) {
	t.Helper()
	root := t.TempDir()
	path := filepath.Join(root, "leaderboard.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return New(Config{Source: "/leaderboard.yml", Root: root}), path
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t, doc)
	rec := get(t, s.Handler(), "/healthz")
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("unexpected healthz response %d %q", rec.Code, rec.Body.String())
	}
}

func TestIndexRendersSortedRows(t *testing.T) {
	s, _ := newTestServer(t, doc)
	rec := get(t, s.Handler(), "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("unexpected content type %q", ct)
	}
	body := rec.Body.String()
	if strings.Index(body, ">B</p>") > strings.Index(body, ">A</p>") {
		t.Fatal("expected B before A")
	}
	if !strings.Contains(body, "left: 60px") {
		t.Fatal("expected baseline marker at 60px")
	}
}

func TestIndexReflectsFileChangesPerRequest(t *testing.T) {
	s, path := newTestServer(t, doc)
	get(t, s.Handler(), "/")

	updated := strings.Replace(doc, "average: 8", "average: 1", 1)
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		t.Fatal(err)
	}
	body := get(t, s.Handler(), "/").Body.String()
	if strings.Index(body, ">A</p>") > strings.Index(body, ">B</p>") {
		t.Fatal("expected A before B after update")
	}
}

func TestIndexMalformedShowsHeaderOnly(t *testing.T) {
	s, _ := newTestServer(t, "models: [oops")
	rec := get(t, s.Handler(), "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, view.DefaultTitle) {
		t.Fatal("expected page header")
	}
	if strings.Contains(body, `class="model-item"`) {
		t.Fatal("expected no rows")
	}
}

func TestDocumentRoute(t *testing.T) {
	s, _ := newTestServer(t, doc)
	rec := get(t, s.Handler(), "/leaderboard.yml")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != doc {
		t.Fatalf("unexpected document body %q", rec.Body.String())
	}
}

func TestDocumentRouteSkipsDirectories(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, "data.yml"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "secret.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := New(Config{Source: "/", Root: root})
	rec := get(t, s.Handler(), "/")
	if strings.Contains(rec.Body.String(), "secret.txt") {
		t.Fatalf("expected no directory listing, got %q", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), view.DefaultTitle) {
		t.Fatal("expected the leaderboard page at /")
	}

	s = New(Config{Source: "/data.yml", Root: root})
	if rec := get(t, s.Handler(), "/data.yml"); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for a directory source, got %d", rec.Code)
	}
}

func TestRemoteSource(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(doc))
	}))
	defer upstream.Close()

	s := New(Config{Source: upstream.URL + "/lb.yml", Client: upstream.Client()})
	body := get(t, s.Handler(), "/").Body.String()
	if got := strings.Count(body, "data-rank="); got != 2 {
		t.Fatalf("expected 2 rows, got %d", got)
	}
	if rec := get(t, s.Handler(), "/leaderboard.yml"); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for document route with remote source, got %d", rec.Code)
	}
}

func TestUnknownPath(t *testing.T) {
	s, _ := newTestServer(t, doc)
	if rec := get(t, s.Handler(), "/nope"); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	var logs bytes.Buffer
	if err := logging.Init("", &logs); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = logging.Init("", os.Stderr) })

	s := New(Config{Addr: "127.0.0.1:0", Source: "/leaderboard.yml", Root: t.TempDir()})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("ListenAndServe returned %v", err)
		}
		if !strings.Contains(logs.String(), "shutting down HTTP server") {
			t.Fatalf("expected shutdown to be logged, got %q", logs.String())
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
