package upload

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/claude/liftplan/internal/ingest"
	"github.com/google/uuid"
)

// fakeServer mimics the upload endpoint. Files whose name contains
// "reject" get a 422; the first failFirst requests get a 500.
type fakeServer struct {
	mu        sync.Mutex
	failFirst int
	requests  int
	received  []string
	planNames []string
	apiKeys   []string
}

func (f *fakeServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests++
	f.apiKeys = append(f.apiKeys, r.Header.Get("X-API-Key"))

	if r.URL.Path != "/api/v1/plans/upload" {
		http.NotFound(w, r)
		return
	}
	if f.requests <= f.failFirst {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"error":"database unavailable"}`)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"error":"file field is required"}`)
		return
	}
	file.Close()
	f.received = append(f.received, header.Filename)
	f.planNames = append(f.planNames, r.FormValue("plan_name"))

	if strings.Contains(header.Filename, "reject") {
		w.WriteHeader(http.StatusUnprocessableEntity)
		io.WriteString(w, `{"error":"nothing importable: no workout structure found"}`)
		return
	}
	json.NewEncoder(w).Encode(ingest.Result{
		Success:        true,
		PlanID:         uuid.New(),
		PlanName:       header.Filename,
		DaysCount:      2,
		ExercisesCount: 5,
	})
}

func (f *fakeServer) receivedFiles() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.received...)
}

func (f *fakeServer) requestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests
}

func newTestClient(url string) *Client {
	c := NewClient(url, "test-key")
	c.backoff = time.Millisecond
	return c
}

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestUploadFile verifies the multipart request and decoded result.
func TestUploadFile(t *testing.T) {
	fake := &fakeServer{}
	ts := httptest.NewServer(fake)
	defer ts.Close()

	path := writeDoc(t, t.TempDir(), "ppl.txt", "Push Day\nBench Press 3x10\n")
	result, err := newTestClient(ts.URL).UploadFile(context.Background(), path, "My PPL")
	if err != nil {
		t.Fatalf("UploadFile: %v", err)
	}
	if !result.Success || result.DaysCount != 2 || result.ExercisesCount != 5 {
		t.Errorf("result = %+v", result)
	}
	if got := fake.receivedFiles(); len(got) != 1 || got[0] != "ppl.txt" {
		t.Errorf("received = %v", got)
	}
	if fake.planNames[0] != "My PPL" || fake.apiKeys[0] != "test-key" {
		t.Errorf("plan_name = %q, api key = %q", fake.planNames[0], fake.apiKeys[0])
	}
}

// TestUploadFileRetries verifies server errors are retried.
func TestUploadFileRetries(t *testing.T) {
	fake := &fakeServer{failFirst: 2}
	ts := httptest.NewServer(fake)
	defer ts.Close()

	path := writeDoc(t, t.TempDir(), "ppl.txt", "Push Day\n")
	if _, err := newTestClient(ts.URL).UploadFile(context.Background(), path, ""); err != nil {
		t.Fatalf("UploadFile: %v", err)
	}
	if n := fake.requestCount(); n != 3 {
		t.Errorf("requests = %d, want 3", n)
	}
}

// TestUploadFileGivesUp verifies the attempt limit.
func TestUploadFileGivesUp(t *testing.T) {
	fake := &fakeServer{failFirst: 10}
	ts := httptest.NewServer(fake)
	defer ts.Close()

	path := writeDoc(t, t.TempDir(), "ppl.txt", "Push Day\n")
	_, err := newTestClient(ts.URL).UploadFile(context.Background(), path, "")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "database unavailable") {
		t.Errorf("error = %v, want server message", err)
	}
	if n := fake.requestCount(); n != maxAttempts {
		t.Errorf("requests = %d, want %d", n, maxAttempts)
	}
}

// TestUploadFileRejected verifies 4xx responses are not retried.
func TestUploadFileRejected(t *testing.T) {
	fake := &fakeServer{}
	ts := httptest.NewServer(fake)
	defer ts.Close()

	path := writeDoc(t, t.TempDir(), "reject.txt", "hello")
	_, err := newTestClient(ts.URL).UploadFile(context.Background(), path, "")
	if !errors.Is(err, ErrRejected) {
		t.Fatalf("error = %v, want ErrRejected", err)
	}
	if n := fake.requestCount(); n != 1 {
		t.Errorf("requests = %d, want 1", n)
	}
}

// TestUploadFileMissing verifies a missing file fails before any request.
func TestUploadFileMissing(t *testing.T) {
	fake := &fakeServer{}
	ts := httptest.NewServer(fake)
	defer ts.Close()

	if _, err := newTestClient(ts.URL).UploadFile(context.Background(), filepath.Join(t.TempDir(), "nope.txt"), ""); err == nil {
		t.Fatal("expected error")
	}
	if n := fake.requestCount(); n != 0 {
		t.Errorf("requests = %d, want 0", n)
	}
}
