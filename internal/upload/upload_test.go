package upload

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestUploader(t *testing.T, url, dir string, dryRun bool) *Uploader {
	t.Helper()
	state, err := OpenStateDB(t.TempDir())
	if err != nil {
		t.Fatalf("OpenStateDB: %v", err)
	}
	t.Cleanup(func() { state.Close() })
	return New(newTestClient(url), state, dir, dryRun, discardLogger())
}

// TestRunUploadsOnce verifies supported documents are uploaded and unchanged
// files are skipped on the next run.
func TestRunUploadsOnce(t *testing.T) {
	ctx := context.Background()
	fake := &fakeServer{}
	ts := httptest.NewServer(fake)
	defer ts.Close()

	dir := t.TempDir()
	writeDoc(t, dir, "a.txt", "Push Day\nBench Press 3x10\n")
	writeDoc(t, dir, "sub/b.md", "Leg Day\nSquat 5x5\n")
	writeDoc(t, dir, "notes.exe", "binary")
	writeDoc(t, dir, ".hidden/c.txt", "Pull Day\n")
	writeDoc(t, dir, "reject.txt", "nothing here")

	u := newTestUploader(t, ts.URL, dir, false)
	stats, err := u.Run(ctx)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.FilesTotal != 3 || stats.FilesUploaded != 2 || stats.FilesRejected != 1 {
		t.Errorf("first run stats = %+v", *stats)
	}
	if stats.DaysImported != 4 || stats.ExercisesImported != 10 {
		t.Errorf("imported days/exercises = %d/%d", stats.DaysImported, stats.ExercisesImported)
	}
	want := []string{"a.txt", "reject.txt", "b.md"}
	if got := fake.receivedFiles(); !slices.Equal(got, want) {
		t.Errorf("received = %v, want %v", got, want)
	}

	if _, ok, _ := u.state.PlanID(ctx, "a.txt"); !ok {
		t.Error("plan id not recorded for a.txt")
	}
	if _, ok, _ := u.state.PlanID(ctx, "reject.txt"); ok {
		t.Error("plan id recorded for rejected file")
	}

	again := New(u.client, u.state, dir, false, discardLogger())
	stats, err = again.Run(ctx)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if stats.FilesSkipped != 3 || stats.FilesUploaded != 0 {
		t.Errorf("second run stats = %+v", *stats)
	}

	writeDoc(t, dir, "a.txt", "Push Day\nBench Press 4x8\n")
	stats, err = New(u.client, u.state, dir, false, discardLogger()).Run(ctx)
	if err != nil {
		t.Fatalf("third Run: %v", err)
	}
	if stats.FilesUploaded != 1 || stats.FilesSkipped != 2 {
		t.Errorf("changed file stats = %+v", *stats)
	}
}

// TestRunDryRun verifies nothing is sent or recorded.
func TestRunDryRun(t *testing.T) {
	fake := &fakeServer{}
	ts := httptest.NewServer(fake)
	defer ts.Close()

	dir := t.TempDir()
	writeDoc(t, dir, "a.txt", "Push Day\n")

	u := newTestUploader(t, ts.URL, dir, true)
	stats, err := u.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.FilesTotal != 1 || stats.FilesUploaded != 0 {
		t.Errorf("stats = %+v", *stats)
	}
	if n := fake.requestCount(); n != 0 {
		t.Errorf("requests = %d, want 0", n)
	}
}

// TestRunServerDown verifies failed uploads are counted, not recorded.
func TestRunServerDown(t *testing.T) {
	ctx := context.Background()
	fake := &fakeServer{failFirst: 100}
	ts := httptest.NewServer(fake)
	defer ts.Close()

	dir := t.TempDir()
	writeDoc(t, dir, "a.txt", "Push Day\n")

	u := newTestUploader(t, ts.URL, dir, false)
	stats, err := u.Run(ctx)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.FilesErrored != 1 {
		t.Errorf("stats = %+v", *stats)
	}
	if _, ok, _ := u.state.PlanID(ctx, "a.txt"); ok {
		t.Error("failed upload recorded")
	}
}

// TestRunMissingDir verifies an unreadable directory is an error.
func TestRunMissingDir(t *testing.T) {
	u := newTestUploader(t, "http://127.0.0.1:0", filepath.Join(t.TempDir(), "missing"), false)
	if _, err := u.Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

// TestStateDB verifies size and hash both take part in the match.
func TestStateDB(t *testing.T) {
	ctx := context.Background()
	state, err := OpenStateDB(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer state.Close()

	if err := state.MarkUploaded(ctx, "a.txt", 10, "abc", OutcomeImported, "plan-1"); err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		size int64
		hash string
		want bool
	}{
		{10, "abc", true},
		{11, "abc", false},
		{10, "abd", false},
	}
	for _, tt := range tests {
		got, err := state.IsUploaded(ctx, "a.txt", tt.size, tt.hash)
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want {
			t.Errorf("IsUploaded(%d, %q) = %v, want %v", tt.size, tt.hash, got, tt.want)
		}
	}

	id, ok, err := state.PlanID(ctx, "a.txt")
	if err != nil || !ok || id != "plan-1" {
		t.Errorf("PlanID = %q, %v, %v", id, ok, err)
	}
	if _, ok, err := state.PlanID(ctx, "other.txt"); ok || err != nil {
		t.Errorf("PlanID(other) = %v, %v", ok, err)
	}
}

// TestWatchUploadsNewFiles verifies files created while watching are
// uploaded after the debounce.
func TestWatchUploadsNewFiles(t *testing.T) {
	fake := &fakeServer{}
	ts := httptest.NewServer(fake)
	defer ts.Close()

	dir := t.TempDir()
	writeDoc(t, dir, "existing.txt", "Push Day\n")
	u := newTestUploader(t, ts.URL, dir, false)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- u.Watch(ctx, 50*time.Millisecond) }()

	waitFor(t, func() bool { return len(fake.receivedFiles()) == 1 })
	writeDoc(t, dir, "new.txt", "Leg Day\nSquat 5x5\n")
	writeDoc(t, dir, "ignored.exe", "binary")
	waitFor(t, func() bool { return len(fake.receivedFiles()) == 2 })

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Watch: %v", err)
	}
	want := []string{"existing.txt", "new.txt"}
	if got := fake.receivedFiles(); !slices.Equal(got, want) {
		t.Errorf("received = %v, want %v", got, want)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for condition")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
