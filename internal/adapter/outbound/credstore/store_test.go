package credstore

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/brieflyhq/briefly/internal/domain/session"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "credentials.json"), testLogger())
}

func TestLoad_NoFile_ReturnsEmptySession(t *testing.T) {
	s := newTestStore(t)

	sess, err := s.Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if !sess.IsEmpty() {
		t.Errorf("expected empty session, got %+v", sess)
	}
	if sess.IsAuthenticated() {
		t.Error("expected anonymous session")
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := newTestStore(t)

	want := session.Session{Token: "t1", Role: session.RoleAdmin, Username: "alice"}
	if err := s.Save(want); err != nil {
		t.Fatalf("Save() returned unexpected error: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if got != want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestSave_CreatesParentDirAndRestrictsPermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "credentials.json")
	s := NewFileStore(path, testLogger())

	if err := s.Save(session.Session{Token: "t", Role: session.RoleUser, Username: "u"}); err != nil {
		t.Fatalf("Save() returned unexpected error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat credentials file: %v", err)
	}
	if mode := info.Mode().Perm(); mode&0077 != 0 {
		t.Errorf("credentials file permissions %04o are too open", mode)
	}
}

func TestLoad_PartialRecord_TreatedAsAbsent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"token without role", `{"token": "t1", "username": "a"}`},
		{"role without token", `{"role": "ADMIN", "username": "a"}`},
		{"token without username", `{"token": "t1", "role": "USER"}`},
		{"unknown role", `{"token": "t1", "role": "ROOT", "username": "a"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			if err := os.WriteFile(s.Path(), []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}

			sess, err := s.Load()
			if err != nil {
				t.Fatalf("Load() returned unexpected error: %v", err)
			}
			if !sess.IsEmpty() {
				t.Errorf("partial record should load as empty session, got %+v", sess)
			}
		})
	}
}

func TestLoad_CorruptFile_TreatedAsAbsent(t *testing.T) {
	s := newTestStore(t)
	if err := os.WriteFile(s.Path(), []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	sess, err := s.Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if !sess.IsEmpty() {
		t.Errorf("corrupt record should load as empty session, got %+v", sess)
	}
}

func TestClear_RemovesRecord(t *testing.T) {
	s := newTestStore(t)

	if err := s.Save(session.Session{Token: "t", Role: session.RoleUser, Username: "u"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear() returned unexpected error: %v", err)
	}
	if s.Exists() {
		t.Error("credentials file should be removed after Clear")
	}

	sess, err := s.Load()
	if err != nil {
		t.Fatalf("Load() after Clear returned unexpected error: %v", err)
	}
	if !sess.IsEmpty() {
		t.Errorf("expected empty session after Clear, got %+v", sess)
	}
}

func TestClear_IsIdempotent(t *testing.T) {
	s := newTestStore(t)

	// Never saved: clearing an absent record must still succeed.
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear() on absent record returned error: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("second Clear() returned error: %v", err)
	}
}

func TestSave_OverwritesAtomically(t *testing.T) {
	s := newTestStore(t)

	first := session.Session{Token: "t1", Role: session.RoleUser, Username: "u1"}
	second := session.Session{Token: "t2", Role: session.RoleAdmin, Username: "u2"}

	if err := s.Save(first); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(second); err != nil {
		t.Fatal(err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if got != second {
		t.Errorf("Load() = %+v, want %+v", got, second)
	}

	// No temp file may be left behind.
	if _, err := os.Stat(s.Path() + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind after Save")
	}
}
