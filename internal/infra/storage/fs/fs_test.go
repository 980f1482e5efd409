package fs

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir(), log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	return s
}

func TestStage_GeneratedName(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	st, err := s.Stage(ctx, strings.NewReader("hello"), "guide.pdf", "application/pdf")
	if err != nil {
		t.Fatalf("Stage error: %v", err)
	}
	if st.OriginalName != "guide.pdf" || st.MIME != "application/pdf" || st.SizeBytes != 5 {
		t.Fatalf("unexpected staged file: %+v", st)
	}
	// <epoch-ms>-<random>.pdf
	if ok, _ := regexp.MatchString(`^\d{13}-\d+\.pdf$`, st.StoredName); !ok {
		t.Fatalf("unexpected stored name %q", st.StoredName)
	}
	if _, err := os.Stat(filepath.Join(s.staging, st.StoredName)); err != nil {
		t.Fatalf("staged file missing: %v", err)
	}
}

func TestPromote_MovesOutOfStaging(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	id := uuid.New()

	st, err := s.Stage(ctx, strings.NewReader("content"), "a.docx", "application/msword")
	if err != nil {
		t.Fatalf("Stage error: %v", err)
	}
	if err := s.Promote(ctx, id, st.StoredName); err != nil {
		t.Fatalf("Promote error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(s.staging, st.StoredName)); !os.IsNotExist(err) {
		t.Fatalf("staged copy still present after promote")
	}
	rc, size, err := s.Open(ctx, id, st.StoredName)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	defer rc.Close()
	b, _ := io.ReadAll(rc)
	if string(b) != "content" || size != int64(len("content")) {
		t.Fatalf("content mismatch: %q size=%d", b, size)
	}

	ok, err := s.Exists(ctx, id)
	if err != nil || !ok {
		t.Fatalf("Exists = %v, %v; want true", ok, err)
	}
}

func TestDiscardStaged(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	st, err := s.Stage(ctx, strings.NewReader("x"), "b.xls", "application/vnd.ms-excel")
	if err != nil {
		t.Fatalf("Stage error: %v", err)
	}
	if err := s.DiscardStaged(ctx, st.StoredName); err != nil {
		t.Fatalf("DiscardStaged error: %v", err)
	}
	// повторный discard не ошибка
	if err := s.DiscardStaged(ctx, st.StoredName); err != nil {
		t.Fatalf("second DiscardStaged error: %v", err)
	}
}

func TestRemoveAll(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	id := uuid.New()

	st, err := s.Stage(ctx, strings.NewReader("x"), "c.ppt", "application/vnd.ms-powerpoint")
	if err != nil {
		t.Fatalf("Stage error: %v", err)
	}
	if err := s.Promote(ctx, id, st.StoredName); err != nil {
		t.Fatalf("Promote error: %v", err)
	}

	if err := s.RemoveAll(ctx, id); err != nil {
		t.Fatalf("RemoveAll error: %v", err)
	}
	ok, err := s.Exists(ctx, id)
	if err != nil || ok {
		t.Fatalf("Exists after RemoveAll = %v, %v; want false", ok, err)
	}
	// отсутствие каталога — не ошибка
	if err := s.RemoveAll(ctx, id); err != nil {
		t.Fatalf("second RemoveAll error: %v", err)
	}
}

func TestPing(t *testing.T) {
	s := newTestStore(t)
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("Ping error: %v", err)
	}
}
