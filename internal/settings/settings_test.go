package settings

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/docket-service/internal/domain"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store := NewFileStore(t.TempDir())
	ctx := context.Background()

	if _, err := store.Load(ctx, "missing"); err != ErrDocumentNotFound {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}

	if err := store.Save(ctx, "doc", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("save error: %v", err)
	}
	data, err := store.Load(ctx, "doc")
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if string(data) != `{"a":1}` {
		t.Fatalf("unexpected data %q", data)
	}
}

func TestExamSettingsDefaultWhenMissing(t *testing.T) {
	store := NewExamSettingsStore(NewFileStore(t.TempDir()), zap.NewNop())

	got := store.Get(context.Background())
	if got.ActiveExam != domain.ExamTypeCA1 {
		t.Fatalf("expected default ca1, got %q", got.ActiveExam)
	}
}

func TestExamSettingsDefaultWhenCorrupt(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "exam_settings.json"), []byte("not json"), 0o644); err != nil {
		t.Fatalf("seed error: %v", err)
	}
	store := NewExamSettingsStore(NewFileStore(dir), zap.NewNop())

	got := store.Get(context.Background())
	if got.ActiveExam != domain.ExamTypeCA1 {
		t.Fatalf("expected default ca1, got %q", got.ActiveExam)
	}
}

func TestExamSettingsSetAndGet(t *testing.T) {
	store := NewExamSettingsStore(NewFileStore(t.TempDir()), zap.NewNop())
	ctx := context.Background()

	saved, err := store.Set(ctx, "exam")
	if err != nil {
		t.Fatalf("set error: %v", err)
	}
	if saved.ActiveExam != domain.ExamTypeFinal {
		t.Fatalf("expected exam, got %q", saved.ActiveExam)
	}
	if got := store.Get(ctx); got.ActiveExam != domain.ExamTypeFinal {
		t.Fatalf("expected exam after reload, got %q", got.ActiveExam)
	}
}

func TestExamSettingsSetRejectsUnknownType(t *testing.T) {
	store := NewExamSettingsStore(NewFileStore(t.TempDir()), zap.NewNop())
	ctx := context.Background()

	if _, err := store.Set(ctx, "ca2"); err != nil {
		t.Fatalf("set error: %v", err)
	}
	if _, err := store.Set(ctx, "midterm"); err == nil {
		t.Fatal("expected validation error for unknown exam type")
	}
	if got := store.Get(ctx); got.ActiveExam != domain.ExamTypeCA2 {
		t.Fatalf("rejected set must leave prior value, got %q", got.ActiveExam)
	}
}

func TestBlocklistIdempotency(t *testing.T) {
	store := NewBlocklistStore(NewFileStore(t.TempDir()))
	ctx := context.Background()

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty blocklist, got %v", list)
	}

	for i := 0; i < 2; i++ {
		if err := store.Block(ctx, "21001234"); err != nil {
			t.Fatalf("block error: %v", err)
		}
	}
	if err := store.Block(ctx, "21005678"); err != nil {
		t.Fatalf("block error: %v", err)
	}

	list, err = store.List(ctx)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 entries, got %v", list)
	}
	blocked, err := store.Contains(ctx, "21001234")
	if err != nil {
		t.Fatalf("contains error: %v", err)
	}
	if !blocked {
		t.Fatal("expected 21001234 to be blocked")
	}

	if err := store.Unblock(ctx, "21001234"); err != nil {
		t.Fatalf("unblock error: %v", err)
	}
	if err := store.Unblock(ctx, "21001234"); err != nil {
		t.Fatalf("unblock error: %v", err)
	}
	blocked, err = store.Contains(ctx, "21001234")
	if err != nil {
		t.Fatalf("contains error: %v", err)
	}
	if blocked {
		t.Fatal("expected 21001234 to be unblocked")
	}
}

func TestBlocklistCorruptReadsEmpty(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "blocked_students.json"), []byte("{{"), 0o644); err != nil {
		t.Fatalf("seed error: %v", err)
	}
	store := NewBlocklistStore(NewFileStore(dir))

	list, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty blocklist, got %v", list)
	}
}
