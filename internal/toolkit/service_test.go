package toolkit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/domain"
)

// ---- фейки портов ----

type fakeRepo struct {
	toolkits map[domain.ToolkitID]*domain.Toolkit
	failOn   string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{toolkits: make(map[domain.ToolkitID]*domain.Toolkit)}
}

func (r *fakeRepo) CreatePending(_ context.Context, title, description string, categories []string) (domain.Toolkit, error) {
	if r.failOn == "create" {
		return domain.Toolkit{}, errors.New("db down")
	}
	t := domain.Toolkit{
		ID: uuid.New(), Title: title, Description: description,
		Categories: categories, Status: domain.ToolkitPending,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	r.toolkits[t.ID] = &t
	return t, nil
}

func (r *fakeRepo) Finalize(_ context.Context, id domain.ToolkitID, files []domain.FileEntry) (domain.Toolkit, error) {
	if r.failOn == "finalize" {
		return domain.Toolkit{}, errors.New("db down")
	}
	t := r.toolkits[id]
	t.Files = files
	t.Status = domain.ToolkitReady
	return *t, nil
}

func (r *fakeRepo) ToolkitByID(_ context.Context, id domain.ToolkitID) (domain.Toolkit, error) {
	t, ok := r.toolkits[id]
	if !ok || t.Status != domain.ToolkitReady {
		return domain.Toolkit{}, domain.ErrNotFound
	}
	return *t, nil
}

func (r *fakeRepo) ToolkitsList(_ context.Context) ([]domain.Toolkit, error) {
	var res []domain.Toolkit
	for _, t := range r.toolkits {
		if t.Status == domain.ToolkitReady {
			res = append(res, *t)
		}
	}
	return res, nil
}

func (r *fakeRepo) ToolkitUpdate(_ context.Context, id domain.ToolkitID, upd domain.ToolkitUpdate) (domain.Toolkit, error) {
	t, ok := r.toolkits[id]
	if !ok || t.Status != domain.ToolkitReady {
		return domain.Toolkit{}, domain.ErrNotFound
	}
	if upd.Title != nil {
		t.Title = *upd.Title
	}
	if upd.Description != nil {
		t.Description = *upd.Description
	}
	if upd.Categories != nil {
		t.Categories = upd.Categories
	}
	t.UpdatedAt = time.Now()
	return *t, nil
}

func (r *fakeRepo) ToolkitDelete(_ context.Context, id domain.ToolkitID) error {
	if _, ok := r.toolkits[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.toolkits, id)
	return nil
}

func (r *fakeRepo) StalePending(_ context.Context, cutoff time.Time) ([]domain.Toolkit, error) {
	var res []domain.Toolkit
	for _, t := range r.toolkits {
		if t.Status == domain.ToolkitPending && t.CreatedAt.Before(cutoff) {
			res = append(res, *t)
		}
	}
	return res, nil
}

type fakeStore struct {
	staged    map[string]bool // storedName -> в staging
	promoted  map[domain.ToolkitID][]string
	removed   []domain.ToolkitID
	failStage bool
	failMove  bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{staged: make(map[string]bool), promoted: make(map[domain.ToolkitID][]string)}
}

func (s *fakeStore) Stage(_ context.Context, r io.Reader, originalName, mime string) (domain.StagedFile, error) {
	if s.failStage {
		return domain.StagedFile{}, errors.New("disk full")
	}
	b, _ := io.ReadAll(r)
	stored := fmt.Sprintf("%d-%d%s", time.Now().UnixMilli(), len(s.staged), ".x")
	s.staged[stored] = true
	return domain.StagedFile{OriginalName: originalName, StoredName: stored, MIME: mime, SizeBytes: int64(len(b))}, nil
}

func (s *fakeStore) DiscardStaged(_ context.Context, storedName string) error {
	delete(s.staged, storedName)
	return nil
}

func (s *fakeStore) Promote(_ context.Context, id domain.ToolkitID, storedName string) error {
	if s.failMove {
		return errors.New("rename failed")
	}
	delete(s.staged, storedName)
	s.promoted[id] = append(s.promoted[id], storedName)
	return nil
}

func (s *fakeStore) Open(_ context.Context, id domain.ToolkitID, storedName string) (io.ReadCloser, int64, error) {
	return io.NopCloser(strings.NewReader("data")), 4, nil
}

func (s *fakeStore) Exists(_ context.Context, id domain.ToolkitID) (bool, error) {
	return len(s.promoted[id]) > 0, nil
}

func (s *fakeStore) RemoveAll(_ context.Context, id domain.ToolkitID) error {
	delete(s.promoted, id)
	s.removed = append(s.removed, id)
	return nil
}

func (s *fakeStore) Ping(context.Context) error { return nil }

type fakeCache struct {
	data map[string][]byte
}

func newFakeCache() *fakeCache { return &fakeCache{data: make(map[string][]byte)} }

func (c *fakeCache) Get(_ context.Context, key string) ([]byte, error) { return c.data[key], nil }
func (c *fakeCache) Set(_ context.Context, key string, val []byte, _ int) error {
	c.data[key] = val
	return nil
}
func (c *fakeCache) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}
func (c *fakeCache) Ping(context.Context) error { return nil }
func (c *fakeCache) Close()                     {}

func newTestService(repo *fakeRepo, store *fakeStore, cache *fakeCache) *Service {
	return New(log.New(io.Discard, "", 0), repo, store, cache, 300, 60)
}

func stage(t *testing.T, store *fakeStore, names ...string) []domain.StagedFile {
	t.Helper()
	var staged []domain.StagedFile
	for _, n := range names {
		sf, err := store.Stage(context.Background(), strings.NewReader("body of "+n), n, "application/pdf")
		if err != nil {
			t.Fatalf("stage %s: %v", n, err)
		}
		staged = append(staged, sf)
	}
	return staged
}

// ---- тесты ----

func TestCreate_Success(t *testing.T) {
	repo, store, cache := newFakeRepo(), newFakeStore(), newFakeCache()
	svc := newTestService(repo, store, cache)
	ctx := context.Background()

	staged := stage(t, store, "guide.pdf", "plan.docx")
	out, err := svc.Create(ctx, CreateInput{
		Title: "Sewing Basics", Description: "Intro guide",
		Categories: []string{"sewing", "beginner"}, Staged: staged,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if out.Status != domain.ToolkitReady {
		t.Fatalf("status = %s, want ready", out.Status)
	}
	if len(out.Files) != 2 {
		t.Fatalf("files = %d, want 2", len(out.Files))
	}
	if out.Files[0].OriginalName != "guide.pdf" {
		t.Fatalf("original name = %q", out.Files[0].OriginalName)
	}
	wantPath := fmt.Sprintf("/uploads/toolkit/%s/%s", out.ID, out.Files[0].StoredName)
	if out.Files[0].Path != wantPath {
		t.Fatalf("path = %q, want %q", out.Files[0].Path, wantPath)
	}
	if len(store.promoted[out.ID]) != 2 || len(store.staged) != 0 {
		t.Fatalf("promotion incomplete: promoted=%d staged=%d", len(store.promoted[out.ID]), len(store.staged))
	}
}

func TestCreate_InvalidInput(t *testing.T) {
	repo, store, cache := newFakeRepo(), newFakeStore(), newFakeCache()
	svc := newTestService(repo, store, cache)
	ctx := context.Background()

	cases := []CreateInput{
		{Title: "", Description: "d", Categories: []string{"a"}, Staged: stage(t, store, "a.pdf")},
		{Title: "t", Description: "", Categories: []string{"a"}, Staged: stage(t, store, "b.pdf")},
		{Title: "t", Description: "d", Categories: nil, Staged: stage(t, store, "c.pdf")},
		{Title: "t", Description: "d", Categories: []string{"a"}, Staged: nil},
	}
	for i, in := range cases {
		if _, err := svc.Create(ctx, in); !errors.Is(err, domain.ErrBadParams) {
			t.Errorf("case %d: err = %v, want ErrBadParams", i, err)
		}
	}
	if len(repo.toolkits) != 0 {
		t.Fatalf("metadata records created on invalid input: %d", len(repo.toolkits))
	}
}

func TestCreate_PromoteFailure_LeavesPending(t *testing.T) {
	repo, store, cache := newFakeRepo(), newFakeStore(), newFakeCache()
	svc := newTestService(repo, store, cache)
	ctx := context.Background()

	staged := stage(t, store, "x.pdf")
	store.failMove = true

	_, err := svc.Create(ctx, CreateInput{
		Title: "t", Description: "d", Categories: []string{"a"}, Staged: staged,
	})
	if err == nil {
		t.Fatal("expected error")
	}
	// intent-запись осталась, но наружу не видна
	if len(repo.toolkits) != 1 {
		t.Fatalf("pending record count = %d, want 1", len(repo.toolkits))
	}
	for id, tk := range repo.toolkits {
		if tk.Status != domain.ToolkitPending {
			t.Fatalf("status = %s, want pending", tk.Status)
		}
		if _, err := svc.Get(ctx, id); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("pending toolkit visible via Get: %v", err)
		}
	}
}

func TestCreate_FinalizeFailure_LogsPendingID(t *testing.T) {
	repo, store, cache := newFakeRepo(), newFakeStore(), newFakeCache()
	var buf strings.Builder
	svc := New(log.New(&buf, "", 0), repo, store, cache, 300, 60)
	ctx := context.Background()

	staged := stage(t, store, "x.pdf")
	repo.failOn = "finalize"

	_, err := svc.Create(ctx, CreateInput{
		Title: "t", Description: "d", Categories: []string{"a"}, Staged: staged,
	})
	if err == nil {
		t.Fatal("expected error")
	}
	// в логе — id intent-записи, а не нулевой UUID
	for id := range repo.toolkits {
		if !strings.Contains(buf.String(), id.String()) {
			t.Fatalf("log misses pending id %s: %q", id, buf.String())
		}
	}
	if strings.Contains(buf.String(), uuid.Nil.String()) {
		t.Fatalf("log mentions nil uuid: %q", buf.String())
	}
}

func TestGet_CacheRoundtrip(t *testing.T) {
	repo, store, cache := newFakeRepo(), newFakeStore(), newFakeCache()
	svc := newTestService(repo, store, cache)
	ctx := context.Background()

	out, err := svc.Create(ctx, CreateInput{
		Title: "t", Description: "d", Categories: []string{"a"},
		Staged: stage(t, store, "a.pdf"),
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	got, err := svc.Get(ctx, out.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.ID != out.ID {
		t.Fatalf("id mismatch")
	}
	if _, ok := cache.data[domain.CacheKeyToolkit(out.ID)]; !ok {
		t.Fatal("toolkit not cached after Get")
	}

	// подменяем кеш и убеждаемся, что Get читает именно его
	planted := got
	planted.Title = "cached title"
	b, _ := json.Marshal(planted)
	cache.data[domain.CacheKeyToolkit(out.ID)] = b

	got2, err := svc.Get(ctx, out.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got2.Title != "cached title" {
		t.Fatalf("cache not used: title = %q", got2.Title)
	}
}

func TestUpdate(t *testing.T) {
	repo, store, cache := newFakeRepo(), newFakeStore(), newFakeCache()
	svc := newTestService(repo, store, cache)
	ctx := context.Background()

	out, err := svc.Create(ctx, CreateInput{
		Title: "t", Description: "d", Categories: []string{"a"},
		Staged: stage(t, store, "a.pdf"),
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	// прогреем кеш
	if _, err := svc.Get(ctx, out.ID); err != nil {
		t.Fatalf("Get error: %v", err)
	}

	newTitle := "Improved"
	got, err := svc.Update(ctx, out.ID, domain.ToolkitUpdate{Title: &newTitle})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if got.Title != "Improved" || got.Description != "d" {
		t.Fatalf("merge broken: %+v", got)
	}
	if _, ok := cache.data[domain.CacheKeyToolkit(out.ID)]; ok {
		t.Fatal("toolkit cache not invalidated after Update")
	}

	empty := " "
	if _, err := svc.Update(ctx, out.ID, domain.ToolkitUpdate{Title: &empty}); !errors.Is(err, domain.ErrBadParams) {
		t.Fatalf("blank title: err = %v, want ErrBadParams", err)
	}
	if _, err := svc.Update(ctx, out.ID, domain.ToolkitUpdate{}); !errors.Is(err, domain.ErrBadParams) {
		t.Fatalf("empty update: err = %v, want ErrBadParams", err)
	}
	if _, err := svc.Update(ctx, uuid.New(), domain.ToolkitUpdate{Title: &newTitle}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown id: err = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	repo, store, cache := newFakeRepo(), newFakeStore(), newFakeCache()
	svc := newTestService(repo, store, cache)
	ctx := context.Background()

	out, err := svc.Create(ctx, CreateInput{
		Title: "t", Description: "d", Categories: []string{"a"},
		Staged: stage(t, store, "a.pdf"),
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if err := svc.Delete(ctx, out.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if len(store.removed) != 1 || store.removed[0] != out.ID {
		t.Fatalf("files not removed: %v", store.removed)
	}
	if _, err := svc.Get(ctx, out.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Get after Delete: err = %v, want ErrNotFound", err)
	}
}

func TestDelete_NotFound_NoSideEffects(t *testing.T) {
	repo, store, cache := newFakeRepo(), newFakeStore(), newFakeCache()
	svc := newTestService(repo, store, cache)

	if err := svc.Delete(context.Background(), uuid.New()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if len(store.removed) != 0 {
		t.Fatalf("unexpected filesystem side effect: %v", store.removed)
	}
}

func TestReconcileStalePending(t *testing.T) {
	repo, store, cache := newFakeRepo(), newFakeStore(), newFakeCache()
	svc := newTestService(repo, store, cache)
	ctx := context.Background()

	// свежая pending — не трогаем
	fresh, _ := repo.CreatePending(ctx, "fresh", "d", []string{"a"})
	// старая pending — откатываем
	stale, _ := repo.CreatePending(ctx, "stale", "d", []string{"a"})
	repo.toolkits[stale.ID].CreatedAt = time.Now().Add(-2 * time.Hour)

	n, err := svc.ReconcileStalePending(ctx, time.Hour)
	if err != nil {
		t.Fatalf("Reconcile error: %v", err)
	}
	if n != 1 {
		t.Fatalf("cleaned = %d, want 1", n)
	}
	if _, ok := repo.toolkits[stale.ID]; ok {
		t.Fatal("stale pending record not deleted")
	}
	if _, ok := repo.toolkits[fresh.ID]; !ok {
		t.Fatal("fresh pending record deleted")
	}
}
