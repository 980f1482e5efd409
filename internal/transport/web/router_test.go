package web

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	fsstorage "github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/infra/storage/fs"
	"github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/transport/web/mw"
	"github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/transport/web/v1/auth"
	"github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/transport/web/v1/health"
	"github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/transport/web/v1/toolkit"
)

func newStaticRouter(uploads string) http.Handler {
	logger := log.New(io.Discard, "", 0)
	return newRouter(routerDeps{
		health:  &health.Handler{},
		reg:     &auth.HandlerRegister{},
		login:   &auth.HandlerLogin{},
		logout:  &auth.HandlerLogout{},
		toolkit: &toolkit.Handler{},
		auth:    mw.AuthDeps{},
		uploads: uploads,
	}, logger)
}

func newUploadStore(t *testing.T) *fsstorage.Store {
	t.Helper()
	store, err := fsstorage.New(t.TempDir(), log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("fs store: %v", err)
	}
	return store
}

// Манифестный path (/uploads/toolkit/<id>/<stored>) должен отдавать
// ровно те байты, что были загружены.
func TestRouter_ServesManifestPath(t *testing.T) {
	store := newUploadStore(t)
	ctx := context.Background()

	sf, err := store.Stage(ctx, strings.NewReader("pdf-bytes"), "guide.pdf", "application/pdf")
	if err != nil {
		t.Fatalf("stage: %v", err)
	}
	id := uuid.New()
	if err := store.Promote(ctx, id, sf.StoredName); err != nil {
		t.Fatalf("promote: %v", err)
	}

	h := newStaticRouter(store.BaseDir())
	req := httptest.NewRequest(http.MethodGet, "/uploads/toolkit/"+id.String()+"/"+sf.StoredName, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %q)", rec.Code, rec.Body.String())
	}
	if rec.Body.String() != "pdf-bytes" {
		t.Fatalf("body = %q, want uploaded bytes", rec.Body.String())
	}
}

func TestRouter_StagingZoneNotServed(t *testing.T) {
	store := newUploadStore(t)
	ctx := context.Background()

	// файл лежит во временной зоне и ещё никому не принадлежит
	sf, err := store.Stage(ctx, strings.NewReader("secret"), "draft.pdf", "application/pdf")
	if err != nil {
		t.Fatalf("stage: %v", err)
	}

	h := newStaticRouter(store.BaseDir())
	for _, path := range []string{
		"/uploads/toolkit/temp-uploads/" + sf.StoredName,
		"/uploads/toolkit/temp-uploads/",
		"/uploads/toolkit/temp-uploads",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("GET %s = %d, want 404", path, rec.Code)
		}
	}
}
