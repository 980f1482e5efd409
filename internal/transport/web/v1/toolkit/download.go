package toolkit

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/archive"
	"github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/domain"
	"github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/transport/web/logx"
	"github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/transport/web/mw"
	v1 "github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/transport/web/v1"
)

// Download godoc
// @Summary     Download toolkit as zip
// @Description Потоковый zip: записи именуются оригинальными именами файлов; пропавшие с диска файлы пропускаются.
// @Tags        toolkit
// @Produce     application/zip
// @Param       id path string true "toolkit id"
// @Success     200 {file} []byte
// @Failure     404 {object} domain.APIEnvelope
// @Router      /v1/toolkit/{id}/download [get]
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	const op = "toolkit.download"
	reqID := mw.RequestIDFromCtx(r.Context())

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		v1.WriteDomainError(w, r, domain.ErrNotFound)
		return
	}

	// предусловия по порядку: тулкит существует и непуст; каталог на месте
	t, err := h.Registry.Get(r.Context(), id)
	if err != nil {
		logx.Error(h.Log, reqID, op, "lookup", err, "toolkit_id", id)
		v1.WriteDomainError(w, r, err)
		return
	}
	if len(t.Files) == 0 {
		logx.Info(h.Log, reqID, op, "no files in manifest", "toolkit_id", id)
		v1.WriteDomainError(w, r, domain.ErrNotFound)
		return
	}
	ok, err := h.Store.Exists(r.Context(), t.ID)
	if err != nil {
		logx.Error(h.Log, reqID, op, "storage check", err, "toolkit_id", id)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}
	if !ok {
		logx.Info(h.Log, reqID, op, "directory missing", "toolkit_id", id)
		v1.WriteDomainError(w, r, domain.ErrNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", archive.ArchiveName(t.Title)))
	w.Header().Set("X-Request-ID", reqID)
	w.WriteHeader(http.StatusOK)

	// статус/заголовки уже ушли: любая ошибка ниже просто обрывает поток
	n, err := h.Archive.WriteZip(r.Context(), w, t)
	if err != nil {
		logx.Error(h.Log, reqID, op, "stream aborted", err, "toolkit_id", id, "entries", n)
		return
	}
	logx.Info(h.Log, reqID, op, "ok", "toolkit_id", id, "entries", n)
}
