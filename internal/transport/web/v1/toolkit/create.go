package toolkit

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/domain"
	toolkitsvc "github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/toolkit"
	"github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/transport/web/logx"
	"github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/transport/web/mw"
	v1 "github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/transport/web/v1"
)

// Create godoc
// @Summary     Create toolkit
// @Description multipart: files[] (pdf/doc/docx/ppt/pptx/xls/xlsx, до 10 MiB каждый), title, description, category (JSON-массив строк)
// @Tags        toolkit
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
// @Param       files formData file true "файлы тулкита"
// @Param       title formData string true "заголовок"
// @Param       description formData string true "описание"
// @Param       category formData string true "JSON-массив категорий"
// @Success     201 {object} domain.APIEnvelope{data=domain.Toolkit}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     401 {object} domain.APIEnvelope
// @Failure     500 {object} domain.APIEnvelope
// @Router      /v1/toolkit [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "toolkit.create"
	reqID := mw.RequestIDFromCtx(r.Context())
	me, _ := mw.UserFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "user", me.Login)

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		logx.Error(h.Log, reqID, op, "parse multipart", err)
		v1.WriteBadRequest(w, r, "invalid multipart form")
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	description := strings.TrimSpace(r.FormValue("description"))

	var categories []string
	if raw := r.FormValue("category"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &categories); err != nil {
			logx.Error(h.Log, reqID, op, "category json", err)
			v1.WriteBadRequest(w, r, "category must be a JSON array of strings")
			return
		}
	}
	if !domain.ValidToolkitInput(title, description, categories) {
		v1.WriteBadRequest(w, r, "title, description and category are required")
		return
	}

	fhs := r.MultipartForm.File["files"]
	if len(fhs) == 0 {
		v1.WriteBadRequest(w, r, "at least one file is required")
		return
	}

	// Intake: тип по allow-list, размер по потолку. Отклонённый файл
	// исключается из набора, остальных не трогает.
	var (
		staged   []domain.StagedFile
		rejected []string
	)
	for _, fh := range fhs {
		if !domain.AllowedUploadName(fh.Filename) || fh.Size > domain.MaxUploadFileBytes {
			rejected = append(rejected, fh.Filename)
			continue
		}
		sf, err := h.stageOne(r, fh)
		if err != nil {
			logx.Error(h.Log, reqID, op, "stage file", err, "file", fh.Filename)
			h.Registry.DiscardStaged(r.Context(), staged)
			v1.WriteDomainError(w, r, domain.ErrUnexpected)
			return
		}
		staged = append(staged, sf)
	}
	if len(rejected) > 0 {
		logx.Info(h.Log, reqID, op, "rejected files", "count", len(rejected), "files", strings.Join(rejected, ","))
	}

	// все файлы отклонены — то же, что запрос без файлов
	if len(staged) == 0 {
		v1.WriteBadRequest(w, r, "no files of allowed type in request")
		return
	}

	out, err := h.Registry.Create(r.Context(), toolkitsvc.CreateInput{
		Title:       title,
		Description: description,
		Categories:  categories,
		Staged:      staged,
	})
	if err != nil {
		logx.Error(h.Log, reqID, op, "registry create", err)
		// что не промоутнулось — подчищаем сразу; для уже перенесённых
		// файлов discard — no-op
		h.Registry.DiscardStaged(r.Context(), staged)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "created", "toolkit_id", out.ID, "files", len(out.Files))
	v1.WriteCreated(w, r, "toolkit created", out)
}

func (h *Handler) stageOne(r *http.Request, fh *multipart.FileHeader) (domain.StagedFile, error) {
	f, err := fh.Open()
	if err != nil {
		return domain.StagedFile{}, err
	}
	defer f.Close()

	mime := fh.Header.Get("Content-Type")
	if mime == "" {
		mime = "application/octet-stream"
	}
	return h.Store.Stage(r.Context(), f, fh.Filename, mime)
}
