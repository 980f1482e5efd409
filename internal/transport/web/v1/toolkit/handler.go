package toolkit

import (
	"context"
	"io"
	"log"

	"github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/domain"
	toolkitsvc "github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/toolkit"
)

// Registry — то, что хендлерам нужно от реестра тулкитов.
type Registry interface {
	Create(ctx context.Context, in toolkitsvc.CreateInput) (domain.Toolkit, error)
	DiscardStaged(ctx context.Context, staged []domain.StagedFile)
	Get(ctx context.Context, id domain.ToolkitID) (domain.Toolkit, error)
	List(ctx context.Context) ([]domain.Toolkit, error)
	Update(ctx context.Context, id domain.ToolkitID, upd domain.ToolkitUpdate) (domain.Toolkit, error)
	Delete(ctx context.Context, id domain.ToolkitID) error
}

// Archiver пишет zip тулкита в поток ответа.
type Archiver interface {
	WriteZip(ctx context.Context, w io.Writer, t domain.Toolkit) (int, error)
}

type Handler struct {
	Log      *log.Logger
	Registry Registry
	Store    domain.FileStore
	Archive  Archiver
}
