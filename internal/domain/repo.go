package domain

import (
	"context"
	"time"
)

type UsersRepo interface {
	Close()
	Ping(context.Context) error
	CreateUser(ctx context.Context, login string, passHash string) (User, error)
	UserByLogin(ctx context.Context, login string) (User, error)
	UserByID(ctx context.Context, id UserID) (User, error)
}

type ToolkitsRepo interface {
	// CreatePending пишет intent-запись (status=pending) без манифеста.
	CreatePending(ctx context.Context, title, description string, categories []string) (Toolkit, error)
	// Finalize записывает манифест и переводит запись в ready.
	Finalize(ctx context.Context, id ToolkitID, files []FileEntry) (Toolkit, error)

	// ToolkitByID возвращает только ready-записи; pending наружу не видны.
	ToolkitByID(ctx context.Context, id ToolkitID) (Toolkit, error)
	// ToolkitsList — все ready-тулкиты, новые первыми.
	ToolkitsList(ctx context.Context) ([]Toolkit, error)

	ToolkitUpdate(ctx context.Context, id ToolkitID, upd ToolkitUpdate) (Toolkit, error)
	ToolkitDelete(ctx context.Context, id ToolkitID) error

	// StalePending — pending-записи старше cutoff (для reconciliation на старте).
	StalePending(ctx context.Context, cutoff time.Time) ([]Toolkit, error)
}
