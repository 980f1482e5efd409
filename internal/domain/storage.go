package domain

import (
	"context"
	"io"
)

// Результат стейджинга одного файла
type StagedFile struct {
	OriginalName string
	StoredName   string
	MIME         string
	SizeBytes    int64
}

// Хранилище файлов тулкитов (локальный диск или S3/MinIO).
// Жизненный цикл файла: Stage (временная зона, id тулкита ещё не известен)
// → Promote (перенос в постоянный каталог тулкита) → Open/RemoveAll.
type FileStore interface {
	// Stage сохраняет поток во временную зону под сгенерированным именем.
	Stage(ctx context.Context, r io.Reader, originalName, mime string) (StagedFile, error)
	// DiscardStaged убирает файл из временной зоны (отклонённый запрос).
	DiscardStaged(ctx context.Context, storedName string) error
	// Promote переносит файл из временной зоны в каталог тулкита (move, не copy).
	Promote(ctx context.Context, id ToolkitID, storedName string) error

	// Open открывает файл тулкита для чтения (stream).
	Open(ctx context.Context, id ToolkitID, storedName string) (io.ReadCloser, int64, error)
	// Exists — есть ли у тулкита постоянный каталог/префикс.
	Exists(ctx context.Context, id ToolkitID) (bool, error)
	// RemoveAll рекурсивно удаляет каталог тулкита; отсутствие — не ошибка.
	RemoveAll(ctx context.Context, id ToolkitID) error

	Ping(context.Context) error
}
