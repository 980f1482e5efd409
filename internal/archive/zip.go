package archive

import (
	"archive/zip"
	"compress/flate"
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/domain"
)

// FileOpener — то, что билдеру нужно от хранилища.
type FileOpener interface {
	Open(ctx context.Context, id domain.ToolkitID, storedName string) (io.ReadCloser, int64, error)
}

// Builder собирает zip-архив тулкита потоково: записи уходят в writer
// по мере чтения из хранилища, целиком архив в памяти не держим.
type Builder struct {
	Log   *log.Logger
	Store FileOpener
}

// WriteZip пишет архив тулкита в w. Записи именуются очищенными
// оригинальными именами (не stored-именами); файлы, пропавшие из
// хранилища, молча пропускаются. Возвращает число записанных записей.
//
// После первого записанного байта продюсер не имеет права трогать
// HTTP-статус/заголовки — вызывающая сторона выставляет их заранее.
func (b *Builder) WriteZip(ctx context.Context, w io.Writer, t domain.Toolkit) (int, error) {
	zw := zip.NewWriter(w)
	// максимальное сжатие
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestCompression)
	})

	written := 0
	for _, f := range t.Files {
		rc, _, err := b.Store.Open(ctx, t.ID, f.StoredName)
		if err != nil {
			// рассинхрон манифеста и хранилища: запись пропускаем
			b.Log.Printf("zip %s: skip %q (%q): %v", t.ID, f.StoredName, f.OriginalName, err)
			continue
		}

		entry, err := zw.Create(domain.SanitizeFilename(f.OriginalName))
		if err != nil {
			rc.Close()
			return written, fmt.Errorf("create entry %q: %w", f.OriginalName, err)
		}
		if _, err := io.Copy(entry, rc); err != nil {
			rc.Close()
			// середина потока: восстановить ответ уже нельзя
			return written, fmt.Errorf("write entry %q: %w", f.OriginalName, err)
		}
		rc.Close()
		written++
	}

	// финализируем только после постановки всех записей
	if err := zw.Close(); err != nil {
		return written, fmt.Errorf("finalize archive: %w", err)
	}
	return written, nil
}

// ArchiveName — имя вложения: пробелы в заголовке заменяем дефисами.
func ArchiveName(title string) string {
	return strings.Join(strings.Fields(title), "-") + "-toolkit.zip"
}
