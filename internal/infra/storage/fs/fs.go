package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/domain"
)

const stagingDirName = "temp-uploads"

// Store — файловое хранилище на локальном диске.
// Постоянные файлы: <root>/toolkit/<toolkitID>/<storedName>,
// временная зона: <root>/toolkit/temp-uploads/<storedName>.
type Store struct {
	logger  *log.Logger
	base    string // <root>/toolkit
	staging string // <root>/toolkit/temp-uploads
}

func New(root string, logger *log.Logger) (*Store, error) {
	base := filepath.Join(root, "toolkit")
	staging := filepath.Join(base, stagingDirName)
	// временную зону создаём один раз при старте процесса
	if err := os.MkdirAll(staging, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir staging: %w", err)
	}
	return &Store{logger: logger, base: base, staging: staging}, nil
}

// Stage пишет поток во временную зону под сгенерированным именем
// <epoch-ms>-<random><ext>. Итоговый тулкит ещё не известен.
func (s *Store) Stage(ctx context.Context, r io.Reader, originalName, mime string) (domain.StagedFile, error) {
	stored := generateStoredName(originalName)
	dst := filepath.Join(s.staging, stored)

	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		s.logger.Printf("stage create %q: %v", stored, err)
		return domain.StagedFile{}, err
	}
	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		// не оставляем обрывок в staging
		_ = os.Remove(dst)
		s.logger.Printf("stage copy %q: %v", stored, err)
		return domain.StagedFile{}, err
	}

	s.logger.Printf("staged %q as %q (%d bytes)", originalName, stored, n)
	return domain.StagedFile{
		OriginalName: originalName,
		StoredName:   stored,
		MIME:         mime,
		SizeBytes:    n,
	}, nil
}

func (s *Store) DiscardStaged(ctx context.Context, storedName string) error {
	err := os.Remove(filepath.Join(s.staging, storedName))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.Printf("discard %q: %v", storedName, err)
		return err
	}
	return nil
}

// Promote переносит файл из временной зоны в каталог тулкита (rename, не copy).
func (s *Store) Promote(ctx context.Context, id domain.ToolkitID, storedName string) error {
	dir := s.toolkitDir(id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		s.logger.Printf("promote mkdir %s: %v", id, err)
		return err
	}
	src := filepath.Join(s.staging, storedName)
	dst := filepath.Join(dir, storedName)
	if err := os.Rename(src, dst); err != nil {
		s.logger.Printf("promote rename %q -> %s: %v", storedName, id, err)
		return err
	}
	s.logger.Printf("promoted %q into %s", storedName, id)
	return nil
}

func (s *Store) Open(ctx context.Context, id domain.ToolkitID, storedName string) (io.ReadCloser, int64, error) {
	f, err := os.Open(filepath.Join(s.toolkitDir(id), storedName))
	if err != nil {
		return nil, 0, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, err
	}
	return f, fi.Size(), nil
}

func (s *Store) Exists(ctx context.Context, id domain.ToolkitID) (bool, error) {
	fi, err := os.Stat(s.toolkitDir(id))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return fi.IsDir(), nil
}

func (s *Store) RemoveAll(ctx context.Context, id domain.ToolkitID) error {
	// os.RemoveAll сам игнорирует отсутствие каталога
	if err := os.RemoveAll(s.toolkitDir(id)); err != nil {
		s.logger.Printf("remove all %s: %v", id, err)
		return err
	}
	s.logger.Printf("removed dir %s", id)
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	_, err := os.Stat(s.staging)
	return err
}

// BaseDir — корень постоянных каталогов (для статической отдачи /uploads).
func (s *Store) BaseDir() string { return s.base }

func (s *Store) toolkitDir(id domain.ToolkitID) string {
	return filepath.Join(s.base, id.String())
}

func generateStoredName(originalName string) string {
	ext := filepath.Ext(originalName)
	return fmt.Sprintf("%d-%d%s", time.Now().UnixMilli(), rand.IntN(1_000_000_000), ext)
}
