package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"path"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/domain"
)

const (
	basePrefix    = "toolkit/"
	stagingPrefix = basePrefix + "temp-uploads/"
)

type Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	PathStyle bool
}

// Storage — файловое хранилище тулкитов поверх S3/MinIO.
// Ключи: toolkit/<toolkitID>/<storedName>, временная зона —
// toolkit/temp-uploads/<storedName>.
type Storage struct {
	logger *log.Logger
	cl     *minio.Client
	bucket string
}

func New(ctx context.Context, cfg Config, logger *log.Logger) (*Storage, error) {
	opts := &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	}
	if cfg.PathStyle {
		opts.BucketLookup = minio.BucketLookupPath
	}
	cl, err := minio.New(cfg.Endpoint, opts)
	if err != nil {
		return nil, err
	}
	return &Storage{logger: logger, cl: cl, bucket: cfg.Bucket}, nil
}

func (s *Storage) Stage(ctx context.Context, r io.Reader, originalName, mime string) (domain.StagedFile, error) {
	stored := generateStoredName(originalName)
	key := stagingPrefix + stored

	info, err := s.cl.PutObject(ctx, s.bucket, key, r, -1, minio.PutObjectOptions{
		ContentType: mime,
	})
	if err != nil {
		s.logger.Printf("stage put %q: %v", key, err)
		return domain.StagedFile{}, err
	}
	s.logger.Printf("staged %q as %q (%d bytes)", originalName, stored, info.Size)
	return domain.StagedFile{
		OriginalName: originalName,
		StoredName:   stored,
		MIME:         mime,
		SizeBytes:    info.Size,
	}, nil
}

func (s *Storage) DiscardStaged(ctx context.Context, storedName string) error {
	return s.cl.RemoveObject(ctx, s.bucket, stagingPrefix+storedName, minio.RemoveObjectOptions{})
}

// Promote: в S3 нет rename — копируем на итоговый ключ и убираем временный.
func (s *Storage) Promote(ctx context.Context, id domain.ToolkitID, storedName string) error {
	src := minio.CopySrcOptions{Bucket: s.bucket, Object: stagingPrefix + storedName}
	dst := minio.CopyDestOptions{Bucket: s.bucket, Object: s.objectKey(id, storedName)}
	if _, err := s.cl.CopyObject(ctx, dst, src); err != nil {
		s.logger.Printf("promote copy %q -> %s: %v", storedName, id, err)
		return err
	}
	if err := s.cl.RemoveObject(ctx, s.bucket, stagingPrefix+storedName, minio.RemoveObjectOptions{}); err != nil {
		s.logger.Printf("promote cleanup %q: %v", storedName, err)
		return err
	}
	s.logger.Printf("promoted %q into %s", storedName, id)
	return nil
}

func (s *Storage) Open(ctx context.Context, id domain.ToolkitID, storedName string) (io.ReadCloser, int64, error) {
	key := s.objectKey(id, storedName)
	info, err := s.cl.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return nil, 0, err
	}
	obj, err := s.cl.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, 0, err
	}
	return obj, info.Size, nil
}

// Exists: префикс "существует", если под ним есть хотя бы один объект.
func (s *Storage) Exists(ctx context.Context, id domain.ToolkitID) (bool, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	prefix := basePrefix + id.String() + "/"
	for obj := range s.cl.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix, MaxKeys: 1}) {
		if obj.Err != nil {
			return false, obj.Err
		}
		return true, nil
	}
	return false, nil
}

func (s *Storage) RemoveAll(ctx context.Context, id domain.ToolkitID) error {
	prefix := basePrefix + id.String() + "/"
	var firstErr error
	for obj := range s.cl.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return obj.Err
		}
		if err := s.cl.RemoveObject(ctx, s.bucket, obj.Key, minio.RemoveObjectOptions{}); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		s.logger.Printf("remove all %s: %v", id, firstErr)
		return firstErr
	}
	s.logger.Printf("removed prefix %s", id)
	return nil
}

func (s *Storage) Ping(ctx context.Context) error {
	ok, err := s.cl.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("bucket does not exist")
	}
	return nil
}

func (s *Storage) objectKey(id domain.ToolkitID, storedName string) string {
	return basePrefix + id.String() + "/" + storedName
}

func generateStoredName(originalName string) string {
	ext := path.Ext(originalName)
	return fmt.Sprintf("%d-%d%s", time.Now().UnixMilli(), rand.IntN(1_000_000_000), ext)
}
