package toolkit

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/domain"
)

// Service — реестр тулкитов: CRUD над метаданными плюс оркестрация
// переноса файлов при создании. Два хранилища (БД и файлы) не
// транзакционны между собой; половинчатый Create остаётся pending
// и подбирается ReconcileStalePending на старте.
type Service struct {
	log   *log.Logger
	repo  domain.ToolkitsRepo
	store domain.FileStore
	cache domain.Cache

	toolkitTTL int // секунд
	listTTL    int // секунд
}

func New(logger *log.Logger, repo domain.ToolkitsRepo, store domain.FileStore, cache domain.Cache, toolkitTTL, listTTL int) *Service {
	return &Service{
		log:        logger,
		repo:       repo,
		store:      store,
		cache:      cache,
		toolkitTTL: toolkitTTL,
		listTTL:    listTTL,
	}
}

type CreateInput struct {
	Title       string
	Description string
	Categories  []string
	Staged      []domain.StagedFile
}

// Create: intent-запись (pending) → перенос файлов → манифест + ready.
func (s *Service) Create(ctx context.Context, in CreateInput) (domain.Toolkit, error) {
	if !domain.ValidToolkitInput(in.Title, in.Description, in.Categories) || len(in.Staged) == 0 {
		return domain.Toolkit{}, domain.ErrBadParams
	}

	t, err := s.repo.CreatePending(ctx, in.Title, in.Description, in.Categories)
	if err != nil {
		return domain.Toolkit{}, fmt.Errorf("create pending: %w", err)
	}

	files := make([]domain.FileEntry, 0, len(in.Staged))
	for _, sf := range in.Staged {
		if err := s.store.Promote(ctx, t.ID, sf.StoredName); err != nil {
			// запись остаётся pending — подберёт reconciliation
			s.log.Printf("create %s: promote %q failed: %v", t.ID, sf.StoredName, err)
			return domain.Toolkit{}, fmt.Errorf("promote %s: %w", sf.StoredName, err)
		}
		files = append(files, domain.FileEntry{
			OriginalName: sf.OriginalName,
			StoredName:   sf.StoredName,
			MIME:         sf.MIME,
			SizeBytes:    sf.SizeBytes,
			Path:         fmt.Sprintf("/uploads/toolkit/%s/%s", t.ID, sf.StoredName),
		})
	}

	ready, err := s.repo.Finalize(ctx, t.ID, files)
	if err != nil {
		s.log.Printf("create %s: finalize failed: %v", t.ID, err)
		return domain.Toolkit{}, fmt.Errorf("finalize: %w", err)
	}

	if err := s.cache.Del(ctx, domain.CacheKeyToolkitList()); err != nil {
		s.log.Printf("create %s: cache invalidate: %v", ready.ID, err)
	}
	return ready, nil
}

// DiscardStaged чистит временную зону после отклонённого запроса.
func (s *Service) DiscardStaged(ctx context.Context, staged []domain.StagedFile) {
	for _, sf := range staged {
		if err := s.store.DiscardStaged(ctx, sf.StoredName); err != nil {
			s.log.Printf("discard staged %q: %v", sf.StoredName, err)
		}
	}
}

// Get — чтение через кеш.
func (s *Service) Get(ctx context.Context, id domain.ToolkitID) (domain.Toolkit, error) {
	key := domain.CacheKeyToolkit(id)
	if b, err := s.cache.Get(ctx, key); err == nil && len(b) > 0 {
		var t domain.Toolkit
		if err := json.Unmarshal(b, &t); err == nil {
			return t, nil
		}
	} else if err != nil {
		s.log.Printf("get %s: cache get: %v", id, err)
	}

	t, err := s.repo.ToolkitByID(ctx, id)
	if err != nil {
		return domain.Toolkit{}, err
	}
	if b, err := json.Marshal(t); err == nil {
		if err := s.cache.Set(ctx, key, b, s.toolkitTTL); err != nil {
			s.log.Printf("get %s: cache set: %v", id, err)
		}
	}
	return t, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Toolkit, error) {
	key := domain.CacheKeyToolkitList()
	if b, err := s.cache.Get(ctx, key); err == nil && len(b) > 0 {
		var ts []domain.Toolkit
		if err := json.Unmarshal(b, &ts); err == nil {
			return ts, nil
		}
	} else if err != nil {
		s.log.Printf("list: cache get: %v", err)
	}

	ts, err := s.repo.ToolkitsList(ctx)
	if err != nil {
		return nil, err
	}
	if b, err := json.Marshal(ts); err == nil {
		if err := s.cache.Set(ctx, key, b, s.listTTL); err != nil {
			s.log.Printf("list: cache set: %v", err)
		}
	}
	return ts, nil
}

func (s *Service) Update(ctx context.Context, id domain.ToolkitID, upd domain.ToolkitUpdate) (domain.Toolkit, error) {
	if upd.Title == nil && upd.Description == nil && upd.Categories == nil {
		return domain.Toolkit{}, domain.ErrBadParams
	}
	// присланные поля проверяем теми же правилами, что и при создании
	if upd.Title != nil && strings.TrimSpace(*upd.Title) == "" {
		return domain.Toolkit{}, domain.ErrBadParams
	}
	if upd.Description != nil && strings.TrimSpace(*upd.Description) == "" {
		return domain.Toolkit{}, domain.ErrBadParams
	}
	if upd.Categories != nil {
		if len(upd.Categories) == 0 {
			return domain.Toolkit{}, domain.ErrBadParams
		}
		for _, c := range upd.Categories {
			if strings.TrimSpace(c) == "" {
				return domain.Toolkit{}, domain.ErrBadParams
			}
		}
	}

	t, err := s.repo.ToolkitUpdate(ctx, id, upd)
	if err != nil {
		return domain.Toolkit{}, err
	}

	if err := s.cache.Del(ctx, domain.CacheKeyToolkit(id), domain.CacheKeyToolkitList()); err != nil {
		s.log.Printf("update %s: cache invalidate: %v", id, err)
	}
	return t, nil
}

// Delete: метаданные ищем первыми; каталог убираем до записи,
// оба шага независимы (см. reconciliation).
func (s *Service) Delete(ctx context.Context, id domain.ToolkitID) error {
	if _, err := s.repo.ToolkitByID(ctx, id); err != nil {
		return err
	}

	// best effort: отсутствие каталога не считаем ошибкой
	if err := s.store.RemoveAll(ctx, id); err != nil {
		s.log.Printf("delete %s: remove files: %v", id, err)
	}
	if err := s.repo.ToolkitDelete(ctx, id); err != nil {
		return err
	}

	if err := s.cache.Del(ctx, domain.CacheKeyToolkit(id), domain.CacheKeyToolkitList()); err != nil {
		s.log.Printf("delete %s: cache invalidate: %v", id, err)
	}
	return nil
}

// ReconcileStalePending откатывает intent-записи, оставшиеся от
// прерванных Create: убирает каталог (если успел появиться) и запись.
func (s *Service) ReconcileStalePending(ctx context.Context, olderThan time.Duration) (int, error) {
	stale, err := s.repo.StalePending(ctx, time.Now().Add(-olderThan))
	if err != nil {
		return 0, fmt.Errorf("list stale pending: %w", err)
	}

	cleaned := 0
	for _, t := range stale {
		if err := s.store.RemoveAll(ctx, t.ID); err != nil {
			s.log.Printf("reconcile %s: remove files: %v", t.ID, err)
			continue
		}
		if err := s.repo.ToolkitDelete(ctx, t.ID); err != nil {
			s.log.Printf("reconcile %s: delete record: %v", t.ID, err)
			continue
		}
		s.log.Printf("reconcile: rolled back pending toolkit %s (created %s)", t.ID, t.CreatedAt.Format(time.RFC3339))
		cleaned++
	}
	return cleaned, nil
}
