package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/domain"
)

const toolkitCols = "id, title, description, categories, status, created_at, updated_at"

func (r *PGRepo) CreatePending(ctx context.Context, title, description string, categories []string) (domain.Toolkit, error) {
	q := r.qb().Insert(fmt.Sprintf("%s.toolkits", r.schema)).
		Columns("title", "description", "categories", "status").
		Values(title, description, categories, domain.ToolkitPending).
		Suffix("RETURNING " + toolkitCols)

	sqlStr, args, _ := q.ToSql()
	r.logSQL("CreatePending", sqlStr, args)

	start := time.Now()
	t, err := r.scanToolkit(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		r.logger.Printf("CreatePending scan error after %s: %v", time.Since(start), err)
		return domain.Toolkit{}, err
	}
	r.logger.Printf("CreatePending ok in %s id=%s title=%q", time.Since(start), t.ID, t.Title)
	return t, nil
}

// Finalize пишет манифест и переводит intent-запись в ready.
// Порядок важен: сначала строки файлов, потом статус — полузаписанный
// манифест остаётся невидимым (запись всё ещё pending).
func (r *PGRepo) Finalize(ctx context.Context, id domain.ToolkitID, files []domain.FileEntry) (domain.Toolkit, error) {
	table := fmt.Sprintf("%s.toolkit_files", r.schema)
	for i, f := range files {
		q := r.qb().Insert(table).
			Columns("toolkit_id", "position", "original_name", "stored_name", "mime_type", "size_bytes", "path").
			Values(id, i, f.OriginalName, f.StoredName, f.MIME, f.SizeBytes, f.Path)
		sqlStr, args, _ := q.ToSql()
		r.logSQL("Finalize.file", sqlStr, args)

		if _, err := r.pool.Exec(ctx, sqlStr, args...); err != nil {
			r.logger.Printf("Finalize file insert error: %v", err)
			return domain.Toolkit{}, err
		}
	}

	q := r.qb().Update(fmt.Sprintf("%s.toolkits", r.schema)).
		SetMap(map[string]any{
			"status":     domain.ToolkitReady,
			"updated_at": sq.Expr("now()"),
		}).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + toolkitCols)
	sqlStr, args, _ := q.ToSql()
	r.logSQL("Finalize", sqlStr, args)

	start := time.Now()
	t, err := r.scanToolkit(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		r.logger.Printf("Finalize scan error after %s: %v", time.Since(start), err)
		return domain.Toolkit{}, err
	}
	t.Files = files
	r.logger.Printf("Finalize ok in %s id=%s files=%d", time.Since(start), t.ID, len(files))
	return t, nil
}

func (r *PGRepo) ToolkitByID(ctx context.Context, id domain.ToolkitID) (domain.Toolkit, error) {
	q := r.qb().Select(toolkitCols).
		From(fmt.Sprintf("%s.toolkits", r.schema)).
		Where(sq.Eq{"id": id, "status": domain.ToolkitReady})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("ToolkitByID", sqlStr, args)

	start := time.Now()
	t, err := r.scanToolkit(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("ToolkitByID not found in %s id=%s", time.Since(start), id)
			return domain.Toolkit{}, domain.ErrNotFound
		}
		r.logger.Printf("ToolkitByID scan error after %s: %v", time.Since(start), err)
		return domain.Toolkit{}, err
	}

	if t.Files, err = r.filesByToolkit(ctx, id); err != nil {
		return domain.Toolkit{}, err
	}
	r.logger.Printf("ToolkitByID ok in %s id=%s files=%d", time.Since(start), t.ID, len(t.Files))
	return t, nil
}

// ToolkitsList — все ready-тулкиты, новые первыми.
func (r *PGRepo) ToolkitsList(ctx context.Context) ([]domain.Toolkit, error) {
	q := r.qb().Select(toolkitCols).
		From(fmt.Sprintf("%s.toolkits", r.schema)).
		Where(sq.Eq{"status": domain.ToolkitReady}).
		OrderBy("created_at DESC")

	sqlStr, args, _ := q.ToSql()
	r.logSQL("ToolkitsList", sqlStr, args)

	start := time.Now()
	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Printf("ToolkitsList query error after %s: %v", time.Since(start), err)
		return nil, err
	}
	defer rows.Close()

	var res []domain.Toolkit
	for rows.Next() {
		t, err := r.scanToolkit(rows)
		if err != nil {
			r.logger.Printf("ToolkitsList scan error: %v", err)
			return nil, err
		}
		res = append(res, t)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("ToolkitsList rows error: %v", err)
		return nil, err
	}

	for i := range res {
		if res[i].Files, err = r.filesByToolkit(ctx, res[i].ID); err != nil {
			return nil, err
		}
	}
	r.logger.Printf("ToolkitsList ok in %s count=%d", time.Since(start), len(res))
	return res, nil
}

func (r *PGRepo) ToolkitUpdate(ctx context.Context, id domain.ToolkitID, upd domain.ToolkitUpdate) (domain.Toolkit, error) {
	set := map[string]any{"updated_at": sq.Expr("now()")}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Categories != nil {
		set["categories"] = upd.Categories
	}

	q := r.qb().Update(fmt.Sprintf("%s.toolkits", r.schema)).
		SetMap(set).
		Where(sq.Eq{"id": id, "status": domain.ToolkitReady}).
		Suffix("RETURNING " + toolkitCols)

	sqlStr, args, _ := q.ToSql()
	r.logSQL("ToolkitUpdate", sqlStr, args)

	start := time.Now()
	t, err := r.scanToolkit(r.pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("ToolkitUpdate not found in %s id=%s", time.Since(start), id)
			return domain.Toolkit{}, domain.ErrNotFound
		}
		r.logger.Printf("ToolkitUpdate scan error after %s: %v", time.Since(start), err)
		return domain.Toolkit{}, err
	}

	if t.Files, err = r.filesByToolkit(ctx, id); err != nil {
		return domain.Toolkit{}, err
	}
	r.logger.Printf("ToolkitUpdate ok in %s id=%s", time.Since(start), t.ID)
	return t, nil
}

func (r *PGRepo) ToolkitDelete(ctx context.Context, id domain.ToolkitID) error {
	// toolkit_files уходят каскадом
	q := r.qb().Delete(fmt.Sprintf("%s.toolkits", r.schema)).
		Where(sq.Eq{"id": id})
	sqlStr, args, _ := q.ToSql()
	r.logSQL("ToolkitDelete", sqlStr, args)

	start := time.Now()
	tag, err := r.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Printf("ToolkitDelete exec error after %s: %v", time.Since(start), err)
		return err
	}
	if tag.RowsAffected() == 0 {
		r.logger.Printf("ToolkitDelete no rows affected in %s id=%s", time.Since(start), id)
		return domain.ErrNotFound
	}
	r.logger.Printf("ToolkitDelete ok in %s id=%s", time.Since(start), id)
	return nil
}

// StalePending — intent-записи старше cutoff, оставшиеся после сбоя Create.
func (r *PGRepo) StalePending(ctx context.Context, cutoff time.Time) ([]domain.Toolkit, error) {
	q := r.qb().Select(toolkitCols).
		From(fmt.Sprintf("%s.toolkits", r.schema)).
		Where(sq.Eq{"status": domain.ToolkitPending}).
		Where(sq.Lt{"created_at": cutoff})

	sqlStr, args, _ := q.ToSql()
	r.logSQL("StalePending", sqlStr, args)

	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Printf("StalePending query error: %v", err)
		return nil, err
	}
	defer rows.Close()

	var res []domain.Toolkit
	for rows.Next() {
		t, err := r.scanToolkit(rows)
		if err != nil {
			r.logger.Printf("StalePending scan error: %v", err)
			return nil, err
		}
		res = append(res, t)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("StalePending rows error: %v", err)
		return nil, err
	}
	r.logger.Printf("StalePending ok count=%d", len(res))
	return res, nil
}

// ---- helpers ----

func (r *PGRepo) scanToolkit(row pgx.Row) (domain.Toolkit, error) {
	var t domain.Toolkit
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Categories,
		&t.Status, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func (r *PGRepo) filesByToolkit(ctx context.Context, id domain.ToolkitID) ([]domain.FileEntry, error) {
	q := r.qb().Select("original_name", "stored_name", "mime_type", "size_bytes", "path").
		From(fmt.Sprintf("%s.toolkit_files", r.schema)).
		Where(sq.Eq{"toolkit_id": id}).
		OrderBy("position ASC")

	sqlStr, args, _ := q.ToSql()
	r.logSQL("filesByToolkit", sqlStr, args)

	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		r.logger.Printf("filesByToolkit query error: %v", err)
		return nil, err
	}
	defer rows.Close()

	var files []domain.FileEntry
	for rows.Next() {
		var f domain.FileEntry
		if err := rows.Scan(&f.OriginalName, &f.StoredName, &f.MIME, &f.SizeBytes, &f.Path); err != nil {
			r.logger.Printf("filesByToolkit scan error: %v", err)
			return nil, err
		}
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("filesByToolkit rows error: %v", err)
		return nil, err
	}
	return files, nil
}
