package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/sheet-music-catalog/internal/model"
)

// SheetMusicRepo encapsulates all database queries over the sheet_music
// table. Ownership scoping lives here: non-admin callers only reach rows
// whose user_id matches theirs on get/update/delete, while List is
// unscoped for every authenticated caller.
type SheetMusicRepo struct{ DB *sql.DB }

func NewSheetMusicRepo(db *sql.DB) *SheetMusicRepo { return &SheetMusicRepo{DB: db} }

const sheetMusicCols = "id, title, composer, composer_dates, opus, arranger, " +
	"instrumentation, `key`, tempo, difficulty, duration, publisher, " +
	"year_published, location, notes, user_id, created_at, updated_at"

func scanSheetMusic(scan func(dest ...any) error) (*model.SheetMusic, error) {
	var m model.SheetMusic
	err := scan(&m.ID, &m.Title, &m.Composer, &m.ComposerDates, &m.Opus,
		&m.Arranger, &m.Instrumentation, &m.Key, &m.Tempo, &m.Difficulty,
		&m.Duration, &m.Publisher, &m.YearPublished, &m.Location, &m.Notes,
		&m.UserID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListFilter holds the optional search filters for List. Query matches as a
// case-insensitive substring against title, composer and instrumentation;
// Difficulty matches exactly. Both AND together when present.
type ListFilter struct {
	Query      string
	Difficulty string
}

// buildListQuery assembles the List SQL and its arguments.
func buildListQuery(f ListFilter) (string, []any) {
	q := "SELECT " + sheetMusicCols + " FROM sheet_music"
	conds := []string{}
	args := []any{}

	if f.Query != "" {
		conds = append(conds, "(title LIKE ? OR composer LIKE ? OR instrumentation LIKE ?)")
		term := "%" + f.Query + "%"
		args = append(args, term, term, term)
	}
	if f.Difficulty != "" {
		conds = append(conds, "difficulty = ?")
		args = append(args, f.Difficulty)
	}
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY created_at DESC"
	return q, args
}

// List returns records matching the filter, newest first. No ownership
// restriction applies here: every authenticated user sees the full catalog
// in listings even though single-record access is owner-scoped.
func (r *SheetMusicRepo) List(ctx context.Context, f ListFilter) ([]model.SheetMusic, error) {
	q, args := buildListQuery(f)
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.SheetMusic{}
	for rows.Next() {
		m, err := scanSheetMusic(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

// ownerScope appends the ownership restriction to a single-record query.
// Admins bypass it; everyone else only reaches rows they own.
func ownerScope(q string, args []any, userID uint64, isAdmin bool) (string, []any) {
	if isAdmin {
		return q, args
	}
	return q + " AND user_id = ?", append(args, userID)
}

// GetForUser fetches a record by id, restricted to rows owned by userID
// unless the caller is an admin. A missing row and a row owned by someone
// else both return ErrNotFound.
func (r *SheetMusicRepo) GetForUser(ctx context.Context, id, userID uint64, isAdmin bool) (*model.SheetMusic, error) {
	q, args := ownerScope("SELECT "+sheetMusicCols+" FROM sheet_music WHERE id = ?", []any{id}, userID, isAdmin)
	m, err := scanSheetMusic(r.DB.QueryRowContext(ctx, q, args...).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Create inserts a record owned by userID and returns the stored row so the
// response carries the database-assigned id and timestamps.
func (r *SheetMusicRepo) Create(ctx context.Context, f model.SheetMusicFields, userID uint64) (*model.SheetMusic, error) {
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO sheet_music
		(title, composer, composer_dates, opus, arranger, instrumentation,
		 `+"`key`"+`, tempo, difficulty, duration, publisher, year_published,
		 location, notes, user_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.Title, f.Composer, f.ComposerDates, f.Opus, f.Arranger,
		f.Instrumentation, f.Key, f.Tempo, f.Difficulty, f.Duration,
		f.Publisher, f.YearPublished, f.Location, f.Notes, userID)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	m, err := scanSheetMusic(r.DB.QueryRowContext(ctx,
		"SELECT "+sheetMusicCols+" FROM sheet_music WHERE id = ?", id).Scan)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Update replaces every descriptive column of a record. The ownership check
// is a gated precondition read, not part of the write: first an owner-scoped
// SELECT must find the row, then the UPDATE is addressed by id alone. The
// window between the two is accepted.
func (r *SheetMusicRepo) Update(ctx context.Context, id, userID uint64, isAdmin bool, f model.SheetMusicFields) (*model.SheetMusic, error) {
	check, args := ownerScope("SELECT id FROM sheet_music WHERE id = ?", []any{id}, userID, isAdmin)
	var found uint64
	if err := r.DB.QueryRowContext(ctx, check, args...).Scan(&found); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	_, err := r.DB.ExecContext(ctx, `
		UPDATE sheet_music
		SET title = ?, composer = ?, composer_dates = ?, opus = ?,
		    arranger = ?, instrumentation = ?, `+"`key`"+` = ?, tempo = ?,
		    difficulty = ?, duration = ?, publisher = ?, year_published = ?,
		    location = ?, notes = ?
		WHERE id = ?`,
		f.Title, f.Composer, f.ComposerDates, f.Opus, f.Arranger,
		f.Instrumentation, f.Key, f.Tempo, f.Difficulty, f.Duration,
		f.Publisher, f.YearPublished, f.Location, f.Notes, id)
	if err != nil {
		return nil, err
	}
	m, err := scanSheetMusic(r.DB.QueryRowContext(ctx,
		"SELECT "+sheetMusicCols+" FROM sheet_music WHERE id = ?", id).Scan)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Delete removes a record in a single owner-scoped statement. Zero affected
// rows means not found or not owned; both are ErrNotFound.
func (r *SheetMusicRepo) Delete(ctx context.Context, id, userID uint64, isAdmin bool) error {
	q, args := ownerScope("DELETE FROM sheet_music WHERE id = ?", []any{id}, userID, isAdmin)
	res, err := r.DB.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
