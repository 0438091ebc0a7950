package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/sheet-music-catalog/internal/model"
)

func testFields(title string) model.SheetMusicFields {
	return model.SheetMusicFields{Title: title}
}

// The ownership invariant lives in the SQL these methods issue: non-admin
// callers get an extra user_id restriction on get/update/delete, admins do
// not, and a row that the restriction filters out is indistinguishable from
// a missing one. sqlmock with exact query matching pins all three.

func newMockRepo(t *testing.T) (*SheetMusicRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSheetMusicRepo(db), mock
}

func sheetMusicRow(id, ownerID uint64, title string) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{
		"id", "title", "composer", "composer_dates", "opus", "arranger",
		"instrumentation", "key", "tempo", "difficulty", "duration",
		"publisher", "year_published", "location", "notes", "user_id",
		"created_at", "updated_at",
	}).AddRow(id, title, nil, nil, nil, nil, nil, nil, nil, nil, nil,
		nil, nil, nil, nil, ownerID, now, now)
}

func TestGetForUser_OwnerSees(t *testing.T) {
	t.Parallel()
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT " + sheetMusicCols + " FROM sheet_music WHERE id = ? AND user_id = ?").
		WithArgs(int64(10), int64(7)).
		WillReturnRows(sheetMusicRow(10, 7, "Sonata"))

	rec, err := repo.GetForUser(context.Background(), 10, 7, false)
	require.NoError(t, err)
	require.Equal(t, uint64(10), rec.ID)
	require.Equal(t, "Sonata", rec.Title)
	require.NotNil(t, rec.UserID)
	require.Equal(t, uint64(7), *rec.UserID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetForUser_ForeignRecordCollapsesToNotFound(t *testing.T) {
	t.Parallel()
	repo, mock := newMockRepo(t)

	// The scoped query finds nothing for user 8 even though the row exists;
	// the caller cannot tell forbidden from absent.
	mock.ExpectQuery("SELECT " + sheetMusicCols + " FROM sheet_music WHERE id = ? AND user_id = ?").
		WithArgs(int64(10), int64(8)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetForUser(context.Background(), 10, 8, false)
	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetForUser_AdminBypassesScope(t *testing.T) {
	t.Parallel()
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT " + sheetMusicCols + " FROM sheet_music WHERE id = ?").
		WithArgs(int64(10)).
		WillReturnRows(sheetMusicRow(10, 7, "Sonata"))

	rec, err := repo.GetForUser(context.Background(), 10, 99, true)
	require.NoError(t, err)
	require.Equal(t, uint64(10), rec.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_GateRejectsNonOwnerBeforeWrite(t *testing.T) {
	t.Parallel()
	repo, mock := newMockRepo(t)

	// Only the precondition read is expected; ExpectationsWereMet would
	// fail if the UPDATE were attempted after the gate misses.
	mock.ExpectQuery("SELECT id FROM sheet_music WHERE id = ? AND user_id = ?").
		WithArgs(int64(10), int64(8)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), 10, 8, false, testFields("Sonata"))
	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_OwnerPassesGateThenWritesByIDAlone(t *testing.T) {
	t.Parallel()
	// Regexp matching here: the UPDATE statement spans several lines and
	// only its shape matters once the gate SQL is pinned above.
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	repo := NewSheetMusicRepo(db)

	mock.ExpectQuery(`SELECT id FROM sheet_music WHERE id = \? AND user_id = \?`).
		WithArgs(int64(10), int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectExec(`UPDATE sheet_music`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT .+ FROM sheet_music WHERE id = \?`).
		WithArgs(int64(10)).
		WillReturnRows(sheetMusicRow(10, 7, "Sonata (rev)"))

	rec, err := repo.Update(context.Background(), 10, 7, false, testFields("Sonata (rev)"))
	require.NoError(t, err)
	require.Equal(t, "Sonata (rev)", rec.Title)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_NonOwnerZeroRowsNotFound(t *testing.T) {
	t.Parallel()
	repo, mock := newMockRepo(t)

	mock.ExpectExec("DELETE FROM sheet_music WHERE id = ? AND user_id = ?").
		WithArgs(int64(10), int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 10, 8, false)
	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_OwnerScopedSucceeds(t *testing.T) {
	t.Parallel()
	repo, mock := newMockRepo(t)

	mock.ExpectExec("DELETE FROM sheet_music WHERE id = ? AND user_id = ?").
		WithArgs(int64(10), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), 10, 7, false))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_AdminUnscoped(t *testing.T) {
	t.Parallel()
	repo, mock := newMockRepo(t)

	mock.ExpectExec("DELETE FROM sheet_music WHERE id = ?").
		WithArgs(int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), 10, 99, true))
	require.NoError(t, mock.ExpectationsWereMet())
}
