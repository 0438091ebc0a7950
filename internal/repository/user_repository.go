package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/sheet-music-catalog/internal/model"
	"github.com/iliyamo/sheet-music-catalog/internal/utils"
)

// UserRepo encapsulates all database queries over the users table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userCols = "id, username, email, password, full_name, role, created_at, updated_at"

func scanUser(row *sql.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash,
		&u.FullName, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// Create hashes the password and inserts a new user with the default role.
// Uniqueness is checked with a pre-lookup rather than relying on the unique
// indexes; concurrent identical registrations can race past it, which is
// accepted.
func (r *UserRepo) Create(ctx context.Context, username, email, password string, fullName *string, cost int) (uint64, error) {
	var existing uint64
	err := r.DB.QueryRowContext(ctx,
		"SELECT id FROM users WHERE username = ? OR email = ? LIMIT 1",
		username, email).Scan(&existing)
	if err == nil {
		return 0, ErrUserExists
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}

	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username, email, password, full_name) VALUES (?,?,?,?)",
		username, email, hash, fullName)
	if err != nil {
		// The pre-lookup race lost: the unique index caught the duplicate.
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrUserExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByUsernameOrEmail fetches a user whose username or email matches the
// given login. Login may be either; the original client sends both through
// one field.
func (r *UserRepo) GetByUsernameOrEmail(ctx context.Context, login string) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE username = ? OR email = ? LIMIT 1",
		login, login))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE id = ? LIMIT 1", id))
}

// EmailTakenByOther reports whether any user other than selfID already uses
// the email. Used before committing a profile email change.
func (r *UserRepo) EmailTakenByOther(ctx context.Context, email string, selfID uint64) (bool, error) {
	var id uint64
	err := r.DB.QueryRowContext(ctx,
		"SELECT id FROM users WHERE email = ? AND id != ? LIMIT 1",
		email, selfID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// UpdateProfile writes full_name, email and password hash in one statement.
// Callers resolve the final values first (keep-or-replace), matching the
// full-row UPDATE the API has always issued.
func (r *UserRepo) UpdateProfile(ctx context.Context, id uint64, fullName *string, email, passwordHash string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET full_name = ?, email = ?, password = ? WHERE id = ?",
		fullName, email, passwordHash, id)
	return err
}

// ListAll returns every user without password hashes, newest first.
func (r *UserRepo) ListAll(ctx context.Context) ([]model.PublicUser, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, username, email, full_name, role, created_at FROM users ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.PublicUser{}
	for rows.Next() {
		var u model.PublicUser
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.FullName, &u.Role, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// UpdateRole sets the role of the target user. ErrNotFound when the id does
// not exist. Role validity and the self-change guard are enforced by the
// handler before this runs.
func (r *UserRepo) UpdateRole(ctx context.Context, id uint64, role string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET role = ? WHERE id = ?", role, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
