package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/novachat/nova-chat-server/internal/domain"
)

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

func scanUser(row *sql.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Login, &u.PasswordHash, &u.CreatedAt)
	return u, err
}

func (r *UserRepo) GetByLogin(ctx context.Context, login string) (domain.User, error) {
	if login == "" {
		return domain.User{}, domain.ErrUserNotFound()
	}

	const q = `
SELECT user_id, login, password_hash, created_at
FROM users
WHERE login = $1
LIMIT 1;
`
	u, err := scanUser(r.db.QueryRowContext(ctx, q, login))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound()
		}
		return domain.User{}, domain.ErrQuery(err)
	}
	return u, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	if id == "" {
		return domain.User{}, domain.ErrUserNotFound()
	}

	const q = `
SELECT user_id, login, password_hash, created_at
FROM users
WHERE user_id = $1
LIMIT 1;
`
	u, err := scanUser(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound()
		}
		return domain.User{}, domain.ErrQuery(err)
	}
	return u, nil
}

func (r *UserRepo) LoginExists(ctx context.Context, login string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM users WHERE login = $1);`

	var exists bool
	if err := r.db.QueryRowContext(ctx, q, login).Scan(&exists); err != nil {
		return false, domain.ErrQuery(err)
	}
	return exists, nil
}

func (r *UserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	const q = `
INSERT INTO users (user_id, login, password_hash)
VALUES ($1, $2, $3)
RETURNING user_id, login, password_hash, created_at;
`
	var out domain.User
	err := r.db.QueryRowContext(ctx, q, u.ID, u.Login, u.PasswordHash).
		Scan(&out.ID, &out.Login, &out.PasswordHash, &out.CreatedAt)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "duplicate") {
			return domain.User{}, domain.ErrLoginExists()
		}
		return domain.User{}, domain.ErrQuery(err)
	}
	return out, nil
}

func (r *UserRepo) UpdatePasswordHash(ctx context.Context, userID, newHash string) error {
	const q = `
UPDATE users
SET password_hash = $2
WHERE user_id = $1;
`
	res, err := r.db.ExecContext(ctx, q, userID, newHash)
	if err != nil {
		return domain.ErrQuery(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrUserNotFound()
	}
	return nil
}

// Delete removes the user row; messages and refresh tokens go with it via
// ON DELETE CASCADE.
func (r *UserRepo) Delete(ctx context.Context, userID string) error {
	const q = `DELETE FROM users WHERE user_id = $1;`

	res, err := r.db.ExecContext(ctx, q, userID)
	if err != nil {
		return domain.ErrQuery(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrUserNotFound()
	}
	return nil
}

// List returns one page of the directory ordered by creation time descending,
// plus the total count honoring the same search filter.
func (r *UserRepo) List(ctx context.Context, page, limit int, search string) ([]domain.User, int, error) {
	offset := (page - 1) * limit

	args := []any{}
	where := ""
	argN := 1
	if search != "" {
		where = "WHERE login ILIKE $1"
		args = append(args, "%"+search+"%")
		argN++
	}

	q := fmt.Sprintf(`
SELECT user_id, login, password_hash, created_at
FROM users
%s
ORDER BY created_at DESC
LIMIT $%d OFFSET $%d;`, where, argN, argN+1)

	rows, err := r.db.QueryContext(ctx, q, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, domain.ErrQuery(err)
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Login, &u.PasswordHash, &u.CreatedAt); err != nil {
			return nil, 0, domain.ErrQuery(err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, domain.ErrQuery(err)
	}

	countQ := `SELECT COUNT(*) FROM users ` + where + `;`
	var total int
	if err := r.db.QueryRowContext(ctx, countQ, args...).Scan(&total); err != nil {
		return nil, 0, domain.ErrQuery(err)
	}

	return out, total, nil
}

// Search returns directory matches ordered by login ascending.
func (r *UserRepo) Search(ctx context.Context, query string, limit int) ([]domain.User, error) {
	const q = `
SELECT user_id, login, password_hash, created_at
FROM users
WHERE login ILIKE $1
ORDER BY login ASC
LIMIT $2;
`
	rows, err := r.db.QueryContext(ctx, q, "%"+query+"%", limit)
	if err != nil {
		return nil, domain.ErrQuery(err)
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Login, &u.PasswordHash, &u.CreatedAt); err != nil {
			return nil, domain.ErrQuery(err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrQuery(err)
	}
	return out, nil
}

// Health runs the pool liveness probe.
func (r *UserRepo) Health(ctx context.Context) bool {
	var one int
	return r.db.QueryRowContext(ctx, `SELECT 1;`).Scan(&one) == nil
}
