package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"sociopedia/internal/domain"
)

// UserRepository define el contrato de persistencia para usuarios y amistades.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) error
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	ListFriends(ctx context.Context, id string) ([]domain.User, error)
	ToggleFriend(ctx context.Context, userID, friendID string) (bool, error)
}

// PgUserRepository implementa UserRepository usando pgxpool.
type PgUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

const userColumns = `id, email, password_hash, first_name, last_name, picture_path,
		location, occupation, viewed_profile, impressions, created_at, updated_at`

func (r *PgUserRepository) Create(ctx context.Context, user domain.User) error {
	const query = `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.PicturePath,
		user.Location,
		user.Occupation,
		user.ViewedProfile,
		user.Impressions,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if isUniqueViolation(err, "users_email_key") {
		return ErrDuplicateEmail
	}
	return errors.Wrap(err, "insert user")
}

func (r *PgUserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	if !validID(id) {
		return domain.User{}, ErrNotFound
	}
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if isNoRows(err) {
		return domain.User{}, ErrNotFound
	}
	return u, errors.Wrap(err, "get user by id")
}

func (r *PgUserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	u, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if isNoRows(err) {
		return domain.User{}, ErrNotFound
	}
	return u, errors.Wrap(err, "get user by email")
}

func (r *PgUserRepository) ListFriends(ctx context.Context, id string) ([]domain.User, error) {
	if !validID(id) {
		return []domain.User{}, nil
	}
	const query = `
		SELECT u.id, u.email, u.password_hash, u.first_name, u.last_name, u.picture_path,
		       u.location, u.occupation, u.viewed_profile, u.impressions, u.created_at, u.updated_at
		FROM friendships f
		JOIN users u ON u.id = f.friend_id
		WHERE f.user_id = $1
		ORDER BY f.created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, errors.Wrap(err, "list friends")
	}
	defer rows.Close()

	friends := make([]domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan friend")
		}
		friends = append(friends, u)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "list friends")
	}
	return friends, nil
}

// ToggleFriend agrega o elimina la amistad en ambas direcciones dentro de una
// transacción. Devuelve true si la amistad quedó creada.
func (r *PgUserRepository) ToggleFriend(ctx context.Context, userID, friendID string) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, errors.Wrap(err, "begin toggle friend")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const deleteQuery = `
		DELETE FROM friendships
		WHERE (user_id = $1 AND friend_id = $2) OR (user_id = $2 AND friend_id = $1)
	`
	tag, err := tx.Exec(ctx, deleteQuery, userID, friendID)
	if err != nil {
		return false, errors.Wrap(err, "delete friendship")
	}

	added := tag.RowsAffected() == 0
	if added {
		const insertQuery = `
			INSERT INTO friendships (user_id, friend_id)
			VALUES ($1, $2), ($2, $1)
			ON CONFLICT DO NOTHING
		`
		if _, err := tx.Exec(ctx, insertQuery, userID, friendID); err != nil {
			return false, errors.Wrap(err, "insert friendship")
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return false, errors.Wrap(err, "commit toggle friend")
	}
	return added, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.FirstName,
		&u.LastName,
		&u.PicturePath,
		&u.Location,
		&u.Occupation,
		&u.ViewedProfile,
		&u.Impressions,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}
