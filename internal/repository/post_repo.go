package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"sociopedia/internal/domain"
)

type PostRepository interface {
	Create(ctx context.Context, post domain.Post) error
	GetByID(ctx context.Context, id string) (domain.Post, error)
	List(ctx context.Context) ([]domain.Post, error)
	ListByUserID(ctx context.Context, userID string) ([]domain.Post, error)
	ToggleLike(ctx context.Context, postID, userID string) (bool, error)
}

type PgPostRepository struct {
	pool *pgxpool.Pool
}

func NewPgPostRepository(pool *pgxpool.Pool) *PgPostRepository {
	return &PgPostRepository{pool: pool}
}

const postSelect = `
	SELECT p.id, p.user_id, p.first_name, p.last_name, p.location, p.description,
	       p.picture_path, p.user_picture_path, p.created_at,
	       COALESCE(array_agg(l.user_id::text ORDER BY l.created_at) FILTER (WHERE l.user_id IS NOT NULL), '{}') AS likes
	FROM posts p
	LEFT JOIN post_likes l ON l.post_id = p.id
`

func (r *PgPostRepository) Create(ctx context.Context, post domain.Post) error {
	const query = `
		INSERT INTO posts (id, user_id, first_name, last_name, location, description,
		                   picture_path, user_picture_path, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.pool.Exec(ctx, query,
		post.ID,
		post.UserID,
		post.FirstName,
		post.LastName,
		post.Location,
		post.Description,
		post.PicturePath,
		post.UserPicturePath,
		post.CreatedAt,
	)
	return errors.Wrap(err, "insert post")
}

func (r *PgPostRepository) GetByID(ctx context.Context, id string) (domain.Post, error) {
	if !validID(id) {
		return domain.Post{}, ErrNotFound
	}
	const query = postSelect + `WHERE p.id = $1 GROUP BY p.id`
	p, err := scanPost(r.pool.QueryRow(ctx, query, id))
	if isNoRows(err) {
		return domain.Post{}, ErrNotFound
	}
	return p, errors.Wrap(err, "get post by id")
}

func (r *PgPostRepository) List(ctx context.Context) ([]domain.Post, error) {
	const query = postSelect + `GROUP BY p.id ORDER BY p.created_at DESC`
	return r.queryPosts(ctx, query)
}

func (r *PgPostRepository) ListByUserID(ctx context.Context, userID string) ([]domain.Post, error) {
	if !validID(userID) {
		return []domain.Post{}, nil
	}
	const query = postSelect + `WHERE p.user_id = $1 GROUP BY p.id ORDER BY p.created_at DESC`
	return r.queryPosts(ctx, query, userID)
}

// ToggleLike agrega o quita el like del usuario. Devuelve true si quedó marcado.
func (r *PgPostRepository) ToggleLike(ctx context.Context, postID, userID string) (bool, error) {
	if !validID(postID) || !validID(userID) {
		return false, ErrNotFound
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, errors.Wrap(err, "begin toggle like")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM posts WHERE id = $1)`, postID).Scan(&exists); err != nil {
		return false, errors.Wrap(err, "check post")
	}
	if !exists {
		return false, ErrNotFound
	}

	tag, err := tx.Exec(ctx, `DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`, postID, userID)
	if err != nil {
		return false, errors.Wrap(err, "delete like")
	}

	liked := tag.RowsAffected() == 0
	if liked {
		const insertQuery = `
			INSERT INTO post_likes (post_id, user_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`
		if _, err := tx.Exec(ctx, insertQuery, postID, userID); err != nil {
			return false, errors.Wrap(err, "insert like")
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return false, errors.Wrap(err, "commit toggle like")
	}
	return liked, nil
}

func (r *PgPostRepository) queryPosts(ctx context.Context, query string, args ...any) ([]domain.Post, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list posts")
	}
	defer rows.Close()

	posts := make([]domain.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan post")
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "list posts")
	}
	return posts, nil
}

func scanPost(row rowScanner) (domain.Post, error) {
	var p domain.Post
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.FirstName,
		&p.LastName,
		&p.Location,
		&p.Description,
		&p.PicturePath,
		&p.UserPicturePath,
		&p.CreatedAt,
		&p.Likes,
	)
	return p, err
}
