package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/heironeous/microblog/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postRepo struct {
	db *pgxpool.Pool
}

func newPostRepo(db *pgxpool.Pool) Post {
	return &postRepo{
		db: db,
	}
}

func (r *postRepo) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	post.ID = uuid.New()
	post.CreatedAt = time.Now()
	_, err := r.db.Exec(
		ctx,
		"INSERT INTO posts(id, author_id, body, created_at) VALUES($1, $2, $3, $4)",
		post.ID,
		post.AuthorID,
		post.Body,
		post.CreatedAt,
	)
	return &post, err
}

func (r *postRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.FullPost, error) {
	var post model.FullPost
	if err := r.db.QueryRow(ctx, `
	SELECT p.id, p.author_id, u.username, p.body, p.created_at
	FROM posts p
	JOIN users u ON u.id = p.author_id
	WHERE p.id = $1
	`, id).Scan(
		&post.ID,
		&post.AuthorID,
		&post.AuthorUsername,
		&post.Body,
		&post.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *postRepo) FindByAuthor(ctx context.Context, authorID uuid.UUID, limit int, offset int) ([]*model.FullPost, error) {
	maximumLimit(&limit)

	rows, err := r.db.Query(ctx, `
	SELECT p.id, p.author_id, u.username, p.body, p.created_at
	FROM posts p
	JOIN users u ON u.id = p.author_id
	WHERE p.author_id = $1
	ORDER BY p.created_at DESC, p.id DESC
	LIMIT $2
	OFFSET $3
	`, authorID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanFullPosts(rows)
}

func (r *postRepo) FindLatest(ctx context.Context, limit int, offset int) ([]*model.FullPost, error) {
	maximumLimit(&limit)

	rows, err := r.db.Query(ctx, `
	SELECT p.id, p.author_id, u.username, p.body, p.created_at
	FROM posts p
	JOIN users u ON u.id = p.author_id
	ORDER BY p.created_at DESC, p.id DESC
	LIMIT $1
	OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanFullPosts(rows)
}

// Feed returns the user's home feed: their own posts unioned with posts by
// every user they follow. The followed half is a single join against the
// followers edge set, so the query cost does not grow with the follow count.
// UNION (not UNION ALL) keeps the result duplicate-safe, and the (created_at,
// id) sort key keeps the order stable across calls when timestamps tie.
func (r *postRepo) Feed(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]*model.FullPost, error) {
	maximumLimit(&limit)

	rows, err := r.db.Query(ctx, `
	SELECT p.id, p.author_id, u.username, p.body, p.created_at
	FROM posts p
	JOIN followers f ON f.followed_id = p.author_id
	JOIN users u ON u.id = p.author_id
	WHERE f.follower_id = $1
	UNION
	SELECT p.id, p.author_id, u.username, p.body, p.created_at
	FROM posts p
	JOIN users u ON u.id = p.author_id
	WHERE p.author_id = $1
	ORDER BY created_at DESC, id DESC
	LIMIT $2
	OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanFullPosts(rows)
}

func scanFullPosts(rows pgx.Rows) ([]*model.FullPost, error) {
	var posts []*model.FullPost
	for rows.Next() {
		var post model.FullPost
		if err := rows.Scan(
			&post.ID,
			&post.AuthorID,
			&post.AuthorUsername,
			&post.Body,
			&post.CreatedAt,
		); err != nil {
			return nil, err
		}

		posts = append(posts, &post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}
