package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/heironeous/microblog/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

type followerRepo struct {
	db *pgxpool.Pool
}

func newFollowerRepo(db *pgxpool.Pool) Follower {
	return &followerRepo{
		db: db,
	}
}

// Follow inserts the directed edge. ON CONFLICT DO NOTHING makes a repeated
// follow a no-op and keeps the no-duplicate invariant under concurrent
// requests: the composite primary key arbitrates, not in-process locking.
func (r *followerRepo) Follow(ctx context.Context, edge model.Follower) error {
	_, err := r.db.Exec(
		ctx,
		"INSERT INTO followers(follower_id, followed_id) VALUES($1, $2) ON CONFLICT DO NOTHING",
		edge.FollowerID,
		edge.FollowedID,
	)
	return err
}

func (r *followerRepo) Unfollow(ctx context.Context, edge model.Follower) error {
	_, err := r.db.Exec(
		ctx,
		"DELETE FROM followers WHERE follower_id = $1 AND followed_id = $2",
		edge.FollowerID,
		edge.FollowedID,
	)
	return err
}

func (r *followerRepo) IsFollowing(ctx context.Context, edge model.Follower) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(
		ctx,
		"SELECT EXISTS(SELECT 1 FROM followers f WHERE f.follower_id = $1 AND f.followed_id = $2)",
		edge.FollowerID,
		edge.FollowedID,
	).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

func (r *followerRepo) FindFollowers(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]*model.FullFollower, error) {
	maximumLimit(&limit)

	rows, err := r.db.Query(ctx, `
	SELECT u.id, u.username, u.about_me
	FROM followers f
	JOIN users u ON f.follower_id = u.id
	WHERE f.followed_id = $1
	ORDER BY u.username
	LIMIT $2
	OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var followers []*model.FullFollower
	for rows.Next() {
		var follower model.FullFollower
		if err := rows.Scan(&follower.ID, &follower.Username, &follower.AboutMe); err != nil {
			return nil, err
		}

		followers = append(followers, &follower)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return followers, nil
}

func (r *followerRepo) FindFollowing(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]*model.FullFollower, error) {
	maximumLimit(&limit)

	rows, err := r.db.Query(ctx, `
	SELECT u.id, u.username, u.about_me
	FROM followers f
	JOIN users u ON f.followed_id = u.id
	WHERE f.follower_id = $1
	ORDER BY u.username
	LIMIT $2
	OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var following []*model.FullFollower
	for rows.Next() {
		var followed model.FullFollower
		if err := rows.Scan(&followed.ID, &followed.Username, &followed.AboutMe); err != nil {
			return nil, err
		}

		following = append(following, &followed)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return following, nil
}
