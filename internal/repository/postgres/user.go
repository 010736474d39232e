package postgres

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/heironeous/microblog/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

const MAX_LIMIT = 50

type userRepo struct {
	db *pgxpool.Pool
}

func newUserRepo(db *pgxpool.Pool) User {
	return &userRepo{
		db: db,
	}
}

const fullUserSelect = `
	SELECT
	u.id, u.email, u.username, u.password_hash, u.about_me, u.last_seen, u.created_at, u.updated_at,
	(SELECT COUNT(*) FROM followers f WHERE f.followed_id = u.id) AS followers,
	(SELECT COUNT(*) FROM followers f WHERE f.follower_id = u.id) AS following
	FROM users u
`

func (r *userRepo) Create(ctx context.Context, user model.User) (*model.User, error) {
	user.ID = uuid.New()
	user.LastSeen = time.Now()
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	_, err := r.db.Exec(
		ctx,
		"INSERT INTO users(id, email, username, password_hash, about_me, last_seen, created_at, updated_at) VALUES($1, $2, $3, $4, $5, $6, $7, $8)",
		user.ID,
		user.Email,
		user.Username,
		user.PasswordHash,
		user.AboutMe,
		user.LastSeen,
		user.CreatedAt,
		user.UpdatedAt,
	)
	return &user, err
}

func (r *userRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.FullUser, error) {
	var user model.FullUser
	if err := r.db.QueryRow(ctx, fullUserSelect+"WHERE u.id = $1", id).Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.PasswordHash,
		&user.AboutMe,
		&user.LastSeen,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.Followers,
		&user.Following,
	); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.QueryRow(ctx, `
	SELECT u.id, u.email, u.username, u.password_hash, u.about_me, u.last_seen, u.created_at, u.updated_at
	FROM users u
	WHERE u.email = $1
	`, email).Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.PasswordHash,
		&user.AboutMe,
		&user.LastSeen,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepo) FindByUsername(ctx context.Context, username string) (*model.FullUser, error) {
	var user model.FullUser
	if err := r.db.QueryRow(ctx, fullUserSelect+"WHERE u.username = $1", username).Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.PasswordHash,
		&user.AboutMe,
		&user.LastSeen,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.Followers,
		&user.Following,
	); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepo) UpdateByID(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	allowedFields := []string{"username", "about_me"}
	allowedFieldsSet := make(map[string]struct{}, len(allowedFields))
	for _, field := range allowedFields {
		allowedFieldsSet[field] = struct{}{}
	}

	for field := range updates {
		if _, ok := allowedFieldsSet[field]; !ok {
			delete(updates, field)
		}
	}

	if len(updates) == 0 {
		return nil
	}

	query := "UPDATE users SET "
	args := []interface{}{}
	i := 1

	for column, value := range updates {
		query += (column + " = $" + strconv.Itoa(i) + ", ")
		args = append(args, value)
		i++
	}

	query += "updated_at = $" + strconv.Itoa(i) + " WHERE id = $" + strconv.Itoa(i+1)
	args = append(args, time.Now(), id)

	_, err := r.db.Exec(ctx, query, args...)
	return err
}

func (r *userRepo) UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error {
	_, err := r.db.Exec(ctx, "UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3", passwordHash, time.Now(), id)
	return err
}

func (r *userRepo) UpdateLastSeen(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, "UPDATE users SET last_seen = $1 WHERE id = $2", time.Now(), id)
	return err
}

func maximumLimit(l *int) {
	if *l > MAX_LIMIT {
		*l = MAX_LIMIT
	}
}
