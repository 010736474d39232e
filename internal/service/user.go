package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/heironeous/microblog/internal/dto"
	"github.com/heironeous/microblog/internal/model"
	"github.com/heironeous/microblog/internal/repository"
	"github.com/heironeous/microblog/internal/repository/redisrepo"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cached profiles carry follower counters, so the TTL is kept short and the
// keys are dropped on every mutation that changes what they contain.
const USER_CACHE_TTL = time.Minute * 10

type userService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newUserService(logger *zap.Logger, repo *repository.Repository) User {
	return &userService{
		logger: logger,
		repo:   repo,
	}
}

func (s *userService) FindByID(ctx context.Context, id uuid.UUID) (*model.FullUser, error) {
	userCache, err := redisrepo.Get[model.FullUser](s.repo.Redis.Default, ctx, redisrepo.UserKey(id.String()))
	if err == nil && userCache != nil {
		return userCache, nil
	}
	if err != nil && err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get user(%s) from redis: %s", id.String(), err.Error())
	}

	user, err := s.repo.Postgres.User.FindByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrUserNotFound
		}

		s.logger.Sugar().Errorf("failed to find user(%s) in postgres: %s", id.String(), err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Redis.SetJSON(ctx, redisrepo.UserKey(id.String()), user, USER_CACHE_TTL); err != nil {
		s.logger.Sugar().Errorf("failed to set user(%s) in redis: %s", id.String(), err.Error())
	}

	return user, nil
}

func (s *userService) FindByUsername(ctx context.Context, username string) (*dto.GetUserDto, error) {
	profileCache, err := redisrepo.Get[model.FullUser](s.repo.Redis.Default, ctx, redisrepo.ProfileKey(username))
	if err == nil && profileCache != nil {
		return dto.GetUserDtoFromFullUser(*profileCache), nil
	}
	if err != nil && err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get profile(%s) from redis: %s", username, err.Error())
	}

	user, err := s.repo.Postgres.User.FindByUsername(ctx, username)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrUserNotFound
		}

		s.logger.Sugar().Errorf("failed to find user(%s) in postgres: %s", username, err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Redis.SetJSON(ctx, redisrepo.ProfileKey(username), user, USER_CACHE_TTL); err != nil {
		s.logger.Sugar().Errorf("failed to set profile(%s) in redis: %s", username, err.Error())
	}

	return dto.GetUserDtoFromFullUser(*user), nil
}

func (s *userService) UpdateByUsername(ctx context.Context, actor model.User, username string, updateDto dto.UpdateUserDto) error {
	target, err := s.repo.Postgres.User.FindByUsername(ctx, username)
	if err != nil {
		if err == pgx.ErrNoRows {
			return ErrUserNotFound
		}

		s.logger.Sugar().Errorf("failed to find user(%s) in postgres: %s", username, err.Error())
		return ErrInternal
	}

	// Only the account owner may edit the profile. The check goes through
	// value equality, not ID comparison: actor comes from token claims and a
	// cache lookup, target from the path parameter.
	if !target.SameIdentityAs(actor) {
		return ErrUnauthorized
	}

	updates := make(map[string]interface{})
	if updateDto.Username != nil {
		updates["username"] = *updateDto.Username
	}
	if updateDto.AboutMe != nil {
		updates["about_me"] = *updateDto.AboutMe
	}

	if err := s.repo.Postgres.User.UpdateByID(ctx, target.ID, updates); err != nil {
		s.logger.Sugar().Errorf("failed to update user(%s) in postgres: %s", target.ID.String(), err.Error())
		return ErrInternal
	}

	keys := []string{redisrepo.UserKey(target.ID.String()), redisrepo.ProfileKey(target.Username)}
	if updateDto.Username != nil {
		keys = append(keys, redisrepo.ProfileKey(*updateDto.Username))
	}
	if err := s.repo.Redis.Del(ctx, keys...).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to delete user(%s) cache keys from redis: %s", target.ID.String(), err.Error())
	}

	return nil
}

// Follow creates the actor->target edge. A self-follow or an already
// existing edge is a silent no-op, mirroring Unfollow below; callers that
// care can ask IsFollowing first.
func (s *userService) Follow(ctx context.Context, actor model.User, targetID uuid.UUID) error {
	target, err := s.findTarget(ctx, targetID)
	if err != nil {
		return err
	}

	if target.SameIdentityAs(actor) {
		return nil
	}

	if err := s.repo.Postgres.Follower.Follow(ctx, model.Follower{FollowerID: actor.ID, FollowedID: target.ID}); err != nil {
		s.logger.Sugar().Errorf("failed to create follow edge(%s -> %s) in postgres: %s", actor.ID.String(), target.ID.String(), err.Error())
		return ErrInternal
	}

	s.dropFollowCaches(ctx, actor, *target)
	return nil
}

func (s *userService) Unfollow(ctx context.Context, actor model.User, targetID uuid.UUID) error {
	target, err := s.findTarget(ctx, targetID)
	if err != nil {
		return err
	}

	if target.SameIdentityAs(actor) {
		return nil
	}

	if err := s.repo.Postgres.Follower.Unfollow(ctx, model.Follower{FollowerID: actor.ID, FollowedID: target.ID}); err != nil {
		s.logger.Sugar().Errorf("failed to delete follow edge(%s -> %s) in postgres: %s", actor.ID.String(), target.ID.String(), err.Error())
		return ErrInternal
	}

	s.dropFollowCaches(ctx, actor, *target)
	return nil
}

func (s *userService) IsFollowing(ctx context.Context, actorID uuid.UUID, targetID uuid.UUID) (bool, error) {
	following, err := s.repo.Postgres.Follower.IsFollowing(ctx, model.Follower{FollowerID: actorID, FollowedID: targetID})
	if err != nil {
		s.logger.Sugar().Errorf("failed to check follow edge(%s -> %s) in postgres: %s", actorID.String(), targetID.String(), err.Error())
		return false, ErrInternal
	}

	return following, nil
}

func (s *userService) FindFollowers(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]*model.FullFollower, error) {
	followers, err := s.repo.Postgres.Follower.FindFollowers(ctx, userID, limit, offset)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find followers of user(%s) in postgres: %s", userID.String(), err.Error())
		return nil, ErrInternal
	}

	return followers, nil
}

func (s *userService) FindFollowing(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]*model.FullFollower, error) {
	following, err := s.repo.Postgres.Follower.FindFollowing(ctx, userID, limit, offset)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find following of user(%s) in postgres: %s", userID.String(), err.Error())
		return nil, ErrInternal
	}

	return following, nil
}

// TouchLastSeen is fired on every authenticated request; a failure is worth
// a log line, never a failed request.
func (s *userService) TouchLastSeen(ctx context.Context, id uuid.UUID) {
	if err := s.repo.Postgres.User.UpdateLastSeen(ctx, id); err != nil {
		s.logger.Sugar().Errorf("failed to update last_seen for user(%s): %s", id.String(), err.Error())
	}
}

func (s *userService) findTarget(ctx context.Context, targetID uuid.UUID) (*model.FullUser, error) {
	target, err := s.repo.Postgres.User.FindByID(ctx, targetID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrUserNotFound
		}

		s.logger.Sugar().Errorf("failed to find user(%s) in postgres: %s", targetID.String(), err.Error())
		return nil, ErrInternal
	}

	return target, nil
}

func (s *userService) dropFollowCaches(ctx context.Context, actor model.User, target model.FullUser) {
	if err := s.repo.Redis.Del(
		ctx,
		redisrepo.UserKey(actor.ID.String()),
		redisrepo.UserKey(target.ID.String()),
		redisrepo.ProfileKey(actor.Username),
		redisrepo.ProfileKey(target.Username),
	).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to delete follow cache keys from redis: %s", err.Error())
	}
}
