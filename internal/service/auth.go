package service

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/heironeous/microblog/internal/dto"
	"github.com/heironeous/microblog/internal/model"
	"github.com/heironeous/microblog/internal/rabbitmq"
	"github.com/heironeous/microblog/internal/repository"
	"github.com/heironeous/microblog/internal/repository/redisrepo"
	"github.com/heironeous/microblog/pkg/utils"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	ACCESS_TOKEN_EXPIRY  = time.Hour * 3
	REFRESH_TOKEN_EXPIRY = time.Hour * 24 * 7 * 2
	RESET_TOKEN_EXPIRY   = time.Minute * 10
)

type authService struct {
	logger   *zap.Logger
	repo     *repository.Repository
	rabbitmq *rabbitmq.MQConn
}

func newAuthService(logger *zap.Logger, repo *repository.Repository, rabbitmq *rabbitmq.MQConn) Auth {
	return &authService{
		logger:   logger,
		repo:     repo,
		rabbitmq: rabbitmq,
	}
}

func (s *authService) Register(ctx context.Context, createUserDto dto.CreateUserDto) (*dto.GetUserDto, *utils.JWTPair, error) {
	createUserDto.Email = strings.ToLower(strings.TrimSpace(createUserDto.Email))
	createUserDto.Username = strings.TrimSpace(createUserDto.Username)

	existing, err := s.repo.Postgres.User.FindByEmail(ctx, createUserDto.Email)
	if err != nil && err != pgx.ErrNoRows {
		s.logger.Sugar().Errorf("failed to find user by email in postgres: %s", err.Error())
		return nil, nil, ErrInternal
	}
	if existing != nil {
		return nil, nil, ErrUserAlreadyExists
	}

	existingByUsername, err := s.repo.Postgres.User.FindByUsername(ctx, createUserDto.Username)
	if err != nil && err != pgx.ErrNoRows {
		s.logger.Sugar().Errorf("failed to find user by username in postgres: %s", err.Error())
		return nil, nil, ErrInternal
	}
	if existingByUsername != nil {
		return nil, nil, ErrUserAlreadyExists
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(createUserDto.Password), 10)
	if err != nil {
		s.logger.Sugar().Errorf("failed to generate password hash: %s", err.Error())
		return nil, nil, ErrInternal
	}

	newUser := model.User{
		Email:        createUserDto.Email,
		Username:     createUserDto.Username,
		PasswordHash: string(passwordHash),
	}
	createdUser, err := s.repo.Postgres.User.Create(ctx, newUser)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create user in postgres: %s", err.Error())
		return nil, nil, ErrInternal
	}

	jwtPair, err := s.generateJWTPair(createdUser.ID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to generate jwt pair: %s", err.Error())
		return nil, nil, ErrInternal
	}

	return dto.GetUserDtoFromFullUser(model.FullUser{
		ID:        createdUser.ID,
		Email:     createdUser.Email,
		Username:  createdUser.Username,
		AboutMe:   createdUser.AboutMe,
		LastSeen:  createdUser.LastSeen,
		CreatedAt: createdUser.CreatedAt,
		UpdatedAt: createdUser.UpdatedAt,
	}), jwtPair, nil
}

func (s *authService) SignIn(ctx context.Context, signInDto dto.SignInDto) (*dto.GetUserDto, *utils.JWTPair, error) {
	user, err := s.repo.Postgres.User.FindByUsername(ctx, strings.TrimSpace(signInDto.Username))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil, ErrInvalidCredentials
		}

		s.logger.Sugar().Errorf("failed to find user by username in postgres: %s", err.Error())
		return nil, nil, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(signInDto.Password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	jwtPair, err := s.generateJWTPair(user.ID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to generate jwt pair: %s", err.Error())
		return nil, nil, ErrInternal
	}

	return dto.GetUserDtoFromFullUser(*user), jwtPair, nil
}

func (s *authService) RefreshTokens(ctx context.Context, refreshToken string) (*utils.JWTPair, error) {
	claims, err := utils.DecodeJWT(refreshToken, []byte(os.Getenv("REFRESH_SECRET")))
	if err != nil {
		return nil, ErrInvalidToken
	}

	idString, ok := claims["id"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(idString)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.repo.Postgres.User.FindByID(ctx, userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrInvalidToken
		}

		s.logger.Sugar().Errorf("failed to find user(%s) in postgres: %s", userID.String(), err.Error())
		return nil, ErrInternal
	}

	jwtPair, err := s.generateJWTPair(user.ID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to generate jwt pair: %s", err.Error())
		return nil, ErrInternal
	}

	return jwtPair, nil
}

// ForgotPassword issues a reset token and hands it to the mail consumer.
// An unknown email is not an error: the endpoint must not reveal which
// addresses have accounts.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.repo.Postgres.User.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil
		}

		s.logger.Sugar().Errorf("failed to find user by email in postgres: %s", err.Error())
		return ErrInternal
	}

	token, err := utils.GenerateResetToken(user.ID, []byte(os.Getenv("RESET_SECRET")), RESET_TOKEN_EXPIRY)
	if err != nil {
		s.logger.Sugar().Errorf("failed to generate reset token: %s", err.Error())
		return ErrInternal
	}

	queueData, err := json.Marshal(&dto.RabbitMQResetPasswordDto{
		Email: user.Email,
		Token: token,
	})
	if err != nil {
		s.logger.Sugar().Errorf("failed to marshal json: %s", err.Error())
		return ErrInternal
	}

	if err := s.rabbitmq.Publish(rabbitmq.USER_FORGOT_PASSWORD_QUEUE, queueData); err != nil {
		s.logger.Sugar().Errorf("failed to publish to rabbitmq queue(%s): %s", rabbitmq.USER_FORGOT_PASSWORD_QUEUE, err.Error())
		return ErrInternal
	}

	return nil
}

func (s *authService) ResetPassword(ctx context.Context, token string, newPassword string) error {
	userID, err := utils.ParseResetToken(token, []byte(os.Getenv("RESET_SECRET")))
	if err != nil {
		return ErrInvalidToken
	}

	user, err := s.repo.Postgres.User.FindByID(ctx, userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			// An unknown user collapses into the same result as a bad token.
			return ErrInvalidToken
		}

		s.logger.Sugar().Errorf("failed to find user(%s) in postgres: %s", userID.String(), err.Error())
		return ErrInternal
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), 10)
	if err != nil {
		s.logger.Sugar().Errorf("failed to generate password hash: %s", err.Error())
		return ErrInternal
	}

	if err := s.repo.Postgres.User.UpdatePasswordHash(ctx, user.ID, string(passwordHash)); err != nil {
		s.logger.Sugar().Errorf("failed to update password hash for user(%s): %s", user.ID.String(), err.Error())
		return ErrInternal
	}

	if err := s.repo.Redis.Del(
		ctx,
		redisrepo.UserKey(user.ID.String()),
		redisrepo.ProfileKey(user.Username),
	).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to delete user(%s) cache keys from redis: %s", user.ID.String(), err.Error())
	}

	return nil
}

func (s *authService) generateJWTPair(userID uuid.UUID) (*utils.JWTPair, error) {
	return utils.GenerateJWTPair(utils.GenerateJWTPairDto{
		Method:       jwt.SigningMethodHS256,
		AccessSecret: []byte(os.Getenv("ACCESS_SECRET")),
		AccessClaims: jwt.MapClaims{
			"id": userID.String(),
		},
		AccessExpiry:  ACCESS_TOKEN_EXPIRY,
		RefreshSecret: []byte(os.Getenv("REFRESH_SECRET")),
		RefreshClaims: jwt.MapClaims{
			"id": userID.String(),
		},
		RefreshExpiry: REFRESH_TOKEN_EXPIRY,
	})
}
