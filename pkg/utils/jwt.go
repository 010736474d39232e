package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type JWTPair struct {
	AccessToken     string        `json:"access_token"`
	AccessTokenExp  time.Duration `json:"access_token_exp"`
	RefreshToken    string        `json:"refresh_token"`
	RefreshTokenExp time.Duration `json:"refresh_token_exp"`
}

type GenerateJWTPairDto struct {
	Method        jwt.SigningMethod
	AccessSecret  []byte
	AccessClaims  jwt.MapClaims
	AccessExpiry  time.Duration
	RefreshSecret []byte
	RefreshClaims jwt.MapClaims
	RefreshExpiry time.Duration
}

func GenerateJWTPair(dto GenerateJWTPairDto) (*JWTPair, error) {
	dto.AccessClaims["exp"] = time.Now().Add(dto.AccessExpiry).Unix()
	accessToken := jwt.NewWithClaims(dto.Method, dto.AccessClaims)
	accessTokenString, err := accessToken.SignedString(dto.AccessSecret)
	if err != nil {
		return nil, err
	}

	dto.RefreshClaims["exp"] = time.Now().Add(dto.RefreshExpiry).Unix()
	refreshToken := jwt.NewWithClaims(dto.Method, dto.RefreshClaims)
	refreshTokenString, err := refreshToken.SignedString(dto.RefreshSecret)
	if err != nil {
		return nil, err
	}

	return &JWTPair{
		AccessToken:     accessTokenString,
		AccessTokenExp:  dto.AccessExpiry,
		RefreshToken:    refreshTokenString,
		RefreshTokenExp: dto.RefreshExpiry,
	}, nil
}

func DecodeJWT(token string, secret []byte) (jwt.MapClaims, error) {
	parsedToken, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok || !parsedToken.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

var errInvalidResetToken = errors.New("invalid reset token")

const resetPasswordClaim = "reset_password"

// GenerateResetToken produces a signed, expiring password-reset token
// carrying the user's ID.
func GenerateResetToken(userID uuid.UUID, secret []byte, expiry time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		resetPasswordClaim: userID.String(),
		"exp":              time.Now().Add(expiry).Unix(),
	})
	return token.SignedString(secret)
}

// ParseResetToken validates the token's signature and expiry and returns the
// user ID it carries. Every failure mode (malformed, expired, bad signature,
// wrong claim shape) collapses to the same error so callers cannot tell them
// apart.
func ParseResetToken(token string, secret []byte) (uuid.UUID, error) {
	claims, err := DecodeJWT(token, secret)
	if err != nil {
		return uuid.Nil, errInvalidResetToken
	}

	idString, ok := claims[resetPasswordClaim].(string)
	if !ok {
		return uuid.Nil, errInvalidResetToken
	}

	id, err := uuid.Parse(idString)
	if err != nil {
		return uuid.Nil, errInvalidResetToken
	}

	return id, nil
}
