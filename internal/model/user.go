package model

import (
	"crypto/md5"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	AboutMe      *string   `json:"about_me"`
	LastSeen     time.Time `json:"last_seen"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FullUser is a User joined with its follower counters, as returned by
// the profile queries.
type FullUser struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	AboutMe      *string   `json:"about_me"`
	LastSeen     time.Time `json:"last_seen"`
	Followers    int64     `json:"followers"`
	Following    int64     `json:"following"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SameIdentityAs reports whether two user records refer to the same account,
// compared by (username, lowercased email). Authorization checks and the
// self-follow guard must use this instead of comparing IDs or whole structs,
// since the two values involved may come from different queries (cache vs. db).
func (u User) SameIdentityAs(other User) bool {
	return u.Username == other.Username && strings.EqualFold(u.Email, other.Email)
}

func (u FullUser) SameIdentityAs(other User) bool {
	return UserFromFullUser(u).SameIdentityAs(other)
}

// Avatar returns the gravatar URL for the user's email.
func (u User) Avatar(size int) string {
	digest := md5.Sum([]byte(strings.ToLower(u.Email)))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?d=identicon&s=%d", digest, size)
}

func (u FullUser) Avatar(size int) string {
	return User{Email: u.Email}.Avatar(size)
}

func UserFromFullUser(fullUser FullUser) User {
	return User{
		ID:           fullUser.ID,
		Email:        fullUser.Email,
		Username:     fullUser.Username,
		PasswordHash: fullUser.PasswordHash,
		AboutMe:      fullUser.AboutMe,
		LastSeen:     fullUser.LastSeen,
		CreatedAt:    fullUser.CreatedAt,
		UpdatedAt:    fullUser.UpdatedAt,
	}
}
