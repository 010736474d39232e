package model

import "github.com/google/uuid"

// Follower is a directed edge in the social graph: FollowerID follows
// FollowedID. The edge carries no attributes of its own; the "followers
// of X" view is the inverse traversal of the same edge set.
type Follower struct {
	FollowerID uuid.UUID `json:"follower_id"`
	FollowedID uuid.UUID `json:"followed_id"`
}

type FullFollower struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	AboutMe  *string   `json:"about_me"`
}
