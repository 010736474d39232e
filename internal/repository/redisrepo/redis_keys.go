package redisrepo

import "fmt"

const (
	USER_KEY    = "user:%s"    // <userID>
	PROFILE_KEY = "profile:%s" // <username>
)

func UserKey(userID string) string {
	return fmt.Sprintf(USER_KEY, userID)
}

func ProfileKey(username string) string {
	return fmt.Sprintf(PROFILE_KEY, username)
}
