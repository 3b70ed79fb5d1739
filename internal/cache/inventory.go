package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix    = "user:%d"
	TokenKeyPrefix   = "token:%s"
	ProfileKeyPrefix = "profile:%d"
)

const (
	UserTTL    = 5 * time.Minute
	TokenTTL   = 10 * time.Minute
	ProfileTTL = 1 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func TokenKey(key string) string {
	return fmt.Sprintf(TokenKeyPrefix, key)
}

func ProfileKey(userID uint) string {
	return fmt.Sprintf(ProfileKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
	Invalidate(ctx, ProfileKey(userID))
}

func InvalidateToken(ctx context.Context, key string) {
	Invalidate(ctx, TokenKey(key))
}
