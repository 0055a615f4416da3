package pushtokens

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidToken      = errors.New("not an Expo push token")
	QueryTimeoutDuration = time.Second * 5
)

// Valid reports whether token looks like an Expo push token, e.g.
// ExponentPushToken[xxxxxxxxxxxxxxxxxxxxxx].
func Valid(token string) bool {
	for _, prefix := range []string{"ExponentPushToken[", "ExpoPushToken["} {
		if inner, ok := strings.CutPrefix(token, prefix); ok {
			return len(inner) > 1 && strings.HasSuffix(inner, "]")
		}
	}
	return false
}
