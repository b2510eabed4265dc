package utils

import (
	"crypto/md5"
	"fmt"
	"strings"
)

// GravatarURL returns the 200px, pg-rated gravatar for an email, falling back to the
// "mystery person" image.
func GravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?s=200&r=pg&d=mm", sum)
}
