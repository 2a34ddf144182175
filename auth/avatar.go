package auth

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

// GravatarURL derives a deterministic avatar URL from an email address:
// the gravatar of the md5 of the lower-cased, trimmed address, 200px,
// PG-rated, with the "mystery man" default for addresses without a gravatar.
func GravatarURL(email string) string {
	normalized := strings.TrimSpace(strings.ToLower(email))
	sum := md5.Sum([]byte(normalized))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?s=200&r=pg&d=mm", hex.EncodeToString(sum[:]))
}
