package crypto

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// Iterations for PBKDF2-SHA256. Stored credentials embed no parameters,
	// so changing this invalidates every existing hash.
	hashIterations = 120_000
	digestLength   = 32
)

// HashPassword derives the credential string stored in the contrasena
// column: a fresh 128-bit random salt (uuid, hex) and a PBKDF2-SHA256
// digest of the password under that salt, joined as "salt$digest".
func HashPassword(password string) string {
	salt := strings.ReplaceAll(uuid.New().String(), "-", "")
	return salt + "$" + deriveDigest(password, salt)
}

// VerifyPassword reports whether password matches a stored "salt$digest"
// credential. The stored value is split on the first "$"; anything malformed
// simply fails to match, it never panics.
func VerifyPassword(password, stored string) bool {
	salt, digest, found := strings.Cut(stored, "$")
	if !found || salt == "" || digest == "" {
		return false
	}

	want, err := hex.DecodeString(digest)
	if err != nil || len(want) != digestLength {
		return false
	}

	got := pbkdf2.Key([]byte(password), []byte(salt), hashIterations, digestLength, sha256.New)
	return subtle.ConstantTimeCompare(got, want) == 1
}

// LegacyPlaintextMatch handles pre-hash rows that stored the password
// itself. Only values without the "$" separator qualify; the comparison is
// constant-time. Callers gate this behind an explicit migration flag.
func LegacyPlaintextMatch(password, stored string) bool {
	if stored == "" || strings.Contains(stored, "$") {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(stored)) == 1
}

func deriveDigest(password, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), hashIterations, digestLength, sha256.New)
	return hex.EncodeToString(key)
}
