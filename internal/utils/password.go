package utils

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
)

// Parameters of the PBKDF2 hashes written by earlier versions of the
// hostel system: base64(salt || key).
const (
	pbkdf2Iterations = 100000
	pbkdf2SaltLen    = 16
	pbkdf2KeyLen     = 32
	legacySalt       = "HostelSalt2026"
)

// HashPassword returns a bcrypt hash using the given cost.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword compares plain against a stored hash. Three formats are
// accepted: bcrypt, PBKDF2-SHA256 and the unsalted legacy SHA-256 digest.
func VerifyPassword(hash, plain string) bool {
	if isBcrypt(hash) {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
	}
	raw, err := base64.StdEncoding.DecodeString(hash)
	if err != nil {
		return false
	}
	switch len(raw) {
	case pbkdf2SaltLen + pbkdf2KeyLen:
		salt, want := raw[:pbkdf2SaltLen], raw[pbkdf2SaltLen:]
		got := pbkdf2.Key([]byte(plain), salt, pbkdf2Iterations, pbkdf2KeyLen, sha256.New)
		return subtle.ConstantTimeCompare(got, want) == 1
	case sha256.Size:
		sum := sha256.Sum256([]byte(plain + legacySalt))
		return subtle.ConstantTimeCompare(sum[:], raw) == 1
	}
	return false
}

// NeedsRehash reports whether hash uses one of the older formats and should
// be replaced with bcrypt after the next successful login.
func NeedsRehash(hash string) bool { return !isBcrypt(hash) }

func isBcrypt(hash string) bool { return strings.HasPrefix(hash, "$2") }
