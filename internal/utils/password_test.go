package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
)

func TestVerifyPasswordFormats(t *testing.T) {
	bc, err := HashPassword("Secret1", bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}

	salt := make([]byte, 16)
	rand.Read(salt)
	key := pbkdf2.Key([]byte("Secret1"), salt, 100000, 32, sha256.New)
	pb := base64.StdEncoding.EncodeToString(append(salt, key...))

	sum := sha256.Sum256([]byte("Secret1HostelSalt2026"))
	legacy := base64.StdEncoding.EncodeToString(sum[:])

	for name, hash := range map[string]string{"bcrypt": bc, "pbkdf2": pb, "legacy": legacy} {
		if !VerifyPassword(hash, "Secret1") {
			t.Errorf("%s: correct password rejected", name)
		}
		if VerifyPassword(hash, "secret1") {
			t.Errorf("%s: wrong password accepted", name)
		}
	}

	if NeedsRehash(bc) || !NeedsRehash(pb) || !NeedsRehash(legacy) {
		t.Error("NeedsRehash classification wrong")
	}
	if VerifyPassword("not base64!", "x") {
		t.Error("garbage hash accepted")
	}
}

func TestRefreshTokenHash(t *testing.T) {
	rt, err := NewRefreshToken(7)
	if err != nil {
		t.Fatal(err)
	}
	if len(rt.Raw) != 96 {
		t.Fatalf("raw length = %d", len(rt.Raw))
	}
	if HashRefreshRaw(rt.Raw) != HashRefreshRaw(rt.Raw) || HashRefreshRaw(rt.Raw) == rt.Raw {
		t.Fatal("hash not deterministic or not hashed")
	}
}
