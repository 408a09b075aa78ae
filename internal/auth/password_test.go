package auth

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/s/librekpi/internal/apperrors"
)

// zeroSalt is the Base64 text of eight zero bytes.
const zeroSalt = "AAAAAAAAAAA="

func TestGenerateSalt(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 32; i++ {
		salt, err := GenerateSalt()
		if err != nil {
			t.Fatalf("GenerateSalt() error = %v", err)
		}
		if len(salt) != SaltLength {
			t.Errorf("len(salt) = %d, want %d", len(salt), SaltLength)
		}
		raw, err := base64.StdEncoding.DecodeString(salt)
		if err != nil {
			t.Fatalf("salt %q is not Base64: %v", salt, err)
		}
		if len(raw) != SaltSize {
			t.Errorf("decoded salt has %d bytes, want %d", len(raw), SaltSize)
		}
		if seen[salt] {
			t.Errorf("duplicate salt %q", salt)
		}
		seen[salt] = true
	}
}

func TestDecodeSalt(t *testing.T) {
	raw, err := DecodeSalt(zeroSalt)
	if err != nil {
		t.Fatalf("DecodeSalt() error = %v", err)
	}
	if len(raw) != 8 {
		t.Fatalf("len(raw) = %d, want 8", len(raw))
	}
	for i, b := range raw {
		if b != 0 {
			t.Errorf("raw[%d] = %d, want 0", i, b)
		}
	}

	for _, bad := range []string{"not base64!", "AAAA=AAA", "%%%%"} {
		_, err := DecodeSalt(bad)
		if !errors.Is(err, apperrors.ErrCorruptCredentialState) {
			t.Errorf("DecodeSalt(%q) error = %v, want ErrCorruptCredentialState", bad, err)
		}
	}
}

func TestHashPassword_KnownDigest(t *testing.T) {
	salt, err := DecodeSalt(zeroSalt)
	if err != nil {
		t.Fatalf("DecodeSalt() error = %v", err)
	}

	got := HashPassword("secret", salt)
	want := "014807401838666cb76e22aae90b3b0a22959ae2fb40621b1d09e862eb9653e5"
	if got != want {
		t.Errorf("HashPassword() = %s, want %s", got, want)
	}
	if len(got) != HashLength {
		t.Errorf("len = %d, want %d", len(got), HashLength)
	}
	if strings.ToLower(got) != got {
		t.Error("digest must be lowercase hex")
	}

	// Empty salt reduces to a plain SHA-256 of the password.
	if HashPassword("secret", nil) != "2bb80d537b1da3e38bd30361aa855686bde0eacd7162fef6a25fe97bf527a25b" {
		t.Error("unexpected digest for empty salt")
	}
}

func TestHashPassword_Deterministic(t *testing.T) {
	salt := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	if HashPassword("pässwörd", salt) != HashPassword("pässwörd", salt) {
		t.Error("same inputs must give the same digest")
	}
	if HashPassword("pässwörd", salt) == HashPassword("pässwörd", []byte{8, 7, 6, 5, 4, 3, 2, 1}) {
		t.Error("different salts must give different digests")
	}
}

func TestCheckPassword(t *testing.T) {
	salt, _ := DecodeSalt(zeroSalt)
	stored := HashPassword("secret", salt)

	tests := []struct {
		password string
		want     bool
	}{
		{"secret", true},
		{"Secret", false},
		{"secretx", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			if got := CheckPassword(stored, tt.password, salt); got != tt.want {
				t.Errorf("CheckPassword(%q) = %v, want %v", tt.password, got, tt.want)
			}
		})
	}
}

func TestCheckPassword_FreshSalts(t *testing.T) {
	for _, password := range []string{"a", "correct horse battery staple", "пароль"} {
		text, err := GenerateSalt()
		if err != nil {
			t.Fatal(err)
		}
		salt, err := DecodeSalt(text)
		if err != nil {
			t.Fatal(err)
		}
		stored := HashPassword(password, salt)
		if !CheckPassword(stored, password, salt) {
			t.Errorf("password %q should verify", password)
		}
		if CheckPassword(stored, password+"x", salt) {
			t.Errorf("password %q+x should not verify", password)
		}
	}
}
