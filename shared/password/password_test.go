package password_test

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"atrium/shared/password"
)

func TestConstants(t *testing.T) {
	if password.DefaultCost != bcrypt.DefaultCost {
		t.Errorf("expected DefaultCost to be %d, got %d", bcrypt.DefaultCost, password.DefaultCost)
	}
}

func TestHash(t *testing.T) {
	tests := []struct {
		name        string
		password    string
		expectError bool
	}{
		{
			name:     "valid password",
			password: "validPassword123",
		},
		{
			name:        "empty password",
			password:    "",
			expectError: true,
		},
		{
			name:     "short password",
			password: "abc",
		},
		{
			name:        "password over bcrypt length limit",
			password:    strings.Repeat("a", 100),
			expectError: true,
		},
		{
			name:     "password with special characters",
			password: "P@ssw0rd!#$%^&*()",
		},
		{
			name:     "unicode password",
			password: "пароль123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := password.Hash(tt.password)

			if tt.expectError {
				if err == nil {
					t.Error("expected error, got nil")
				}
				if hash != "" {
					t.Errorf("expected empty hash when error occurs, got %s", hash)
				}

				return
			}

			if err != nil {
				t.Errorf("expected no error, got %v", err)
			}
			if hash == "" {
				t.Error("expected non-empty hash, got empty string")
			}

			if !strings.HasPrefix(hash, "$2a$") && !strings.HasPrefix(hash, "$2b$") && !strings.HasPrefix(hash, "$2y$") {
				t.Errorf("expected bcrypt hash format, got %s", hash)
			}

			if err := password.Verify(tt.password, hash); err != nil {
				t.Errorf("expected verification to succeed, got error: %v", err)
			}
		})
	}
}

func TestVerify(t *testing.T) {
	testPassword := "testPassword123"
	validHash, err := password.Hash(testPassword)
	if err != nil {
		t.Fatalf("failed to create test hash: %v", err)
	}

	tests := []struct {
		name           string
		password       string
		hash           string
		expectError    bool
		wantInvalidErr bool
	}{
		{
			name:     "valid password and hash",
			password: testPassword,
			hash:     validHash,
		},
		{
			name:           "wrong password",
			password:       "wrongPassword",
			hash:           validHash,
			expectError:    true,
			wantInvalidErr: true,
		},
		{
			name:           "empty password",
			password:       "",
			hash:           validHash,
			expectError:    true,
			wantInvalidErr: true,
		},
		{
			name:           "empty hash",
			password:       testPassword,
			hash:           "",
			expectError:    true,
			wantInvalidErr: true,
		},
		{
			name:           "both empty",
			password:       "",
			hash:           "",
			expectError:    true,
			wantInvalidErr: true,
		},
		{
			name:        "invalid hash format",
			password:    testPassword,
			hash:        "invalid_hash",
			expectError: true,
		},
		{
			name:        "truncated hash",
			password:    testPassword,
			hash:        validHash[:10],
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Verify(tt.password, tt.hash)

			if !tt.expectError {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}

				return
			}

			if err == nil {
				t.Error("expected error, got nil")

				return
			}

			if tt.wantInvalidErr && !errors.Is(err, password.ErrInvalidPassword) {
				t.Errorf("expected ErrInvalidPassword, got %v", err)
			}
			if !tt.wantInvalidErr && errors.Is(err, password.ErrInvalidPassword) {
				t.Errorf("expected a wrapped bcrypt error, got ErrInvalidPassword")
			}
		})
	}
}

func TestHashAndVerifyRoundTrip(t *testing.T) {
	passwords := []string{
		"simple",
		"with spaces in it",
		"P@ssw0rd!#$%^&*()",
		"пароль123",
	}

	for _, plain := range passwords {
		hash, err := password.Hash(plain)
		if err != nil {
			t.Fatalf("failed to hash %q: %v", plain, err)
		}

		if err := password.Verify(plain, hash); err != nil {
			t.Errorf("expected %q to verify against its own hash, got %v", plain, err)
		}

		if err := password.Verify(plain+"x", hash); !errors.Is(err, password.ErrInvalidPassword) {
			t.Errorf("expected ErrInvalidPassword for altered password, got %v", err)
		}
	}
}
