package services

import (
	"testing"
	"time"

	"geocheckin/errors"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("secret", 60)
	token, err := m.GenerateToken(UserInfo{UserId: 5, Role: 1, Email: "a@b.co"})
	if err != nil {
		t.Fatal(err)
	}

	info, err := m.ParseToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if info.UserId != 5 || info.Role != 1 || info.Email != "a@b.co" {
		t.Errorf("unexpected user info %+v", info)
	}
}

func TestParseTokenRejects(t *testing.T) {
	signer := NewTokenManager("secret", 60)
	valid, _ := signer.GenerateToken(UserInfo{UserId: 5})

	expired := NewTokenManager("secret", 1)
	expired.now = func() time.Time { return time.Now().Add(-time.Hour) }
	old, _ := expired.GenerateToken(UserInfo{UserId: 5})

	noUser, _ := signer.GenerateToken(UserInfo{})

	tests := []struct {
		name  string
		token string
		m     *TokenManager
	}{
		{"wrong secret", valid, NewTokenManager("other", 60)},
		{"expired", old, signer},
		{"garbage", "not.a.token", signer},
		{"no user", noUser, signer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.m.ParseToken(tt.token)
			if !errors.HasCode(err, errors.ErrCodeInvalidToken) {
				t.Fatalf("expected INVALID_TOKEN, got %v", err)
			}
		})
	}
}
