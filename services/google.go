package services

import (
	"context"
	"fmt"

	"geocheckin/dto"

	"google.golang.org/api/idtoken"
)

// GoogleIDTokenVerifier validates ID tokens against the configured client ID.
type GoogleIDTokenVerifier struct {
	ClientID string
}

func (v GoogleIDTokenVerifier) Verify(ctx context.Context, tokenID string) (dto.GoogleUser, error) {
	payload, err := idtoken.Validate(ctx, tokenID, v.ClientID)
	if err != nil {
		return dto.GoogleUser{}, err
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return dto.GoogleUser{}, fmt.Errorf("google token has no email claim")
	}
	name, _ := payload.Claims["name"].(string)
	picture, _ := payload.Claims["picture"].(string)
	verified, _ := payload.Claims["email_verified"].(bool)

	return dto.GoogleUser{
		Name:          name,
		Email:         email,
		VerifiedEmail: verified,
		Picture:       picture,
	}, nil
}
