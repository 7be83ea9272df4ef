package google

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/idtoken"

	"github.com/doselog/identity-service/internal/application"
)

// Verifier validates Google ID tokens against the configured OAuth
// client id and extracts the identity claims the linking engine needs.
type Verifier struct {
	ClientID string
}

func NewVerifier(clientID string) *Verifier {
	return &Verifier{ClientID: clientID}
}

func (v *Verifier) Verify(ctx context.Context, identityToken string) (application.FederatedClaims, error) {
	payload, err := idtoken.Validate(ctx, identityToken, v.ClientID)
	if err != nil {
		return application.FederatedClaims{}, fmt.Errorf("google id token validation: %w", err)
	}

	claims := application.FederatedClaims{
		ProviderUserID: payload.Subject,
		Email:          claimString(payload.Claims, "email"),
		Name:           claimString(payload.Claims, "name"),
		PictureURL:     claimString(payload.Claims, "picture"),
	}
	if verified, ok := payload.Claims["email_verified"].(bool); ok {
		claims.EmailVerified = verified
	}

	// Email-match consolidation downstream depends on this assertion, so
	// an unverified email is rejected here, not in the linking engine.
	if !claims.EmailVerified {
		return application.FederatedClaims{}, errors.New("google account email is not verified")
	}
	if claims.ProviderUserID == "" || claims.Email == "" {
		return application.FederatedClaims{}, errors.New("google id token is missing required claims")
	}
	return claims, nil
}

func claimString(claims map[string]any, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}

var _ application.FederatedVerifier = (*Verifier)(nil)
