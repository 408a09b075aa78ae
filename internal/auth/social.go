package auth

import (
	"fmt"
	"time"

	"golang.org/x/oauth2"

	"github.com/s/librekpi/internal/apperrors"
)

// TokenLength is the width of the social auth token column.
const TokenLength = 64

// SocialToken is what a social login leaves behind on the users_social row.
type SocialToken struct {
	Token   string
	Payload map[string]interface{}
}

// CaptureToken extracts the access token and a payload describing it from an
// OAuth2 exchange. Provider fields listed in extraKeys are copied from the
// token's extra data when present.
func CaptureToken(tok *oauth2.Token, extraKeys ...string) (*SocialToken, error) {
	if tok == nil || tok.AccessToken == "" {
		return nil, fmt.Errorf("empty oauth2 token")
	}
	if len(tok.AccessToken) > TokenLength {
		return nil, apperrors.NewCustomError(apperrors.ErrValueTooLarge,
			fmt.Sprintf("access token is %d characters, column holds %d", len(tok.AccessToken), TokenLength)).
			WithDetails(map[string]interface{}{"column": "token", "width": TokenLength})
	}

	payload := map[string]interface{}{
		"token_type": tok.Type(),
	}
	if !tok.Expiry.IsZero() {
		payload["expiry"] = tok.Expiry.UTC().Format(time.RFC3339)
	}
	if tok.RefreshToken != "" {
		payload["has_refresh_token"] = true
	}
	for _, key := range extraKeys {
		if v := tok.Extra(key); v != nil {
			payload[key] = v
		}
	}

	return &SocialToken{Token: tok.AccessToken, Payload: payload}, nil
}
