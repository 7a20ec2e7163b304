package mailbox

import (
	"context"
	"fmt"

	"github.com/Veraticus/daily-problems/internal/config"
	"github.com/emersion/go-sasl"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// gmailScope grants IMAP access to a Google mailbox.
const gmailScope = "https://mail.google.com/"

// Authenticator logs an open session in.
type Authenticator func(ctx context.Context, c Client) error

// NewAuthenticator returns the login strategy selected by cfg.Auth.
func NewAuthenticator(cfg config.MailConfig) (Authenticator, error) {
	switch cfg.Auth {
	case config.AuthPassword, "":
		return PasswordAuth(cfg.Username, cfg.Password), nil
	case config.AuthOAuthBearer:
		return OAuthBearerAuth(cfg.Username, tokenSourceFor(cfg.OAuth)), nil
	default:
		return nil, fmt.Errorf("unsupported mail auth %q", cfg.Auth)
	}
}

// PasswordAuth logs in with a plain LOGIN command.
func PasswordAuth(username, password string) Authenticator {
	return func(_ context.Context, c Client) error {
		return c.Login(username, password)
	}
}

// OAuthBearerAuth authenticates with SASL OAUTHBEARER using a fresh access
// token from ts.
func OAuthBearerAuth(username string, ts func(context.Context) oauth2.TokenSource) Authenticator {
	return func(ctx context.Context, c Client) error {
		token, err := ts(ctx).Token()
		if err != nil {
			return fmt.Errorf("failed to obtain access token: %w", err)
		}

		return c.Authenticate(sasl.NewOAuthBearerClient(&sasl.OAuthBearerOptions{
			Username: username,
			Token:    token.AccessToken,
		}))
	}
}

func tokenSourceFor(cfg config.OAuthConfig) func(context.Context) oauth2.TokenSource {
	endpoint := google.Endpoint
	if cfg.TokenURL != "" {
		endpoint = oauth2.Endpoint{TokenURL: cfg.TokenURL}
	}

	oauthConfig := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     endpoint,
		Scopes:       []string{gmailScope},
	}

	return func(ctx context.Context) oauth2.TokenSource {
		return oauthConfig.TokenSource(ctx, &oauth2.Token{RefreshToken: cfg.RefreshToken})
	}
}
