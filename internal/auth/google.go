package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mandalart/internal/errors"
)

const (
	defaultGoogleAuthURL     = "https://accounts.google.com/o/oauth2/v2/auth"
	defaultGoogleTokenURL    = "https://oauth2.googleapis.com/token"
	defaultGoogleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

	// CallbackPath is appended to the request origin to form the redirect URI
	CallbackPath = "/api/auth/callback/google"
)

// GoogleProfile holds the provider profile fields this system keeps
type GoogleProfile struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Provider abstracts the identity provider for testing
type Provider interface {
	AuthorizationURL(origin, state string) string
	ExchangeCode(ctx context.Context, code, origin string) (*GoogleProfile, error)
}

type GoogleProviderConfig struct {
	ClientID     string
	ClientSecret string

	// Overridable in tests
	AuthURL     string
	TokenURL    string
	UserInfoURL string
}

// GoogleProvider performs the OAuth2 authorization-code exchange against Google
type GoogleProvider struct {
	config     GoogleProviderConfig
	httpClient *http.Client
}

func NewGoogleProvider(config GoogleProviderConfig) *GoogleProvider {
	if config.AuthURL == "" {
		config.AuthURL = defaultGoogleAuthURL
	}
	if config.TokenURL == "" {
		config.TokenURL = defaultGoogleTokenURL
	}
	if config.UserInfoURL == "" {
		config.UserInfoURL = defaultGoogleUserInfoURL
	}
	return &GoogleProvider{
		config: config,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// AuthorizationURL builds the consent-screen URL for the given request origin
func (p *GoogleProvider) AuthorizationURL(origin, state string) string {
	params := url.Values{
		"client_id":     {p.config.ClientID},
		"redirect_uri":  {origin + CallbackPath},
		"response_type": {"code"},
		"scope":         {"openid email profile"},
		"access_type":   {"offline"},
		"prompt":        {"consent"},
		"state":         {state},
	}
	return p.config.AuthURL + "?" + params.Encode()
}

type googleTokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
}

// ExchangeCode trades the authorization code for tokens and fetches the profile.
// Any upstream failure aborts the whole exchange.
func (p *GoogleProvider) ExchangeCode(ctx context.Context, code, origin string) (*GoogleProfile, error) {
	tokens, err := p.exchangeToken(ctx, code, origin)
	if err != nil {
		return nil, errors.ErrUpstreamAuth(err)
	}

	profile, err := p.fetchUserInfo(ctx, tokens.AccessToken)
	if err != nil {
		return nil, errors.ErrUpstreamAuth(err)
	}

	return profile, nil
}

func (p *GoogleProvider) exchangeToken(ctx context.Context, code, origin string) (*googleTokenResponse, error) {
	data := url.Values{
		"code":          {code},
		"client_id":     {p.config.ClientID},
		"client_secret": {p.config.ClientSecret},
		"redirect_uri":  {origin + CallbackPath},
		"grant_type":    {"authorization_code"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.TokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf(
			"token exchange error: status=%d body=%s",
			resp.StatusCode,
			string(b),
		)
	}

	var tokens googleTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		return nil, err
	}
	if tokens.AccessToken == "" {
		return nil, fmt.Errorf("empty access token in response")
	}

	return &tokens, nil
}

func (p *GoogleProvider) fetchUserInfo(ctx context.Context, accessToken string) (*GoogleProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.config.UserInfoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf(
			"user info fetch error: status=%d body=%s",
			resp.StatusCode,
			string(b),
		)
	}

	var profile GoogleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, err
	}
	if profile.ID == "" {
		return nil, fmt.Errorf("empty user id in user info response")
	}

	return &profile, nil
}

// compile-time interface check
var _ Provider = (*GoogleProvider)(nil)
