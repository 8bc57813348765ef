package googleoauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"forms-server/internal/observability"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

type UserInfo struct {
	ID            string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	FirstName     string `json:"given_name"`
	LastName      string `json:"family_name"`
}

type Client struct {
	config      *oauth2.Config
	userInfoURL string
	logger      *observability.Logger
}

func NewClient(clientID, clientSecret, redirectURL string, logger *observability.Logger) *Client {
	return &Client{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     google.Endpoint,
			Scopes:       []string{"openid", "email", "profile"},
		},
		userInfoURL: googleUserInfoURL,
		logger:      logger,
	}
}

// GetAccessToken exchanges an authorization code for a token
func (c *Client) GetAccessToken(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := c.config.Exchange(ctx, code)
	if err != nil {
		c.logger.Error(ctx, "failed to exchange google authorization code", err)
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	return token, nil
}

// GetUserInfo fetches the profile of the token's owner
func (c *Client) GetUserInfo(ctx context.Context, token *oauth2.Token) (UserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userInfoURL, nil)
	if err != nil {
		return UserInfo{}, fmt.Errorf("failed to create userinfo request: %w", err)
	}

	resp, err := c.config.Client(ctx, token).Do(req)
	if err != nil {
		c.logger.Error(ctx, "failed to call google userinfo", err)
		return UserInfo{}, fmt.Errorf("failed to get user info: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error(ctx, "failed to read google userinfo response", err)
		return UserInfo{}, fmt.Errorf("failed to read user info: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("userinfo returned status %d", resp.StatusCode)
		c.logger.Error(ctx, "google userinfo request failed", err)
		return UserInfo{}, err
	}

	var userInfo UserInfo
	if err := json.Unmarshal(body, &userInfo); err != nil {
		c.logger.Error(ctx, "failed to decode google userinfo", err)
		return UserInfo{}, fmt.Errorf("failed to decode user info: %w", err)
	}
	return userInfo, nil
}
