package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"streamify/internal/models"
)

// Client talks to the third-party chat provider. Token mints a client-side
// token for the given user; UpsertUser mirrors the user into the provider's
// directory.
type Client interface {
	Token(userID int64) (string, error)
	UpsertUser(ctx context.Context, user *models.User) error
}

type client struct {
	apiKey     string
	apiSecret  string
	baseURL    string
	httpClient *http.Client
}

const defaultBaseURL = "https://chat.stream-io-api.com"

func NewClient(apiKey, apiSecret, baseURL string) Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &client{
		apiKey:     apiKey,
		apiSecret:  apiSecret,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

// Token signs a provider token scoped to the user. The provider expects an
// HS256 JWT over the API secret with the user id as a claim.
func (c *client) Token(userID int64) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": strconv.FormatInt(userID, 10),
	})
	return token.SignedString([]byte(c.apiSecret))
}

// serverToken authenticates this service to the provider API.
func (c *client) serverToken() (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"server": true,
	})
	return token.SignedString([]byte(c.apiSecret))
}

func (c *client) UpsertUser(ctx context.Context, user *models.User) error {
	auth, err := c.serverToken()
	if err != nil {
		return err
	}

	payload := map[string]any{
		"users": map[string]any{
			strconv.FormatInt(user.ID, 10): map[string]any{
				"id":    strconv.FormatInt(user.ID, 10),
				"name":  user.FullName,
				"image": user.ProfilePicture,
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/users?api_key=%s", c.baseURL, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", auth)
	req.Header.Set("Stream-Auth-Type", "jwt")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("chat provider returned status %d", resp.StatusCode)
	}
	return nil
}

// NewNoopClient returns a client that drops syncs but logs that the chat
// provider is not configured. Token fails so callers surface a clear error.
type noopClient struct{}

func NewNoopClient() Client { return &noopClient{} }

func (n *noopClient) Token(userID int64) (string, error) {
	return "", fmt.Errorf("chat provider not configured")
}

func (n *noopClient) UpsertUser(ctx context.Context, user *models.User) error {
	log.Printf("warning: chat provider not configured; skipping user sync for %d", user.ID)
	return nil
}
