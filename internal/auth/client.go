// Package auth resolves magic-link sign-in tokens to an opaque user identity
// via the external authentication collaborator. Sign-in itself (sending the
// email link) happens outside this service.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Identity is the resolved user behind a verified token.
type Identity struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
}

type Client interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *HTTPClient) Verify(ctx context.Context, token string) (*Identity, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/auth/verify", strings.NewReader(""))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("auth verify: %d %s", resp.StatusCode, string(body))
	}
	var id Identity
	if err := json.Unmarshal(body, &id); err != nil {
		return nil, err
	}
	if id.UserID == "" {
		return nil, fmt.Errorf("auth verify: empty user id")
	}
	return &id, nil
}
