package userclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"minishop/internal/models"
)

// Client looks up users in the user directory service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the user directory at baseURL. Every lookup is
// bounded by timeout; there are no retries.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// VerifyUser checks that the user exists in the directory. A not-found
// answer and an unreachable directory both return models.ErrInvalidUser;
// callers cannot tell them apart, only the logs can.
func (c *Client) VerifyUser(ctx context.Context, userID int) error {
	url := fmt.Sprintf("%s/api/users/%d", c.baseURL, userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build user lookup request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: user service unreachable: %v", models.ErrInvalidUser, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: user service returned status %d", models.ErrInvalidUser, resp.StatusCode)
	}
	return nil
}
