// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// userResponse is the user directory's wire format.
type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// NewUserEmailLookup returns a lookup function that resolves user IDs to
// email addresses through the account subsystem's user directory.
func NewUserEmailLookup(baseURL, apiKey string, timeout time.Duration) func(ctx context.Context, userID string) (string, error) {
	client := &http.Client{Timeout: timeout}

	return func(ctx context.Context, userID string) (string, error) {
		endpoint := fmt.Sprintf("%s/v1/users/%s", baseURL, url.PathEscape(userID))

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return "", fmt.Errorf("failed to build user lookup request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+apiKey)
		req.Header.Set("Accept", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			return "", fmt.Errorf("failed to look up user: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("user directory returned status %d for user %s", resp.StatusCode, userID)
		}

		var body userResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return "", fmt.Errorf("failed to decode user response: %w", err)
		}
		if body.Email == "" {
			return "", fmt.Errorf("user %s has no email on record", userID)
		}
		return body.Email, nil
	}
}
