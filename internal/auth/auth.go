// Package auth provides the authentication context for the marketplace API.
//
// Credentials live in an explicit Context passed to whichever client needs
// them, never in ambient process-wide state.
package auth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// Context carries a bearer token for authenticated API calls.
// A nil or zero Context means anonymous access.
type Context struct {
	Token string
}

// NewContext wraps a stored token. Empty tokens yield an anonymous context.
func NewContext(token string) *Context {
	return &Context{Token: strings.TrimSpace(token)}
}

// Authenticated returns true if the context carries a token.
func (c *Context) Authenticated() bool {
	return c != nil && c.Token != ""
}

// Apply sets the Authorization header on an outgoing request.
// No-op for anonymous contexts.
func (c *Context) Apply(req *http.Request) {
	if c.Authenticated() {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
}

// loginRequest is the body for the marketplace login endpoint.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse is the marketplace login response.
type loginResponse struct {
	Token string `json:"token"`
	Error string `json:"error"`
}

// Login exchanges credentials for a token at the remote auth endpoint.
// Rejected credentials and transport failures return distinct errors.
func Login(baseURL, email, password string) (*Context, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required")
	}

	body, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := strings.TrimRight(baseURL, "/") + "/api/auth/login"
	req, err := http.NewRequest("POST", url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	httpClient := &http.Client{Timeout: 15 * time.Second}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("reaching auth service: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			fmt.Fprintf(os.Stderr, "warning: closing response body: %v\n", cerr)
		}
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var result loginResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if result.Error != "" {
			return nil, fmt.Errorf("login rejected: %s", result.Error)
		}
		return nil, fmt.Errorf("login rejected: %s", http.StatusText(resp.StatusCode))
	}
	if result.Token == "" {
		return nil, fmt.Errorf("auth service returned no token")
	}

	return NewContext(result.Token), nil
}
