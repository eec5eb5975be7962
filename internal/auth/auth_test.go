package auth

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestContextApply(t *testing.T) {
	req, err := http.NewRequest("GET", "http://example.com/api/lands", nil)
	if err != nil {
		t.Fatalf("creating request: %v", err)
	}

	NewContext("tok123").Apply(req)
	if got := req.Header.Get("Authorization"); got != "Bearer tok123" {
		t.Errorf("Authorization = %q", got)
	}
}

func TestContextAnonymous(t *testing.T) {
	req, err := http.NewRequest("GET", "http://example.com/api/lands", nil)
	if err != nil {
		t.Fatalf("creating request: %v", err)
	}

	var nilCtx *Context
	nilCtx.Apply(req)
	NewContext("").Apply(req)
	NewContext("   ").Apply(req)

	if got := req.Header.Get("Authorization"); got != "" {
		t.Errorf("Authorization = %q, want unset", got)
	}
	if NewContext("  ").Authenticated() {
		t.Error("whitespace token must not count as authenticated")
	}
	if nilCtx.Authenticated() {
		t.Error("nil context must not count as authenticated")
	}
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name       string
		response   string
		statusCode int
		wantToken  string
		wantErr    string
	}{
		{
			name:       "success",
			response:   `{"token": "tok123"}`,
			statusCode: http.StatusOK,
			wantToken:  "tok123",
		},
		{
			name:       "rejected credentials",
			response:   `{"error": "invalid credentials"}`,
			statusCode: http.StatusUnauthorized,
			wantErr:    "invalid credentials",
		},
		{
			name:       "rejected without detail",
			response:   `{}`,
			statusCode: http.StatusForbidden,
			wantErr:    "Forbidden",
		},
		{
			name:       "missing token",
			response:   `{}`,
			statusCode: http.StatusOK,
			wantErr:    "no token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != "POST" {
					t.Errorf("method = %q, want POST", r.Method)
				}
				if r.URL.Path != "/api/auth/login" {
					t.Errorf("path = %q", r.URL.Path)
				}

				var req loginRequest
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
					t.Errorf("decoding request: %v", err)
				}
				if req.Email != "ravi@example.com" {
					t.Errorf("email = %q", req.Email)
				}

				w.WriteHeader(tt.statusCode)
				if _, err := fmt.Fprint(w, tt.response); err != nil {
					t.Fatalf("writing response: %v", err)
				}
			}))
			defer server.Close()

			ctx, err := Login(server.URL, "ravi@example.com", "secret")
			if tt.wantErr != "" {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error = %q, want to mention %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ctx.Token != tt.wantToken {
				t.Errorf("token = %q, want %q", ctx.Token, tt.wantToken)
			}
		})
	}
}

func TestLoginRequiresCredentials(t *testing.T) {
	if _, err := Login("http://unused", "", "secret"); err == nil {
		t.Error("expected error for missing email")
	}
	if _, err := Login("http://unused", "ravi@example.com", ""); err == nil {
		t.Error("expected error for missing password")
	}
}

func TestLoginTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	_, err := Login(server.URL, "ravi@example.com", "secret")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "reaching auth service") {
		t.Errorf("error = %q, want transport wording", err)
	}
}
