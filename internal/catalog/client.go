package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/evcraddock/landx/internal/auth"
)

// DefaultBaseURL is the local-development marketplace API address.
const DefaultBaseURL = "http://localhost:5000"

// ErrNotFound means the marketplace answered but has no such listing.
// Callers present this differently from an unreachable marketplace.
var ErrNotFound = errors.New("listing not found")

// Client talks to the remote land-marketplace API.
// It keeps no state between calls beyond its configuration.
type Client struct {
	baseURL    string
	authCtx    *auth.Context
	httpClient *http.Client
}

// NewClient creates a catalog client. An empty baseURL selects the
// local-development default. authCtx may be nil for read-only use.
func NewClient(baseURL string, authCtx *auth.Context) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		authCtx:    authCtx,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// BaseURL returns the configured API base, used to resolve image URLs.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchCatalog reads the full contents of one catalog.
func (c *Client) FetchCatalog(kind Kind) ([]Listing, error) {
	return c.getCatalog(kind, fmt.Sprintf("/api/%s", kind.apiPath()))
}

// SearchCatalog runs a text search against one catalog. The query must
// already be trimmed and non-empty; sending blank queries is a caller bug.
func (c *Client) SearchCatalog(kind Kind, query string) ([]Listing, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("search query is required")
	}
	path := fmt.Sprintf("/api/%s/search/%s", kind.apiPath(), url.PathEscape(query))
	return c.getCatalog(kind, path)
}

// getCatalog fetches and normalizes one catalog endpoint.
func (c *Client) getCatalog(kind Kind, path string) ([]Listing, error) {
	raw, err := c.get(path)
	if err != nil {
		return nil, err
	}
	return normalize(kind, raw), nil
}

// GetListing reads one listing by ID, including the seller when the
// server embeds one.
func (c *Client) GetListing(kind Kind, id string) (*Listing, error) {
	raw, err := c.get(fmt.Sprintf("/api/%s/%s", kind.apiPath(), url.PathEscape(id)))
	if err != nil {
		return nil, err
	}

	var l Listing
	if err := json.Unmarshal(raw, &l); err != nil {
		return nil, fmt.Errorf("decoding listing: %w", err)
	}
	if l.ID == "" {
		// The server answers an unknown id with an empty object.
		return nil, fmt.Errorf("listing %s: %w", id, ErrNotFound)
	}
	l.Kind = kind
	return &l, nil
}

// Submission holds the fields of a new listing upload.
type Submission struct {
	Title       string
	Location    string
	Size        string
	Price       string
	Duration    string // rentals only
	RentType    string // rentals only
	Description string
	Email       string
	ImagePath   string // optional local file attached as "image"
}

// SubmitListing uploads a new listing as a multipart form.
// Requires an authenticated context.
func (c *Client) SubmitListing(kind Kind, sub Submission) error {
	if c.authCtx == nil || !c.authCtx.Authenticated() {
		return fmt.Errorf("submitting a listing requires login")
	}
	if sub.Title == "" {
		return fmt.Errorf("title is required")
	}

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	fields := map[string]string{
		"title":       sub.Title,
		"location":    sub.Location,
		"size":        sub.Size,
		"price":       sub.Price,
		"description": sub.Description,
		"email":       sub.Email,
	}
	if kind == KindRental {
		fields["duration"] = sub.Duration
		fields["rentType"] = sub.RentType
	}
	for name, value := range fields {
		if err := form.WriteField(name, value); err != nil {
			return fmt.Errorf("writing field %s: %w", name, err)
		}
	}

	if sub.ImagePath != "" {
		if err := attachImage(form, sub.ImagePath); err != nil {
			return err
		}
	}

	if err := form.Close(); err != nil {
		return fmt.Errorf("finalizing form: %w", err)
	}

	req, err := http.NewRequest("POST", c.baseURL+"/api/"+kind.apiPath(), &buf)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	c.authCtx.Apply(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer closeBody(resp)

	if resp.StatusCode >= 400 {
		return fmt.Errorf("upload rejected: %s", serverError(resp))
	}
	return nil
}

// attachImage streams a local file into the form's "image" part.
func attachImage(form *multipart.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening image: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			fmt.Fprintf(os.Stderr, "warning: closing image: %v\n", cerr)
		}
	}()

	part, err := form.CreateFormFile("image", filepath.Base(path))
	if err != nil {
		return fmt.Errorf("creating image part: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("copying image: %w", err)
	}
	return nil
}

// get performs an authenticated GET and returns the raw body.
func (c *Client) get(path string) ([]byte, error) {
	req, err := http.NewRequest("GET", c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.authCtx != nil {
		c.authCtx.Apply(req)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer closeBody(resp)

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return raw, nil
}

// serverError extracts the server's error message, falling back to the
// HTTP status text.
func serverError(resp *http.Response) string {
	body, err := io.ReadAll(resp.Body)
	if err == nil {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
			return errResp.Error
		}
	}
	return http.StatusText(resp.StatusCode)
}

func closeBody(resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: closing response body: %v\n", err)
	}
}
