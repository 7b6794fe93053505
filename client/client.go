// Package client is a typed REST client for the admin API. It keeps a small
// list cache per resource that is invalidated after successful mutations, and
// exposes pending flags so a UI can disable buttons while requests are in flight.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/AriJaya07/voyra-tour-bali/models"
	"github.com/AriJaya07/voyra-tour-bali/services"
)

// ConfirmFunc is asked before every delete; label names the record ("Bali Temples").
type ConfirmFunc func(ctx context.Context, resource, label string) bool

// ErrDeleteNotConfirmed is returned when the confirmer declines or none is configured.
var ErrDeleteNotConfirmed = errors.New("delete not confirmed")

// APIError is a non-2xx answer; Message is the server's {"error"} text.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api %d: %s", e.Status, e.Message)
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

func WithToken(token string) Option { return func(c *Client) { c.token = token } }

func WithConfirm(fn ConfirmFunc) Option { return func(c *Client) { c.confirm = fn } }

type Client struct {
	baseURL string
	http    *http.Client
	confirm ConfirmFunc
	cache   *cache

	mu    sync.RWMutex
	token string

	Categories   *Resource[models.Category, CategoryForm]
	Destinations *Resource[models.Destination, DestinationForm]
	Packages     *Resource[models.Package, PackageForm]
	Locations    *Resource[models.Location, LocationForm]
	Contents     *Resource[models.Content, ContentForm]
	Images       *Images
	Dashboard    *Dashboard
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		cache:   newCache(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.Categories = newResource[models.Category, CategoryForm](c, "categories", keyDashboard, "destinations", "packages")
	c.Destinations = newResource[models.Destination, DestinationForm](c, "destinations",
		keyDashboard, "categories", "packages", "locations", "contents", "images")
	c.Packages = newResource[models.Package, PackageForm](c, "packages", keyDashboard, "categories", "destinations", "images")
	c.Locations = newResource[models.Location, LocationForm](c, "locations", "destinations")
	c.Contents = newResource[models.Content, ContentForm](c, "contents", "destinations")
	c.Images = &Images{c: c}
	c.Dashboard = &Dashboard{c: c}
	return c
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) setToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Login signs in and keeps the session token for later requests.
func (c *Client) Login(ctx context.Context, email, password string) (*models.User, error) {
	var out struct {
		User  models.User `json:"user"`
		Token string      `json:"token"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &out); err != nil {
		return nil, err
	}
	c.setToken(out.Token)
	return &out.User, nil
}

func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
	c.setToken("")
	c.cache.clear()
	return err
}

// Activity returns the latest mutations recorded by the server.
func (c *Client) Activity(ctx context.Context, limit int) ([]models.ActivityLog, error) {
	var out []models.ActivityLog
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/activity?limit=%d", limit), nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	contentType := ""
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
		contentType = "application/json"
	}
	return c.send(ctx, method, path, reader, contentType, out)
}

// cachedGet keeps the raw response body under key and decodes a fresh value
// into out on every call, so callers never share cached state.
func (c *Client) cachedGet(ctx context.Context, key, path string, ttl time.Duration, out any) error {
	if v, ok := c.cache.get(key); ok {
		return json.Unmarshal(v.([]byte), out)
	}
	var buf bytes.Buffer
	if err := c.send(ctx, http.MethodGet, path, nil, "", &buf); err != nil {
		return err
	}
	raw := buf.Bytes()
	if err := json.Unmarshal(raw, out); err != nil {
		return err
	}
	c.cache.set(key, raw, ttl)
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if w, ok := out.(io.Writer); ok {
		_, err = io.Copy(w, resp.Body)
		return err
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeAPIError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(raw, &body); err != nil || body.Error == "" {
		body.Error = strings.TrimSpace(string(raw))
		if body.Error == "" {
			body.Error = http.StatusText(resp.StatusCode)
		}
	}
	return &APIError{Status: resp.StatusCode, Message: body.Error}
}

// Dashboard reads the overview stats, cached for two minutes.
type Dashboard struct {
	c *Client
}

const (
	keyDashboard        = "dashboard"
	DashboardStaleAfter = 2 * time.Minute
)

func (d *Dashboard) Stats(ctx context.Context) (*services.DashboardStats, error) {
	var stats services.DashboardStats
	if err := d.c.cachedGet(ctx, keyDashboard, "/api/dashboard/stats", DashboardStaleAfter, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Export streams the catalogue workbook into w.
func (d *Dashboard) Export(ctx context.Context, w io.Writer) error {
	return d.c.send(ctx, http.MethodGet, "/api/dashboard/export", nil, "", w)
}

func (d *Dashboard) Invalidate() { d.c.cache.invalidate(keyDashboard) }
