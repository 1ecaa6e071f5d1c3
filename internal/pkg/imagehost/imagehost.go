// Package imagehost uploads images to the Cloudinary upload API.
package imagehost

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DefaultAPIBase is the Cloudinary REST root.
const DefaultAPIBase = "https://api.cloudinary.com/v1_1"

var (
	// ErrNoSecureURL is returned when the host accepts an upload without returning a url.
	ErrNoSecureURL = errors.New("no secure_url returned from image host")
	// ErrDestroyUnsupported is returned by Destroy when no api credentials are configured.
	ErrDestroyUnsupported = errors.New("image destroy requires api key and secret")
)

// Config configures the uploader
type Config struct {
	CloudName    string
	UploadPreset string
	Folder       string
	APIKey       string
	APISecret    string
	APIBase      string
}

// Uploaded is what the host returns for a stored image
type Uploaded struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
	Format    string `json:"format"`
	Bytes     int64  `json:"bytes"`
}

// Uploader is the image host as seen by services
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, filename, folder string) (*Uploaded, error)
	Destroy(ctx context.Context, publicID string) error
	CanDestroy() bool
}

// Client talks to the image host over HTTP
type Client struct {
	cfg  Config
	http *http.Client
	now  func() time.Time
}

var _ Uploader = (*Client)(nil)

// NewClient creates an image host client. httpClient may be nil.
func NewClient(cfg Config, httpClient *http.Client) *Client {
	if cfg.APIBase == "" {
		cfg.APIBase = DefaultAPIBase
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &Client{cfg: cfg, http: httpClient, now: time.Now}
}

// CanDestroy reports whether signed deletes are possible.
func (c *Client) CanDestroy() bool {
	return c.cfg.APIKey != "" && c.cfg.APISecret != ""
}

func (c *Client) endpoint(action string) string {
	return fmt.Sprintf("%s/%s/image/%s", strings.TrimRight(c.cfg.APIBase, "/"), url.PathEscape(c.cfg.CloudName), action)
}

// Upload sends file as an unsigned upload using the configured preset.
// folder overrides the configured default folder when non-empty.
func (c *Client) Upload(ctx context.Context, file io.Reader, filename, folder string) (*Uploaded, error) {
	if folder == "" {
		folder = c.cfg.Folder
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("create file part: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("copy image: %w", err)
	}
	if err := w.WriteField("upload_preset", c.cfg.UploadPreset); err != nil {
		return nil, err
	}
	if folder != "" {
		if err := w.WriteField("folder", folder); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("upload"), &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var out Uploaded
	if err := c.do(req, &out); err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}
	if out.SecureURL == "" {
		return nil, ErrNoSecureURL
	}
	return &out, nil
}

// Destroy deletes an uploaded image with a signed request.
func (c *Client) Destroy(ctx context.Context, publicID string) error {
	if !c.CanDestroy() {
		return ErrDestroyUnsupported
	}

	timestamp := strconv.FormatInt(c.now().Unix(), 10)
	form := url.Values{}
	form.Set("public_id", publicID)
	form.Set("timestamp", timestamp)
	form.Set("api_key", c.cfg.APIKey)
	form.Set("signature", sign(map[string]string{"public_id": publicID, "timestamp": timestamp}, c.cfg.APISecret))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("destroy"), strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var out struct {
		Result string `json:"result"`
	}
	if err := c.do(req, &out); err != nil {
		return fmt.Errorf("destroy failed: %w", err)
	}
	if out.Result != "ok" && out.Result != "not found" {
		return fmt.Errorf("destroy %s: unexpected result %q", publicID, out.Result)
	}
	return nil
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("%d %s: %s", resp.StatusCode, http.StatusText(resp.StatusCode), apiErr.Error.Message)
		}
		return fmt.Errorf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// sign builds the api signature: sha1 of the sorted k=v pairs joined by & followed by the secret.
func sign(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + "=" + params[k]
	}
	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + secret))
	return hex.EncodeToString(sum[:])
}
