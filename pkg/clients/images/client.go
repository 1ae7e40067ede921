package images

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"

	"cardslip/internal/domain/models"
)

// Cards link out to arbitrary image hosts; anything bigger than this is
// not a card scan.
const maxImageBytes = 5 << 20

// Client fetches card images on behalf of the browser so spreadsheet
// image URLs render regardless of the host's CORS policy.
type Client struct {
	httpClient *resty.Client
}

// NewClient builds the image fetcher with a bounded timeout and
// redirect depth.
func NewClient() *Client {
	restyClient := resty.New()
	restyClient.
		SetTimeout(10 * time.Second).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(3))

	return &Client{httpClient: restyClient}
}

// Image is one fetched payload with enough metadata to re-serve it.
type Image struct {
	ContentType string
	Body        []byte
}

// Fetch downloads the image at rawURL. Only absolute http(s) URLs are
// accepted; anything else is a caller error, not an upstream failure.
func (c *Client) Fetch(ctx context.Context, rawURL string) (*Image, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, models.NewValidationError("image url must be an absolute http(s) url")
	}

	resp, err := c.httpClient.R().SetContext(ctx).Get(rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetch image %s: %w", rawURL, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch image %s: upstream status %d", rawURL, resp.StatusCode())
	}

	body := resp.Body()
	if len(body) > maxImageBytes {
		return nil, fmt.Errorf("image %s exceeds %d bytes", rawURL, maxImageBytes)
	}

	contentType := resp.Header().Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(body)
	}

	return &Image{ContentType: contentType, Body: body}, nil
}
