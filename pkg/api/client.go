package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"albumdl/pkg/config"
	errs "albumdl/pkg/errors"
	"albumdl/pkg/logger"
	"albumdl/pkg/retry"
)

// Client is the upstream API client. Every GET it performs runs inside the
// retry layer, so transient failures are absorbed before errors reach the
// caller. JSON decoding happens after the retry loop: a decode error is
// terminal and is never retried.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	logger     logger.Logger
	retryCfg   *retry.Config
}

// NewClient creates a client from the API configuration
func NewClient(cfg *config.APIConfig, log logger.Logger) *Client {
	if log == nil {
		log = logger.GetLogger()
	}

	return NewClientWithRetry(cfg, &retry.Config{
		MaxAttempts: cfg.MaxAttempts,
		Backoff:     retry.DefaultExponentialBackoff(),
		RetryIf:     retry.RetryAll,
		Context:     context.Background(),
		Logger:      log,
	}, log)
}

// NewClientWithRetry creates a client with an explicit retry configuration
func NewClientWithRetry(cfg *config.APIConfig, retryCfg *retry.Config, log logger.Logger) *Client {
	if log == nil {
		log = logger.GetLogger()
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:   baseURL,
		userAgent: cfg.UserAgent,
		logger:    log,
		retryCfg:  retryCfg,
	}
}

// BaseURL returns the configured upstream root
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get performs an HTTP GET with retry and returns the response body
func (c *Client) Get(url string) ([]byte, error) {
	return retry.DoWithResult(func() ([]byte, error) {
		return c.get(url)
	}, c.retryCfg)
}

// GetJSON performs a GET request and decodes the JSON response
func (c *Client) GetJSON(url string, target interface{}) error {
	body, err := c.Get(url)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, target); err != nil {
		bodyPreview := string(body)
		if len(bodyPreview) > 200 {
			bodyPreview = bodyPreview[:200] + "..."
		}

		c.logger.ErrorWithFields("failed to parse JSON response", map[string]interface{}{
			"url":          url,
			"error":        err.Error(),
			"body_preview": bodyPreview,
		})
		return &errs.Error{
			Type:    errs.ErrorTypeParsing,
			Message: fmt.Sprintf("failed to parse JSON: %v", err),
			Code:    0,
		}
	}

	return nil
}

// FetchAlbums fetches the full album listing
func (c *Client) FetchAlbums() ([]Album, error) {
	var albums []Album
	if err := c.GetJSON(AlbumsURL(c.baseURL), &albums); err != nil {
		return nil, err
	}
	return albums, nil
}

// FetchAlbumPhotos fetches the photo metadata for one album
func (c *Client) FetchAlbumPhotos(albumID int) ([]Photo, error) {
	var photos []Photo
	if err := c.GetJSON(AlbumPhotosURL(c.baseURL, albumID), &photos); err != nil {
		return nil, err
	}
	return photos, nil
}

// DownloadPhoto fetches a photo's binary content
func (c *Client) DownloadPhoto(photoURL string) ([]byte, error) {
	return c.Get(photoURL)
}

// get performs a single GET attempt and classifies failures
func (c *Client) get(url string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, &errs.Error{
			Type:    errs.ErrorTypeUnknown,
			Message: fmt.Sprintf("failed to create request: %v", err),
			Code:    0,
		}
	}
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	c.logger.DebugWithFields("sending HTTP request", map[string]interface{}{
		"method": req.Method,
		"url":    url,
	})

	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logger.ErrorWithFields("HTTP request failed", map[string]interface{}{
			"method":   req.Method,
			"url":      url,
			"error":    err.Error(),
			"duration": duration,
		})
		return nil, &errs.Error{
			Type:    errs.ErrorTypeNetwork,
			Message: fmt.Sprintf("network error: %v", err),
			Code:    0,
		}
	}
	defer resp.Body.Close()

	c.logger.DebugWithFields("HTTP request completed", map[string]interface{}{
		"method":   req.Method,
		"url":      url,
		"status":   resp.StatusCode,
		"duration": duration,
	})

	if resp.StatusCode != http.StatusOK {
		return nil, &errs.Error{
			Type:    errs.TypeForStatusCode(resp.StatusCode),
			Message: fmt.Sprintf("server returned status %d", resp.StatusCode),
			Code:    resp.StatusCode,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &errs.Error{
			Type:    errs.ErrorTypeNetwork,
			Message: fmt.Sprintf("failed to read response body: %v", err),
			Code:    resp.StatusCode,
		}
	}

	return body, nil
}
