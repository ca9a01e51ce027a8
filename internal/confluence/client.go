// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package confluence is a read-only client for the Confluence REST API.
// It lists spaces, lists pages in a space, and fetches a page with its
// storage-format body. List calls return only the first page of results
// the server sends.
package confluence

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/confluence-export/internal/httputil"
	"github.com/pdiddy/confluence-export/pkg/types"
)

// apiPath is joined onto the site address. It is absolute, so any path on
// the configured base URL is replaced.
const apiPath = "/wiki/rest/api"

// Client talks to one Confluence site.
type Client struct {
	http      *http.Client
	apiBase   string
	creds     httputil.Credentials
	userAgent string
	logger    *slog.Logger
}

// NewClient returns a client for the site at cfg.BaseURL. The logger may be
// nil.
func NewClient(httpClient *http.Client, cfg types.ExportConfig, logger *slog.Logger) (*Client, error) {
	apiBase, err := APIBase(cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		http:      httpClient,
		apiBase:   apiBase,
		creds:     httputil.Credentials{Username: cfg.Username, Token: cfg.Token},
		userAgent: cfg.UserAgent,
		logger:    logger,
	}, nil
}

// APIBase derives the REST API root from a site address:
// "https://example.atlassian.net/anything" becomes
// "https://example.atlassian.net/wiki/rest/api".
func APIBase(baseURL string) (string, error) {
	if strings.TrimSpace(baseURL) == "" {
		return "", fmt.Errorf("base URL is required")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parsing base URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("base URL %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return "", fmt.Errorf("base URL %q: missing host", baseURL)
	}
	return u.ResolveReference(&url.URL{Path: apiPath}).String(), nil
}

// listResponse is the envelope Confluence wraps list results in.
type listResponse[T any] struct {
	Results []T `json:"results"`
	Start   int `json:"start"`
	Limit   int `json:"limit"`
	Size    int `json:"size"`
}

type contentResponse struct {
	ID    types.PageID `json:"id"`
	Title string       `json:"title"`
	Body  struct {
		Storage struct {
			Value          string `json:"value"`
			Representation string `json:"representation"`
		} `json:"storage"`
	} `json:"body"`
}

// ListSpaces returns the spaces visible to the configured account.
func (c *Client) ListSpaces(ctx context.Context) ([]types.Space, error) {
	var lr listResponse[types.Space]
	if err := c.getJSON(ctx, c.apiBase+"/space", &lr); err != nil {
		return nil, fmt.Errorf("listing spaces: %w", err)
	}
	return lr.Results, nil
}

// ListPages returns the pages of one space in server order.
func (c *Client) ListPages(ctx context.Context, spaceKey string) ([]types.Page, error) {
	params := url.Values{"spaceKey": {spaceKey}}
	var lr listResponse[types.Page]
	if err := c.getJSON(ctx, c.apiBase+"/content?"+params.Encode(), &lr); err != nil {
		return nil, fmt.Errorf("listing pages in space %s: %w", spaceKey, err)
	}
	return lr.Results, nil
}

// GetPage fetches a page with its storage-format body expanded.
func (c *Client) GetPage(ctx context.Context, id string) (*types.PageBody, error) {
	params := url.Values{"expand": {"body.storage"}}
	reqURL := c.apiBase + "/content/" + url.PathEscape(id) + "?" + params.Encode()

	var cr contentResponse
	if err := c.getJSON(ctx, reqURL, &cr); err != nil {
		return nil, fmt.Errorf("fetching page %s: %w", id, err)
	}
	return &types.PageBody{
		ID:      string(cr.ID),
		Title:   cr.Title,
		Storage: cr.Body.Storage.Value,
	}, nil
}

func (c *Client) getJSON(ctx context.Context, reqURL string, v any) error {
	req, err := httputil.NewGetRequest(ctx, reqURL, c.creds, c.userAgent)
	if err != nil {
		return err
	}
	c.logger.Debug("GET", "url", reqURL)

	resp, err := httputil.Do(c.http, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("parsing response from %s: %w", reqURL, err)
	}
	return nil
}
