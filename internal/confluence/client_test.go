// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package confluence

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/confluence-export/internal/httputil"
	"github.com/pdiddy/confluence-export/pkg/types"
)

const sampleSpacesJSON = `{
  "results": [
    {"id": 98306, "key": "DEV", "name": "Development", "type": "global"},
    {"id": 98307, "key": "OPS", "name": "Operations", "type": "global"}
  ],
  "start": 0, "limit": 25, "size": 2
}`

const samplePagesJSON = `{
  "results": [
    {"id": "1", "type": "page", "status": "current", "title": "Intro"},
    {"id": "2", "type": "page", "status": "current", "title": "CI/CD"}
  ],
  "start": 0, "limit": 25, "size": 2
}`

const samplePageJSON = `{
  "id": "1",
  "type": "page",
  "title": "Intro",
  "body": {"storage": {"value": "<p>Grüße – ✓</p>", "representation": "storage"}}
}`

func newTestClient(t *testing.T, ts *httptest.Server) *Client {
	t.Helper()
	c, err := NewClient(ts.Client(), types.ExportConfig{
		HTTPConfig: types.HTTPConfig{UserAgent: "confluence-export/test"},
		BaseURL:    ts.URL,
		Username:   "alice@example.com",
		Token:      "s3cret",
	}, nil)
	require.NoError(t, err)
	return c
}

func TestAPIBase(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"bare host", "https://example.atlassian.net", "https://example.atlassian.net/wiki/rest/api", false},
		{"trailing slash", "https://example.atlassian.net/", "https://example.atlassian.net/wiki/rest/api", false},
		{"path replaced", "https://example.atlassian.net/wiki/spaces", "https://example.atlassian.net/wiki/rest/api", false},
		{"with port", "http://localhost:8090", "http://localhost:8090/wiki/rest/api", false},
		{"empty", "", "", true},
		{"no scheme", "example.atlassian.net", "", true},
		{"ftp scheme", "ftp://example.com", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := APIBase(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestListSpaces(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wiki/rest/api/space", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "alice@example.com", user)
		assert.Equal(t, "s3cret", pass)
		fmt.Fprint(w, sampleSpacesJSON)
	}))
	defer ts.Close()

	spaces, err := newTestClient(t, ts).ListSpaces(context.Background())
	require.NoError(t, err)
	require.Len(t, spaces, 2)
	assert.Equal(t, types.Space{Key: "DEV", Name: "Development", Type: "global"}, spaces[0])
	assert.Equal(t, "OPS", spaces[1].Key)
}

func TestListPages(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wiki/rest/api/content", r.URL.Path)
		assert.Equal(t, "DEV", r.URL.Query().Get("spaceKey"))
		fmt.Fprint(w, samplePagesJSON)
	}))
	defer ts.Close()

	pages, err := newTestClient(t, ts).ListPages(context.Background(), "DEV")
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, types.PageID("1"), pages[0].ID)
	assert.Equal(t, "Intro", pages[0].Title)
	assert.Equal(t, "CI/CD", pages[1].Title)
}

func TestListPages_NumericID(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results": [{"id": 1, "title": "Intro"}, {"id": "65537", "title": "Setup"}]}`)
	}))
	defer ts.Close()

	pages, err := newTestClient(t, ts).ListPages(context.Background(), "DEV")
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, types.PageID("1"), pages[0].ID)
	assert.Equal(t, "Intro", pages[0].Title)
	assert.Equal(t, types.PageID("65537"), pages[1].ID)
}

func TestGetPage_NumericID(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wiki/rest/api/content/1", r.URL.Path)
		fmt.Fprint(w, `{"id": 1, "title": "Intro", "body": {"storage": {"value": "<p>x</p>"}}}`)
	}))
	defer ts.Close()

	page, err := newTestClient(t, ts).GetPage(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "1", page.ID)
	assert.Equal(t, "<p>x</p>", page.Storage)
}

func TestListPages_InvalidID(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results": [{"id": {"nested": true}, "title": "Intro"}]}`)
	}))
	defer ts.Close()

	_, err := newTestClient(t, ts).ListPages(context.Background(), "DEV")
	assert.Error(t, err)
}

func TestListPages_EmptySpace(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results": [], "start": 0, "limit": 25, "size": 0}`)
	}))
	defer ts.Close()

	pages, err := newTestClient(t, ts).ListPages(context.Background(), "OPS")
	require.NoError(t, err)
	assert.Empty(t, pages)
}

func TestGetPage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wiki/rest/api/content/1", r.URL.Path)
		assert.Equal(t, "body.storage", r.URL.Query().Get("expand"))
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		fmt.Fprint(w, samplePageJSON)
	}))
	defer ts.Close()

	page, err := newTestClient(t, ts).GetPage(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "1", page.ID)
	assert.Equal(t, "Intro", page.Title)
	assert.Equal(t, "<p>Grüße – ✓</p>", page.Storage)
}

func TestGetPage_NotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer ts.Close()

	_, err := newTestClient(t, ts).GetPage(context.Background(), "404")
	var reqErr *httputil.RequestError
	require.True(t, errors.As(err, &reqErr), "want *RequestError, got %v", err)
	assert.Equal(t, http.StatusNotFound, reqErr.StatusCode)
	assert.Contains(t, err.Error(), "fetching page 404")
}

func TestListSpaces_Unauthorized(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	_, err := newTestClient(t, ts).ListSpaces(context.Background())
	var reqErr *httputil.RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, http.StatusUnauthorized, reqErr.StatusCode)
}

func TestListSpaces_MalformedJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results": [`)
	}))
	defer ts.Close()

	_, err := newTestClient(t, ts).ListSpaces(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing response")
}

func TestNewClient_RejectsMissingBaseURL(t *testing.T) {
	_, err := NewClient(nil, types.ExportConfig{}, nil)
	assert.Error(t, err)
}
