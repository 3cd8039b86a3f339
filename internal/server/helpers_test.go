package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/niyati34/college-meme-page/internal/pagination"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- humanizeParam (pure function, no HTTP) ---

func TestHumanizeParam(t *testing.T) {
	tests := []struct {
		param    string
		expected string
	}{
		{"id", "ID"},
		{"memeId", "meme ID"},
		{"commentId", "comment ID"},
		{"collectionId", "collection ID"},
		{"something", "something"},
	}
	for _, tt := range tests {
		t.Run(tt.param, func(t *testing.T) {
			assert.Equal(t, tt.expected, humanizeParam(tt.param))
		})
	}
}

func TestSplitCSV(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitCSV("a,b"))
	assert.Equal(t, []string{"a", "b"}, splitCSV(" a , ,b, "))
	assert.Nil(t, splitCSV(""))
}

// --- parseID ---

func TestParseID(t *testing.T) {
	s := &Server{}
	app := fiber.New()
	app.Get("/memes/:id", func(c *fiber.Ctx) error {
		id, err := s.parseID(c, "id")
		if err != nil {
			return nil
		}
		return c.JSON(fiber.Map{"id": id})
	})

	tests := []struct {
		path           string
		expectedStatus int
	}{
		{"/memes/5", http.StatusOK},
		{"/memes/0", http.StatusBadRequest},
		{"/memes/-3", http.StatusBadRequest},
		{"/memes/abc", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

// --- parsePagination ---

func paginationTestApp(s *Server) *fiber.App {
	app := fiber.New()
	app.Get("/items", func(c *fiber.Ctx) error {
		p, err := s.parsePagination(c)
		if err != nil {
			return nil
		}
		return c.JSON(fiber.Map{"page": p.Page, "limit": p.Limit})
	})
	return app
}

func TestParsePaginationDefaults(t *testing.T) {
	app := paginationTestApp(&Server{})

	req := httptest.NewRequest(http.MethodGet, "/items", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]float64
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, float64(1), body["page"])
	assert.Equal(t, float64(pagination.DefaultLimit), body["limit"])
}

func TestParsePaginationCustom(t *testing.T) {
	app := paginationTestApp(&Server{})

	req := httptest.NewRequest(http.MethodGet, "/items?page=3&limit=10", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]float64
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, float64(3), body["page"])
	assert.Equal(t, float64(10), body["limit"])
}

func TestParsePaginationClampsLimit(t *testing.T) {
	app := paginationTestApp(&Server{})

	req := httptest.NewRequest(http.MethodGet, "/items?limit=5000", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]float64
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, float64(pagination.MaxLimit), body["limit"])
}

func TestParsePaginationRejectsInvalid(t *testing.T) {
	// present but malformed or non-positive values are a client error, not
	// a silent fallback to defaults
	paths := []string{
		"/items?page=abc",
		"/items?page=0",
		"/items?page=-1",
		"/items?limit=abc",
		"/items?limit=0",
		"/items?limit=-5",
		"/items?page=2&limit=oops",
	}
	app := paginationTestApp(&Server{})
	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}
