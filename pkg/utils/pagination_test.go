package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestGetPaginationParams(t *testing.T) {
	e := echo.New()

	cases := []struct {
		query            string
		page, size, skip int
	}{
		{"", 1, defaultPageSize, 0},
		{"?page=3&limit=20", 3, 20, 40},
		{"?page=-1&limit=0", 1, defaultPageSize, 0},
		{"?page=abc&limit=9999", 1, defaultPageSize, 0},
	}
	for _, tc := range cases {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/"+tc.query, nil), httptest.NewRecorder())
		p := GetPaginationParams(c)
		assert.Equal(t, tc.page, p.Page, tc.query)
		assert.Equal(t, tc.size, p.PageSize, tc.query)
		assert.Equal(t, tc.skip, p.Offset, tc.query)
		assert.False(t, p.NewestFirst)
	}
}

func TestBounds(t *testing.T) {
	p := NewPaginationParams(2, 10)

	start, end := p.Bounds(25)
	assert.Equal(t, 10, start)
	assert.Equal(t, 20, end)

	start, end = p.Bounds(15)
	assert.Equal(t, 10, start)
	assert.Equal(t, 15, end)

	start, end = p.Bounds(5)
	assert.Equal(t, 5, start)
	assert.Equal(t, 5, end)

	assert.True(t, p.Newest().NewestFirst)
	assert.False(t, p.NewestFirst)
}
