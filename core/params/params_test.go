package params

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestNewQueryParams(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantPage   int
		wantSize   int
		wantOffset int
		wantSearch string
	}{
		{name: "defaults", query: "", wantPage: 1, wantSize: 20, wantOffset: 0},
		{name: "explicit", query: "?page_number=3&page_size=10&search=%20ali%20", wantPage: 3, wantSize: 10, wantOffset: 20, wantSearch: "ali"},
		{name: "invalid falls back", query: "?page_number=-1&page_size=abc", wantPage: 1, wantSize: 20},
		{name: "page size clamped", query: "?page_size=5000", wantPage: 1, wantSize: 200},
	}

	e := echo.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/"+tt.query, nil)
			c := e.NewContext(req, httptest.NewRecorder())

			p := NewQueryParams(c)
			if p.PageNumber != tt.wantPage || p.PageSize != tt.wantSize || p.Search != tt.wantSearch {
				t.Errorf("NewQueryParams() = %+v", p)
			}
			if p.Offset() != tt.wantOffset {
				t.Errorf("Offset() = %d, want %d", p.Offset(), tt.wantOffset)
			}
		})
	}
}

func TestQueryInt64(t *testing.T) {
	tests := []struct {
		query  string
		want   int64
		wantOK bool
	}{
		{query: "?taruf_id=12", want: 12, wantOK: true},
		{query: "?taruf_id=%2012%20", want: 12, wantOK: true},
		{query: "?taruf_id=0"},
		{query: "?taruf_id=-3"},
		{query: "?taruf_id=abc"},
		{query: ""},
	}

	e := echo.New()
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/"+tt.query, nil)
		c := e.NewContext(req, httptest.NewRecorder())
		got, ok := QueryInt64(c, "taruf_id")
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("QueryInt64(%q) = %d, %v; want %d, %v", tt.query, got, ok, tt.want, tt.wantOK)
		}
	}
}
