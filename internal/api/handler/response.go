package handler

import (
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// envelope is the canonical success body: {"success": true, "data": ...}.
type envelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

func ok(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, envelope{Success: true, Data: data})
}

// pageResponse is the list body. Next is null when the listing is exhausted.
type pageResponse[T any] struct {
	Items []T     `json:"items"`
	Next  *string `json:"next"`
}

func newPageResponse[T any](items []T, next string) pageResponse[T] {
	if items == nil {
		items = []T{}
	}
	resp := pageResponse[T]{Items: items}
	if next != "" {
		resp.Next = &next
	}
	return resp
}

// Paging holds list size defaults.
type Paging struct {
	Default int
	Max     int
}

// limit parses the limit query parameter. Absent means Default; values that
// are not a number or are below one become 1; values above Max are capped.
func (p Paging) limit(raw string) int {
	def := p.Default
	if def <= 0 {
		def = 100
	}
	if raw == "" {
		return def
	}
	n := 1
	if f, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) && f >= 1 {
		n = int(math.Min(math.Trunc(f), float64(math.MaxInt32)))
	}
	if p.Max > 0 && n > p.Max {
		n = p.Max
	}
	return n
}

// errorBody documents the failure envelope for swag. The error handler in
// package api writes the same shape.
type errorBody struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error"`
}
