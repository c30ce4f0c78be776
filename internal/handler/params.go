package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

var errEmptyID = errors.New("empty id")

// parseIDParam reads a positive int64 path parameter.
func parseIDParam(c echo.Context, name string) (int64, error) {
	raw := strings.TrimSpace(c.Param(name))
	if raw == "" {
		return 0, errEmptyID
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, errEmptyID
	}
	return id, nil
}
