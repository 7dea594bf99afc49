package httpserver

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"
)

func getID(c echo.Context) (string, error) {
	v := c.Get("user_id")
	s, ok := v.(string)
	if !ok || s == "" {
		return "", errors.New("unauthorized")
	}
	return s, nil
}

func uintParam(c echo.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}
