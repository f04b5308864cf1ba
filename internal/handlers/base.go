// Package handlers wires the HTTP surface: request parsing, existence
// gates and the uniform response envelope. All domain logic stays in the
// repositories.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var validate = validator.New()

// ParseID parses a positive integer path parameter.
func ParseID(c echo.Context, param string) (int, error) {
	idStr := c.Param(param)
	if idStr == "" {
		return 0, httperror.NewHTTPError(http.StatusBadRequest, "missing "+param)
	}

	id, err := strconv.Atoi(idStr)
	if err != nil || id < 1 {
		return 0, httperror.NewHTTPErrorf(http.StatusBadRequest, "invalid %s: must be a positive integer", param)
	}

	return id, nil
}

// ParseSdOid extracts the object identifier path parameter.
func ParseSdOid(c echo.Context) (string, error) {
	sdOid := c.Param("sd_oid")
	if sdOid == "" {
		return "", httperror.NewHTTPError(http.StatusBadRequest, "missing sd_oid")
	}
	return sdOid, nil
}

// SuccessResponse returns a 200 OK with data
func SuccessResponse(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, data)
}

// CreatedResponse returns a 201 Created with data
func CreatedResponse(c echo.Context, data any) error {
	return c.JSON(http.StatusCreated, data)
}

// BadRequest returns a 400 Bad Request error
func BadRequest(message string) error {
	return httperror.NewHTTPError(http.StatusBadRequest, message)
}

// NotFound returns a 404 Not Found error
func NotFound(format string, args ...any) error {
	return httperror.NewHTTPErrorf(http.StatusNotFound, format, args...)
}
