// Package response holds the JSON shapes returned by the authentication routes.
package response

import (
	"net/http"

	"clubhouse/internal/validation"

	"github.com/labstack/echo/v4"
)

// ValidationErrors is the 400 body for rejected sign-up submissions:
// {"errors":[{"msg":...,"param":...},...]}.
type ValidationErrors struct {
	Errors []validation.Violation `json:"errors"`
}

// BadRequest writes the full violation list with HTTP 400.
func BadRequest(c echo.Context, violations []validation.Violation) error {
	return c.JSON(http.StatusBadRequest, ValidationErrors{Errors: violations})
}

// Conflict writes a single field-level violation with HTTP 400, matching the
// shape of the validation error body.
func Conflict(c echo.Context, msg, param string) error {
	return c.JSON(http.StatusBadRequest, ValidationErrors{
		Errors: []validation.Violation{{Msg: msg, Param: param}},
	})
}
