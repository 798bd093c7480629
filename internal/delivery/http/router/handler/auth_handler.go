// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"clubhouse/internal/delivery/http/response"
	"clubhouse/internal/delivery/http/session"
	"clubhouse/internal/domain/entity"
	domainerrors "clubhouse/internal/domain/errors"
	"clubhouse/internal/usecase"
	"clubhouse/internal/validation"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler serves the home page and the sign-up/log-in/log-out flow.
type AuthHandler struct {
	uc       usecase.AccountUsecase
	sessions *session.Manager
	logger   *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AccountUsecase, sessions *session.Manager, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		uc:       uc,
		sessions: sessions,
		logger:   logger,
	}
}

// homeView is the data handed to the index template.
type homeView struct {
	User *entity.User
}

// Home renders the home view with the current principal (or anonymous).
func (h *AuthHandler) Home(c echo.Context) error {
	principal, err := h.sessions.Principal(c)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Render(http.StatusOK, "index", homeView{User: principal})
}

// SignUpForm renders the registration form.
func (h *AuthHandler) SignUpForm(c echo.Context) error {
	return c.Render(http.StatusOK, "sign-up", nil)
}

// SignUp runs the validation rules and the registration flow. Validation and
// duplicate failures return the structured error list; success redirects
// home without establishing a session.
func (h *AuthHandler) SignUp(c echo.Context) error {
	form := validation.Form{
		validation.FieldFirstName:       c.FormValue(validation.FieldFirstName),
		validation.FieldLastName:        c.FormValue(validation.FieldLastName),
		validation.FieldUsername:        c.FormValue(validation.FieldUsername),
		validation.FieldEmail:           c.FormValue(validation.FieldEmail),
		validation.FieldPassword:        c.FormValue(validation.FieldPassword),
		validation.FieldConfirmPassword: c.FormValue(validation.FieldConfirmPassword),
	}

	if violations := validation.Apply(validation.SignUpRules(), form); len(violations) > 0 {
		return response.BadRequest(c, violations)
	}

	normalized := validation.NormalizeSignUp(form)

	_, err := h.uc.Register(c.Request().Context(), usecase.RegisterInput{
		FirstName: normalized.FirstName,
		LastName:  normalized.LastName,
		Username:  normalized.Username,
		Email:     normalized.Email,
		Password:  normalized.Password,
	})
	if err != nil {
		var appErr domainerrors.AppError
		if errors.As(err, &appErr) && appErr.Param() != "" {
			return response.Conflict(c, appErr.Message(), appErr.Param())
		}

		return errors.WithStack(err)
	}

	return c.Redirect(http.StatusFound, "/")
}

// LogIn authenticates the submitted credentials. Success establishes a
// session; failure redirects home with no session and no distinct error view.
func (h *AuthHandler) LogIn(c echo.Context) error {
	input := usecase.LoginInput{
		Username: c.FormValue("username"),
		Password: c.FormValue("password"),
	}

	user, err := h.uc.Authenticate(c.Request().Context(), input)
	if err != nil {
		if errors.Is(err, domainerrors.ErrInvalidCredentials) {
			return c.Redirect(http.StatusFound, "/")
		}

		return errors.WithStack(err)
	}

	if err := h.sessions.Establish(c, user); err != nil {
		return errors.WithStack(err)
	}

	return c.Redirect(http.StatusFound, "/")
}

// LogOut destroys the session and redirects home. A teardown failure goes to
// the generic error path.
func (h *AuthHandler) LogOut(c echo.Context) error {
	if err := h.sessions.Destroy(c); err != nil {
		return errors.WithStack(err)
	}

	return c.Redirect(http.StatusFound, "/")
}
