package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"clubhouse/config"
	"clubhouse/internal/delivery/http/session"
	"clubhouse/internal/delivery/http/templates"
	"clubhouse/internal/domain/entity"
	domainerrors "clubhouse/internal/domain/errors"
	"clubhouse/internal/usecase"

	"github.com/google/uuid"
	echosession "github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAccounts is an in-memory AccountUsecase so handler tests exercise the
// full request/session round trip without a database.
type fakeAccounts struct {
	byID       map[uuid.UUID]*entity.User
	byUsername map[string]*entity.User
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{
		byID:       make(map[uuid.UUID]*entity.User),
		byUsername: make(map[string]*entity.User),
	}
}

func (f *fakeAccounts) Register(_ context.Context, input usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	for _, user := range f.byUsername {
		if user.Email == input.Email {
			return nil, domainerrors.ErrDuplicateEmail
		}
	}
	if _, ok := f.byUsername[input.Username]; ok {
		return nil, domainerrors.ErrDuplicateUsername
	}

	user := &entity.User{
		ID:           uuid.New(),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: "hashed:" + input.Password,
	}
	f.byID[user.ID] = user
	f.byUsername[user.Username] = user

	return &usecase.RegisterOutput{User: user}, nil
}

func (f *fakeAccounts) Authenticate(_ context.Context, input usecase.LoginInput) (*entity.User, error) {
	user, ok := f.byUsername[input.Username]
	if !ok || user.PasswordHash != "hashed:"+input.Password {
		return nil, domainerrors.ErrInvalidCredentials
	}

	return user, nil
}

func (f *fakeAccounts) LoadPrincipal(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return f.byID[id], nil
}

// newTestServer wires an echo instance the same way the production server
// does: renderer, cookie session middleware, and the auth routes.
func newTestServer(t *testing.T) (*echo.Echo, *fakeAccounts) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Session.Secret = "test-secret"
	cfg.Session.MaxAge = 3600

	renderer, err := templates.NewRenderer()
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	accounts := newFakeAccounts()
	manager := session.NewManager(session.ManagerParams{Usecase: accounts, Logger: logger})
	authHandler := NewAuthHandler(accounts, manager, logger)

	e := echo.New()
	e.Renderer = renderer
	e.Use(echosession.Middleware(session.NewStore(cfg)))
	e.GET("/", authHandler.Home)
	e.GET("/sign-up", authHandler.SignUpForm)
	e.POST("/sign-up", authHandler.SignUp)
	e.POST("/log-in", authHandler.LogIn)
	e.GET("/log-out", authHandler.LogOut)

	return e, accounts
}

func postForm(e *echo.Echo, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func get(e *echo.Echo, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func signUpForm() url.Values {
	return url.Values{
		"first_name":       {"Jane"},
		"last_name":        {"Doe"},
		"username":         {"janedoe"},
		"email":            {"jane@example.com"},
		"password":         {"Secret1!"},
		"confirm-password": {"Secret1!"},
	}
}

type errorsBody struct {
	Errors []struct {
		Msg   string `json:"msg"`
		Param string `json:"param"`
	} `json:"errors"`
}

func decodeErrors(t *testing.T, rec *httptest.ResponseRecorder) errorsBody {
	t.Helper()

	var body errorsBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestSignUp_Success(t *testing.T) {
	e, accounts := newTestServer(t)

	rec := postForm(e, "/sign-up", signUpForm())

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))

	require.Len(t, accounts.byUsername, 1)
	stored := accounts.byUsername["janedoe"]
	assert.Equal(t, "jane@example.com", stored.Email)
	assert.NotEqual(t, "Secret1!", stored.PasswordHash)

	// Registration does not log the user in.
	assert.Empty(t, rec.Result().Cookies())
}

func TestSignUp_ValidationFailureNamesPassword(t *testing.T) {
	e, accounts := newTestServer(t)

	for _, password := range []string{"secret1!", "Secrets!", "Secrets1"} {
		form := signUpForm()
		form.Set("password", password)
		form.Set("confirm-password", password)

		rec := postForm(e, "/sign-up", form)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeErrors(t, rec)
		require.NotEmpty(t, body.Errors)
		assert.Equal(t, "password", body.Errors[0].Param)
	}

	assert.Empty(t, accounts.byUsername, "no account may be created on validation failure")
}

func TestSignUp_ConfirmMismatch(t *testing.T) {
	e, accounts := newTestServer(t)

	form := signUpForm()
	form.Set("confirm-password", "Different1!")

	rec := postForm(e, "/sign-up", form)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrors(t, rec)
	require.NotEmpty(t, body.Errors)
	assert.Equal(t, "confirm-password", body.Errors[0].Param)
	assert.Empty(t, accounts.byUsername)
}

func TestSignUp_DuplicateUsername(t *testing.T) {
	e, accounts := newTestServer(t)

	rec := postForm(e, "/sign-up", signUpForm())
	require.Equal(t, http.StatusFound, rec.Code)

	form := signUpForm()
	form.Set("email", "second@example.com")

	rec = postForm(e, "/sign-up", form)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrors(t, rec)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "username", body.Errors[0].Param)
	assert.Len(t, accounts.byUsername, 1, "exactly one account exists afterward")
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	e, accounts := newTestServer(t)

	rec := postForm(e, "/sign-up", signUpForm())
	require.Equal(t, http.StatusFound, rec.Code)

	form := signUpForm()
	form.Set("username", "janedoe2")

	rec = postForm(e, "/sign-up", form)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrors(t, rec)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "email", body.Errors[0].Param)
	assert.Len(t, accounts.byUsername, 1)
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "clubhouse_session" {
			return cookie
		}
	}

	return nil
}

func TestLogIn_EstablishesSession(t *testing.T) {
	e, _ := newTestServer(t)

	require.Equal(t, http.StatusFound, postForm(e, "/sign-up", signUpForm()).Code)

	rec := postForm(e, "/log-in", url.Values{
		"username": {"janedoe"},
		"password": {"Secret1!"},
	})

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))

	cookie := sessionCookie(t, rec)
	require.NotNil(t, cookie, "login must set the session cookie")

	// The subsequent home request reflects the principal.
	home := get(e, "/", cookie)
	assert.Equal(t, http.StatusOK, home.Code)
	assert.Contains(t, home.Body.String(), "Jane Doe")
	assert.Contains(t, home.Body.String(), "janedoe")
}

func TestLogIn_WrongPasswordLeavesAnonymous(t *testing.T) {
	e, _ := newTestServer(t)

	require.Equal(t, http.StatusFound, postForm(e, "/sign-up", signUpForm()).Code)

	rec := postForm(e, "/log-in", url.Values{
		"username": {"janedoe"},
		"password": {"Wrong1!"},
	})

	// Failure is a redirect too, with no session established.
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
	assert.Nil(t, sessionCookie(t, rec))

	home := get(e, "/")
	assert.Contains(t, home.Body.String(), "Log in")
	assert.NotContains(t, home.Body.String(), "Jane Doe")
}

func TestLogIn_UnknownUsernameLeavesAnonymous(t *testing.T) {
	e, _ := newTestServer(t)

	rec := postForm(e, "/log-in", url.Values{
		"username": {"nobody"},
		"password": {"Secret1!"},
	})

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Nil(t, sessionCookie(t, rec))
}

func TestLogOut_DestroysSession(t *testing.T) {
	e, _ := newTestServer(t)

	require.Equal(t, http.StatusFound, postForm(e, "/sign-up", signUpForm()).Code)
	login := postForm(e, "/log-in", url.Values{
		"username": {"janedoe"},
		"password": {"Secret1!"},
	})
	cookie := sessionCookie(t, login)
	require.NotNil(t, cookie)

	rec := get(e, "/log-out", cookie)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))

	expired := sessionCookie(t, rec)
	require.NotNil(t, expired)
	assert.Less(t, expired.MaxAge, 0, "logout must expire the cookie")

	// Without the session the home view is anonymous again.
	home := get(e, "/")
	assert.Contains(t, home.Body.String(), "Log in")
}

func TestHome_AnonymousByDefault(t *testing.T) {
	e, _ := newTestServer(t)

	rec := get(e, "/")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Log in")
	assert.Contains(t, rec.Body.String(), "/sign-up")
}

func TestHome_StaleSessionIsAnonymous(t *testing.T) {
	e, accounts := newTestServer(t)

	require.Equal(t, http.StatusFound, postForm(e, "/sign-up", signUpForm()).Code)
	login := postForm(e, "/log-in", url.Values{
		"username": {"janedoe"},
		"password": {"Secret1!"},
	})
	cookie := sessionCookie(t, login)
	require.NotNil(t, cookie)

	// The account disappears while the session cookie is still live.
	for id := range accounts.byID {
		delete(accounts.byID, id)
	}

	home := get(e, "/", cookie)
	assert.Equal(t, http.StatusOK, home.Code)
	assert.Contains(t, home.Body.String(), "Log in")
}

func TestSignUpForm_Renders(t *testing.T) {
	e, _ := newTestServer(t)

	rec := get(e, "/sign-up")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="confirm-password"`)
}
