// Package session maintains the login session: serializing an authenticated
// principal into a cookie-backed session and resolving it back into a full
// account on later requests.
package session

import (
	"log/slog"
	"net/http"

	"clubhouse/config"
	"clubhouse/internal/domain/entity"
	"clubhouse/internal/usecase"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	echosession "github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	sessionName = "clubhouse_session"
	keyUserID   = "user_id"
)

// NewStore builds the cookie store that backs every session. The cookie only
// ever carries the signed account identifier; everything else lives in the
// database.
func NewStore(cfg *config.Config) sessions.Store {
	store := sessions.NewCookieStore([]byte(cfg.Session.Secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   cfg.Session.MaxAge,
		HttpOnly: true,
		Secure:   cfg.Session.Secure,
		SameSite: http.SameSiteLaxMode,
	}

	return store
}

// Manager performs the serialize/deserialize lifecycle around the session
// store. It is handed to handlers instead of living in package-global state.
type Manager struct {
	uc     usecase.AccountUsecase
	logger *slog.Logger
}

// ManagerParams holds dependencies for Manager, injected by Fx.
type ManagerParams struct {
	fx.In

	Usecase usecase.AccountUsecase
	Logger  *slog.Logger
}

// NewManager is the constructor for Manager.
func NewManager(params ManagerParams) *Manager {
	return &Manager{
		uc:     params.Usecase,
		logger: params.Logger,
	}
}

// Establish serializes the authenticated principal into the session: only
// the account identifier is stored.
func (m *Manager) Establish(c echo.Context, user *entity.User) error {
	// The store hands back a fresh session even when an old cookie fails to
	// decode, so a decode error must not block a new login.
	sess, err := echosession.Get(sessionName, c)
	if sess == nil {
		return errors.Wrap(err, "failed to open session")
	}

	sess.Values[keyUserID] = user.ID.String()
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return errors.Wrap(err, "failed to save session")
	}

	return nil
}

// Principal deserializes the stored identifier back into the full account.
// An absent or stale session yields a nil principal and the request proceeds
// as unauthenticated; only infrastructure failures return an error.
func (m *Manager) Principal(c echo.Context) (*entity.User, error) {
	sess, err := echosession.Get(sessionName, c)
	if err != nil {
		// An undecodable cookie (e.g. rotated secret) is treated as no session.
		m.logger.Debug("Discarding undecodable session cookie", slog.Any("error", err))

		return nil, nil
	}

	raw, ok := sess.Values[keyUserID].(string)
	if !ok {
		return nil, nil
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, nil
	}

	user, err := m.uc.LoadPrincipal(c.Request().Context(), id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve session principal")
	}

	return user, nil
}

// Destroy tears the session down and expires the cookie.
func (m *Manager) Destroy(c echo.Context) error {
	sess, err := echosession.Get(sessionName, c)
	if sess == nil {
		return errors.Wrap(err, "failed to open session")
	}

	for key := range sess.Values {
		delete(sess.Values, key)
	}
	sess.Options.MaxAge = -1

	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return errors.Wrap(err, "failed to destroy session")
	}

	return nil
}
