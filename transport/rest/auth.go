package rest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/ritmofit/ritmo"
)

const (
	sessionLocalsKey = "session"
	userLocalsKey    = "user"
	viewerLocalsKey  = "viewer"
)

func bearerToken(ctx *fiber.Ctx) (string, error) {
	auth := ctx.Get(fiber.HeaderAuthorization)
	if auth == "" {
		return "", fiber.ErrUnauthorized
	}
	if !strings.HasPrefix(auth, "Bearer ") {
		return "", fiber.NewError(fiber.ErrBadRequest.Code, "invalid auth type")
	}
	return strings.TrimPrefix(auth, "Bearer "), nil
}

// RequestAuthorizer rejects requests without a valid bearer token and puts
// the session and its user into request locals.
func RequestAuthorizer(sessionStore ritmo.SessionStore, userStore ritmo.UserStore) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		token, err := bearerToken(ctx)
		if err != nil {
			return err
		}

		session, err := sessionStore.ByToken(token)
		if err != nil {
			if errors.Is(err, ritmo.ErrSessionNotFound) {
				return fiber.ErrUnauthorized
			}
			return fmt.Errorf("session by token: %w", err)
		}
		user, err := userStore.ById(ctx.Context(), session.UserId)
		if err != nil {
			return fmt.Errorf("retrieve user by id: %w", err)
		}

		requestLog(ctx).
			WithField("user_id", user.Id).
			Infoln("Authorized access.")

		ctx.Locals(sessionLocalsKey, session)
		ctx.Locals(userLocalsKey, user)
		return nil
	}
}

// OptionalViewer resolves the bearer token to a viewer id when present and
// valid, and to ritmo.NoViewer otherwise. It never fails the request:
// browsing stays public, the viewer only personalizes the response.
func OptionalViewer(sessionStore ritmo.SessionStore) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		ctx.Locals(viewerLocalsKey, ritmo.NoViewer)

		auth := ctx.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(auth, "Bearer ") {
			return ctx.Next()
		}
		token := strings.TrimPrefix(auth, "Bearer ")

		session, err := sessionStore.ByToken(token)
		if err != nil {
			if !errors.Is(err, ritmo.ErrSessionNotFound) {
				requestLog(ctx).WithError(err).Warningln("Viewer lookup failed.")
			}
			return ctx.Next()
		}
		ctx.Locals(viewerLocalsKey, session.UserId)
		return ctx.Next()
	}
}

func viewerId(ctx *fiber.Ctx) ritmo.UserId {
	viewer, ok := ctx.Locals(viewerLocalsKey).(ritmo.UserId)
	if !ok {
		return ritmo.NoViewer
	}
	return viewer
}

type AuthController struct {
	UserStore    ritmo.UserStore
	SessionStore ritmo.SessionStore
	MetricsStore ritmo.MetricsStore
}

func (c *AuthController) InstallTo(app *fiber.App) {
	app.Post("/auth/login", c.serveLogin)
	app.Get("/auth/me", combineHandlers(RequestAuthorizer(c.SessionStore, c.UserStore), c.serveMe))
	app.Post("/auth/logout", c.logoutHandler())
}

type userResponse struct {
	Id              int64   `json:"id"`
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	AvatarUrl       string  `json:"avatarUrl"`
	Kind            string  `json:"kind"`
	TotalActivities int     `json:"totalActivities"`
	TotalCalories   float64 `json:"totalCalories"`
}

func (c *AuthController) serveLogin(ctx *fiber.Ctx) error {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{}
	if err := ctx.BodyParser(&body); err != nil {
		requestLog(ctx).WithError(err).Infoln("Invalid body.")
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if body.Email == "" || body.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing email or password")
	}

	user, err := c.UserStore.ByEmail(ctx.Context(), body.Email)
	if err != nil {
		if errors.Is(err, ritmo.ErrUserNotFound) {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
		}
		return fmt.Errorf("user by email: %w", err)
	}
	if !user.PasswordMatches(body.Password) {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}

	// Cached totals are not trusted on login, recompute from the
	// activities themselves.
	metrics, err := c.MetricsStore.RecomputeUser(ctx.Context(), user.Id)
	if err != nil {
		return fmt.Errorf("recompute user metrics: %w", err)
	}

	session, err := c.SessionStore.RegisterNew(ctx.Context(), user.Id)
	if err != nil {
		return fmt.Errorf("session register new: %w", err)
	}

	return ctx.JSON(map[string]interface{}{
		"accessToken": session.Token,
		"expiresAt":   session.ExpiresAt.Unix(),
		"user": userResponse{
			Id:              int64(user.Id),
			Name:            user.Name,
			Email:           user.Email,
			AvatarUrl:       user.AvatarUrl,
			Kind:            user.Kind,
			TotalActivities: metrics.TotalActivities,
			TotalCalories:   metrics.TotalCalories,
		},
	})
}

func (c *AuthController) serveMe(ctx *fiber.Ctx) error {
	user, ok := ctx.Locals(userLocalsKey).(ritmo.User)
	if !ok {
		return fiber.ErrUnauthorized
	}

	metrics, err := c.MetricsStore.RecomputeUser(ctx.Context(), user.Id)
	if err != nil {
		return fmt.Errorf("recompute user metrics: %w", err)
	}
	return ctx.JSON(userResponse{
		Id:              int64(user.Id),
		Name:            user.Name,
		Email:           user.Email,
		AvatarUrl:       user.AvatarUrl,
		Kind:            user.Kind,
		TotalActivities: metrics.TotalActivities,
		TotalCalories:   metrics.TotalCalories,
	})
}

func (c *AuthController) logoutHandler() fiber.Handler {
	return combineHandlers(RequestAuthorizer(c.SessionStore, c.UserStore), func(ctx *fiber.Ctx) error {
		session := ctx.Locals(sessionLocalsKey).(ritmo.Session)
		return c.SessionStore.InvalidateByToken(session.Token)
	})
}
