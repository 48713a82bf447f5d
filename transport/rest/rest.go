package rest

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/ritmofit/ritmo"
	"github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	ErrorMessage string `json:"error_message"`
}

func requestLog(ctx *fiber.Ctx) *logrus.Entry {
	return logrus.
		WithField("remote_addr", ctx.Context().RemoteAddr()).
		WithField("path", ctx.Path()).
		WithField("z_referer", string(ctx.Request().Header.Peek("Referer"))).
		WithField("z_user_agent", string(ctx.Request().Header.Peek("User-Agent"))).
		WithField("z_x_forwared_for", string(ctx.Request().Header.Peek("X-Forwarded-For")))
}

func LogHandler() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		requestLog(ctx).Infoln("Handling request.")
		return ctx.Next()
	}
}

func ErrorHandler(ctx *fiber.Ctx, err error) error {
	if fe, ok := err.(*fiber.Error); ok {
		return ctx.
			Status(fe.Code).
			JSON(&ErrorResponse{ErrorMessage: fmt.Sprint(fe.Message)})
	} else {
		requestLog(ctx).WithError(err).Errorln("Internal server error.")
		// keep internal server errors private. reply with generic error message.
		return ctx.
			Status(fiber.ErrInternalServerError.Code).
			JSON(&ErrorResponse{ErrorMessage: fmt.Sprint(fiber.ErrInternalServerError.Message)})
	}
}

func NotFoundHandler(c *fiber.Ctx) error {
	return fiber.NewError(fiber.StatusNotFound)
}

func combineHandlers(handlers ...fiber.Handler) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		for _, handler := range handlers {
			err := handler(ctx)
			if err != nil {
				return err
			}
		}
		return nil
	}
}

// domainError translates store failures into client-facing statuses.
// Anything it does not recognize stays an internal error.
func domainError(err error) error {
	var validationErr ritmo.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return fiber.NewError(fiber.StatusBadRequest, validationErr.Error())
	case errors.Is(err, ritmo.ErrActivityNotFound):
		return fiber.NewError(fiber.StatusNotFound, ritmo.ErrActivityNotFound.Error())
	case errors.Is(err, ritmo.ErrUserNotFound):
		return fiber.NewError(fiber.StatusNotFound, ritmo.ErrUserNotFound.Error())
	case errors.Is(err, ritmo.ErrCompanyNotFound):
		return fiber.NewError(fiber.StatusNotFound, ritmo.ErrCompanyNotFound.Error())
	case errors.Is(err, ritmo.ErrDuplicateLike):
		return fiber.NewError(fiber.StatusConflict, ritmo.ErrDuplicateLike.Error())
	default:
		return err
	}
}

type UserSummaryResponse struct {
	Id        int64  `json:"id"`
	Name      string `json:"name"`
	AvatarUrl string `json:"avatarUrl"`
}

func userSummaryResponse(summary ritmo.UserSummary) UserSummaryResponse {
	return UserSummaryResponse{
		Id:        int64(summary.Id),
		Name:      summary.Name,
		AvatarUrl: summary.AvatarUrl,
	}
}
