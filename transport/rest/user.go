package rest

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/ritmofit/ritmo"
)

type UserController struct {
	Store ritmo.UserStore
}

func (c *UserController) InstallTo(app *fiber.App) {
	app.Get("/users", c.serveDirectory)
	app.Get("/profile/:user_id", c.serveProfile)
}

func (c *UserController) serveDirectory(ctx *fiber.Ctx) error {
	summaries, err := c.Store.Summaries(ctx.Context())
	if err != nil {
		return fmt.Errorf("list user summaries: %w", err)
	}

	mapped := make([]UserSummaryResponse, len(summaries))
	for i, summary := range summaries {
		mapped[i] = userSummaryResponse(summary)
	}
	return ctx.JSON(mapped)
}

func (c *UserController) serveProfile(ctx *fiber.Ctx) error {
	userIdStr := ctx.Params("user_id")
	if userIdStr == "" {
		return fiber.NewError(fiber.StatusBadRequest, "no user id")
	}
	userId, err := strconv.ParseInt(userIdStr, 10, 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid user id")
	}

	user, err := c.Store.ById(ctx.Context(), ritmo.UserId(userId))
	if err != nil {
		return domainError(fmt.Errorf("get user by id: %w", err))
	}
	return ctx.JSON(userSummaryResponse(user.Summary()))
}
