package rest

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/ritmofit/ritmo"
)

type CommentController struct {
	Store        ritmo.CommentStore
	SessionStore ritmo.SessionStore
	UserStore    ritmo.UserStore
}

func (c *CommentController) InstallTo(app *fiber.App) {
	app.Get("/activities/:activity_id/comments", c.serveList)
	app.Post("/activities/:activity_id/comments",
		combineHandlers(RequestAuthorizer(c.SessionStore, c.UserStore), c.serveCreate))
}

type CommentResponse struct {
	Id        int64               `json:"id"`
	CreatedAt int64               `json:"createdAt"`
	User      UserSummaryResponse `json:"user"`
	Text      string              `json:"text"`
}

func commentResponse(comment ritmo.Comment) CommentResponse {
	return CommentResponse{
		Id:        comment.Id,
		CreatedAt: comment.CreatedAt.Unix(),
		User:      userSummaryResponse(comment.User),
		Text:      comment.Text,
	}
}

func (c *CommentController) serveList(ctx *fiber.Ctx) error {
	activityId, err := activityIdParam(ctx)
	if err != nil {
		return err
	}

	comments, err := c.Store.ByActivityId(ctx.Context(), activityId)
	if err != nil {
		return domainError(fmt.Errorf("list comments: %w", err))
	}

	mapped := make([]CommentResponse, len(comments))
	for i, comment := range comments {
		mapped[i] = commentResponse(comment)
	}
	return ctx.JSON(mapped)
}

func (c *CommentController) serveCreate(ctx *fiber.Ctx) error {
	user, ok := ctx.Locals(userLocalsKey).(ritmo.User)
	if !ok {
		return fiber.ErrUnauthorized
	}
	activityId, err := activityIdParam(ctx)
	if err != nil {
		return err
	}

	body := struct {
		Text string `json:"text"`
	}{}
	if err := ctx.BodyParser(&body); err != nil {
		requestLog(ctx).WithError(err).Infoln("Invalid body.")
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	comment, err := c.Store.Append(ctx.Context(), user.Id, activityId, body.Text)
	if err != nil {
		return domainError(fmt.Errorf("append comment: %w", err))
	}
	return ctx.Status(fiber.StatusCreated).JSON(commentResponse(comment))
}
