package rest

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/ritmofit/ritmo"
)

type ActivityController struct {
	Feed         ritmo.FeedService
	Store        ritmo.ActivityStore
	Likes        ritmo.LikeStore
	SessionStore ritmo.SessionStore
	UserStore    ritmo.UserStore
}

func (c *ActivityController) InstallTo(app *fiber.App) {
	authorizer := RequestAuthorizer(c.SessionStore, c.UserStore)
	app.Get("/activities", combineHandlers(OptionalViewer(c.SessionStore), c.serveFeed))
	app.Post("/activities", combineHandlers(authorizer, c.serveCreate))
	app.Post("/activities/:activity_id/toggle-like", combineHandlers(authorizer, c.serveToggleLike))
}

type ActivityResponse struct {
	Id              int64               `json:"id"`
	CreatedAt       int64               `json:"createdAt"`
	User            UserSummaryResponse `json:"user"`
	Type            string              `json:"type"`
	Title           string              `json:"title"`
	DistanceMeters  float64             `json:"distanceMeters"`
	DurationMinutes float64             `json:"durationMinutes"`
	Calories        float64             `json:"calories"`
	LikesCount      int                 `json:"likesCount"`
	CommentsCount   int                 `json:"commentsCount"`
}

func activityResponse(activity ritmo.Activity) ActivityResponse {
	return ActivityResponse{
		Id:              int64(activity.Id),
		CreatedAt:       activity.CreatedAt.Unix(),
		User:            userSummaryResponse(activity.User),
		Type:            activity.Type,
		Title:           activity.Title,
		DistanceMeters:  activity.DistanceMeters,
		DurationMinutes: activity.DurationMinutes,
		Calories:        activity.Calories,
		LikesCount:      activity.LikesCount,
		CommentsCount:   activity.CommentsCount,
	}
}

func (c *ActivityController) serveFeed(ctx *fiber.Ctx) error {
	page, err := queryInt(ctx, "page", 1)
	if err != nil {
		return err
	}
	pageSize, err := queryInt(ctx, "limit", 10)
	if err != nil {
		return err
	}
	query := ritmo.FeedQuery{
		Type:     ctx.Query("type"),
		Page:     page,
		PageSize: pageSize,
	}

	feed, err := c.Feed.GetFeed(ctx.Context(), viewerId(ctx), query)
	if err != nil {
		return domainError(err)
	}

	type FeedItemResponse struct {
		ActivityResponse
		HasLiked bool `json:"hasLiked"`
	}
	items := make([]FeedItemResponse, len(feed.Items))
	for i, item := range feed.Items {
		items[i] = FeedItemResponse{
			ActivityResponse: activityResponse(item.Activity),
			HasLiked:         item.HasLiked,
		}
	}
	return ctx.JSON(map[string]interface{}{
		"totalItems":  feed.TotalItems,
		"totalPages":  feed.TotalPages,
		"currentPage": feed.CurrentPage,
		"activities":  items,
	})
}

func (c *ActivityController) serveCreate(ctx *fiber.Ctx) error {
	user, ok := ctx.Locals(userLocalsKey).(ritmo.User)
	if !ok {
		return fiber.ErrUnauthorized
	}

	body := struct {
		Type            string  `json:"type"`
		Title           string  `json:"title"`
		DistanceMeters  float64 `json:"distanceMeters"`
		DurationMinutes float64 `json:"durationMinutes"`
		Calories        float64 `json:"calories"`
	}{}
	if err := ctx.BodyParser(&body); err != nil {
		requestLog(ctx).WithError(err).Infoln("Invalid body.")
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	activity, err := c.Store.Create(ctx.Context(), ritmo.NewActivity{
		UserId:          user.Id,
		Type:            body.Type,
		Title:           body.Title,
		DistanceMeters:  body.DistanceMeters,
		DurationMinutes: body.DurationMinutes,
		Calories:        body.Calories,
	})
	if err != nil {
		return domainError(fmt.Errorf("create activity: %w", err))
	}
	return ctx.Status(fiber.StatusCreated).JSON(activityResponse(activity))
}

func (c *ActivityController) serveToggleLike(ctx *fiber.Ctx) error {
	user, ok := ctx.Locals(userLocalsKey).(ritmo.User)
	if !ok {
		return fiber.ErrUnauthorized
	}
	activityId, err := activityIdParam(ctx)
	if err != nil {
		return err
	}

	result, err := c.Likes.Toggle(ctx.Context(), user.Id, activityId)
	if err != nil {
		return domainError(fmt.Errorf("toggle like: %w", err))
	}
	return ctx.JSON(map[string]interface{}{
		"liked":      result.Liked,
		"totalLikes": result.TotalLikes,
	})
}

func queryInt(ctx *fiber.Ctx, key string, defaultValue int) (int, error) {
	raw := ctx.Query(key)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid "+key)
	}
	return value, nil
}

func activityIdParam(ctx *fiber.Ctx) (ritmo.ActivityId, error) {
	raw := ctx.Params("activity_id")
	if raw == "" {
		return 0, fiber.NewError(fiber.StatusBadRequest, "no activity id")
	}
	activityId, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid activity id")
	}
	return ritmo.ActivityId(activityId), nil
}
