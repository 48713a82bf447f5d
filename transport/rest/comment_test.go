package rest

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/ritmofit/ritmo"
	"github.com/ritmofit/ritmo/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentControllerList(t *testing.T) {
	assert := assert.New(t)

	controller := CommentController{
		Store: mock.CommentStore{
			ByActivityIdFn: func(ctx context.Context, activityId ritmo.ActivityId) ([]ritmo.Comment, error) {
				if activityId != 7 {
					return nil, ritmo.ErrActivityNotFound
				}
				return []ritmo.Comment{
					{
						Id:         2,
						CreatedAt:  time.Unix(1700000100, 0),
						User:       ritmo.UserSummary{Id: 3, Name: "Bruno"},
						ActivityId: 7,
						Text:       "bom treino",
					},
					{
						Id:         1,
						CreatedAt:  time.Unix(1700000000, 0),
						User:       ritmo.UserSummary{Id: 1, Name: "Ana", AvatarUrl: "https://ritmo.test/avatar/1"},
						ActivityId: 7,
						Text:       "parabens",
					},
				}, nil
			},
		},
	}
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	controller.InstallTo(app)

	req := httptest.NewRequest("GET", "/activities/7/comments", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(`[{"id":2,"createdAt":1700000100,`+
		`"user":{"id":3,"name":"Bruno","avatarUrl":""},"text":"bom treino"},`+
		`{"id":1,"createdAt":1700000000,`+
		`"user":{"id":1,"name":"Ana","avatarUrl":"https://ritmo.test/avatar/1"},`+
		`"text":"parabens"}]`, string(body))

	req = httptest.NewRequest("GET", "/activities/404/comments", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(fiber.StatusNotFound, resp.StatusCode)
}

func TestCommentControllerCreate(t *testing.T) {
	assert := assert.New(t)
	user := testUser()
	sessionStore, userStore := sessionUserStores(user)

	controller := CommentController{
		Store: mock.CommentStore{
			AppendFn: func(ctx context.Context, userId ritmo.UserId, activityId ritmo.ActivityId, text string) (ritmo.Comment, error) {
				if err := ritmo.ValidateCommentText(text); err != nil {
					return ritmo.Comment{}, err
				}
				assert.Equal(user.Id, userId)
				return ritmo.Comment{
					Id:         5,
					CreatedAt:  time.Unix(1700000000, 0),
					User:       user.Summary(),
					ActivityId: activityId,
					Text:       text,
				}, nil
			},
		},
		SessionStore: sessionStore,
		UserStore:    userStore,
	}
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	controller.InstallTo(app)

	req := httptest.NewRequest("POST", "/activities/7/comments",
		strings.NewReader(`{"text":"bom treino"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+testToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(fiber.StatusCreated, resp.StatusCode)
	assert.Equal(`{"id":5,"createdAt":1700000000,`+
		`"user":{"id":1,"name":"Ana","avatarUrl":"https://ritmo.test/avatar/1"},`+
		`"text":"bom treino"}`, string(body))
}

func TestCommentControllerCreateTooShort(t *testing.T) {
	assert := assert.New(t)
	sessionStore, userStore := sessionUserStores(testUser())

	controller := CommentController{
		Store: mock.CommentStore{
			AppendFn: func(ctx context.Context, userId ritmo.UserId, activityId ritmo.ActivityId, text string) (ritmo.Comment, error) {
				return ritmo.Comment{}, ritmo.ValidateCommentText(text)
			},
		},
		SessionStore: sessionStore,
		UserStore:    userStore,
	}
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	controller.InstallTo(app)

	req := httptest.NewRequest("POST", "/activities/7/comments",
		strings.NewReader(`{"text":" hi "}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+testToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(`{"error_message":"invalid text: too short"}`, string(body))
}

func TestCommentControllerCreateUnauthorized(t *testing.T) {
	sessionStore, userStore := sessionUserStores(testUser())

	controller := CommentController{SessionStore: sessionStore, UserStore: userStore}
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	controller.InstallTo(app)

	req := httptest.NewRequest("POST", "/activities/7/comments",
		strings.NewReader(`{"text":"bom treino"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
