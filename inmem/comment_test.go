package inmem

import (
	"context"
	"fmt"
	"testing"

	"github.com/ritmofit/ritmo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendComments(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	db, _, activity, _, userB := newLikeFixture(t)

	comments := &CommentStore{DB: db}
	for i := 0; i < 3; i++ {
		comment, err := comments.Append(ctx, userB.Id, activity.Id, fmt.Sprintf("bom treino %d", i+1))
		require.NoError(t, err)
		assert.Equal(userB.Id, comment.User.Id)
		assert.Equal(activity.Id, comment.ActivityId)
	}

	count, err := (&ActivityStore{DB: db}).IncrementComments(ctx, activity.Id)
	require.NoError(t, err)
	// three appends plus the probing increment itself
	assert.Equal(4, count)

	listed, err := comments.ByActivityId(ctx, activity.Id)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal("bom treino 3", listed[0].Text)
	assert.Equal("bom treino 1", listed[2].Text)
}

func TestAppendRejectsShortComment(t *testing.T) {
	ctx := context.Background()
	db, _, activity, _, userB := newLikeFixture(t)

	comments := &CommentStore{DB: db}
	_, err := comments.Append(ctx, userB.Id, activity.Id, " hi ")
	var validationErr ritmo.ValidationError
	require.ErrorAs(t, err, &validationErr)

	listed, err := comments.ByActivityId(ctx, activity.Id)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestAppendUnknownActivity(t *testing.T) {
	ctx := context.Background()
	db, _, _, userA, _ := newLikeFixture(t)

	comments := &CommentStore{DB: db}
	_, err := comments.Append(ctx, userA.Id, 999, "bom treino")
	assert.ErrorIs(t, err, ritmo.ErrActivityNotFound)

	_, err = comments.ByActivityId(ctx, 999)
	assert.ErrorIs(t, err, ritmo.ErrActivityNotFound)
}

func TestAppendUnknownUser(t *testing.T) {
	ctx := context.Background()
	db, _, activity, _, _ := newLikeFixture(t)

	comments := &CommentStore{DB: db}
	_, err := comments.Append(ctx, 999, activity.Id, "bom treino")
	assert.ErrorIs(t, err, ritmo.ErrUserNotFound)
}
