package persistent

import (
	"context"
	"testing"
	"time"

	"github.com/ritmofit/ritmo"
	"github.com/stretchr/testify/assert"
	"github.com/tidwall/buntdb"
)

func TestSessionLifecycle(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	bdb, err := buntdb.Open(":memory:")
	if err != nil {
		panic(err)
	}
	defer bdb.Close()

	store := &SessionStore{Buntdb: bdb}

	session, err := store.RegisterNew(ctx, 9231982)
	if !assert.NoError(err) {
		return
	}
	assert.Equal(ritmo.UserId(9231982), session.UserId)
	assert.NotEmpty(session.Id)
	assert.NotEmpty(session.Token)
	assert.True(session.ExpiresAt.After(time.Now()))

	found, err := store.ByToken(session.Token)
	if !assert.NoError(err) {
		return
	}
	assert.Equal(session, found)

	err = store.InvalidateByToken(session.Token)
	assert.NoError(err)

	_, err = store.ByToken(session.Token)
	assert.ErrorIs(err, ritmo.ErrSessionNotFound)

	err = store.InvalidateByToken(session.Token)
	assert.ErrorIs(err, ritmo.ErrSessionNotFound)
}

func TestSessionByUnknownToken(t *testing.T) {
	bdb, err := buntdb.Open(":memory:")
	if err != nil {
		panic(err)
	}
	defer bdb.Close()

	store := &SessionStore{Buntdb: bdb}
	_, err = store.ByToken("no-such-token")
	assert.ErrorIs(t, err, ritmo.ErrSessionNotFound)
}

func Test_GenerateSessionTokenLength(t *testing.T) {
	assert := assert.New(t)

	token, err := generateSessionToken()
	if assert.NoError(err) {
		assert.True(len(token) > 20)
		assert.NotContains(token, ":")
	}
}
