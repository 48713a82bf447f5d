package persistent

import (
	"context"
	crand "crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ritmofit/ritmo"
	"github.com/tidwall/buntdb"
)

const sessionTTL = 24 * time.Hour

type Session struct {
	Id        string    `json:"id"`
	UserId    int64     `json:"userId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s Session) ToDomain() ritmo.Session {
	return ritmo.Session{
		Id:        s.Id,
		UserId:    ritmo.UserId(s.UserId),
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt,
	}
}

type SessionStore struct {
	Buntdb *buntdb.DB
}

var _ ritmo.SessionStore = (*SessionStore)(nil)

func (s *SessionStore) RegisterNew(ctx context.Context, userId ritmo.UserId) (ritmo.Session, error) {
	token, err := generateSessionToken()
	if err != nil {
		return ritmo.Session{}, fmt.Errorf("generate token: %w", err)
	}

	session := Session{
		Id:        uuid.New().String(),
		UserId:    int64(userId),
		Token:     token,
		ExpiresAt: time.Now().UTC().Add(sessionTTL),
	}
	serialized, err := json.Marshal(&session)
	if err != nil {
		return ritmo.Session{}, fmt.Errorf("session serialize: %w", err)
	}

	err = s.Buntdb.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set("session:"+token, string(serialized),
			&buntdb.SetOptions{Expires: true, TTL: sessionTTL})
		return err
	})
	if err != nil {
		return ritmo.Session{}, fmt.Errorf("bunt update: %w", err)
	}
	return session.ToDomain(), nil
}

func (s *SessionStore) ByToken(token string) (ritmo.Session, error) {
	var session Session
	err := s.Buntdb.View(func(tx *buntdb.Tx) error {
		serialized, err := tx.Get("session:" + token)
		if err != nil {
			return err
		}
		return json.Unmarshal([]byte(serialized), &session)
	})
	if err != nil {
		if errors.Is(err, buntdb.ErrNotFound) {
			return ritmo.Session{}, ritmo.ErrSessionNotFound
		}
		return ritmo.Session{}, fmt.Errorf("bunt view: %w", err)
	}
	return session.ToDomain(), nil
}

func (s *SessionStore) InvalidateByToken(token string) error {
	err := s.Buntdb.Update(func(tx *buntdb.Tx) error {
		_, err := tx.Delete("session:" + token)
		return err
	})
	if err != nil {
		if errors.Is(err, buntdb.ErrNotFound) {
			return ritmo.ErrSessionNotFound
		}
		return fmt.Errorf("bunt update: %w", err)
	}
	return nil
}

func generateSessionToken() (string, error) {
	const tokenBytes = 60
	rawToken := make([]byte, tokenBytes)
	// crypto/rand - getentropy(2)
	bytesRead, err := crand.Read(rawToken)
	if err != nil {
		return "", fmt.Errorf("rand read: %w", err)
	}
	if bytesRead != tokenBytes {
		return "", fmt.Errorf("bytes read %d / required %d", bytesRead, tokenBytes)
	}
	dirtyToken := base64.StdEncoding.EncodeToString(rawToken)

	// ":" is the buntdb key separator, keep tokens from smuggling one in.
	token := strings.Replace(dirtyToken, ":", "_", -1)
	return token, nil
}
