package lock

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"

	"github.com/BruksfildServices01/escape-booking/internal/httperr"
)

var ErrRoomBusy = httperr.ErrBusiness("room_busy")

// RoomLocker serializes slot writes for one room across API instances.
type RoomLocker interface {
	WithRoom(ctx context.Context, roomID uint, fn func() error) error
}

// Noop runs fn directly. The database row lock still applies.
type Noop struct{}

func (Noop) WithRoom(_ context.Context, _ uint, fn func() error) error {
	return fn()
}

// release deletes the key only while it still holds our token.
var release = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type Redis struct {
	client *redis.Client
	ttl    time.Duration
	wait   time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl, wait: 2 * time.Second}
}

// NewFromURL connects to redis and verifies the connection.
func NewFromURL(ctx context.Context, url string, ttl time.Duration) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrap(err, "parse redis url")
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrap(err, "ping redis")
	}
	return NewRedis(client, ttl), nil
}

func roomKey(roomID uint) string {
	return fmt.Sprintf("escape-booking:room-lock:%d", roomID)
}

func (l *Redis) WithRoom(ctx context.Context, roomID uint, fn func() error) error {
	token, err := newToken()
	if err != nil {
		return err
	}

	key := roomKey(roomID)
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return errors.Wrap(err, "acquire room lock")
		}
		if ok {
			break
		}
		if time.Now().After(deadline) {
			return ErrRoomBusy
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(50 * time.Millisecond):
		}
	}

	defer release.Run(context.Background(), l.client, []string{key}, token)

	return fn()
}

func newToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Wrap(err, "lock token")
	}
	return hex.EncodeToString(b), nil
}
