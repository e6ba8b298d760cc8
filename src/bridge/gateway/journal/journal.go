// Package journal appends outbound notifications to a Redis Stream per session so they can be replayed later.
package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/uber-go/tally"
	"github.com/uber/debug-bridge/src/bridge/entity"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	_configKey        = "journal"
	_defaultKeyPrefix = "bridge:journal:"
	_defaultMaxLen    = 10000
)

// Module provides the notification journal.
var Module = fx.Provide(New)

// Journal records notifications.
type Journal interface {
	// Append records n under the session's stream.
	Append(ctx context.Context, session uuid.UUID, n entity.Notification) error
}

// RedisConfig selects the Redis server. An empty address disables the journal.
type RedisConfig struct {
	Address   string `yaml:"address"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db"`
	KeyPrefix string `yaml:"keyPrefix"`
	MaxLen    int64  `yaml:"maxLen"`
}

// Config is the journal configuration block.
type Config struct {
	Redis RedisConfig `yaml:"redis"`
}

// Params define values to be used by the journal.
type Params struct {
	fx.In

	Config    config.Provider
	Lifecycle fx.Lifecycle
	Logger    *zap.SugaredLogger
	Stats     tally.Scope
}

type nopJournal struct{}

// NewNop returns a Journal that drops everything.
func NewNop() Journal {
	return nopJournal{}
}

func (nopJournal) Append(context.Context, uuid.UUID, entity.Notification) error {
	return nil
}

type redisJournal struct {
	client    redis.UniversalClient
	keyPrefix string
	maxLen    int64
	stats     tally.Scope
}

// New creates a Journal from the "journal" config block.
func New(p Params) (Journal, error) {
	var cfg Config
	if err := p.Config.Get(_configKey).Populate(&cfg); err != nil {
		return nil, fmt.Errorf("getting config field %q: %w", _configKey, err)
	}
	if cfg.Redis.Address == "" {
		p.Logger.Debug("notification journal disabled")
		return NewNop(), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	j := NewRedis(client, cfg.Redis.KeyPrefix, cfg.Redis.MaxLen, p.Stats)

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
	p.Logger.Infow("notification journal enabled", "address", cfg.Redis.Address)
	return j, nil
}

// NewRedis creates a Journal writing to client. Streams are trimmed to roughly maxLen entries.
func NewRedis(client redis.UniversalClient, keyPrefix string, maxLen int64, stats tally.Scope) Journal {
	if keyPrefix == "" {
		keyPrefix = _defaultKeyPrefix
	}
	if maxLen <= 0 {
		maxLen = _defaultMaxLen
	}
	return &redisJournal{
		client:    client,
		keyPrefix: keyPrefix,
		maxLen:    maxLen,
		stats:     stats.SubScope("journal"),
	}
}

// StreamKey returns the stream a session's notifications are appended to.
func (j *redisJournal) StreamKey(session uuid.UUID) string {
	return j.keyPrefix + session.String()
}

func (j *redisJournal) Append(ctx context.Context, session uuid.UUID, n entity.Notification) error {
	payload, err := json.Marshal(n.Payload)
	if err != nil {
		j.stats.Counter("append_errors").Inc(1)
		return fmt.Errorf("encoding %s payload: %w", n.Type, err)
	}

	key := j.StreamKey(session)
	err = j.client.XAdd(ctx, &redis.XAddArgs{
		Stream: key,
		MaxLen: j.maxLen,
		Approx: true,
		Values: map[string]any{
			"type":    string(n.Type),
			"payload": payload,
			"at":      time.Now().UTC().Format(time.RFC3339Nano),
		},
	}).Err()
	if err != nil {
		j.stats.Counter("append_errors").Inc(1)
		return fmt.Errorf("appending to stream %s: %w", key, err)
	}
	j.stats.Counter("appended").Inc(1)
	return nil
}
