package journal

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber-go/tally"
	"github.com/uber/debug-bridge/src/bridge/entity"
	"github.com/uber/debug-bridge/src/bridge/factory"
	"go.uber.org/config"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
)

const _testAddress = "localhost:6379"

func redisClient(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{Addr: _testAddress})
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		t.Skipf("Redis not available: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func TestNewWithoutAddress(t *testing.T) {
	provider, err := config.NewStaticProvider(map[string]interface{}{})
	require.NoError(t, err)
	lc := fxtest.NewLifecycle(t)

	j, err := New(Params{
		Config:    provider,
		Lifecycle: lc,
		Logger:    zap.NewNop().Sugar(),
		Stats:     tally.NewTestScope("testing", nil),
	})
	require.NoError(t, err)
	assert.IsType(t, nopJournal{}, j)
	assert.NoError(t, j.Append(context.Background(), factory.UUID(), entity.Notification{Type: entity.BreakpointHit}))

	lc.RequireStart()
	lc.RequireStop()
}

func TestNewWithAddress(t *testing.T) {
	provider, err := config.NewStaticProvider(map[string]interface{}{
		"journal": map[string]interface{}{
			"redis": map[string]interface{}{"address": "localhost:1", "keyPrefix": "test:"},
		},
	})
	require.NoError(t, err)
	lc := fxtest.NewLifecycle(t)

	j, err := New(Params{
		Config:    provider,
		Lifecycle: lc,
		Logger:    zap.NewNop().Sugar(),
		Stats:     tally.NewTestScope("testing", nil),
	})
	require.NoError(t, err)
	rj, ok := j.(*redisJournal)
	require.True(t, ok)
	assert.Equal(t, "test:", rj.keyPrefix)
	assert.Equal(t, int64(_defaultMaxLen), rj.maxLen)

	lc.RequireStart()
	lc.RequireStop()
}

func TestAppendFailureIsCounted(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:1", MaxRetries: -1})
	defer client.Close()
	stats := tally.NewTestScope("testing", nil)

	j := NewRedis(client, "", 0, stats)
	err := j.Append(context.Background(), factory.UUID(), entity.Notification{Type: entity.BreakpointHit, Payload: map[string]int{"id": 1}})
	require.Error(t, err)
	assert.Equal(t, int64(1), stats.Snapshot().Counters()["testing.journal.append_errors+"].Value())
}

func TestAppendEncodingFailure(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:1"})
	defer client.Close()

	j := NewRedis(client, "", 0, tally.NewTestScope("testing", nil))
	err := j.Append(context.Background(), factory.UUID(), entity.Notification{Type: entity.BreakpointHit, Payload: make(chan int)})
	assert.ErrorContains(t, err, "encoding breakpoint_hit payload")
}

func TestAppend(t *testing.T) {
	client := redisClient(t)
	ctx := context.Background()
	session := factory.UUID()
	stats := tally.NewTestScope("testing", nil)

	j := NewRedis(client, "test:journal:", 100, stats).(*redisJournal)
	key := j.StreamKey(session)
	t.Cleanup(func() { client.Del(context.Background(), key) })

	payload := entity.BreakpointResolvedPayload{ID: 3, Location: "com.example.Main:42"}
	require.NoError(t, j.Append(ctx, session, entity.Notification{Type: entity.BreakpointResolved, Payload: payload}))
	require.NoError(t, j.Append(ctx, session, entity.Notification{Type: entity.VMDisconnected, Payload: entity.VMDisconnectedPayload{Reason: entity.AppKilled}}))

	messages, err := client.XRange(ctx, key, "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "breakpoint_resolved", messages[0].Values["type"])
	assert.Equal(t, "vm_disconnected", messages[1].Values["type"])

	var got entity.BreakpointResolvedPayload
	require.NoError(t, json.Unmarshal([]byte(messages[0].Values["payload"].(string)), &got))
	assert.Equal(t, payload, got)
	assert.Equal(t, int64(2), stats.Snapshot().Counters()["testing.journal.appended+"].Value())
}
