package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber-go/tally"
	"github.com/uber/debug-bridge/src/bridge/entity"
	"github.com/uber/debug-bridge/src/bridge/factory"
	"github.com/uber/debug-bridge/src/bridge/internal/errors"
	"go.uber.org/goleak"
)

func TestSet(t *testing.T) {
	ctx := context.Background()
	repository := New(tally.NoopScope)

	// Nil session returns error.
	assert.Error(t, repository.Set(ctx, nil))

	s := &entity.Session{UUID: factory.UUID(), ConnectedAt: time.Now()}
	assert.NoError(t, repository.Set(ctx, s))
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	repository := New(tally.NoopScope)

	s := &entity.Session{UUID: factory.UUID()}
	require.NoError(t, repository.Set(ctx, s))

	result, err := repository.Get(ctx, s.UUID)
	assert.NoError(t, err)
	assert.Equal(t, s, result)

	missing := factory.UUID()
	_, err = repository.Get(ctx, missing)
	id, ok := errors.NotFoundUUID(err)
	assert.True(t, ok)
	assert.Equal(t, missing, id)
}

func TestGetFromContext(t *testing.T) {
	repository := New(tally.NoopScope)
	s := &entity.Session{UUID: factory.UUID()}
	require.NoError(t, repository.Set(context.Background(), s))

	ctx := factory.SessionContext(s.UUID)
	result, err := repository.GetFromContext(ctx)
	assert.NoError(t, err)
	assert.Equal(t, s.UUID, result.UUID)

	// Context without a session.
	_, err = repository.GetFromContext(context.Background())
	var noSession *errors.NoSessionFoundError
	assert.ErrorAs(t, err, &noSession)
}

func TestGetAll(t *testing.T) {
	ctx := context.Background()
	repository := New(tally.NoopScope)

	start := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	later := &entity.Session{UUID: factory.UUID(), ConnectedAt: start.Add(time.Minute)}
	earlier := &entity.Session{UUID: factory.UUID(), ConnectedAt: start}
	require.NoError(t, repository.Set(ctx, later))
	require.NoError(t, repository.Set(ctx, earlier))

	sessions, err := repository.GetAll(ctx)
	assert.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, earlier.UUID, sessions[0].UUID)
	assert.Equal(t, later.UUID, sessions[1].UUID)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	repository := New(tally.NoopScope)

	session1 := &entity.Session{UUID: factory.UUID()}
	session2 := &entity.Session{UUID: factory.UUID()}
	require.NoError(t, repository.Set(ctx, session1))
	require.NoError(t, repository.Set(ctx, session2))

	// First deletion is successful. Multiple deletions return no error.
	assert.NoError(t, repository.Delete(ctx, session2.UUID))
	assert.NoError(t, repository.Delete(ctx, session2.UUID))
	_, err := repository.Get(ctx, session2.UUID)
	assert.Error(t, err)

	// Other session unaffected.
	result, err := repository.Get(ctx, session1.UUID)
	assert.NoError(t, err)
	assert.Equal(t, session1, result)
}

func TestSessionCount(t *testing.T) {
	ctx := context.Background()
	testScope := tally.NewTestScope("testing", make(map[string]string, 0))
	repository := New(testScope)

	gauge := func() float64 {
		g, ok := testScope.Snapshot().Gauges()["testing.sessions.active_connections+"]
		require.True(t, ok)
		return g.Value()
	}

	session1 := &entity.Session{UUID: factory.UUID()}
	session2 := &entity.Session{UUID: factory.UUID()}

	// New empty repository
	count, err := repository.SessionCount(ctx)
	assert.Equal(t, 0, count)
	assert.NoError(t, err)

	require.NoError(t, repository.Set(ctx, session1))
	require.NoError(t, repository.Set(ctx, session2))

	// Count updated after adding/removing sessions
	count, _ = repository.SessionCount(ctx)
	assert.Equal(t, 2, count)
	assert.Equal(t, float64(2), gauge())

	require.NoError(t, repository.Delete(ctx, session2.UUID))
	count, _ = repository.SessionCount(ctx)
	assert.Equal(t, 1, count)
	assert.Equal(t, float64(1), gauge())

	require.NoError(t, repository.Delete(ctx, session1.UUID))
	count, _ = repository.SessionCount(ctx)
	assert.Equal(t, 0, count)
	assert.Equal(t, float64(0), gauge())
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
