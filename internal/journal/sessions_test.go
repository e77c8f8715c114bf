package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatefield/gatefield/internal/events"
	"github.com/gatefield/gatefield/internal/protocol"
)

func openJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "data", "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestBeginEnd(t *testing.T) {
	j := openJournal(t)
	ctx := context.Background()
	start := time.UnixMilli(1_700_000_000_000)

	id, err := j.Begin(ctx, events.Session{AccountID: 7, EntityID: 42, ZoneID: 3}, start)
	require.NoError(t, err)
	require.NotEmpty(t, id)
	assert.Equal(t, id, j.Current())

	again, err := j.Begin(ctx, events.Session{AccountID: 7, EntityID: 42, ZoneID: 4}, start.Add(time.Second))
	require.NoError(t, err)
	assert.Equal(t, id, again, "a repeated enter updates the open row")

	require.NoError(t, j.End(ctx, "EOF", start.Add(time.Minute)))
	assert.Empty(t, j.Current())
	require.NoError(t, j.End(ctx, "again", start.Add(2*time.Minute)))

	records, err := j.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, id, r.ID)
	assert.Equal(t, uint32(7), r.AccountID)
	assert.Equal(t, uint64(42), r.EntityID)
	assert.Equal(t, int32(4), r.ZoneID)
	assert.Equal(t, start, r.StartedAt)
	require.NotNil(t, r.EndedAt)
	assert.Equal(t, start.Add(time.Minute), *r.EndedAt)
	assert.Equal(t, "EOF", r.EndReason)
}

func TestAttachFollowsBus(t *testing.T) {
	j := openJournal(t)
	bus := events.NewEventBus()
	j.Attach(bus)
	ctx := context.Background()

	session := events.Session{AccountID: 1, EntityID: 99, ZoneID: 2}
	bus.Emit(ctx, events.Event{Type: events.EventEnteredGame, Payload: session})
	for i := 0; i < 3; i++ {
		bus.Emit(ctx, events.Event{Type: events.MessageEvent(protocol.KindMoveBroadcast), Payload: &protocol.MoveBroadcast{}})
	}
	session.ChannelID = 5
	bus.Emit(ctx, events.Event{Type: events.EventSessionUpdate, Payload: session})
	bus.Emit(ctx, events.Event{Type: events.EventDisconnected, Payload: events.DisconnectedPayload{Reason: "server closed", Session: session}})

	records, err := j.Recent(ctx, 5)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int32(5), records[0].ChannelID)
	assert.Equal(t, int64(3), records[0].Messages)
	assert.Equal(t, "server closed", records[0].EndReason)
}

func TestRecentOrderAndLimit(t *testing.T) {
	j := openJournal(t)
	ctx := context.Background()
	base := time.UnixMilli(1_700_000_000_000)

	for i := 0; i < 4; i++ {
		_, err := j.Begin(ctx, events.Session{EntityID: uint64(i + 1)}, base.Add(time.Duration(i)*time.Hour))
		require.NoError(t, err)
		require.NoError(t, j.End(ctx, "logout", base.Add(time.Duration(i)*time.Hour+time.Minute)))
	}

	records, err := j.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, uint64(4), records[0].EntityID)
	assert.Equal(t, uint64(3), records[1].EntityID)
}
