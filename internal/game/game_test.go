package game_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/hsm/internal/game"
	"github.com/aretw0/hsm/pkg/stream"
)

func events(names ...string) stream.Source[game.Event] {
	evs := make([]game.Event, 0, len(names))
	for _, n := range names {
		ev, err := game.ParseEvent(n)
		if err != nil {
			panic(err)
		}
		evs = append(evs, ev)
	}
	return stream.FromSlice(evs)
}

func TestRun_Hierarchy(t *testing.T) {
	// Each state entry and each unmatched event inside Play scores one.
	score, err := game.Run(context.Background(), events("play", "ping", "pong", "ping", "pong", "terminate"), 0)
	require.NoError(t, err)
	assert.Equal(t, 5, score)
}

func TestRun_TerminateInMenu(t *testing.T) {
	score, err := game.Run(context.Background(), events("terminate"), 3)
	require.NoError(t, err)
	assert.Equal(t, 3, score, "menu neither scores entries nor events")
}

func TestRun_SourceExhaustion(t *testing.T) {
	// Source dries up inside the nested composite: forced lift through
	// both levels. play enters Ping (+1), the stray ping scores (+1).
	score, err := game.Run(context.Background(), events("play", "ping"), 0)
	require.NoError(t, err)
	assert.Equal(t, 2, score)
}

func TestRun_MenuIgnoresNoise(t *testing.T) {
	score, err := game.Run(context.Background(), events("ping", "pong", "menu", "terminate"), 0)
	require.NoError(t, err)
	assert.Equal(t, 0, score)
}

func TestRun_Repeatable(t *testing.T) {
	names := []string{"play", "ping", "pong", "terminate"}
	first, err := game.Run(context.Background(), events(names...), 0)
	require.NoError(t, err)
	second, err := game.Run(context.Background(), events(names...), 0)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestParseEvent(t *testing.T) {
	ev, err := game.ParseEvent("ping")
	require.NoError(t, err)
	assert.Equal(t, game.EventPing, ev)

	_, err = game.ParseEvent("smash")
	assert.Error(t, err)
}
