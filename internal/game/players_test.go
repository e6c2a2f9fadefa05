package game

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerStoreAddAndGet(t *testing.T) {
	store := NewPlayerStore(nil)

	p := store.Add("alice", MapCell{Map: "plains", X: 5, Y: 5})
	require.NoError(t, uuid.Validate(p.ID), "players get uuid identities")

	got, found := store.Get(p.ID)
	require.True(t, found)
	assert.Equal(t, "alice", got.Name)
	assert.Equal(t, MapCell{Map: "plains", X: 5, Y: 5}, got.At())

	_, found = store.Get("missing")
	assert.False(t, found)
}

func TestPlayerStoreRemove(t *testing.T) {
	store := NewPlayerStore(nil)

	p := store.Add("alice", MapCell{Map: "plains", X: 5, Y: 5})
	store.Remove(p.ID)
	store.Remove(p.ID)

	_, found := store.Get(p.ID)
	assert.False(t, found)
	assert.Empty(t, store.AllPlayers())
}

func TestMovePlayerDispatchesEvent(t *testing.T) {
	store := NewPlayerStore(nil)
	p := store.Add("alice", MapCell{Map: "plains", X: 5, Y: 5})

	got := make(chan PositionEvent, 1)
	store.OnPositionChanged(func(ev PositionEvent) { got <- ev })
	stop := make(chan struct{})
	defer close(stop)
	go store.Dispatch(stop)

	target := MapCell{Map: "plains", X: 6, Y: 5}
	store.MovePlayer(p.ID, target, false)

	select {
	case ev := <-got:
		assert.Equal(t, p.ID, ev.PlayerID)
		assert.Equal(t, target, ev.At)
		assert.False(t, ev.Forced)
	case <-time.After(time.Second):
		t.Fatal("no position event dispatched")
	}

	current, _ := store.Get(p.ID)
	assert.Equal(t, target, current.At())
}

func TestMoveUnknownPlayerIsNoop(t *testing.T) {
	store := NewPlayerStore(nil)

	store.MovePlayer("ghost", MapCell{Map: "plains", X: 1, Y: 1}, false)

	assert.Empty(t, store.AllPlayers())
}

func TestAllPlayersReturnsCopies(t *testing.T) {
	store := NewPlayerStore(nil)
	p := store.Add("alice", MapCell{Map: "plains", X: 5, Y: 5})

	all := store.AllPlayers()
	all[p.ID] = MapCell{Map: "plains", X: 9, Y: 9}

	got, _ := store.Get(p.ID)
	assert.Equal(t, MapCell{Map: "plains", X: 5, Y: 5}, got.At(), "mutating the snapshot does not touch the store")
}

func TestRelocateMovesToSpawnCell(t *testing.T) {
	store := NewPlayerStore(nil)
	p := store.Add("alice", MapCell{Map: "plains", X: 5, Y: 5})

	Relocate(store, p.ID, "plains")

	got, _ := store.Get(p.ID)
	assert.Equal(t, MapCell{Map: "plains", X: SpawnCellX, Y: SpawnCellY}, got.At())
}

// A relocation triggered while handling a move must arrive as its own later
// event instead of re-entering the handler mid-evaluation.
func TestRelocationLandsAsSeparateEvent(t *testing.T) {
	store := NewPlayerStore(nil)
	p := store.Add("alice", MapCell{Map: "plains", X: 5, Y: 5})
	hazardCell := MapCell{Map: "plains", X: 6, Y: 5}

	var mu sync.Mutex
	var seen []PositionEvent
	done := make(chan struct{})
	store.OnPositionChanged(func(ev PositionEvent) {
		mu.Lock()
		seen = append(seen, ev)
		count := len(seen)
		mu.Unlock()

		if ev.At == hazardCell {
			Relocate(store, ev.PlayerID, ev.At.Map)
		}
		if count == 2 {
			close(done)
		}
	})
	stop := make(chan struct{})
	defer close(stop)
	go store.Dispatch(stop)

	store.MovePlayer(p.ID, hazardCell, false)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("relocation event never dispatched")
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, seen, 2)
	assert.Equal(t, hazardCell, seen[0].At)
	assert.False(t, seen[0].Forced)
	assert.Equal(t, MapCell{Map: "plains", X: SpawnCellX, Y: SpawnCellY}, seen[1].At)
	assert.True(t, seen[1].Forced)
}
