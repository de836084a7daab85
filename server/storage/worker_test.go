package storage

import (
	"errors"
	"sync"
	"testing"
	"time"

	"velha/server/game"
)

type memRecorder struct {
	mu     sync.Mutex
	wins   map[string]int
	losses map[string]int
	draws  map[string]int
	fail   bool
}

func newMemRecorder() *memRecorder {
	return &memRecorder{
		wins:   make(map[string]int),
		losses: make(map[string]int),
		draws:  make(map[string]int),
	}
}

func (m *memRecorder) RecordWin(username string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("banco fora do ar")
	}
	m.wins[username]++
	return nil
}

func (m *memRecorder) RecordLoss(username string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("banco fora do ar")
	}
	m.losses[username]++
	return nil
}

func (m *memRecorder) RecordDraw(username string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("banco fora do ar")
	}
	m.draws[username]++
	return nil
}

func (m *memRecorder) totals(username string) (int, int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.wins[username], m.losses[username], m.draws[username]
}

func waitCounters(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("contadores não convergiram a tempo")
}

func TestStatsWorkerAppliesResults(t *testing.T) {
	rec := newMemRecorder()
	events := make(chan game.GameConcluded, 8)
	StartStatsWorker(rec, events)

	events <- game.GameConcluded{Winner: "alice", Loser: "bob", Players: [2]string{"alice", "bob"}}
	events <- game.GameConcluded{Winner: "alice", Loser: "carol", Players: [2]string{"alice", "carol"}}
	events <- game.GameConcluded{Draw: true, Players: [2]string{"alice", "bob"}}

	waitCounters(t, func() bool {
		wins, _, draws := rec.totals("alice")
		return wins == 2 && draws == 1
	})

	if _, losses, _ := rec.totals("bob"); losses != 1 {
		t.Errorf("bob deveria ter 1 derrota, veio %d", losses)
	}
	if _, _, draws := rec.totals("bob"); draws != 1 {
		t.Errorf("bob deveria ter 1 empate, veio %d", draws)
	}
	if _, losses, _ := rec.totals("carol"); losses != 1 {
		t.Errorf("carol deveria ter 1 derrota, veio %d", losses)
	}
}

// Persistência falhando não pode travar o worker: o próximo evento
// ainda é processado
func TestStatsWorkerSurvivesFailure(t *testing.T) {
	rec := newMemRecorder()
	rec.mu.Lock()
	rec.fail = true
	rec.mu.Unlock()

	events := make(chan game.GameConcluded, 8)
	StartStatsWorker(rec, events)

	events <- game.GameConcluded{Winner: "alice", Loser: "bob", Players: [2]string{"alice", "bob"}}
	time.Sleep(20 * time.Millisecond)

	rec.mu.Lock()
	rec.fail = false
	rec.mu.Unlock()

	events <- game.GameConcluded{Winner: "bob", Loser: "alice", Players: [2]string{"bob", "alice"}}
	waitCounters(t, func() bool {
		wins, _, _ := rec.totals("bob")
		return wins == 1
	})
}
