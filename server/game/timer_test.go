package game

import (
	"testing"
	"time"
)

// Jogada forçada: exatamente uma casa antes vazia é ocupada pelo
// símbolo de quem estava na vez
func TestForceMoveFillsOneFreeCell(t *testing.T) {
	rs := testRooms()
	p1, p2 := testSeats()
	r := rs.CreatePlaying(p1, p2)
	r.setTurn("alice")

	r.Mu.Lock()
	r.forceMoveLocked()
	filled := 0
	for _, cell := range r.Board {
		if cell == "X" {
			filled++
		} else if cell != "" {
			t.Errorf("símbolo inesperado no tabuleiro: %q", cell)
		}
	}
	turn := r.Turn
	r.Mu.Unlock()

	if filled != 1 {
		t.Fatalf("esperava exatamente 1 casa ocupada, veio %d", filled)
	}
	if turn != "bob" {
		t.Fatalf("vez deveria passar para bob, veio %q", turn)
	}
}

// Com o tabuleiro cheio a expiração não inventa jogada
func TestForceMoveNoFreeCell(t *testing.T) {
	rs := testRooms()
	p1, p2 := testSeats()
	r := rs.CreatePlaying(p1, p2)

	r.Mu.Lock()
	r.Board = Board{"X", "O", "X", "X", "O", "O", "O", "X", "X"}
	before := r.Board
	r.forceMoveLocked()
	after := r.Board
	r.Mu.Unlock()

	if before != after {
		t.Fatal("tabuleiro cheio não pode mudar")
	}
}

// Com o timer de verdade ligado e ninguém jogando, a partida inteira
// anda sozinha até acabar
func TestTimerDrivesGameToCompletion(t *testing.T) {
	rs := testRooms()
	rs.TickInterval = 2 * time.Millisecond
	p1, p2 := testSeats()
	r := rs.CreatePlaying(p1, p2)

	waitFor(t, 5*time.Second, func() bool {
		r.Mu.Lock()
		done := r.finishedLocked()
		r.Mu.Unlock()
		return done
	})

	select {
	case <-rs.Stats:
	default:
		t.Fatal("partida concluída pelo timer deveria emitir stats")
	}
}

// Sala destruída não pode receber jogada automática de timer órfão
func TestTimerCancelledOnLeave(t *testing.T) {
	rs := testRooms()
	rs.TickInterval = 30 * time.Millisecond
	p1, p2 := testSeats()
	r := rs.CreatePlaying(p1, p2)

	rs.Leave(r.ID, "alice")
	time.Sleep(120 * time.Millisecond)

	r.Mu.Lock()
	defer r.Mu.Unlock()
	for i, cell := range r.Board {
		if cell != "" {
			t.Fatalf("timer órfão marcou a casa %d depois do teardown", i)
		}
	}
}
