package game

import (
	"log"
	"time"

	"velha/shared"
)

// armTimerLocked liga a contagem regressiva da vez atual. O tick
// anterior vira órfão pelo avanço do timerGen.
func (r *Room) armTimerLocked() {
	r.timerGen++
	gen := r.timerGen

	r.broadcastLocked(shared.EventTimerUpdate, "", shared.TimerUpdateData{
		RoomID:    r.ID,
		Remaining: r.table.TurnSeconds,
		Turn:      r.Turn,
	})

	go r.runTimer(gen, r.table.TurnSeconds)
}

func (r *Room) runTimer(gen, remaining int) {
	ticker := time.NewTicker(r.table.TickInterval)
	defer ticker.Stop()

	for range ticker.C {
		r.Mu.Lock()
		if r.closed || r.timerGen != gen || r.Phase != PhasePlaying {
			r.Mu.Unlock()
			return
		}

		remaining--
		if remaining <= 0 {
			r.forceMoveLocked()
			r.Mu.Unlock()
			return
		}

		r.broadcastLocked(shared.EventTimerUpdate, "", shared.TimerUpdateData{
			RoomID:    r.ID,
			Remaining: remaining,
			Turn:      r.Turn,
		})
		r.Mu.Unlock()
	}
}

// forceMoveLocked joga por quem deixou o tempo estourar: uma casa
// vazia sorteada, marcada como jogada automática
func (r *Room) forceMoveLocked() {
	free := r.Board.FreeCells()
	if len(free) == 0 {
		return
	}
	position := free[randomIndex(len(free))]
	log.Printf("[Sala %s] Tempo esgotado de %s, jogada automática na casa %d", r.ID, r.Turn, position)
	r.applyMoveLocked(r.Turn, position, true)
}
