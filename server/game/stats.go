package game

import "log"

// GameConcluded é o evento de fim de partida consumido pelo worker de
// estatísticas. O jogo não espera a persistência: quem consome o canal
// aplica os contadores quando puder.
type GameConcluded struct {
	Winner  string
	Loser   string
	Draw    bool
	Players [2]string
}

func (t *Rooms) conclude(ev GameConcluded) {
	select {
	case t.Stats <- ev:
	default:
		log.Printf("[Stats] Fila de resultados cheia, evento descartado: %+v", ev)
	}
}
