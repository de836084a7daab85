package storage

import (
	"log"

	"velha/server/game"
)

// StatsRecorder é o pedaço do Store que o worker usa; os testes
// plugam um gravador em memória aqui
type StatsRecorder interface {
	RecordWin(username string) error
	RecordLoss(username string) error
	RecordDraw(username string) error
}

// StartStatsWorker drena os eventos de fim de partida e aplica os
// contadores. O jogo nunca espera por isso: falha de persistência é
// logada e o resultado já divulgado fica como está.
func StartStatsWorker(recorder StatsRecorder, events <-chan game.GameConcluded) {
	go func() {
		for ev := range events {
			if ev.Draw {
				for _, player := range ev.Players {
					if err := recorder.RecordDraw(player); err != nil {
						log.Printf("[Stats] Erro ao gravar empate de %s: %v", player, err)
					}
				}
				continue
			}

			if err := recorder.RecordWin(ev.Winner); err != nil {
				log.Printf("[Stats] Erro ao gravar vitória de %s: %v", ev.Winner, err)
			}
			if err := recorder.RecordLoss(ev.Loser); err != nil {
				log.Printf("[Stats] Erro ao gravar derrota de %s: %v", ev.Loser, err)
			}
		}
	}()
}
