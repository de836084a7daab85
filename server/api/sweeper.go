package api

import (
	"log"
	"time"

	"velha/server/models"

	"github.com/go-co-op/gocron/v2"
)

const (
	sweepEvery = 30 * time.Second
	staleAfter = 2 * time.Minute
)

// StartSweeper roda a faxina periódica: desafios sem resposta e
// matches pendentes abandonados somem sem aviso
func StartSweeper(server *models.Server) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(sweepEvery),
		gocron.NewTask(func() {
			if n := server.Challenges.ExpireOlderThan(staleAfter); n > 0 {
				log.Printf("[Sweeper] %d desafio(s) expirado(s)", n)
			}
			if n := server.Matchmaking.ExpirePending(staleAfter); n > 0 {
				log.Printf("[Sweeper] %d match(es) pendente(s) expirado(s)", n)
			}
		}),
	)
	if err != nil {
		return nil, err
	}

	sched.Start()
	return sched, nil
}
