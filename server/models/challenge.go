package models

import (
	"strconv"
	"sync"
	"time"
)

// Challenge é um convite direto de um jogador para outro. Vive até ser
// aceito, recusado ou expirar.
type Challenge struct {
	ID               string
	Challenger       string
	Challenged       string
	ChallengerSymbol string
	ChallengerClient string
	CreatedAt        time.Time
}

type Challenges struct {
	mu   sync.Mutex
	byID map[string]*Challenge
}

func NewChallenges() *Challenges {
	return &Challenges{byID: make(map[string]*Challenge)}
}

// Create registra o desafio com id derivado do relógio
func (c *Challenges) Create(challenger, challenged, symbol, challengerClient string) *Challenge {
	ch := &Challenge{
		ID:               strconv.FormatInt(time.Now().UnixNano(), 10),
		Challenger:       challenger,
		Challenged:       challenged,
		ChallengerSymbol: symbol,
		ChallengerClient: challengerClient,
		CreatedAt:        time.Now(),
	}
	c.mu.Lock()
	c.byID[ch.ID] = ch
	c.mu.Unlock()
	return ch
}

func (c *Challenges) Get(id string) (*Challenge, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch, ok := c.byID[id]
	return ch, ok
}

// Delete consome o desafio; é chamado tanto no aceite quanto na recusa
func (c *Challenges) Delete(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.byID, id)
}

// ExpireOlderThan descarta convites sem resposta há mais de maxAge
func (c *Challenges) ExpireOlderThan(maxAge time.Duration) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for id, ch := range c.byID {
		if ch.CreatedAt.Before(cutoff) {
			delete(c.byID, id)
			removed++
		}
	}
	return removed
}
