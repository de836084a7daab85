package models

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type PendingPlayer struct {
	ClientID string
	Symbol   string
}

// PendingMatch é o par já formado pela fila, esperando os dois
// escolherem símbolo antes de virar sala
type PendingMatch struct {
	ID        string
	Players   map[string]*PendingPlayer // por username
	Chosen    map[string]bool           // símbolos já reclamados
	CreatedAt time.Time
}

// Matchmaking é a fila de quem procura partida aleatória. O pareamento
// (tirar os dois da fila + criar o PendingMatch) acontece inteiro
// dentro do mutex: dois Enqueue simultâneos nunca disputam o mesmo
// oponente.
type Matchmaking struct {
	mu      sync.Mutex
	queue   []string // usernames em ordem de chegada
	pending map[string]*PendingMatch
}

func NewMatchmaking() *Matchmaking {
	return &Matchmaking{
		pending: make(map[string]*PendingMatch),
	}
}

// Enqueue coloca o usuário na fila e já tenta parear com qualquer outro
// membro. locate resolve o inbox do candidato; quem não resolve mais é
// descartado da fila. Devolve o PendingMatch criado, ou nil se ficou
// esperando.
func (m *Matchmaking) Enqueue(username, clientID string, locate func(string) (string, bool)) *PendingMatch {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, queued := range m.queue {
		if queued == username {
			return nil
		}
	}

	for i := 0; i < len(m.queue); {
		opponent := m.queue[i]
		opponentClient, ok := locate(opponent)
		if !ok {
			// sumiu do presence: limpa da fila
			m.queue = append(m.queue[:i], m.queue[i+1:]...)
			continue
		}

		m.queue = append(m.queue[:i], m.queue[i+1:]...)
		pm := &PendingMatch{
			ID: "match_" + uuid.NewString()[:8],
			Players: map[string]*PendingPlayer{
				username: {ClientID: clientID},
				opponent: {ClientID: opponentClient},
			},
			Chosen:    make(map[string]bool),
			CreatedAt: time.Now(),
		}
		m.pending[pm.ID] = pm
		return pm
	}

	m.queue = append(m.queue, username)
	return nil
}

// Cancel tira o usuário da fila; quem não estava é no-op
func (m *Matchmaking) Cancel(username string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, queued := range m.queue {
		if queued == username {
			m.queue = append(m.queue[:i], m.queue[i+1:]...)
			return
		}
	}
}

// Queue devolve uma cópia da fila atual
func (m *Matchmaking) Queue() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.queue))
	copy(out, m.queue)
	return out
}

// Resultado de uma escolha de símbolo
type SymbolResult int

const (
	SymbolMatchGone SymbolResult = iota // match não existe mais (descarte silencioso)
	SymbolTaken                         // símbolo repetido, avisa só quem pediu
	SymbolRecorded                      // registrado, falta o outro
	SymbolComplete                      // os dois escolheram, promover para sala
)

// ChooseSymbol registra a escolha de símbolo dentro do PendingMatch.
// Quando o segundo símbolo entra, o match sai da tabela e o chamador
// promove o par para uma sala.
func (m *Matchmaking) ChooseSymbol(matchID, username, symbol string) (SymbolResult, *PendingMatch) {
	m.mu.Lock()
	defer m.mu.Unlock()

	pm, ok := m.pending[matchID]
	if !ok {
		return SymbolMatchGone, nil
	}
	player, ok := pm.Players[username]
	if !ok {
		return SymbolMatchGone, nil
	}
	if pm.Chosen[symbol] {
		return SymbolTaken, pm
	}
	if player.Symbol != "" {
		// já tinha escolhido; troca não é suportada
		return SymbolRecorded, pm
	}

	player.Symbol = symbol
	pm.Chosen[symbol] = true

	for _, p := range pm.Players {
		if p.Symbol == "" {
			return SymbolRecorded, pm
		}
	}

	delete(m.pending, matchID)
	return SymbolComplete, pm
}

// ExpirePending descarta matches parados há mais de maxAge
func (m *Matchmaking) ExpirePending(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for id, pm := range m.pending {
		if pm.CreatedAt.Before(cutoff) {
			delete(m.pending, id)
			removed++
		}
	}
	return removed
}
