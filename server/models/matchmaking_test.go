package models

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

// locate de teste: todo mundo está sempre online
func allOnline(username string) (string, bool) {
	return "c-" + username, true
}

func TestEnqueuePairsFIFO(t *testing.T) {
	m := NewMatchmaking()

	if pm := m.Enqueue("alice", "c-alice", allOnline); pm != nil {
		t.Fatal("primeiro da fila não pode parear sozinho")
	}
	pm := m.Enqueue("bob", "c-bob", allOnline)
	if pm == nil {
		t.Fatal("segundo da fila deveria parear com o primeiro")
	}
	if _, ok := pm.Players["alice"]; !ok {
		t.Error("alice deveria estar no match")
	}
	if _, ok := pm.Players["bob"]; !ok {
		t.Error("bob deveria estar no match")
	}
	if pm.Players["alice"].ClientID != "c-alice" {
		t.Errorf("clientID errado: %q", pm.Players["alice"].ClientID)
	}
	if len(m.Queue()) != 0 {
		t.Errorf("fila deveria esvaziar, sobrou %v", m.Queue())
	}
}

func TestEnqueueDuplicateIsNoOp(t *testing.T) {
	m := NewMatchmaking()
	m.Enqueue("alice", "c-alice", allOnline)
	m.Enqueue("alice", "c-alice", allOnline)
	if got := len(m.Queue()); got != 1 {
		t.Fatalf("alice entrou %d vezes na fila", got)
	}
}

// Candidato que sumiu do presence é descartado e o pareamento segue
// para o próximo da fila
func TestEnqueueSkipsOfflineCandidate(t *testing.T) {
	m := NewMatchmaking()
	m.Enqueue("ghost", "c-ghost", allOnline)
	m.Enqueue("alice", "c-alice", func(u string) (string, bool) {
		return "", false
	})

	// ghost foi limpo; alice ficou esperando
	q := m.Queue()
	if len(q) != 1 || q[0] != "alice" {
		t.Fatalf("fila esperada [alice], veio %v", q)
	}

	pm := m.Enqueue("bob", "c-bob", allOnline)
	if pm == nil {
		t.Fatal("bob deveria parear com alice")
	}
	if _, ok := pm.Players["ghost"]; ok {
		t.Error("ghost não podia entrar em match")
	}
}

func TestCancelRemovesFromQueue(t *testing.T) {
	m := NewMatchmaking()
	m.Enqueue("alice", "c-alice", allOnline)
	m.Cancel("alice")
	m.Cancel("alice") // repetido é no-op
	if len(m.Queue()) != 0 {
		t.Fatal("cancel não tirou da fila")
	}
	if pm := m.Enqueue("bob", "c-bob", allOnline); pm != nil {
		t.Fatal("bob não podia parear com quem cancelou")
	}
}

// Enqueues simultâneos: cada usuário acaba em no máximo um match e
// ninguém é pareado duas vezes
func TestEnqueueConcurrentNoDoublePairing(t *testing.T) {
	m := NewMatchmaking()

	const players = 11 // ímpar de propósito: um sobra na fila
	var wg sync.WaitGroup
	results := make(chan *PendingMatch, players)

	for i := 0; i < players; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			name := fmt.Sprintf("user%02d", n)
			results <- m.Enqueue(name, "c-"+name, allOnline)
		}(i)
	}
	wg.Wait()
	close(results)

	seen := make(map[string]int)
	matches := 0
	for pm := range results {
		if pm == nil {
			continue
		}
		matches++
		for name := range pm.Players {
			seen[name]++
		}
	}

	if matches != players/2 {
		t.Fatalf("esperava %d matches, veio %d", players/2, matches)
	}
	for name, count := range seen {
		if count != 1 {
			t.Errorf("%s apareceu em %d matches", name, count)
		}
	}
	if got := len(m.Queue()); got != 1 {
		t.Errorf("deveria sobrar exatamente 1 na fila, sobrou %d", got)
	}
}

func TestChooseSymbolFlow(t *testing.T) {
	m := NewMatchmaking()
	m.Enqueue("alice", "c-alice", allOnline)
	pm := m.Enqueue("bob", "c-bob", allOnline)

	res, _ := m.ChooseSymbol(pm.ID, "alice", "X")
	if res != SymbolRecorded {
		t.Fatalf("primeira escolha deveria registrar, veio %d", res)
	}

	res, _ = m.ChooseSymbol(pm.ID, "bob", "X")
	if res != SymbolTaken {
		t.Fatalf("símbolo repetido deveria dar SymbolTaken, veio %d", res)
	}

	res, got := m.ChooseSymbol(pm.ID, "bob", "O")
	if res != SymbolComplete {
		t.Fatalf("segunda escolha válida deveria completar, veio %d", res)
	}
	if got.Players["alice"].Symbol != "X" || got.Players["bob"].Symbol != "O" {
		t.Errorf("símbolos errados: %+v", got.Players)
	}

	// match completo some da tabela
	res, _ = m.ChooseSymbol(pm.ID, "alice", "O")
	if res != SymbolMatchGone {
		t.Fatalf("match promovido não podia aceitar mais escolhas, veio %d", res)
	}
}

func TestChooseSymbolStranger(t *testing.T) {
	m := NewMatchmaking()
	m.Enqueue("alice", "c-alice", allOnline)
	pm := m.Enqueue("bob", "c-bob", allOnline)

	res, _ := m.ChooseSymbol(pm.ID, "eve", "X")
	if res != SymbolMatchGone {
		t.Fatalf("intruso não pode escolher símbolo, veio %d", res)
	}
}

func TestExpirePending(t *testing.T) {
	m := NewMatchmaking()
	m.Enqueue("alice", "c-alice", allOnline)
	pm := m.Enqueue("bob", "c-bob", allOnline)

	if got := m.ExpirePending(time.Minute); got != 0 {
		t.Fatalf("match novo não podia expirar, removeu %d", got)
	}

	m.mu.Lock()
	m.pending[pm.ID].CreatedAt = time.Now().Add(-3 * time.Minute)
	m.mu.Unlock()

	if got := m.ExpirePending(time.Minute); got != 1 {
		t.Fatalf("esperava expirar 1 match, veio %d", got)
	}
	if res, _ := m.ChooseSymbol(pm.ID, "alice", "X"); res != SymbolMatchGone {
		t.Fatal("match expirado ainda aceita escolhas")
	}
}
