package models

import (
	"sync"
	"time"

	"velha/shared"
)

// PresenceEntry é um usuário autenticado e conectado agora
type PresenceEntry struct {
	Username string
	ClientID string
	LastSeen time.Time
}

// Presence é o registro em memória de quem está online. Nada aqui é
// persistido: o processo recomeça vazio.
type Presence struct {
	mu       sync.Mutex
	byClient map[string]*PresenceEntry
	byName   map[string]string // username -> clientID
}

func NewPresence() *Presence {
	return &Presence{
		byClient: make(map[string]*PresenceEntry),
		byName:   make(map[string]string),
	}
}

// Register cria (ou sobrescreve) a entrada do cliente e devolve o
// retrato atualizado de quem está online. Login repetido do mesmo
// usuário: o último registro vale.
func (p *Presence) Register(username, clientID string) []shared.OnlineUser {
	p.mu.Lock()
	defer p.mu.Unlock()

	if old, ok := p.byClient[clientID]; ok && old.Username != username {
		if p.byName[old.Username] == clientID {
			delete(p.byName, old.Username)
		}
	}

	// login repetido de outro cliente: a conexão antiga é despejada na
	// hora, o usuário nunca aparece duas vezes no retrato
	if oldClient, ok := p.byName[username]; ok && oldClient != clientID {
		delete(p.byClient, oldClient)
	}

	p.byClient[clientID] = &PresenceEntry{
		Username: username,
		ClientID: clientID,
		LastSeen: time.Now(),
	}
	p.byName[username] = clientID
	return p.snapshotLocked()
}

// Unregister remove a entrada (idempotente) e devolve o usuário que
// saiu junto com o retrato atualizado
func (p *Presence) Unregister(clientID string) (string, []shared.OnlineUser) {
	p.mu.Lock()
	defer p.mu.Unlock()

	entry, ok := p.byClient[clientID]
	if !ok {
		return "", p.snapshotLocked()
	}
	delete(p.byClient, clientID)
	if p.byName[entry.Username] == clientID {
		delete(p.byName, entry.Username)
	}
	return entry.Username, p.snapshotLocked()
}

// Find localiza o inbox de um usuário online
func (p *Presence) Find(username string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	clientID, ok := p.byName[username]
	return clientID, ok
}

// UsernameOf devolve o usuário autenticado de um cliente
func (p *Presence) UsernameOf(clientID string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	entry, ok := p.byClient[clientID]
	if !ok {
		return "", false
	}
	return entry.Username, true
}

// Touch renova o LastSeen do cliente (heartbeat)
func (p *Presence) Touch(clientID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	entry, ok := p.byClient[clientID]
	if !ok {
		return false
	}
	entry.LastSeen = time.Now()
	return true
}

// StaleClients lista clientes sem heartbeat há mais de maxIdle
func (p *Presence) StaleClients(maxIdle time.Duration) []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	cutoff := time.Now().Add(-maxIdle)
	stale := []string{}
	for clientID, entry := range p.byClient {
		if entry.LastSeen.Before(cutoff) {
			stale = append(stale, clientID)
		}
	}
	return stale
}

func (p *Presence) Snapshot() []shared.OnlineUser {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

// Clients devolve todos os inboxes online, para broadcast
func (p *Presence) Clients() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	ids := make([]string, 0, len(p.byClient))
	for clientID := range p.byClient {
		ids = append(ids, clientID)
	}
	return ids
}

func (p *Presence) snapshotLocked() []shared.OnlineUser {
	users := make([]shared.OnlineUser, 0, len(p.byClient))
	for _, entry := range p.byClient {
		users = append(users, shared.OnlineUser{Username: entry.Username})
	}
	return users
}
