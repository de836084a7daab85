package game

import (
	"log"
	"sync"
	"time"

	"velha/server/notifier"
	"velha/shared"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

// Fases de uma sala
type Phase string

const (
	PhaseRPS          Phase = "RPS"
	PhasePlaying      Phase = "PLAYING"
	PhaseFinishedWin  Phase = "FINISHED_WIN"
	PhaseFinishedDraw Phase = "FINISHED_DRAW"
)

// Seat é o que cada caminho de criação (desafio ou fila) entrega:
// jogador identificado e com símbolo já resolvido
type Seat struct {
	Username string
	ClientID string
	Symbol   string
}

type PlayerSlot struct {
	Symbol   string
	ClientID string
}

// Room é uma partida entre dois jogadores. Toda mutação de fase,
// tabuleiro ou vez passa pelo mutex da sala.
type Room struct {
	ID string
	Mu sync.Mutex

	Players    map[string]*PlayerSlot // por username
	Board      Board
	Phase      Phase
	Turn       string
	RPSChoices map[string]string
	LastWinner string
	LastLoser  string
	Rematch    map[string]bool

	// timerGen invalida timers antigos: qualquer saída de PLAYING
	// incrementa e o tick órfão se enxerga obsoleto e morre
	timerGen int
	closed   bool

	table *Rooms
}

// Rooms é o repositório de salas ativas do processo
type Rooms struct {
	Nc *nats.Conn

	// ajustáveis nos testes
	TurnSeconds  int
	TickInterval time.Duration
	RevealDelay  time.Duration

	Stats chan GameConcluded

	mu    sync.RWMutex
	rooms map[string]*Room
}

func NewRooms(nc *nats.Conn) *Rooms {
	return &Rooms{
		Nc:           nc,
		TurnSeconds:  5,
		TickInterval: time.Second,
		RevealDelay:  3 * time.Second,
		Stats:        make(chan GameConcluded, 64),
		rooms:        make(map[string]*Room),
	}
}

func (t *Rooms) newRoom(p1, p2 Seat) *Room {
	return &Room{
		ID: "game_" + uuid.NewString()[:8],
		Players: map[string]*PlayerSlot{
			p1.Username: {Symbol: p1.Symbol, ClientID: p1.ClientID},
			p2.Username: {Symbol: p2.Symbol, ClientID: p2.ClientID},
		},
		RPSChoices: make(map[string]string),
		Rematch:    make(map[string]bool),
	}
}

// CreatePlaying cria uma sala que começa jogando direto, com a primeira
// vez sorteada. É o caminho do desafio aceito (sem pedra-papel-tesoura).
func (t *Rooms) CreatePlaying(p1, p2 Seat) *Room {
	r := t.newRoom(p1, p2)
	r.table = t

	t.mu.Lock()
	t.rooms[r.ID] = r
	t.mu.Unlock()

	first := p1.Username
	if randomIndex(2) == 1 {
		first = p2.Username
	}

	r.Mu.Lock()
	r.startPlayingLocked(first)
	r.Mu.Unlock()

	log.Printf("[Sala %s] Criada via desafio: %s vs %s, começa %s", r.ID, p1.Username, p2.Username, first)
	return r
}

// CreateRPS cria uma sala em fase de pedra-papel-tesoura. É o caminho
// da fila de matchmaking, depois dos dois símbolos escolhidos.
func (t *Rooms) CreateRPS(p1, p2 Seat) *Room {
	r := t.newRoom(p1, p2)
	r.table = t
	r.Phase = PhaseRPS

	t.mu.Lock()
	t.rooms[r.ID] = r
	t.mu.Unlock()

	r.Mu.Lock()
	r.announceRPSLocked()
	r.Mu.Unlock()

	log.Printf("[Sala %s] Criada via fila: %s vs %s, fase RPS", r.ID, p1.Username, p2.Username)
	return r
}

func (t *Rooms) Get(id string) *Room {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.rooms[id]
}

// FindByUser localiza a sala onde um usuário está jogando, se houver
func (t *Rooms) FindByUser(username string) *Room {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, r := range t.rooms {
		if _, ok := r.Players[username]; ok {
			return r
		}
	}
	return nil
}

// Leave destrói a sala: quem ficou recebe OPPONENT_LEFT e o timer morre.
// Quem não é membro não derruba sala dos outros: nada muda.
func (t *Rooms) Leave(roomID, username string) {
	t.mu.Lock()
	r, ok := t.rooms[roomID]
	if !ok {
		t.mu.Unlock()
		return
	}

	r.Mu.Lock()
	defer r.Mu.Unlock()
	if _, member := r.Players[username]; !member {
		t.mu.Unlock()
		return
	}
	delete(t.rooms, roomID)
	t.mu.Unlock()

	r.closed = true
	r.timerGen++

	other := r.otherPlayerLocked(username)
	if slot, ok := r.Players[other]; ok {
		notifier.Publish(t.Nc, slot.ClientID, shared.EventOpponentLeft, username, nil)
	}
	log.Printf("[Sala %s] Encerrada: %s saiu", r.ID, username)
}

// --- Helpers da sala (chamados com o lock da sala) ---

func (r *Room) playerNamesLocked() []string {
	names := make([]string, 0, len(r.Players))
	for name := range r.Players {
		names = append(names, name)
	}
	return names
}

func (r *Room) otherPlayerLocked(username string) string {
	for name := range r.Players {
		if name != username {
			return name
		}
	}
	return ""
}

func (r *Room) ownerOfSymbolLocked(symbol string) string {
	for name, slot := range r.Players {
		if slot.Symbol == symbol {
			return name
		}
	}
	return ""
}

func (r *Room) playersInfoLocked() map[string]shared.PlayerInfo {
	info := make(map[string]shared.PlayerInfo, len(r.Players))
	for name, slot := range r.Players {
		info[name] = shared.PlayerInfo{Symbol: slot.Symbol}
	}
	return info
}

func (r *Room) finishedLocked() bool {
	return r.Phase == PhaseFinishedWin || r.Phase == PhaseFinishedDraw
}

func (r *Room) broadcastLocked(eventType, from string, payload any) {
	for _, slot := range r.Players {
		notifier.Publish(r.table.Nc, slot.ClientID, eventType, from, payload)
	}
}

// announceRPSLocked avisa os dois que a decisão de quem começa é no
// pedra-papel-tesoura
func (r *Room) announceRPSLocked() {
	for name, slot := range r.Players {
		notifier.Publish(r.table.Nc, slot.ClientID, shared.EventRPSStart, "", shared.RPSStartData{
			RoomID:   r.ID,
			Players:  r.playersInfoLocked(),
			Opponent: r.otherPlayerLocked(name),
		})
	}
}

func (r *Room) startPlayingLocked(first string) {
	r.Phase = PhasePlaying
	r.Turn = first
	r.RPSChoices = make(map[string]string)
	r.broadcastLocked(shared.EventGameStart, "", shared.GameStartData{
		RoomID:        r.ID,
		Players:       r.playersInfoLocked(),
		Board:         r.Board.Wire(),
		CurrentPlayer: first,
	})
	r.armTimerLocked()
}

// --- Pedra-papel-tesoura ---

// HandleRPSChoice registra a escolha; quando as duas chegam, resolve
func (r *Room) HandleRPSChoice(username, choice string) {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	if r.closed || r.Phase != PhaseRPS {
		return
	}
	if _, member := r.Players[username]; !member {
		return
	}
	if !ValidRPSChoice(choice) {
		return
	}
	if _, chosen := r.RPSChoices[username]; chosen {
		return
	}

	r.RPSChoices[username] = choice
	if len(r.RPSChoices) < 2 {
		return
	}
	r.resolveRPSLocked()
}

func (r *Room) resolveRPSLocked() {
	names := r.playerNamesLocked()
	a, b := names[0], names[1]

	var winner string
	switch ResolveRPS(r.RPSChoices[a], r.RPSChoices[b]) {
	case 1:
		winner = a
	case 2:
		winner = b
	default:
		// empate: sorteio
		winner = a
		if randomIndex(2) == 1 {
			winner = b
		}
	}

	// as escolhas só são limpas quando o jogo começa: durante a pausa de
	// revelação qualquer escolha nova bate em "já escolheu" e morre
	choices := map[string]string{a: r.RPSChoices[a], b: r.RPSChoices[b]}

	r.broadcastLocked(shared.EventRPSResult, "", shared.RPSResultData{
		RoomID:  r.ID,
		Choices: choices,
		Winner:  winner,
	})
	log.Printf("[Sala %s] RPS resolvido: %s começa", r.ID, winner)

	// pausa de exibição antes de revelar o tabuleiro
	time.AfterFunc(r.table.RevealDelay, func() {
		r.Mu.Lock()
		defer r.Mu.Unlock()
		if r.closed || r.Phase != PhaseRPS {
			return
		}
		r.startPlayingLocked(winner)
	})
}

// --- Jogadas ---

// MakeMove valida e aplica uma jogada. Qualquer pré-condição violada
// derruba a jogada em silêncio: nada muda, ninguém é avisado.
func (r *Room) MakeMove(username string, position int) {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	if r.closed || r.Phase != PhasePlaying {
		return
	}
	if r.Turn != username {
		return
	}
	if position < 0 || position >= len(r.Board) {
		return
	}
	if r.Board[position] != "" {
		return
	}
	if _, member := r.Players[username]; !member {
		return
	}

	r.applyMoveLocked(username, position, false)
}

// applyMoveLocked escreve o símbolo e reavalia vitória/empate/continua
func (r *Room) applyMoveLocked(username string, position int, auto bool) {
	r.Board[position] = r.Players[username].Symbol

	winnerSymbol := r.Board.Winner()
	switch {
	case winnerSymbol != "":
		winner := r.ownerOfSymbolLocked(winnerSymbol)
		loser := r.otherPlayerLocked(winner)
		r.Phase = PhaseFinishedWin
		r.timerGen++
		r.Turn = ""
		r.LastWinner = winner
		r.LastLoser = loser
		r.broadcastLocked(shared.EventGameUpdate, "", shared.GameUpdateData{
			RoomID:    r.ID,
			Board:     r.Board.Wire(),
			GameState: "finished",
			Winner:    winner,
			Auto:      auto,
		})
		r.table.conclude(GameConcluded{Winner: winner, Loser: loser})
		log.Printf("[Sala %s] Vitória de %s", r.ID, winner)

	case r.Board.Full():
		names := r.playerNamesLocked()
		r.Phase = PhaseFinishedDraw
		r.timerGen++
		r.Turn = ""
		// empate não carrega vencedor para a revanche
		r.LastWinner = ""
		r.LastLoser = ""
		r.broadcastLocked(shared.EventGameUpdate, "", shared.GameUpdateData{
			RoomID:    r.ID,
			Board:     r.Board.Wire(),
			GameState: "draw",
			IsDraw:    true,
			Auto:      auto,
		})
		r.table.conclude(GameConcluded{Draw: true, Players: [2]string{names[0], names[1]}})
		log.Printf("[Sala %s] Empate", r.ID)

	default:
		r.Turn = r.otherPlayerLocked(username)
		r.broadcastLocked(shared.EventGameUpdate, "", shared.GameUpdateData{
			RoomID:        r.ID,
			Board:         r.Board.Wire(),
			CurrentPlayer: r.Turn,
			GameState:     "playing",
			Auto:          auto,
		})
		r.armTimerLocked()
	}
}

// --- Chat ---

// Relay repassa uma mensagem de chat para os dois membros da sala
func (r *Room) Relay(username, message string) {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	if r.closed {
		return
	}
	if _, member := r.Players[username]; !member {
		return
	}
	r.broadcastLocked(shared.EventMessageReceived, username, shared.ChatData{
		Username:  username,
		Message:   message,
		Timestamp: time.Now().UnixMilli(),
	})
}

// --- Revanche ---

// RequestRematch registra o voto de revanche e avisa o outro jogador
func (r *Room) RequestRematch(username string) {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	if r.closed || !r.finishedLocked() {
		return
	}
	if _, member := r.Players[username]; !member {
		return
	}

	r.Rematch[username] = true
	other := r.otherPlayerLocked(username)
	if slot, ok := r.Players[other]; ok {
		notifier.Publish(r.table.Nc, slot.ClientID, shared.EventRematchRequested, username, nil)
	}
}

// RespondRematch conta a resposta como voto. Com os dois votos a sala
// recomeça; uma recusa limpa os votos e avisa quem pediu.
func (r *Room) RespondRematch(username string, accepted bool) {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	if r.closed || !r.finishedLocked() {
		return
	}
	if _, member := r.Players[username]; !member {
		return
	}

	if !accepted {
		r.Rematch = make(map[string]bool)
		other := r.otherPlayerLocked(username)
		if slot, ok := r.Players[other]; ok {
			notifier.Publish(r.table.Nc, slot.ClientID, shared.EventRematchDeclined, username, nil)
		}
		return
	}

	r.Rematch[username] = true
	if len(r.Rematch) < 2 {
		return
	}

	// os dois toparam: limpa o tabuleiro e decide a próxima fase
	r.Board.Clear()
	r.Rematch = make(map[string]bool)
	r.RPSChoices = make(map[string]string)

	if r.LastWinner == "" {
		// primeira partida ou empate anterior: decide no RPS
		r.Phase = PhaseRPS
		r.announceRPSLocked()
		log.Printf("[Sala %s] Revanche aceita, nova rodada de RPS", r.ID)
		return
	}

	// quem perdeu começa
	r.startPlayingLocked(r.LastLoser)
	log.Printf("[Sala %s] Revanche aceita, %s começa", r.ID, r.LastLoser)
}
