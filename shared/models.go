package shared

import "encoding/json"

// Request é o envelope que todo cliente publica em velha.requests
type Request struct {
	ClientID string          `json:"client_id"`
	Action   string          `json:"action"`
	Payload  json.RawMessage `json:"payload,omitempty"`
}

// Response é a resposta direta via request/reply do NATS
type Response struct {
	Status string          `json:"status"`
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// GameMessage é o push servidor -> cliente no inbox
type GameMessage struct {
	Type string          `json:"type"`
	From string          `json:"from,omitempty"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Ações que o servidor aceita em velha.requests
const (
	ActionAuthenticate     = "AUTHENTICATE"
	ActionLogout           = "LOGOUT"
	ActionHeartbeat        = "HEARTBEAT"
	ActionSendChallenge    = "SEND_CHALLENGE"
	ActionRespondChallenge = "RESPOND_CHALLENGE"
	ActionRPSChoice        = "RPS_CHOICE"
	ActionMakeMove         = "MAKE_MOVE"
	ActionSendMessage      = "SEND_MESSAGE"
	ActionRequestRematch   = "REQUEST_REMATCH"
	ActionRespondRematch   = "RESPOND_REMATCH"
	ActionLeaveGame        = "LEAVE_GAME"
	ActionUpdateAvatar     = "UPDATE_AVATAR"
	ActionFindMatch        = "FIND_MATCH"
	ActionCancelMatch      = "CANCEL_MATCHMAKING"
	ActionMatchSymbol      = "MATCH_SYMBOL_CHOSEN"
)

// Eventos que o servidor publica nos inboxes dos clientes
const (
	EventOnlineUsers       = "ONLINE_USERS"
	EventChallengeReceived = "CHALLENGE_RECEIVED"
	EventChallengeDeclined = "CHALLENGE_DECLINED"
	EventRPSStart          = "RPS_START"
	EventRPSResult         = "RPS_RESULT"
	EventGameStart         = "GAME_START"
	EventTimerUpdate       = "TIMER_UPDATE"
	EventGameUpdate        = "GAME_UPDATE"
	EventMessageReceived   = "MESSAGE_RECEIVED"
	EventRematchRequested  = "REMATCH_REQUESTED"
	EventRematchDeclined   = "REMATCH_DECLINED"
	EventMatchFound        = "MATCH_FOUND"
	EventSymbolTaken       = "SYMBOL_TAKEN"
	EventSymbolAccepted    = "SYMBOL_ACCEPTED"
	EventAvatarUpdated     = "AVATAR_UPDATED"
	EventOpponentLeft      = "OPPONENT_LEFT"
)

// UserInfo é o retrato do usuário que circula entre servidor e cliente
// (nunca carrega a senha)
type UserInfo struct {
	Username string `json:"username"`
	Wins     int    `json:"wins"`
	Losses   int    `json:"losses"`
	Draws    int    `json:"draws"`
	Avatar   string `json:"avatar,omitempty"`
}

// --- Payloads das ações ---

type AuthPayload struct {
	Token string `json:"token"`
}

type ChallengePayload struct {
	TargetUsername string `json:"target_username"`
	Symbol         string `json:"symbol"`
}

type ChallengeResponsePayload struct {
	ChallengeID string `json:"challenge_id"`
	Accepted    bool   `json:"accepted"`
	Symbol      string `json:"symbol,omitempty"`
}

type RPSChoicePayload struct {
	RoomID string `json:"room_id"`
	Choice string `json:"choice"`
}

type MovePayload struct {
	RoomID   string `json:"room_id"`
	Position int    `json:"position"`
}

type ChatPayload struct {
	RoomID  string `json:"room_id"`
	Message string `json:"message"`
}

type RematchPayload struct {
	RoomID string `json:"room_id"`
}

type RematchResponsePayload struct {
	RoomID   string `json:"room_id"`
	Accepted bool   `json:"accepted"`
}

type LeavePayload struct {
	RoomID string `json:"room_id"`
}

type AvatarPayload struct {
	Avatar string `json:"avatar"`
}

type SymbolPayload struct {
	MatchID string `json:"match_id"`
	Symbol  string `json:"symbol"`
}

// --- Payloads dos eventos ---

type OnlineUser struct {
	Username string `json:"username"`
}

type ChallengeReceivedData struct {
	ChallengeID string `json:"challenge_id"`
	Challenger  string `json:"challenger"`
}

type PlayerInfo struct {
	Symbol string `json:"symbol"`
}

type GameStartData struct {
	RoomID        string                `json:"room_id"`
	Players       map[string]PlayerInfo `json:"players"`
	Board         []*string             `json:"board"`
	CurrentPlayer string                `json:"current_player"`
}

type GameUpdateData struct {
	RoomID        string    `json:"room_id"`
	Board         []*string `json:"board"`
	CurrentPlayer string    `json:"current_player,omitempty"`
	GameState     string    `json:"game_state"`
	Winner        string    `json:"winner,omitempty"`
	IsDraw        bool      `json:"is_draw"`
	Auto          bool      `json:"auto,omitempty"`
}

type TimerUpdateData struct {
	RoomID    string `json:"room_id"`
	Remaining int    `json:"remaining"`
	Turn      string `json:"turn"`
}

type RPSStartData struct {
	RoomID   string                `json:"room_id"`
	Players  map[string]PlayerInfo `json:"players"`
	Opponent string                `json:"opponent"`
}

type RPSResultData struct {
	RoomID  string            `json:"room_id"`
	Choices map[string]string `json:"choices"`
	Winner  string            `json:"winner"`
}

type MatchFoundData struct {
	MatchID  string `json:"match_id"`
	Opponent string `json:"opponent"`
}

type ChatData struct {
	Username  string `json:"username"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}
