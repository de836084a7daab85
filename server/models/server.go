package models

import (
	"velha/server/game"
	"velha/shared"

	"github.com/nats-io/nats.go"
)

// UserStore é o colaborador de persistência visto pelo núcleo de
// sessão. A implementação real fica em server/storage.
type UserStore interface {
	GetUser(username string) (shared.UserInfo, error)
	UpdateAvatar(username, avatar string) error
	RecordWin(username string) error
	RecordLoss(username string) error
	RecordDraw(username string) error
	LeaderboardTop(n int) ([]shared.UserInfo, error)
}

// Server agrupa todo o estado compartilhado do processo: presença,
// fila, desafios e salas, cada um como repositório com seu próprio lock
type Server struct {
	Nc        *nats.Conn // preenchido pelo pubSub na subida
	JWTSecret []byte

	Presence    *Presence
	Matchmaking *Matchmaking
	Challenges  *Challenges
	Rooms       *game.Rooms

	Store UserStore
}

func NewServer(jwtSecret []byte, store UserStore) *Server {
	return &Server{
		JWTSecret:   jwtSecret,
		Presence:    NewPresence(),
		Matchmaking: NewMatchmaking(),
		Challenges:  NewChallenges(),
		Rooms:       game.NewRooms(nil),
		Store:       store,
	}
}

// SetConn amarra a conexão NATS ao servidor e às salas
func (s *Server) SetConn(nc *nats.Conn) {
	s.Nc = nc
	s.Rooms.Nc = nc
}
