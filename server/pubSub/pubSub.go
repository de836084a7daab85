package pubSub

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"velha/server/handlers"
	"velha/server/models"
	"velha/shared"

	"github.com/nats-io/nats.go"
)

// RequestsTopic é onde todos os clientes publicam suas ações
const RequestsTopic = "velha.requests"

// StartNats conecta no NATS, amarra a conexão ao servidor e despacha
// cada ação para o handler certo
func StartNats(server *models.Server, natsURL string) (*nats.Conn, error) {
	opts := []nats.Option{
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(5),
		nats.ReconnectWait(2 * time.Second),
	}

	nc, err := nats.Connect(natsURL, opts...)
	if err != nil {
		return nil, fmt.Errorf("erro ao conectar no NATS: %w", err)
	}
	server.SetConn(nc)

	_, err = nc.Subscribe(RequestsTopic, func(msg *nats.Msg) {
		var req shared.Request
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			log.Printf("Erro ao decodificar request: %v", err)
			return
		}

		switch req.Action {
		case shared.ActionAuthenticate:
			handlers.HandleAuthenticate(server, req, nc, msg)
		case shared.ActionLogout:
			handlers.HandleLogout(server, req, nc, msg)
		case shared.ActionHeartbeat:
			handlers.HandleHeartbeat(server, req, nc, msg)
		case shared.ActionSendChallenge:
			handlers.HandleSendChallenge(server, req, nc, msg)
		case shared.ActionRespondChallenge:
			handlers.HandleRespondChallenge(server, req, nc, msg)
		case shared.ActionRPSChoice:
			handlers.HandleRPSChoice(server, req, nc, msg)
		case shared.ActionMakeMove:
			handlers.HandleMakeMove(server, req, nc, msg)
		case shared.ActionSendMessage:
			handlers.HandleSendMessage(server, req, nc, msg)
		case shared.ActionRequestRematch:
			handlers.HandleRequestRematch(server, req, nc, msg)
		case shared.ActionRespondRematch:
			handlers.HandleRespondRematch(server, req, nc, msg)
		case shared.ActionLeaveGame:
			handlers.HandleLeaveGame(server, req, nc, msg)
		case shared.ActionUpdateAvatar:
			handlers.HandleUpdateAvatar(server, req, nc, msg)
		case shared.ActionFindMatch:
			handlers.HandleFindMatch(server, req, nc, msg)
		case shared.ActionCancelMatch:
			handlers.HandleCancelMatchmaking(server, req, nc, msg)
		case shared.ActionMatchSymbol:
			handlers.HandleMatchSymbolChosen(server, req, nc, msg)
		default:
			log.Printf("Ação desconhecida de %s: %s", req.ClientID, req.Action)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao se inscrever no tópico: %w", err)
	}

	log.Printf("Inscrito em %s", RequestsTopic)
	return nc, nil
}
