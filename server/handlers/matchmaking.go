package handlers

import (
	"encoding/json"
	"log"

	"velha/server/game"
	"velha/server/models"
	"velha/server/notifier"
	"velha/shared"

	"github.com/nats-io/nats.go"
)

// HandleFindMatch coloca o usuário na fila; se já tinha alguém
// esperando, o par sai na hora e os dois recebem MATCH_FOUND
func HandleFindMatch(server *models.Server, request shared.Request, nc *nats.Conn, msg *nats.Msg) {
	username, ok := server.Presence.UsernameOf(request.ClientID)
	if !ok {
		return
	}

	pm := server.Matchmaking.Enqueue(username, request.ClientID, server.Presence.Find)
	if pm == nil {
		log.Printf("Cliente %s entrou na fila de matchmaking", username)
		replyOK(nc, msg, shared.ActionFindMatch, nil)
		return
	}

	log.Printf("Par formado: %s (%v)", pm.ID, playerNames(pm))
	for name, player := range pm.Players {
		opponent := ""
		for other := range pm.Players {
			if other != name {
				opponent = other
			}
		}
		notifier.Publish(server.Nc, player.ClientID, shared.EventMatchFound, "", shared.MatchFoundData{
			MatchID:  pm.ID,
			Opponent: opponent,
		})
	}
	replyOK(nc, msg, shared.ActionFindMatch, nil)
}

// HandleCancelMatchmaking tira o usuário da fila (no-op se já saiu)
func HandleCancelMatchmaking(server *models.Server, request shared.Request, nc *nats.Conn, msg *nats.Msg) {
	username, ok := server.Presence.UsernameOf(request.ClientID)
	if !ok {
		return
	}
	server.Matchmaking.Cancel(username)
	replyOK(nc, msg, shared.ActionCancelMatch, nil)
}

// HandleMatchSymbolChosen registra o símbolo no match pendente; com os
// dois símbolos a sala nasce em fase de pedra-papel-tesoura
func HandleMatchSymbolChosen(server *models.Server, request shared.Request, nc *nats.Conn, msg *nats.Msg) {
	username, ok := server.Presence.UsernameOf(request.ClientID)
	if !ok {
		return
	}

	var payload shared.SymbolPayload
	if err := json.Unmarshal(request.Payload, &payload); err != nil {
		return
	}

	result, pm := server.Matchmaking.ChooseSymbol(payload.MatchID, username, payload.Symbol)
	switch result {
	case models.SymbolMatchGone:
		return

	case models.SymbolTaken:
		notifier.Publish(server.Nc, request.ClientID, shared.EventSymbolTaken, "", payload.Symbol)

	case models.SymbolRecorded:
		notifier.Publish(server.Nc, request.ClientID, shared.EventSymbolAccepted, "", nil)

	case models.SymbolComplete:
		notifier.Publish(server.Nc, request.ClientID, shared.EventSymbolAccepted, "", nil)

		names := playerNames(pm)
		p1, p2 := pm.Players[names[0]], pm.Players[names[1]]
		server.Rooms.CreateRPS(
			game.Seat{Username: names[0], ClientID: p1.ClientID, Symbol: p1.Symbol},
			game.Seat{Username: names[1], ClientID: p2.ClientID, Symbol: p2.Symbol},
		)
	}
}

func playerNames(pm *models.PendingMatch) []string {
	names := make([]string, 0, len(pm.Players))
	for name := range pm.Players {
		names = append(names, name)
	}
	return names
}
