package handlers

import (
	"encoding/json"

	"velha/server/models"
	"velha/shared"

	"github.com/nats-io/nats.go"
)

// Ações de dentro da sala: todas resolvem o usuário pela presença,
// acham a sala e delegam. Sala ou pré-condição que não bate é descarte
// silencioso, a sala cuida das próprias regras.

func HandleRPSChoice(server *models.Server, request shared.Request, nc *nats.Conn, msg *nats.Msg) {
	username, ok := server.Presence.UsernameOf(request.ClientID)
	if !ok {
		return
	}

	var payload shared.RPSChoicePayload
	if err := json.Unmarshal(request.Payload, &payload); err != nil {
		return
	}

	if room := server.Rooms.Get(payload.RoomID); room != nil {
		room.HandleRPSChoice(username, payload.Choice)
	}
}

func HandleMakeMove(server *models.Server, request shared.Request, nc *nats.Conn, msg *nats.Msg) {
	username, ok := server.Presence.UsernameOf(request.ClientID)
	if !ok {
		return
	}

	var payload shared.MovePayload
	if err := json.Unmarshal(request.Payload, &payload); err != nil {
		return
	}

	if room := server.Rooms.Get(payload.RoomID); room != nil {
		room.MakeMove(username, payload.Position)
	}
}

func HandleSendMessage(server *models.Server, request shared.Request, nc *nats.Conn, msg *nats.Msg) {
	username, ok := server.Presence.UsernameOf(request.ClientID)
	if !ok {
		return
	}

	var payload shared.ChatPayload
	if err := json.Unmarshal(request.Payload, &payload); err != nil {
		return
	}

	if room := server.Rooms.Get(payload.RoomID); room != nil {
		room.Relay(username, payload.Message)
	}
}

func HandleRequestRematch(server *models.Server, request shared.Request, nc *nats.Conn, msg *nats.Msg) {
	username, ok := server.Presence.UsernameOf(request.ClientID)
	if !ok {
		return
	}

	var payload shared.RematchPayload
	if err := json.Unmarshal(request.Payload, &payload); err != nil {
		return
	}

	if room := server.Rooms.Get(payload.RoomID); room != nil {
		room.RequestRematch(username)
	}
}

func HandleRespondRematch(server *models.Server, request shared.Request, nc *nats.Conn, msg *nats.Msg) {
	username, ok := server.Presence.UsernameOf(request.ClientID)
	if !ok {
		return
	}

	var payload shared.RematchResponsePayload
	if err := json.Unmarshal(request.Payload, &payload); err != nil {
		return
	}

	if room := server.Rooms.Get(payload.RoomID); room != nil {
		room.RespondRematch(username, payload.Accepted)
	}
}

func HandleLeaveGame(server *models.Server, request shared.Request, nc *nats.Conn, msg *nats.Msg) {
	username, ok := server.Presence.UsernameOf(request.ClientID)
	if !ok {
		return
	}

	var payload shared.LeavePayload
	if err := json.Unmarshal(request.Payload, &payload); err != nil {
		return
	}

	server.Rooms.Leave(payload.RoomID, username)
}
