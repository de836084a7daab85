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

// HandleSendChallenge cria o convite e avisa o alvo. Alvo offline:
// descarte silencioso, a UI do desafiante segue como está.
func HandleSendChallenge(server *models.Server, request shared.Request, nc *nats.Conn, msg *nats.Msg) {
	challenger, ok := server.Presence.UsernameOf(request.ClientID)
	if !ok {
		return
	}

	var payload shared.ChallengePayload
	if err := json.Unmarshal(request.Payload, &payload); err != nil {
		return
	}

	targetClient, online := server.Presence.Find(payload.TargetUsername)
	if !online || payload.TargetUsername == challenger {
		return
	}

	ch := server.Challenges.Create(challenger, payload.TargetUsername, payload.Symbol, request.ClientID)
	log.Printf("Desafio %s: %s -> %s", ch.ID, challenger, payload.TargetUsername)

	notifier.Publish(server.Nc, targetClient, shared.EventChallengeReceived, challenger, shared.ChallengeReceivedData{
		ChallengeID: ch.ID,
		Challenger:  challenger,
	})
}

// HandleRespondChallenge resolve o convite. Aceite vira sala jogando
// direto, com a primeira vez sorteada (sem RPS neste caminho).
func HandleRespondChallenge(server *models.Server, request shared.Request, nc *nats.Conn, msg *nats.Msg) {
	responder, ok := server.Presence.UsernameOf(request.ClientID)
	if !ok {
		return
	}

	var payload shared.ChallengeResponsePayload
	if err := json.Unmarshal(request.Payload, &payload); err != nil {
		return
	}

	ch, ok := server.Challenges.Get(payload.ChallengeID)
	if !ok {
		// convite já consumido ou expirado
		return
	}
	if ch.Challenged != responder {
		return
	}

	challengerClient, online := server.Presence.Find(ch.Challenger)

	if !payload.Accepted {
		server.Challenges.Delete(ch.ID)
		if online {
			notifier.Publish(server.Nc, challengerClient, shared.EventChallengeDeclined, responder, nil)
		}
		return
	}

	if !online {
		// desafiante caiu enquanto o convite esperava
		server.Challenges.Delete(ch.ID)
		return
	}

	if payload.Symbol == ch.ChallengerSymbol {
		// símbolo repetido: só quem respondeu fica sabendo, o convite continua de pé
		notifier.Publish(server.Nc, request.ClientID, shared.EventSymbolTaken, "", payload.Symbol)
		return
	}

	server.Challenges.Delete(ch.ID)
	server.Rooms.CreatePlaying(
		game.Seat{Username: ch.Challenger, ClientID: challengerClient, Symbol: ch.ChallengerSymbol},
		game.Seat{Username: responder, ClientID: request.ClientID, Symbol: payload.Symbol},
	)
}
