package notifier

import (
	"encoding/json"
	"fmt"
	"log"

	"velha/shared"

	"github.com/nats-io/nats.go"
)

// ClientTopic devolve o tópico de inbox de um cliente
func ClientTopic(clientID string) string {
	return fmt.Sprintf("client.%s.inbox", clientID)
}

// Publish envia um evento nomeado para o inbox de um cliente.
// Conexão nula é tolerada para os testes rodarem sem NATS.
func Publish(nc *nats.Conn, clientID, eventType, from string, payload any) {
	if nc == nil {
		return
	}

	var raw json.RawMessage
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			log.Printf("[Notifier] Erro ao serializar payload de %s: %v", eventType, err)
			return
		}
		raw = data
	}

	msg := shared.GameMessage{
		Type: eventType,
		From: from,
		Data: raw,
	}
	msgBytes, err := json.Marshal(msg)
	if err != nil {
		log.Printf("[Notifier] Erro ao serializar GameMessage: %v", err)
		return
	}

	if err := nc.Publish(ClientTopic(clientID), msgBytes); err != nil {
		log.Printf("[Notifier] Erro ao publicar para %s: %v", clientID, err)
	}
}

// PublishAll envia o mesmo evento para vários clientes
func PublishAll(nc *nats.Conn, clientIDs []string, eventType, from string, payload any) {
	for _, id := range clientIDs {
		Publish(nc, id, eventType, from, payload)
	}
}
