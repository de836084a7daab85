package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"velha/server/models"
	"velha/server/notifier"
	"velha/shared"

	"github.com/golang-jwt/jwt/v5"
	"github.com/nats-io/nats.go"
)

// Clientes sem heartbeat há mais que isso são considerados caídos
const (
	heartbeatMaxIdle  = 30 * time.Second
	heartbeatInterval = 10 * time.Second
)

func mustMarshal(v any) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}

// reply responde via request/reply quando o cliente pediu resposta
func reply(nc *nats.Conn, msg *nats.Msg, resp shared.Response) {
	if nc == nil || msg == nil || msg.Reply == "" {
		return
	}
	data, _ := json.Marshal(resp)
	nc.Publish(msg.Reply, data)
}

func replyOK(nc *nats.Conn, msg *nats.Msg, action string, data any) {
	resp := shared.Response{Status: "success", Action: action}
	if data != nil {
		resp.Data = mustMarshal(data)
	}
	reply(nc, msg, resp)
}

func replyError(nc *nats.Conn, msg *nats.Msg, action, errText string) {
	reply(nc, msg, shared.Response{Status: "error", Action: action, Error: errText})
}

// broadcastOnline manda o retrato de quem está online para todo mundo
func broadcastOnline(server *models.Server, snapshot []shared.OnlineUser) {
	notifier.PublishAll(server.Nc, server.Presence.Clients(), shared.EventOnlineUsers, "", snapshot)
}

// HandleAuthenticate valida o token, carrega o retrato do usuário e o
// registra como online
func HandleAuthenticate(server *models.Server, request shared.Request, nc *nats.Conn, msg *nats.Msg) {
	var payload shared.AuthPayload
	if err := json.Unmarshal(request.Payload, &payload); err != nil {
		replyError(nc, msg, "AUTH_FAIL", "payload inválido")
		return
	}

	token, err := jwt.Parse(payload.Token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("alg inesperado: %v", t.Header["alg"])
		}
		return server.JWTSecret, nil
	})
	if err != nil || !token.Valid {
		log.Printf("Token inválido do cliente %s: %v", request.ClientID, err)
		replyError(nc, msg, "AUTH_FAIL", "Token inválido")
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		replyError(nc, msg, "AUTH_FAIL", "Token inválido")
		return
	}
	username, _ := claims["username"].(string)
	if username == "" {
		replyError(nc, msg, "AUTH_FAIL", "Token sem usuário")
		return
	}

	user, err := server.Store.GetUser(username)
	if err != nil {
		log.Printf("Usuário do token não encontrado: %s", username)
		replyError(nc, msg, "AUTH_FAIL", "Usuário não encontrado")
		return
	}

	snapshot := server.Presence.Register(username, request.ClientID)
	log.Printf("Usuário '%s' autenticado com ClientID '%s'", username, request.ClientID)

	replyOK(nc, msg, shared.ActionAuthenticate, user)
	broadcastOnline(server, snapshot)
}

// HandleLogout desconecta o cliente explicitamente
func HandleLogout(server *models.Server, request shared.Request, nc *nats.Conn, msg *nats.Msg) {
	Disconnect(server, request.ClientID)
	replyOK(nc, msg, shared.ActionLogout, nil)
}

// HandleHeartbeat renova a presença do cliente
func HandleHeartbeat(server *models.Server, request shared.Request, nc *nats.Conn, msg *nats.Msg) {
	if server.Presence.Touch(request.ClientID) {
		replyOK(nc, msg, shared.ActionHeartbeat, nil)
	}
}

// HandleUpdateAvatar persiste o avatar escolhido
func HandleUpdateAvatar(server *models.Server, request shared.Request, nc *nats.Conn, msg *nats.Msg) {
	username, ok := server.Presence.UsernameOf(request.ClientID)
	if !ok {
		return
	}

	var payload shared.AvatarPayload
	if err := json.Unmarshal(request.Payload, &payload); err != nil {
		return
	}

	if err := server.Store.UpdateAvatar(username, payload.Avatar); err != nil {
		log.Printf("Erro ao salvar avatar de %s: %v", username, err)
		replyError(nc, msg, shared.ActionUpdateAvatar, "Erro ao salvar avatar")
		return
	}
	notifier.Publish(server.Nc, request.ClientID, shared.EventAvatarUpdated, "", payload.Avatar)
	replyOK(nc, msg, shared.ActionUpdateAvatar, nil)
}

// Disconnect tira o cliente de tudo: presença, fila e sala ativa.
// Vale tanto para o LOGOUT quanto para o heartbeat que parou.
func Disconnect(server *models.Server, clientID string) {
	username, snapshot := server.Presence.Unregister(clientID)
	if username != "" {
		server.Matchmaking.Cancel(username)
		if room := server.Rooms.FindByUser(username); room != nil {
			server.Rooms.Leave(room.ID, username)
		}
		log.Printf("Usuário '%s' desconectado", username)
	}
	broadcastOnline(server, snapshot)
}

// StartHeartbeatMonitor derruba clientes que pararam de dar sinal
func StartHeartbeatMonitor(server *models.Server) {
	go func() {
		ticker := time.NewTicker(heartbeatInterval)
		defer ticker.Stop()
		for range ticker.C {
			for _, clientID := range server.Presence.StaleClients(heartbeatMaxIdle) {
				log.Printf("Cliente %s sem heartbeat, removendo", clientID)
				Disconnect(server, clientID)
			}
		}
	}()
}
