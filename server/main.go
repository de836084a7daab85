package main

import (
	"log"
	"os"

	"velha/server/api"
	"velha/server/handlers"
	"velha/server/models"
	"velha/server/pubSub"
	"velha/server/storage"
	"velha/server/utils"

	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Sem arquivo .env, lendo variáveis de ambiente direto")
	}

	ip, err := utils.LocalIP()
	if err != nil {
		log.Printf("Não foi possível detectar IP: %v", err)
		ip = "127.0.0.1"
	}
	log.Println("IP detectado:", ip)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8001"
	}

	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		natsURL = nats.DefaultURL
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL não configurada")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Println("JWT_SECRET não configurada, usando segredo de desenvolvimento")
		secret = "velha-dev-secret"
	}

	store, err := storage.Open(dsn)
	if err != nil {
		log.Fatalf("Erro ao conectar no banco: %v", err)
	}

	server := models.NewServer([]byte(secret), store)

	nc, err := pubSub.StartNats(server, natsURL)
	if err != nil {
		log.Fatalf("Erro NATS: %v", err)
	}
	defer nc.Drain()

	storage.StartStatsWorker(store, server.Rooms.Stats)
	handlers.StartHeartbeatMonitor(server)

	sched, err := api.StartSweeper(server)
	if err != nil {
		log.Fatalf("Erro ao iniciar sweeper: %v", err)
	}
	defer func() { _ = sched.Shutdown() }()

	app := api.New(store, []byte(secret))
	log.Printf("Servidor pronto: HTTP na porta %s, NATS em %s", port, natsURL)
	log.Fatal(app.Listen(":" + port))
}
