package api

import (
	"errors"
	"log"
	"time"

	"velha/server/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/golang-jwt/jwt/v5"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// New monta a API HTTP de conta: registro, login (emite o token usado
// no AUTHENTICATE via NATS) e leaderboard
func New(store *storage.Store, jwtSecret []byte) *fiber.App {
	app := fiber.New()
	app.Use(cors.New())

	app.Post("/api/register", func(c *fiber.Ctx) error {
		var body credentials
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "JSON inválido"})
		}
		if body.Username == "" || body.Password == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "usuário e senha são obrigatórios"})
		}

		if err := store.Register(body.Username, body.Password); err != nil {
			if errors.Is(err, storage.ErrUsernameTaken) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Usuário já existe"})
			}
			log.Printf("[API] Erro ao registrar %s: %v", body.Username, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "erro interno"})
		}
		return c.JSON(fiber.Map{"message": "Usuário registrado com sucesso"})
	})

	app.Post("/api/login", func(c *fiber.Ctx) error {
		var body credentials
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "JSON inválido"})
		}

		user, err := store.Login(body.Username, body.Password)
		if err != nil {
			if errors.Is(err, storage.ErrInvalidCredentials) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Credenciais inválidas"})
			}
			log.Printf("[API] Erro no login de %s: %v", body.Username, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "erro interno"})
		}

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"username": user.Username,
			"iat":      time.Now().Unix(),
		})
		signed, err := token.SignedString(jwtSecret)
		if err != nil {
			log.Printf("[API] Erro ao assinar token: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "erro interno"})
		}

		return c.JSON(fiber.Map{"token": signed, "user": user})
	})

	app.Get("/api/leaderboard", func(c *fiber.Ctx) error {
		top, err := store.LeaderboardTop(10)
		if err != nil {
			log.Printf("[API] Erro no leaderboard: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "erro interno"})
		}
		return c.JSON(top)
	})

	return app
}
