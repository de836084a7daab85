package storage

import (
	"errors"
	"time"

	"velha/shared"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	ErrUsernameTaken      = errors.New("usuário já existe")
	ErrInvalidCredentials = errors.New("credenciais inválidas")
)

// User é o registro persistido de cada jogador
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;not null"`
	PasswordHash []byte `gorm:"not null"`
	Wins         int    `gorm:"not null;default:0"`
	Losses       int    `gorm:"not null;default:0"`
	Draws        int    `gorm:"not null;default:0"`
	Avatar       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Store struct {
	DB *gorm.DB
}

// Open conecta no Postgres e garante o schema
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&User{}); err != nil {
		return nil, err
	}
	return &Store{DB: db}, nil
}

func toInfo(u User) shared.UserInfo {
	return shared.UserInfo{
		Username: u.Username,
		Wins:     u.Wins,
		Losses:   u.Losses,
		Draws:    u.Draws,
		Avatar:   u.Avatar,
	}
}

// Register cria a conta com a senha hasheada
func (s *Store) Register(username, password string) error {
	var count int64
	if err := s.DB.Model(&User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.DB.Create(&User{Username: username, PasswordHash: hash}).Error
}

// Login confere a senha e devolve o retrato do usuário
func (s *Store) Login(username, password string) (shared.UserInfo, error) {
	var u User
	if err := s.DB.First(&u, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shared.UserInfo{}, ErrInvalidCredentials
		}
		return shared.UserInfo{}, err
	}
	if bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)) != nil {
		return shared.UserInfo{}, ErrInvalidCredentials
	}
	return toInfo(u), nil
}

func (s *Store) GetUser(username string) (shared.UserInfo, error) {
	var u User
	if err := s.DB.First(&u, "username = ?", username).Error; err != nil {
		return shared.UserInfo{}, err
	}
	return toInfo(u), nil
}

func (s *Store) UpdateAvatar(username, avatar string) error {
	return s.DB.Model(&User{}).Where("username = ?", username).
		Update("avatar", avatar).Error
}

func (s *Store) RecordWin(username string) error {
	return s.DB.Model(&User{}).Where("username = ?", username).
		Update("wins", gorm.Expr("wins + 1")).Error
}

func (s *Store) RecordLoss(username string) error {
	return s.DB.Model(&User{}).Where("username = ?", username).
		Update("losses", gorm.Expr("losses + 1")).Error
}

func (s *Store) RecordDraw(username string) error {
	return s.DB.Model(&User{}).Where("username = ?", username).
		Update("draws", gorm.Expr("draws + 1")).Error
}

// LeaderboardTop devolve os n melhores por vitórias
func (s *Store) LeaderboardTop(n int) ([]shared.UserInfo, error) {
	var users []User
	if err := s.DB.Order("wins DESC").Limit(n).Find(&users).Error; err != nil {
		return nil, err
	}
	out := make([]shared.UserInfo, len(users))
	for i, u := range users {
		out[i] = toInfo(u)
	}
	return out, nil
}
