package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/plantlady/plantlady-api/internal/config"
	"github.com/plantlady/plantlady-api/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidPIN   = errors.New("invalid PIN")
)

// AuthService verifies household PINs and issues session tokens. The
// hash scheme is opaque to everything else; callers only see a user
// and a token.
type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

// Login checks the PIN against every user's hash and returns the
// matching user plus a signed JWT. The user set is a small fixed
// household, so scanning all rows is fine.
func (s *AuthService) Login(pin string) (*models.User, string, error) {
	if len(pin) != 4 || !isDigits(pin) {
		return nil, "", ErrInvalidPIN
	}

	var users []models.User
	if err := s.db.Find(&users).Error; err != nil {
		return nil, "", fmt.Errorf("failed to load users: %w", err)
	}

	for i := range users {
		if bcrypt.CompareHashAndPassword([]byte(users[i].PINHash), []byte(pin)) == nil {
			token, err := s.generateToken(&users[i])
			if err != nil {
				return nil, "", err
			}
			return &users[i], token, nil
		}
	}
	return nil, "", ErrInvalidPIN
}

func (s *AuthService) ListUsers() ([]models.User, error) {
	var users []models.User
	if err := s.db.Order("id ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *AuthService) GetUser(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}

func (s *AuthService) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  strconv.FormatUint(uint64(user.ID), 10),
		"name": user.Name,
		"exp":  time.Now().Add(s.cfg.JWTExpiry).Unix(),
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
