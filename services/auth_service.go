package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"quizhub/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrSessionNotFound    = errors.New("session not found")
	ErrUserNotFound       = errors.New("user not found")
)

const SessionTTL = 7 * 24 * time.Hour

type AuthService struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewAuthService(db *gorm.DB, redisClient *redis.Client) *AuthService {
	return &AuthService{db: db, redis: redisClient}
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=30"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UserInfo struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

func (s *AuthService) Register(req *RegisterRequest) (*models.User, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Where("username = ?", req.Username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     req.Username,
		PasswordHash: string(hash),
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (s *AuthService) Login(req *LoginRequest) (*models.User, error) {
	var user models.User
	err := s.db.Where("username = ?", req.Username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

func (s *AuthService) GetUserByID(userID uint) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *AuthService) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	err := s.db.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers returns every registered user for the message/share recipient
// pickers. No pagination or visibility filtering; fine at this scale but a
// known limitation for anything bigger.
func (s *AuthService) ListUsers() ([]UserInfo, error) {
	var users []models.User
	if err := s.db.Order("username").Find(&users).Error; err != nil {
		return nil, err
	}

	infos := make([]UserInfo, 0, len(users))
	for _, user := range users {
		infos = append(infos, UserInfo{ID: user.ID, Username: user.Username})
	}
	return infos, nil
}

// Sessions live in Redis under session:<uuid> with a sliding TTL, so a
// restart of the API server does not log everyone out.

func (s *AuthService) CreateSession(ctx context.Context, userID uint) (string, error) {
	sessionID := uuid.NewString()
	key := sessionKey(sessionID)
	if err := s.redis.Set(ctx, key, strconv.FormatUint(uint64(userID), 10), SessionTTL).Err(); err != nil {
		return "", err
	}
	return sessionID, nil
}

func (s *AuthService) GetSession(ctx context.Context, sessionID string) (uint, error) {
	value, err := s.redis.Get(ctx, sessionKey(sessionID)).Result()
	if err == redis.Nil {
		return 0, ErrSessionNotFound
	}
	if err != nil {
		return 0, err
	}

	userID, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, ErrSessionNotFound
	}

	// Sliding expiry: an active user stays logged in.
	s.redis.Expire(ctx, sessionKey(sessionID), SessionTTL)

	return uint(userID), nil
}

func (s *AuthService) DeleteSession(ctx context.Context, sessionID string) error {
	return s.redis.Del(ctx, sessionKey(sessionID)).Err()
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}
