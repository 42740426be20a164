package session

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mediavault/mediavault/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrNoSession = errors.New("no active session")

// User is the snapshot stored on the session row and handed to handlers.
type User struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Store persists sessions in the database, keyed by an opaque random token.
// Multiple devices may hold independent sessions for the same user.
type Store struct {
	db  *gorm.DB
	ttl time.Duration
}

func NewStore(gdb *gorm.DB, ttl time.Duration) *Store {
	return &Store{db: gdb, ttl: ttl}
}

// Create persists a new session and returns its token.
func (s *Store) Create(user User) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}

	data, err := json.Marshal(user)
	if err != nil {
		return "", fmt.Errorf("failed to encode session data: %w", err)
	}

	sess := models.Session{
		Token:     token,
		UserID:    user.ID,
		Data:      datatypes.JSON(data),
		ExpiresAt: time.Now().Add(s.ttl),
	}

	if err := s.db.Create(&sess).Error; err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	return token, nil
}

// Get resolves a token to its user snapshot. Expired rows are deleted lazily
// and reported as ErrNoSession.
func (s *Store) Get(token string) (User, error) {
	var sess models.Session

	err := s.db.Where("token = ?", token).First(&sess).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return User{}, ErrNoSession
		}
		return User{}, err
	}

	if time.Now().After(sess.ExpiresAt) {
		s.db.Delete(&sess)
		return User{}, ErrNoSession
	}

	var user User
	if err := json.Unmarshal(sess.Data, &user); err != nil {
		return User{}, fmt.Errorf("failed to decode session data: %w", err)
	}

	return user, nil
}

// Destroy removes a session. Destroying an unknown token is not an error.
func (s *Store) Destroy(token string) error {
	return s.db.Where("token = ?", token).Delete(&models.Session{}).Error
}

// DestroyOthers removes every session of a user except keepToken. Used after
// a password change so stolen sessions do not outlive the old password.
func (s *Store) DestroyOthers(userID uint, keepToken string) error {
	return s.db.
		Where("user_id = ? AND token <> ?", userID, keepToken).
		Delete(&models.Session{}).Error
}

func newToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("crypto/rand failure: %w", err)
	}
	return hex.EncodeToString(b), nil
}
