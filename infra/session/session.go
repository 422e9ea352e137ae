package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/kdrnck/msgsudot-nye/domain"
)

const sessionTTL = 24 * time.Hour

// SessionManager, oturum token'ı -> oyuncu id eşlemesini Redis'te tutar.
// Kimlik, ambient storage'dan okunmaz; her istekte çözülür ve engine
// çağrılarına açık bir değer olarak taşınır.
type SessionManager struct {
	client *redis.Client
}

func NewSessionManager(redisAddr string, password string, db int) (*SessionManager, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	log.Println("Connected to session Redis successfully")

	return &SessionManager{client: client}, nil
}

func (sm *SessionManager) GetRedisClient() *redis.Client {
	return sm.client
}

// CreateSession, oyuncu için yeni bir oturum token'ı üretir.
func (sm *SessionManager) CreateSession(ctx context.Context, playerID uuid.UUID) (string, error) {
	token := uuid.NewString()
	key := sessionKey(token)

	if err := sm.client.Set(ctx, key, playerID.String(), sessionTTL).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	return token, nil
}

// ResolveSession, token'dan oyuncu kimliğini çözer ve TTL'i yeniler.
func (sm *SessionManager) ResolveSession(ctx context.Context, token string) (uuid.UUID, error) {
	if token == "" {
		return uuid.Nil, domain.ErrUnauthorized
	}

	key := sessionKey(token)
	value, err := sm.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, domain.ErrUnauthorized
		}
		return uuid.Nil, fmt.Errorf("failed to resolve session: %w", err)
	}

	playerID, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("corrupt session value: %w", err)
	}

	sm.client.Expire(ctx, key, sessionTTL)
	return playerID, nil
}

func (sm *SessionManager) DeleteSession(ctx context.Context, token string) error {
	return sm.client.Del(ctx, sessionKey(token)).Err()
}

func sessionKey(token string) string {
	return "session:" + token
}
