package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"moodtown/internal/llm"
)

// maxChatHistoryTurns limita cuántos turnos previos entran al prompt.
const maxChatHistoryTurns = 10

// ChatHistoryStore guarda el historial de chat por usuario y fecha.
type ChatHistoryStore interface {
	Append(ctx context.Context, userID, date string, msg llm.Message) error
	History(ctx context.Context, userID, date string) ([]llm.Message, error)
}

type memoryChatHistoryStore struct {
	mu    sync.Mutex
	items map[string][]llm.Message
}

func NewMemoryChatHistoryStore() ChatHistoryStore {
	return &memoryChatHistoryStore{
		items: make(map[string][]llm.Message),
	}
}

func chatHistoryKey(userID, date string) string {
	if date == "" {
		date = "default"
	}
	return userID + ":" + date
}

func (s *memoryChatHistoryStore) Append(_ context.Context, userID, date string, msg llm.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := chatHistoryKey(userID, date)
	history := append(s.items[key], msg)
	if len(history) > maxChatHistoryTurns {
		history = history[len(history)-maxChatHistoryTurns:]
	}
	s.items[key] = history
	return nil
}

func (s *memoryChatHistoryStore) History(_ context.Context, userID, date string) ([]llm.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	history := s.items[chatHistoryKey(userID, date)]
	out := make([]llm.Message, len(history))
	copy(out, history)
	return out, nil
}

type redisChatHistoryStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisChatHistoryStore guarda el historial en una lista de Redis con TTL,
// recortada a los últimos turnos en cada escritura.
func NewRedisChatHistoryStore(client *redis.Client, ttl time.Duration) ChatHistoryStore {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &redisChatHistoryStore{
		client: client,
		prefix: "chat:history:",
		ttl:    ttl,
	}
}

func (s *redisChatHistoryStore) Append(ctx context.Context, userID, date string, msg llm.Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	key := s.prefix + chatHistoryKey(userID, date)
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key, payload)
	pipe.LTrim(ctx, key, int64(-maxChatHistoryTurns), -1)
	pipe.Expire(ctx, key, s.ttl)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *redisChatHistoryStore) History(ctx context.Context, userID, date string) ([]llm.Message, error) {
	key := s.prefix + chatHistoryKey(userID, date)
	raw, err := s.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	history := make([]llm.Message, 0, len(raw))
	for _, item := range raw {
		var msg llm.Message
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			continue
		}
		history = append(history, msg)
	}
	return history, nil
}
