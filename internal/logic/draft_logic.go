package logic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alphadeveloper12/Link-Up-sub000/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ProjectDraft the intake form field set saved before sign-up. The field
// names are the persisted contract; a claimed draft round-trips through
// CreateProjectRequest untouched.
type ProjectDraft struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Industry    string   `json:"industry"`
	Skills      []string `json:"skills"`
	Timeline    string   `json:"timeline"`
	Budget      string   `json:"budget"`
}

// DraftStore keyed draft persistence with TTL. Backed by redis in
// production.
type DraftStore interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
	Del(ctx context.Context, key string) error
}

// RedisDraftStore DraftStore over go-redis
type RedisDraftStore struct {
	rdb *redis.Client
}

func NewRedisDraftStore(rdb *redis.Client) *RedisDraftStore {
	return &RedisDraftStore{rdb: rdb}
}

func (s *RedisDraftStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.rdb.Set(ctx, key, value, ttl).Err()
}

func (s *RedisDraftStore) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrDraftExpired
	}
	return b, err
}

func (s *RedisDraftStore) Del(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}

// DraftLogic saves intake drafts for unauthenticated visitors and hands
// back a signed claim token that survives the sign-up redirect. Nothing is
// written to the projects table until the draft is claimed and submitted.
type DraftLogic struct {
	store DraftStore
	cfg   config.AuthConfig
}

// NewDraftLogic creates the draft business logic.
func NewDraftLogic(store DraftStore, cfg config.AuthConfig) *DraftLogic {
	return &DraftLogic{store: store, cfg: cfg}
}

func (d *DraftLogic) ttl() time.Duration {
	hours := d.cfg.DraftTTLHours
	if hours == 0 {
		hours = 48
	}
	return time.Duration(hours) * time.Hour
}

// Save stores the draft and returns the signed claim token.
func (d *DraftLogic) Save(ctx context.Context, draft *ProjectDraft) (string, error) {
	if draft.Name == "" {
		return "", validationError("draft name is required")
	}

	payload, err := json.Marshal(draft)
	if err != nil {
		return "", err
	}

	draftId := uuid.NewString()
	if err := d.store.Set(ctx, draftKey(draftId), payload, d.ttl()); err != nil {
		return "", fmt.Errorf("failed to store draft: %w", err)
	}

	claims := jwt.MapClaims{
		"draft_id": draftId,
		"exp":      time.Now().Add(d.ttl()).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(d.cfg.JWTSecret))
}

// Claim validates the token, returns the draft and deletes it. A second
// claim of the same token fails with ErrDraftExpired.
func (d *DraftLogic) Claim(ctx context.Context, tokenStr string) (*ProjectDraft, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(d.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrDraftExpired
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrDraftExpired
	}
	draftId, ok := claims["draft_id"].(string)
	if !ok || draftId == "" {
		return nil, ErrDraftExpired
	}

	payload, err := d.store.Get(ctx, draftKey(draftId))
	if err != nil {
		return nil, err
	}

	var draft ProjectDraft
	if err := json.Unmarshal(payload, &draft); err != nil {
		return nil, err
	}

	if err := d.store.Del(ctx, draftKey(draftId)); err != nil {
		return nil, err
	}

	return &draft, nil
}

func draftKey(id string) string {
	return "draft:project:" + id
}
