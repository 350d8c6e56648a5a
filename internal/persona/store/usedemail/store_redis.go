package usedemail

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"persona/internal/persona/models"
	id "persona/pkg/domain"
	"persona/pkg/platform/sentinel"
	"persona/pkg/requestcontext"
)

const usedEmailKeyPrefix = "usedemail:"

// Redis is a ledger for deployments that keep the reservation set in Redis.
// SETNX gives the atomic insert-if-absent; keys carry no TTL because the
// ledger is append-only by design.
type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (s *Redis) Reserve(ctx context.Context, email string, owner id.UserID) error {
	entry := models.UsedEmail{
		Email:      email,
		OwnerID:    owner,
		ReservedAt: requestcontext.Now(ctx),
	}
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal used email: %w", err)
	}

	set, err := s.client.SetNX(ctx, usedEmailKeyPrefix+email, payload, 0).Result()
	if err != nil {
		return fmt.Errorf("reserve used email: %w", err)
	}
	if set {
		return nil
	}

	existing, err := s.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("load used email holder: %w", err)
	}
	if existing.OwnerID == owner {
		return nil
	}
	return sentinel.ErrAlreadyUsed
}

func (s *Redis) FindByEmail(ctx context.Context, email string) (*models.UsedEmail, error) {
	payload, err := s.client.Get(ctx, usedEmailKeyPrefix+email).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find used email: %w", err)
	}
	var entry models.UsedEmail
	if err := json.Unmarshal(payload, &entry); err != nil {
		return nil, fmt.Errorf("decode used email: %w", err)
	}
	return &entry, nil
}
