package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/casepix/casepix-backend/internal/app/model"
	"github.com/casepix/casepix-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const cartKeyPrefix = "cart:session:"

// CartRepository stores session carts as JSON documents with a sliding TTL.
// A missing document reads as an empty cart, never as an error.
type CartRepository interface {
	Get(ctx context.Context, sessionID string) (*model.Cart, error)
	Save(ctx context.Context, cart *model.Cart) error
	Delete(ctx context.Context, sessionID string) error
}

type cartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCartRepository(client *redis.Client, ttl time.Duration) CartRepository {
	return &cartRepository{client: client, ttl: ttl}
}

func cartKey(sessionID string) string {
	return cartKeyPrefix + sessionID
}

func (r *cartRepository) Get(ctx context.Context, sessionID string) (*model.Cart, error) {
	data, err := r.client.Get(ctx, cartKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return &model.Cart{SessionID: sessionID, Items: []model.CartItem{}}, nil
	}
	if err != nil {
		logger.Error("Failed to read cart from session store", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return nil, fmt.Errorf("read cart: %w", err)
	}

	var cart model.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		// A corrupt document is unrecoverable; start the session over.
		logger.Warn("Discarding malformed cart document", map[string]interface{}{
			"session_id": sessionID,
		})
		return &model.Cart{SessionID: sessionID, Items: []model.CartItem{}}, nil
	}
	cart.SessionID = sessionID
	if cart.Items == nil {
		cart.Items = []model.CartItem{}
	}
	return &cart, nil
}

func (r *cartRepository) Save(ctx context.Context, cart *model.Cart) error {
	cart.UpdatedAt = time.Now()

	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}

	if err := r.client.Set(ctx, cartKey(cart.SessionID), data, r.ttl).Err(); err != nil {
		logger.Error("Failed to write cart to session store", err, map[string]interface{}{
			"session_id": cart.SessionID,
			"item_count": len(cart.Items),
		})
		return fmt.Errorf("write cart: %w", err)
	}
	return nil
}

func (r *cartRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		logger.Error("Failed to delete cart from session store", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}
