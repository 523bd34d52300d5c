package cart

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
)

const (
	redisCartPrefix = "sevenmenu:cart:"
	cartTTL         = 48 * time.Hour
	txRetries       = 5
)

// RedisStore serializes carts to JSON under one key per visitor session.
// Mutations run a WATCH transaction so two tabs of the same visitor cannot
// interleave a read-modify-write.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) GetCart(ctx context.Context, sessionID string) (Cart, error) {
	data, err := s.client.Get(ctx, redisCartPrefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Cart{}, nil
		}
		return Cart{}, errors.Wrap(err, "redis get cart")
	}
	var c Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return Cart{}, errors.Wrap(err, "decode cart")
	}
	return c, nil
}

func (s *RedisStore) AddItem(ctx context.Context, sessionID string, item LineItem) error {
	return s.mutate(ctx, sessionID, func(c *Cart) {
		c.AddItem(item)
	})
}

func (s *RedisStore) RemoveItem(ctx context.Context, sessionID, productID string) error {
	return s.mutate(ctx, sessionID, func(c *Cart) {
		c.RemoveItem(productID)
	})
}

func (s *RedisStore) UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) error {
	return s.mutate(ctx, sessionID, func(c *Cart) {
		c.UpdateQuantity(productID, quantity)
	})
}

func (s *RedisStore) EmptyCart(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, redisCartPrefix+sessionID).Err(); err != nil {
		return errors.Wrap(err, "redis del cart")
	}
	return nil
}

func (s *RedisStore) mutate(ctx context.Context, sessionID string, fn func(*Cart)) error {
	key := redisCartPrefix + sessionID

	txn := func(tx *redis.Tx) error {
		var c Cart
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if len(data) > 0 {
			if err := json.Unmarshal(data, &c); err != nil {
				return errors.Wrap(err, "decode cart")
			}
		}

		fn(&c)

		encoded, err := json.Marshal(&c)
		if err != nil {
			return errors.Wrap(err, "encode cart")
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, encoded, cartTTL)
			return nil
		})
		return err
	}

	var err error
	for i := 0; i < txRetries; i++ {
		err = s.client.Watch(ctx, txn, key)
		if !errors.Is(err, redis.TxFailedErr) {
			break
		}
	}
	if err != nil {
		return errors.Wrap(err, "redis cart mutation")
	}
	return nil
}
