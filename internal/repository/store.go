package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// maxUpdateRetries bounds how often an update is replayed after another writer touched the key.
const maxUpdateRetries = 50

var ErrUpdateConflict = errors.New("too many concurrent updates")

// jsonStore keeps values of one kind as JSON strings under "<prefix>:<id>".
type jsonStore[T any] struct {
	client   *redis.Client
	prefix   string
	kind     string
	notFound error

	// drop reports that an updated value has to be removed instead of saved
	drop func(v *T) bool
}

func (that *jsonStore[T]) key(id string) string {
	return that.prefix + ":" + id
}

func (that *jsonStore[T]) set(ctx context.Context, id string, v *T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("could not marshal %s: %w", that.kind, err)
	}

	if err = that.client.Set(ctx, that.key(id), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", that.kind, err)
	}

	return nil
}

func (that *jsonStore[T]) get(ctx context.Context, id string) (*T, error) {
	return that.load(ctx, that.client, id)
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (that *jsonStore[T]) load(ctx context.Context, cmd getter, id string) (*T, error) {
	response, err := cmd.Get(ctx, that.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, that.notFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get %s by id: %w", that.kind, err)
	}

	var v T
	if err = json.Unmarshal(response, &v); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", that.kind, err)
	}

	return &v, nil
}

func (that *jsonStore[T]) delete(ctx context.Context, id string) error {
	deleted, err := that.client.Del(ctx, that.key(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete %s by id: %w", that.kind, err)
	}

	if deleted == 0 {
		return that.notFound
	}

	return nil
}

// update - reads the value under WATCH, applies fn and writes the result in a MULTI block.
// The whole read-modify-write is replayed when the key changed in between.
// When fn fails nothing is written and the value fn saw is returned with its error.
func (that *jsonStore[T]) update(ctx context.Context, id string, fn func(v *T) error) (*T, error) {
	key := that.key(id)

	var result *T
	txf := func(tx *redis.Tx) error {
		v, err := that.load(ctx, tx, id)
		if err != nil {
			return err
		}

		result = v
		if err = fn(v); err != nil {
			return err
		}

		if that.drop != nil && that.drop(v) {
			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Del(ctx, key)
				return nil
			})
			return err
		}

		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("could not marshal %s: %w", that.kind, err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		return err
	}

	for range maxUpdateRetries {
		result = nil

		err := that.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}

		if err != nil {
			return result, err
		}

		return result, nil
	}

	return nil, fmt.Errorf("%s %s: %w", that.kind, id, ErrUpdateConflict)
}
