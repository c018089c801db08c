package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/m04kA/SMC-BarberSlots/internal/domain"
)

const (
	backendRedis = "redis"

	// версия ключа живет дольше любой загрузки и обновляется при каждой инвалидации
	versionTTL = 48 * time.Hour
)

// Redis кэш занятых интервалов, общий для нескольких инстансов сервиса
type Redis struct {
	client   redis.UniversalClient
	ttl      time.Duration
	recorder Recorder
	logger   Logger

	group singleflight.Group
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// NewRedis создает новый кэш поверх Redis
func NewRedis(client redis.UniversalClient, ttl time.Duration, recorder Recorder, logger Logger) *Redis {
	if ttl <= 0 {
		ttl = domain.DefaultUnavailableCacheTTL
	}
	return &Redis{
		client:   client,
		ttl:      ttl,
		recorder: recorder,
		logger:   logger,
	}
}

// GetOrLoad возвращает значение из Redis или загружает его через loader.
// Недоступность Redis не ломает расчёт: значение просто грузится из хранилища.
func (r *Redis) GetOrLoad(ctx context.Context, key Key, loader Loader) ([]domain.UnavailableSlot, error) {
	data, err := r.client.Get(ctx, key.String()).Bytes()
	switch {
	case err == nil:
		var value []domain.UnavailableSlot
		if decodeErr := json.Unmarshal(data, &value); decodeErr == nil {
			record(r.recorder, backendRedis, resultHit)
			return cloneSlots(value), nil
		}
		r.warn("Redis cache: corrupted value for %s, reloading", key)
	case errors.Is(err, redis.Nil):
	default:
		r.warn("Redis cache: get %s failed: %v", key, err)
	}
	record(r.recorder, backendRedis, resultMiss)

	res, err, _ := r.group.Do(key.String(), func() (interface{}, error) {
		loadCtx := context.WithoutCancel(ctx)

		// версию читаем до загрузки: инвалидация во время загрузки её изменит
		version, versionErr := r.version(loadCtx, key)

		value, err := loader(loadCtx)
		if err != nil {
			return nil, err
		}

		if versionErr != nil {
			r.warn("Redis cache: version %s unavailable, skip store: %v", key, versionErr)
			return value, nil
		}

		if err := r.store(loadCtx, key, value, version); err != nil {
			r.warn("Redis cache: set %s failed: %v", key, err)
		}
		return value, nil
	})
	if err != nil {
		record(r.recorder, backendRedis, resultError)
		return nil, fmt.Errorf("%w: %s: %v", ErrLoad, key, err)
	}

	return cloneSlots(res.([]domain.UnavailableSlot)), nil
}

// Invalidate удаляет ключ из Redis и поднимает его версию.
// Загрузка, начатая до инвалидации (на любом инстансе), свой результат не сохранит.
func (r *Redis) Invalidate(ctx context.Context, key Key) error {
	r.group.Forget(key.String())

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, key.VersionString())
		pipe.Expire(ctx, key.VersionString(), versionTTL)
		pipe.Del(ctx, key.String())
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: Invalidate - %s: %v", ErrBackend, key, err)
	}
	return nil
}

func (r *Redis) version(ctx context.Context, key Key) (int64, error) {
	v, err := r.client.Get(ctx, key.VersionString()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

// store пишет значение, только если версия ключа не изменилась с начала загрузки
func (r *Redis) store(ctx context.Context, key Key, value []domain.UnavailableSlot, version int64) error {
	data, err := json.Marshal(cloneSlots(value))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, key.VersionString()).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return errStale
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key.String(), data, r.ttl)
			return nil
		})
		return err
	}, key.VersionString())

	switch {
	case err == nil:
		return nil
	case errors.Is(err, errStale), errors.Is(err, redis.TxFailedErr):
		// ключ инвалидировали во время загрузки
		return nil
	default:
		return fmt.Errorf("%w: store - set %s: %v", ErrBackend, key, err)
	}
}

func (r *Redis) warn(format string, v ...interface{}) {
	if r.logger == nil {
		return
	}
	r.logger.Warn(format, v...)
}
