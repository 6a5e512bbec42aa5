// Package cache keeps the rendered standings table in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"football-league-api/packages/core/models"

	"github.com/redis/go-redis/v9"
)

const (
	StandingsKey  = "league:standings"
	GenerationKey = "league:standings:generation"
)

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// NewRedisClient connects and pings Redis.
func NewRedisClient(ctx context.Context, opts RedisOptions) (*redis.Client, error) {
	if opts.Addr == "" {
		return nil, errors.New("no Redis address provided")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolTimeout:  6 * time.Second,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", opts.Addr, err)
	}
	return rdb, nil
}

// StandingsCache stores the ordered team list under a single key, tagged with
// the generation it was read under. Invalidate bumps the generation, so a fill
// that started before a mutation committed is never served.
type StandingsCache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

type standingsEntry struct {
	Generation int64                 `json:"generation"`
	Teams      []models.TeamResponse `json:"teams"`
}

func NewStandingsCache(rdb redis.Cmdable, ttl time.Duration) *StandingsCache {
	return &StandingsCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached standings and the current generation. ok is false on
// a miss or when the stored entry belongs to an older generation; callers pass
// the returned generation to Set after reading the database.
func (c *StandingsCache) Get(ctx context.Context) ([]models.TeamResponse, int64, bool, error) {
	values, err := c.rdb.MGet(ctx, GenerationKey, StandingsKey).Result()
	if err != nil {
		return nil, 0, false, err
	}
	return decodeStandings(values[0], values[1])
}

func (c *StandingsCache) Set(ctx context.Context, generation int64, teams []models.TeamResponse) error {
	raw, err := json.Marshal(standingsEntry{Generation: generation, Teams: teams})
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, StandingsKey, raw, c.ttl).Err()
}

func (c *StandingsCache) Invalidate(ctx context.Context) error {
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, GenerationKey)
		pipe.Del(ctx, StandingsKey)
		return nil
	})
	return err
}

// decodeStandings interprets the MGET reply for the generation and entry keys.
func decodeStandings(generationValue, entryValue interface{}) ([]models.TeamResponse, int64, bool, error) {
	var generation int64
	if generationValue != nil {
		text, ok := generationValue.(string)
		if !ok {
			return nil, 0, false, fmt.Errorf("unexpected standings generation %T", generationValue)
		}
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, 0, false, fmt.Errorf("decode standings generation: %w", err)
		}
		generation = n
	}

	if entryValue == nil {
		return nil, generation, false, nil
	}
	text, ok := entryValue.(string)
	if !ok {
		return nil, generation, false, fmt.Errorf("unexpected cached standings %T", entryValue)
	}

	var entry standingsEntry
	if err := json.Unmarshal([]byte(text), &entry); err != nil {
		return nil, generation, false, fmt.Errorf("decode cached standings: %w", err)
	}
	if entry.Generation != generation {
		return nil, generation, false, nil
	}
	return entry.Teams, generation, true, nil
}
