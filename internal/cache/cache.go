package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spigell/bizfit/internal/answers"
	"github.com/spigell/bizfit/internal/matching"
	"github.com/spigell/bizfit/internal/ranking"
)

// KeyPrefix namespaces every cached outcome.
const KeyPrefix = "bizfit:match:"

// Lookup results reported to a Recorder.
const (
	ResultHit    = "hit"
	ResultMiss   = "miss"
	ResultError  = "error"
	ResultBypass = "bypass"
)

// Recorder receives the result of every cache lookup.
type Recorder interface {
	CacheLookup(result string)
}

// Config holds the Redis connection settings.
type Config struct {
	Address  string
	Password string
	DB       int
}

// NewClient creates a Redis client for the cache.
func NewClient(cfg Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
}

// Cache stores match outcomes in Redis. Cache failures are logged and never
// fail a match.
type Cache struct {
	client   *redis.Client
	ttl      time.Duration
	logger   *zap.Logger
	recorder Recorder
}

func New(client *redis.Client, ttl time.Duration, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{client: client, ttl: ttl, logger: logger}
}

// WithRecorder sets the recorder notified about lookups.
func (c *Cache) WithRecorder(recorder Recorder) *Cache {
	c.recorder = recorder
	return c
}

// Ping tests the Redis connection.
func (c *Cache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (c *Cache) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

type keyMaterial struct {
	Catalog      string         `json:"catalog"`
	AliasVersion int            `json:"alias_version"`
	Spacing      bool           `json:"spacing"`
	MinGap       int            `json:"min_gap"`
	MaxGap       int            `json:"max_gap"`
	Picker       string         `json:"picker"`
	Answers      answers.Record `json:"answers"`
}

// Key derives the cache key for rec under the given catalog fingerprint and
// spacing settings. Legacy and canonical spellings of a record share a key.
func Key(fingerprint string, spacer ranking.Spacer, spacing bool, rec answers.Record) (string, error) {
	canonical, _ := answers.Canonicalize(rec)
	material := keyMaterial{
		Catalog:      fingerprint,
		AliasVersion: answers.AliasVersion,
		Spacing:      spacing,
		Answers:      canonical,
	}
	if spacing {
		material.MinGap = spacer.MinGap
		material.MaxGap = spacer.MaxGap
		material.Picker = spacer.PickerName()
	}

	data, err := json.Marshal(material)
	if err != nil {
		return "", fmt.Errorf("encode cache key: %w", err)
	}
	sum := sha256.Sum256(data)
	return KeyPrefix + hex.EncodeToString(sum[:]), nil
}

// Get returns the cached outcome for key. A missing key is not an error.
func (c *Cache) Get(ctx context.Context, key string) (*matching.Outcome, bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var outcome matching.Outcome
	if err := json.Unmarshal([]byte(val), &outcome); err != nil {
		return nil, false, fmt.Errorf("decode cached outcome: %w", err)
	}
	return &outcome, true, nil
}

// Set stores outcome under key with the configured TTL.
func (c *Cache) Set(ctx context.Context, key string, outcome *matching.Outcome) error {
	data, err := json.Marshal(outcome)
	if err != nil {
		return fmt.Errorf("encode outcome: %w", err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Match returns a cached outcome for rec when one exists, otherwise it runs
// the engine and stores the result. The second value reports a cache hit.
// Engines with non-deterministic spacing are never cached. A nil Cache runs
// the engine directly.
func (c *Cache) Match(ctx context.Context, engine *matching.Engine, rec answers.Record) (*matching.Outcome, bool) {
	if c == nil {
		return engine.Match(rec), false
	}

	spacer, spacing := engine.Spacer()
	if spacing && !spacer.Deterministic() {
		c.record(ResultBypass)
		c.logger.Debug("cache bypassed", zap.String("reason", "spacing picker is not deterministic"))
		return engine.Match(rec), false
	}

	key, err := Key(engine.Catalog().Fingerprint(), spacer, spacing, rec)
	if err != nil {
		c.record(ResultError)
		c.logger.Warn("building cache key failed. Computing without cache.", zap.Error(err))
		return engine.Match(rec), false
	}

	cached, found, err := c.Get(ctx, key)
	switch {
	case err != nil:
		c.record(ResultError)
		c.logger.Warn("cache lookup failed", zap.String("key", key), zap.Error(err))
	case found:
		c.record(ResultHit)
		c.logger.Debug("cache hit", zap.String("key", key))
		return cached, true
	default:
		c.record(ResultMiss)
	}

	outcome := engine.Match(rec)
	if err := c.Set(ctx, key, outcome); err != nil {
		c.logger.Warn("storing outcome in cache failed", zap.String("key", key), zap.Error(err))
	}
	return outcome, false
}

func (c *Cache) record(result string) {
	if c.recorder != nil {
		c.recorder.CacheLookup(result)
	}
}
