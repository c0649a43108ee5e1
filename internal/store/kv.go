// Package store persists workspaces and presets in a key-value backend. The
// layout mirrors what the browser calculator keeps in local storage: one
// document per key, scoped by profile.
package store

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a key or preset does not exist.
	ErrNotFound = errors.New("store: not found")
	// ErrSlotRange is returned for a preset slot outside the capacity.
	ErrSlotRange = errors.New("store: preset slot out of range")
)

// Fixed document names, shared with the browser calculator.
const (
	KeyBuild   = "dn-build"
	KeySkill   = "dn-skill"
	KeyPresets = "dn-presets"
)

// DefaultProfile is used when a caller does not name one.
const DefaultProfile = "default"

// KV is the key-value backend.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, keys ...string) error
}

// Config selects and configures the backend.
type Config struct {
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
	KeyPrefix     string `mapstructure:"key_prefix"`
}

// New returns a Redis backend if RedisAddr is set, otherwise an in-process
// one.
func New(ctx context.Context, cfg Config) (KV, error) {
	if cfg.RedisAddr != "" {
		kv, err := NewRedis(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("connect redis %s: %w", cfg.RedisAddr, err)
		}
		return kv, nil
	}
	return NewMemory(), nil
}

func profileKey(profile, name string) string {
	if profile == "" {
		profile = DefaultProfile
	}
	return profile + ":" + name
}
