// Copyright 2021-2026
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package common

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/goccy/go-json"
	lru "github.com/hashicorp/golang-lru"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"github.com/zeebo/blake3"
)

const DefaultCacheSize = 128

var ErrCacheMiss = errors.New("key not found in cache")

// ResultCache stores compressed simulation results in a process local LRU
// and, when configured, in redis so that several servers can share them.
type ResultCache struct {
	local *lru.Cache
	rdb   *redis.Client
	ttl   time.Duration
}

// CacheConfig mirrors the cache.* configuration keys
type CacheConfig struct {
	LocalSize int
	RedisURL  string
	TTL       time.Duration
}

// CacheConfigFromViper reads cache.local_size, cache.redis, cache.redis_url
// and cache.ttl (seconds)
func CacheConfigFromViper() CacheConfig {
	cfg := CacheConfig{
		LocalSize: viper.GetInt("cache.local_size"),
		TTL:       time.Duration(viper.GetInt("cache.ttl")) * time.Second,
	}
	if viper.GetBool("cache.redis") {
		cfg.RedisURL = viper.GetString("cache.redis_url")
	}
	return cfg
}

// NewResultCache creates a cache. Redis is used only when cfg.RedisURL is set.
func NewResultCache(cfg CacheConfig) (*ResultCache, error) {
	size := cfg.LocalSize
	if size <= 0 {
		size = DefaultCacheSize
	}

	local, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("could not create LRU cache: %w", err)
	}

	res := &ResultCache{
		local: local,
		ttl:   cfg.TTL,
	}

	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("could not parse redis URL: %w", err)
		}
		res.rdb = redis.NewClient(opt)
		log.Info().Str("Addr", opt.Addr).Msg("sharing results through redis")
	}

	return res, nil
}

// Set stores the compressed value under key
func (c *ResultCache) Set(ctx context.Context, key string, val []byte) error {
	compressed, err := compress(val)
	if err != nil {
		return err
	}
	c.local.Add(key, compressed)

	if c.rdb != nil {
		return c.rdb.Set(ctx, key, compressed, c.ttl).Err()
	}
	return nil
}

// Get returns the value stored under key or ErrCacheMiss. A value found only
// in redis is copied into the local cache.
func (c *ResultCache) Get(ctx context.Context, key string) ([]byte, error) {
	if val, ok := c.local.Get(key); ok {
		return decompress(val.([]byte))
	}

	if c.rdb == nil {
		return nil, ErrCacheMiss
	}

	val, err := c.rdb.GetEx(ctx, key, c.ttl).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}

	c.local.Add(key, val)
	return decompress(val)
}

// SetJSON stores v encoded as JSON
func (c *ResultCache) SetJSON(ctx context.Context, key string, v interface{}) error {
	buf, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Set(ctx, key, buf)
}

// GetJSON decodes the JSON value stored under key into v
func (c *ResultCache) GetJSON(ctx context.Context, key string, v interface{}) error {
	buf, err := c.Get(ctx, key)
	if err != nil {
		return err
	}
	return json.Unmarshal(buf, v)
}

// CacheKey hashes the JSON encoding of the given values with blake3. Equal
// requests produce equal keys.
func CacheKey(prefix string, parts ...interface{}) (string, error) {
	hasher := blake3.New()
	for _, part := range parts {
		buf, err := json.Marshal(part)
		if err != nil {
			return "", err
		}
		if _, err := hasher.Write(buf); err != nil {
			return "", err
		}
	}
	return prefix + ":" + hex.EncodeToString(hasher.Sum(nil)), nil
}
