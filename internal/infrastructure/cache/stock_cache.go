// Package cache implementa la caché versionada de lecturas de stock sobre Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/casaguflo/inventario-api/internal/application/inventory"
)

const versionKey = "inventario:stock:version"

var _ inventory.StockCache = (*StockCache)(nil)

// StockCache guarda respuestas de stock bajo claves que incluyen una versión global.
// Bump incrementa la versión: las claves anteriores quedan huérfanas y expiran por TTL.
type StockCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStockCache construye la caché. Un client nil deja la caché en modo pasante.
func NewStockCache(client *redis.Client, ttl time.Duration) *StockCache {
	return &StockCache{client: client, ttl: ttl}
}

// Version devuelve la versión vigente, inicializándola si no existe.
func (c *StockCache) Version(ctx context.Context) (int64, error) {
	if c == nil || c.client == nil {
		return 0, nil
	}
	ver, err := c.client.Get(ctx, versionKey).Int64()
	if errors.Is(err, redis.Nil) {
		// SetNX para no pisar un Bump concurrente de otra instancia.
		if err := c.client.SetNX(ctx, versionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return c.client.Get(ctx, versionKey).Int64()
	}
	if err != nil {
		return 0, err
	}
	return ver, nil
}

// BuildKey arma la clave con la versión vigente.
func (c *StockCache) BuildKey(ctx context.Context, parts ...string) (string, error) {
	joined := strings.Join(parts, ":")
	if c == nil || c.client == nil {
		return joined, nil
	}
	ver, err := c.Version(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("inventario:%s:v%d", joined, ver), nil
}

// FetchJSON lee key de Redis o la puebla con loader.
// Si Redis no responde se sirve lo que devuelva loader; solo sus errores se propagan.
func (c *StockCache) FetchJSON(ctx context.Context, key string, dest interface{}, loader func(context.Context) (interface{}, error)) error {
	if loader == nil {
		return errors.New("cache: loader requerido")
	}
	online := c != nil && c.client != nil
	if online {
		payload, err := c.client.Get(ctx, key).Bytes()
		switch {
		case err == nil:
			if json.Unmarshal(payload, dest) == nil {
				return nil
			}
		case !errors.Is(err, redis.Nil):
			online = false
		}
	}
	value, err := loader(ctx)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if online {
		// best effort: la próxima lectura reintenta
		_ = c.client.Set(ctx, key, raw, c.ttl).Err()
	}
	return json.Unmarshal(raw, dest)
}

// Bump invalida todas las lecturas cacheadas.
func (c *StockCache) Bump(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Incr(ctx, versionKey).Err()
}
