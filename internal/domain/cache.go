package domain

import "context"

// Ключи кеша — единое место, чтобы не расползались по коду.
func CacheKeyToolkit(id ToolkitID) string { return "toolkit:" + id.String() }
func CacheKeyToolkitList() string         { return "toolkit:list" }
func CacheKeyTokenJTI(jti string) string  { return "jti:" + jti }

// Простой k/v интерфейс с TTL. Реализация — Redis.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte, ttlSeconds int) error
	Del(ctx context.Context, keys ...string) error
	Ping(context.Context) error
	Close()
}
