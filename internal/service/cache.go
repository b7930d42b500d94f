// Пакет service — бизнес-логика сервиса newhires.
// Cache — in-memory кэш справочных данных с TTL.
// Обёртка над hashicorp/golang-lru/v2/expirable.
package service

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus-метрики кэша справочников.
var (
	cacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nh_reference_cache_hits_total",
		Help: "Общее количество попаданий в кэш справочников.",
	})
	cacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nh_reference_cache_misses_total",
		Help: "Общее количество промахов кэша справочников.",
	})
)

// Cache — LRU-кэш с автоматическим TTL для справочных выборок.
// Каждый экземпляр сервиса имеет собственный in-memory кэш
// (per-instance, stateless архитектура).
type Cache[V any] struct {
	lru *expirable.LRU[string, V]
}

// NewCache создаёт кэш с указанным максимальным размером и TTL.
// maxSize — максимальное количество записей, ttl — время жизни записи.
func NewCache[V any](maxSize int, ttl time.Duration) *Cache[V] {
	return &Cache[V]{
		lru: expirable.NewLRU[string, V](maxSize, nil, ttl),
	}
}

// Get возвращает значение из кэша по ключу.
// Возвращает (значение, true) при hit или (zero, false) при miss.
// Обновляет Prometheus-метрики hit/miss.
func (c *Cache[V]) Get(key string) (V, bool) {
	val, ok := c.lru.Get(key)
	if ok {
		cacheHitsTotal.Inc()
		return val, true
	}
	cacheMissesTotal.Inc()
	return val, false
}

// Set добавляет или обновляет запись в кэше.
func (c *Cache[V]) Set(key string, val V) {
	c.lru.Add(key, val)
}

// Delete удаляет запись из кэша.
func (c *Cache[V]) Delete(key string) {
	c.lru.Remove(key)
}
