package application

import (
	"fmt"
	"sync"
	"time"
)

// RateLimitEntry representa una entrada en el rate limiter
type RateLimitEntry struct {
	Count     int
	ResetTime time.Time
}

// RateLimiter limita los envíos públicos (reservas y consultas de la landing)
// por identificador, con ventanas de tiempo fijas.
type RateLimiter struct {
	limits map[string]*RateLimitEntry
	mu     sync.Mutex
	window time.Duration
	limit  int
}

// NewRateLimiter crea un nuevo rate limiter.
// window: duración de la ventana de tiempo; limit: máximo de requests por ventana.
func NewRateLimiter(window time.Duration, limit int) *RateLimiter {
	rl := &RateLimiter{
		limits: make(map[string]*RateLimitEntry),
		window: window,
		limit:  limit,
	}

	go rl.cleanupLoop()

	return rl
}

// Allow verifica si se permite una request para el identificador dado
// (normalmente la IP del cliente).
func (rl *RateLimiter) Allow(identifier string) (bool, error) {
	if identifier == "" {
		identifier = "anonymous"
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	entry, exists := rl.limits[identifier]

	if !exists || now.After(entry.ResetTime) {
		rl.limits[identifier] = &RateLimitEntry{
			Count:     1,
			ResetTime: now.Add(rl.window),
		}
		return true, nil
	}

	if entry.Count >= rl.limit {
		timeUntilReset := entry.ResetTime.Sub(now)
		return false, fmt.Errorf("límite de envíos excedido, intenta de nuevo en %v", timeUntilReset.Round(time.Second))
	}

	entry.Count++
	return true, nil
}

// cleanupLoop limpia entradas expiradas periódicamente
func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.cleanup()
	}
}

func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for key, entry := range rl.limits {
		if now.After(entry.ResetTime) {
			delete(rl.limits, key)
		}
	}
}
