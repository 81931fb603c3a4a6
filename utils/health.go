package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus is the latest snapshot of backing-store reachability.
type HealthStatus struct {
	DocumentStore bool      `json:"documentStore"`
	StateCache    bool      `json:"stateCache"`
	OTPCache      bool      `json:"otpCache"`
	CheckedAt     time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns the latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

// StartHealthMonitor probes the document store and both caches once
// immediately and then every minute, keeping the snapshot in memory.
func StartHealthMonitor(mongoClient *mongo.Client, stateCache, otpCache *redis.Client) {
	probe := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		status := HealthStatus{
			DocumentStore: mongoClient.Ping(ctx, nil) == nil,
			StateCache:    stateCache.Ping(ctx).Err() == nil,
			OTPCache:      otpCache.Ping(ctx).Err() == nil,
			CheckedAt:     time.Now(),
		}

		healthMu.Lock()
		currentHealth = status
		healthMu.Unlock()
	}

	go func() {
		probe()
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			probe()
		}
	}()
}
