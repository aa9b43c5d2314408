package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	Redis     bool      `json:"redis"`
	CheckedAt time.Time `json:"checkedAt"`
}

func (h HealthStatus) Healthy() bool {
	return h.Mongo && h.Redis
}

// HealthMonitor periodically pings Mongo and Redis and keeps the latest result.
type HealthMonitor struct {
	mongo *mongo.Client
	redis *redis.Client

	mu      sync.RWMutex
	current HealthStatus
}

func NewHealthMonitor(mongoClient *mongo.Client, redisClient *redis.Client) *HealthMonitor {
	return &HealthMonitor{mongo: mongoClient, redis: redisClient}
}

// Status returns latest stored health snapshot.
func (m *HealthMonitor) Status() HealthStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Check pings every dependency once and stores the result.
func (m *HealthMonitor) Check(ctx context.Context) HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	// Dependencies that are not configured count as healthy.
	status := HealthStatus{Mongo: true, Redis: true, CheckedAt: time.Now()}
	if m.mongo != nil {
		status.Mongo = m.mongo.Ping(ctx, nil) == nil
	}
	if m.redis != nil {
		status.Redis = m.redis.Ping(ctx).Err() == nil
	}

	m.mu.Lock()
	m.current = status
	m.mu.Unlock()
	return status
}

// Start runs Check every interval until ctx is cancelled.
func (m *HealthMonitor) Start(ctx context.Context, interval time.Duration) {
	m.Check(ctx)
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if s := m.Check(ctx); !s.Healthy() {
					GetLogger().Warn("dependency health degraded",
						zap.Bool("mongo", s.Mongo),
						zap.Bool("redis", s.Redis),
					)
				}
			}
		}
	}()
}
