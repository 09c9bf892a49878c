// Package reqstats provides middleware for tracking API request statistics.
package reqstats

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/pixelgrove/gaboard/internal/app/store/reqstats"
	"go.uber.org/zap"
)

// Recorder records request statistics into time buckets. It is shared
// across handlers and safe for concurrent use.
type Recorder struct {
	store          *reqstats.Store
	logger         *zap.Logger
	bucketDuration time.Duration
	mu             sync.RWMutex
}

// NewRecorder creates a request stats recorder.
func NewRecorder(store *reqstats.Store, logger *zap.Logger, bucketDuration time.Duration) *Recorder {
	return &Recorder{
		store:          store,
		logger:         logger,
		bucketDuration: bucketDuration,
	}
}

// Record records one request's statistics asynchronously so the response
// is never blocked on the stats write.
func (r *Recorder) Record(statType reqstats.StatType, durationMs int64, isError bool) {
	r.mu.RLock()
	bucketDuration := r.bucketDuration
	r.mu.RUnlock()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := r.store.Record(ctx, statType, bucketDuration, durationMs, isError); err != nil {
			r.logger.Error("failed to record request stats",
				zap.String("stat_type", string(statType)),
				zap.Error(err),
			)
		}
	}()
}

// Middleware returns HTTP middleware that records statistics for every
// request under statType. A nil recorder disables recording, which keeps
// handler tests free of a stats dependency.
func Middleware(recorder *Recorder, statType reqstats.StatType) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if recorder == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			wrapped := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			recorder.Record(statType, time.Since(start).Milliseconds(), wrapped.statusCode >= 400)
		})
	}
}

// responseWrapper wraps http.ResponseWriter to capture the status code.
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
