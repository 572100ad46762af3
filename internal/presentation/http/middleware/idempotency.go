package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/billmaster-api/internal/domain/entity"
	"github.com/sangkips/billmaster-api/internal/domain/repository"
	"github.com/sangkips/billmaster-api/internal/presentation/http/dto/response"
	"go.uber.org/zap"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// ReplayedHeader marks a response served from the idempotency store
	ReplayedHeader = "X-Idempotency-Replayed"
	// IdempotencyKeyTTL is how long keys are valid
	IdempotencyKeyTTL = 24 * time.Hour
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Repo   repository.IdempotencyRepository
	Logger *zap.Logger
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// inFlight tracks keys whose first request has not finished yet
type inFlight struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func (f *inFlight) acquire(k string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, busy := f.keys[k]; busy {
		return false
	}
	f.keys[k] = struct{}{}
	return true
}

func (f *inFlight) release(k string) {
	f.mu.Lock()
	delete(f.keys, k)
	f.mu.Unlock()
}

// hashBody reads the request body, restores it and returns its sha256
func hashBody(c *gin.Context) (string, error) {
	if c.Request.Body == nil {
		return "", nil
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return "", err
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(body))
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:]), nil
}

// IdempotencyRequired requires an Idempotency-Key on POST requests. A repeated
// key replays the stored response instead of running the handler again; only
// 2xx responses are stored, so a rejected request may be retried with the same
// key. Reusing a key for a different body is refused.
func IdempotencyRequired(config IdempotencyConfig) gin.HandlerFunc {
	pending := &inFlight{keys: make(map[string]struct{})}
	log := config.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		idempotencyKey := c.GetHeader(IdempotencyKeyHeader)
		if idempotencyKey == "" {
			response.AbortWithCode(c, http.StatusBadRequest, "Idempotency-Key header is required for this request")
			return
		}

		userID := UserID(c)
		if userID == 0 {
			response.AbortWithCode(c, http.StatusUnauthorized, "User not authenticated")
			return
		}

		requestHash, err := hashBody(c)
		if err != nil {
			response.AbortWithCode(c, http.StatusBadRequest, "Could not read request body")
			return
		}

		lockKey := strconv.FormatUint(uint64(userID), 10) + ":" + idempotencyKey
		if !pending.acquire(lockKey) {
			response.AbortWithCode(c, http.StatusConflict, "A request with this Idempotency-Key is already in progress")
			return
		}
		defer pending.release(lockKey)

		existing, err := config.Repo.GetByKey(c.Request.Context(), idempotencyKey, userID)
		if err != nil {
			log.Error("failed to check idempotency key", zap.Error(err))
			response.AbortWithCode(c, http.StatusInternalServerError, "Failed to check idempotency key")
			return
		}

		if existing != nil && !existing.IsExpired() {
			if existing.RequestHash != "" && existing.RequestHash != requestHash {
				response.AbortWithCode(c, http.StatusUnprocessableEntity, "Idempotency-Key was already used for a different request")
				return
			}
			c.Header(ReplayedHeader, "true")
			c.Data(existing.ResponseCode, "application/json; charset=utf-8", []byte(existing.ResponseBody))
			c.Abort()
			return
		}
		if existing != nil {
			if err := config.Repo.DeleteExpired(c.Request.Context()); err != nil {
				log.Warn("failed to purge expired idempotency keys", zap.Error(err))
			}
		}

		blw := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}

		ikey := &entity.IdempotencyKey{
			Key:          idempotencyKey,
			UserID:       userID,
			Endpoint:     c.Request.Method + " " + c.FullPath(),
			RequestHash:  requestHash,
			ResponseCode: status,
			ResponseBody: blw.body.String(),
			ExpiresAt:    time.Now().Add(IdempotencyKeyTTL),
		}
		if err := config.Repo.Create(c.Request.Context(), ikey); err != nil {
			log.Warn("failed to store idempotency key", zap.String("key", idempotencyKey), zap.Error(err))
		}
	}
}
