package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/nekogravitycat/court-reservation-backend/internal/config"
)

// scriptedRedis answers every script call with the next queued result.
type scriptedRedis struct {
	results []*redis.Cmd
	keys    []string
}

func (s *scriptedRedis) next(keys []string) *redis.Cmd {
	s.keys = append(s.keys, keys...)
	cmd := s.results[0]
	s.results = s.results[1:]
	return cmd
}

func (s *scriptedRedis) Eval(_ context.Context, _ string, keys []string, _ ...interface{}) *redis.Cmd {
	return s.next(keys)
}

func (s *scriptedRedis) EvalSha(_ context.Context, _ string, keys []string, _ ...interface{}) *redis.Cmd {
	return s.next(keys)
}

func (s *scriptedRedis) EvalRO(_ context.Context, _ string, keys []string, _ ...interface{}) *redis.Cmd {
	return s.next(keys)
}

func (s *scriptedRedis) EvalShaRO(_ context.Context, _ string, keys []string, _ ...interface{}) *redis.Cmd {
	return s.next(keys)
}

func (s *scriptedRedis) ScriptExists(ctx context.Context, _ ...string) *redis.BoolSliceCmd {
	return redis.NewBoolSliceResult([]bool{true}, nil)
}

func (s *scriptedRedis) ScriptLoad(ctx context.Context, _ string) *redis.StringCmd {
	return redis.NewStringResult("sha", nil)
}

func limitedRouter(rdb redis.Scripter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := config.RateLimitConfig{Capacity: 2, RefillInterval: 3 * time.Second, TTL: time.Minute, Prefix: "rl"}

	r := gin.New()
	r.POST("/v1/reservations", RateLimit(cfg, rdb), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	return r
}

func post(r *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/reservations", nil)
	req.RemoteAddr = "203.0.113.9:5555"
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimit_AllowsAndBlocks(t *testing.T) {
	rdb := &scriptedRedis{results: []*redis.Cmd{
		redis.NewCmdResult([]interface{}{int64(1), int64(1), int64(0)}, nil),
		redis.NewCmdResult([]interface{}{int64(0), int64(0), int64(2500)}, nil),
	}}
	r := limitedRouter(rdb)

	w := post(r)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))

	w = post(r)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "3", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "rate limit exceeded")

	assert.Equal(t, "rl:ip:203.0.113.9:route:POST /v1/reservations", rdb.keys[0])
}

func TestRateLimit_FailsOpen(t *testing.T) {
	rdb := &scriptedRedis{results: []*redis.Cmd{
		redis.NewCmdResult(nil, errors.New("connection refused")),
	}}

	w := post(limitedRouter(rdb))
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
}

func TestRateLimit_Disabled(t *testing.T) {
	w := post(limitedRouter(nil))
	assert.Equal(t, http.StatusCreated, w.Code)
}
