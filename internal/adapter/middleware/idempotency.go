package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"sikopifasta-backend/internal/infrastructure/logging"
	"sikopifasta-backend/internal/infrastructure/metrics"
)

const (
	headerRequestID = "X-Request-Id"
	headerRequestAt = "X-Request-At"

	// How long an in-flight request holds its key before another attempt may take over.
	provisionalLockTTL = 60 * time.Second
	// Allowed client/server clock skew for X-Request-At.
	maxClockSkew = 10 * time.Minute
)

type idempEntry struct {
	InProgress  bool      `json:"in_progress"`
	Code        int       `json:"code"`
	Body        []byte    `json:"body"`
	BodySHA256  string    `json:"body_sha256"`
	RequestID   string    `json:"request_id"`
	RequestAtMS int64     `json:"request_at_ms"`
	CreatedAt   time.Time `json:"created_at"`
}

type respRecorder struct {
	w    http.ResponseWriter
	buf  *bytes.Buffer
	code int
}

func (r *respRecorder) Header() http.Header { return r.w.Header() }
func (r *respRecorder) Write(b []byte) (int, error) {
	if r.buf != nil {
		r.buf.Write(b)
	}
	return r.w.Write(b)
}
func (r *respRecorder) WriteHeader(statusCode int) { r.code = statusCode; r.w.WriteHeader(statusCode) }

// Idempotency makes mutating requests safe to retry. The key is method +
// route + caller uid + X-Request-Id, so it must run after Auth. Responses
// below 500 are stored for ttl and replayed; 5xx responses release the key.
// A nil client disables the middleware.
func Idempotency(rdb *redis.Client, ttl time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if rdb == nil {
			return next
		}
		return func(c echo.Context) error {
			req := c.Request()
			method := req.Method

			switch method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}

			reqID := strings.TrimSpace(req.Header.Get(headerRequestID))
			if reqID == "" {
				return fail(c, http.StatusBadRequest, "bad_request", "missing "+headerRequestID)
			}
			if !validReqID(reqID) {
				return fail(c, http.StatusBadRequest, "bad_request", "invalid "+headerRequestID+" format")
			}
			reqID = strings.ToLower(reqID)

			reqAt, err := parseRequestAt(req.Header.Get(headerRequestAt))
			if err != nil {
				return fail(c, http.StatusBadRequest, "bad_request", err.Error())
			}
			now := nowUTC()
			if reqAt.Before(now.Add(-maxClockSkew)) || reqAt.After(now.Add(maxClockSkew)) {
				return fail(c, http.StatusBadRequest, "bad_request", headerRequestAt+" too skewed")
			}

			callerUID := "anonymous"
			if caller, ok := CallerOf(c); ok {
				callerUID = caller.UID
			}

			var body []byte
			if req.Body != nil {
				body, _ = io.ReadAll(req.Body)
			}
			req.Body = io.NopCloser(bytes.NewBuffer(body))
			bhash := bodyHash(body)

			key := buildKey(method, c.Path(), callerUID, reqID)
			log := logging.Logger.WithFields(logrus.Fields{"idempotency_key": key})
			ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
			defer cancel()

			entry := idempEntry{
				InProgress:  true,
				BodySHA256:  bhash,
				RequestID:   reqID,
				RequestAtMS: reqAt.UnixMilli(),
				CreatedAt:   nowUTC(),
			}
			ok, err := provisionalSet(ctx, rdb, key, entry)
			if err != nil {
				log.WithError(err).Error("idempotency: store unavailable")
				return fail(c, http.StatusServiceUnavailable, "store_unavailable", "idempotency store unavailable")
			}
			if !ok {
				cur, errLoad := loadEntry(ctx, rdb, key)
				if errLoad != nil {
					log.WithError(errLoad).Warn("idempotency: failed to load entry")
				}
				if cur.BodySHA256 != "" && cur.BodySHA256 != bhash {
					return fail(c, http.StatusConflict, "idempotency_mismatch", headerRequestID+" reused with different body")
				}
				if !cur.InProgress && cur.Code != 0 && len(cur.Body) > 0 {
					metrics.IdempotentReplays.Inc()
					log.Debug("idempotency: replaying stored response")
					return c.Blob(cur.Code, echo.MIMEApplicationJSON, cur.Body)
				}
				return fail(c, http.StatusConflict, "in_progress", "request is already in progress")
			}

			rec := &respRecorder{w: c.Response().Writer, buf: &bytes.Buffer{}, code: http.StatusOK}
			c.Response().Writer = rec
			if err := next(c); err != nil {
				c.Error(err)
			}

			if rec.code >= http.StatusInternalServerError {
				if err := release(context.Background(), rdb, key); err != nil {
					log.WithError(err).Warn("idempotency: failed to release key")
				}
				return nil
			}
			final := idempEntry{
				Code:        rec.code,
				Body:        rec.buf.Bytes(),
				BodySHA256:  bhash,
				RequestID:   reqID,
				RequestAtMS: reqAt.UnixMilli(),
				CreatedAt:   nowUTC(),
			}
			if err := saveFinal(context.Background(), rdb, key, final, ttl); err != nil {
				log.WithError(err).Warn("idempotency: failed to store response")
			}
			return nil
		}
	}
}
