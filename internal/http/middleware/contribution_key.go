// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements safe-retry support for request submission. A client
// that times out on POST /requests can retry with the same contribution key;
// the validator detects the stored record and marks the request as a replay
// so the handler can serve the previously created request instead of filing
// a duplicate, and the rate limiter can skip charging tokens for it.
//
// Design goals:
//   - Keep transport concerns (validation, context stashing) in middleware.
//   - Decouple persistence via a narrow ContributionLookup function type.
package middleware

import (
	"context"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
)

// HeaderContributionKey is the request header clients use to convey a stable
// key for a submission so retries can be safely deduplicated.
const HeaderContributionKey = "X-Contribution-Key"

// Context keys used internally to stash contribution-key state.
const (
	ctxKeyContribKey    = "contrib.key"
	ctxKeyContribReplay = "contrib.replay" // bool: true when a stored replay exists
	ctxKeyRateBypass    = "rate.bypass"    // bool: true to skip rate limiting
)

// GetContributionKey returns the validated contribution key stored in the
// Gin context by ContributionKeyValidator. The second return value indicates
// presence. Handlers should prefer this over reading the header directly.
func GetContributionKey(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxKeyContribKey)
	if !ok {
		return "", false
	}
	s, _ := v.(string)
	return s, s != ""
}

// IsReplay reports whether the middleware detected that this request would
// replay a previously accepted submission. Handlers may then return the
// previously persisted result instead of filing a new request.
func IsReplay(c *gin.Context) bool {
	v, ok := c.Get(ctxKeyContribReplay)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// ContributionKeyOptions configures header validation for
// ContributionKeyValidator. TTL enforcement belongs to the lookup function.
type ContributionKeyOptions struct {
	// MaxLen caps the accepted key length. Values <= 0 default to 200.
	MaxLen int
	// Pattern restricts allowed characters. If nil, a conservative
	// RFC7230-like token pattern is used: ^[A-Za-z0-9._~\-:]+$
	Pattern *regexp.Regexp
}

// ContributionLookup answers whether a still-valid record exists for
// (userID, key) at the given time. Return exists=true when the prior result
// can be replayed; return an error only for lookup failures (which should
// not block normal processing).
type ContributionLookup func(ctx context.Context, userID, key string, now time.Time) (exists bool, err error)

// ContributionKeyValidator validates the X-Contribution-Key header (if
// present), stashes it in the request context, and optionally checks for a
// prior accepted submission via the supplied lookup. When a replay is
// detected it marks the context so downstream components can detect it via
// IsReplay and bypass rate limiting.
//
// Behavior:
//   - If the header is absent: the middleware is a no-op.
//   - If the header fails validation: responds 400 with a compact error body.
//   - If lookup indicates a replay: sets replay + rate-bypass flags.
//   - Always invokes the next handler unless validation fails.
func ContributionKeyValidator(opts ContributionKeyOptions, lookup ContributionLookup) gin.HandlerFunc {
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = 200
	}
	pat := opts.Pattern
	if pat == nil {
		pat = regexp.MustCompile(`^[A-Za-z0-9._~\-:]+$`)
	}

	return func(c *gin.Context) {
		key := c.GetHeader(HeaderContributionKey)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxLen || !pat.MatchString(key) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"code":    "bad_contribution_key",
				"message": "invalid X-Contribution-Key",
			})
			return
		}

		c.Set(ctxKeyContribKey, key)

		if lookup != nil {
			now := time.Now().UTC()
			if exists, _ := lookup(c.Request.Context(), UserID(c), key, now); exists {
				c.Set(ctxKeyContribReplay, true)
				c.Set(ctxKeyRateBypass, true)
			}
		}

		c.Next()
	}
}
