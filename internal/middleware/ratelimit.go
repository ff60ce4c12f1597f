package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"

	"gym_backoffice/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RateLimit limits requests per client IP. rate uses the limiter format,
// e.g. "10-M" for ten per minute.
func RateLimit(rate string) (gin.HandlerFunc, error) {
	parsed, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit %q: %w", rate, err)
	}

	store := memory.NewStore()
	instance := limiter.New(store, parsed)

	limiterMiddleware := stdlib.NewMiddleware(instance, stdlib.WithLimitReachedHandler(limitReached))

	return func(c *gin.Context) {
		limiterMiddleware.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c.Next()
		})).ServeHTTP(c.Writer, c.Request)

		if c.Writer.Status() == http.StatusTooManyRequests {
			c.Abort()
			return
		}
	}, nil
}

func limitReached(w http.ResponseWriter, r *http.Request) {
	apiErr := utils.NewAPIError(http.StatusTooManyRequests, utils.ErrCodeTooManyRequests, "Too many requests", "Try again later")
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(apiErr.StatusCode)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"error": apiErr})
}
