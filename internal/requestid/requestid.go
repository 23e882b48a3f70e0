package requestid

import (
	"context"
	"crypto/rand"
	"encoding/hex"

	"github.com/gin-gonic/gin"
)

const Header = "X-Request-ID"

type ctxKey struct{}

var key = ctxKey{}

func FromContext(ctx context.Context) string {
	if v := ctx.Value(key); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func NewContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, key, id)
}

// Generate returns 32 hex characters, the same width as a trace id.
func Generate() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	return hex.EncodeToString(b)
}

// Middleware reuses the caller's X-Request-ID or creates one, stores it in the request
// context and echoes it on the response. It runs before tracing so the trace id can follow it.
func Middleware(c *gin.Context) {
	id := c.GetHeader(Header)
	if id == "" {
		id = Generate()
		c.Request.Header.Set(Header, id)
	}
	c.Request = c.Request.WithContext(NewContext(c.Request.Context(), id))
	c.Writer.Header().Set(Header, id)
	c.Next()
}
