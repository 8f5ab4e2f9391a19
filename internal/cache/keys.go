package cache

import (
	"strings"
	"time"
)

// Namespace is the Redis key prefix for the application.
const Namespace = "stratiq"

// DefaultSessionTTL applies when the configured TTL is zero.
const DefaultSessionTTL = 24 * time.Hour

// key joins the non-blank parts under Namespace with ':'.
func key(parts ...string) string {
	var b strings.Builder
	b.WriteString(Namespace)
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			b.WriteByte(':')
			b.WriteString(p)
		}
	}
	return b.String()
}

// SessionKey stores one encoded wizard session.
func SessionKey(id string) string {
	return key("session", id)
}

// SessionTTL converts a TTL in seconds. Zero means the default and a
// negative value disables expiry.
func SessionTTL(seconds int) time.Duration {
	switch {
	case seconds < 0:
		return 0
	case seconds == 0:
		return DefaultSessionTTL
	default:
		return time.Duration(seconds) * time.Second
	}
}

// TTLSeconds rounds a TTL up to whole seconds for Redis SETEX.
func TTLSeconds(ttl time.Duration) int {
	if ttl <= 0 {
		return 0
	}
	secs := int(ttl / time.Second)
	if ttl%time.Second != 0 {
		secs++
	}
	return secs
}
