package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionKey(t *testing.T) {
	assert.Equal(t, "stratiq:session:abc", SessionKey("abc"))
	assert.Equal(t, "stratiq:session:abc", SessionKey("  abc "))
	assert.Equal(t, "stratiq:session", SessionKey(""))
}

func TestSessionTTL(t *testing.T) {
	assert.Equal(t, DefaultSessionTTL, SessionTTL(0))
	assert.Equal(t, time.Duration(0), SessionTTL(-1))
	assert.Equal(t, 90*time.Second, SessionTTL(90))
}

func TestTTLSeconds(t *testing.T) {
	assert.Equal(t, 0, TTLSeconds(0))
	assert.Equal(t, 1, TTLSeconds(10*time.Millisecond))
	assert.Equal(t, 2, TTLSeconds(1500*time.Millisecond))
	assert.Equal(t, 60, TTLSeconds(time.Minute))
}
