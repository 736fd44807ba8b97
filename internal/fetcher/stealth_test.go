package fetcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStealthHeaders(t *testing.T) {
	t.Run("chrome agent gets client hints", func(t *testing.T) {
		ua := UserAgents[0]
		h := StealthHeaders(ua)
		assert.Equal(t, ua, h["User-Agent"])
		assert.Contains(t, h["Accept"], "application/zip")
		assert.NotEmpty(t, h["Sec-CH-UA"])
		assert.Contains(t, SecChUaPlatforms, h["Sec-CH-UA-Platform"])
	})

	t.Run("firefox agent has no client hints", func(t *testing.T) {
		h := StealthHeaders(UserAgents[3])
		_, ok := h["Sec-CH-UA"]
		assert.False(t, ok)
	})

	t.Run("empty agent picks from pool", func(t *testing.T) {
		h := StealthHeaders("")
		assert.Contains(t, UserAgents, h["User-Agent"])
		assert.Contains(t, AcceptLanguages, h["Accept-Language"])
	})
}
