package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func withArgs(t *testing.T, args []string) {
	t.Helper()
	old := os.Args
	os.Args = append([]string{old[0]}, args...)
	t.Cleanup(func() { os.Args = old })
}

func TestParseFlags_Overrides(t *testing.T) {
	withArgs(t, []string{"-a", ":5000", "-s", "flag-secret", "-t", "48"})

	var c Config
	c.LoadDefaults()
	parseFlags(&c)

	assert.Equal(t, c.Address, ":5000")
	assert.Equal(t, c.SecretKey, "flag-secret")
	assert.Equal(t, c.TokenValidityDuration, 48*time.Hour)
}

func TestParseFlags_IgnoresUnknown(t *testing.T) {
	withArgs(t, []string{"-z", "nope", "-r", "localhost:6379"})

	var c Config
	c.LoadDefaults()
	parseFlags(&c)

	assert.Equal(t, c.RedisAddr, "localhost:6379")
	assert.Equal(t, c.Address, ":4000")
}
