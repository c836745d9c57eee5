package env

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func withEnv(t *testing.T, values map[string]string) {
	t.Helper()
	prev := Env
	Env = values
	t.Cleanup(func() { Env = prev })
}

func TestGetEnvPrefersLoadedFile(t *testing.T) {
	withEnv(t, map[string]string{"GYMFOX_TEST_KEY": "from-file"})
	t.Setenv("GYMFOX_TEST_KEY", "from-os")

	assert.Equal(t, "from-file", GetEnv("GYMFOX_TEST_KEY", "def"))
}

func TestGetEnvFallsBackToOSAndDefault(t *testing.T) {
	withEnv(t, map[string]string{})
	t.Setenv("GYMFOX_TEST_OS", "from-os")

	assert.Equal(t, "from-os", GetEnv("GYMFOX_TEST_OS", "def"))
	assert.Equal(t, "def", GetEnv("GYMFOX_TEST_UNSET", "def"))
}

func TestGetIntEnv(t *testing.T) {
	withEnv(t, map[string]string{"PORT_OK": "4000", "PORT_BAD": "forty"})

	assert.Equal(t, 4000, GetIntEnv("PORT_OK", 1))
	assert.Equal(t, 1, GetIntEnv("PORT_BAD", 1))
	assert.Equal(t, 1, GetIntEnv("PORT_UNSET", 1))
}

func TestGetDurationEnv(t *testing.T) {
	withEnv(t, map[string]string{"TTL_OK": "45s", "TTL_BAD": "soon", "TTL_NEG": "-1s"})

	assert.Equal(t, 45*time.Second, GetDurationEnv("TTL_OK", time.Second))
	assert.Equal(t, time.Second, GetDurationEnv("TTL_BAD", time.Second))
	assert.Equal(t, time.Second, GetDurationEnv("TTL_NEG", time.Second))
}

func TestUseMemoryStorage(t *testing.T) {
	withEnv(t, map[string]string{"APP_STORAGE": "memory"})
	assert.True(t, UseMemoryStorage())

	withEnv(t, map[string]string{"APP_STORAGE": "mysql"})
	assert.False(t, UseMemoryStorage())
}
