package configs

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSessionKeys(t *testing.T) {
	generated, err := GenerateSessionKeys()
	require.NoError(t, err)
	assert.Len(t, generated.AuthKey, 64)
	assert.Len(t, generated.EncKey, 32)

	env := ENV{
		AppAuthKey: base64.URLEncoding.EncodeToString(generated.AuthKey),
		AppEncKey:  base64.URLEncoding.EncodeToString(generated.EncKey),
	}
	keys, err := LoadSessionKeys(env)
	require.NoError(t, err)
	assert.Equal(t, generated.AuthKey, keys.AuthKey)
	assert.Equal(t, generated.EncKey, keys.EncKey)

	t.Run("missing", func(t *testing.T) {
		_, err := LoadSessionKeys(ENV{AppAuthKey: env.AppAuthKey})
		assert.ErrorIs(t, err, ErrSessionKeysMissing)
	})

	t.Run("not base64", func(t *testing.T) {
		_, err := LoadSessionKeys(ENV{AppAuthKey: "%%%", AppEncKey: env.AppEncKey})
		assert.ErrorContains(t, err, "APP_AUTH_KEY")
	})

	t.Run("bad encryption key length", func(t *testing.T) {
		_, err := LoadSessionKeys(ENV{
			AppAuthKey: env.AppAuthKey,
			AppEncKey:  base64.URLEncoding.EncodeToString([]byte("short")),
		})
		assert.ErrorContains(t, err, "invalid length 5")
	})
}

func TestGenerateAndPrintSessionKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.env")
	require.NoError(t, GenerateAndPrintSessionKeys(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	env := ENV{}
	for _, line := range strings.Split(strings.TrimSpace(string(raw)), "\n") {
		key, value, ok := strings.Cut(line, "=")
		require.True(t, ok, line)
		switch key {
		case "APP_AUTH_KEY":
			env.AppAuthKey = value
		case "APP_ENC_KEY":
			env.AppEncKey = value
		}
	}

	_, err = LoadSessionKeys(env)
	assert.NoError(t, err)
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("PETSHOP_TEST_INT", "12")
	assert.Equal(t, 12, getEnvInt("PETSHOP_TEST_INT", 3))

	t.Setenv("PETSHOP_TEST_INT", "twelve")
	assert.Equal(t, 3, getEnvInt("PETSHOP_TEST_INT", 3))

	assert.Equal(t, 3, getEnvInt("PETSHOP_TEST_UNSET", 3))
}

func TestDialectorRejectsUnknownDriver(t *testing.T) {
	_, err := dialectorFor(ENV{DBDriver: "oracle"})
	assert.ErrorContains(t, err, "unsupported DB_DRIVER")
}
