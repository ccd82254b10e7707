package services_test

import (
	"testing"

	"github.com/Rakhulsr/go-petshop/app/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSHA256HasherIsDeterministic(t *testing.T) {
	h := services.SHA256Hasher{}

	first, err := h.Hash("password")
	require.NoError(t, err)
	second, err := h.Hash("password")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8", first)
	assert.True(t, h.Verify(first, "password"))
	assert.False(t, h.Verify(first, "Password"))
}

func TestBcryptHasherSaltsEachHash(t *testing.T) {
	h := services.BcryptHasher{Cost: bcrypt.MinCost}

	first, err := h.Hash("Secret123")
	require.NoError(t, err)
	second, err := h.Hash("Secret123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, h.Verify(first, "Secret123"))
	assert.True(t, h.Verify(second, "Secret123"))
	assert.False(t, h.Verify(first, "secret123"))
}

func TestNewPasswordHasher(t *testing.T) {
	tests := []struct {
		name    string
		want    services.PasswordHasher
		wantErr bool
	}{
		{name: "", want: services.SHA256Hasher{}},
		{name: "sha256", want: services.SHA256Hasher{}},
		{name: "bcrypt", want: services.BcryptHasher{Cost: 6}},
		{name: "md5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := services.NewPasswordHasher(tt.name, 6)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
