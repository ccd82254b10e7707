package services_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Rakhulsr/go-petshop/app/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateProfile(t *testing.T) {
	f := newFixture(t)

	_, err := f.profile.UpdateProfile(f.ctx, services.ProfileInput{Name: "Nobody At All"})
	require.ErrorIs(t, err, services.ErrNotLoggedIn)

	f.register(t, "taken@example.com")
	id := f.register(t, "jane@example.com")

	updated, err := f.profile.UpdateProfile(f.ctx, services.ProfileInput{
		Name:    "Jane Q. Customer",
		Email:   "jane.q@example.com",
		Phone:   "0111222333",
		Address: "99 Aquarium Lane",
	})
	require.NoError(t, err)
	assert.Equal(t, id, updated.ID)
	assert.Equal(t, "Jane Q. Customer", updated.Name)
	assert.Equal(t, "jane.q@example.com", updated.Email)
	assert.Equal(t, "99 Aquarium Lane", updated.Address)

	_, err = f.profile.UpdateProfile(f.ctx, services.ProfileInput{
		Name:    "Jane Q. Customer",
		Email:   "taken@example.com",
		Phone:   "0111222333",
		Address: "99 Aquarium Lane",
	})
	require.ErrorIs(t, err, services.ErrDuplicateEmail)

	_, err = f.auth.Login(f.ctx, "jane.q@example.com", testPassword)
	require.NoError(t, err)
}

func TestSetProfileImageReplacesPreviousCopy(t *testing.T) {
	f := newFixture(t)
	f.register(t, "jane@example.com")

	dir := t.TempDir()
	first := filepath.Join(dir, "first.PNG")
	second := filepath.Join(dir, "second.jpg")
	require.NoError(t, os.WriteFile(first, []byte("one"), 0o644))
	require.NoError(t, os.WriteFile(second, []byte("two"), 0o644))

	customer, err := f.profile.SetProfileImage(f.ctx, first)
	require.NoError(t, err)
	require.NotNil(t, customer.ProfileImagePath)
	firstCopy := *customer.ProfileImagePath
	assert.Equal(t, ".png", filepath.Ext(firstCopy))

	customer, err = f.profile.SetProfileImage(f.ctx, second)
	require.NoError(t, err)
	secondCopy := *customer.ProfileImagePath
	assert.NotEqual(t, firstCopy, secondCopy)

	data, err := os.ReadFile(secondCopy)
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))

	_, err = os.Stat(firstCopy)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(first)
	assert.NoError(t, err, "the selected source file is left alone")

	_, err = f.profile.SetProfileImage(f.ctx, filepath.Join(dir, "missing.jpg"))
	require.Error(t, err)
}
