package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates an active customer", func(t *testing.T) {
		user, err := NewUser("Jane Doe", "Jane@Example.COM", "password1")
		require.NoError(t, err)

		assert.Equal(t, "Jane Doe", user.Name)
		assert.Equal(t, "jane@example.com", user.Email)
		assert.Equal(t, RoleCustomer, user.Role)
		assert.True(t, user.Active)
		assert.True(t, user.CanLogin())
		assert.False(t, user.IsAdmin())
		assert.NotEqual(t, "password1", user.PasswordHash)
	})

	t.Run("publishes UserRegistered event", func(t *testing.T) {
		user, err := NewUser("Jane Doe", "jane@example.com", "password1")
		require.NoError(t, err)

		events := user.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventUserRegistered, events[0].EventType())
	})

	t.Run("fails with invalid email", func(t *testing.T) {
		for _, email := range []string{"", "not-an-email", "missing@domain"} {
			_, err := NewUser("Jane", email, "password1")
			require.Error(t, err, email)
		}
	})

	t.Run("fails with weak password", func(t *testing.T) {
		_, err := NewUser("Jane", "jane@example.com", "short1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 8 characters")

		_, err = NewUser("Jane", "jane@example.com", "lettersonly")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least one letter and one number")
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewUser("  ", "jane@example.com", "password1")
		require.Error(t, err)
	})
}

func TestNewAdminUser(t *testing.T) {
	user, err := NewAdminUser("Root", "admin@example.com", "password1")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, user.Role)
	assert.True(t, user.IsAdmin())
}

func TestUser_Passwords(t *testing.T) {
	user, err := NewUser("Jane", "jane@example.com", "password1")
	require.NoError(t, err)

	t.Run("verifies the correct password", func(t *testing.T) {
		assert.True(t, user.VerifyPassword("password1"))
		assert.False(t, user.VerifyPassword("wrong"))
	})

	t.Run("change requires the current password", func(t *testing.T) {
		err := user.ChangePassword("wrong", "newpassword1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Current password is incorrect")

		require.NoError(t, user.ChangePassword("password1", "newpassword1"))
		assert.True(t, user.VerifyPassword("newpassword1"))
		assert.False(t, user.VerifyPassword("password1"))
	})
}

func TestUser_ActiveFlag(t *testing.T) {
	user, err := NewUser("Jane", "jane@example.com", "password1")
	require.NoError(t, err)

	require.NoError(t, user.Deactivate())
	assert.False(t, user.CanLogin())
	require.Error(t, user.Deactivate())

	require.NoError(t, user.Activate())
	assert.True(t, user.CanLogin())
	require.Error(t, user.Activate())
}

func TestUser_RecordLogin(t *testing.T) {
	user, err := NewUser("Jane", "jane@example.com", "password1")
	require.NoError(t, err)
	require.Nil(t, user.LastLoginAt)

	user.RecordLogin()
	require.NotNil(t, user.LastLoginAt)
}

func TestRole_IsValid(t *testing.T) {
	assert.True(t, RoleCustomer.IsValid())
	assert.True(t, RoleAdmin.IsValid())
	assert.False(t, Role("superuser").IsValid())
}
