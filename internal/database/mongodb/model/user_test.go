package model

import (
	"testing"

	"soundgate/internal/core"

	"github.com/stretchr/testify/assert"
)

func TestUserActive(t *testing.T) {
	var nilUser *User
	assert.False(t, nilUser.Active())
	assert.True(t, (&User{Status: core.StatusActive, Role: core.RoleUser}).Active())
	assert.False(t, (&User{Status: core.StatusActive, Role: core.RoleBanned}).Active())
	assert.False(t, (&User{Status: core.StatusSuspended, Role: core.RoleUser}).Active())
	assert.False(t, (&User{Status: core.StatusPending, Role: core.RoleAdmin}).Active())
}
