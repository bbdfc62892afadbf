package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveScope(t *testing.T) {
	tests := []struct {
		role  Role
		level ScopeLevel
	}{
		{RoleAdmin, ScopeAll},
		{RoleAuditor, ScopeAll},
		{RoleOperator, ScopeOwn},
		{RoleUser, ScopeBasic},
		{Role("UNKNOWN"), ScopeBasic},
		{Role(""), ScopeBasic},
	}
	for _, tt := range tests {
		scope := ResolveScope(tt.role, "alice")
		assert.Equal(t, tt.level, scope.Level, "role %s", tt.role)
		assert.Equal(t, "alice", scope.Username)
	}
}

func TestOwnerOnly(t *testing.T) {
	owner, ok := ResolveScope(RoleOperator, "alice").OwnerOnly()
	assert.True(t, ok)
	assert.Equal(t, "alice", owner)

	_, ok = ResolveScope(RoleAdmin, "alice").OwnerOnly()
	assert.False(t, ok)

	_, ok = ResolveScope(RoleUser, "alice").OwnerOnly()
	assert.False(t, ok)
}

func TestIdentityScope(t *testing.T) {
	id := Identity{Username: "bob", Role: RoleAuditor}
	assert.Equal(t, ScopeAll, id.Scope().Level)
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleUser.Valid())
	assert.False(t, Role("ROOT").Valid())
}
