package authorization

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHas(t *testing.T) {
	mask := PermWrite | PermSuper

	assert.True(t, Has(mask, PermWrite))
	assert.True(t, Has(mask, PermSuper))
	assert.False(t, Has(mask, PermMaintenance))
	assert.False(t, Has(mask, PermSupreme))
}

func TestRequiredFor(t *testing.T) {
	tests := []struct {
		path     string
		expected Permission
	}{
		{"/api/equipment/query", PermWrite},
		{"/api/equipment", PermWrite},
		{"/api/organization/add", PermSuper},
		{"/api/organization/query", 0},
		{"/api/user/admin", PermSuper},
		{"/api/user/create", PermSuper},
		{"/api/user/dispatch-query", PermMaintenanceHigher},
		{"/api/user/alive", 0},
		{"/api/maintenance/query", 0},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, RequiredFor(tt.path))
		})
	}
}

func TestIsPublic(t *testing.T) {
	assert.True(t, IsPublic("/api/user/login", "POST"))
	assert.True(t, IsPublic("/api/maintenance/report", "POST"))
	assert.True(t, IsPublic("/api/maintenance/arrival", "PATCH"))
	assert.False(t, IsPublic("/api/user/login", "GET"))
	assert.False(t, IsPublic("/api/maintenance/query", "GET"))
	assert.False(t, IsPublic("/api/equipment/query", "GET"))
}
