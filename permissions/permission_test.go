package permissions

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	data := Get()

	require.NotNil(t, data)
	assert.NotEmpty(t, data.Endpoints)
}

func TestParse_Invalid(t *testing.T) {
	assert.Nil(t, parse([]byte("{not json")))
}

func TestPermissionData_FindPermissions(t *testing.T) {
	data := Get()
	require.NotNil(t, data)

	tests := []struct {
		name      string
		path      string
		method    string
		wantSkip  bool
		wantRoles []string
		wantFound bool
	}{
		{name: "public gateway notification", path: "/v1/payments/notification", method: http.MethodPost, wantSkip: true, wantFound: true},
		{name: "trailing slash is ignored", path: "/v1/rooms/", method: http.MethodGet, wantSkip: true, wantFound: true},
		{name: "head falls back to get", path: "/v1/rooms/{id}", method: http.MethodHead, wantSkip: true, wantFound: true},
		{name: "method is case insensitive", path: "/v1/bookings/mybookings", method: "get", wantRoles: []string{"user", "admin", "superadmin"}, wantFound: true},
		{name: "admin route", path: "/v1/admin/bookings/{id}", method: http.MethodPatch, wantRoles: []string{"admin", "superadmin"}, wantFound: true},
		{name: "sync is admin only", path: "/v1/admin/sync-rooms", method: http.MethodPost, wantRoles: []string{"admin", "superadmin"}, wantFound: true},
		{name: "unknown method", path: "/v1/admin/sync-rooms", method: http.MethodGet},
		{name: "unknown path", path: "/v1/unknown", method: http.MethodGet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			permission := data.FindPermissions(tt.path, tt.method)

			if !tt.wantFound {
				assert.Empty(t, permission.Path)

				return
			}

			assert.NotEmpty(t, permission.Path)
			assert.Equal(t, tt.wantSkip, permission.Skip)
			assert.Equal(t, tt.wantRoles, permission.Permissions)
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "/", normalize("/"))
	assert.Equal(t, "/v1/rooms", normalize("/v1/rooms/"))
	assert.Equal(t, "/v1/rooms", normalize("/v1/rooms"))
}
