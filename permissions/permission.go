package permissions

import (
	_ "embed"
	"encoding/json"
	"net/http"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`
}

// FindPermissions matches a route pattern and method. Trailing slashes are ignored,
// and HEAD requests fall back to the GET entry.
func (r *PermissionData) FindPermissions(path, method string) Permission {
	path = normalize(path)

	find := func(method string) int {
		return slices.IndexFunc(r.Endpoints, func(rp Permission) bool {
			return normalize(rp.Path) == path && strings.EqualFold(rp.Method, method)
		})
	}

	idx := find(method)
	if idx == -1 && method == http.MethodHead {
		idx = find(http.MethodGet)
	}

	if idx == -1 {
		return Permission{}
	}

	return r.Endpoints[idx]
}

func normalize(path string) string {
	if len(path) > 1 {
		return strings.TrimSuffix(path, "/")
	}

	return path
}

func Get() *PermissionData {
	return parse(permissionsData)
}

func parse(data []byte) *PermissionData {
	var permissions PermissionData

	err := json.Unmarshal(data, &permissions)
	if err != nil {
		log.Err(err).Msg("Failed to decode embedded permissions")

		return nil
	}

	log.Info().Int("endpoints", len(permissions.Endpoints)).Msg("Successfully loaded embedded permissions")

	return &permissions
}
