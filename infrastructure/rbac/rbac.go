// Package rbac maps roles to the screens they are shown. Screens are not
// guarded per role; a hidden link is the only restriction.
package rbac

import (
	"strings"

	"keepstock/infrastructure/cache"
)

const (
	RoleStore   = "store"
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

var Roles = []string{RoleStore, RoleManager, RoleAdmin}

// Screen codes used by navigation.
const (
	ScreenDashboard = "DASHBOARD_VIEW"
	ScreenInput     = "INPUT_PRODUCT"
	ScreenRefill    = "REFILL_STOCK"
	ScreenBoxes     = "BOX_MANAGEMENT_VIEW"
	ScreenPrint     = "PRINT_SHEETS"
	ScreenActivity  = "ACTIVITY_LOGS_VIEW"
	ScreenUpload    = "CATALOG_UPLOAD"
	ScreenUsers     = "STAFF_ACCOUNTS"
	ScreenHelp      = "HELP_VIEW"
)

type Rbac struct {
	cache *cache.RbacRolesCache
}

func New(c *cache.RbacRolesCache) *Rbac {
	return &Rbac{cache: c}
}

func ValidRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Add grants code to role. The same code may be registered for several
// routes; it is shown once.
func (r *Rbac) Add(role, code, method, path string) {
	if r == nil || r.cache == nil {
		return
	}
	r.cache.Add(role, cache.Resource{
		Role:             role,
		UserResourceCode: code,
		Method:           strings.ToUpper(method),
		Path:             path,
	})
}

// AddRoles grants code to every role listed.
func (r *Rbac) AddRoles(roles []string, code, method, path string) {
	for _, role := range roles {
		r.Add(role, code, method, path)
	}
}

// Permissions returns the screen codes visible to roles.
func (r *Rbac) Permissions(roles []string) map[string]int {
	perms := make(map[string]int)
	if r == nil || r.cache == nil {
		return perms
	}
	for _, res := range r.cache.GetRolesAndResources(roles) {
		perms[res.UserResourceCode] = 1
	}
	return perms
}
