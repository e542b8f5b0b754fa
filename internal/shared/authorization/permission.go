// Package authorization defines the role bitmask and the route permission table.
package authorization

import "regexp"

// Permission is a bit flag on the profile role mask.
type Permission uint8

const (
	// PermWrite allows mutating equipment records.
	PermWrite Permission = 1 << iota
	// PermHigher lifts the own-department restriction on reads.
	PermHigher
	// PermMaintenance marks a profile as a dispatchable maintenance worker.
	PermMaintenance
	// PermMaintenanceHigher allows managing dispatch queries and assignments.
	PermMaintenanceHigher
	// PermSuper is the ordinary administrator.
	PermSuper
	// PermSupreme is the super administrator; such profiles are hidden from listings.
	PermSupreme
)

// Has reports whether mask contains p.
func Has(mask, p Permission) bool {
	return mask&p != 0
}

// RouteRule maps a path pattern to the capability bit required to enter it.
type RouteRule struct {
	Pattern  *regexp.Regexp
	Required Permission
}

// RouteRules is evaluated in order, first match wins. Paths matching no rule
// only require a valid session.
var RouteRules = []RouteRule{
	{regexp.MustCompile(`^/api/equipment`), PermWrite},
	{regexp.MustCompile(`^/api/organization/(?:add|update|remove)`), PermSuper},
	{regexp.MustCompile(`^/api/user/(?:admin|reset_password|create|permission)`), PermSuper},
	{regexp.MustCompile(`^/api/user/dispatch-query`), PermMaintenanceHigher},
}

// RequiredFor returns the capability bit for path, or 0 when no rule matches.
func RequiredFor(path string) Permission {
	for _, rule := range RouteRules {
		if rule.Pattern.MatchString(path) {
			return rule.Required
		}
	}
	return 0
}

// publicRoute is an exact (path, method) pair served without a session. These
// are the login flow and the unauthenticated mobile fault-reporting surface.
type publicRoute struct {
	Path   string
	Method string
}

var publicRoutes = []publicRoute{
	{"/api/user/login", "POST"},
	{"/api/user/logout", "GET"},
	{"/api/maintenance/report", "POST"},
	{"/api/maintenance/arrival", "PATCH"},
	{"/api/maintenance/fix", "PATCH"},
	{"/api/maintenance/appraisal", "PATCH"},
	{"/api/maintenance/cancel", "PATCH"},
	{"/api/maintenance/captcha", "GET"},
}

// IsPublic reports whether the request may skip the session guard entirely.
func IsPublic(path, method string) bool {
	for _, r := range publicRoutes {
		if r.Path == path && r.Method == method {
			return true
		}
	}
	return false
}
