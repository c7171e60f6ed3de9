package access

import (
	"net/url"
	"strings"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/employee"
)

// Route is an exact (method, path) pair.
type Route struct {
	Method string
	Path   string
}

func newRoute(method, path string) Route {
	return Route{Method: strings.ToUpper(method), Path: path}
}

// PolicyConfig is the static access configuration handed to NewPolicy.
type PolicyConfig struct {
	// Bypass routes skip authentication entirely. Exact match only.
	Bypass []Route

	// Permissions maps employee routes to the node they require. A path ending
	// in "/" also covers "<path><numeric id>" for the same method.
	Permissions map[Route]employee.Permission

	// EmployeePrefixes mark employee-gated paths; so does any path containing AdminMarker.
	EmployeePrefixes []string
	AdminMarker      string

	// APIPrefix separates JSON endpoints from page endpoints.
	APIPrefix string

	LoginURL   string
	LogoutPath string
}

// Policy is the immutable routing half of the access decision.
type Policy struct {
	bypass           map[Route]struct{}
	permissions      map[Route]employee.Permission
	employeePrefixes []string
	adminMarker      string
	apiPrefix        string
	loginURL         string
	logoutPath       string
}

// NewPolicy copies cfg so later changes to the caller's maps have no effect.
func NewPolicy(cfg PolicyConfig) *Policy {
	p := &Policy{
		bypass:           make(map[Route]struct{}, len(cfg.Bypass)),
		permissions:      make(map[Route]employee.Permission, len(cfg.Permissions)),
		employeePrefixes: append([]string(nil), cfg.EmployeePrefixes...),
		adminMarker:      cfg.AdminMarker,
		apiPrefix:        cfg.APIPrefix,
		loginURL:         cfg.LoginURL,
		logoutPath:       cfg.LogoutPath,
	}
	for _, r := range cfg.Bypass {
		p.bypass[newRoute(r.Method, r.Path)] = struct{}{}
	}
	for r, node := range cfg.Permissions {
		p.permissions[newRoute(r.Method, r.Path)] = node
	}
	return p
}

// Bypasses reports whether (path, method) is on the allow-list.
func (p *Policy) Bypasses(path, method string) bool {
	_, ok := p.bypass[newRoute(method, path)]
	return ok
}

// RequiredPermission resolves the node an employee route needs.
// ok is false when no node is required.
func (p *Policy) RequiredPermission(method, path string) (node employee.Permission, ok bool) {
	if node, ok = p.permissions[newRoute(method, path)]; ok {
		return node, true
	}

	idx := strings.LastIndex(path, "/")
	if idx < 0 || !isNumeric(path[idx+1:]) {
		return "", false
	}
	node, ok = p.permissions[newRoute(method, path[:idx+1])]
	return node, ok
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// IsEmployeeGated reports whether path requires an employee session.
func (p *Policy) IsEmployeeGated(path string) bool {
	for _, prefix := range p.employeePrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return p.adminMarker != "" && strings.Contains(path, p.adminMarker)
}

func (p *Policy) IsAPI(path string) bool {
	return strings.HasPrefix(path, p.apiPrefix)
}

func (p *Policy) IsLogout(path string) bool {
	return path == p.logoutPath
}

// LoginRedirect builds the login URL that returns the user to path?rawQuery afterwards.
func (p *Policy) LoginRedirect(path, rawQuery string) string {
	target := path
	if rawQuery != "" {
		target += "?" + rawQuery
	}
	return p.loginURL + "?redirect=" + url.QueryEscape(target)
}

// BypassRoutes lists the allow-list, for diagnostics.
func (p *Policy) BypassRoutes() []Route {
	out := make([]Route, 0, len(p.bypass))
	for r := range p.bypass {
		out = append(out, r)
	}
	return out
}
