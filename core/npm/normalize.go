package npm

import "strings"

// Role is the naming prefix a lint package carries on the registry.
type Role string

const (
	RolePlugin    Role = "eslint-plugin"
	RoleConfig    Role = "eslint-config"
	RoleFormatter Role = "eslint-formatter"
)

// NormalizePackageName expands a shorthand lint reference into the registry
// package that provides it:
//
//	airbnb                  -> eslint-config-airbnb
//	airbnb-typescript/base  -> eslint-config-airbnb-typescript
//	@typescript-eslint      -> @typescript-eslint/eslint-plugin
//	@foo/bar                -> @foo/eslint-plugin-bar
//
// It never fails; applying it twice gives the same result as applying it once.
func NormalizePackageName(name string, role Role) string {
	prefix := string(role)
	name = strings.ReplaceAll(name, "\\", "/")

	if strings.HasPrefix(name, "@") {
		return normalizeScoped(name, prefix)
	}

	// Sub paths select a config inside the package, e.g. `airbnb/base`.
	base, _, _ := strings.Cut(name, "/")
	if strings.HasPrefix(base, prefix+"-") {
		return base
	}
	return prefix + "-" + base
}

func normalizeScoped(name, prefix string) string {
	scope, rest, hasSlash := strings.Cut(name, "/")

	// A bare "@" has no scope to attach the prefix to.
	if scope == "@" {
		return name
	}

	if !hasSlash || rest == "" || rest == prefix {
		return scope + "/" + prefix
	}

	sub, _, _ := strings.Cut(rest, "/")
	if strings.HasPrefix(sub, prefix+"-") {
		return name
	}
	return scope + "/" + prefix + "-" + rest
}
