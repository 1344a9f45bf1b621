package npm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePackageName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		role Role
		want string
	}{
		{"already prefixed config", "eslint-config-airbnb", RoleConfig, "eslint-config-airbnb"},
		{"short config", "airbnb", RoleConfig, "eslint-config-airbnb"},
		{"sub path stripped", "airbnb/base", RoleConfig, "eslint-config-airbnb"},
		{"sub path on prefixed", "eslint-config-airbnb-typescript/base", RoleConfig, "eslint-config-airbnb-typescript"},
		{"short sub path", "airbnb-typescript/base", RoleConfig, "eslint-config-airbnb-typescript"},
		{"web vitals", "next/core-web-vitals", RoleConfig, "eslint-config-next"},
		{"windows separators", "airbnb\\hooks", RoleConfig, "eslint-config-airbnb"},
		{"plain plugin", "import", RolePlugin, "eslint-plugin-import"},
		{"prefixed plugin", "eslint-plugin-tsdoc", RolePlugin, "eslint-plugin-tsdoc"},
		{"scope only", "@foo", RolePlugin, "@foo/eslint-plugin"},
		{"scope trailing slash", "@foo/", RolePlugin, "@foo/eslint-plugin"},
		{"scope with prefix", "@foo/eslint-plugin", RolePlugin, "@foo/eslint-plugin"},
		{"scope shorthand", "@typescript-eslint", RolePlugin, "@typescript-eslint/eslint-plugin"},
		{"scoped sub package", "@foo/bar", RolePlugin, "@foo/eslint-plugin-bar"},
		{"scoped prefixed sub package", "@foo/eslint-plugin-bar", RolePlugin, "@foo/eslint-plugin-bar"},
		{"scoped nested path", "@foo/bar/baz", RoleConfig, "@foo/eslint-config-bar/baz"},
		{"scoped windows separators", "@foo\\bar", RoleConfig, "@foo/eslint-config-bar"},
		{"prefix collision", "eslint-configurable", RoleConfig, "eslint-config-eslint-configurable"},
		{"scoped prefix collision", "@foo/eslint-configurable", RoleConfig, "@foo/eslint-config-eslint-configurable"},
		{"formatter", "pretty", RoleFormatter, "eslint-formatter-pretty"},
		{"bare at sign", "@", RolePlugin, "@"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePackageName(tt.in, tt.role))
		})
	}
}

func TestNormalizePackageNameIsIdempotent(t *testing.T) {
	inputs := []string{
		"", "airbnb", "airbnb/base", "eslint-config-airbnb", "prettier", "next/core-web-vitals",
		"@foo", "@foo/", "@foo/bar", "@foo/bar/baz", "@foo//x", "@", "a\\b", "eslint-configurable",
		"@typescript-eslint", "@scope/eslint-plugin", "simple-import-sort",
	}
	roles := []Role{RolePlugin, RoleConfig, RoleFormatter}

	for _, role := range roles {
		for _, in := range inputs {
			once := NormalizePackageName(in, role)
			assert.Equal(t, once, NormalizePackageName(once, role), "role=%s input=%q", role, in)
		}
	}
}
