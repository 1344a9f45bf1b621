package eslint

import (
	"github.com/tristendillon/create-common-app/core/logger"
	"github.com/tristendillon/create-common-app/core/models"
)

const (
	TypeScriptParser = "@typescript-eslint/parser"
	TSConfigPath     = "./tsconfig.json"

	// FormattingCompat turns off every stylistic rule that fights the
	// formatter, so it has to be the last extends entry.
	FormattingCompat = "prettier"
)

var baseRules = map[string]models.RuleValue{
	"no-continue":                  "off",
	"no-param-reassign":            "off",
	"no-restricted-syntax":         "off",
	"no-nested-ternary":            "off",
	"import/prefer-default-export": "off",
	"simple-import-sort/imports":   "error",
	"simple-import-sort/exports":   "error",
}

var typedRules = map[string]models.RuleValue{
	"tsdoc/syntax":                              "warn",
	"@typescript-eslint/no-unsafe-member-access": "off",
	"@typescript-eslint/no-floating-promises": []any{
		"error", map[string]any{"ignoreIIFE": true},
	},
}

var uiRules = map[string]models.RuleValue{
	"react/self-closing-comp": []any{
		"error", map[string]any{"component": true, "html": true},
	},
}

// entry is one candidate in an ordered list; inactive entries are dropped.
type entry struct {
	name   string
	active bool
}

func always(name string) entry { return entry{name: name, active: true} }

func when(cond bool, name string) entry { return entry{name: name, active: cond} }

// compose keeps active entries in order and drops repeats.
func compose(entries ...entry) []string {
	out := make([]string, 0, len(entries))
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if !e.active || e.name == "" || seen[e.name] {
			continue
		}
		seen[e.name] = true
		out = append(out, e.name)
	}
	return out
}

func choose(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}

// Derive builds the lint config for a set of answers. It has no side
// effects and never modifies answers.
func Derive(answers models.Answers) *models.LintConfig {
	typed := answers.IsTyped()
	ui := answers.UsesUI()

	config := models.NewLintConfig()
	config.Env["es2021"] = true
	config.ParserOptions["ecmaVersion"] = "latest"
	config.ParserOptions["sourceType"] = "module"
	config.MergeRules(baseRules)

	if typed {
		config.Parser = TypeScriptParser
		config.ParserOptions["project"] = TSConfigPath
		config.MergeRules(typedRules)
	}

	if ui {
		config.MergeRules(uiRules)
		config.Env[string(models.EnvBrowser)] = true
	}

	switch answers.Framework {
	case models.FrameworkNone:
		for _, env := range answers.Environments {
			config.Env[string(env)] = true
		}
	case models.FrameworkNext:
		config.Env[string(models.EnvBrowser)] = true
		config.Env[string(models.EnvNode)] = true
	}

	// No import plugin entry: the airbnb configs register it and
	// eslint-plugin-import arrives as their peer.
	config.Plugins = compose(
		when(typed, "@typescript-eslint"),
		when(typed, "eslint-plugin-tsdoc"),
		always("simple-import-sort"),
	)

	config.Extends = compose(
		always(choose(ui, "airbnb", "airbnb/base")),
		when(typed, choose(ui, "airbnb-typescript", "airbnb-typescript/base")),
		when(ui, "airbnb/hooks"),
		when(ui, "plugin:react/jsx-runtime"),
		when(typed, "plugin:@typescript-eslint/recommended"),
		when(typed, "plugin:@typescript-eslint/recommended-requiring-type-checking"),
		when(answers.Framework == models.FrameworkNext, "next/core-web-vitals"),
		always(FormattingCompat),
	)

	logger.Debug("Eslint config: env=%v extends=%v plugins=%v parser=%q",
		config.Env, config.Extends, config.Plugins, config.Parser)

	return config
}
