package models

import "slices"

// RuleValue is a lint rule setting: a severity string or a
// [severity, options] pair.
type RuleValue = any

// LintConfig mirrors the .eslintrc document. Extends order is precedence:
// later entries override earlier ones.
type LintConfig struct {
	Env           map[string]bool      `json:"env" yaml:"env"`
	Parser        string               `json:"parser,omitempty" yaml:"parser,omitempty"`
	ParserOptions map[string]any       `json:"parserOptions" yaml:"parserOptions"`
	Extends       []string             `json:"extends" yaml:"extends"`
	Plugins       []string             `json:"plugins" yaml:"plugins"`
	Rules         map[string]RuleValue `json:"rules" yaml:"rules"`
}

func NewLintConfig() *LintConfig {
	return &LintConfig{
		Env:           make(map[string]bool),
		ParserOptions: make(map[string]any),
		Extends:       []string{},
		Plugins:       []string{},
		Rules:         make(map[string]RuleValue),
	}
}

// MergeRules copies every rule in overrides over the existing rules.
func (c *LintConfig) MergeRules(overrides map[string]RuleValue) {
	for name, value := range overrides {
		c.Rules[name] = value
	}
}

// Document returns the config as a plain map so encoders emit sorted keys.
func (c *LintConfig) Document() map[string]any {
	doc := map[string]any{
		"env":           c.Env,
		"parserOptions": c.ParserOptions,
		"extends":       slices.Clone(c.Extends),
		"plugins":       slices.Clone(c.Plugins),
		"rules":         c.Rules,
	}
	if c.Parser != "" {
		doc["parser"] = c.Parser
	}
	return doc
}
