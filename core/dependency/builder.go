package dependency

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/tristendillon/create-common-app/core/logger"
	"github.com/tristendillon/create-common-app/core/models"
	"github.com/tristendillon/create-common-app/core/npm"
)

// PeerResolver is satisfied by *npm.PeerResolver. A nil map with a nil error
// means the lookup tool was unavailable.
type PeerResolver interface {
	Resolve(ctx context.Context, spec string) (map[string]string, error)
}

// Hygiene tooling installed into every project.
var hygienePackages = []string{
	"@commitlint/cli",
	"@commitlint/config-conventional",
	"husky",
	"lint-staged",
}

var stylingPackages = []string{
	"tailwindcss",
	"postcss",
	"autoprefixer",
}

// builtinExtendPrefixes mark rule sets shipped inside eslint or a plugin.
var builtinExtendPrefixes = []string{"eslint:", "plugin:"}

type Builder struct {
	resolver     PeerResolver
	versionRange string
}

func NewBuilder(resolver PeerResolver, versionRange string) *Builder {
	if versionRange == "" {
		versionRange = models.DefaultVersionRange
	}
	return &Builder{resolver: resolver, versionRange: versionRange}
}

// Build partitions everything the project needs into runtime and development
// packages, in discovery order.
func (b *Builder) Build(ctx context.Context, answers models.Answers, config *models.LintConfig) (*models.DependencyLists, error) {
	runtime := b.runtimeSet(answers)
	dev := b.developmentSet(answers)

	unresolved, err := b.addLintDependencies(ctx, dev, config)
	if err != nil {
		return nil, err
	}

	for _, spec := range runtime.Specs() {
		if dev.Has(spec.Name) {
			logger.Debug("Dropping %s from development dependencies, already a runtime dependency", spec.Name)
			dev.Remove(spec.Name)
		}
	}

	lists := &models.DependencyLists{
		Runtime:     runtime.Specs(),
		Development: dev.Specs(),
		Unresolved:  unresolved,
	}

	logger.Debug("Dependencies: %v", models.SpecStrings(lists.Runtime))
	logger.Debug("Development dependencies: %v", models.SpecStrings(lists.Development))

	return lists, nil
}

func (b *Builder) runtimeSet(answers models.Answers) *models.PackageSet {
	set := models.NewPackageSet()
	if answers.UsesUI() {
		set.AddName("react", b.versionRange)
		set.AddName("react-dom", b.versionRange)
	}
	if answers.Framework == models.FrameworkNext {
		set.AddName("next", b.versionRange)
	}
	return set
}

func (b *Builder) developmentSet(answers models.Answers) *models.PackageSet {
	set := models.NewPackageSet()
	add := func(names ...string) {
		for _, name := range names {
			set.AddName(name, b.versionRange)
		}
	}

	typed := answers.IsTyped()
	ui := answers.UsesUI()

	if typed {
		add("typescript")
	}
	if answers.Framework == models.FrameworkVite {
		add("vite", "@vitejs/plugin-react")
	}
	if answers.HasEnvironment(models.EnvNode) || answers.Framework == models.FrameworkNext {
		add("@types/node")
	}
	if typed && ui {
		add("@types/react", "@types/react-dom")
	}
	if answers.StylingPreset && ui {
		add(stylingPackages...)
	}
	add("eslint", "prettier")
	add(hygienePackages...)

	return set
}

// addLintDependencies adds the packages behind every plugin and shareable
// config plus their peers. It returns the specs whose peers were unavailable.
func (b *Builder) addLintDependencies(ctx context.Context, set *models.PackageSet, config *models.LintConfig) ([]string, error) {
	var modules, unresolved []string
	for _, plugin := range config.Plugins {
		modules = append(modules, npm.NormalizePackageName(plugin, npm.RolePlugin))
	}
	for _, extend := range config.Extends {
		if isBuiltinExtend(extend) {
			continue
		}
		modules = append(modules, npm.NormalizePackageName(extend, npm.RoleConfig))
	}

	for _, module := range modules {
		spec := models.NewPackageSpec(module, b.versionRange)
		// Keep a range an earlier peer lookup already pinned.
		if !set.Has(module) {
			set.Add(spec)
		}

		peers, err := b.resolver.Resolve(ctx, spec.String())
		if err != nil {
			return nil, fmt.Errorf("failed to collect lint dependencies: %w", err)
		}
		if peers == nil {
			if !slices.Contains(unresolved, spec.String()) {
				unresolved = append(unresolved, spec.String())
			}
			continue
		}
		for _, name := range slices.Sorted(maps.Keys(peers)) {
			set.AddName(name, peers[name])
		}
	}

	if config.Parser != "" && !set.Has(config.Parser) {
		set.AddName(config.Parser, b.versionRange)
	}
	return unresolved, nil
}

func isBuiltinExtend(extend string) bool {
	for _, prefix := range builtinExtendPrefixes {
		if strings.HasPrefix(extend, prefix) {
			return true
		}
	}
	return false
}
