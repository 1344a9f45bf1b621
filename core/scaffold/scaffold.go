package scaffold

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tristendillon/create-common-app/core/cache"
	"github.com/tristendillon/create-common-app/core/dependency"
	"github.com/tristendillon/create-common-app/core/eslint"
	"github.com/tristendillon/create-common-app/core/git"
	"github.com/tristendillon/create-common-app/core/jsonfile"
	"github.com/tristendillon/create-common-app/core/logger"
	"github.com/tristendillon/create-common-app/core/models"
	"github.com/tristendillon/create-common-app/core/npm"
	"github.com/tristendillon/create-common-app/core/process"
	"github.com/tristendillon/create-common-app/core/shared"
	"github.com/tristendillon/create-common-app/core/template_engine"
)

// ErrDirectoryConflict means the target holds files and overwriting was not
// confirmed.
var ErrDirectoryConflict = errors.New("target directory is not empty")

const ManifestFile = "package.json"

// Templates materializes a template set into a directory.
type Templates interface {
	GenerateFolder(set, outputDir string, data interface{}, opts template_engine.CopyOptions) error
}

type Options struct {
	LintFormat        eslint.Format
	PeerFailurePolicy cache.FailurePolicy
	VersionRange      string
	TemplateExcludes  []string
	Install           bool
	Git               bool
	CommitMessage     string
}

func DefaultOptions() Options {
	return Options{
		LintFormat:        eslint.FormatJSON,
		PeerFailurePolicy: cache.RetryUnavailable,
		VersionRange:      models.DefaultVersionRange,
		TemplateExcludes:  []string{"**/.DS_Store"},
		Install:           true,
		Git:               true,
		CommitMessage:     git.DefaultCommitMessage,
	}
}

type Orchestrator struct {
	templates Templates
	registry  npm.Registry
	installer npm.Installer
	vcs       git.VCS
	options   Options
}

func NewOrchestrator(templates Templates, registry npm.Registry, installer npm.Installer, vcs git.VCS, options Options) *Orchestrator {
	return &Orchestrator{
		templates: templates,
		registry:  registry,
		installer: installer,
		vcs:       vcs,
		options:   options,
	}
}

type Result struct {
	Dir          string
	Name         string
	ConfigPath   string
	Config       *models.LintConfig
	Dependencies *models.DependencyLists

	// Skipped lists what still has to be installed by hand.
	SkippedDevelopment []models.PackageSpec
	SkippedRuntime     []models.PackageSpec
	GitInitialized     bool
	CacheMetrics       *cache.CacheMetrics
}

// Plan derives the lint config and the dependency lists for answers without
// touching the filesystem.
func Plan(ctx context.Context, answers models.Answers, resolver dependency.PeerResolver, versionRange string) (*models.LintConfig, *models.DependencyLists, error) {
	config := eslint.Derive(answers)
	lists, err := dependency.NewBuilder(resolver, versionRange).Build(ctx, answers, config)
	if err != nil {
		return nil, nil, err
	}
	return config, lists, nil
}

// Run generates the project described by answers. Every step either
// completes or aborts the run, except installs whose tool is missing and
// repository init, which degrade to a warning.
func (o *Orchestrator) Run(ctx context.Context, answers models.Answers) (*Result, error) {
	if err := answers.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("Answers: %+v", answers)

	dir, err := filepath.Abs(answers.TargetDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", answers.TargetDir, err)
	}
	result := &Result{Dir: dir, Name: shared.ToValidPackageName(filepath.Base(dir))}

	logger.Info("Creating a new app in %s", dir)
	if err := prepareDir(dir, answers.Overwrite); err != nil {
		return nil, err
	}

	data := template_engine.DataFor(answers, result.Name)
	for _, layer := range template_engine.LayersFor(answers, o.options.TemplateExcludes) {
		if err := o.templates.GenerateFolder(layer.Set, dir, data, layer.Options); err != nil {
			return nil, fmt.Errorf("failed to copy template %s: %w", layer.Set, err)
		}
	}

	if err := jsonfile.SetManifestName(filepath.Join(dir, ManifestFile), result.Name); err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", ManifestFile, err)
	}

	resolver := npm.NewPeerResolver(o.registry, cache.NewPeerCache(o.options.PeerFailurePolicy))
	config, lists, err := Plan(ctx, answers, resolver, o.options.VersionRange)
	if err != nil {
		return nil, err
	}
	result.Config = config
	result.Dependencies = lists
	resolver.Cache().LogStats()
	result.CacheMetrics = resolver.Cache().GetMetrics()

	for _, spec := range lists.Unresolved {
		logger.Warn("Could not look up peer dependencies of %s", spec)
	}

	if result.ConfigPath, err = eslint.WriteConfig(dir, config, o.options.LintFormat); err != nil {
		return nil, fmt.Errorf("failed to write lint config: %w", err)
	}

	if o.options.Install {
		if result.SkippedDevelopment, err = o.install(ctx, dir, lists.Development, true); err != nil {
			return nil, err
		}
		if result.SkippedRuntime, err = o.install(ctx, dir, lists.Runtime, false); err != nil {
			return nil, err
		}
	} else {
		logger.Debug("Skipping installs")
		result.SkippedDevelopment = lists.Development
		result.SkippedRuntime = lists.Runtime
	}

	if o.options.Git && o.vcs != nil {
		result.GitInitialized = o.vcs.TryInit(ctx, dir, o.options.CommitMessage)
	}

	return result, nil
}

// install returns the specs left uninstalled because the package manager
// could not be found.
func (o *Orchestrator) install(ctx context.Context, dir string, specs []models.PackageSpec, dev bool) ([]models.PackageSpec, error) {
	if len(specs) == 0 {
		return nil, nil
	}

	kind := "dependencies"
	if dev {
		kind = "devDependencies"
	}
	logger.Info("Installing %s: %v", kind, models.SpecNames(specs))

	err := o.installer.Install(ctx, dir, specs, dev)
	switch {
	case err == nil:
		return nil, nil
	case errors.Is(err, process.ErrToolNotFound):
		logger.Warn("Package manager not found, %s left uninstalled: %v", kind, models.SpecStrings(specs))
		return specs, nil
	default:
		return nil, err
	}
}

func prepareDir(dir string, overwrite bool) error {
	info, err := os.Stat(dir)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return os.MkdirAll(dir, os.ModePerm)
	case err != nil:
		return fmt.Errorf("failed to inspect %s: %w", dir, err)
	case !info.IsDir():
		return fmt.Errorf("%w: %s is a file", ErrDirectoryConflict, dir)
	}

	if overwrite {
		logger.Debug("Emptying %s", dir)
		return emptyDir(dir)
	}

	empty, err := shared.IsEmptyDir(dir)
	if err != nil {
		return err
	}
	if !empty {
		return fmt.Errorf("%w: %s", ErrDirectoryConflict, dir)
	}
	return nil
}

func emptyDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil {
			return fmt.Errorf("failed to clear %s: %w", dir, err)
		}
	}
	return nil
}
