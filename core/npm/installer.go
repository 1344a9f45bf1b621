package npm

import (
	"context"
	"fmt"

	"github.com/tristendillon/create-common-app/core/models"
	"github.com/tristendillon/create-common-app/core/process"
)

type PackageManager string

const (
	NPM  PackageManager = "npm"
	PNPM PackageManager = "pnpm"
	Yarn PackageManager = "yarn"
)

func ParsePackageManager(s string) (PackageManager, error) {
	switch PackageManager(s) {
	case "", NPM:
		return NPM, nil
	case PNPM:
		return PNPM, nil
	case Yarn:
		return Yarn, nil
	default:
		return "", fmt.Errorf("unsupported package manager %q", s)
	}
}

// InstallArgs builds the argument list that adds packages to the manifest.
func (pm PackageManager) InstallArgs(dev bool, packages []string) []string {
	var args []string
	switch pm {
	case PNPM:
		args = []string{"add"}
		if dev {
			args = append(args, "--save-dev")
		}
	case Yarn:
		args = []string{"add"}
		if dev {
			args = append(args, "--dev")
		}
	default:
		args = []string{"install"}
		if dev {
			args = append(args, "--save-dev")
		}
	}
	return append(args, packages...)
}

// InstallCommand is the line a user can run by hand when installs were skipped.
func (pm PackageManager) InstallCommand(dev bool, specs []models.PackageSpec) string {
	return process.Command{Name: string(pm), Args: pm.InstallArgs(dev, models.SpecStrings(specs))}.String()
}

// RunCommand is how a user runs a package.json script with this manager.
func (pm PackageManager) RunCommand(script string) string {
	if pm == NPM || pm == "" {
		return "npm run " + script
	}
	return string(pm) + " " + script
}

// Installer adds packages to the project in dir.
type Installer interface {
	Install(ctx context.Context, dir string, specs []models.PackageSpec, dev bool) error
}

// CLIInstaller runs the package manager with output streamed to the user.
type CLIInstaller struct {
	runner  process.Runner
	manager PackageManager
}

func NewCLIInstaller(runner process.Runner, manager PackageManager) *CLIInstaller {
	if manager == "" {
		manager = NPM
	}
	return &CLIInstaller{runner: runner, manager: manager}
}

func (i *CLIInstaller) Manager() PackageManager {
	return i.manager
}

// Install returns an error wrapping process.ErrToolNotFound when the package
// manager is missing, distinct from a failed install.
func (i *CLIInstaller) Install(ctx context.Context, dir string, specs []models.PackageSpec, dev bool) error {
	if len(specs) == 0 {
		return nil
	}

	_, err := i.runner.Run(ctx, process.Command{
		Dir:    dir,
		Name:   string(i.manager),
		Args:   i.manager.InstallArgs(dev, models.SpecStrings(specs)),
		Env:    []string{"ADBLOCK=1", "DISABLE_OPENCOLLECTIVE=1"},
		Stream: true,
	})
	if err != nil {
		return fmt.Errorf("failed to install %d packages with %s: %w", len(specs), i.manager, err)
	}
	return nil
}
