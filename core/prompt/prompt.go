package prompt

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/tristendillon/create-common-app/core/logger"
	"github.com/tristendillon/create-common-app/core/models"
	"github.com/tristendillon/create-common-app/core/shared"
)

var (
	ErrAborted        = errors.New("aborted")
	ErrNotInteractive = errors.New("no terminal attached")
)

const DefaultProjectName = "my-app"

// IsInteractive reports whether stdin is a terminal a form can run on.
func IsInteractive() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// ValidateProjectName accepts any path whose base name sanitizes into a valid
// package name.
func ValidateProjectName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("project name is required")
	}
	base := filepath.Base(filepath.Clean(name))
	pkg := shared.ToValidPackageName(base)
	if !models.IsValidPackageName(pkg) {
		return fmt.Errorf("%q cannot be used as a package name", base)
	}
	return nil
}

// Ask fills in whatever initial leaves open. Fields already set are kept and
// their questions skipped.
func Ask(ctx context.Context, initial models.Answers) (models.Answers, error) {
	if !IsInteractive() {
		return initial, ErrNotInteractive
	}

	answers := initial
	typed := initial.Language != models.JavaScript

	if answers.TargetDir == "" {
		answers.TargetDir = DefaultProjectName
	}
	if answers.Framework == "" {
		answers.Framework = models.FrameworkVite
	}

	var groups []*huh.Group
	if initial.TargetDir == "" {
		groups = append(groups, huh.NewGroup(
			huh.NewInput().
				Title("What is your project named?").
				Placeholder(DefaultProjectName).
				Value(&answers.TargetDir).
				Validate(ValidateProjectName),
		))
	}
	if initial.Framework == "" {
		groups = append(groups, huh.NewGroup(
			huh.NewSelect[models.Framework]().
				Title("Which framework would you like to use?").
				Options(
					huh.NewOption("None", models.FrameworkNone),
					huh.NewOption("React (Vite)", models.FrameworkVite),
					huh.NewOption("Next.js", models.FrameworkNext),
				).
				Value(&answers.Framework),
		))
	}
	if initial.Language == "" {
		groups = append(groups, huh.NewGroup(
			huh.NewConfirm().
				Title("Would you like to use TypeScript?").
				Affirmative("Yes").
				Negative("No").
				Value(&typed),
		))
	}
	if len(initial.Environments) == 0 {
		groups = append(groups, huh.NewGroup(
			huh.NewMultiSelect[models.Environment]().
				Title("Where does your code run?").
				Options(
					huh.NewOption("Browser", models.EnvBrowser),
					huh.NewOption("Node", models.EnvNode),
				).
				Value(&answers.Environments),
		).WithHideFunc(func() bool { return answers.Framework != models.FrameworkNone }))
	}
	if !initial.StylingPreset {
		groups = append(groups, huh.NewGroup(
			huh.NewConfirm().
				Title("Would you like to use Tailwind CSS?").
				Affirmative("Yes").
				Negative("No").
				Value(&answers.StylingPreset),
		).WithHideFunc(func() bool { return !answers.UsesUI() }))
	}

	if len(groups) > 0 {
		if err := run(ctx, huh.NewForm(groups...)); err != nil {
			return initial, err
		}
	}

	answers.TargetDir = strings.TrimSpace(answers.TargetDir)
	if initial.Language == "" {
		answers.Language = models.LanguageFor(typed)
	}
	if !answers.UsesUI() {
		answers.StylingPreset = false
	}

	if !answers.Overwrite {
		empty, err := shared.IsEmptyDir(answers.TargetDir)
		if err != nil {
			return initial, err
		}
		if !empty {
			overwrite := false
			confirm := huh.NewForm(huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Directory %s is not empty. Remove its contents and continue?", answers.TargetDir)).
					Affirmative("Yes").
					Negative("No").
					Value(&overwrite),
			))
			if err := run(ctx, confirm); err != nil {
				return initial, err
			}
			answers.Overwrite = overwrite
		}
	}

	logger.Debug("Collected answers: %+v", answers)
	return answers, nil
}

func run(ctx context.Context, form *huh.Form) error {
	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrAborted
		}
		return fmt.Errorf("prompt failed: %w", err)
	}
	return nil
}
