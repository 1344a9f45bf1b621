package template_engine

import (
	"embed"
	"slices"

	"github.com/tristendillon/create-common-app/core/models"
	"github.com/tristendillon/create-common-app/core/shared"
)

//go:embed all:templates
var TemplateFS embed.FS

const (
	CommonSet   = "common"
	TailwindSet = "tailwind"
)

// dotfiles are stored without their leading dot so packaging tools and the
// embed rules leave them alone.
var dotfiles = []string{"gitignore", "editorconfig", "eslintignore", "prettierrc", "lintstagedrc", "husky"}

// hookFiles are git hooks; git skips hooks without the executable bit.
var hookFiles = []string{"husky/*"}

func RenameDotfile(name string) string {
	if slices.Contains(dotfiles, name) {
		return "." + name
	}
	return name
}

// SetFor names the language/framework template set, e.g. "typescript-react".
func SetFor(answers models.Answers) string {
	lang := "javascript"
	if answers.IsTyped() {
		lang = "typescript"
	}

	variant := "plain"
	switch answers.Framework {
	case models.FrameworkVite:
		variant = "react"
	case models.FrameworkNext:
		variant = "next"
	}
	return lang + "-" + variant
}

// Layer is one template set copied into the project, in order.
type Layer struct {
	Set     string
	Options CopyOptions
}

// LayersFor lists the sets a project is built from. Later layers overwrite
// files from earlier ones.
func LayersFor(answers models.Answers, excludes []string) []Layer {
	layers := []Layer{
		{Set: SetFor(answers), Options: CopyOptions{Excludes: excludes}},
		{Set: CommonSet, Options: CopyOptions{Rename: RenameDotfile, Excludes: excludes, Executable: hookFiles}},
	}
	if answers.StylingPreset && answers.UsesUI() {
		layers = append(layers, Layer{Set: TailwindSet, Options: CopyOptions{Excludes: excludes}})
	}
	return layers
}

func DataFor(answers models.Answers, name string) TemplateData {
	return TemplateData{
		Name:        name,
		DisplayName: shared.ToDisplayName(name),
		TypeScript:  answers.IsTyped(),
		Framework:   string(answers.Framework),
		Tailwind:    answers.StylingPreset && answers.UsesUI(),
	}
}
