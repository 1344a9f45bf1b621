package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tristendillon/create-common-app/core/models"
	"github.com/tristendillon/create-common-app/core/prompt"
)

// answerFlags are the non-interactive equivalents of the prompts.
type answerFlags struct {
	framework    string
	typescript   bool
	environments []string
	tailwind     bool
	force        bool
}

func (f *answerFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.framework, "framework", "", "Framework to use: none, vite or next")
	cmd.Flags().BoolVar(&f.typescript, "typescript", true, "Use TypeScript")
	cmd.Flags().StringSliceVar(&f.environments, "env", nil, "Runtime environments when no framework is used: browser, node")
	cmd.Flags().BoolVar(&f.tailwind, "tailwind", false, "Add Tailwind CSS (react and next only)")
}

// answers builds Answers from the flags the user actually set, leaving the
// rest empty for the prompts to fill in.
func (f *answerFlags) answers(cmd *cobra.Command, args []string) models.Answers {
	var answers models.Answers
	if len(args) > 0 {
		answers.TargetDir = args[0]
	}
	if cmd.Flags().Changed("framework") {
		answers.Framework = models.Framework(f.framework)
	}
	if cmd.Flags().Changed("typescript") {
		answers.Language = models.LanguageFor(f.typescript)
	}
	for _, env := range f.environments {
		answers.Environments = append(answers.Environments, models.Environment(env))
	}
	answers.StylingPreset = f.tailwind
	answers.Overwrite = f.force
	return answers
}

// withDefaults fills whatever is still unset from the flag defaults.
func (f *answerFlags) withDefaults(answers models.Answers) models.Answers {
	if answers.TargetDir == "" {
		answers.TargetDir = prompt.DefaultProjectName
	}
	if answers.Framework == "" {
		answers.Framework = models.FrameworkVite
	}
	if answers.Language == "" {
		answers.Language = models.LanguageFor(f.typescript)
	}
	return answers
}
