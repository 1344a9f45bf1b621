/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tristendillon/create-common-app/core/cache"
	"github.com/tristendillon/create-common-app/core/config"
	"github.com/tristendillon/create-common-app/core/eslint"
	"github.com/tristendillon/create-common-app/core/git"
	"github.com/tristendillon/create-common-app/core/logger"
	"github.com/tristendillon/create-common-app/core/models"
	"github.com/tristendillon/create-common-app/core/npm"
	"github.com/tristendillon/create-common-app/core/process"
	"github.com/tristendillon/create-common-app/core/prompt"
	"github.com/tristendillon/create-common-app/core/scaffold"
	"github.com/tristendillon/create-common-app/core/template_engine"
	"github.com/tristendillon/create-common-app/core/ux"
)

var (
	initFlags answerFlags
	yes       bool
	noInstall bool
	noGit     bool
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Create a new project",
	Long: `Creates a new project in dir. Questions not answered by flags are asked
interactively unless --yes is given, in which case defaults are used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug("init called")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		answers := initFlags.answers(cmd, args)
		if yes {
			answers = initFlags.withDefaults(answers)
		} else {
			answers, err = prompt.Ask(cmd.Context(), answers)
			if errors.Is(err, prompt.ErrNotInteractive) {
				return fmt.Errorf("%w: pass --yes to use defaults", err)
			}
			if err != nil {
				return err
			}
		}

		options, manager, err := scaffoldOptions(cfg)
		if err != nil {
			return err
		}

		runner := process.NewExecRunner()
		orchestrator := scaffold.NewOrchestrator(
			template_engine.NewTemplateEngine(),
			npm.NewCLIRegistry(runner, cfg.RegistryTool),
			npm.NewCLIInstaller(runner, manager),
			git.New(runner),
			options,
		)

		result, err := orchestrator.Run(cmd.Context(), answers)
		if errors.Is(err, scaffold.ErrDirectoryConflict) {
			return fmt.Errorf("%w. Use --force to overwrite", err)
		}
		if err != nil {
			return err
		}

		ux.NextSteps(cmd.OutOrStdout(), summaryFor(result, answers, manager))
		return nil
	},
}

func scaffoldOptions(cfg *config.Config) (scaffold.Options, npm.PackageManager, error) {
	options := scaffold.DefaultOptions()

	manager, err := npm.ParsePackageManager(cfg.PackageManager)
	if err != nil {
		return options, "", err
	}
	if options.LintFormat, err = eslint.ParseFormat(cfg.LintConfigFormat); err != nil {
		return options, "", err
	}
	if options.PeerFailurePolicy, err = cache.ParseFailurePolicy(cfg.PeerFailurePolicy); err != nil {
		return options, "", err
	}

	options.VersionRange = cfg.VersionRange
	options.TemplateExcludes = cfg.TemplateExcludes
	options.CommitMessage = cfg.CommitMessage
	options.Install = cfg.Install && !noInstall
	options.Git = cfg.Git && !noGit
	return options, manager, nil
}

func summaryFor(result *scaffold.Result, answers models.Answers, manager npm.PackageManager) ux.Summary {
	summary := ux.Summary{Name: result.Name, RelDir: result.Dir}
	if wd, err := os.Getwd(); err == nil {
		if rel, err := filepath.Rel(wd, result.Dir); err == nil {
			summary.RelDir = rel
		}
	}

	if len(result.SkippedDevelopment) > 0 {
		summary.Manual = append(summary.Manual, manager.InstallCommand(true, result.SkippedDevelopment))
	}
	if len(result.SkippedRuntime) > 0 {
		summary.Manual = append(summary.Manual, manager.InstallCommand(false, result.SkippedRuntime))
	}

	script := "dev"
	if answers.Framework == models.FrameworkNone {
		script = "start"
	}
	summary.Commands = []string{manager.RunCommand(script)}

	summary.Notes = append(summary.Notes, fmt.Sprintf("Lint config written to %s.", filepath.Base(result.ConfigPath)))
	if result.GitInitialized {
		summary.Notes = append(summary.Notes, "Initialized a git repository.")
	}
	return summary
}

func init() {
	rootCmd.AddCommand(initCmd)

	initFlags.register(initCmd)
	initCmd.Flags().BoolVar(&initFlags.force, "force", false, "Remove the contents of a non-empty target directory")
	initCmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip prompts and use defaults for anything not given as a flag")
	initCmd.Flags().BoolVar(&noInstall, "no-install", false, "Skip installing dependencies")
	initCmd.Flags().BoolVar(&noGit, "no-git", false, "Skip git repository initialization")
}
