package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tristendillon/create-common-app/core/cache"
	"github.com/tristendillon/create-common-app/core/dependency"
	"github.com/tristendillon/create-common-app/core/jsonfile"
	"github.com/tristendillon/create-common-app/core/models"
	"github.com/tristendillon/create-common-app/core/npm"
	"github.com/tristendillon/create-common-app/core/process"
	"github.com/tristendillon/create-common-app/core/scaffold"
)

var (
	planFlags    answerFlags
	resolvePeers bool
	planFormat   string
)

// offlineResolver answers every lookup as unavailable, so the plan lists the
// lint packages without their peers.
type offlineResolver struct{}

func (offlineResolver) Resolve(_ context.Context, _ string) (map[string]string, error) {
	return nil, nil
}

type planOutput struct {
	Answers      models.Answers          `json:"answers" yaml:"answers"`
	LintConfig   map[string]any          `json:"eslint_config" yaml:"eslint_config"`
	Dependencies *models.DependencyLists `json:"dependencies" yaml:"dependencies"`
}

var planCmd = &cobra.Command{
	Use:   "plan [dir]",
	Short: "Print the lint config and dependencies a project would get",
	Long: `Derives the ESLint config and the dependency lists for the given answers and
prints them without writing anything. Peer dependencies are only looked up
with --resolve-peers.`,
	Args:              cobra.MaximumNArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return configureLogging(os.Stderr) },
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		answers := planFlags.withDefaults(planFlags.answers(cmd, args))
		if err := answers.Validate(); err != nil {
			return err
		}

		var resolver dependency.PeerResolver = offlineResolver{}
		if resolvePeers {
			policy, err := cache.ParseFailurePolicy(cfg.PeerFailurePolicy)
			if err != nil {
				return err
			}
			registry := npm.NewCLIRegistry(process.NewExecRunner(), cfg.RegistryTool)
			peerResolver := npm.NewPeerResolver(registry, cache.NewPeerCache(policy))
			defer peerResolver.Cache().LogStats()
			resolver = peerResolver
		}

		config, lists, err := scaffold.Plan(cmd.Context(), answers, resolver, cfg.VersionRange)
		if err != nil {
			return err
		}

		out := planOutput{Answers: answers, LintConfig: config.Document(), Dependencies: lists}

		var data []byte
		switch planFormat {
		case "json":
			data, err = jsonfile.Marshal(out)
		case "yaml":
			data, err = jsonfile.MarshalYAML(out)
		default:
			return fmt.Errorf("unsupported output format %q", planFormat)
		}
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	rootCmd.AddCommand(planCmd)

	planFlags.register(planCmd)
	planCmd.Flags().BoolVar(&resolvePeers, "resolve-peers", false, "Query the registry for peer dependencies")
	planCmd.Flags().StringVarP(&planFormat, "output", "o", "json", "Output format: json or yaml")
}
