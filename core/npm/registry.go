package npm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tristendillon/create-common-app/core/logger"
	"github.com/tristendillon/create-common-app/core/process"
)

// Registry answers peer-dependency queries for a "name@range" spec. It
// returns an error wrapping process.ErrToolNotFound when the query tool is
// missing.
type Registry interface {
	PeerDependencies(ctx context.Context, spec string) (map[string]string, error)
}

// CLIRegistry shells out to `<tool> show --json <spec> peerDependencies`.
type CLIRegistry struct {
	runner process.Runner
	tool   string
}

func NewCLIRegistry(runner process.Runner, tool string) *CLIRegistry {
	if tool == "" {
		tool = "npm"
	}
	return &CLIRegistry{runner: runner, tool: tool}
}

func (r *CLIRegistry) PeerDependencies(ctx context.Context, spec string) (map[string]string, error) {
	res, err := r.runner.Run(ctx, process.Command{
		Name: r.tool,
		Args: []string{"show", "--json", spec, "peerDependencies"},
	})
	if err != nil {
		if errors.Is(err, process.ErrToolNotFound) {
			return nil, err
		}
		// The registry answered but not usefully, e.g. an unknown package.
		logger.Debug("Peer dependency query for %s failed, treating as none: %v", spec, err)
		return map[string]string{}, nil
	}

	stdout := ""
	if res != nil {
		stdout = res.Stdout
	}
	return parsePeerDependencies(spec, stdout), nil
}

// parsePeerDependencies treats empty or unexpected output as "no peers".
func parsePeerDependencies(spec, stdout string) map[string]string {
	out := strings.TrimSpace(stdout)
	if out == "" {
		return map[string]string{}
	}

	var peers map[string]string
	if err := json.Unmarshal([]byte(out), &peers); err != nil {
		logger.Debug("Unparseable peer dependency output for %s: %v", spec, err)
		return map[string]string{}
	}
	if peers == nil {
		return map[string]string{}
	}
	return peers
}

func (r *CLIRegistry) String() string {
	return fmt.Sprintf("%s registry", r.tool)
}
