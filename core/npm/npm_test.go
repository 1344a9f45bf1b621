package npm

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tristendillon/create-common-app/core/cache"
	"github.com/tristendillon/create-common-app/core/models"
	"github.com/tristendillon/create-common-app/core/process"
)

type fakeRunner struct {
	calls  []process.Command
	stdout map[string]string
	err    error
}

func (f *fakeRunner) Run(_ context.Context, cmd process.Command) (*process.Result, error) {
	f.calls = append(f.calls, cmd)
	if f.err != nil {
		return &process.Result{}, f.err
	}
	key := ""
	if len(cmd.Args) > 2 {
		key = cmd.Args[2]
	}
	return &process.Result{Stdout: f.stdout[key]}, nil
}

type countingRegistry struct {
	queries map[string]int
	peers   map[string]map[string]string
	err     error
}

func newCountingRegistry() *countingRegistry {
	return &countingRegistry{queries: map[string]int{}, peers: map[string]map[string]string{}}
}

func (r *countingRegistry) PeerDependencies(_ context.Context, spec string) (map[string]string, error) {
	r.queries[spec]++
	if r.err != nil {
		return nil, r.err
	}
	return r.peers[spec], nil
}

func TestCLIRegistryParsesPeerDependencies(t *testing.T) {
	runner := &fakeRunner{stdout: map[string]string{
		"eslint-config-airbnb@latest": `{"eslint": "^8.2.0", "eslint-plugin-react": "^7.28.0"}`,
	}}
	reg := NewCLIRegistry(runner, "")

	peers, err := reg.PeerDependencies(context.Background(), "eslint-config-airbnb@latest")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"eslint": "^8.2.0", "eslint-plugin-react": "^7.28.0"}, peers)

	require.Len(t, runner.calls, 1)
	assert.Equal(t, "npm", runner.calls[0].Name)
	assert.Equal(t, []string{"show", "--json", "eslint-config-airbnb@latest", "peerDependencies"}, runner.calls[0].Args)
}

func TestCLIRegistryMalformedOutputIsEmpty(t *testing.T) {
	for _, out := range []string{"", "   \n", "not json", `"a string"`, "null"} {
		runner := &fakeRunner{stdout: map[string]string{"x@latest": out}}
		peers, err := NewCLIRegistry(runner, "npm").PeerDependencies(context.Background(), "x@latest")
		require.NoError(t, err, "output %q", out)
		assert.NotNil(t, peers)
		assert.Empty(t, peers)
	}
}

func TestCLIRegistryToolNotFound(t *testing.T) {
	runner := &fakeRunner{err: fmt.Errorf("%w: npm", process.ErrToolNotFound)}
	_, err := NewCLIRegistry(runner, "npm").PeerDependencies(context.Background(), "x@latest")
	assert.True(t, errors.Is(err, process.ErrToolNotFound))
}

func TestCLIRegistryFailedQueryIsEmpty(t *testing.T) {
	runner := &fakeRunner{err: errors.New("exit status 1")}
	peers, err := NewCLIRegistry(runner, "npm").PeerDependencies(context.Background(), "nope@latest")
	require.NoError(t, err)
	assert.Empty(t, peers)
}

func TestPeerResolverQueriesOncePerSpec(t *testing.T) {
	reg := newCountingRegistry()
	reg.peers["eslint-config-airbnb@latest"] = map[string]string{"eslint": "^8.2.0"}
	resolver := NewPeerResolver(reg, nil)

	first, err := resolver.Resolve(context.Background(), "eslint-config-airbnb@latest")
	require.NoError(t, err)
	second, err := resolver.Resolve(context.Background(), "eslint-config-airbnb@latest")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, reg.queries["eslint-config-airbnb@latest"])
}

func TestPeerResolverSeparateResolversDoNotShareCache(t *testing.T) {
	reg := newCountingRegistry()
	ctx := context.Background()

	_, _ = NewPeerResolver(reg, nil).Resolve(ctx, "eslint-config-prettier@latest")
	_, _ = NewPeerResolver(reg, nil).Resolve(ctx, "eslint-config-prettier@latest")

	assert.Equal(t, 2, reg.queries["eslint-config-prettier@latest"])
}

func TestPeerResolverUnavailableRetryPolicy(t *testing.T) {
	reg := newCountingRegistry()
	reg.err = fmt.Errorf("%w: npm", process.ErrToolNotFound)
	resolver := NewPeerResolver(reg, cache.NewPeerCache(cache.RetryUnavailable))
	ctx := context.Background()

	peers, err := resolver.Resolve(ctx, "eslint-config-airbnb@latest")
	require.NoError(t, err)
	assert.Nil(t, peers)

	reg.err = nil
	reg.peers["eslint-config-airbnb@latest"] = map[string]string{"eslint": "^8.2.0"}
	peers, err = resolver.Resolve(ctx, "eslint-config-airbnb@latest")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"eslint": "^8.2.0"}, peers)
	assert.Equal(t, 2, reg.queries["eslint-config-airbnb@latest"])
}

func TestPeerResolverUnavailableCachePolicy(t *testing.T) {
	reg := newCountingRegistry()
	reg.err = fmt.Errorf("%w: npm", process.ErrToolNotFound)
	resolver := NewPeerResolver(reg, cache.NewPeerCache(cache.CacheUnavailable))
	ctx := context.Background()

	_, _ = resolver.Resolve(ctx, "eslint-config-airbnb@latest")
	reg.err = nil
	peers, err := resolver.Resolve(ctx, "eslint-config-airbnb@latest")
	require.NoError(t, err)
	assert.Nil(t, peers)
	assert.Equal(t, 1, reg.queries["eslint-config-airbnb@latest"])
}

func TestPeerResolverOtherErrorsPropagate(t *testing.T) {
	reg := newCountingRegistry()
	reg.err = errors.New("registry exploded")

	_, err := NewPeerResolver(reg, nil).Resolve(context.Background(), "x@latest")
	assert.Error(t, err)
}

func TestPackageManagerInstallArgs(t *testing.T) {
	pkgs := []string{"eslint@latest"}
	assert.Equal(t, []string{"install", "--save-dev", "eslint@latest"}, NPM.InstallArgs(true, pkgs))
	assert.Equal(t, []string{"install", "eslint@latest"}, NPM.InstallArgs(false, pkgs))
	assert.Equal(t, []string{"add", "--save-dev", "eslint@latest"}, PNPM.InstallArgs(true, pkgs))
	assert.Equal(t, []string{"add", "--dev", "eslint@latest"}, Yarn.InstallArgs(true, pkgs))

	_, err := ParsePackageManager("bun")
	assert.Error(t, err)
	pm, err := ParsePackageManager("")
	require.NoError(t, err)
	assert.Equal(t, NPM, pm)
}

func TestPackageManagerCommands(t *testing.T) {
	assert.Equal(t, "npm run dev", NPM.RunCommand("dev"))
	assert.Equal(t, "yarn dev", Yarn.RunCommand("dev"))
	assert.Equal(t, "pnpm start", PNPM.RunCommand("start"))

	specs := []models.PackageSpec{models.NewPackageSpec("eslint", ""), models.NewPackageSpec("prettier", "^3")}
	assert.Equal(t, "npm install --save-dev eslint@latest prettier@^3", NPM.InstallCommand(true, specs))
	assert.Equal(t, "yarn add eslint@latest prettier@^3", Yarn.InstallCommand(false, specs))
}

func TestCLIInstallerStreamsWithEnv(t *testing.T) {
	runner := &fakeRunner{}
	inst := NewCLIInstaller(runner, PNPM)
	specs := []models.PackageSpec{models.NewPackageSpec("react", ""), models.NewPackageSpec("react-dom", "")}

	require.NoError(t, inst.Install(context.Background(), "/abs/app", specs, false))
	require.Len(t, runner.calls, 1)

	call := runner.calls[0]
	assert.Equal(t, "/abs/app", call.Dir)
	assert.Equal(t, "pnpm", call.Name)
	assert.Equal(t, []string{"add", "react@latest", "react-dom@latest"}, call.Args)
	assert.True(t, call.Stream)
	assert.Contains(t, call.Env, "DISABLE_OPENCOLLECTIVE=1")
}

func TestCLIInstallerSkipsEmptyList(t *testing.T) {
	runner := &fakeRunner{}
	require.NoError(t, NewCLIInstaller(runner, "").Install(context.Background(), "/abs", nil, true))
	assert.Empty(t, runner.calls)
}

func TestCLIInstallerToolNotFound(t *testing.T) {
	runner := &fakeRunner{err: fmt.Errorf("%w: yarn", process.ErrToolNotFound)}
	err := NewCLIInstaller(runner, Yarn).Install(context.Background(), "/abs", []models.PackageSpec{models.NewPackageSpec("next", "")}, false)
	assert.True(t, errors.Is(err, process.ErrToolNotFound))
}
