package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wizzomafizzo/provisioner/internal/provisioning"
	testutil "github.com/wizzomafizzo/provisioner/internal/testing"
)

func TestMain(m *testing.M) {
	testutil.VerifyTestMain(m)
}

type syncBuffer struct {
	b  strings.Builder
	mu sync.Mutex
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p) //nolint:wrapcheck // never fails
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

type testEnv struct {
	fs       afero.Fs
	logs     *syncBuffer
	settings string
	source   string
	repo     string
}

// newTestEnv lays out a settings file, a repository holding one artifact
// and a directive source made of lines.
func newTestEnv(t *testing.T, cache bool, lines ...string) *testEnv {
	t.Helper()

	fs := afero.NewMemMapFs()
	dir := filepath.FromSlash("/work")
	env := &testEnv{
		fs:       fs,
		logs:     &syncBuffer{},
		settings: filepath.Join(dir, "provisioner.yml"),
		source:   filepath.Join(dir, "provisioning.txt"),
		repo:     filepath.FromSlash("/repo"),
	}

	testutil.TouchArtifact(t, fs, filepath.Join(env.repo, "org", "example", "widget", "1.0", "widget-1.0.jar"))
	testutil.WriteSource(t, fs, env.source, lines...)

	settings := fmt.Sprintf(`source: provisioning.txt
repositories:
  - %s
cache:
  enabled: %t
  path: %q
logging:
  level: debug
`, env.repo, cache, filepath.Join(t.TempDir(), "resolutions.db"))
	require.NoError(t, afero.WriteFile(fs, env.settings, []byte(settings), 0o600))

	return env
}

func (e *testEnv) open(t *testing.T) (*App, context.Context) {
	t.Helper()

	a, ctx, err := NewAppWithOptions(context.Background(), AppOptions{
		Fs:              e.fs,
		LogWriter:       e.logs,
		SettingsPath:    e.settings,
		RequireSettings: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, a.Close())
	})
	return a, ctx
}

func TestNewAppWithOptions_UsesSettings(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, true)
	a, _ := env.open(t)

	assert.Equal(t, env.source, a.Source())
	assert.Equal(t, []string{env.repo}, a.Repositories())
	assert.True(t, a.CacheEnabled())
}

func TestNewAppWithOptions_MissingSettings(t *testing.T) {
	t.Parallel()

	opts := AppOptions{
		Fs:           afero.NewMemMapFs(),
		LogWriter:    &syncBuffer{},
		SettingsPath: "/nowhere/provisioner.yml",
		Source:       "/etc/provisioning.txt",
		NoCache:      true,
	}

	a, _, err := NewAppWithOptions(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, "/etc/provisioning.txt", a.Source())
	assert.False(t, a.CacheEnabled())
	require.NoError(t, a.Close())

	opts.RequireSettings = true
	_, _, err = NewAppWithOptions(context.Background(), opts)
	require.Error(t, err)
}

func TestNewAppWithOptions_InvalidSettings(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/p.yml", []byte("exclusions:\n  mode: regex\n"), 0o600))

	_, _, err := NewAppWithOptions(context.Background(), AppOptions{
		Fs:           fs,
		LogWriter:    &syncBuffer{},
		SettingsPath: "/p.yml",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exclusions.mode")
}

func TestApp_LoadResolvesThroughRepository(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, true,
		"# sample",
		"org.example:widget:1.0",
		"+/opt/libs/extra.jar",
		"-slf4j-",
	)
	a, ctx := env.open(t)

	res := a.Load(ctx)
	require.NoError(t, res.Err)
	require.Len(t, res.Additions, 2)
	assert.Equal(t, "/repo/org/example/widget/1.0/widget-1.0.jar", res.Additions[0].Path)
	assert.Equal(t, "/opt/libs/extra.jar", res.Additions[1].Path)
	assert.Equal(t, []string{"slf4j-"}, res.Exclusions)
	assert.Contains(t, env.logs.String(), "provisioning configuration loaded")
}

func TestApp_LoadReportsMissingArtifact(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, false, "+/opt/a.jar", "org.example:missing:1.0", "+/opt/b.jar")
	a, ctx := env.open(t)
	assert.False(t, a.CacheEnabled())

	res := a.Load(ctx)
	require.ErrorIs(t, res.Err, provisioning.ErrTargetResolution)
	require.Len(t, res.Additions, 1)
	assert.True(t, res.Truncated())
}

func TestApp_Check(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, false, "-slf4j-", "-log4j")
	a, ctx := env.open(t)

	verdicts, res := a.Check(ctx,
		"/lib/slf4j-api-1.7.jar",
		"file:/lib/log4j-1.2.jar",
		"/lib/commons-lang.jar",
		"http://host/slf4j-api.jar",
	)
	require.NoError(t, res.Err)

	want := []Verdict{
		{Candidate: "/lib/slf4j-api-1.7.jar", Name: "slf4j-api-1.7.jar", Accepted: false},
		{Candidate: "file:/lib/log4j-1.2.jar", Name: "log4j-1.2.jar", Accepted: false},
		{Candidate: "/lib/commons-lang.jar", Name: "commons-lang.jar", Accepted: true},
		{Candidate: "http://host/slf4j-api.jar", Name: "", Accepted: true},
	}
	assert.Equal(t, want, verdicts)
}

func TestApp_Validate(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, false, "# c", "", "+a.jar", "-b")
	a, ctx := env.open(t)

	directives, err := a.Validate(ctx)
	require.NoError(t, err)

	kinds := make([]provisioning.Kind, 0, len(directives))
	for _, d := range directives {
		kinds = append(kinds, d.Kind)
	}
	assert.Equal(t, []provisioning.Kind{
		provisioning.KindComment,
		provisioning.KindBlank,
		provisioning.KindAddition,
		provisioning.KindExclusion,
	}, kinds)
}

func TestApp_ValidateMissingSource(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, false)
	require.NoError(t, env.fs.Remove(env.source))
	a, ctx := env.open(t)

	_, err := a.Validate(ctx)
	require.ErrorIs(t, err, provisioning.ErrSourceRead)
}

func TestApp_ClearCache(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, true, "org.example:widget:1.0")
	a, ctx := env.open(t)

	require.NoError(t, a.Load(ctx).Err)

	n, err := a.ClearCache(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	disabled := newTestEnv(t, false)
	b, ctx := disabled.open(t)
	_, err = b.ClearCache(ctx)
	require.ErrorIs(t, err, ErrCacheDisabled)
}

func TestNewAppWithOptions_CacheDirectoryOnDisk(t *testing.T) {
	t.Parallel()

	// The app reads settings from memory but the cache lives on disk
	fs := afero.NewMemMapFs()
	cacheDir := filepath.Join(t.TempDir(), "nested", "cache")
	settings := fmt.Sprintf("repositories:\n  - /repo\ncache:\n  enabled: true\n  path: %q\n",
		filepath.Join(cacheDir, "resolutions.db"))
	require.NoError(t, afero.WriteFile(fs, "/work/provisioner.yml", []byte(settings), 0o600))

	a, _, err := NewAppWithOptions(context.Background(), AppOptions{
		Fs:              fs,
		LogWriter:       &syncBuffer{},
		SettingsPath:    "/work/provisioner.yml",
		RequireSettings: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, a.Close())
	})

	assert.True(t, a.CacheEnabled())
	info, err := os.Stat(cacheDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
