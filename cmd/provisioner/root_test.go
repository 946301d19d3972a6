package main

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wizzomafizzo/provisioner/internal/prompt"
	testutil "github.com/wizzomafizzo/provisioner/internal/testing"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	testutil.VerifyTestMain(m)
}

// scriptedPrompter answers prompts from a fixed list, then reports end of input.
type scriptedPrompter struct {
	answers []string
	closed  bool
}

func (s *scriptedPrompter) Prompt(string) (string, error) {
	if len(s.answers) == 0 {
		return "", io.EOF
	}
	next := s.answers[0]
	s.answers = s.answers[1:]
	return next, nil
}

func (s *scriptedPrompter) Close() error {
	s.closed = true
	return nil
}

type cliHarness struct {
	fs       afero.Fs
	prompter *scriptedPrompter
	env      *cliEnv
	repo     string
	source   string
	settings string
}

func newHarness(t *testing.T, lines ...string) *cliHarness {
	t.Helper()

	fs := afero.NewMemMapFs()
	h := &cliHarness{
		fs:       fs,
		prompter: &scriptedPrompter{},
		repo:     filepath.FromSlash("/repo"),
		source:   filepath.FromSlash("/work/provisioning.txt"),
		settings: filepath.FromSlash("/work/provisioner.yml"),
	}
	h.env = &cliEnv{
		fs:          fs,
		logWriter:   io.Discard,
		newPrompter: func() prompt.Prompter { return h.prompter },
	}

	testutil.TouchArtifact(t, fs, filepath.Join(h.repo, "org", "example", "widget", "1.0", "widget-1.0.jar"))
	testutil.WriteSource(t, fs, h.source, lines...)

	settings := fmt.Sprintf("source: provisioning.txt\nrepositories:\n  - %s\ncache:\n  enabled: true\n  path: %q\n",
		h.repo, filepath.Join(t.TempDir(), "resolutions.db"))
	require.NoError(t, afero.WriteFile(fs, h.settings, []byte(settings), 0o600))

	return h
}

// run executes the root command with args and returns stdout and stderr.
func (h *cliHarness) run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	cmd := newRootCommand(h.env)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--settings", h.settings}, args...))

	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestCreateRootCommand(t *testing.T) {
	t.Parallel()

	cmd := createNewRootCommand()
	assert.Equal(t, "provisioner", cmd.Use)
	assert.NotEmpty(t, cmd.Short)

	for _, name := range []string{"additions", "check", "validate", "cache", "settings"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, strings.Fields(sub.Use)[0])
	}

	flag := cmd.PersistentFlags().Lookup("settings")
	require.NotNil(t, flag)
	assert.Equal(t, "s", flag.Shorthand)
	assert.Equal(t, "provisioner.yml", flag.DefValue)
}

func TestRootCommandShowsHelp(t *testing.T) {
	t.Parallel()

	cmd := newRootCommand(&cliEnv{fs: afero.NewMemMapFs(), logWriter: io.Discard})
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "Available Commands")
}

func TestMissingExplicitSettingsFails(t *testing.T) {
	t.Parallel()

	cmd := newRootCommand(&cliEnv{fs: afero.NewMemMapFs(), logWriter: io.Discard})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"-s", "/nope.yml", "additions"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to start")
}

func TestSettingsDiscoveredFromParent(t *testing.T) {
	t.Parallel()

	h := newHarness(t, "+/opt/found.jar")
	sub := filepath.FromSlash("/work/modules/web")
	require.NoError(t, h.fs.MkdirAll(sub, 0o750))
	h.env.workDir = sub

	cmd := newRootCommand(h.env)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--no-cache", "additions"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "file:///opt/found.jar\n", out.String())
}
