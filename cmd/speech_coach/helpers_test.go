package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/speech-coach/internal/config"
)

const sampleTranscript = "Firstly, thank you all for being here today. Then we will look at the results of the great project. Finally, we will answer your questions."

// execute runs the root command in-process and returns stdout and stderr.
// Flags are global, so they are reset to their defaults first.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	for _, env := range []string{config.EnvLanguage, config.EnvLexiconFile, config.EnvMinWords, config.EnvConcurrency, config.EnvPort, config.EnvLogLevel, config.EnvLogFormat} {
		t.Setenv(env, "")
	}
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func mkdir(t *testing.T, parent, name string) string {
	t.Helper()
	p := filepath.Join(parent, name)
	require.NoError(t, os.MkdirAll(p, 0755))
	return p
}
