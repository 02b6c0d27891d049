package cmd

import (
	"bytes"
	"os"
	"testing"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpqscope/cli/pkg/config"
	"github.com/cpqscope/cli/pkg/salesforce"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	pterm.SetDefaultOutput(&buf)
	t.Cleanup(func() { pterm.SetDefaultOutput(os.Stdout) })
	return &buf
}

func orgFlagCmd(t *testing.T, value string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{}
	c.Flags().String("org", "", "")
	if value != "" {
		require.NoError(t, c.Flags().Set("org", value))
	}
	return c
}

func TestResolveOriginFlagWinsOverEnv(t *testing.T) {
	cfg := config.Config{OrgURL: "https://env.my.salesforce.com"}
	origin, err := resolveOrigin(orgFlagCmd(t, "https://flag.lightning.force.com"), cfg)
	require.NoError(t, err)
	assert.Equal(t, "flag.my.salesforce.com", origin.Host())
}

func TestResolveOriginFallsBackToConfig(t *testing.T) {
	cfg := config.Config{OrgURL: "https://env.my.salesforce.com"}
	origin, err := resolveOrigin(orgFlagCmd(t, ""), cfg)
	require.NoError(t, err)
	assert.Equal(t, "env.my.salesforce.com", origin.Host())
}

func TestResolveOriginMissing(t *testing.T) {
	_, err := resolveOrigin(orgFlagCmd(t, ""), config.Config{})
	var cfgErr *config.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Message, "--org")
}

func TestPrintRecordTable(t *testing.T) {
	buf := captureOutput(t)

	printRecordTable([]salesforce.Record{
		{
			"attributes":    map[string]any{"type": "Account"},
			"Name":          "Acme",
			"AnnualRevenue": float64(1000000),
		},
		{
			"attributes":    map[string]any{"type": "Account"},
			"Name":          "Globex",
			"AnnualRevenue": nil,
		},
	})

	output := buf.String()
	assert.Contains(t, output, "Name")
	assert.Contains(t, output, "Acme")
	assert.Contains(t, output, "Globex")
	assert.Contains(t, output, "1000000")
	assert.NotContains(t, output, "attributes")
}
