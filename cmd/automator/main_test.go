package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/SergiySvirkov/excel-pdf-automator/internal/config"
	"github.com/SergiySvirkov/excel-pdf-automator/pkg/automator/generation"
	"github.com/SergiySvirkov/excel-pdf-automator/pkg/automator/mapping"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--env-file", filepath.Join(t.TempDir(), "none.env")}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestInitAndPrompt(t *testing.T) {
	def := filepath.Join(t.TempDir(), "automator.yaml")

	_, err := execute(t, "init", "-o", def)
	require.NoError(t, err)

	_, err = execute(t, "init", "-o", def)
	assert.Error(t, err)

	out, err := execute(t, "prompt", "-f", def)
	require.NoError(t, err)
	assert.Contains(t, out, `- Source Sheet Name: "Data Source"`)
	assert.Contains(t, out, `- Copy Column "B" from Source to Cell "C5" on Template`)
	assert.Contains(t, out, `- Copy Column "C" from Source to Cell "C6" on Template`)
}

func TestInitFromWorkbook(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "clients.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("Name,Email\nAlice,a@example.com\n"), 0644))
	defPath := filepath.Join(dir, "automator.yaml")

	_, err := execute(t, "init", "-o", defPath, "--workbook", csvPath)
	require.NoError(t, err)

	def, err := mapping.LoadFile(defPath)
	require.NoError(t, err)
	assert.Equal(t, "clients.csv", def.Workbook)
	assert.Equal(t, "Sheet1", def.Configuration.SourceSheetName)
	assert.Equal(t, "Form Letter", def.Configuration.TemplateSheetName)
}

func TestMappingCommands(t *testing.T) {
	defPath := filepath.Join(t.TempDir(), "automator.yaml")
	_, err := execute(t, "init", "-o", defPath)
	require.NoError(t, err)

	out, err := execute(t, "mapping", "add", "-f", defPath, "--source", "D", "--target", "E9")
	require.NoError(t, err)
	id := strings.TrimSpace(out)
	require.NotEmpty(t, id)

	_, err = execute(t, "mapping", "set", "-f", defPath, id, "target", "F10")
	require.NoError(t, err)
	_, err = execute(t, "mapping", "remove", "-f", defPath, "1")
	require.NoError(t, err)
	_, err = execute(t, "mapping", "remove", "-f", defPath, "unknown")
	require.NoError(t, err)

	_, err = execute(t, "mapping", "set", "-f", defPath, id, "color", "red")
	assert.Error(t, err)

	def, err := mapping.LoadFile(defPath)
	require.NoError(t, err)
	require.Len(t, def.Mappings, 2)
	assert.Equal(t, "2", def.Mappings[0].ID)
	assert.Equal(t, id, def.Mappings[1].ID)
	assert.Equal(t, "D", def.Mappings[1].SourceColumn)
	assert.Equal(t, "F10", def.Mappings[1].TargetCell)

	out, err = execute(t, "mapping", "list", "-f", defPath, "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"target_cell": "F10"`)
}

func TestInspectCSV(t *testing.T) {
	csvPath := filepath.Join(t.TempDir(), "clients.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("Name,,Email\n"), 0644))

	out, err := execute(t, "inspect", csvPath)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"file_name": "clients.csv",
		"sheet_names": ["Sheet1"],
		"sheet_name": "Sheet1",
		"columns": [
			{"letter": "A", "header": "Name"},
			{"letter": "B", "header": "(Empty Header)"},
			{"letter": "C", "header": "Email"}
		]
	}`, out)
}

func TestInspectInvalidWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("not a workbook"), 0644))

	_, err := execute(t, "inspect", path)
	assert.Error(t, err)

	_, err = execute(t, "inspect", filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.Error(t, err)
}

func TestMissingDefinition(t *testing.T) {
	_, err := execute(t, "prompt", "-f", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "automator init")
}

func TestResolveGenerationConfig(t *testing.T) {
	for _, k := range []string{"AUTOMATOR_API_KEY", "GEMINI_API_KEY", "API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY"} {
		t.Setenv(k, "")
	}
	t.Setenv("OPENAI_API_KEY", "sk-test")

	base := config.GenerationConfig{
		Provider:  generation.ProviderGemini,
		Model:     "gemini-2.5-flash",
		APIKey:    "g-key",
		MaxTokens: generation.DefaultMaxTokens,
	}

	tests := []struct {
		name      string
		provider  string
		model     string
		wantProv  generation.Provider
		wantModel string
		wantKey   string
	}{
		{"no overrides", "", "", generation.ProviderGemini, "gemini-2.5-flash", "g-key"},
		{"same provider keeps key", "gemini", "gemini-2.5-pro", generation.ProviderGemini, "gemini-2.5-pro", "g-key"},
		{"other provider reads its env key", "openai", "", generation.ProviderOpenAI, "gpt-4o-mini", "sk-test"},
		{"other provider without env key", "anthropic", "", generation.ProviderAnthropic, "claude-sonnet-4-5", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveGenerationConfig(base, tt.provider, tt.model)
			require.NoError(t, err)
			assert.Equal(t, tt.wantProv, got.Provider)
			assert.Equal(t, tt.wantModel, got.Model)
			assert.Equal(t, tt.wantKey, got.APIKey)
			assert.Equal(t, base.MaxTokens, got.MaxTokens)
		})
	}

	_, err := resolveGenerationConfig(base, "bard", "")
	assert.Error(t, err)
}

func TestGenerationClientUsesProviderEnvKey(t *testing.T) {
	for _, k := range []string{"AUTOMATOR_PROVIDER", "AUTOMATOR_API_KEY", "GEMINI_API_KEY", "API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY"} {
		t.Setenv(k, "")
	}
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := config.Load("")
	require.NoError(t, err)

	prevCfg, prevLog, prevProvider := appConfig, log, generateProvider
	t.Cleanup(func() { appConfig, log, generateProvider = prevCfg, prevLog, prevProvider })
	appConfig, log, generateProvider = cfg, slog.Default(), "openai"

	client, err := newGenerationClient(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, client)
}
