package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"slices"

	"github.com/SergiySvirkov/excel-pdf-automator/internal/config"
	"github.com/SergiySvirkov/excel-pdf-automator/internal/keychain"
	"github.com/SergiySvirkov/excel-pdf-automator/pkg/automator"
	"github.com/SergiySvirkov/excel-pdf-automator/pkg/automator/generation"
	"github.com/SergiySvirkov/excel-pdf-automator/pkg/automator/models"
	"github.com/SergiySvirkov/excel-pdf-automator/pkg/automator/output"
	"github.com/SergiySvirkov/excel-pdf-automator/pkg/automator/workflow"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	generateWorkbook       string
	generateCodeOut        string
	generateExplanationOut string
	generateJSON           bool
	generateProvider       string
	generateModel          string
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the VBA macro for a definition file",
		Args:  cobra.NoArgs,
		RunE:  runGenerate,
	}

	cmd.Flags().StringVarP(&definitionFile, "file", "f", defaultDefinitionFile, "Definition file")
	cmd.Flags().StringVar(&generateWorkbook, "workbook", "", "Workbook to check mapped columns against (default: the definition's workbook)")
	cmd.Flags().StringVar(&generateCodeOut, "code-out", "", "Write the code to this file or directory (Module1.bas)")
	cmd.Flags().StringVar(&generateExplanationOut, "explanation-out", "", "Write the explanation to this file")
	cmd.Flags().BoolVar(&generateJSON, "json", false, "Print the result as JSON")
	cmd.Flags().StringVar(&generateProvider, "provider", "", "Generation provider: gemini, openai, anthropic (overrides AUTOMATOR_PROVIDER)")
	cmd.Flags().StringVar(&generateModel, "model", "", "Model name (overrides AUTOMATOR_MODEL)")
	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	def, err := loadDefinition(definitionFile)
	if err != nil {
		return err
	}

	client, err := newGenerationClient(ctx)
	if err != nil {
		presentError(cmd.ErrOrStderr(), err)
		return err
	}

	session := automator.NewSession(client,
		automator.WithLogger(log),
		automator.WithStateObserver(func(s workflow.State) {
			log.Debug("generation state", "phase", s.Phase.String(), "seq", s.Seq)
		}),
	)

	workbook := generateWorkbook
	if workbook == "" {
		workbook = def.Workbook
	}
	if workbook != "" {
		if err := session.LoadFile(workbook); err != nil {
			presentError(cmd.ErrOrStderr(), err)
			return err
		}
	}
	session.ApplyDefinition(def)
	if workbook != "" {
		warnUnknownColumns(session)
	}

	spinner, _ := pterm.DefaultSpinner.WithWriter(cmd.ErrOrStderr()).Start("Generating VBA code...")
	state, err := session.Generate(ctx).Wait(ctx)
	if err != nil {
		if spinner != nil {
			spinner.Fail("Generation cancelled")
		}
		return err
	}

	if state.Phase == workflow.Failed {
		if spinner != nil {
			spinner.Fail(state.Reason())
		}
		log.Error("generation failed", "model", appConfig.Generation.Model, "error", state.Err)
		return errors.New(state.Reason())
	}
	if spinner != nil {
		spinner.Success("VBA code generated")
	}

	return writeResult(cmd, state.Result)
}

func newGenerationClient(ctx context.Context) (*generation.Client, error) {
	gen, err := resolveGenerationConfig(appConfig.Generation, generateProvider, generateModel)
	if err != nil {
		return nil, err
	}
	if gen.APIKey == "" {
		gen.APIKey = apiKeyFromKeychain(gen.Provider)
	}

	completer, err := generation.NewCompleter(ctx, generation.Options{
		Provider: gen.Provider,
		APIKey:   gen.APIKey,
		Model:    gen.Model,
		BaseURL:  gen.BaseURL,
	})
	if err != nil {
		if errors.Is(err, generation.ErrAPIKeyNotSet) {
			return nil, fmt.Errorf("%w (set AUTOMATOR_API_KEY or run: automator key set --provider %s)", err, gen.Provider)
		}
		return nil, err
	}

	return generation.NewClient(completer,
		generation.WithLogger(log),
		generation.WithMaxTokens(gen.MaxTokens),
		generation.WithTimeout(gen.Timeout),
	), nil
}

// resolveGenerationConfig applies the --provider and --model overrides. A
// different provider takes its default model and its own key from the environment.
func resolveGenerationConfig(gen config.GenerationConfig, provider, model string) (config.GenerationConfig, error) {
	if provider != "" {
		p, err := generation.ParseProvider(provider)
		if err != nil {
			return gen, err
		}
		if p != gen.Provider {
			gen.Provider = p
			gen.Model = p.DefaultModel()
			gen.APIKey = config.APIKeyFromEnv(p)
		}
	}
	if model != "" {
		gen.Model = model
	}
	return gen, nil
}

func apiKeyFromKeychain(p generation.Provider) string {
	km, err := keychain.NewManager()
	if err != nil {
		log.Debug("keychain unavailable", "error", err)
		return ""
	}
	key, err := km.LoadAPIKey(string(p))
	if err != nil {
		log.Debug("no API key in keychain", "provider", p, "error", err)
		return ""
	}
	return key
}

// warnUnknownColumns flags mappings whose source column is not a column of the source sheet.
func warnUnknownColumns(session *automator.Session) {
	letters := make([]string, 0, len(session.Columns()))
	for _, c := range session.Columns() {
		letters = append(letters, c.Letter)
	}
	for _, m := range session.Mappings() {
		if m.SourceColumn != "" && !slices.Contains(letters, m.SourceColumn) {
			log.Warn("mapped column not found in source sheet",
				"id", m.ID, "column", m.SourceColumn, "sheet", session.Configuration().SourceSheetName)
		}
	}
}

func writeResult(cmd *cobra.Command, result *models.GenerationResult) error {
	out := cmd.OutOrStdout()

	if generateJSON {
		jsonData, err := output.ResultToJSON(result, true)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		fmt.Fprintln(out, string(jsonData))
	}

	if generateCodeOut != "" {
		path, err := output.WriteModule(generateCodeOut, result.Code)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.ErrOrStderr(), pterm.Success.Sprintf("Code written to %s", path))
	} else if !generateJSON {
		fmt.Fprintln(out, result.Code)
	}

	if generateExplanationOut != "" {
		if err := os.WriteFile(generateExplanationOut, []byte(result.Explanation), 0644); err != nil {
			return fmt.Errorf("failed to write explanation: %w", err)
		}
	} else if !generateJSON {
		fmt.Fprintln(cmd.ErrOrStderr())
		fmt.Fprintln(cmd.ErrOrStderr(), pterm.DefaultSection.Sprint("How it works"))
		fmt.Fprintln(cmd.ErrOrStderr(), result.Explanation)
	}

	renderQuickInstall(cmd.ErrOrStderr())
	return nil
}
