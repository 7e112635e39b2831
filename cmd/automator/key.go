package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/SergiySvirkov/excel-pdf-automator/internal/keychain"
	"github.com/SergiySvirkov/excel-pdf-automator/pkg/automator/generation"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	keyProvider string
	keyValue    string
)

func newKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage generation-service API keys in the OS keychain",
	}
	cmd.PersistentFlags().StringVar(&keyProvider, "provider", "", "Provider the key belongs to (default: AUTOMATOR_PROVIDER)")

	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Store an API key (read from stdin unless --key is given)",
		Args:  cobra.NoArgs,
		RunE:  runKeySet,
	}
	setCmd.Flags().StringVar(&keyValue, "key", "", "API key value")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove the stored API key",
		Args:  cobra.NoArgs,
		RunE:  runKeyClear,
	}

	cmd.AddCommand(setCmd, clearCmd)
	return cmd
}

func resolveKeyProvider() (generation.Provider, error) {
	if keyProvider == "" {
		return appConfig.Generation.Provider, nil
	}
	return generation.ParseProvider(keyProvider)
}

func runKeySet(cmd *cobra.Command, args []string) error {
	provider, err := resolveKeyProvider()
	if err != nil {
		return err
	}

	key := strings.TrimSpace(keyValue)
	if key == "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Enter %s API key: ", provider)
		scanner := bufio.NewScanner(cmd.InOrStdin())
		if scanner.Scan() {
			key = strings.TrimSpace(scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("failed to read API key: %w", err)
		}
	}
	if key == "" {
		return errors.New("no API key given")
	}

	km, err := keychain.NewManager()
	if err != nil {
		return err
	}
	if err := km.SaveAPIKey(string(provider), key); err != nil {
		return fmt.Errorf("failed to store API key: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), pterm.Success.Sprintf("Stored %s API key in the OS keychain", provider))
	return nil
}

func runKeyClear(cmd *cobra.Command, args []string) error {
	provider, err := resolveKeyProvider()
	if err != nil {
		return err
	}

	km, err := keychain.NewManager()
	if err != nil {
		return err
	}
	if err := km.ClearAPIKey(string(provider)); err != nil {
		return fmt.Errorf("failed to remove API key: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), pterm.Success.Sprintf("Removed %s API key", provider))
	return nil
}
