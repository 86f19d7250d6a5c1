package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/speech-coach/internal/lexicon"
	"github.com/jonathan/speech-coach/internal/types"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the languages with a built-in lexicon pack",
	Args:  cobra.NoArgs,
	RunE:  runLanguages,
}

var languagesJSON bool

func init() {
	languagesCmd.Flags().BoolVar(&languagesJSON, "json", false, "Print as JSON")
	rootCmd.AddCommand(languagesCmd)
}

func runLanguages(cmd *cobra.Command, _ []string) error {
	var infos []types.LanguageInfo
	for _, code := range lexicon.Languages() {
		pack, err := lexicon.Get(code)
		if err != nil {
			return err
		}
		infos = append(infos, types.LanguageInfo{
			Code:    code,
			Name:    pack.Name,
			Default: code == lexicon.DefaultLanguage,
		})
	}

	out := cmd.OutOrStdout()
	if languagesJSON {
		jsonBytes, err := json.MarshalIndent(infos, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, _ = fmt.Fprintln(out, string(jsonBytes))
		return nil
	}

	for _, info := range infos {
		marker := ""
		if info.Default {
			marker = " (default)"
		}
		_, _ = fmt.Fprintf(out, "%-4s %s%s\n", info.Code, info.Name, marker)
	}
	return nil
}
