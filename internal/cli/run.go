package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/prajna-dev/prajna/internal/api"
)

var (
	runLanguage  string
	runInputFile string
)

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Execute a local source file against the judge",
	Long: `Run sends a local source file to the judge for ad-hoc execution
and prints the output. The language is inferred from the file
extension unless --lang is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		code, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading source file: %w", err)
		}

		language := runLanguage
		if language == "" {
			language = languageForFile(args[0])
		}
		if language == "" {
			return fmt.Errorf("cannot infer language for %q, pass --lang", args[0])
		}

		var input string
		if runInputFile != "" {
			data, err := os.ReadFile(runInputFile)
			if err != nil {
				return fmt.Errorf("reading input file: %w", err)
			}
			input = string(data)
		}

		env, err := bootstrap()
		if err != nil {
			return err
		}
		defer env.close()

		ctx, cancel := context.WithTimeout(context.Background(), env.cfg.RequestTimeout())
		defer cancel()

		result, err := env.client.Execute(ctx, api.ExecuteRequest{
			Code:      string(code),
			Language:  language,
			InputData: input,
		})
		if err != nil {
			return fmt.Errorf("execution failed: %w", err)
		}

		fmt.Fprintln(os.Stderr, color.CyanString("status: %s", result.Status))
		if result.TimeMS != nil {
			fmt.Fprintln(os.Stderr, color.CyanString("time:   %.0f ms", *result.TimeMS))
		}
		fmt.Print(result.Output)
		return nil
	},
}

func languageForFile(path string) string {
	switch filepath.Ext(path) {
	case ".py":
		return "python"
	case ".cpp", ".cc", ".cxx":
		return "cpp"
	}
	return ""
}

func init() {
	runCmd.Flags().StringVar(&runLanguage, "lang", "", "Language to execute as (python, cpp)")
	runCmd.Flags().StringVar(&runInputFile, "input", "", "File whose contents are passed as stdin")
}
