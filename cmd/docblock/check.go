package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"docblock/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <path> [path...]",
	Short: "Verify that rendered outputs are up to date",
	Long: `Check renders every document and compares the result against the
existing output file. Nothing is written; drift makes the command fail.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Int("indent", 0, "indentation width in columns")
	checkCmd.Flags().Bool("tabs", false, "emit a single tab instead of indent spaces")
	checkCmd.Flags().Int("width", 0, "maximum line length")
	checkCmd.Flags().Int("min-width", 0, "minimum width of the wrapped last column")
	checkCmd.Flags().String("out-dir", "", "directory holding the expected outputs")
	checkCmd.Flags().Bool("no-cache", false, "bypass the render cache")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	outDir, err := cmd.Flags().GetString("out-dir")
	if err != nil {
		return err
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}

	format, err := layoutOptions(cmd)
	if err != nil {
		return err
	}

	results, err := driver.RenderPaths(cmd.Context(), args, driver.Options{
		Format:  format,
		NoCache: noCache,
	})
	if err != nil {
		return err
	}

	stale := color.New(color.FgYellow).SprintFunc()
	bad := color.New(color.FgRed).SprintFunc()
	ok := color.New(color.FgGreen).SprintFunc()

	var failed, drifted int
	for _, res := range results {
		if res.Err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "%s %s: %v\n", bad("error"), res.Path, res.Err)
			continue
		}
		expectedPath := driver.OutputPath(res.Path, outDir)
		expected, err := os.ReadFile(expectedPath)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				drifted++
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s: missing %s\n", stale("stale"), res.Path, expectedPath)
				continue
			}
			return err
		}
		if string(expected) != res.Output+"\n" {
			drifted++
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s is out of date\n", stale("stale"), res.Path, expectedPath)
			continue
		}
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ok("ok"), res.Path)
		}
	}

	if failed > 0 {
		return fmt.Errorf("check: %d file(s) failed to render", failed)
	}
	if drifted > 0 {
		return fmt.Errorf("check: %d file(s) out of date", drifted)
	}
	return nil
}
