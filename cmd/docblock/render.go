package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"docblock/internal/docblock"
	"docblock/internal/driver"
	"docblock/internal/manifest"
)

var renderCmd = &cobra.Command{
	Use:   "render [flags] <path> [path...]",
	Short: "Render document files into doc comments",
	Long: `Render reads JSON document descriptions and produces aligned, wrapped
/** ... */ comment blocks. Directories are walked for *.json files.
Layout defaults come from the nearest docblock.toml; flags override it.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().Int("indent", 0, "indentation width in columns")
	renderCmd.Flags().Bool("tabs", false, "emit a single tab instead of indent spaces")
	renderCmd.Flags().Int("width", 0, "maximum line length")
	renderCmd.Flags().Int("min-width", 0, "minimum width of the wrapped last column")
	renderCmd.Flags().Bool("stdout", false, "print rendered comments instead of writing files")
	renderCmd.Flags().String("out-dir", "", "write outputs into this directory instead of next to inputs")
	renderCmd.Flags().Int("jobs", 0, "render parallelism (0 = number of CPUs)")
	renderCmd.Flags().Bool("no-cache", false, "bypass the render cache")
	renderCmd.Flags().String("ui", "auto", "progress display (auto|on|off)")
	renderCmd.Flags().String("format", "text", "output format (text|json)")
}

func runRender(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	writeToStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return err
	}
	outDir, err := cmd.Flags().GetString("out-dir")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}

	if writeToStdout && outDir != "" {
		return fmt.Errorf("render: --stdout cannot be used with --out-dir")
	}
	if writeToStdout && outputFormat != "text" {
		return fmt.Errorf("render: --stdout is only supported with text output")
	}

	format, err := layoutOptions(cmd)
	if err != nil {
		return err
	}

	useTUI, err := resolveUIMode(uiFlag, os.Stdout)
	if err != nil {
		return err
	}

	opts := driver.Options{
		Format:  format,
		Jobs:    jobs,
		NoCache: noCache,
		Write:   !writeToStdout,
		OutDir:  outDir,
	}

	var results []driver.Result
	if useTUI && !writeToStdout && outputFormat == "text" {
		results, err = runRenderWithUI(cmd.Context(), "rendering doc comments", args, opts)
	} else {
		results, err = driver.RenderPaths(cmd.Context(), args, opts)
	}
	if err != nil {
		return err
	}

	switch outputFormat {
	case "text":
		return renderText(cmd, results, writeToStdout, quiet)
	case "json":
		return renderJSON(cmd, results)
	default:
		return fmt.Errorf("render: unsupported output format %q", outputFormat)
	}
}

// layoutOptions merges the nearest manifest with explicit flag overrides.
func layoutOptions(cmd *cobra.Command) (docblock.Options, error) {
	var opt docblock.Options

	m, ok, err := manifest.LoadNearest(".")
	if err != nil {
		return opt, err
	}
	if ok {
		if opt, err = m.Options(); err != nil {
			return opt, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("indent") {
		if opt.IndentWidth, err = flags.GetInt("indent"); err != nil {
			return opt, err
		}
		if opt.IndentWidth < 0 {
			return opt, fmt.Errorf("render: --indent must be >= 0")
		}
	}
	if flags.Changed("tabs") {
		if opt.UseTabs, err = flags.GetBool("tabs"); err != nil {
			return opt, err
		}
	}
	if flags.Changed("width") {
		if opt.MaxLineLength, err = flags.GetInt("width"); err != nil {
			return opt, err
		}
		if opt.MaxLineLength <= 0 {
			return opt, fmt.Errorf("render: --width must be > 0")
		}
	}
	if flags.Changed("min-width") {
		if opt.MinLastColumnWidth, err = flags.GetInt("min-width"); err != nil {
			return opt, err
		}
		if opt.MinLastColumnWidth <= 0 {
			return opt, fmt.Errorf("render: --min-width must be > 0")
		}
	}
	return opt, nil
}

func renderText(cmd *cobra.Command, results []driver.Result, toStdout, quiet bool) error {
	out := cmd.OutOrStdout()
	var failed int
	for _, res := range results {
		if res.Err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", res.Path, res.Err)
			continue
		}
		if toStdout {
			fmt.Fprintln(out, res.Output)
			continue
		}
		if !quiet {
			note := ""
			if res.FromCache {
				note = " (cached)"
			}
			fmt.Fprintf(out, "%s -> %s%s\n", res.Path, res.OutPath, note)
		}
	}
	if failed > 0 {
		return fmt.Errorf("render: %d file(s) failed", failed)
	}
	return nil
}

type renderPayload struct {
	Path      string `json:"path"`
	OutPath   string `json:"out_path,omitempty"`
	Output    string `json:"output,omitempty"`
	FromCache bool   `json:"from_cache,omitempty"`
	Error     string `json:"error,omitempty"`
}

func renderJSON(cmd *cobra.Command, results []driver.Result) error {
	payload := make([]renderPayload, 0, len(results))
	var failed int
	for _, res := range results {
		p := renderPayload{
			Path:      res.Path,
			OutPath:   res.OutPath,
			Output:    res.Output,
			FromCache: res.FromCache,
		}
		if res.Err != nil {
			failed++
			p.Error = res.Err.Error()
		}
		payload = append(payload, p)
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("render: %d file(s) failed", failed)
	}
	return nil
}
