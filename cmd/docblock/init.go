package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"docblock/internal/manifest"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a docblock project",
	Long: `Initialize a docblock project by creating a project manifest
(docblock.toml) and an example document (example.json). If [path|name] is
omitted, initializes the current directory. If a non-existing name is
provided, a directory will be created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

var projectNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

const exampleDocument = `[
  "Example document description.",
  [
    ["@author", "Example Author Name"],
    ["@copyright", "2025 Example Author Name"]
  ]
]
`

func runInit(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	// Resolve target directory
	var target string
	if len(args) == 0 || args[0] == "." {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = wd
	} else {
		arg := args[0]
		if !filepath.IsAbs(arg) {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			target = filepath.Join(wd, arg)
		} else {
			target = arg
		}
	}

	// Ensure directory exists
	if st, err := os.Stat(target); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err = os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %q: %w", target, err)
			}
		} else {
			return err
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	// Project name from the directory basename
	name := strings.ToLower(filepath.Base(target))
	if !projectNamePattern.MatchString(name) {
		name = "docblock-project"
	}

	manifestPath := filepath.Join(target, manifest.FileName)
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("%s already exists", manifestPath)
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if err := os.WriteFile(manifestPath, []byte(manifest.Starter(name)), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", manifestPath, err)
	}
	examplePath := filepath.Join(target, "example.json")
	if _, err := os.Stat(examplePath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(examplePath, []byte(exampleDocument), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", examplePath, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", examplePath)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", manifestPath)
	return nil
}
