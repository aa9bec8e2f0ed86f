package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/fpbx-tools/modgen/internal/config"
	"github.com/fpbx-tools/modgen/internal/logging"
	"github.com/fpbx-tools/modgen/internal/params"
	"github.com/fpbx-tools/modgen/internal/prompt"
	"github.com/fpbx-tools/modgen/internal/scaffold"
	"github.com/spf13/cobra"
)

var (
	genName        string
	genVersion     string
	genDescription string
	genLicense     string
	genCategory    string
	genOutputDir   string
	genAnswers     string
	genYes         bool
)

func init() {
	f := generateCmd.Flags()
	f.StringVar(&genName, "name", "", "Module raw name (lowercase, no spaces)")
	f.StringVar(&genVersion, "version", "", "Module version (default 13.0.1)")
	f.StringVar(&genDescription, "description", "", "Module description")
	f.StringVar(&genLicense, "license", "", "License: GPLv2, GPLv3, AGPLv3 or MIT")
	f.StringVar(&genCategory, "category", "", "Category: Admin, Applications, Connectivity, Reports or Settings")
	f.StringVar(&genOutputDir, "output-dir", "", "Output directory (default: ./<name>)")
	f.StringVar(&genAnswers, "answers", "", "Read answers from a YAML file instead of prompting")
	f.BoolVarP(&genYes, "yes", "y", false, "Skip the questions and use flags and defaults")
	rootCmd.AddCommand(generateCmd)
}

var generateCmd = &cobra.Command{
	Use:   "generate [name]",
	Short: "Creates a skeleton module for FreePBX 13+",
	Long: `Creates a new module in the present working directory.

Without flags the command asks for the module name, version, description,
license and category, shows a summary and waits for confirmation. Pass
--yes, --name or --answers to run without questions.

Examples:
  modgen generate
  modgen generate helloworld --license MIT --category Admin --yes
  modgen generate --answers module.yaml --output-dir ./build/helloworld`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	config.Load()
	if len(args) == 1 {
		genName = args[0]
	}

	answers, err := collectAnswers(cmd)
	if errors.Is(err, prompt.ErrAborted) {
		fmt.Fprintln(cmd.ErrOrStderr(), "Aborted; nothing was generated.")
		return nil
	}
	if err != nil {
		return err
	}

	p, err := params.New(answers)
	if err != nil {
		return err
	}

	outDir, err := resolveOutputDir(p.RawName())
	if err != nil {
		return err
	}

	result, err := scaffold.Run(p, outDir, scaffold.Options{
		Publisher: config.Get(config.KeyPublisher),
		Supported: config.Get(config.KeySupported),
		Logger:    logging.New(cmd.ErrOrStderr(), config.Get(config.KeyLogLevel)),
	})
	if err != nil {
		return err
	}

	printResult(cmd.OutOrStdout(), p, result)
	return nil
}

// configDefaults overlays configured defaults on the built-in ones.
func configDefaults() params.Answers {
	return params.Answers{
		Version:  config.Get(config.KeyVersion),
		License:  config.Get(config.KeyLicense),
		Category: config.Get(config.KeyCategory),
	}.WithDefaults(prompt.Defaults())
}

// collectAnswers reads answers from the answers file, the flags or the
// interactive prompt, in that order of preference.
func collectAnswers(cmd *cobra.Command) (params.Answers, error) {
	defaults := configDefaults()

	switch {
	case genAnswers != "":
		a, err := params.LoadAnswers(genAnswers)
		if err != nil {
			return a, err
		}
		return flagAnswers(cmd, a).WithDefaults(defaults), nil
	case genYes || genName != "":
		a := flagAnswers(cmd, params.Answers{})
		return a.WithDefaults(defaults), nil
	default:
		return prompt.Ask(cmd.InOrStdin(), cmd.ErrOrStderr(), defaults)
	}
}

// flagAnswers applies explicitly set flags on top of a.
func flagAnswers(cmd *cobra.Command, a params.Answers) params.Answers {
	if genName != "" {
		a.Name = params.Normalize(genName)
	}
	f := cmd.Flags()
	if f.Changed("version") {
		a.Version = genVersion
	}
	if f.Changed("description") {
		a.Description = genDescription
	}
	if f.Changed("license") {
		a.License = genLicense
	}
	if f.Changed("category") {
		a.Category = genCategory
	}
	return a
}

func resolveOutputDir(rawName string) (string, error) {
	if genOutputDir != "" {
		return genOutputDir, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolving working directory: %w", err)
	}
	return filepath.Join(cwd, rawName), nil
}

func printResult(w io.Writer, p *params.ParameterSet, result *scaffold.Result) {
	green := color.New(color.FgGreen)
	green.Fprintf(w, "Created module %s at %s/\n", p.RawName(), result.OutputDir)
	for _, f := range result.Files {
		fmt.Fprintf(w, "  %s\n", f)
	}
	if len(result.Warnings) > 0 {
		color.New(color.FgYellow).Fprintln(w, "\nWarnings:")
		for _, warn := range result.Warnings {
			fmt.Fprintf(w, "  - %s\n", warn)
		}
	}

	fmt.Fprintln(w, "\nNext steps:")
	fmt.Fprintf(w, "  1. Edit %s.class.php to add your module logic\n", p.DisplayName())
	fmt.Fprintln(w, "  2. Edit views/main.php to build the module page")
	fmt.Fprintf(w, "  3. Copy the directory to admin/modules/%s and run 'fwconsole ma install %s'\n", p.RawName(), p.RawName())
}
