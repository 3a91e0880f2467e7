// Command formula evaluates arithmetic formulas with variables and
// functions, either from arguments, stdin, or an interactive REPL.
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/calclib/formula"
)

var (
	version = "0.1.0"

	varsFile string
	given    []string
	strict   bool
	verb     string
)

var rootCmd = &cobra.Command{
	Use:   "formula",
	Short: "A formula calculator",
	Long: `formula evaluates arithmetic expressions with variables and functions.

Formulas use the operators + - * / ^ % with parentheses and calls such as
sqrt(16) or pmt(rate, nper, pv). All operators associate to the left,
including ^. Variable bindings come from --given flags and an optional
TOML or YAML bindings file.`,
	SilenceUsage: true,
}

var evalCmd = &cobra.Command{
	Use:   "eval [formula ...]",
	Short: "Evaluate formulas from arguments or stdin",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, vars, err := setup()
		if err != nil {
			return err
		}
		if len(args) > 0 {
			for _, src := range args {
				r, err := reg.Evaluate(src, vars)
				if err != nil {
					return err
				}
				fmt.Printf(verb+"\n", r)
			}
			return nil
		}
		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			src := strings.TrimSpace(sc.Text())
			if src == "" {
				continue
			}
			r, err := reg.Evaluate(src, vars)
			if err != nil {
				return err
			}
			fmt.Printf(verb+"\n", r)
		}
		return sc.Err()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("formula v%s %s/%s\n", version, runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&varsFile, "vars", "", "TOML or YAML file of name = value bindings")
	rootCmd.PersistentFlags().StringArrayVar(&given, "given", nil, `name=value variable definition (any number of times)`)
	rootCmd.PersistentFlags().BoolVar(&strict, "strict", false, "reject unknown identifiers before evaluating")
	rootCmd.PersistentFlags().StringVar(&verb, "format", "%g", "result formatting verb")
	rootCmd.AddCommand(evalCmd, replCmd, versionCmd)
}

// setup builds the registry and variable bindings from the persistent
// flags. --given definitions override the bindings file, and each value is
// itself evaluated as a formula against the bindings loaded so far.
func setup() (*formula.Registry, map[string]float64, error) {
	var opts []formula.RegistryOption
	if strict {
		opts = append(opts, formula.Strict())
	}
	reg := formula.NewRegistry(opts...)
	vars := make(map[string]float64)
	if varsFile != "" {
		loaded, err := loadBindings(varsFile)
		if err != nil {
			return nil, nil, err
		}
		for k, v := range loaded {
			vars[k] = v
		}
	}
	for _, s := range given {
		nm, vl, ok := strings.Cut(s, "=")
		if !ok {
			return nil, nil, fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
		}
		r, err := reg.Evaluate(strings.TrimSpace(vl), vars)
		if err != nil {
			return nil, nil, fmt.Errorf("setting %s: %w", strings.TrimSpace(nm), err)
		}
		vars[strings.TrimSpace(nm)] = r
	}
	return reg, vars, nil
}

// loadBindings reads a bindings file. The format follows the file
// extension: .toml is TOML, anything else is YAML.
func loadBindings(path string) (map[string]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	vars := make(map[string]float64)
	switch filepath.Ext(path) {
	case ".toml":
		if err := toml.Unmarshal(data, &vars); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, &vars); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}
	return vars, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
