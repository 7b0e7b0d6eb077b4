// Package main provides the polyterm binary: a small CLI over the
// polyterm term/expression library for building, combining, and
// rendering polynomial values from their canonical text form.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/njchilds90/polyterm"
)

const (
	Version = "0.1.0"
	appName = "polyterm"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		outputFlag string
		verbose    bool
	)

	root := &cobra.Command{
		Use:           appName,
		Short:         "Build and render polynomial terms and expressions",
		Long:          "polyterm reads terms and expressions in their canonical text form\n(for example 5*x^2*y+7*x+2) and combines or renders them.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVarP(&outputFlag, "output", "o", "", "output format: text, latex, or json (overrides config)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	loadConfig := func() (*Config, error) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		cfg, err := NewLoader(logger).Load()
		if err != nil {
			return nil, err
		}
		if outputFlag != "" {
			cfg.Output = outputFlag
			if err := cfg.Validate(); err != nil {
				return nil, err
			}
		}
		return cfg, nil
	}

	render := &cobra.Command{
		Use:   "render <expression>",
		Short: "Parse an expression and print it in the selected output format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			e, err := polyterm.Parse(args[0])
			if err != nil {
				return err
			}
			return emit(cmd, cfg, e)
		},
	}

	mul := &cobra.Command{
		Use:   "mul <term> [term...]",
		Short: "Multiply terms: monomials merge, coefficients multiply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			result, err := polyterm.ParseTerm(args[0])
			if err != nil {
				return fmt.Errorf("argument 1: %w", err)
			}
			for i, arg := range args[1:] {
				factor, err := polyterm.ParseTerm(arg)
				if err != nil {
					return fmt.Errorf("argument %d: %w", i+2, err)
				}
				result, err = result.Mul(factor)
				if err != nil {
					return err
				}
			}
			return emit(cmd, cfg, result)
		},
	}

	add := &cobra.Command{
		Use:   "add <expression> [expression...]",
		Short: "Add expressions into one flat sum, preserving order",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			operands := make([]polyterm.Operand, len(args))
			for i, arg := range args {
				e, err := polyterm.Parse(arg)
				if err != nil {
					return fmt.Errorf("argument %d: %w", i+1, err)
				}
				operands[i] = e
			}
			result, err := polyterm.Sum(operands...)
			if err != nil {
				return err
			}
			return emit(cmd, cfg, result)
		},
	}

	degree := &cobra.Command{
		Use:   "degree <expression>",
		Short: "Print the maximum total degree of an expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := polyterm.Parse(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), polyterm.Degree(e))
			return nil
		},
	}

	schema := &cobra.Command{
		Use:   "schema",
		Short: "Print the tool-call schema as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), polyterm.ToolSpec())
			return nil
		},
	}

	root.AddCommand(render, mul, add, degree, schema)
	return root
}

func emit(cmd *cobra.Command, cfg *Config, op polyterm.Operand) error {
	switch cfg.Output {
	case "latex":
		fmt.Fprintln(cmd.OutOrStdout(), polyterm.LaTeX(op))
	case "json":
		j, err := polyterm.ToJSON(op)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), j)
	default:
		fmt.Fprintln(cmd.OutOrStdout(), polyterm.String(op))
	}
	return nil
}
