package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/spinlab/internal/logging"
	"github.com/san-kum/spinlab/internal/viz"
)

var version = "dev"

type app struct {
	logLevel string
	noColor  bool
	theme    string
	output   string

	notation       string
	doubleCounting bool
	spinNormalized bool
	exchangeFactor float64
	onSiteFactor   float64

	minDistance float64
	maxDistance float64

	width  int
	height int

	logger *slog.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "spinlab",
		Short:         "spin Hamiltonian notation toolkit",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logging.ParseLevel(a.logLevel)
			if err != nil {
				return err
			}
			a.logger = logging.New(cmd.ErrOrStderr(), level, !a.noColor)
			slog.SetDefault(a.logger)
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "disable colored output")

	summaryCmd := &cobra.Command{
		Use:   "summary [model.yaml]",
		Short: "show cell, atoms, notation and bonds",
		Args:  cobra.ExactArgs(1),
		RunE:  a.summary,
	}
	summaryCmd.Flags().StringVar(&a.theme, "theme", viz.ThemeCyberpunk.Name, fmt.Sprintf("color theme %v", viz.ThemeNames()))

	browseCmd := &cobra.Command{
		Use:   "browse [model.yaml]",
		Short: "browse bonds interactively in any notation",
		Args:  cobra.ExactArgs(1),
		RunE:  a.browse,
	}
	browseCmd.Flags().StringVar(&a.theme, "theme", viz.ThemeCyberpunk.Name, fmt.Sprintf("color theme %v", viz.ThemeNames()))

	convertCmd := &cobra.Command{
		Use:   "convert [model.yaml]",
		Short: "rewrite the bond values in another notation",
		Args:  cobra.ExactArgs(1),
		RunE:  a.convert,
	}
	convertCmd.Flags().StringVarP(&a.notation, "notation", "n", "", "target preset (see notations)")
	convertCmd.Flags().BoolVar(&a.doubleCounting, "double-counting", true, "store both directions of each bond")
	convertCmd.Flags().BoolVar(&a.spinNormalized, "spin-normalized", false, "values include spin magnitudes")
	convertCmd.Flags().Float64Var(&a.exchangeFactor, "exchange-factor", 1, "prefactor of the two-body sum")
	convertCmd.Flags().Float64Var(&a.onSiteFactor, "on-site-factor", 1, "prefactor of the on-site sum")
	convertCmd.Flags().StringVarP(&a.output, "output", "o", "", "output file (default stdout)")

	filterCmd := &cobra.Command{
		Use:   "filter [model.yaml]",
		Short: "keep bonds within a distance range",
		Args:  cobra.ExactArgs(1),
		RunE:  a.filter,
	}
	filterCmd.Flags().Float64Var(&a.minDistance, "min", 0, "minimum bond length (Å)")
	filterCmd.Flags().Float64Var(&a.maxDistance, "max", 0, "maximum bond length (Å)")
	filterCmd.Flags().StringVarP(&a.output, "output", "o", "", "output file (default stdout)")

	plotCmd := &cobra.Command{
		Use:   "plot [model.yaml]",
		Short: "plot isotropic exchange against bond length",
		Args:  cobra.ExactArgs(1),
		RunE:  a.plot,
	}
	plotCmd.Flags().IntVar(&a.width, "width", 80, "plot width")
	plotCmd.Flags().IntVar(&a.height, "height", 15, "plot height")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [model.yaml]",
		Short: "export the bond table to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  a.exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&a.output, "output", "o", "", "output file (default stdout)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [model.yaml]",
		Short: "export the bond table to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  a.exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&a.output, "output", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [model.yaml]",
		Short: "draw atoms and bonds projected on the xy plane",
		Args:  cobra.ExactArgs(1),
		RunE:  a.exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&a.width, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&a.height, "height", 600, "image height")
	exportSVGCmd.Flags().StringVarP(&a.output, "output", "o", "", "output file (default stdout)")

	notationsCmd := &cobra.Command{
		Use:   "notations",
		Short: "list predefined notations",
		Args:  cobra.NoArgs,
		RunE:  a.notations,
	}

	exampleCmd := &cobra.Command{
		Use:   "example [name]",
		Short: "write an example model, or list them",
		Args:  cobra.MaximumNArgs(1),
		RunE:  a.example,
	}
	exampleCmd.Flags().StringVarP(&a.output, "output", "o", "", "output file (default stdout)")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "print version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "spinlab", version)
		},
	}

	rootCmd.AddCommand(summaryCmd, browseCmd, convertCmd, filterCmd, plotCmd, exportJSONCmd, exportCSVCmd, exportSVGCmd, notationsCmd, exampleCmd, versionCmd)
	return rootCmd
}
