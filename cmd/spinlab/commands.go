package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/spinlab/internal/config"
	"github.com/san-kum/spinlab/internal/spinham"
	"github.com/san-kum/spinlab/internal/viz"
)

func (a *app) load(path string) (*spinham.Hamiltonian, error) {
	h, err := config.LoadHamiltonian(path, a.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return h, nil
}

// writeTo calls fn with the output file, or with stdout when no file is set.
func (a *app) writeTo(cmd *cobra.Command, fn func(io.Writer) error) error {
	if a.output == "" {
		return fn(cmd.OutOrStdout())
	}
	f, err := os.Create(a.output)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	a.logger.Info("written", "path", a.output)
	return nil
}

func (a *app) writeModel(cmd *cobra.Command, h *spinham.Hamiltonian) error {
	return a.writeTo(cmd, func(w io.Writer) error {
		return config.Encode(w, config.FromHamiltonian(h))
	})
}

func (a *app) summary(cmd *cobra.Command, args []string) error {
	h, err := a.load(args[0])
	if err != nil {
		return err
	}
	styles := viz.NewStyles(viz.GetTheme(a.theme), !a.noColor)
	fmt.Fprintln(cmd.OutOrStdout(), viz.Summary(h, styles))
	return nil
}

func (a *app) browse(cmd *cobra.Command, args []string) error {
	h, err := a.load(args[0])
	if err != nil {
		return err
	}
	return viz.RunBrowser(h, viz.NewStyles(viz.GetTheme(a.theme), !a.noColor))
}

func (a *app) convert(cmd *cobra.Command, args []string) error {
	h, err := a.load(args[0])
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	var target spinham.Notation
	full := false
	if a.notation != "" {
		p := spinham.GetPreset(a.notation)
		if p == nil {
			return fmt.Errorf("unknown notation: %s (available: %v)", a.notation, spinham.ListPresets())
		}
		target, full = *p, true
	} else if cur, err := h.Notation(); err == nil {
		target, full = cur, true
	}

	if full {
		// flags override the preset or the current notation
		if flags.Changed("double-counting") {
			target.DoubleCounting = a.doubleCounting
		}
		if flags.Changed("spin-normalized") {
			target.SpinNormalized = a.spinNormalized
		}
		if flags.Changed("exchange-factor") {
			target.ExchangeFactor = a.exchangeFactor
		}
		if flags.Changed("on-site-factor") {
			target.OnSiteFactor = a.onSiteFactor
		}
		if err := h.SetNotation(target); err != nil {
			return err
		}
	} else {
		changed := false
		if flags.Changed("double-counting") {
			h.SetDoubleCounting(a.doubleCounting)
			changed = true
		}
		if flags.Changed("spin-normalized") {
			if err := h.SetSpinNormalized(a.spinNormalized); err != nil {
				return err
			}
			changed = true
		}
		if flags.Changed("exchange-factor") {
			if err := h.SetExchangeFactor(a.exchangeFactor); err != nil {
				return err
			}
			changed = true
		}
		if flags.Changed("on-site-factor") {
			if err := h.SetOnSiteFactor(a.onSiteFactor); err != nil {
				return err
			}
			changed = true
		}
		if !changed {
			return errors.New("nothing to convert: pass --notation or a notation flag")
		}
	}

	a.logger.Info("converted", "bonds", h.Len(), "total_iso", h.TotalIso())
	return a.writeModel(cmd, h)
}

func (a *app) filter(cmd *cobra.Command, args []string) error {
	h, err := a.load(args[0])
	if err != nil {
		return err
	}

	var opts []spinham.FilterOption
	if cmd.Flags().Changed("min") {
		opts = append(opts, spinham.WithMinDistance(a.minDistance))
	}
	if cmd.Flags().Changed("max") {
		opts = append(opts, spinham.WithMaxDistance(a.maxDistance))
	}
	f, err := h.Filtered(opts...)
	if err != nil {
		return err
	}

	a.logger.Info("filtered", "kept", f.Len(), "dropped", h.Len()-f.Len())
	return a.writeModel(cmd, f)
}

func (a *app) plot(cmd *cobra.Command, args []string) error {
	h, err := a.load(args[0])
	if err != nil {
		return err
	}
	graph, err := viz.PlotExchange(h, a.width, a.height)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), graph)
	return nil
}

func (a *app) exportJSON(cmd *cobra.Command, args []string) error {
	h, err := a.load(args[0])
	if err != nil {
		return err
	}
	return a.writeTo(cmd, func(w io.Writer) error { return config.WriteJSON(w, h) })
}

func (a *app) exportCSV(cmd *cobra.Command, args []string) error {
	h, err := a.load(args[0])
	if err != nil {
		return err
	}
	return a.writeTo(cmd, func(w io.Writer) error { return config.WriteCSV(w, h) })
}

func (a *app) exportSVG(cmd *cobra.Command, args []string) error {
	h, err := a.load(args[0])
	if err != nil {
		return err
	}
	svg, err := viz.BondsSVG(h, a.width, a.height)
	if err != nil {
		return err
	}
	return a.writeTo(cmd, func(w io.Writer) error {
		_, err := io.WriteString(w, svg)
		return err
	})
}

func (a *app) notations(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDOUBLE COUNTING\tSPIN NORMALIZED\tEXCHANGE\tON-SITE\tHAMILTONIAN")
	for _, name := range spinham.ListPresets() {
		n := spinham.Presets[name]
		fmt.Fprintf(w, "%s\t%t\t%t\t%g\t%g\t%s\n",
			name, n.DoubleCounting, n.SpinNormalized, n.ExchangeFactor, n.OnSiteFactor, n.Formula())
	}
	return w.Flush()
}

func (a *app) example(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "examples: %s\n", strings.Join(config.ListPresets(), ", "))
		return nil
	}
	doc := config.GetPreset(args[0])
	if doc == nil {
		return fmt.Errorf("unknown example: %s (available: %v)", args[0], config.ListPresets())
	}
	return a.writeTo(cmd, func(w io.Writer) error { return config.Encode(w, doc) })
}
