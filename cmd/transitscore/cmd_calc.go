package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/David-Botos/transit-ingress/pkg/model"
	"github.com/David-Botos/transit-ingress/pkg/scoring"
)

func newCalcCmd() *cobra.Command {
	var (
		in     scoring.Input
		source string
	)
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Score a single hand-entered candidate",
		Long: `Score one candidate in its catalog's native units. For --source koi the
duration is in days and a depth below 1 is a fraction, as in the KOI table.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			variant, err := model.ParseVariant(source)
			if err != nil {
				return err
			}

			ev, err := scoring.Evaluate(in, variant)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			switch outFormat {
			case "json":
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(ev)
			case "csv":
				_, err = fmt.Fprintf(w, "period,duration,depth,star_mag,score,label\n%v,%v,%v,%v,%v,%s\n",
					ev.Period, ev.Duration, ev.Depth, ev.StarMag, ev.Score, ev.Label)
				return err
			default:
				_, err = fmt.Fprintln(w, renderEvaluation(ev))
				return err
			}
		},
	}
	cmd.Flags().Float64Var(&in.Period, "period", 0, "Orbital period (days)")
	cmd.Flags().Float64Var(&in.Duration, "duration", 0, "Transit duration (hours; days for koi)")
	cmd.Flags().Float64Var(&in.Depth, "depth", 0, "Transit depth (ppm; fraction allowed for koi)")
	cmd.Flags().Float64Var(&in.StarMag, "mag", 0, "Stellar magnitude (Tmag or Kepmag)")
	cmd.Flags().StringVarP(&source, "source", "s", "toi", "Catalog variant: toi, koi or file")
	for _, name := range []string{"period", "duration", "depth", "mag"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}
