package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-theft-auto/vscroll"
)

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "vscroll-trace",
		Short:         "Replay scroll sessions through the vscroll engine",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			vscroll.SetVerbose(verbose)
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log engine decisions to stderr.")

	root.AddCommand(newRunCmd(), newWindowCmd())
	return root
}

func newRunCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "run [trace.yaml]",
		Short: "Replay a trace file and print every change set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := vscroll.DefaultConfig()
			if configPath != "" {
				var err error
				if cfg, err = vscroll.LoadConfig(configPath); err != nil {
					return err
				}
			}
			tr, err := LoadTrace(args[0])
			if err != nil {
				return err
			}
			_, err = Replay(cmd.OutOrStdout(), tr, cfg)
			return err
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Engine configuration file (YAML).")
	return cmd
}

func newWindowCmd() *cobra.Command {
	var (
		items     int
		height    float64
		client    float64
		offset    float64
		pages     float64
		adjust    float64
		direction string
	)

	cmd := &cobra.Command{
		Use:   "window",
		Short: "Compute one window over uniformly sized items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := parseDirection(direction)
			if err != nil {
				return err
			}
			ix := vscroll.NewDimensionIndex[int]()
			list := make([]int, max(items, 0))
			for i := range list {
				list[i] = i
			}
			total, err := ix.Rebuild(list, vscroll.Rules[int]{Height: vscroll.Fixed[int](height)})
			if err != nil {
				return err
			}
			p := vscroll.WindowParams{
				Offset:       offset,
				ClientExtent: client,
				ScrollExtent: vscroll.ContentExtent(total, client),
				Direction:    dir,
				Pages:        pages,
				AdjustFactor: adjust,
			}
			lower, upper := p.Bounds()
			span := vscroll.ComputeWindow(ix, p)
			fmt.Fprintf(cmd.OutOrStdout(), "bounds [%g,%g] total %g window %s\n", lower, upper, total, spanString(span))
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVar(&items, "items", 1000, "Number of items.")
	f.Float64Var(&height, "height", 50, "Height of every item.")
	f.Float64Var(&client, "client", 500, "Client extent of the viewport.")
	f.Float64Var(&offset, "offset", 0, "Scroll offset.")
	f.Float64Var(&pages, "pages", vscroll.DefaultVisiblePages, "Window size in client extents.")
	f.Float64Var(&adjust, "adjust", vscroll.DefaultAdjustFactor, "Share of the slack placed behind the scroll direction.")
	f.StringVar(&direction, "direction", "forward", "Scroll direction (forward or backward).")
	return cmd
}

func parseDirection(s string) (vscroll.Direction, error) {
	switch s {
	case "forward", "fwd", "down":
		return vscroll.Forward, nil
	case "backward", "back", "up":
		return vscroll.Backward, nil
	default:
		return vscroll.Forward, fmt.Errorf("unknown direction %q", s)
	}
}
