package main

import (
	"fmt"
	"log"
	"os"

	"github.com/akmonengine/rope"
	"github.com/akmonengine/rope/config"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	configFile string
	preset     string
	steps      int
	dt         float64
	format     string
	every      int
	ropes      int
	spacing    float64
	workers    int
	plot       bool
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("ropesim: ")

	rootCmd := &cobra.Command{
		Use:          "ropesim",
		Short:        "headless verlet rope simulation",
		SilenceUsage: true,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a rope scene and print particle positions",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	runCmd.Flags().StringVar(&format, "format", "csv", "output format: csv, json or none")
	runCmd.Flags().IntVar(&every, "every", 1, "print one step out of n")
	runCmd.Flags().IntVar(&ropes, "ropes", 1, "number of ropes, side by side along Z")
	runCmd.Flags().Float64Var(&spacing, "spacing", 0.5, "distance between ropes")
	runCmd.Flags().IntVar(&workers, "workers", rope.DEFAULT_WORKERS, "goroutines stepping ropes")
	runCmd.Flags().BoolVar(&plot, "plot", false, "plot the worst segment error over time")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print a configuration as yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return yaml.NewEncoder(cmd.OutOrStdout()).Encode(cfg)
		},
	}
	configCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	configCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}

	rootCmd.AddCommand(runCmd, configCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	switch {
	case configFile != "" && preset != "":
		return nil, fmt.Errorf("--config and --preset are mutually exclusive")
	case configFile != "":
		return config.Load(configFile)
	case preset != "":
		cfg := config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q, see ropesim presets", preset)
		}
		return cfg, nil
	}

	return config.DefaultConfig(), nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("steps") {
		cfg.Run.Steps = steps
	}
	if cmd.Flags().Changed("dt") {
		cfg.Run.Dt = dt
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if ropes < 1 || every < 1 {
		return fmt.Errorf("--ropes and --every must be at least 1")
	}

	out, err := newFrameWriter(format, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	scene, err := cfg.BuildScene()
	if err != nil {
		return err
	}
	world := rope.NewWorld(scene)
	world.Workers = workers

	var clock float64
	for i := 0; i < ropes; i++ {
		r, err := cfg.NewRope(mgl64.Vec3{0, 0, spacing * float64(i)}, world.Query())
		if err != nil {
			return err
		}
		base := r.Anchor()
		world.AddRope(r, func() mgl64.Vec3 {
			return cfg.Run.Motion.Anchor(base, clock)
		})
	}

	log.Printf("%d rope(s) of %d particles, %d colliders, %d steps of %vs",
		ropes, cfg.Rope.Resolution, scene.Len(), cfg.Run.Steps, cfg.Run.Dt)

	stretch := make([]float64, 0, cfg.Run.Steps)
	for step := 1; step <= cfg.Run.Steps; step++ {
		clock = float64(step) * cfg.Run.Dt
		world.Step(cfg.Run.Dt)

		worst := 0.0
		for _, r := range world.Ropes() {
			worst = max(worst, r.MaxStretch())
		}
		stretch = append(stretch, worst)

		if step%every == 0 {
			for i, r := range world.Ropes() {
				if err := out.WriteFrame(step, clock, i, r.Positions()); err != nil {
					return err
				}
			}
		}
	}
	if err := out.Flush(); err != nil {
		return err
	}

	for i, r := range world.Ropes() {
		log.Printf("rope %d: length %.4f (rest %.4f over %d segments), worst segment error %.5f",
			i, r.Length(), r.RestSpan(), r.Resolution()-1, r.MaxStretch())
	}

	if plot && len(stretch) > 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), asciigraph.Plot(stretch,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("worst segment error per step"),
		))
	}

	return nil
}
