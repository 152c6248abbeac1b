package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"sdrspect/pkg/build"
)

// Options holds everything the command line selects for one run.
type Options struct {
	ConfigPath   string
	CenterFreqHz float64
	SampleRateHz float64
	Dwell        time.Duration
	GainDB       float64
	Output       string
	Serve        bool
	Verbose      bool

	// Run is false for one-off commands like "version".
	Run bool
}

func ParseArgs() (*Options, error) {
	buildInfo := build.GetBuildFlags()
	options := &Options{}

	rootCmd := &cobra.Command{
		Use:           buildInfo.Name,
		Short:         "Capture complex baseband from an SDR and render a Kaiser-windowed spectrogram",
		Version:       buildInfo.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd:   true,
			DisableDescriptions: true,
			DisableNoDescFlag:   true,
			HiddenDefaultCmd:    true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			options.Run = true
			return nil
		},
	}

	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s %s (%s)\n", buildInfo.Name, buildInfo.Version, buildInfo.Commit)
		},
	}
	rootCmd.AddCommand(versionCmd)

	// Capture parameters
	rootCmd.PersistentFlags().Float64VarP(&options.CenterFreqHz, "freq", "f", 2.44e9,
		"Center frequency in Hz")
	rootCmd.PersistentFlags().Float64VarP(&options.SampleRateHz, "rate", "r", 20e6,
		"Sample rate (analysis bandwidth) in Hz")
	rootCmd.PersistentFlags().DurationVarP(&options.Dwell, "dwell", "d", time.Second,
		"Capture duration")
	rootCmd.PersistentFlags().Float64VarP(&options.GainDB, "gain", "g", 30,
		"Receive gain in dB")

	// Output
	rootCmd.PersistentFlags().StringVarP(&options.Output, "output", "o", "",
		"Spectrogram PNG path (default from config)")
	rootCmd.PersistentFlags().BoolVarP(&options.Serve, "serve", "s", false,
		"Publish the spectrogram over WebSocket")

	rootCmd.PersistentFlags().StringVarP(&options.ConfigPath, "config", "c", "",
		"Config file path (default: config.yaml if present)")
	rootCmd.PersistentFlags().BoolVarP(&options.Verbose, "verbose", "v", false,
		"Show verbose output")

	rootCmd.SetArgs(os.Args[1:])
	if err := rootCmd.Execute(); err != nil {
		return nil, err
	}

	return options, nil
}
