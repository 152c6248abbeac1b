package main

import (
	"context"
	"os/signal"
	"syscall"

	"sdrspect/cmd"
	"sdrspect/internal/config"
	"sdrspect/internal/dsp"
	applog "sdrspect/internal/log"
	"sdrspect/internal/pipeline"
	"sdrspect/internal/radio"
	"sdrspect/internal/render"
	"sdrspect/internal/transport"
	"sdrspect/pkg/build"
)

// main runs one bounded capture-then-process batch:
//
//  1. Startup: parse arguments, load configuration, connect the radio.
//  2. Run: acquire samples, remove DC, compute the spectrogram. An
//     interrupt during acquisition aborts the capture cooperatively and
//     the partial results still flow downstream.
//  3. Hand-off: write the heatmap PNG and, if enabled, publish the frame
//     to WebSocket viewers.
func main() {
	build.Initialize()

	opts, err := cmd.ParseArgs()
	if err != nil {
		applog.Fatalf("argument error: %v", err)
	}
	if !opts.Run {
		return
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		applog.Fatalf("configuration error: %v", err)
	}
	if opts.Verbose {
		applog.SetLevel(applog.LevelDebug)
	} else if level, ok := applog.ParseLevel(cfg.LogLevel); ok {
		applog.SetLevel(level)
	}

	frontend, err := newFrontend(cfg)
	if err != nil {
		applog.Fatalf("%v", err)
	}
	if err := frontend.Connect(); err != nil {
		applog.Fatalf("radio connect failed: %v", err)
	}
	defer frontend.Close()
	applog.Infof("connected to %q front end", frontend.Name())

	p := &pipeline.Pipeline{
		Frontend:   frontend,
		Blocker:    dsp.DCBlocker{CutoffHz: cfg.DCBlock.CutoffHz},
		Engine:     dsp.Engine{AttenuationDB: cfg.STFT.AttenuationDB, ResolutionHz: cfg.STFT.ResolutionHz},
		StallLimit: cfg.Capture.StallLimit,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	prm := pipeline.Params{
		CenterFreqHz: opts.CenterFreqHz,
		SampleRateHz: opts.SampleRateHz,
		Dwell:        opts.Dwell,
		GainDB:       opts.GainDB,
	}
	res, err := p.Run(ctx, prm)
	if err != nil {
		applog.Fatalf("run failed: %v", err)
	}

	applog.Infof("acquired %d of %d samples (%d after DC removal)",
		res.Capture.Received, res.Capture.Target, len(res.Clean))
	if res.Capture.Overflows > 0 {
		applog.Warnf("stream reported %d overflows; expect gaps", res.Capture.Overflows)
	}

	if res.Spec == nil {
		applog.Warnf("degraded run: no spectrogram produced, raw capture only")
		return
	}

	output := opts.Output
	if output == "" {
		output = cfg.Render.Output
	}
	if err := render.WritePNG(output, res.Spec); err != nil {
		applog.Errorf("%v", err)
	} else {
		applog.Infof("wrote spectrogram to %s", output)
	}

	if opts.Serve || cfg.Transport.WSEnabled {
		publisher := transport.NewWebSocketPublisher(cfg.Transport.WSListen)
		defer publisher.Close()
		frame := transport.NewFrame(res.Spec, prm.CenterFreqHz, prm.SampleRateHz)
		if err := publisher.Publish(frame); err != nil {
			applog.Errorf("publish failed: %v", err)
		}
		applog.Infof("press Ctrl-C to stop serving")
		<-ctx.Done()
	}
}

// newFrontend builds the configured radio driver.
func newFrontend(cfg *config.Config) (radio.Frontend, error) {
	switch cfg.Radio.Driver {
	case "sim":
		return radio.NewSim(cfg.Radio.ChunkSize), nil
	default:
		return nil, &unknownDriverError{cfg.Radio.Driver}
	}
}

type unknownDriverError struct {
	driver string
}

func (e *unknownDriverError) Error() string {
	return "unsupported radio driver " + e.driver + ", pick one of: sim"
}
