package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"go.uber.org/zap"

	"github.com/comalice/hsm"
	"github.com/comalice/hsm/internal/camera"
	"github.com/comalice/hsm/internal/logging"
	"github.com/comalice/hsm/internal/production"
)

type step struct {
	note  string
	evt   hsm.EventID
	param any
}

// The classic camera walk-through: power on, shoot, browse, low battery, power off.
var script = []step{
	{"Turn on the power", camera.EvPwr, nil},
	{"Take a picture", camera.EvRelease, 1},
	{"Take another picture", camera.EvRelease, 0},
	{"Playback the photo", camera.EvMode, nil},
	{"Oops, pushed the release button by accident", camera.EvRelease, 0},
	{"Go to menu settings", camera.EvMode, nil},
	{"Uh oh, low battery", camera.EvLowBatt, nil},
	{"Time to turn it off", camera.EvPwr, nil},
}

func main() {
	configPath := flag.String("config", "", "YAML config describing the camera chart and machine")
	debug := flag.String("debug", "all", "comma separated trace flags: run,tran,intact,all,none")
	logLevel := flag.String("log-level", "debug", "log level")
	dot := flag.Bool("dot", false, "print the chart as Graphviz DOT after the script")
	metrics := flag.Bool("metrics", false, "print Prometheus counters after the script")
	flag.Parse()

	if err := run(*configPath, *debug, *logLevel, *dot, *metrics); err != nil {
		fmt.Fprintln(os.Stderr, "demo:", err)
		os.Exit(1)
	}
}

func run(configPath, debug, logLevel string, dot, metrics bool) error {
	logger, err := logging.New(logLevel, false)
	if err != nil {
		return err
	}
	defer logger.Sync()

	chart := camera.NewChart()
	name := "Canon"
	opts := []hsm.Option{hsm.WithLogger(logger), hsm.WithPrefix("[Camera] ")}

	if configPath != "" {
		cfg, err := hsm.LoadConfig(configPath)
		if err != nil {
			return err
		}
		if chart, err = camera.ChartFromConfig(&cfg.Chart); err != nil {
			return err
		}
		cfgOpts, err := cfg.Machine.Options()
		if err != nil {
			return err
		}
		opts = append(opts, cfgOpts...)
		if cfg.Machine.Name != "" {
			name = cfg.Machine.Name
		}
	} else {
		flags, err := hsm.ParseDebugFlags(strings.Split(debug, ","))
		if err != nil {
			return err
		}
		opts = append(opts, hsm.WithDebug(flags))
	}

	reg := prometheus.NewRegistry()
	obs, err := production.NewMetrics(reg)
	if err != nil {
		return err
	}
	opts = append(opts, hsm.WithObserver(obs))

	cam, err := camera.New(name, chart, camera.Printer{W: os.Stdout}, opts...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Events are queued from this goroutine and consumed by the pump, which is
	// the only goroutine touching the machine.
	src := production.NewChannelSource(1)
	done := make(chan error, 1)
	go func() {
		done <- production.Pump(ctx, cam.Machine(), src, logger)
	}()

	for _, s := range script {
		logger.Info(s.note, zap.String("event", cam.Machine().EventName(s.evt)))
		if err := src.Send(ctx, production.Event{ID: s.evt, Param: s.param}); err != nil {
			break
		}
	}
	src.Close()
	if err := <-done; err != nil && err != context.Canceled {
		return err
	}

	fmt.Println("Final state:", cam.Machine().PathString())
	if dot {
		fmt.Print(production.ExportDOT(chart.Chart, cam.Machine().State()))
	}
	if metrics {
		return printMetrics(reg)
	}
	return nil
}

func printMetrics(reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			fmt.Printf("%s{%s} %g\n", mf.GetName(), labels(m.GetLabel()), value(m))
		}
	}
	return nil
}

func labels(pairs []*dto.LabelPair) string {
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, fmt.Sprintf("%s=%q", p.GetName(), p.GetValue()))
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}

func value(m *dto.Metric) float64 {
	if c := m.GetCounter(); c != nil {
		return c.GetValue()
	}
	return m.GetGauge().GetValue()
}
