// Command qplot renders quantum state vectors as magnitude and phase charts.
package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/ha1tch/qplot/internal/config"
	"github.com/ha1tch/qplot/internal/render"
	"github.com/ha1tch/qplot/internal/server"
	"github.com/ha1tch/qplot/pkg/chart"
	"github.com/ha1tch/qplot/pkg/logger"
	"github.com/ha1tch/qplot/pkg/simulation"
)

const usage = `qplot - quantum state vector charts

Usage:
  qplot <command> [options]

Commands:
  png        Render a chart as PNG
  svg        Render a chart as SVG
  view       Show a chart in the terminal
  info       Print amplitudes, phases and probabilities
  serve      Run the HTTP and websocket render server

Input is a simulation message or a bare state vector, as JSON (.json)
or msgpack (.msgpack). Use "-" to read JSON from stdin.

Examples:
  qplot png bell.json -o bell.png
  qplot svg bell.json --width 1024 --height 768 --left 80
  qplot view ghz.msgpack
  qplot info bell.json --csv > bell.csv
  qplot serve --port 9000

Use "qplot <command> -h" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "png":
		cmdRender(render.FormatPNG, args)
	case "svg":
		cmdRender(render.FormatSVG, args)
	case "view":
		cmdView(args)
	case "info":
		cmdInfo(args)
	case "serve":
		cmdServe(args)
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Print(usage)
		os.Exit(1)
	}
}

// renderFlags are the options shared by the drawing commands.
type renderFlags struct {
	input   string
	output  string
	title   string
	verbose bool
	opts    render.Options
}

const renderUsage = `Usage: qplot %s <input> [-o output] [--width N] [--height N]
         [--top N] [--right N] [--bottom N] [--left N] [-t title] [-v]
`

func parseRenderFlags(args []string, cfg *config.Config) (renderFlags, error) {
	rf := renderFlags{opts: render.DefaultOptions()}
	rf.opts.Width, rf.opts.Height = cfg.Width, cfg.Height

	next := func(i *int) (string, error) {
		if *i+1 >= len(args) {
			return "", fmt.Errorf("%s needs a value", args[*i])
		}
		*i++
		return args[*i], nil
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-o", "--output":
			v, err := next(&i)
			if err != nil {
				return rf, err
			}
			rf.output = v
		case "-t", "--title":
			v, err := next(&i)
			if err != nil {
				return rf, err
			}
			rf.title = v
		case "-v", "--verbose":
			rf.verbose = true
		case "--width", "--height":
			v, err := next(&i)
			if err != nil {
				return rf, err
			}
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				return rf, fmt.Errorf("%s: invalid size %q", arg, v)
			}
			if arg == "--width" {
				rf.opts.Width = n
			} else {
				rf.opts.Height = n
			}
		case "--top", "--right", "--bottom", "--left":
			v, err := next(&i)
			if err != nil {
				return rf, err
			}
			n, err := strconv.ParseFloat(v, 64)
			if err != nil || n < 0 || math.IsNaN(n) || math.IsInf(n, 0) {
				return rf, fmt.Errorf("%s: invalid padding %q", arg, v)
			}
			rf.opts.Padding = append(rf.opts.Padding, paddingSide(arg)(n))
		default:
			if strings.HasPrefix(arg, "-") && arg != "-" {
				return rf, fmt.Errorf("unknown option %s", arg)
			}
			if rf.input != "" {
				return rf, fmt.Errorf("unexpected argument %s", arg)
			}
			rf.input = arg
		}
	}
	if rf.input == "" {
		return rf, errors.New("no input file")
	}
	rf.opts.Title = rf.title
	return rf, nil
}

func paddingSide(flag string) func(float64) chart.PaddingOption {
	switch flag {
	case "--top":
		return chart.Top
	case "--right":
		return chart.Right
	case "--bottom":
		return chart.Bottom
	default:
		return chart.Left
	}
}

func cmdRender(f render.Format, args []string) {
	if len(args) < 1 || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintf(os.Stderr, renderUsage, f)
		os.Exit(1)
	}

	cfg := mustLoadConfig()
	rf, err := parseRenderFlags(args, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintf(os.Stderr, renderUsage, f)
		os.Exit(1)
	}
	log := cliLogger(cfg, rf.verbose)
	rf.opts.Log = log

	res := mustLoadResult(rf.input)

	if rf.output == "" {
		rf.output = defaultOutput(rf.input, string(f))
	}

	var buf bytes.Buffer
	if err := render.To(&buf, f, res.Statevector, rf.opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering %s: %v\n", rf.input, err)
		os.Exit(1)
	}

	if rf.output == "-" {
		_, err = buf.WriteTo(os.Stdout)
	} else {
		err = os.WriteFile(rf.output, buf.Bytes(), 0644)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", rf.output, err)
		os.Exit(1)
	}

	log.Debug().Str("output", rf.output).Int("bytes", buf.Len()).Msg("chart written")
	if rf.output != "-" {
		fmt.Printf("Written: %s\n", rf.output)
	}
}

// defaultOutput replaces the input extension; stdin input goes to stdout.
func defaultOutput(input, ext string) string {
	if input == "-" {
		return "-"
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + "." + ext
}

func cmdInfo(args []string) {
	if len(args) < 1 || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage: qplot info <input> [--csv] [--ops]")
		os.Exit(1)
	}

	input := args[0]
	asCSV, asOps := false, false
	for _, arg := range args[1:] {
		switch arg {
		case "--csv":
			asCSV = true
		case "--ops":
			asOps = true
		default:
			fmt.Fprintf(os.Stderr, "Unknown option: %s\n", arg)
			os.Exit(1)
		}
	}

	res := mustLoadResult(input)
	if err := res.Statevector.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	var err error
	switch {
	case asOps:
		cfg := mustLoadConfig()
		opts := render.DefaultOptions()
		opts.Width, opts.Height = cfg.Width, cfg.Height
		err = render.To(os.Stdout, render.FormatOps, res.Statevector, opts)
	case asCSV:
		err = writeCSV(os.Stdout, res)
	default:
		err = writeTable(os.Stdout, res)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func cmdServe(args []string) {
	cfg := mustLoadConfig()
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-p", "--port":
			if i+1 < len(args) {
				port, err := strconv.Atoi(args[i+1])
				if err != nil {
					fmt.Fprintf(os.Stderr, "Invalid port: %s\n", args[i+1])
					os.Exit(1)
				}
				cfg.Port = port
				i++
			}
		case "--dev":
			cfg.DevMode = true
		case "-h", "--help":
			fmt.Fprintln(os.Stderr, "Usage: qplot serve [--port N] [--dev]")
			os.Exit(1)
		}
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.DevMode})
	logger.SetGlobalLogger(log)

	srv := server.New(server.Config{Config: cfg, Log: log, DevMode: cfg.DevMode})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
		os.Exit(1)
	}
	log.Info().Msg("Server stopped")
}

func mustLoadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func cliLogger(cfg *config.Config, verbose bool) zerolog.Logger {
	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	return logger.New(logger.Config{Level: level, Pretty: true})
}

// mustLoadResult loads input and unwraps it. A failed simulation is
// reported with its error text unchanged.
func mustLoadResult(input string) simulation.Result {
	msg, err := loadMessage(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", input, err)
		os.Exit(1)
	}

	var res simulation.Result
	err = simulation.Deliver(msg,
		func(r simulation.Result) error {
			res = r
			return nil
		},
		func(text string) {
			fmt.Fprintln(os.Stderr, text)
			os.Exit(1)
		})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", input, err)
		os.Exit(1)
	}
	return res
}

func loadMessage(path string) (simulation.Message, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return simulation.Message{}, err
		}
		return simulation.ParseJSON(data)
	}

	ext := filepath.Ext(path)
	switch ext {
	case ".json", ".msgpack", ".mp":
	default:
		return simulation.Message{}, fmt.Errorf("unknown file format: %s", ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return simulation.Message{}, err
	}
	if ext == ".json" {
		return simulation.ParseJSON(data)
	}
	return simulation.ParseMsgpack(data)
}
