package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"slices"
	"strconv"
	"syscall"
	"time"

	"github.com/banshee-data/hinge/internal/commands"
	"github.com/banshee-data/hinge/internal/config"
	"github.com/banshee-data/hinge/internal/monitoring"
	"github.com/banshee-data/hinge/internal/units"
	"github.com/banshee-data/hinge/internal/version"
)

// Exit codes
const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

const readTimeout = 2 * time.Second

// command aliases accepted on the command line
var aliases = map[string]string{
	"angle":   commands.ReadHingeAngle,
	"posture": commands.ReadPostureType,
}

type options struct {
	configPath string
	angle      string
	fixtures   string
	units      string
	jsonOut    bool
	quiet      bool
	version    bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("hinge", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var opts options
	fs.StringVar(&opts.configPath, "config", "", "Path to a JSON config file")
	fs.StringVar(&opts.angle, "angle", "", "Override the stub sensor angle in degrees")
	fs.StringVar(&opts.fixtures, "fixtures", "", "Replay angles from a fixtures file (dev mode)")
	fs.StringVar(&opts.units, "units", "", "Units for read_hinge_angle output (deg, rad)")
	fs.BoolVar(&opts.jsonOut, "json", false, "Print the result as JSON")
	fs.BoolVar(&opts.quiet, "quiet", false, "Suppress diagnostic logging")
	fs.BoolVar(&opts.version, "version", false, "Print version and exit")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: hinge [flags] <read_hinge_angle|read_posture_type>\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	if opts.version {
		fmt.Fprintln(stdout, version.String())
		return exitOK
	}

	if opts.quiet {
		monitoring.SetLogger(nil)
	} else {
		monitoring.SetLogger(log.New(stderr, "", log.LstdFlags).Printf)
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return exitUsage
	}
	name := fs.Arg(0)
	if full, ok := aliases[name]; ok {
		name = full
	}
	if !slices.Contains(commands.Names(), name) {
		fmt.Fprintf(stderr, "error: %v: %q\n", commands.ErrUnknownCommand, name)
		return exitUsage
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}

	source, err := cfg.NewAngleSource()
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitFailed
	}
	cmds := commands.New(source, commands.WithNonFinitePolicy(cfg.GetNonFinitePolicy()))

	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	if err := execute(ctx, cmds, name, cfg.GetUnits(), opts.jsonOut, stdout); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		if errors.Is(err, commands.ErrUnknownCommand) {
			return exitUsage
		}
		return exitFailed
	}
	return exitOK
}

// loadConfig reads the config file, if any, and applies flag overrides.
func loadConfig(opts options) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if opts.configPath != "" {
		var err error
		cfg, err = config.LoadConfig(opts.configPath)
		if err != nil {
			return nil, err
		}
	}

	if opts.angle != "" {
		angle, err := strconv.ParseFloat(opts.angle, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid -angle %q: %w", opts.angle, err)
		}
		cfg.FixedAngle = &angle
	}
	if opts.fixtures != "" {
		cfg.FixturesPath = &opts.fixtures
	}
	if opts.units != "" {
		cfg.Units = &opts.units
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func execute(ctx context.Context, cmds *commands.Commands, name, unit string, jsonOut bool, w io.Writer) error {
	switch name {
	case commands.ReadHingeAngle:
		angle, err := cmds.ReadHingeAngle(ctx)
		if err != nil {
			return err
		}
		value := units.ConvertAngle(angle, unit)
		if jsonOut {
			return writeJSON(w, commands.AngleReading{Angle: value, Units: unit})
		}
		fmt.Fprintln(w, strconv.FormatFloat(value, 'f', -1, 64))
		return nil

	case commands.ReadPostureType:
		if jsonOut {
			r, err := cmds.ReadPosture(ctx)
			if err != nil {
				return err
			}
			return writeJSON(w, r)
		}
		label, err := cmds.ReadPostureType(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, label)
		return nil
	}

	// Anything else goes through dispatch so unknown names get the same error.
	_, err := cmds.Invoke(ctx, name)
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return nil
}
