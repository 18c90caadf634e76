// Package main provides shiftctl, a command-line driver for a chain of
// 74HC595-style shift registers.
//
// Usage:
//
//	shiftctl [options] <command> [arguments]
//
// Commands:
//
//	set <index> <value>           write one register and flush
//	write <start> <value>...      write consecutive registers and flush
//	bit <index> <bit> high|low    drive one output bit and flush
//	flush                         push the initial fill to the chain
//	clear                         zero every register and flush
//	show                          print the shadow store
//	run <script.star>             run a Starlark script against the chain
//
// Values accept Go integer prefixes (0x, 0b, 0o). Logical bit 0 is a
// register's most-significant output.
//
// Options:
//
//	-config path    Configuration file (default: shiftctl.yaml)
//	-backend name   Override the configured backend (periph or sim)
//	-n count        Override the configured register count
//	-v              Enable verbose (debug) logging
//	-json           Use JSON log format
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/ardnew/softshift/chain"
	"github.com/ardnew/softshift/internal/config"
	"github.com/ardnew/softshift/internal/translate"
	"github.com/ardnew/softshift/line"
	"github.com/ardnew/softshift/line/periph"
	"github.com/ardnew/softshift/line/sim"
	"github.com/ardnew/softshift/pkg"
)

// component identifies this executable for structured logging.
const component = pkg.ComponentCLI

func main() {
	configPath := flag.String("config", "shiftctl.yaml", "configuration file")
	backend := flag.String("backend", "", "override backend (periph or sim)")
	registers := flag.Int("n", 0, "override register count")
	verbose := flag.Bool("v", false, "enable verbose (debug) logging")
	jsonLog := flag.Bool("json", false, "use JSON log format")
	flag.Parse()

	if flag.NArg() < 1 {
		pkg.LogError(component, "missing command argument",
			"usage", "shiftctl [options] <command> [arguments]")
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		pkg.LogError(component, "failed to load configuration", "error", err)
		os.Exit(1)
	}
	if *backend != "" {
		cfg.Backend = *backend
	}
	if *registers != 0 {
		cfg.Registers = *registers
	}
	if err := config.Validate(cfg); err != nil {
		pkg.LogError(component, "invalid configuration", "error", err)
		os.Exit(1)
	}

	// Set up logging
	pkg.SetLogLevel(cfg.Logger.SlogLevel())
	if *verbose {
		pkg.SetLogLevel(slog.LevelDebug)
	}
	if *jsonLog || cfg.Logger.Format == "json" {
		pkg.SetLogFormat(pkg.LogFormatJSON)
	}

	dev, hw, err := open(cfg)
	if err != nil {
		pkg.LogError(component, "failed to open chain", "backend", cfg.Backend, "error", err)
		os.Exit(1)
	}

	err = execute(dev, flag.Args(), os.Stdout)
	if hw != nil {
		for i, v := range hw.Outputs() {
			fmt.Fprintln(os.Stdout, translate.From("output %d = 0x%02X", i, v))
		}
	}
	if cerr := dev.Close(); cerr != nil {
		pkg.LogWarn(component, "failed to idle lines", "error", cerr)
	}
	if err != nil {
		pkg.LogError(component, "command failed", "command", flag.Arg(0), "error", err)
		os.Exit(1)
	}
}

// open builds the device for cfg. The simulated chain is returned for the
// sim backend so its outputs can be reported.
func open(cfg *config.Config) (*chain.Device, *sim.Chain, error) {
	var (
		hw                 *sim.Chain
		data, clock, latch line.Line
	)

	switch cfg.Backend {
	case config.BackendSim:
		hw = sim.NewChain(cfg.Registers, nil)
		data, clock, latch = hw.Data(), hw.Clock(), hw.Latch()
	case config.BackendPeriph:
		var err error
		if data, err = periph.Open(cfg.Pins.Data); err != nil {
			return nil, nil, err
		}
		if clock, err = periph.Open(cfg.Pins.Clock); err != nil {
			return nil, nil, err
		}
		if latch, err = periph.Open(cfg.Pins.Latch); err != nil {
			return nil, nil, err
		}
	default:
		return nil, nil, fmt.Errorf("%w: backend %q", pkg.ErrNotSupported, cfg.Backend)
	}

	dev, err := chain.New(cfg.Registers, data, clock, latch, byte(cfg.Fill))
	if err != nil {
		return nil, nil, err
	}
	pkg.LogInfo(component, "chain opened",
		"backend", cfg.Backend, "registers", cfg.Registers)
	return dev, hw, nil
}
