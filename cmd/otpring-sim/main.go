// Command otpring-sim runs pad-allocation simulations from the command line.
//
// The run command executes one scenario and prints its record as JSON. The
// sweep command reproduces the reference tables: for each x in 1..m it runs a
// batch of trials and prints average waste and utilization per scenario.
//
// # Usage
//
//	otpring-sim run --n 2000 --m 4 --d 15 --x 1 --trials 50
//	otpring-sim sweep --n 2000 --d 15 --trials 50
//	otpring-sim run --config scenario.toml
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/BurntSushi/toml"
	cli "github.com/urfave/cli/v2"

	"github.com/flashbots/otpring/protocol"
	"github.com/flashbots/otpring/services"
	"github.com/flashbots/otpring/stats"
)

var version = "dev"

var (
	nFlag = &cli.IntFlag{
		Name:  "n",
		Usage: "Number of pad slots in the pool",
		Value: 2000,
	}
	mFlag = &cli.IntFlag{
		Name:  "m",
		Usage: "Number of parties",
		Value: 4,
	}
	dFlag = &cli.IntFlag{
		Name:  "d",
		Usage: "Safety buffer in ring positions",
		Value: 15,
	}
	xFlag = &cli.IntFlag{
		Name:  "x",
		Usage: "Number of active senders",
		Value: 1,
	}
	variantFlag = &cli.StringFlag{
		Name:  "variant",
		Usage: "Protocol variant: ring or two-pointer",
		Value: string(protocol.VariantRing),
	}
	trialsFlag = &cli.IntFlag{
		Name:  "trials",
		Usage: "Trials per scenario",
		Value: 50,
	}
	seedFlag = &cli.Int64Flag{
		Name:  "seed",
		Usage: "Base seed for network jitter and role sampling",
		Value: 1,
	}
	maxTicksFlag = &cli.IntFlag{
		Name:  "max-ticks",
		Usage: "Tick budget per trial (0 uses the default of 100*n)",
	}
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "TOML scenario file; overrides the scenario flags",
	}
	verboseFlag = &cli.BoolFlag{
		Name:  "verbose",
		Usage: "Enable debug logging",
	}
)

func main() {
	app := &cli.App{
		Name:     "otpring-sim",
		Version:  version,
		Usage:    "cooperative one-time-pad ring allocation simulator",
		Commands: []*cli.Command{runCmd, sweepCmd},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

var runCmd = &cli.Command{
	Name:  "run",
	Usage: "execute one scenario and print its record as JSON",
	Flags: []cli.Flag{nFlag, mFlag, dFlag, xFlag, variantFlag, trialsFlag, seedFlag, maxTicksFlag, configFlag, verboseFlag},

	Action: func(cctx *cli.Context) error {
		req, err := requestFromFlags(cctx)
		if err != nil {
			return err
		}

		runner := services.NewRunner(services.NewInMemoryStore(), newLogger(cctx.Bool(verboseFlag.Name)))
		record, err := runner.Execute(cctx.Context, req)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(record)
	},
}

var sweepCmd = &cli.Command{
	Name:  "sweep",
	Usage: "run every scenario S.1 .. S.m and print the summary table",
	Flags: []cli.Flag{nFlag, mFlag, dFlag, variantFlag, trialsFlag, seedFlag, verboseFlag},

	Action: func(cctx *cli.Context) error {
		var (
			n       = cctx.Int(nFlag.Name)
			m       = cctx.Int(mFlag.Name)
			d       = cctx.Int(dFlag.Name)
			variant = cctx.String(variantFlag.Name)
		)

		runner := services.NewRunner(services.NewInMemoryStore(), newLogger(cctx.Bool(verboseFlag.Name)))

		rows := make([]stats.ScenarioRow, 0, m)
		for x := 1; x <= m; x++ {
			record, err := runner.Execute(cctx.Context, &services.RunRequest{
				N:       n,
				M:       m,
				D:       d,
				X:       x,
				Variant: variant,
				Trials:  cctx.Int(trialsFlag.Name),
				Seed:    cctx.Int64(seedFlag.Name),
			})
			if err != nil {
				return fmt.Errorf("scenario S.%d: %w", x, err)
			}
			rows = append(rows, stats.ScenarioRow{X: x, Summary: record.Summary})
		}

		if variant == string(protocol.VariantTwoPointer) {
			return stats.WriteTwoPointerTable(os.Stdout, m, n, d, rows)
		}
		return stats.WriteRingTable(os.Stdout, m, n, d, rows)
	},
}

// requestFromFlags builds a request from the scenario flags, or decodes it
// from the TOML file when --config is set.
func requestFromFlags(cctx *cli.Context) (*services.RunRequest, error) {
	if path := cctx.String(configFlag.Name); path != "" {
		var req services.RunRequest
		if _, err := toml.DecodeFile(path, &req); err != nil {
			return nil, fmt.Errorf("reading scenario file %s: %w", path, err)
		}
		return &req, nil
	}

	return &services.RunRequest{
		N:        cctx.Int(nFlag.Name),
		M:        cctx.Int(mFlag.Name),
		D:        cctx.Int(dFlag.Name),
		X:        cctx.Int(xFlag.Name),
		Variant:  cctx.String(variantFlag.Name),
		Trials:   cctx.Int(trialsFlag.Name),
		Seed:     cctx.Int64(seedFlag.Name),
		MaxTicks: cctx.Int(maxTicksFlag.Name),
	}, nil
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
