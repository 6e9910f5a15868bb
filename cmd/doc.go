// Package cmd provides the CLI commands of the pad allocation simulator.
//
// # Commands
//
// otpring-sim: Standalone simulator. Executes single scenarios or full
// scenario sweeps and prints results to stdout.
//
//	go run ./cmd/otpring-sim run --n 2000 --m 4 --d 15 --x 1 --trials 50
//	go run ./cmd/otpring-sim sweep --n 2000 --d 15 --trials 50
//	go run ./cmd/otpring-sim sweep --variant two-pointer
//
// otpring-server: HTTP API for executing and browsing runs. Persists to
// PostgreSQL when configured, memory otherwise.
//
//	go run ./cmd/otpring-server --listen-addr :8080 --metrics-addr :9090
//	go run ./cmd/otpring-server --postgres-host localhost --postgres-password secret
//
// # Configuration
//
// The run command accepts a TOML scenario file via the --config flag;
// command-line flags are ignored when it is set.
//
// Example scenario file:
//
//	n = 2000
//	m = 4
//	d = 15
//	x = 1
//	variant = "ring"
//	trials = 50
//	seed = 1
package cmd
