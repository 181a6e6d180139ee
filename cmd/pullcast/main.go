// Command pullcast runs one forecast from the command line: the request is
// read as JSON from the first argument (or stdin when absent or "-") and the
// result is written as JSON to stdout.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/caarlos0/env/v11"

	"pullcast/internal/config"
	"pullcast/internal/forecast"
)

type cliConfig struct {
	ConfigDir string `env:"CONFIG_DIR"`
}

func main() {
	if err := run(); err != nil {
		var fe *forecast.Error
		if errors.As(err, &fe) {
			_ = json.NewEncoder(os.Stderr).Encode(map[string]string{
				"error": fe.Msg,
				"kind":  string(fe.Kind),
				"field": fe.Field,
			})
		} else {
			fmt.Fprintln(os.Stderr, "pullcast:", err)
		}
		os.Exit(1)
	}
}

func run() error {
	var cfg cliConfig
	if err := env.Parse(&cfg); err != nil {
		return err
	}

	raw, err := readRequest(os.Args[1:])
	if err != nil {
		return err
	}

	var req forecast.Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return fmt.Errorf("invalid request JSON: %w", err)
	}

	res, err := forecast.Run(context.Background(), config.NewStore(cfg.ConfigDir), &req)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func readRequest(args []string) ([]byte, error) {
	if len(args) > 0 && args[0] != "-" {
		return []byte(args[0]), nil
	}
	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("no request given: pass JSON as the first argument or on stdin")
	}
	return raw, nil
}
