package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/viant/sbam"
)

// ErrNoToken is returned by load when no valid token is stored.
var ErrNoToken = errors.New("no token")

const usage = "[options] save <token> | load | remove | migrate <local|session|cookie>"

// Run parses args and executes the command, writing results to stdout.
func Run(args []string) error {
	return run(context.Background(), args, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	options := &Options{}
	parser := flags.NewParser(options, flags.Default)
	parser.Usage = usage
	rest, err := parser.ParseArgs(args)
	if err != nil {
		return err
	}
	if len(rest) == 0 {
		return fmt.Errorf("missing command, usage: sbam %v", usage)
	}
	level := slog.LevelInfo
	if options.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	var configs []*sbam.Config
	if options.ConfigURL != "" {
		config, err := sbam.LoadConfig(ctx, options.ConfigURL)
		if err != nil {
			return err
		}
		configs = append(configs, config)
	}
	// flags win over the config file
	configs = append(configs, &options.Config)
	srv := New(options.Format, logger, stdout, configs...)
	return srv.Execute(ctx, rest[0], rest[1:])
}
