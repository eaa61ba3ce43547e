package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/viant/sbam"
	"github.com/viant/sbam/store"
	"github.com/viant/sbam/validator"
	"golang.org/x/oauth2"
)

// Service executes CLI commands against a Manager built from layered configs.
type Service struct {
	configs []*sbam.Config
	format  string
	logger  *slog.Logger
	out     io.Writer
}

// New creates a Service; later configs override earlier ones.
func New(format string, logger *slog.Logger, out io.Writer, configs ...*sbam.Config) *Service {
	return &Service{configs: configs, format: format, logger: logger, out: out}
}

// Execute runs command with its positional args.
func (s *Service) Execute(ctx context.Context, command string, args []string) error {
	switch s.format {
	case "", "string":
		return execute(ctx, s, command, args, parseString)
	case "jwt":
		return execute(ctx, s, command, args, parseString, sbam.WithValidator(validator.JWT))
	case "json":
		return execute(ctx, s, command, args, parseJSON[any])
	case "oauth2":
		return execute(ctx, s, command, args, parseJSON[*oauth2.Token], sbam.WithValidator(validator.OAuth2))
	}
	return fmt.Errorf("unsupported token format: %v", s.format)
}

func execute[T any](ctx context.Context, s *Service, command string, args []string, parse func(string) (T, error), extra ...sbam.Option) error {
	options := []sbam.Option{sbam.WithLogger(s.logger)}
	for _, config := range s.configs {
		options = append(options, sbam.WithConfig(config))
	}
	options = append(options, extra...)
	manager, err := sbam.New[T](ctx, options...)
	if err != nil {
		return err
	}
	switch command {
	case "save", "login":
		if len(args) != 1 {
			return fmt.Errorf("%v expects exactly one token argument", command)
		}
		token, err := parse(args[0])
		if err != nil {
			return err
		}
		if !manager.Save(ctx, token) {
			return fmt.Errorf("token was not saved to %v backend", manager.Kind())
		}
		return nil
	case "load":
		token, ok := manager.Load(ctx)
		if !ok {
			return ErrNoToken
		}
		return s.print(token)
	case "remove", "logout":
		if !manager.Remove(ctx) {
			return fmt.Errorf("token was not removed from %v backend", manager.Kind())
		}
		return nil
	case "migrate":
		if len(args) != 1 {
			return fmt.Errorf("migrate expects a target storage type")
		}
		kind, err := store.ParseKind(args[0])
		if err != nil {
			return fmt.Errorf("%w: %v", err, args[0])
		}
		return manager.Migrate(ctx, kind)
	}
	return fmt.Errorf("unknown command: %v", command)
}

func (s *Service) print(token any) error {
	if text, ok := token.(string); ok {
		_, err := fmt.Fprintln(s.out, text)
		return err
	}
	data, err := json.Marshal(token)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(s.out, string(data))
	return err
}

func parseString(value string) (string, error) {
	return value, nil
}

func parseJSON[T any](value string) (T, error) {
	var token T
	if err := json.Unmarshal([]byte(value), &token); err != nil {
		return token, fmt.Errorf("invalid json token: %w", err)
	}
	return token, nil
}
