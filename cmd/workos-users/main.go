package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"

	"github.com/Icegreeen/workos-go/internal/fakeapi"
	"github.com/Icegreeen/workos-go/internal/platform/config"
	"github.com/Icegreeen/workos-go/internal/platform/httpserver"
	"github.com/Icegreeen/workos-go/internal/platform/logger"
	"github.com/Icegreeen/workos-go/pkg/workos"
)

const userAgent = "workos-users-cli/1.0.0"

// main wires config, logging and the SDK, then dispatches to one subcommand.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

// env is what a command handler gets to work with.
type env struct {
	cfg    config.Config
	log    *slog.Logger
	sdk    *workos.WorkOS
	stdout io.Writer
}

// handler runs one command and returns the value to print, or nil.
type handler func(ctx context.Context, e *env) (any, error)

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	app := kingpin.New("workos-users", "Manage users of the WorkOS user-management API.")
	app.UsageWriter(stdout).ErrorWriter(stderr)
	app.Terminate(nil)

	handlers := map[string]handler{}
	registerUserCommands(app, handlers)
	registerAuthCommands(app, handlers)
	app.Command("serve-fake", "Serve an in-memory fake of the API for local development.")
	handlers["serve-fake"] = serveFake

	command, err := app.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "workos-users: %v\n", err)
		return 2
	}
	h, ok := handlers[command]
	if !ok {
		// --help and friends parse to an empty command after printing usage.
		return 0
	}

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(stderr, "workos-users: %v\n", err)
		return 2
	}
	log, err := logger.New(stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(stderr, "workos-users: %v\n", err)
		return 2
	}

	e := &env{
		cfg:    cfg,
		log:    log,
		stdout: stdout,
		sdk:    newSDK(cfg, log),
	}
	out, err := h(ctx, e)
	if err != nil {
		log.Error("command failed", "command", command, "error", err)
		return 1
	}
	if out == nil {
		return 0
	}
	if err := writeJSON(stdout, out); err != nil {
		log.Error("write output", "error", err)
		return 1
	}
	return 0
}

func newSDK(cfg config.Config, log *slog.Logger) *workos.WorkOS {
	return workos.New(cfg.APIKey,
		workos.WithBaseURL(cfg.BaseURL()),
		workos.WithHTTPClient(newHTTPClient(cfg.Timeout)),
		workos.WithLogger(log),
		workos.WithUserAgent(userAgent),
	)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func serveFake(ctx context.Context, e *env) (any, error) {
	fake := fakeapi.New(e.cfg.APIKey, fakeapi.WithLogger(e.log))
	srv := httpserver.New(e.cfg.FakeAPIAddr, fake.Router())
	return nil, httpserver.Run(ctx, srv, e.log)
}
