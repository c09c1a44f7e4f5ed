package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"portcheck/internal/checker"
	"portcheck/internal/config"
	"portcheck/internal/logger"
	"portcheck/internal/report"
	"portcheck/internal/server"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run returns the process exit code. Open and closed verdicts both exit 0;
// only bad parameters or a failing server produce a non-zero code.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("portcheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	defaults := config.DefaultConfig()
	var (
		configPath = fs.String("config", "", "path to configuration file (YAML)")
		host       = fs.String("host", defaults.Host, "host name or IPv4 address to check")
		port       = fs.Int("port", defaults.Port, "TCP port to check")
		timeout    = fs.Duration("timeout", defaults.Timeout, "connection timeout")
		logLevel   = fs.String("log-level", defaults.Log.Level, "diagnostic log level on stderr")
		serveMode  = fs.Bool("serve", false, "serve the check API instead of checking once")
		addr       = fs.String("addr", defaults.Server.Addr, "address for the API server")
	)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "load config: %v\n", err)
		return 2
	}

	// Explicit flags win over the file; validation happens on the merged result.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "host":
			cfg.Host = *host
		case "port":
			cfg.Port = *port
		case "timeout":
			cfg.Timeout = *timeout
		case "log-level":
			cfg.Log.Level = *logLevel
		case "addr":
			cfg.Server.Addr = *addr
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "invalid parameters: %v\n", err)
		return 2
	}

	logger.Init(cfg.Log.Level, stderr)

	if *serveMode {
		return serve(cfg)
	}
	return checkOnce(cfg, stdout)
}

func checkOnce(cfg config.Config, stdout io.Writer) int {
	target := cfg.Target()
	console := report.NewConsole(stdout)
	console.Header(target)

	result, err := checker.New(nil).Check(context.Background(), target)
	if err != nil {
		log.Error().Err(err).Msg("check failed")
		return 2
	}
	console.Result(result)
	return 0
}

func serve(cfg config.Config) int {
	srv := server.New(cfg.Server.Addr, checker.New(nil), cfg.Target())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown")
		}
	}()

	log.Info().Str("addr", cfg.Server.Addr).Msg("portcheck API listening")
	if err := srv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("server error")
		return 1
	}
	return 0
}
