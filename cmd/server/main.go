// Command server runs a Minecraft Java Edition protocol-107 ("1.9")
// server: accepts connections, serves status pings, negotiates login
// (online or offline mode), and drives the PLAY state against a
// filesystem-backed world.
//
// Grounded in ChickenIQ-VibeShitCraft/cmd/server/main.go's
// flag-parse-into-config / signal.Notify-select-shutdown shape, adapted
// to a JSON config file rather than one flag per setting.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-mclib/server/config"
	"github.com/go-mclib/server/server"
)

const version = "go-mclib-server 0.1.0 (protocol 107, \"1.9\")"

func main() {
	var (
		showVersion bool
		configPath  string
	)
	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.StringVar(&configPath, "c", "", "path to a JSON config file")
	flag.StringVar(&configPath, "config", "", "path to a JSON config file")
	flag.Parse()

	if showVersion {
		fmt.Println(version)
		return
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Error("load config", "err", err)
		os.Exit(1)
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("init server", "err", err)
		os.Exit(1)
	}

	if err := srv.Start(); err != nil {
		logger.Error("start server", "err", err)
		os.Exit(1)
	}
	logger.Info("server started", "port", cfg.Port, "online", cfg.Online)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("shutting down", "signal", sig.String())

	srv.Stop()
	logger.Info("server stopped")
}
