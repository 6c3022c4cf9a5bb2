package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"text-editor-server/internal/config"
	"text-editor-server/internal/filesystem"
	"text-editor-server/internal/lock"
	"text-editor-server/internal/log"
	"text-editor-server/internal/mcp"
	"text-editor-server/internal/service"
	"text-editor-server/internal/transport"
)

func main() {
	cfg := config.ParseFlags()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	// All logging goes to stderr so stdout stays clean for protocol traffic.
	logger := log.NewStdLogger(cfg.LogLevel)
	logger.Info("starting text editor server",
		"transport", cfg.Transport,
		"max_file_size_mb", cfg.MaxFileSizeMB,
		"max_content_chars", cfg.MaxContentChars,
		"lock_timeout_sec", cfg.LockTimeoutSec,
		"default_encoding", cfg.DefaultEncoding,
	)

	fsAdapter := filesystem.NewDefaultFileSystemAdapter()
	lockManager := lock.NewManager()

	editor, err := service.NewEditor(fsAdapter, lockManager, logger, cfg)
	if err != nil {
		logger.Error("failed to initialize editor service", "error", err)
		os.Exit(1)
	}

	switch cfg.Transport {
	case "stdio":
		runStdio(editor, logger)
	case "http":
		runHTTP(editor, logger, cfg.Port)
	default:
		runMCP(editor, logger)
	}
}

func runStdio(editor *service.Editor, logger log.Logger) {
	dispatcher := transport.NewDispatcher(editor)
	handler := transport.NewStdioHandler(dispatcher, logger)
	if err := handler.Start(os.Stdin, os.Stdout); err != nil {
		logger.Error("stdio transport failed", "error", err)
		os.Exit(1)
	}
}

func runHTTP(editor *service.Editor, logger log.Logger, port int) {
	dispatcher := transport.NewDispatcher(editor)
	handler := transport.NewHTTPHandler(dispatcher, logger)

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- handler.StartServer(port)
	}()

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-shutdownChan:
		logger.Info("shutdown signal received", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := handler.Shutdown(ctx); err != nil {
			logger.Error("http shutdown error", "error", err)
		}
		<-serverDone
	case err := <-serverDone:
		if err != nil {
			logger.Error("http transport failed", "error", err)
			os.Exit(1)
		}
	}
}

func runMCP(editor *service.Editor, logger log.Logger) {
	server, err := mcp.NewServer(editor, logger)
	if err != nil {
		logger.Error("failed to initialize mcp server", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx); err != nil {
		logger.Error("mcp transport failed", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
