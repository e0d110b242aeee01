// Package main provides the taskmaster binary entry point.
// Taskmaster is a task-tracking MCP server: it stores a project's task
// graph under .taskmaster/ and exposes it to AI coding tools over stdio.
//
// Usage:
//
//	taskmaster serve      # Start MCP server (stdio transport)
//	taskmaster version    # Print version information
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	tmserver "github.com/algae514/task-master-ai-algae/internal/server"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   "taskmaster",
		Short: "Task-tracking MCP server",
		Long: `Taskmaster manages a project's task graph — tasks, subtasks,
dependencies, keywords and flows — persisted under .taskmaster/,
and serves it to MCP clients over stdio.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(logLevel)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("taskmaster v%s\n", tmserver.Version)
		},
	})

	return cmd
}

func serve(logLevel string) error {
	// Logs go to stderr: stdout carries the MCP stdio transport and
	// must stay clean.
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	s, cleanup, err := tmserver.New()
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	slog.Info("taskmaster serving on stdio", "version", tmserver.Version)
	if err := server.ServeStdio(s); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
