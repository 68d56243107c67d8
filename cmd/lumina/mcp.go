package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/lumina"
	"github.com/aretw0/lumina/internal/logging"
	"github.com/aretw0/lumina/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes the formatter and the AI-assisted operations as MCP tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		level, err := logging.ParseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		// Stdout carries JSON-RPC; logs go to stderr.
		logger := logging.NewJSON(os.Stderr, level)
		log.SetOutput(os.Stderr)

		service, err := newService(logger)
		if err != nil {
			return err
		}
		notifier, _, closeNotifier, err := newNotifier(logger)
		if err != nil {
			return err
		}
		defer closeNotifier()

		assistant := lumina.New(service, assistantOptions(logger, notifier)...)
		defer assistant.Close(context.Background())

		srv := mcp.NewServer(assistant, mcp.WithLogger(logger), mcp.WithTimeout(cfg.Timeout()))

		switch transport {
		case "stdio":
			logger.Info("starting Lumina MCP server (stdio)")
			return srv.ServeStdio()
		case "sse":
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := srv.ServeSSE(ctx, port); err != nil {
				return err
			}
			logger.Info("MCP server stopped gracefully")
			return nil
		default:
			return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
}
