package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rhystmorgan/clientDesk/internal/mockapi"
	"rhystmorgan/clientDesk/internal/models"
)

var (
	mockAddr  string
	mockEmpty bool
)

var mockServerCmd = &cobra.Command{
	Use:   "mock-server",
	Short: "Run an in-memory backend for development",
	Long: `Serves the record collection endpoint from memory, seeded with sample
records unless --empty is given. Emails are unique; duplicates are
rejected with the same "duplicate key" text a SQL backend returns.
Prometheus metrics are exposed on /metrics.`,
	Args: cobra.NoArgs,
	RunE: runMockServer,
}

func init() {
	mockServerCmd.Flags().StringVar(&mockAddr, "addr", ":8080", "Listen address")
	mockServerCmd.Flags().BoolVar(&mockEmpty, "empty", false, "Start without sample records")
}

func runMockServer(cmd *cobra.Command, args []string) error {
	var seed []models.Record
	if !mockEmpty {
		seed = mockapi.SeedRecords()
	}

	srv := mockapi.NewServer(mockapi.NewRepository(seed...), appConfig.Collection, logger)
	httpServer := &http.Server{
		Addr:              mockAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("mock backend listening",
			zap.String("addr", mockAddr),
			zap.String("collection", appConfig.Collection),
			zap.Int("records", len(seed)))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("mock backend failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down mock backend")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
