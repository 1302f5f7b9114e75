package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rhystmorgan/clientDesk/internal/api"
	"rhystmorgan/clientDesk/internal/audit"
	"rhystmorgan/clientDesk/internal/config"
	"rhystmorgan/clientDesk/internal/logging"
	"rhystmorgan/clientDesk/internal/storage"
	"rhystmorgan/clientDesk/internal/views"
)

var (
	// Global flags
	configPath string
	dataDir    string
	baseURL    string
	verbose    bool

	appConfig *config.AppConfig
	dataStore *storage.Storage
	logger    *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "deskterm",
	Short: "ClientDesk - terminal client for the user registry backend",
	Long: `deskterm manages user/client records held by a REST backend.

Run without arguments to start the interactive interface: search and
filter the loaded records, create, edit and delete them, export the
filtered view to CSV and preview printable reports.`,
	SilenceUsage: true,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInterface()
	},
}

func init() {
	rootCmd.PersistentPreRunE = persistentPreRunE
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: ~/.clientdesk/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Data directory (default: ~/.clientdesk)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Backend base URL (overrides config and CLIENTDESK_BASE_URL)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(printCmd)
	rootCmd.AddCommand(mockServerCmd)
	rootCmd.AddCommand(configCmd)
}

// persistentPreRunE is assigned in init because it compares against rootCmd,
// which would otherwise form an initialization cycle.
func persistentPreRunE(cmd *cobra.Command, args []string) error {
	var err error
	if dataDir != "" {
		dataStore, err = storage.NewStorageAt(dataDir)
	} else {
		dataStore, err = storage.NewStorage()
	}
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	path := configPath
	if path == "" {
		path = dataStore.ConfigPath()
	}
	appConfig, err = config.Load(path)
	if err != nil {
		return err
	}
	if baseURL != "" {
		appConfig.BaseURL = baseURL
		if err := appConfig.Validate(); err != nil {
			return err
		}
	}
	dataStore.SetExportDir(appConfig.ExportDir)

	// The interface owns the terminal, so it logs to a file.
	logDir := ""
	if cmd == rootCmd {
		logDir = dataStore.LogDir()
	}
	logger, err = logging.New(logging.Options{
		Level:   appConfig.LogLevel,
		Verbose: verbose || appConfig.Debug,
		Dir:     logDir,
	})
	return err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newClient() (*api.Client, error) {
	client, err := api.NewClient(appConfig.ToAPIConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize api client: %w", err)
	}
	return client, nil
}

func newAuditor() *audit.RecordAuditor {
	auditor, err := audit.NewRecordAuditor(dataStore.AuditDir())
	if err != nil {
		logger.Warn("audit trail disabled", zap.Error(err))
		return nil
	}
	return auditor
}

func closeAuditor(auditor *audit.RecordAuditor) {
	if auditor == nil {
		return
	}
	if err := auditor.Close(); err != nil {
		logger.Warn("failed to flush audit trail", zap.Error(err))
	}
}

func runInterface() error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	auditor := newAuditor()
	defer closeAuditor(auditor)

	app, err := views.NewAppModel(views.Options{
		Service:    client,
		Storage:    dataStore,
		Auditor:    auditor,
		Logger:     logger,
		MaxResults: appConfig.MaxResults,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	logger.Info("starting interface",
		zap.String("backend", client.CollectionURL()),
		zap.String("data_dir", dataStore.DataDir()))

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run application: %w", err)
	}
	return nil
}
