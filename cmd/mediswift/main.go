package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"mediswift/cmd/mediswift/ui"
	"mediswift/internal/api"
	"mediswift/internal/config"
	"mediswift/internal/logging"
	"mediswift/internal/state"
	"mediswift/internal/store"
)

var (
	// Global flags
	verbose   bool
	dataDir   string
	themeFlag string

	// Logger for non-interactive commands
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "mediswift",
	Short: "MediSwift - terminal pharmacy storefront",
	Long: `MediSwift is an online pharmacy storefront that runs entirely in the
terminal: browse the catalog, manage a cart, upload prescriptions, book
doctor consultations and track orders.

All data lives locally under the data directory; the backend is a latency
simulation, not a real service.

Run without arguments to start the interactive storefront.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip logger init for interactive mode (it has its own UI)
		if cmd.Use == "mediswift" && cmd.CalledAs() == "mediswift" {
			return nil
		}

		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStorefront()
	},
}

// catalogCmd prints the catalog without entering the UI.
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the product catalog",
	RunE:  runCatalog,
}

// resetCmd wipes the local database so the next launch reseeds.
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all local data (cart, orders, users, chat history)",
	RunE:  runReset,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Override the data directory (default ~/.mediswift)")
	rootCmd.Flags().StringVar(&themeFlag, "theme", "", "UI theme: light or dark")

	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(resetCmd)
}

// loadConfig layers file, environment and flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(config.Default().Path())
	if err != nil {
		return nil, err
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if themeFlag != "" {
		cfg.Theme = themeFlag
	}
	return cfg, nil
}

func runStorefront() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := logging.Initialize(cfg.DataDir, cfg.Path()); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer logging.CloseAll()
	logging.Boot("MediSwift starting, data dir %s", cfg.DataDir)

	st, err := store.NewLocalStore(filepath.Join(cfg.DataDir, "mediswift.db"))
	if err != nil {
		return err
	}
	defer st.Close()

	app := state.New(st)
	if err := app.Load(); err != nil {
		return fmt.Errorf("failed to load application state: %w", err)
	}

	svc := api.NewMock(app, cfg.API)
	program := tea.NewProgram(ui.NewAppModel(app, svc, cfg), tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := config.Watch(ctx, cfg.Path(), func(fresh *config.Config) {
		program.Send(ui.ConfigReloadedMsg{Cfg: fresh})
	}); err != nil {
		logging.Boot("Config watcher unavailable: %v", err)
	}

	_, err = program.Run()
	return err
}

func runCatalog(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := logging.Initialize(cfg.DataDir, cfg.Path()); err != nil {
		return err
	}
	defer logging.CloseAll()

	st, err := store.NewLocalStore(filepath.Join(cfg.DataDir, "mediswift.db"))
	if err != nil {
		return err
	}
	defer st.Close()

	app := state.New(st)
	if err := app.Load(); err != nil {
		return err
	}

	logger.Debug("catalog listing", zap.Int("products", len(app.Products)))
	for _, p := range app.Products {
		rx := ""
		if p.RequiresPrescription {
			rx = " [Rx]"
		}
		fmt.Printf("%-6s %-28s %-12s ₹%8.2f%s\n", p.ID, p.Name, p.Category, p.DiscountPrice, rx)
	}
	return nil
}

func runReset(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	dbPath := filepath.Join(cfg.DataDir, "mediswift.db")
	if err := os.Remove(dbPath); err != nil {
		if os.IsNotExist(err) {
			fmt.Println("Nothing to reset.")
			return nil
		}
		return err
	}
	// WAL sidecar files, if present.
	_ = os.Remove(dbPath + "-wal")
	_ = os.Remove(dbPath + "-shm")
	logger.Info("local data removed", zap.String("path", dbPath))
	fmt.Println("Local data removed. The next launch reseeds the catalog and demo account.")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
