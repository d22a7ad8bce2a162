package main

import (
	"fmt"
	"net"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mkt-tools/pulse-report/pkg/llm"
	"github.com/mkt-tools/pulse-report/pkg/server"
	"github.com/mkt-tools/pulse-report/pkg/services/config"
	"github.com/mkt-tools/pulse-report/pkg/services/report"
	"github.com/mkt-tools/pulse-report/pkg/store/duckdb"
	reportstore "github.com/mkt-tools/pulse-report/pkg/store/duckdb/report"
)

var settingsPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the report generation API server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&settingsPath, "settings", "c", "",
		"Path to the settings YAML file (defaults apply when omitted)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	settings, err := config.LoadSettings(settingsPath)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	rules, err := config.LoadRuleBook(settings.RulebookPath)
	if err != nil {
		return fmt.Errorf("failed to load rulebook: %w", err)
	}

	llmCfg := llm.ConfigFromEnv()
	if llmCfg.Model == "" {
		llmCfg.Model = settings.Model
	}
	llmCfg.Temperature = settings.Temperature
	llmCfg.MaxTokens = settings.MaxTokens
	client, err := llm.NewOpenAIClient(llmCfg)
	if err != nil {
		return fmt.Errorf("failed to create completion client: %w", err)
	}

	db, err := duckdb.NewDB(duckdb.Settings{
		DbPath: settings.DatabasePath,
	})
	if err != nil {
		return fmt.Errorf("failed to create DuckDB instance: %w", err)
	}
	runs, err := reportstore.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create report store: %w", err)
	}

	engine := report.NewEngine(report.Config{
		Completer:       client,
		Policy:          settings.PlannerPolicy(),
		Rules:           rules,
		MaxPasses:       settings.GuidelinePasses,
		DetectorRetries: settings.DetectorRetries,
	})

	mux := server.ConfigureRouter(server.Config{
		Dependencies: server.Dependencies{
			Engine: engine,
			Runs:   runs,
			Logger: logger,
		},
	})

	addr := settings.ListenAddr
	if host, port := os.Getenv("SERVER_HOST"), os.Getenv("SERVER_PORT"); host != "" && port != "" {
		addr = net.JoinHostPort(host, port)
	}

	logger.Info().Msgf("starting server on %s", addr)
	return http.ListenAndServe(addr, mux)
}
