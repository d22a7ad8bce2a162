package commands

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mkt-tools/pulse-report/pkg/adapters"
	"github.com/mkt-tools/pulse-report/pkg/llm"
	"github.com/mkt-tools/pulse-report/pkg/runtime/terminal/export"
	"github.com/mkt-tools/pulse-report/pkg/services/config"
	"github.com/mkt-tools/pulse-report/pkg/services/extract"
	"github.com/mkt-tools/pulse-report/pkg/services/report"
	"github.com/mkt-tools/pulse-report/pkg/store/duckdb"
	reportstore "github.com/mkt-tools/pulse-report/pkg/store/duckdb/report"
)

// ResultHandler receives the finished run.
type ResultHandler interface {
	Handle(result *report.Result) error
}

type GenerateCmd struct {
	settingsPath string
	profilesPath string
	profile      string

	quicksightFile string
	igniteFile     string
	zyloFile       string
	mspFile        string

	outFile string
	archive bool

	reporter ResultHandler
}

func NewGenerateCmd(reporter ResultHandler) *cobra.Command {
	gc := &GenerateCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a performance report from source exports",
		RunE:  gc.run,
	}

	cmd.Flags().StringVar(&gc.settingsPath, "settings", "", "Path to the settings YAML file")
	cmd.Flags().StringVar(&gc.profilesPath, "profiles", "", "Path to the business profiles ini file")
	cmd.Flags().StringVar(&gc.profile, "profile", "", "Business profile to generate for")
	cmd.Flags().StringVar(&gc.quicksightFile, "quicksight", "", "Path to the QuickSight export")
	cmd.Flags().StringVar(&gc.igniteFile, "ignite", "", "Path to the Ignite API export")
	cmd.Flags().StringVar(&gc.zyloFile, "zylo", "", "Path to the Zylo export")
	cmd.Flags().StringVar(&gc.mspFile, "msp", "", "Path to the MSP export")
	cmd.Flags().StringVar(&gc.outFile, "out", "", "Write the report payload to this file")
	cmd.Flags().BoolVar(&gc.archive, "archive", false, "Archive the run in the local database")

	return cmd
}

func (gc *GenerateCmd) run(cmd *cobra.Command, _ []string) error {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	ctx, cancel := context.WithTimeout(ctx, 10*time.Minute)
	defer cancel()

	settings, err := config.LoadSettings(gc.settingsPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	rules, err := config.LoadRuleBook(settings.RulebookPath)
	if err != nil {
		return fmt.Errorf("load rulebook: %w", err)
	}

	business, sources, err := gc.resolveSources(settings)
	if err != nil {
		return err
	}

	llmCfg := llm.ConfigFromEnv()
	if llmCfg.Model == "" {
		llmCfg.Model = settings.Model
	}
	llmCfg.Temperature = settings.Temperature
	llmCfg.MaxTokens = settings.MaxTokens
	client, err := llm.NewOpenAIClient(llmCfg)
	if err != nil {
		return fmt.Errorf("create completion client: %w", err)
	}

	engine := report.NewEngine(report.Config{
		Completer:       client,
		Policy:          settings.PlannerPolicy(),
		Rules:           rules,
		MaxPasses:       settings.GuidelinePasses,
		DetectorRetries: settings.DetectorRetries,
	})

	result, err := engine.GenerateReport(ctx, sources)
	if err != nil {
		return fmt.Errorf("generate report: %w", err)
	}

	if gc.outFile != "" {
		if err := export.HandleFile(gc.outFile, result); err != nil {
			return err
		}
	}
	if gc.archive {
		if err := archiveRun(ctx, settings.DatabasePath, business, result); err != nil {
			return err
		}
	}

	return gc.reporter.Handle(result)
}

// resolveSources reads the source exports, either from the configured
// profile or from the direct file flags.
func (gc *GenerateCmd) resolveSources(settings *config.Settings) (string, extract.SourceData, error) {
	if gc.profile != "" {
		profilesPath := gc.profilesPath
		if profilesPath == "" {
			profilesPath = settings.ProfilesPath
		}
		if profilesPath == "" {
			return "", extract.SourceData{}, fmt.Errorf("--profile requires a profiles file (--profiles or settings)")
		}

		registry, err := config.NewRegistry(profilesPath)
		if err != nil {
			return "", extract.SourceData{}, fmt.Errorf("load profiles: %w", err)
		}
		profile, err := registry.Profile(gc.profile)
		if err != nil {
			return "", extract.SourceData{}, err
		}
		sources, err := readSources(profile.QuicksightFile, profile.IgniteFile, profile.ZyloFile, profile.MSPFile)
		return profile.Name, sources, err
	}

	if gc.quicksightFile == "" && gc.igniteFile == "" && gc.zyloFile == "" && gc.mspFile == "" {
		return "", extract.SourceData{}, fmt.Errorf("no sources given; use --profile or the source file flags")
	}
	sources, err := readSources(gc.quicksightFile, gc.igniteFile, gc.zyloFile, gc.mspFile)
	return "ad-hoc", sources, err
}

func readSources(quicksight, ignite, zylo, msp string) (extract.SourceData, error) {
	var sources extract.SourceData
	var err error
	if sources.Quicksight, err = readOptional(quicksight); err != nil {
		return sources, err
	}
	if sources.Ignite, err = readOptional(ignite); err != nil {
		return sources, err
	}
	if sources.Zylo, err = readOptional(zylo); err != nil {
		return sources, err
	}
	if sources.MSP, err = readOptional(msp); err != nil {
		return sources, err
	}
	return sources, nil
}

func readOptional(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read source file %s: %w", path, err)
	}
	return string(data), nil
}

func archiveRun(ctx context.Context, dbPath, business string, result *report.Result) error {
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: dbPath})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	runs, err := reportstore.NewStore(db)
	if err != nil {
		return fmt.Errorf("create report store: %w", err)
	}
	run, err := adapters.MapResultDomainToStore(newRunID(), business, result, time.Now().UTC())
	if err != nil {
		return err
	}
	if err := runs.Add(ctx, run); err != nil {
		return fmt.Errorf("archive report run: %w", err)
	}
	return nil
}

func newRunID() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "run-" + strconv.FormatInt(time.Now().UnixNano(), 16)
	}
	return "run-" + hex.EncodeToString(buf)
}
