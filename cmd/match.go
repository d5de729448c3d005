package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/bizfit/internal/answers"
	"github.com/spigell/bizfit/internal/cache"
	applog "github.com/spigell/bizfit/internal/logger"
	"github.com/spigell/bizfit/internal/matching"
	"github.com/spigell/bizfit/internal/metrics"
	"github.com/spigell/bizfit/internal/report"
	"github.com/spigell/bizfit/internal/secrets"
	"github.com/spigell/bizfit/internal/traits"
)

const (
	PromptShowRanking      = "Show ranking"
	PromptExplain          = "Explain a model"
	PromptReportByCategory = "Report by category"
	PromptReportToFile     = "Dump report to file"
	PromptExit             = "Exit"
	PromptBack             = "back"

	stdinSource = "-"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptShowRanking, PromptExplain, PromptReportByCategory, PromptReportToFile, PromptExit},
}

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Rank business models for an answer file",
	Run: func(cmd *cobra.Command, _ []string) {
		match(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringP("answers", "a", "", "answer file (json or yaml). Use - to read from stdin")
	matchCmd.Flags().BoolP("auto-approve", "y", false, "do not ask for actions, print the report as json")
	matchCmd.Flags().StringP("output", "o", "", "write the json report to this file instead of stdout (with --auto-approve)")
}

// match is the main command for the cli.
func match(cmd *cobra.Command) {
	ctx := context.Background()

	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the bizfit", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	catalog, err := loadCatalog(config.CatalogFile)
	if err != nil {
		logger.Fatal("loading business models", zap.Error(err))
	}

	m := metrics.New()
	engine, err := newEngine(config, catalog, m, logger)
	if err != nil {
		logger.Fatal("building the engine", zap.Error(err))
	}

	results, err := newCache(ctx, config.Cache, m, logger)
	if err != nil {
		logger.Warn("result cache is disabled", zap.Error(err))
	}
	if results != nil {
		defer results.Close()
	}

	source := strings.TrimSpace(cmd.Flag("answers").Value.String())
	if source == "" {
		logger.Fatal("answers are required", zap.String("hint", "pass --answers with a json or yaml file, or - for stdin"))
	}

	// stdin is consumed by the answers, so there is nothing to prompt with
	autoApprove := cmd.Flag("auto-approve").Value.String() == "true" || source == stdinSource

	rec, err := readAnswers(source, os.Stdin)
	if err != nil {
		logger.Fatal("reading answers", zap.Error(err))
	}

	outcome, cached := results.Match(ctx, engine, rec)
	rep := report.New(outcome, source)
	logger = applog.WithRequest(logger, applog.Request{ID: rep.ID, Source: source, Catalog: catalog.Fingerprint()})

	logger.Info("ranking is ready",
		zap.Int("models", rep.Len()),
		zap.Bool("cached", cached),
		zap.Duration("duration", outcome.Duration),
		zap.Int("fallbacks", len(outcome.Diagnostics)),
	)
	for _, d := range outcome.Diagnostics {
		logger.Debug("answer diagnostic",
			zap.String("field", d.Field),
			zap.String("reason", string(d.Reason)),
			zap.String("raw", d.Raw),
		)
	}

	if err := m.WriteTextfile(config.Metrics.Textfile); err != nil {
		logger.Warn("writing metrics", zap.Error(err))
	}

	if autoApprove {
		if err := writeReport(rep, cmd.Flag("output").Value.String()); err != nil {
			logger.Fatal("writing report", zap.Error(err))
		}
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, engine, outcome, rep, logger); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, engine *matching.Engine, outcome *matching.Outcome, rep *report.Report, logger *zap.Logger) error {
	switch action {
	case PromptShowRanking:
		logger.Info("current ranking\n"+strings.Join(rep.Labels(), "\n"), zap.Int("models", rep.Len()))
		return nil
	case PromptExplain:
		return explain(engine, outcome, rep, logger)
	case PromptReportByCategory:
		pretty, _ := json.MarshalIndent(rep.ByCategory(), "", "  ")
		logger.Info(string(pretty), zap.Int("models", rep.Len()))
		return nil
	case PromptReportToFile:
		filename, err := rep.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump report to file: %w", err)
		}
		logger.Info("dumping report to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func explain(engine *matching.Engine, outcome *matching.Outcome, rep *report.Report, logger *zap.Logger) error {
	for {
		modelPrompt := promptui.Select{
			Label: "Choose a business model and press ENTER",
			Items: append(rep.Labels(), PromptBack),
			Size:  10,
		}

		_, selected, err := modelPrompt.Run()
		if err != nil {
			return err
		}
		if selected == PromptBack {
			return nil
		}

		id := labelID(selected)
		result := rep.FindByID(id)
		if result == nil {
			return fmt.Errorf("there is no such business model %s", id)
		}

		breakdown, err := engine.Explain(outcome.Vector, id)
		if err != nil {
			return err
		}

		pretty, _ := json.MarshalIndent(breakdown, "", "  ")
		logger.Info(string(pretty),
			zap.String("model", result.Name),
			zap.Int("score", result.Score),
			zap.Int("unspaced_score", outcome.Unspaced[id]),
			zap.String("category", string(result.Category)),
		)
	}
}

// labelID extracts the model id from a report label.
func labelID(label string) string {
	fields := strings.Fields(label)
	if len(fields) < 2 {
		return ""
	}
	return fields[1]
}

func newEngine(config *Config, catalog *traits.Catalog, recorder matching.Recorder, logger *zap.Logger) (*matching.Engine, error) {
	spacer, err := spacerFromConfig(config.Spacing)
	if err != nil {
		return nil, fmt.Errorf("spacing: %w", err)
	}

	opts := []matching.Option{
		matching.WithLogger(logger),
		matching.WithSpacer(spacer),
		matching.WithRecorder(recorder),
	}
	if !config.Spacing.Enabled {
		opts = append(opts, matching.WithoutSpacing("disabled by configuration"))
	}

	engine, err := matching.New(catalog, opts...)
	if err != nil {
		return nil, err
	}

	for _, st := range engine.Describe() {
		logger.Debug("match stage", zap.String("name", st.Name), zap.Bool("enabled", st.Enabled), zap.String("reason", st.Reason), zap.Any("details", st.Details))
	}
	return engine, nil
}

// newCache connects to Redis when the cache is enabled. It returns a nil
// cache, which runs the engine directly, otherwise.
func newCache(ctx context.Context, cfg *CacheConfig, recorder cache.Recorder, logger *zap.Logger) (*cache.Cache, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}

	password, err := secrets.Load(secrets.Source{
		Name:     "redis password",
		Value:    cfg.Password,
		File:     cfg.PasswordFile,
		Optional: true,
	})
	if err != nil {
		return nil, err
	}

	c := cache.New(cache.NewClient(cache.Config{
		Address:  cfg.Address,
		Password: password,
		DB:       cfg.DB,
	}), cfg.TTL, logger.Named("cache")).WithRecorder(recorder)

	if err := c.Ping(ctx); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

// readAnswers loads the answer record from a file, or from r for "-".
func readAnswers(source string, r io.Reader) (answers.Record, error) {
	if source == stdinSource {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("read answers from stdin: %w", err)
		}
		return answers.Parse(data, "")
	}
	return answers.Load(filepath.Clean(source))
}

func writeReport(rep *report.Report, path string) error {
	var out io.Writer = os.Stdout
	if path != "" {
		file, err := os.Create(path)
		if err != nil {
			return err
		}
		defer file.Close()
		out = file
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}
