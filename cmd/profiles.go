package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	applog "github.com/spigell/bizfit/internal/logger"
	"github.com/spigell/bizfit/internal/traits"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Inspect business model catalogs",
}

var profilesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List business models of the configured catalog",
	Run: func(_ *cobra.Command, _ []string) {
		logger := newLogger()

		config, err := getConfig()
		if err != nil {
			logger.Fatal("getting a config", zap.Error(err))
		}

		catalog, err := loadCatalog(config.CatalogFile)
		if err != nil {
			logger.Fatal("loading business models", zap.Error(err))
		}

		logger.Info("catalog",
			zap.Int("models", catalog.Len()),
			zap.Int("traits", len(catalog.Traits())),
			zap.String("fingerprint", catalog.Fingerprint()),
		)
		for _, m := range catalog.Models() {
			logger.Info("business model", zap.String("id", m.ID), zap.String("name", m.Name))
		}
	},
}

var profilesValidateCmd = &cobra.Command{
	Use:   "validate FILE...",
	Short: "Validate catalog files",
	Args:  cobra.MinimumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		logger := newLogger()

		failed := 0
		for _, path := range args {
			if err := validateCatalog(path, logger); err != nil {
				failed++
			}
		}
		if failed > 0 {
			logger.Fatal("catalog validation failed", zap.Int("invalid_files", failed))
		}
	},
}

var profilesExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the configured catalog as yaml",
	Run: func(cmd *cobra.Command, _ []string) {
		logger := newLogger()

		config, err := getConfig()
		if err != nil {
			logger.Fatal("getting a config", zap.Error(err))
		}

		catalog, err := loadCatalog(config.CatalogFile)
		if err != nil {
			logger.Fatal("loading business models", zap.Error(err))
		}

		data, err := traits.Encode(catalog)
		if err != nil {
			logger.Fatal("encoding catalog", zap.Error(err))
		}

		output := strings.TrimSpace(cmd.Flag("output").Value.String())
		if output == "" {
			os.Stdout.Write(data)
			return
		}
		if err := os.WriteFile(output, data, 0o644); err != nil {
			logger.Fatal("writing catalog", zap.Error(err))
		}
		logger.Info("catalog exported", zap.String("filename", output))
	},
}

func init() {
	rootCmd.AddCommand(profilesCmd)
	profilesCmd.AddCommand(profilesListCmd, profilesValidateCmd, profilesExportCmd)

	profilesExportCmd.Flags().StringP("output", "o", "", "file to write. Default is stdout")
}

func newLogger() *zap.Logger {
	logger, err := applog.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	return logger
}

// validateCatalog logs every problem found in the catalog at path.
func validateCatalog(path string, logger *zap.Logger) error {
	catalog, err := traits.LoadFile(path)
	if err == nil {
		logger.Info("catalog is valid", zap.String("filename", path), zap.Int("models", catalog.Len()))
		return nil
	}

	var verrs traits.ValidationErrors
	if !errors.As(err, &verrs) {
		logger.Error("catalog is invalid", zap.String("filename", path), zap.Error(err))
		return err
	}
	for _, e := range verrs {
		logger.Error("catalog is invalid",
			zap.String("filename", path),
			zap.String("field", e.Field),
			zap.String("problem", e.Message),
		)
	}
	return fmt.Errorf("%s: %d problems", path, len(verrs))
}
