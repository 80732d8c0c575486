package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ndmo-quality/internal/logging"
	"ndmo-quality/internal/output"
	"ndmo-quality/internal/schema"
	"ndmo-quality/internal/source"
	"ndmo-quality/internal/standards"
)

var (
	cfgFile   string
	logLevel  string
	logFormat string
	outFormat string
)

// catalog is shared by every command; it is never modified.
var catalog = standards.NewCatalog()

var RootCmd = &cobra.Command{
	Use:   "ndmo-quality",
	Short: "NDMO data governance and quality toolkit",
	Long: `ndmo-quality infers schema models from CSV tables or live databases,
scores them against the NDMO data management standards, diagnoses
governance problems, rewrites models into compliant form and cleans data.

Results are written to stdout as json or yaml; logs go to stderr.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Setup(viper.GetString("logging.level"), viper.GetString("logging.format"))
		if used := viper.ConfigFileUsed(); used != "" {
			slog.Debug("using config file", "path", used)
		}
		if _, err := output.ParseFormat(viper.GetString("output.format")); err != nil {
			return err
		}
		return nil
	},
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Define flags
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./ndmo-quality.yaml)")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	RootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format: text or json")
	RootCmd.PersistentFlags().StringVarP(&outFormat, "format", "o", "json", "output format: json or yaml")

	viper.BindPFlag("logging.level", RootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("logging.format", RootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("output.format", RootCmd.PersistentFlags().Lookup("format"))

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")
	viper.SetDefault("output.format", "json")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// 1. Executable Directory (Priority 1)
		ex, err := os.Executable()
		if err == nil {
			exePath := filepath.Dir(ex)
			viper.AddConfigPath(exePath)
		}

		// 2. Current Directory (Priority 2)
		viper.AddConfigPath(".")

		viper.SetConfigName("ndmo-quality")
		viper.SetConfigType("yaml")
	}

	// NDMO_OUTPUT_FORMAT overrides output.format and so on
	viper.SetEnvPrefix("NDMO")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// A missing config file is fine; defaults and flags apply.
	_ = viper.ReadInConfig()
}

// emit writes result to the command's stdout inside a run envelope.
func emit(cmd *cobra.Command, result any) error {
	format, err := output.ParseFormat(viper.GetString("output.format"))
	if err != nil {
		return err
	}
	return output.Write(cmd.OutOrStdout(), format, output.NewEnvelope(cmd.Name(), result))
}

// loadModel reads a CSV file and infers its schema model.
func loadModel(path string) (*schema.Model, error) {
	t, err := source.LoadCSV(path)
	if err != nil {
		return nil, err
	}
	m, err := schema.Infer(t)
	if err != nil {
		return nil, fmt.Errorf("infer schema from %s: %w", path, err)
	}
	slog.Info("inferred schema", "table", m.TableName, "shape", m.Shape, "columns", len(m.Columns))
	return m, nil
}
