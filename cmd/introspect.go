package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"ndmo-quality/internal/diagnose"
	"ndmo-quality/internal/dialect"
	"ndmo-quality/internal/quality"
	"ndmo-quality/internal/schema"
	"ndmo-quality/internal/source"
)

var (
	introspectTable  string
	introspectSample int
)

// Introspection is the introspect result.
type Introspection struct {
	Database  string           `json:"database" yaml:"database"`
	Driver    string           `json:"driver" yaml:"driver"`
	Analysis  TableAnalysis    `json:"analysis" yaml:"analysis"`
	Diagnosis *diagnose.Report `json:"diagnosis" yaml:"diagnosis"`
	Sample    *quality.Result  `json:"sample,omitempty" yaml:"sample,omitempty"`
}

var introspectCmd = &cobra.Command{
	Use:   "introspect",
	Short: "Read a live table definition from the active database and analyze it",
	Long: `Read the column definitions of one table from the active database in the
config file, infer its schema model, score and diagnose it. With --sample N
the first N rows are also read and processed against the model.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := GetActiveDBConfig()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		db, err := openDB(ctx, config)
		if err != nil {
			return err
		}
		defer db.Close()

		// 0. Get Dialect
		d := dialect.GetDialect(config.Driver)
		slog.Debug("using dialect", "driver", config.Driver, "schema", d.GetSchemaName(config.Schema))

		// 1. Analyze
		def, err := source.Introspect(ctx, db, d, config.Schema, introspectTable)
		if err != nil {
			return err
		}
		m, err := schema.Infer(def)
		if err != nil {
			return fmt.Errorf("infer schema of %s: %w", introspectTable, err)
		}
		res := Introspection{
			Database:  config.Name,
			Driver:    config.Driver,
			Analysis:  analyzeModel(m),
			Diagnosis: diagnose.Detect(m),
		}
		slog.Info("introspected table", "table", m.TableName, "columns", len(m.Columns),
			"score", res.Analysis.Compliance.OverallScore)

		// 2. Sample
		if introspectSample > 0 {
			data, err := source.SampleRows(ctx, db, d, introspectTable, introspectSample)
			if err != nil {
				return err
			}
			res.Sample = quality.NewProcessor(catalog).Process(m, data)
			slog.Info("processed sample", "table", m.TableName, "rows", res.Sample.OriginalData.Rows)
		}
		return emit(cmd, res)
	},
}

func init() {
	RootCmd.AddCommand(introspectCmd)

	introspectCmd.Flags().StringVarP(&introspectTable, "table", "t", "", "table to introspect")
	introspectCmd.Flags().IntVar(&introspectSample, "sample", 0, "also read and process this many rows")
	introspectCmd.MarkFlagRequired("table")
}
