package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ndmo-quality/internal/engine"
	"ndmo-quality/internal/source"
	"ndmo-quality/internal/transform"
)

var (
	genRows      int
	genNullRate  float64
	genSeed      int64
	genOut       string
	genCompliant bool
)

// Generation is the generate result.
type Generation struct {
	Table   string   `json:"table" yaml:"table"`
	Rows    int      `json:"rows" yaml:"rows"`
	Columns []string `json:"columns" yaml:"columns"`
	Out     string   `json:"out" yaml:"out"`
	Seed    int64    `json:"seed" yaml:"seed"`
}

var generateCmd = &cobra.Command{
	Use:   "generate <schema.csv>",
	Short: "Generate synthetic data that follows a schema model",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadModel(args[0])
		if err != nil {
			return err
		}
		if genCompliant {
			m = transform.MakeCompliant(m)
		}

		// Fetch settings from Viper (Flag > Config > Default)
		rows := viper.GetInt("generate.default_rows")
		nullRate := viper.GetFloat64("generate.null_rate")
		seed := viper.GetInt64("generate.seed")
		if rows < 0 {
			return fmt.Errorf("rows must not be negative, got %d", rows)
		}
		if nullRate < 0 || nullRate > 1 {
			return fmt.Errorf("null rate must be between 0 and 1, got %g", nullRate)
		}

		slog.Info("generating data", "table", m.TableName, "rows", rows, "null_rate", nullRate, "seed", seed)
		start := time.Now()

		// Progress goes to stderr so stdout stays clean for the result
		progress := uiprogress.New()
		progress.SetOut(cmd.ErrOrStderr())
		progress.Start()
		bar := progress.AddBar(max(rows, 1)).AppendCompleted().PrependElapsed()
		bar.PrependFunc(func(b *uiprogress.Bar) string {
			return "Generating: "
		})

		t := engine.NewGenerator(seed).Generate(m, rows, nullRate, func() {
			bar.Incr()
		})
		progress.Stop()

		if err := source.SaveCSV(genOut, t); err != nil {
			return err
		}
		slog.Info("generate done", "path", genOut, "rows", len(t.Rows), "elapsed", time.Since(start))

		return emit(cmd, Generation{
			Table:   t.Name,
			Rows:    len(t.Rows),
			Columns: t.Headers,
			Out:     genOut,
			Seed:    seed,
		})
	},
}

func init() {
	RootCmd.AddCommand(generateCmd)

	generateCmd.Flags().IntVar(&genRows, "rows", 0, "number of rows to generate (overrides config)")
	generateCmd.Flags().Float64Var(&genNullRate, "null-rate", 0, "probability of a missing value in optional columns (overrides config)")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 0, "random seed, 0 for a random one (overrides config)")
	generateCmd.Flags().StringVar(&genOut, "out", "", "CSV file to write")
	generateCmd.Flags().BoolVar(&genCompliant, "compliant", false, "generate for the NDMO-compliant form of the schema")
	generateCmd.MarkFlagRequired("out")

	viper.BindPFlag("generate.default_rows", generateCmd.Flags().Lookup("rows"))
	viper.BindPFlag("generate.null_rate", generateCmd.Flags().Lookup("null-rate"))
	viper.BindPFlag("generate.seed", generateCmd.Flags().Lookup("seed"))
	viper.SetDefault("generate.default_rows", 100)
	viper.SetDefault("generate.null_rate", 0.05)
	viper.SetDefault("generate.seed", 0)
}
