package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"ndmo-quality/internal/diagnose"
	"ndmo-quality/internal/schema"
	"ndmo-quality/internal/standards"
	"ndmo-quality/internal/transform"
)

// TableAnalysis is the analyze result for one model.
type TableAnalysis struct {
	Model           *schema.Model     `json:"model" yaml:"model"`
	Compliance      *standards.Result `json:"compliance" yaml:"compliance"`
	Recommendations []string          `json:"recommendations" yaml:"recommendations"`
}

func analyzeModel(m *schema.Model) TableAnalysis {
	r := schema.Assess(catalog, m)
	return TableAnalysis{Model: m, Compliance: r, Recommendations: schema.Recommend(m, r)}
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <schema.csv>...",
	Short: "Infer schema models and score them against the catalog",
	Long: `Infer a schema model from each CSV file (a column definition listing or
sampled data), then score it. Several files are reported in dependency
order, referenced tables first.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		models := make([]*schema.Model, 0, len(args))
		for _, path := range args {
			m, err := loadModel(path)
			if err != nil {
				return err
			}
			models = append(models, m)
		}

		var results []TableAnalysis
		for _, m := range schema.OrderModels(models) {
			a := analyzeModel(m)
			slog.Info("analyzed schema", "table", m.TableName, "score", a.Compliance.OverallScore, "status", a.Compliance.Status)
			results = append(results, a)
		}
		return emit(cmd, results)
	},
}

// Diagnosis is the diagnose result.
type Diagnosis struct {
	Table  string           `json:"table" yaml:"table"`
	Report *diagnose.Report `json:"report" yaml:"report"`
}

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose <schema.csv>",
	Short: "Detect governance problems and build a correction plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadModel(args[0])
		if err != nil {
			return err
		}
		r := diagnose.Detect(m)
		slog.Info("diagnosed schema", "table", m.TableName,
			"critical", len(r.CriticalProblems), "major", len(r.MajorProblems), "minor", len(r.MinorProblems))
		return emit(cmd, Diagnosis{Table: m.TableName, Report: r})
	},
}

// Transformation is the transform result. The original model is kept
// alongside the compliant one for diffing.
type Transformation struct {
	Original   *schema.Model `json:"original" yaml:"original"`
	Compliant  *schema.Model `json:"compliant" yaml:"compliant"`
	Remaining  int           `json:"remaining_problems" yaml:"remaining_problems"`
	Compliance TableAnalysis `json:"compliance" yaml:"compliance"`
}

var transformCmd = &cobra.Command{
	Use:   "transform <schema.csv>",
	Short: "Rewrite a schema model into NDMO-compliant form",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadModel(args[0])
		if err != nil {
			return err
		}
		compliant := transform.MakeCompliant(m)
		remaining := len(diagnose.Detect(compliant).Problems())
		slog.Info("transformed schema", "table", m.TableName,
			"columns_before", len(m.Columns), "columns_after", len(compliant.Columns), "remaining_problems", remaining)
		return emit(cmd, Transformation{
			Original:   m,
			Compliant:  compliant,
			Remaining:  remaining,
			Compliance: analyzeModel(compliant),
		})
	},
}

// Correction is the correct result.
type Correction struct {
	Model       *schema.Model `json:"model" yaml:"model"`
	Corrections []string      `json:"corrections" yaml:"corrections"`
}

var correctCmd = &cobra.Command{
	Use:   "correct <schema.csv>",
	Short: "Auto-correct types, keys, constraints and relationships",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadModel(args[0])
		if err != nil {
			return err
		}
		corrected, applied := transform.AutoCorrect(m)
		slog.Info("corrected schema", "table", m.TableName, "corrections", len(applied))
		return emit(cmd, Correction{Model: corrected, Corrections: applied})
	},
}

func init() {
	RootCmd.AddCommand(analyzeCmd, diagnoseCmd, transformCmd, correctCmd)
}
