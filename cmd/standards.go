package cmd

import (
	"github.com/spf13/cobra"

	"ndmo-quality/internal/standards"
)

type categoryListing struct {
	Category  standards.Category   `json:"category" yaml:"category"`
	Standards []standards.Standard `json:"standards" yaml:"standards"`
}

var standardsCmd = &cobra.Command{
	Use:   "standards",
	Short: "List the NDMO standards catalog grouped by category",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var listing []categoryListing
		for _, c := range catalog.Categories() {
			listing = append(listing, categoryListing{Category: c, Standards: catalog.ByCategory(c)})
		}
		return emit(cmd, listing)
	},
}

func init() {
	RootCmd.AddCommand(standardsCmd)
}
