package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Annallisboa/QA-app/internal/pipeline"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show model configuration and pipeline wiring",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		endpoint := cfg.Model.Endpoint
		if endpoint == "" {
			endpoint = "(provider default)"
		}
		key := "missing"
		if cfg.Model.APIKey() != "" {
			key = "set"
		}

		fmt.Fprintf(out, "Model\n")
		fmt.Fprintf(out, "=====\n")
		fmt.Fprintf(out, "Provider:   %s\n", cfg.Model.Provider)
		fmt.Fprintf(out, "Model:      %s\n", cfg.Model.Name)
		fmt.Fprintf(out, "Endpoint:   %s\n", endpoint)
		fmt.Fprintf(out, "Credential: %s (%s)\n", key, cfg.Model.KeyEnv())
		fmt.Fprintf(out, "Timeout:    %s\n", cfg.Model.Timeout.Duration)

		fmt.Fprintf(out, "\nPipeline\n")
		fmt.Fprintf(out, "--------\n")
		for i, st := range pipeline.DefaultStages() {
			fmt.Fprintf(out, "  %d. %-10s %s -> %s\n", i+1, st.Name, st.InputField(), st.OutputField)
		}

		m := cfg.DefaultMap()
		fmt.Fprintf(out, "\nDefault map: %.4f, %.4f (zoom %d)\n", m.Center.Lat, m.Center.Lon, m.Zoom)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
