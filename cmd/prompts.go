package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Annallisboa/QA-app/internal/model"
	"github.com/Annallisboa/QA-app/internal/pipeline"
)

var promptsCmd = &cobra.Command{
	Use:   "prompts <question>",
	Short: "Print the first-stage messages for a question without calling the model",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st := pipeline.DefaultStages()[0]
		messages, err := st.Template.Render(map[string]string{
			model.FieldRequest: strings.Join(args, " "),
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, m := range messages {
			fmt.Fprintf(out, "--- %s (%s) ---\n%s\n\n", m.Role, st.Name, m.Content)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(promptsCmd)
}
