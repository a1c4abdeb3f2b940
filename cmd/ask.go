package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/Annallisboa/QA-app/internal/itinerary"
	"github.com/Annallisboa/QA-app/internal/pipeline"
	"github.com/Annallisboa/QA-app/internal/web"
)

var askPlain bool

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Answer one question from the terminal",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		request := strings.TrimSpace(strings.Join(args, " "))
		if request == "" {
			return fmt.Errorf("question is empty")
		}

		client, err := newClient()
		if err != nil {
			return err
		}
		p, err := pipeline.NewDefault(client, logger, pipeline.Hooks{})
		if err != nil {
			return err
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()

		res, err := p.Run(ctx, request)
		if err != nil {
			fmt.Fprintln(os.Stderr, web.MsgNotUnderstood)
			return err
		}

		ans := itinerary.BuildView(logger, request, res.AgentSuggestion(), res.Coordinates(), res.CenterInfo(), cfg.DefaultMap())
		text := ans.Text
		if strings.TrimSpace(text) == "" {
			text = web.MsgNotUnderstood
		}

		out := cmd.OutOrStdout()
		fmt.Fprint(out, render(text))

		if !ans.MapAvailable {
			return nil
		}
		fmt.Fprintf(out, "\nMapa: centro %.4f, %.4f (zoom %d)\n", ans.Map.Center.Lat, ans.Map.Center.Lon, ans.Map.Zoom)
		for _, m := range ans.Map.Markers {
			fmt.Fprintf(out, "  %-30s %9.4f %9.4f  %s\n", m.Name, m.Lat, m.Lon, m.Address)
		}
		return nil
	},
}

// render formats markdown for the terminal, falling back to the raw text.
func render(text string) string {
	if askPlain {
		return text + "\n"
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(80))
	if err != nil {
		return text + "\n"
	}
	out, err := r.Render(text)
	if err != nil {
		return text + "\n"
	}
	return out
}

func init() {
	askCmd.Flags().BoolVar(&askPlain, "plain", false, "Print the answer without terminal formatting")
	rootCmd.AddCommand(askCmd)
}
