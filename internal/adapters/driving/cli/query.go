package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/pagerag/internal/core/domain"
	"github.com/custodia-labs/pagerag/internal/core/ports/driving"
)

var queryTopK int

var labelStyle = lipgloss.NewStyle().Bold(true)

var queryCmd = &cobra.Command{
	Use:   "query [text]",
	Short: "Answer a question from the ingested documents",
	Long: `Retrieves the chunks most similar to the question, prompts the
language model with them and prints the generated answer together with
the ids of the chunks used as context.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().IntVarP(&queryTopK, "top-k", "k", 0, "number of chunks to retrieve (default from config)")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	svc, cleanup, err := buildQuery(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	k := queryTopK
	if k <= 0 {
		k = cfg.TopK
	}

	answer, err := svc.Query(cmd.Context(), args[0], driving.QueryOptions{TopK: k})
	if err != nil {
		return err
	}

	printAnswer(cmd, answer)
	return nil
}

// printAnswer writes the response and its sources, bolding the labels
// when stdout is a terminal.
func printAnswer(cmd *cobra.Command, answer *domain.Answer) {
	label := func(s string) string { return s }
	if isTerminal(cmd.OutOrStdout()) {
		label = func(s string) string { return labelStyle.Render(s) }
	}

	sources := "null"
	if len(answer.Sources) > 0 {
		sources = fmt.Sprintf("%v", answer.Sources)
	}

	cmd.Printf("%s %s\n", label("Response:"), answer.Response)
	cmd.Printf("%s %s\n", label("Sources:"), sources)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
