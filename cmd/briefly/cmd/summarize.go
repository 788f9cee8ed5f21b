package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brieflyhq/briefly/internal/domain/routing"
	"github.com/brieflyhq/briefly/internal/domain/summary"
)

var (
	summarizeFile   string
	summarizeMode   string
	summarizeLength string
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [text]",
	Short: "Summarize text or a document",
	Long: `Summarize text with the configured summarizer service.

Text is taken from the argument, from stdin when no argument is given, or
from a document with --file. Requires a logged-in session.

Examples:
  briefly summarize "some long text to condense"
  cat article.txt | briefly summarize --mode bullet
  briefly summarize --file report.pdf --length long`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSummarize,
}

func init() {
	summarizeCmd.Flags().StringVarP(&summarizeFile, "file", "f", "", "document to summarize instead of text")
	summarizeCmd.Flags().StringVarP(&summarizeMode, "mode", "m", "paragraph", "summary mode: paragraph or bullet")
	summarizeCmd.Flags().StringVarP(&summarizeLength, "length", "l", "medium", "summary length: short, medium, or long")
	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	mode, err := summary.ParseMode(summarizeMode)
	if err != nil {
		return err
	}
	length, err := summary.ParseLength(summarizeLength)
	if err != nil {
		return err
	}
	if summarizeFile != "" && len(args) > 0 {
		return fmt.Errorf("pass text or --file, not both")
	}

	app, err := newApp()
	if err != nil {
		return err
	}
	defer app.close(cmd.Context())

	if !app.requireDestination(routing.DestHome) {
		return errReported
	}

	hist := app.openHistory()
	defer hist.Close()
	svc := app.summarizeService(hist)

	var result *summary.Result
	if summarizeFile != "" {
		f, err := os.Open(summarizeFile)
		if err != nil {
			return err
		}
		defer f.Close()
		result, err = svc.File(cmd.Context(), filepath.Base(summarizeFile), f, mode, length)
		if err != nil {
			app.reportRequestError(err)
			return errReported
		}
	} else {
		text, err := summarizeInput(args)
		if err != nil {
			return err
		}
		result, err = svc.Text(cmd.Context(), text, mode, length)
		if err != nil {
			app.reportRequestError(err)
			return errReported
		}
	}

	fmt.Println(result.Summary)
	fmt.Fprintf(os.Stderr, "\n%d sentences, %d words\n", result.SentenceCount, result.WordCount)
	return nil
}

// summarizeInput returns the text to summarize: the argument, or stdin.
func summarizeInput(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("no text to summarize (pass an argument, pipe stdin, or use --file)")
	}
	return text, nil
}
