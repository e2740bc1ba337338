package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a single capture of IMAP response bytes and print each response",
	Long: "Reads a file (or stdin, if no file is given) containing one or more\n" +
		"raw IMAP response lines and runs them through the parser, printing a\n" +
		"one-line summary of each response recognized.",
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	source := "<stdin>"
	var r io.Reader = os.Stdin
	if len(args) == 1 {
		source = args[0]
		f, err := os.Open(source)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	buf, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading %s: %w", source, err)
	}

	traceID := uuid.NewString()
	result, err := replayBytesVerbose(logger, traceID, source, buf, cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if result.Truncated {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %d responses parsed, input ended mid-response\n", source, result.Responses)
	} else {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %d responses parsed\n", source, result.Responses)
	}
	return nil
}
