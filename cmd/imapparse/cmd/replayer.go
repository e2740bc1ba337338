package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/meszmate/imap-go/config"
	"github.com/meszmate/imap-go/cursor"
	"github.com/meszmate/imap-go/parse"
	"github.com/meszmate/imap-go/perr"
)

// replayResult summarizes one file's worth of parsing.
type replayResult struct {
	Responses int
	Truncated bool // input ended mid-response
}

// replayBytes feeds buf through parse.TopLevel until it is exhausted,
// logging one line per response and returning a summary. traceID
// identifies this replay in concurrent runs (cmd replay fans out one
// goroutine per file).
func replayBytes(log *slog.Logger, traceID, source string, buf []byte, cfg *config.Config) (replayResult, error) {
	return replay(log, traceID, source, buf, cfg, nil)
}

// replayBytesVerbose is replayBytes plus a one-line rendering of every
// successfully parsed response written to w.
func replayBytesVerbose(log *slog.Logger, traceID, source string, buf []byte, cfg *config.Config, w io.Writer) (replayResult, error) {
	return replay(log, traceID, source, buf, cfg, w)
}

func replay(log *slog.Logger, traceID, source string, buf []byte, cfg *config.Config, w io.Writer) (replayResult, error) {
	c := cursor.NewFromBytes(buf, cfg.Limits())
	tr := cfg.NewTracker()

	var result replayResult
	for {
		if c.Offset() >= c.Len() {
			return result, nil
		}

		out := parse.TopLevel(c, tr)
		switch {
		case out.IsOk():
			result.Responses++
			log.Debug("parsed response",
				"trace_id", traceID,
				"source", source,
				"tag", out.Value.Tag,
				"offset", c.Offset(),
			)
			if w != nil {
				fmt.Fprintln(w, formatResponse(out.Value))
			}
		case out.IsIncomplete():
			result.Truncated = true
			return result, nil
		case out.IsRecoverable():
			return result, fmt.Errorf("%s: no response grammar matched at offset %d", source, c.Offset())
		default:
			var pe *perr.Error
			if errors.As(out.Err, &pe) {
				log.Error("parse failed",
					"trace_id", traceID,
					"source", source,
					"kind", pe.Kind.String(),
					"offset", pe.Offset,
					"hint", pe.Hint,
				)
			}
			return result, out.Err
		}
	}
}

// formatResponse renders a parsed response for human inspection. It is
// deliberately terse: one line naming which union arm is populated, since
// imap.Response-shaped types are sum-type structs with many nil fields.
func formatResponse(r parse.Response) string {
	switch {
	case r.Continuation != nil:
		return fmt.Sprintf("+ continuation: %q", *r.Continuation)
	case r.Status != nil:
		return fmt.Sprintf("tag=%s status=%s text=%q", r.Tag, r.Status.Type, r.Status.Text)
	case r.Fetch != nil:
		return fmt.Sprintf("* FETCH seq=%d", r.Fetch.SeqNum)
	case r.Exists != nil:
		return fmt.Sprintf("* %d EXISTS", *r.Exists)
	case r.Expunge != nil:
		return fmt.Sprintf("* %d EXPUNGE", *r.Expunge)
	case r.Vanished != nil:
		return "* VANISHED"
	case len(r.Search) > 0:
		return fmt.Sprintf("* SEARCH %v", r.Search)
	case r.List != nil:
		return fmt.Sprintf("* LIST %s", r.List.Path.Name)
	case len(r.Capability) > 0:
		return fmt.Sprintf("* CAPABILITY %v", r.Capability)
	default:
		return fmt.Sprintf("tag=%s (other)", r.Tag)
	}
}
