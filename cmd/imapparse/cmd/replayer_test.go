package cmd

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"github.com/meszmate/imap-go/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestReplayBytes_MultipleResponses(t *testing.T) {
	input := []byte("* 23 EXISTS\r\na001 OK LOGIN completed\r\n")
	result, err := replayBytes(discardLogger(), "trace", "test", input, config.Default())
	if err != nil {
		t.Fatalf("replayBytes error: %v", err)
	}
	if result.Responses != 2 {
		t.Errorf("Responses = %d, want 2", result.Responses)
	}
	if result.Truncated {
		t.Error("Truncated = true, want false")
	}
}

func TestReplayBytes_Truncated(t *testing.T) {
	input := []byte("* 23 EXIS")
	result, err := replayBytes(discardLogger(), "trace", "test", input, config.Default())
	if err != nil {
		t.Fatalf("replayBytes error: %v", err)
	}
	if !result.Truncated {
		t.Error("Truncated = false, want true")
	}
}

func TestReplayBytes_Malformed(t *testing.T) {
	input := []byte("!!! not an imap response\r\n")
	_, err := replayBytes(discardLogger(), "trace", "test", input, config.Default())
	if err == nil {
		t.Fatal("expected an error for unrecognized input")
	}
}

func TestReplayBytesVerbose_WritesOneLinePerResponse(t *testing.T) {
	input := []byte("* 23 EXISTS\r\n")
	var buf bytes.Buffer
	result, err := replayBytesVerbose(discardLogger(), "trace", "test", input, config.Default(), &buf)
	if err != nil {
		t.Fatalf("replayBytesVerbose error: %v", err)
	}
	if result.Responses != 1 {
		t.Fatalf("Responses = %d, want 1", result.Responses)
	}
	if buf.Len() == 0 {
		t.Error("expected formatted output, got none")
	}
}
