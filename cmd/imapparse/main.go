// Command imapparse is a demo harness for the IMAP response parser: it
// replays captured response bytes through the parser and reports what
// came out, for manual inspection and fuzz-corpus generation. It is not
// part of the parser's public API.
package main

import "github.com/meszmate/imap-go/cmd/imapparse/cmd"

func main() {
	cmd.Execute()
}
