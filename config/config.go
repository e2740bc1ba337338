// Package config holds the tunable limits and behaviors that govern a
// parse, loaded either programmatically or from a YAML file.
package config

import (
	"fmt"
	"os"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/meszmate/imap-go/cursor"
)

// Config holds the limits and hooks a parse is run under. The zero value
// is not usable directly; use Default or Load, both of which apply
// sensible defaults for any unset field.
type Config struct {
	// LiteralSizeLimit caps the byte length of a single IMAP literal
	// ({n} or ~{n}). A literal header that declares a larger size fails
	// with a ResourceLimit error before any literal bytes are read.
	LiteralSizeLimit int64 `yaml:"literal_size_limit"`

	// MessageBodySizeLimit is passed to the cursor as
	// cursor.Limits.MessageBodySize. No parser production reads that
	// field, so BODY[]/BINARY[] section sizes are not checked against it.
	MessageBodySizeLimit int64 `yaml:"message_body_size_limit"`

	// MaxRecursionDepth caps nesting depth for recursive grammar (BODY
	// multipart structures, parenthesized lists). Exceeding it fails
	// with a RecursionExceeded error.
	MaxRecursionDepth int `yaml:"max_recursion_depth"`

	// StringIntern, when non-nil, is applied to atoms the parser
	// otherwise would allocate repeatedly (flag names, capability
	// tokens, mailbox attributes) so that repeated parses of the same
	// wire vocabulary share one backing string. Nil disables interning.
	StringIntern func(string) string `yaml:"-"`

	// InternNFC enables Unicode NFC normalization (via
	// golang.org/x/text/unicode/norm) before interning, so that
	// byte-distinct but canonically-equal atoms intern to the same
	// string. Only takes effect if StringIntern is left nil in a YAML
	// load, in which case Load installs the NFC-normalizing interner.
	InternNFC bool `yaml:"intern_nfc"`
}

// Default returns a Config with conservative limits suitable for
// untrusted input, and no string interning.
func Default() *Config {
	return &Config{
		LiteralSizeLimit:     32 << 20, // 32 MiB
		MessageBodySizeLimit: 64 << 20, // 64 MiB
		MaxRecursionDepth:    100,
	}
}

// Load reads a YAML config file, applies defaults for any field left
// unset, and validates the result. After Load returns successfully, all
// fields are usable without further checks.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults()

	if cfg.InternNFC && cfg.StringIntern == nil {
		cfg.StringIntern = internNFC
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// applyDefaults fills in zero-value fields left unset by YAML
// unmarshaling, since the zero value for an int64/int field is
// indistinguishable from an explicit 0.
func (c *Config) applyDefaults() {
	d := Default()
	if c.LiteralSizeLimit == 0 {
		c.LiteralSizeLimit = d.LiteralSizeLimit
	}
	if c.MessageBodySizeLimit == 0 {
		c.MessageBodySizeLimit = d.MessageBodySizeLimit
	}
	if c.MaxRecursionDepth == 0 {
		c.MaxRecursionDepth = d.MaxRecursionDepth
	}
}

// Validate checks that the configuration is internally consistent. It
// runs after applyDefaults, so it can assume defaults are populated.
func (c *Config) Validate() error {
	if c.LiteralSizeLimit <= 0 {
		return fmt.Errorf("literal_size_limit must be positive, got %d", c.LiteralSizeLimit)
	}
	if c.MessageBodySizeLimit <= 0 {
		return fmt.Errorf("message_body_size_limit must be positive, got %d", c.MessageBodySizeLimit)
	}
	if c.MaxRecursionDepth <= 0 {
		return fmt.Errorf("max_recursion_depth must be positive, got %d", c.MaxRecursionDepth)
	}
	return nil
}

// internNFC normalizes s to NFC form before it is interned, so that
// two byte-distinct representations of the same canonical atom collapse
// to one backing string.
func internNFC(s string) string {
	return norm.NFC.String(s)
}

// Limits builds the cursor.Limits this configuration implies.
func (c *Config) Limits() cursor.Limits {
	return cursor.Limits{
		LiteralSize:     c.LiteralSizeLimit,
		MessageBodySize: c.MessageBodySizeLimit,
		Intern:          c.StringIntern,
	}
}

// NewTracker builds a recursion cursor.Tracker bounded by MaxRecursionDepth.
func (c *Config) NewTracker() *cursor.Tracker {
	return cursor.NewTracker(c.MaxRecursionDepth)
}
