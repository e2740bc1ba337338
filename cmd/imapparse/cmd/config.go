package cmd

import "github.com/meszmate/imap-go/config"

// loadConfig returns the config at cfgFile, or config.Default() when
// cfgFile is unset.
func loadConfig() (*config.Config, error) {
	if cfgFile == "" {
		return config.Default(), nil
	}
	return config.Load(cfgFile)
}
