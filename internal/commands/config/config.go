package config

import (
	"fmt"

	internalconfig "github.com/AD7six/spfile/internal/config"
	"github.com/spf13/cobra"
)

// NewConfigCmd returns a cobra command that displays current configuration.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show effective configuration",
		Long:  "Shows the current configuration values as ENV_VAR: value pairs.",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := internalconfig.LoadSettings()
			if err != nil {
				return err
			}

			displaySettings(settings)
			return nil
		},
	}

	return cmd
}

// displaySettings prints each config as "ENV_VAR: value"
func displaySettings(s *internalconfig.Settings) {
	// Required
	fmt.Printf("SPO_ACCESS_TOKEN: %s\n", maskSecret(s.AccessToken))

	// Optional
	// HTTP_TIMEOUT is defined as seconds, convert duration to whole seconds
	fmt.Printf("HTTP_TIMEOUT: %d\n", int(s.HTTPTimeout.Seconds()))
	fmt.Printf("HTTP_MAX_BODY_SIZE: %d\n", s.HTTPMaxBodySize)
	fmt.Printf("LOG_LEVEL: %s\n", s.LogLevel)
}

// maskSecret masks all but the last 4 characters of a secret.
func maskSecret(secret string) string {
	if len(secret) <= 4 {
		return "****"
	}
	return "****" + secret[len(secret)-4:]
}
