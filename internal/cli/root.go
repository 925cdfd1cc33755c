package cli

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dvcrn/igsetup/internal/credentials"
	"github.com/dvcrn/igsetup/internal/graph"
	"github.com/dvcrn/igsetup/internal/logger"
	"github.com/dvcrn/igsetup/internal/setup"
)

// Exit codes for scripting and CI.
const (
	// ExitCodeSuccess indicates the full chain completed.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general failure.
	ExitCodeError = 1
	// ExitCodeConfig indicates missing required input before any network call.
	ExitCodeConfig = 2
	// ExitCodeCredential indicates a rejected, expired or unexchangeable token.
	ExitCodeCredential = 3
)

var log zerolog.Logger

var rootCmd = &cobra.Command{
	Use:   "igsetup",
	Short: "Set up Instagram Graph API credentials for automated posting",
	Long: `igsetup walks you through obtaining a long-lived Meta Graph API access
token, discovering your Instagram Business Account ID, verifying the pair
works, and optionally pushing both into GitHub Actions secrets.

Running igsetup without a subcommand starts the interactive setup.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runSetup,
}

// SetVersion sets the version for the root command, injected at build time
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute runs the CLI and exits with a semantic exit code on failure
func Execute() {
	_ = godotenv.Load()
	log = logger.New()

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("aborted")
		if hint := setup.Remediation(err); hint != "" {
			os.Stderr.WriteString("\n" + hint + "\n")
		}
		os.Exit(exitCode(err))
	}
}

// exitCode maps the error taxonomy onto exit codes
func exitCode(err error) int {
	var missing *credentials.MissingInputError
	if errors.As(err, &missing) {
		return ExitCodeConfig
	}

	var exchErr *graph.TokenExchangeError
	var verifyErr *setup.VerificationError
	if errors.As(err, &exchErr) || errors.As(err, &verifyErr) || errors.Is(err, graph.ErrShortLivedToken) {
		return ExitCodeCredential
	}

	var ue *graph.UpstreamError
	if errors.As(err, &ue) && ue.Code == graph.CodeInvalidToken {
		return ExitCodeCredential
	}

	return ExitCodeError
}

func init() {
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(renewCmd)
}
