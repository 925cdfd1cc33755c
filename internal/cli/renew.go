package cli

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/dvcrn/igsetup/internal/credentials"
	"github.com/dvcrn/igsetup/internal/graph"
	"github.com/dvcrn/igsetup/internal/secrets"
	"github.com/dvcrn/igsetup/internal/setup"
)

var (
	renewForce     bool
	renewThreshold int
	renewPush      bool
	renewRepo      string
)

var renewCmd = &cobra.Command{
	Use:   "renew",
	Short: "Re-exchange the access token before it expires",
	Long: `Inspects the current token via the debug_token endpoint and, when it has
` + "`--threshold`" + ` days or fewer remaining (or ` + "`--force`" + ` is set), exchanges it for
a fresh long-lived token. Reads ` + credentials.EnvAccessToken + `,
` + credentials.EnvAppID + ` and ` + credentials.EnvAppSecret + ` from the environment,
so it can run unattended in CI.`,
	Args: cobra.NoArgs,
	RunE: runRenew,
}

func init() {
	renewCmd.Flags().BoolVar(&renewForce, "force", false, "Renew even if the token is not close to expiry")
	renewCmd.Flags().IntVar(&renewThreshold, "threshold", 7, "Renew when this many days or fewer remain")
	renewCmd.Flags().BoolVar(&renewPush, "push", false, "Push the renewed token to the GitHub Actions secret store")
	renewCmd.Flags().StringVar(&renewRepo, "repo", "", "GitHub repository (owner/name) for --push")
}

func runRenew(cmd *cobra.Command, args []string) error {
	tokenValue, _, err := credentials.NewEnvFetcher(false).Credentials()
	if err != nil {
		return err
	}
	appID, appSecret, err := credentials.AppCredentialFromEnv()
	if err != nil {
		return err
	}

	client := graph.New(log)
	current := graph.LongLived(tokenValue)

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " Checking token expiry..."
	s.Start()
	info, err := client.DebugToken(cmd.Context(), current)
	s.Stop()
	if err != nil {
		return err
	}

	if !info.IsValid {
		fmt.Println("Current token is no longer valid; attempting renewal anyway.")
	} else if days := info.DaysRemaining(); days < 0 {
		fmt.Println("Token never expires, nothing to renew.")
		return nil
	} else if days > renewThreshold && !renewForce {
		fmt.Printf("Token is valid for %d more days, no renewal needed.\n", days)
		return nil
	} else {
		fmt.Printf("Token expires in %d days, renewing...\n", days)
	}

	s = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " Exchanging for a fresh token..."
	s.Start()
	renewed, err := client.ExchangeToken(cmd.Context(), appID, appSecret, current)
	s.Stop()
	if err != nil {
		return err
	}

	// sanity-check the new token before telling anyone to use it
	newInfo, err := client.DebugToken(cmd.Context(), renewed)
	if err != nil {
		return err
	}
	if !newInfo.IsValid {
		return &graph.TokenExchangeError{Raw: "renewed token failed validation"}
	}

	fmt.Printf("New token: %s (valid for about %d days)\n", setup.MaskToken(renewed.Value), int(renewed.ExpiresIn.Hours()/24))

	if renewPush {
		store := secrets.NewGHStore(renewRepo, log)
		if !store.Available() {
			fmt.Printf("gh CLI not found; update the %s secret manually.\n", secrets.NameAccessToken)
			return nil
		}
		if err := store.Set(secrets.NameAccessToken, renewed.Value); err != nil {
			return err
		}
		fmt.Printf("Secret %s updated.\n", secrets.NameAccessToken)
	} else {
		fmt.Printf("Update the %s secret with the new token (rerun with --push to do it automatically).\n", secrets.NameAccessToken)
	}

	return nil
}
