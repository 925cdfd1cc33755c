package cli

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/dvcrn/igsetup/internal/credentials"
	"github.com/dvcrn/igsetup/internal/graph"
)

var discoverCmd = &cobra.Command{
	Use:   "discover [access-token]",
	Short: "Find the Instagram Business Account ID for a token",
	Long: `Lists the Facebook Pages the token manages and returns the first linked
Instagram Business Account. The token is taken from the positional argument
or from ` + credentials.EnvAccessToken + `, and must be long-lived.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDiscover,
}

func runDiscover(cmd *cobra.Command, args []string) error {
	var fetcher credentials.Fetcher = credentials.NewEnvFetcher(false)
	if len(args) == 1 {
		fetcher = &credentials.StaticFetcher{AccessToken: args[0]}
	}

	token, _, err := fetcher.Credentials()
	if err != nil {
		return err
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " Checking pages for a linked Instagram account..."
	s.Start()

	account, err := graph.New(log).DiscoverAccount(cmd.Context(), graph.LongLived(token))
	s.Stop()
	if err != nil {
		return err
	}

	fmt.Printf("Linked page:                   %s (%s)\n", account.PageName, account.PageID)
	fmt.Printf("Instagram Business Account ID: %s\n", account.ID)
	return nil
}
