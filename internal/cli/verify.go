package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/dvcrn/igsetup/internal/credentials"
	"github.com/dvcrn/igsetup/internal/graph"
	"github.com/dvcrn/igsetup/internal/setup"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that the stored credentials still work",
	Long: `Reads ` + credentials.EnvAccessToken + ` and ` + credentials.EnvAccountID + ` from the
environment, issues a read against the account, and reports pass/fail per
required permission scope. Exits non-zero when verification fails.`,
	Args: cobra.NoArgs,
	RunE: runVerify,
}

func runVerify(cmd *cobra.Command, args []string) error {
	tokenValue, accountID, err := credentials.NewEnvFetcher(true).Credentials()
	if err != nil {
		return err
	}

	client := graph.New(log)
	token := graph.LongLived(tokenValue)

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " Verifying credentials..."
	s.Start()

	result := client.Verify(cmd.Context(), token, accountID)

	// the account read proves the pair works; debug_token narrows down
	// which scopes the token actually carries
	var info *graph.TokenInfo
	if result.OK {
		info, _ = client.DebugToken(cmd.Context(), token)
	}
	s.Stop()

	if !result.OK {
		fmt.Fprintf(os.Stderr, "Verification failed: %s\n", result.Diagnostic)
		return &setup.VerificationError{Result: result}
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Check", "Result"})
	t.AppendRows([]table.Row{
		{"Account ID", result.Account.ID},
		{"Username", "@" + result.Account.Username},
		{"Media count", result.Account.MediaCount},
	})

	if info != nil {
		expiry := "never"
		if !info.ExpiresAt.IsZero() {
			expiry = fmt.Sprintf("%s (%d days)", info.ExpiresAt.Format("2006-01-02"), info.DaysRemaining())
		}
		t.AppendRow(table.Row{"Token expires", expiry})

		missing := graph.MissingScopes(info.Scopes)
		for _, scope := range graph.RequiredScopes {
			status := "granted"
			for _, m := range missing {
				if m == scope {
					status = "MISSING"
				}
			}
			t.AppendRow(table.Row{"Scope " + scope, status})
		}
		if len(missing) > 0 {
			result.OK = false
			result.MissingScopes = missing
			result.Diagnostic = "token lacks required scopes: " + strings.Join(missing, ", ")
			t.Render()
			fmt.Fprintln(os.Stderr, "\n"+result.Diagnostic)
			return &setup.VerificationError{Result: result}
		}
	}

	t.Render()
	fmt.Println("\nCredentials verified.")
	return nil
}
