package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dvcrn/igsetup/internal/graph"
	"github.com/dvcrn/igsetup/internal/secrets"
	"github.com/dvcrn/igsetup/internal/setup"
)

var setupRepo string

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactively obtain and verify Instagram credentials",
	Long: `Walks through the full credential flow: collect the Meta app credential,
obtain or exchange an access token, discover the linked Instagram Business
Account, verify the pair, and optionally push everything to GitHub Actions
secrets. Fully interactive; answers are read from standard input.`,
	Args: cobra.NoArgs,
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().StringVar(&setupRepo, "repo", "", "GitHub repository (owner/name) for secret publishing; defaults to the current directory's repository")
}

func runSetup(cmd *cobra.Command, args []string) error {
	runner := &setup.Runner{
		Graph:    graph.New(log),
		Prompter: setup.NewTerminalPrompter(os.Stdin, os.Stdout, int(os.Stdin.Fd())),
		Secrets:  secrets.NewGHStore(setupRepo, log),
		Out:      os.Stdout,
		Logger:   log,
	}

	_, err := runner.Run(cmd.Context())
	return err
}
