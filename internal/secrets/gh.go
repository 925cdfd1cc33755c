package secrets

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
)

// GHStore sets GitHub Actions repository secrets through the gh CLI. The
// secret value is piped over stdin so it never shows up in the process
// arguments.
type GHStore struct {
	// Repo optionally targets a specific owner/name; empty uses the
	// repository of the current working directory.
	Repo   string
	logger zerolog.Logger
	run    func(args []string, stdin string) ([]byte, error)
}

// NewGHStore creates a secret store backed by the gh CLI
func NewGHStore(repo string, logger zerolog.Logger) *GHStore {
	return &GHStore{
		Repo:   repo,
		logger: logger,
		run:    runGH,
	}
}

func runGH(args []string, stdin string) ([]byte, error) {
	cmd := exec.Command("gh", args...)
	cmd.Stdin = strings.NewReader(stdin)
	return cmd.CombinedOutput()
}

// Available reports whether the gh CLI is installed
func (g *GHStore) Available() bool {
	_, err := exec.LookPath("gh")
	return err == nil
}

// Set stores one repository secret via `gh secret set`
func (g *GHStore) Set(name, value string) error {
	args := []string{"secret", "set", name}
	if g.Repo != "" {
		args = append(args, "--repo", g.Repo)
	}

	out, err := g.run(args, value)
	if err != nil {
		return fmt.Errorf("gh secret set %s: %w: %s", name, err, strings.TrimSpace(string(out)))
	}

	g.logger.Info().Str("secret", name).Msg("🔒 repository secret updated")
	return nil
}
