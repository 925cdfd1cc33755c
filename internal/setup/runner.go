package setup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/zerolog"

	"github.com/dvcrn/igsetup/internal/credentials"
	"github.com/dvcrn/igsetup/internal/graph"
	"github.com/dvcrn/igsetup/internal/secrets"
)

// AppCredential identifies the Meta app. The secret is sensitive and must
// never be logged or printed.
type AppCredential struct {
	AppID     string
	AppSecret string
}

// String redacts the secret
func (c AppCredential) String() string {
	return fmt.Sprintf("AppCredential(app_id=%s)", c.AppID)
}

// MarshalZerologObject keeps the secret out of structured logs
func (c AppCredential) MarshalZerologObject(e *zerolog.Event) {
	e.Str("app_id", c.AppID)
}

// Session holds the values produced by a completed setup run. Nothing is
// persisted; every invocation rediscovers from scratch.
type Session struct {
	Credential   AppCredential
	Token        graph.Token
	Account      *graph.InstagramAccount
	Verification *graph.VerificationResult
	Published    bool
}

// VerificationError aborts the session when the final check fails.
type VerificationError struct {
	Result *graph.VerificationResult
}

func (e *VerificationError) Error() string {
	return "credential verification failed: " + e.Result.Diagnostic
}

// Runner sequences the credential setup flow: collect the app credential,
// collect or exchange the token, discover the account, verify, then
// optionally publish secrets. Strictly linear; the first failing step
// aborts the whole session.
type Runner struct {
	Graph    *graph.Client
	Prompter Prompter
	Secrets  secrets.Store
	Out      io.Writer
	Logger   zerolog.Logger
}

// Run executes the full flow and returns the session values on success
func (r *Runner) Run(ctx context.Context) (*Session, error) {
	session := &Session{}

	fmt.Fprintln(r.Out, "Instagram Graph API credential setup")
	fmt.Fprintln(r.Out, "You need a Meta app, an Instagram Business Account and a linked Facebook Page.")
	fmt.Fprintln(r.Out)

	cred, err := r.collectAppCredential()
	if err != nil {
		return nil, err
	}
	session.Credential = cred

	token, err := r.collectOrExchangeToken(ctx, cred)
	if err != nil {
		return nil, err
	}
	session.Token = token

	fmt.Fprintln(r.Out, "Looking up the Instagram Business Account linked to your pages...")
	account, err := r.Graph.DiscoverAccount(ctx, token)
	if err != nil {
		return nil, err
	}
	session.Account = account
	fmt.Fprintf(r.Out, "Found account %s via page %q (%s)\n\n", account.ID, account.PageName, account.PageID)

	fmt.Fprintln(r.Out, "Verifying the token against the discovered account...")
	result := r.Graph.Verify(ctx, token, account.ID)
	session.Verification = result
	if !result.OK {
		return nil, &VerificationError{Result: result}
	}
	fmt.Fprintf(r.Out, "%s\n\n", result.Diagnostic)

	published, err := r.publishSecrets(session)
	if err != nil {
		return nil, err
	}
	session.Published = published

	r.printSummary(session)
	r.Logger.Info().Object("credential", session.Credential).Str("account_id", session.Account.ID).Msg("setup complete")
	return session, nil
}

func (r *Runner) collectAppCredential() (AppCredential, error) {
	appID, err := r.Prompter.Ask("Meta app ID")
	if err != nil {
		return AppCredential{}, err
	}
	appSecret, err := r.Prompter.AskSecret("Meta app secret")
	if err != nil {
		return AppCredential{}, err
	}

	var missing []string
	if appID == "" {
		missing = append(missing, credentials.EnvAppID)
	}
	if appSecret == "" {
		missing = append(missing, credentials.EnvAppSecret)
	}
	if len(missing) > 0 {
		return AppCredential{}, &credentials.MissingInputError{Vars: missing}
	}

	return AppCredential{AppID: appID, AppSecret: appSecret}, nil
}

func (r *Runner) collectOrExchangeToken(ctx context.Context, cred AppCredential) (graph.Token, error) {
	haveLongLived, err := r.Prompter.Confirm("Do you already have a long-lived access token?", false)
	if err != nil {
		return graph.Token{}, err
	}

	if haveLongLived {
		value, err := r.Prompter.AskSecret("Long-lived access token")
		if err != nil {
			return graph.Token{}, err
		}
		if value == "" {
			return graph.Token{}, &credentials.MissingInputError{Vars: []string{credentials.EnvAccessToken}}
		}
		return graph.LongLived(value), nil
	}

	fmt.Fprintln(r.Out, "Generate a short-lived token in the Graph API Explorer (grant pages_show_list,")
	fmt.Fprintln(r.Out, "instagram_basic and instagram_content_publish), then paste it here.")
	value, err := r.Prompter.AskSecret("Short-lived access token")
	if err != nil {
		return graph.Token{}, err
	}
	if value == "" {
		return graph.Token{}, &credentials.MissingInputError{Vars: []string{credentials.EnvAccessToken}}
	}

	fmt.Fprintln(r.Out, "Exchanging for a long-lived token...")
	token, err := r.Graph.ExchangeToken(ctx, cred.AppID, cred.AppSecret, graph.ShortLived(value))
	if err != nil {
		return graph.Token{}, err
	}
	fmt.Fprintf(r.Out, "Token exchanged, valid for about %d days.\n\n", int(token.ExpiresIn.Hours()/24))
	return token, nil
}

func (r *Runner) publishSecrets(session *Session) (bool, error) {
	if !r.Secrets.Available() {
		fmt.Fprintln(r.Out, "gh CLI not found, skipping secret publishing. Set the secrets manually:")
		fmt.Fprintf(r.Out, "  %s, %s, %s, %s\n",
			secrets.NameAccessToken, secrets.NameAccountID, secrets.NameAppID, secrets.NameAppSecret)
		return false, nil
	}

	push, err := r.Prompter.Confirm("Push these values to GitHub Actions secrets?", true)
	if err != nil {
		return false, err
	}
	if !push {
		fmt.Fprintln(r.Out, "Skipping secret publishing.")
		return false, nil
	}

	pairs := []struct{ name, value string }{
		{secrets.NameAccessToken, session.Token.Value},
		{secrets.NameAccountID, session.Account.ID},
		{secrets.NameAppID, session.Credential.AppID},
		{secrets.NameAppSecret, session.Credential.AppSecret},
	}
	for _, pair := range pairs {
		if err := r.Secrets.Set(pair.name, pair.value); err != nil {
			return false, err
		}
	}

	fmt.Fprintln(r.Out, "All four secrets updated.")
	return true, nil
}

func (r *Runner) printSummary(session *Session) {
	t := table.NewWriter()
	t.SetOutputMirror(r.Out)
	t.AppendHeader(table.Row{"Setting", "Value"})
	t.AppendRows([]table.Row{
		{"App ID", session.Credential.AppID},
		{"Instagram account", session.Account.ID},
		{"Linked page", fmt.Sprintf("%s (%s)", session.Account.PageName, session.Account.PageID)},
		{"Username", "@" + session.Verification.Account.Username},
		{"Access token", MaskToken(session.Token.Value)},
		{"Token lifetime", fmt.Sprintf("~%d days", int(session.Token.ExpiresIn.Hours()/24))},
	})
	t.Render()
}

// MaskToken shows only the edges of a token for display purposes
func MaskToken(token string) string {
	if len(token) <= 16 {
		return strings.Repeat("*", len(token))
	}
	return token[:8] + "..." + token[len(token)-8:]
}

// Remediation maps a setup failure to the documented fix for it. Empty when
// the failure has no known remediation.
func Remediation(err error) string {
	switch {
	case errors.Is(err, graph.ErrNoPages):
		return "Your token manages no Facebook Pages. Link a Facebook Page to your Instagram account and grant pages_show_list."
	case errors.Is(err, graph.ErrNoInstagramAccount):
		return "No page has a linked Instagram Business Account. Switch your Instagram account from personal to Business and link it to a Facebook Page."
	}

	var ue *graph.UpstreamError
	if errors.As(err, &ue) && ue.Code == graph.CodeInvalidToken {
		return "The access token is invalid or expired. Regenerate a short-lived token in the Graph API Explorer and run setup again."
	}

	var exchErr *graph.TokenExchangeError
	if errors.As(err, &exchErr) {
		return "The token exchange was rejected. Check the app ID and secret, and regenerate the short-lived token if it is older than an hour."
	}

	var verifyErr *VerificationError
	if errors.As(err, &verifyErr) {
		if len(verifyErr.Result.MissingScopes) > 0 {
			return "The token lacks required permissions: " + strings.Join(verifyErr.Result.MissingScopes, ", ") + ". Regenerate it with those scopes granted."
		}
		return "The access token is invalid or expired. Regenerate a short-lived token in the Graph API Explorer and run setup again."
	}

	return ""
}
