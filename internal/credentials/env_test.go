package credentials

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvFetcher(t *testing.T) {
	t.Run("returns token and account id when set", func(t *testing.T) {
		t.Setenv(EnvAccessToken, "tok2")
		t.Setenv(EnvAccountID, "ig42")

		token, accountID, err := NewEnvFetcher(true).Credentials()
		require.NoError(t, err)
		assert.Equal(t, "tok2", token)
		assert.Equal(t, "ig42", accountID)
	})

	t.Run("reports every missing variable", func(t *testing.T) {
		t.Setenv(EnvAccessToken, "")
		t.Setenv(EnvAccountID, "")

		_, _, err := NewEnvFetcher(true).Credentials()
		var missing *MissingInputError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, []string{EnvAccessToken, EnvAccountID}, missing.Vars)
	})

	t.Run("account id optional for discovery", func(t *testing.T) {
		t.Setenv(EnvAccessToken, "tok2")
		t.Setenv(EnvAccountID, "")

		token, accountID, err := NewEnvFetcher(false).Credentials()
		require.NoError(t, err)
		assert.Equal(t, "tok2", token)
		assert.Empty(t, accountID)
	})
}

func TestStaticFetcher(t *testing.T) {
	token, _, err := (&StaticFetcher{AccessToken: "tok2"}).Credentials()
	require.NoError(t, err)
	assert.Equal(t, "tok2", token)

	_, _, err = (&StaticFetcher{}).Credentials()
	var missing *MissingInputError
	require.ErrorAs(t, err, &missing)
}

func TestAppCredentialFromEnv(t *testing.T) {
	t.Setenv(EnvAppID, "123")
	t.Setenv(EnvAppSecret, "secret")

	appID, appSecret, err := AppCredentialFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "123", appID)
	assert.Equal(t, "secret", appSecret)

	t.Setenv(EnvAppSecret, "")
	_, _, err = AppCredentialFromEnv()
	var missing *MissingInputError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{EnvAppSecret}, missing.Vars)
}
