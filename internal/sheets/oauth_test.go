package sheets

import (
	"context"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestTokenRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token.json")
	token := &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(time.Hour).Truncate(time.Second),
	}

	require.NoError(t, saveToken(path, token))

	loaded, err := LoadToken(path)
	require.NoError(t, err)
	assert.Equal(t, token.AccessToken, loaded.AccessToken)
	assert.Equal(t, token.RefreshToken, loaded.RefreshToken)
	assert.True(t, token.Expiry.Equal(loaded.Expiry))
}

func TestRefresh_ValidTokenUnchanged(t *testing.T) {
	token := &oauth2.Token{AccessToken: "still-good", Expiry: time.Now().Add(time.Hour)}

	got, err := Refresh(context.Background(), OAuth2Config{}, token)
	require.NoError(t, err)
	assert.Same(t, token, got)
}

func TestOAuth2Config_Redirect(t *testing.T) {
	cfg := OAuth2Config{ClientID: "id", ClientSecret: "secret"}
	assert.Equal(t, "http://localhost:8085/callback", cfg.oauthConfig().RedirectURL)

	cfg.CallbackAddr = "127.0.0.1:9999"
	assert.Equal(t, "http://127.0.0.1:9999/callback", cfg.oauthConfig().RedirectURL)
}

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestAuthorize_RejectsForeignState(t *testing.T) {
	addr := freeAddr(t)
	var opened string

	cfg := OAuth2Config{
		ClientID:     "id",
		ClientSecret: "secret",
		CallbackAddr: addr,
		OpenURL: func(url string) {
			opened = url
			go func() {
				for range 50 {
					resp, err := http.Get("http://" + addr + "/callback?code=abc&state=forged")
					if err == nil {
						_ = resp.Body.Close()
						return
					}
					time.Sleep(20 * time.Millisecond)
				}
			}()
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := Authorize(ctx, cfg)
	require.ErrorIs(t, err, ErrCallbackRejected)
	assert.Contains(t, opened, "access_type=offline")
	assert.Contains(t, opened, "code_challenge_method=S256")
}

func TestAuthorize_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Authorize(ctx, OAuth2Config{
		ClientID:     "id",
		ClientSecret: "secret",
		CallbackAddr: freeAddr(t),
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestAuthorize_TimesOut(t *testing.T) {
	_, err := Authorize(context.Background(), OAuth2Config{
		ClientID:     "id",
		ClientSecret: "secret",
		CallbackAddr: freeAddr(t),
		Timeout:      30 * time.Millisecond,
	})
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "no authorization received")
}

func TestEnsureToken_UsesCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	cached := &oauth2.Token{AccessToken: "cached", Expiry: time.Now().Add(time.Hour)}
	require.NoError(t, saveToken(path, cached))

	got, err := EnsureToken(context.Background(), OAuth2Config{TokenFile: path})
	require.NoError(t, err)
	assert.Equal(t, "cached", got.AccessToken)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}
