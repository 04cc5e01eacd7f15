package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/sheets/v4"
)

// ErrCallbackRejected is returned when the browser redirect carries no code
// or a state value this flow did not issue.
var ErrCallbackRejected = errors.New("authorization callback rejected")

const (
	defaultCallbackAddr = "localhost:8085"
	defaultAuthTimeout  = 5 * time.Minute
)

// OAuth2Config describes the installed-app OAuth flow used by
// "edubridge auth sheets".
type OAuth2Config struct {
	ClientID     string
	ClientSecret string
	// TokenFile caches the token between runs; empty disables caching.
	TokenFile string
	// CallbackAddr is the local listen address for the redirect.
	CallbackAddr string
	// OpenURL, when set, receives the consent URL, typically to open a browser.
	OpenURL func(url string)
	// Timeout bounds the wait for the user to finish consent.
	Timeout time.Duration
}

func (c OAuth2Config) callbackAddr() string {
	if c.CallbackAddr == "" {
		return defaultCallbackAddr
	}
	return c.CallbackAddr
}

func (c OAuth2Config) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  "http://" + c.callbackAddr() + "/callback",
		Scopes:       []string{sheets.SpreadsheetsScope},
	}
}

type callbackResult struct {
	code string
	err  error
}

// callbackHandler accepts the first redirect that carries the expected state.
type callbackHandler struct {
	state   string
	results chan<- callbackResult
}

const callbackPage = `<html><body><h1>%s</h1><p>%s</p>
<script>window.setTimeout(function(){window.close();}, 3000);</script></body></html>`

func (h callbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res := callbackResult{code: q.Get("code")}
	switch {
	case q.Get("error") != "":
		res.err = fmt.Errorf("%w: %s", ErrCallbackRejected, q.Get("error"))
	case res.code == "" || q.Get("state") != h.state:
		res.err = fmt.Errorf("%w: missing code or unexpected state", ErrCallbackRejected)
	}

	select {
	case h.results <- res:
	default:
	}

	if res.err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = fmt.Fprintf(w, callbackPage, "EduBridge authorization failed", "Please run edubridge auth sheets again.")
		return
	}
	_, _ = fmt.Fprintf(w, callbackPage, "EduBridge is connected to Google Sheets", "You can close this window and return to the terminal.")
}

// Authorize runs the browser consent flow with PKCE, waits for the redirect
// on CallbackAddr and exchanges the code for a token. The token is written
// to TokenFile when one is configured.
func Authorize(ctx context.Context, cfg OAuth2Config) (*oauth2.Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultAuthTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	listener, err := (&net.ListenConfig{}).Listen(ctx, "tcp", cfg.callbackAddr())
	if err != nil {
		return nil, fmt.Errorf("failed to start callback server: %w", err)
	}

	results := make(chan callbackResult, 1)
	state := uuid.NewString()
	server := &http.Server{
		Handler:           http.StripPrefix("/callback", callbackHandler{state: state, results: results}),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() { _ = server.Serve(listener) }()
	defer func() { _ = server.Shutdown(context.WithoutCancel(ctx)) }()

	oc := cfg.oauthConfig()
	verifier := oauth2.GenerateVerifier()
	authURL := oc.AuthCodeURL(state,
		oauth2.AccessTypeOffline, oauth2.ApprovalForce, oauth2.S256ChallengeOption(verifier))

	slog.Info("Open this URL to let EduBridge publish to Google Sheets", "url", authURL)
	if cfg.OpenURL != nil {
		cfg.OpenURL(authURL)
	}

	var res callbackResult
	select {
	case res = <-results:
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("no authorization received within %s: %w", timeout, ctx.Err())
		}
		return nil, ctx.Err()
	}
	if res.err != nil {
		return nil, res.err
	}

	token, err := oc.Exchange(ctx, res.code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	cfg.store(token)
	return token, nil
}

func (c OAuth2Config) store(token *oauth2.Token) {
	if c.TokenFile == "" {
		return
	}
	if err := saveToken(c.TokenFile, token); err != nil {
		slog.Warn("Failed to save token", "file", c.TokenFile, "error", err)
		return
	}
	slog.Debug("Token saved", "file", c.TokenFile)
}

// LoadToken reads a cached token.
func LoadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return nil, err
	}
	token := &oauth2.Token{}
	if err := json.Unmarshal(data, token); err != nil {
		return nil, fmt.Errorf("token file %s: %w", path, err)
	}
	return token, nil
}

// saveToken writes the token through a temp file so a crash never leaves a
// truncated cache behind.
func saveToken(path string, token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write token: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace token: %w", err)
	}
	return nil
}

// Refresh returns token unchanged while it is valid and otherwise trades the
// refresh token for a new one, updating the cache.
func Refresh(ctx context.Context, cfg OAuth2Config, token *oauth2.Token) (*oauth2.Token, error) {
	if token.Valid() {
		return token, nil
	}
	fresh, err := cfg.oauthConfig().TokenSource(ctx, token).Token()
	if err != nil {
		return nil, fmt.Errorf("failed to refresh token: %w", err)
	}
	cfg.store(fresh)
	return fresh, nil
}

// EnsureToken reuses the cached token when there is one and falls back to
// the interactive flow otherwise.
func EnsureToken(ctx context.Context, cfg OAuth2Config) (*oauth2.Token, error) {
	if cfg.TokenFile != "" {
		if token, err := LoadToken(cfg.TokenFile); err == nil {
			slog.Info("Using cached Google token", "file", cfg.TokenFile)
			return Refresh(ctx, cfg, token)
		}
	}
	return Authorize(ctx, cfg)
}
