package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/exec"
	"runtime"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"github.com/mailwright/gmailmcp/internal/logging"
)

// ErrNoCode is returned when the OAuth redirect arrives without an
// authorization code in the query string.
var ErrNoCode = errors.New("no authorization code received in callback")

// Authenticator owns the authorization-code grant: it builds the consent URL,
// captures the redirect on a one-shot local listener, exchanges the code for
// a token set and hands the result to the token store.
type Authenticator struct {
	config *oauth2.Config
	store  *TokenStore
	logger *slog.Logger

	// addr is the listen address for the callback listener. Fixed to the
	// well-known port in production; overridden in tests.
	addr string
}

// NewAuthenticator creates an Authenticator for the given OAuth client
// configuration and token store.
func NewAuthenticator(config *oauth2.Config, store *TokenStore, logger *slog.Logger) *Authenticator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Authenticator{
		config: config,
		store:  store,
		logger: logger,
		addr:   fmt.Sprintf(":%d", CallbackPort),
	}
}

// EnsureToken returns a usable token set, loading the persisted one when it
// exists and running the interactive flow otherwise. A loaded token is not
// validated against the provider here; an expired or revoked token surfaces
// on first API use (or is refreshed transparently by the token source).
func (a *Authenticator) EnsureToken(ctx context.Context) (*oauth2.Token, error) {
	if a.store.Has() {
		token, err := a.store.Load()
		if err != nil {
			return nil, err
		}
		a.logger.Debug("using persisted token set", slog.String("path", a.store.Path()))
		return token, nil
	}
	return a.Authenticate(ctx)
}

// TokenSource returns an auto-refreshing token source for the given token.
func (a *Authenticator) TokenSource(ctx context.Context, token *oauth2.Token) oauth2.TokenSource {
	return a.config.TokenSource(ctx, token)
}

// callbackResult is the rendezvous value between the HTTP handler and the
// blocked Authenticate call. Exactly one result is ever delivered.
type callbackResult struct {
	token *oauth2.Token
	err   error
}

// Authenticate runs the interactive authorization-code flow: it starts the
// local listener, presents the consent URL, waits for the single redirect,
// exchanges the code and persists the resulting token set. The listener is
// torn down on every exit path.
func (a *Authenticator) Authenticate(ctx context.Context) (*oauth2.Token, error) {
	listener, err := net.Listen("tcp", a.addr)
	if err != nil {
		return nil, fmt.Errorf("failed to start OAuth callback listener on %s: %w", a.addr, err)
	}

	resultCh := make(chan callbackResult, 1)
	var deliverOnce sync.Once
	deliver := func(res callbackResult) {
		deliverOnce.Do(func() { resultCh <- res })
	}

	// Exactly one redirect is serviced. handleOnce guards the exchange and
	// the token write, not just the result delivery; a second redirect
	// arriving before teardown gets a terminal page and no side effects.
	var handleOnce sync.Once
	mux := http.NewServeMux()
	mux.HandleFunc(CallbackPath, func(w http.ResponseWriter, r *http.Request) {
		handled := false
		handleOnce.Do(func() {
			handled = true

			code := r.URL.Query().Get("code")
			if code == "" {
				w.WriteHeader(http.StatusBadRequest)
				fmt.Fprint(w, "Authentication failed: no authorization code was received. You can close this window.")
				deliver(callbackResult{err: ErrNoCode})
				return
			}

			token, err := a.config.Exchange(r.Context(), code)
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				fmt.Fprint(w, "Authentication failed: the authorization code could not be exchanged. You can close this window.")
				deliver(callbackResult{err: fmt.Errorf("failed to exchange authorization code: %w", err)})
				return
			}

			if err := a.store.Save(token); err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				fmt.Fprint(w, "Authentication failed: the token set could not be saved. You can close this window.")
				deliver(callbackResult{err: err})
				return
			}

			fmt.Fprint(w, "Authentication successful! You can close this window and return to the terminal.")
			deliver(callbackResult{token: token})
		})
		if !handled {
			w.WriteHeader(http.StatusConflict)
			fmt.Fprint(w, "Authentication already completed. You can close this window.")
		}
	})

	server := &http.Server{Handler: mux}
	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			deliver(callbackResult{err: fmt.Errorf("OAuth callback listener failed: %w", err)})
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			server.Close()
		}
	}()

	authURL := a.config.AuthCodeURL("state", oauth2.AccessTypeOffline)
	fmt.Printf("Please visit this URL to authorize the application:\n%s\n", authURL)
	openBrowser(authURL)

	logger := logging.WithOperation(a.logger, "authenticate")

	select {
	case res := <-resultCh:
		if res.err != nil {
			logger.Warn("interactive authentication failed", logging.Err(res.err))
			return nil, res.err
		}
		logger.Info("interactive authentication completed",
			slog.String("credentials", a.store.Path()),
			slog.String("access_token", logging.SanitizeToken(res.token.AccessToken)))
		return res.token, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// openBrowser tries to open the URL in the default browser. Failure is not
// an error; the URL is already printed for manual use.
func openBrowser(url string) {
	var err error
	switch runtime.GOOS {
	case "linux":
		err = exec.Command("xdg-open", url).Start()
	case "windows":
		err = exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	case "darwin":
		err = exec.Command("open", url).Start()
	default:
		err = fmt.Errorf("unsupported platform")
	}
	if err != nil {
		fmt.Printf("Could not open browser automatically: %v\n", err)
	}
}
