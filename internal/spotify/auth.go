package spotify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/alessandroseni/spotisync/internal/config"
	"github.com/alessandroseni/spotisync/internal/logger"
)

// Authentication errors.
var (
	ErrMissingCredentials = errors.New("missing spotify client credentials")
	ErrStateMismatch      = errors.New("authorization state mismatch")
	ErrNoAuthCode         = errors.New("no authorization code in callback")
)

// Account service endpoints for the authorization-code flow.
const (
	authURL  = "https://accounts.spotify.com/authorize"
	tokenURL = "https://accounts.spotify.com/api/token"
)

// Scope sets requested per flow.
var (
	// ProfileScopes covers the read endpoints of the discovery pipeline.
	ProfileScopes = []string{"user-top-read", "user-library-read", "user-follow-read", "user-read-recently-played"}

	// LibraryScopes covers the snapshot refresh endpoints.
	LibraryScopes = []string{"user-library-read", "user-top-read"}

	// SyncScopes covers liked-song reads and playlist writes.
	SyncScopes = []string{"user-library-read", "playlist-modify-public", "playlist-modify-private"}
)

// Authenticator walks the authorization-code flow and caches the token
// on disk so later runs skip the browser round trip.
type Authenticator struct {
	oauth     *oauth2.Config
	tokenFile string
	logger    *logger.Logger
}

// NewAuthenticator creates an authenticator for the given credentials
// and scope set.
func NewAuthenticator(cfg config.SpotifyConfig, scopes []string, log *logger.Logger) (*Authenticator, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, ErrMissingCredentials
	}

	return &Authenticator{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  authURL,
				TokenURL: tokenURL,
			},
		},
		tokenFile: cfg.TokenFile,
		logger:    log,
	}, nil
}

// Client returns an HTTP client that injects the user's access token
// and refreshes it as needed. The first run opens the browser
// authorization flow; refreshed tokens are written back to the cache.
func (a *Authenticator) Client() (*http.Client, error) {
	ctx := context.Background()

	token, err := a.loadToken()
	if err != nil || (!token.Valid() && token.RefreshToken == "") {
		if err != nil {
			a.logger.Debug(fmt.Sprintf("No usable token cache: %v", err))
		}

		token, err = a.authorize(ctx)
		if err != nil {
			return nil, fmt.Errorf("authorization failed: %w", err)
		}

		if saveErr := a.saveToken(token); saveErr != nil {
			a.logger.Warn(fmt.Sprintf("⚠️  Could not cache token: %v", saveErr))
		}
	}

	source := &cachingTokenSource{
		source: a.oauth.TokenSource(ctx, token),
		auth:   a,
		last:   token,
	}

	return oauth2.NewClient(ctx, source), nil
}

// authorize runs the browser flow: a local listener on the redirect URI
// captures the code, which is then exchanged for a token.
func (a *Authenticator) authorize(ctx context.Context) (*oauth2.Token, error) {
	callback, err := url.Parse(a.oauth.RedirectURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redirect URI %q: %w", a.oauth.RedirectURL, err)
	}

	state := uuid.NewString()
	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc(callback.Path, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("state") != state {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			errCh <- ErrStateMismatch

			return
		}

		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing authorization code", http.StatusBadRequest)
			errCh <- ErrNoAuthCode

			return
		}

		fmt.Fprint(w, "Authorization complete. You can close this tab and return to the terminal.")
		codeCh <- code
	})

	server := &http.Server{Addr: callback.Host, Handler: mux}
	defer func() {
		_ = server.Shutdown(context.Background())
	}()

	go func() {
		if serveErr := server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errCh <- fmt.Errorf("callback listener failed: %w", serveErr)
		}
	}()

	a.logger.Info("🔐 Spotify authorization required")
	a.logger.Info(fmt.Sprintf("Open this URL in your browser:\n\n%s\n", a.oauth.AuthCodeURL(state)))

	var code string
	select {
	case code = <-codeCh:
	case flowErr := <-errCh:
		return nil, flowErr
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	token, err := a.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("code exchange failed: %w", err)
	}

	a.logger.Info("✅ Authorized with Spotify")

	return token, nil
}

func (a *Authenticator) loadToken() (*oauth2.Token, error) {
	data, err := os.ReadFile(a.tokenFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read token cache: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to parse token cache: %w", err)
	}

	return &token, nil
}

func (a *Authenticator) saveToken(token *oauth2.Token) error {
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	if err := os.WriteFile(a.tokenFile, data, 0600); err != nil {
		return fmt.Errorf("failed to write token cache: %w", err)
	}

	return nil
}

// cachingTokenSource writes refreshed tokens back to the cache file so
// the next run reuses them.
type cachingTokenSource struct {
	source oauth2.TokenSource
	auth   *Authenticator
	mu     sync.Mutex
	last   *oauth2.Token
}

func (s *cachingTokenSource) Token() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, err := s.source.Token()
	if err != nil {
		return nil, err
	}

	if s.last == nil || token.AccessToken != s.last.AccessToken {
		s.last = token
		if saveErr := s.auth.saveToken(token); saveErr != nil {
			s.auth.logger.Warn(fmt.Sprintf("⚠️  Could not cache refreshed token: %v", saveErr))
		}
	}

	return token, nil
}
