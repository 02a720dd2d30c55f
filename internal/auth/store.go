package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/teemow/tasknotes/internal/instrumentation"
	"github.com/teemow/tasknotes/internal/logging"
)

const (
	// expirySkew is the safety margin against clock skew and in-flight
	// request latency. A token within this margin of its expiry is
	// refreshed before use.
	expirySkew = 60 * time.Second

	// redirectOOB is the out-of-band redirect URI for the pasted-code
	// login flow.
	redirectOOB = "urn:ietf:wg:oauth:2.0:oob"

	// tasksScope grants full access to the user's Google Tasks.
	tasksScope = "https://www.googleapis.com/auth/tasks"
)

// Store holds the current bearer token state and applies the refresh
// policy. All methods are safe for concurrent use; refreshes are
// serialized so concurrent callers observing the same stale token trigger
// exactly one refresh call.
type Store struct {
	mu           sync.Mutex
	clientID     string
	clientSecret string
	endpoint     oauth2.Endpoint
	token        *TokenData

	sink       TokenSink
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *instrumentation.Metrics
	now        func() time.Time
}

// NewStore creates a token store against the Google OAuth2 endpoints.
// sink may be nil when token state should not be persisted.
func NewStore(sink TokenSink, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		endpoint:   google.Endpoint,
		sink:       sink,
		httpClient: http.DefaultClient,
		logger:     logger,
		now:        time.Now,
	}
}

// SetCredentials hot-swaps the OAuth client credentials. Held tokens stay
// valid; the new credentials are used from the next provider call on.
func (s *Store) SetCredentials(clientID, clientSecret string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clientID = clientID
	s.clientSecret = clientSecret
}

// SetEndpoint overrides the provider endpoints. Used by tests; production
// code keeps the Google defaults.
func (s *Store) SetEndpoint(endpoint oauth2.Endpoint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.endpoint = endpoint
}

// SetHTTPClient overrides the HTTP client used for provider calls.
func (s *Store) SetHTTPClient(client *http.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.httpClient = client
}

// SetMetrics installs a recorder for refresh outcomes. May be nil.
func (s *Store) SetMetrics(metrics *instrumentation.Metrics) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics = metrics
}

// SetToken installs previously persisted token state, e.g. at startup.
func (s *Store) SetToken(token *TokenData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token.Clone()
}

// Token returns a copy of the held token state, or nil when signed out.
func (s *Store) Token() *TokenData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token.Clone()
}

// Authenticated reports whether a complete session is held: a token with
// a refresh token. An access token alone is a degraded session that will
// die at expiry, so it does not count.
func (s *Store) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != nil && s.token.RefreshToken != ""
}

// AuthCodeURL returns the provider URL the user visits to obtain an
// authorization code for Exchange.
func (s *Store) AuthCodeURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	conf := &oauth2.Config{
		ClientID:     s.clientID,
		ClientSecret: s.clientSecret,
		Endpoint:     s.endpoint,
		RedirectURL:  redirectOOB,
		Scopes:       []string{tasksScope},
	}
	return conf.AuthCodeURL("state", oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// Exchange sends a one-time authorization code to the token endpoint and
// stores the resulting token. The expiry is now plus the provider-reported
// lifetime.
func (s *Store) Exchange(ctx context.Context, code string) (*TokenData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	form := url.Values{
		"grant_type":    {"authorization_code"},
		"code":          {code},
		"client_id":     {s.clientID},
		"client_secret": {s.clientSecret},
		"redirect_uri":  {redirectOOB},
	}

	resp, err := s.tokenRequest(ctx, form)
	if err != nil {
		return nil, err
	}
	if resp.Error != "" {
		return nil, &ExchangeError{Message: resp.errorMessage()}
	}

	s.token = &TokenData{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		Expiry:       s.now().Add(time.Duration(resp.ExpiresIn) * time.Second),
		TokenType:    "bearer",
	}
	s.persistLocked()

	s.logger.Info("authorization code exchanged",
		logging.Operation("exchange"),
		slog.Bool("has_refresh_token", s.token.RefreshToken != ""),
		slog.Time("expiry", s.token.Expiry))

	return s.token.Clone(), nil
}

// Refresh replaces the access token and expiry using the held refresh
// token. The refresh token itself is kept: providers may omit it on
// refresh responses.
func (s *Store) Refresh(ctx context.Context) (*TokenData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.refreshLocked(ctx); err != nil {
		return nil, err
	}
	return s.token.Clone(), nil
}

// AccessToken returns a currently valid access token, refreshing first
// when the held token is within the expiry safety margin. Refresh
// failures propagate; they never clear stored tokens.
func (s *Store) AccessToken(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token == nil {
		return "", ErrNotAuthenticated
	}
	if !s.now().Before(s.token.Expiry.Add(-expirySkew)) {
		if err := s.refreshLocked(ctx); err != nil {
			return "", err
		}
	}
	return s.token.AccessToken, nil
}

// SignOut clears the held token and persists the cleared state. This is
// the only path that invalidates tokens.
func (s *Store) SignOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = nil
	s.persistLocked()
	s.logger.Info("signed out", logging.Operation("sign_out"))
}

func (s *Store) refreshLocked(ctx context.Context) error {
	if s.token == nil {
		return ErrNotAuthenticated
	}
	if s.token.RefreshToken == "" {
		return ErrNoRefreshToken
	}

	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {s.token.RefreshToken},
		"client_id":     {s.clientID},
		"client_secret": {s.clientSecret},
	}

	resp, err := s.tokenRequest(ctx, form)
	if err != nil {
		s.metrics.RecordTokenRefresh(ctx, instrumentation.RefreshResultFailure)
		return err
	}
	if resp.Error != "" {
		s.metrics.RecordTokenRefresh(ctx, instrumentation.RefreshResultFailure)
		return &RefreshError{Message: resp.errorMessage()}
	}

	s.token.AccessToken = resp.AccessToken
	s.token.Expiry = s.now().Add(time.Duration(resp.ExpiresIn) * time.Second)
	if resp.RefreshToken != "" {
		s.token.RefreshToken = resp.RefreshToken
	}
	s.persistLocked()
	s.metrics.RecordTokenRefresh(ctx, instrumentation.RefreshResultSuccess)

	s.logger.Debug("access token refreshed",
		logging.Operation("refresh"),
		slog.String("token", logging.SanitizeToken(s.token.AccessToken)),
		slog.Time("expiry", s.token.Expiry))

	return nil
}

// persistLocked saves the current token state through the sink. A save
// failure is logged but does not fail the lifecycle transition; the token
// held in memory stays authoritative for this process.
func (s *Store) persistLocked() {
	if s.sink == nil {
		return
	}
	if err := s.sink.SaveToken(s.token.Clone()); err != nil {
		s.logger.Warn("failed to persist token state", logging.Err(err))
	}
}

// tokenResponse is the provider's JSON token endpoint response.
type tokenResponse struct {
	AccessToken      string `json:"access_token"`
	RefreshToken     string `json:"refresh_token"`
	ExpiresIn        int64  `json:"expires_in"`
	TokenType        string `json:"token_type"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func (r *tokenResponse) errorMessage() string {
	if r.ErrorDescription != "" {
		return fmt.Sprintf("%s: %s", r.Error, r.ErrorDescription)
	}
	return r.Error
}

// tokenRequest posts a form-encoded body to the token endpoint and decodes
// the JSON response. Provider-reported errors are returned in the response
// body, not as a Go error; transport failures are.
func (s *Store) tokenRequest(ctx context.Context, form url.Values) (*tokenResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	httpResp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token endpoint request failed: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read token response: %w", err)
	}

	var resp tokenResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}
	return &resp, nil
}
