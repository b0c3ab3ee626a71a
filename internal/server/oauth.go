package server

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/curator/internal/shared"
	"golang.org/x/oauth2"
)

// CallbackResult carries the outcome of one authorization callback.
type CallbackResult struct {
	Token *oauth2.Token
	err   error
}

func (c *CallbackResult) Error() error { return c.err }

// CallbackHandler captures a single OAuth2 authorization callback.
//
// The state parameter is checked against the expected value and only the
// first callback is processed; replays get a 400.
type CallbackHandler struct {
	config     *oauth2.Config
	state      string
	resultChan chan CallbackResult
	once       sync.Once

	mu  sync.Mutex
	hit bool
}

// NewCallbackHandler creates a handler expecting the given state token.
func NewCallbackHandler(config *oauth2.Config, state string) *CallbackHandler {
	return &CallbackHandler{
		config:     config,
		state:      state,
		resultChan: make(chan CallbackResult, 1),
	}
}

// Routes implements [Handler].
func (h *CallbackHandler) Routes() []string {
	return []string{"/callback"}
}

func (h *CallbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	if h.hit {
		h.mu.Unlock()
		http.Error(w, "Callback already processed", http.StatusBadRequest)
		return
	}
	h.hit = true
	h.mu.Unlock()

	if r.URL.Query().Get("state") != h.state {
		h.send(CallbackResult{err: fmt.Errorf("invalid state parameter")})
		http.Error(w, "Invalid state parameter", http.StatusBadRequest)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		h.send(CallbackResult{err: fmt.Errorf("authorization refused: %s - %s",
			r.URL.Query().Get("error"), r.URL.Query().Get("error_description"))})
		http.Error(w, "Authorization failed", http.StatusBadRequest)
		return
	}

	token, err := h.config.Exchange(r.Context(), code)
	if err != nil {
		h.send(CallbackResult{err: fmt.Errorf("token exchange failed: %w", err)})
		http.Error(w, "Token exchange failed", http.StatusInternalServerError)
		return
	}

	h.send(CallbackResult{Token: token})

	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, successPage)
}

// send delivers the result exactly once and closes the channel.
func (h *CallbackHandler) send(result CallbackResult) {
	h.once.Do(func() {
		h.resultChan <- result
		close(h.resultChan)
	})
}

// Result returns the channel that receives the single callback outcome.
func (h *CallbackHandler) Result() <-chan CallbackResult {
	return h.resultChan
}

const successPage = `<!DOCTYPE html>
<html>
<head><title>Session Ready</title></head>
<body style="font-family: sans-serif; text-align: center; padding-top: 4rem;">
  <h1>Session ready</h1>
  <p>Spotify is connected. You can close this window and return to the terminal.</p>
</body>
</html>
`

// Flow runs the full interactive authorization: a temporary local server, the
// browser hop, the callback, and the code exchange.
//
// The server binds the redirect URI's host and port and is torn down before
// Flow returns. The flow fails if the context expires first.
func Flow(ctx context.Context, config *oauth2.Config, logger *log.Logger) (*oauth2.Token, error) {
	redirect, err := url.Parse(config.RedirectURL)
	if err != nil {
		return nil, fmt.Errorf("%w: bad redirect URI: %v", shared.ErrInvalidConfig, err)
	}

	state := shared.GenerateID()
	handler := NewCallbackHandler(config, state)

	router := NewBasicRouter()
	router.Use(LoggingMiddleware(logger))
	router.Handler(handler)

	srv := &http.Server{Addr: redirect.Host, Handler: router}
	errChan := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	authURL := config.AuthCodeURL(state)
	logger.Info("opening browser for authorization", "url", authURL)
	if err := shared.OpenBrowser(authURL); err != nil {
		logger.Warn("could not open browser, visit the URL manually", "error", err)
	}

	select {
	case result := <-handler.Result():
		if result.Error() != nil {
			return nil, result.Error()
		}
		return result.Token, nil
	case err := <-errChan:
		return nil, fmt.Errorf("callback server failed: %w", err)
	case <-ctx.Done():
		return nil, fmt.Errorf("authorization timed out: %w", ctx.Err())
	}
}
