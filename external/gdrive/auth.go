package gdrive

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
)

// ErrNotAuthorized marks a missing or unusable saved token; run the
// authorize command to create one.
var ErrNotAuthorized = crerr.New("drive access is not authorized")

// Scope is the only permission the sync needs.
const Scope = drive.DriveReadonlyScope

// LoadOAuthConfig reads an installed-app client secrets file.
func LoadOAuthConfig(credentialsFile string) (*oauth2.Config, error) {
	raw, err := os.ReadFile(credentialsFile)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return nil, crerr.Newf("missing client secrets %s: download an OAuth desktop client from the Google Cloud console", credentialsFile)
		}
		return nil, crerr.Wrap(err, "read client secrets")
	}
	cfg, err := google.ConfigFromJSON(raw, Scope)
	if err != nil {
		return nil, crerr.Wrap(err, "parse client secrets")
	}
	return cfg, nil
}

func LoadToken(path string) (*oauth2.Token, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return nil, crerr.Mark(crerr.Newf("token file %s not found", path), ErrNotAuthorized)
		}
		return nil, crerr.Wrap(err, "read token file")
	}
	var token oauth2.Token
	if err := sonic.Unmarshal(raw, &token); err != nil {
		return nil, crerr.Mark(crerr.Wrap(err, "decode token file"), ErrNotAuthorized)
	}
	if token.AccessToken == "" && token.RefreshToken == "" {
		return nil, crerr.Mark(crerr.Newf("token file %s holds no credentials", path), ErrNotAuthorized)
	}
	return &token, nil
}

// SaveToken writes token with owner-only permissions, replacing any previous file.
func SaveToken(path string, token *oauth2.Token) error {
	raw, err := sonic.Marshal(token)
	if err != nil {
		return crerr.Wrap(err, "encode token")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return crerr.Wrap(err, "create token dir")
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return crerr.Wrap(err, "write token file")
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return crerr.Wrap(err, "replace token file")
	}
	return nil
}

// savingTokenSource persists refreshed tokens so the next run starts from them.
type savingTokenSource struct {
	mu     sync.Mutex
	base   oauth2.TokenSource
	path   string
	access string
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	token, err := s.base.Token()
	if err != nil {
		return nil, crerr.Mark(crerr.Wrap(err, "refresh drive token"), ErrNotAuthorized)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if token.AccessToken != s.access {
		if err := SaveToken(s.path, token); err != nil {
			return nil, err
		}
		s.access = token.AccessToken
	}
	return token, nil
}

// TokenSource returns a refreshing source seeded from the saved token at
// tokenFile. Refreshed tokens are written back to the same file.
func TokenSource(ctx context.Context, cfg *oauth2.Config, tokenFile string) (oauth2.TokenSource, error) {
	token, err := LoadToken(tokenFile)
	if err != nil {
		return nil, err
	}
	return &savingTokenSource{
		base:   cfg.TokenSource(ctx, token),
		path:   tokenFile,
		access: token.AccessToken,
	}, nil
}

// Authorize runs the installed-app consent flow: it prints the consent URL to
// out, waits for the browser redirect on a loopback listener and exchanges
// the returned code for a token.
func Authorize(ctx context.Context, cfg *oauth2.Config, out io.Writer) (*oauth2.Token, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, crerr.Wrap(err, "listen for oauth redirect")
	}
	defer listener.Close()

	flow := *cfg
	flow.RedirectURL = fmt.Sprintf("http://%s/", listener.Addr().String())
	state := uuid.NewString()

	codes := make(chan string, 1)
	failures := make(chan error, 1)
	server := &http.Server{
		ReadHeaderTimeout: 10 * time.Second,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			query := r.URL.Query()
			switch {
			case query.Get("state") != state:
				http.Error(w, "state mismatch", http.StatusBadRequest)
				return
			case query.Get("error") != "":
				fmt.Fprintln(w, "Authorization was declined. You can close this window.")
				failures <- crerr.Newf("authorization declined: %s", query.Get("error"))
				return
			}
			fmt.Fprintln(w, "Authorization complete. You can close this window.")
			codes <- query.Get("code")
		}),
	}
	go func() {
		if err := server.Serve(listener); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			failures <- err
		}
	}()
	defer func() {
		_ = server.Close()
	}()

	fmt.Fprintf(out, "Open this URL in a browser to grant read access to Google Drive:\n\n%s\n\n",
		flow.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce))

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case err := <-failures:
		return nil, crerr.Wrap(err, "oauth redirect")
	case code := <-codes:
		token, err := flow.Exchange(ctx, code)
		if err != nil {
			return nil, crerr.Wrap(err, "exchange authorization code")
		}
		return token, nil
	}
}
