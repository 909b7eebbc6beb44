package adapthttp

import (
	"context"
	"net/http"

	"bodycomp/internal/app"

	"github.com/coreos/go-oidc/v3/oidc"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// OIDCConfig carries the resolved SSO provider. Enabled is false when
// SSO was not configured.
type OIDCConfig struct {
	Enabled      bool
	Provider     *oidc.Provider
	OAuth2Config *oauth2.Config
}

// NewOIDC discovers the provider endpoints and builds the OAuth2
// configuration used by the SSO handlers.
func NewOIDC(ctx context.Context, issuer, clientID, clientSecret, redirectURL string) (*OIDCConfig, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, err
	}
	return &OIDCConfig{
		Enabled:  true,
		Provider: provider,
		OAuth2Config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
	}, nil
}

// Options bundles the non-service wiring for the HTTP adapter.
type Options struct {
	WebDir    string
	AdminUser string
	Logger    *zap.Logger
	OIDC      *OIDCConfig
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	authSvc    *app.AuthService
	profileSvc *app.ProfileService
	evalSvc    *app.EvaluationService
	statsSvc   *app.StatsService

	webDir     string
	adminUser  string
	logger     *zap.Logger
	oidcConfig *OIDCConfig

	disableAuth bool // tests only
}

// New creates a Server wired to the given application services.
func New(auth *app.AuthService, profile *app.ProfileService, evals *app.EvaluationService, stats *app.StatsService, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	oc := opts.OIDC
	if oc == nil {
		oc = &OIDCConfig{}
	}
	return &Server{
		authSvc:    auth,
		profileSvc: profile,
		evalSvc:    evals,
		statsSvc:   stats,
		webDir:     opts.WebDir,
		adminUser:  opts.AdminUser,
		logger:     logger,
		oidcConfig: oc,
	}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	api.HandleFunc("/config", s.handleConfig)

	api.HandleFunc("/auth/register", s.handleRegister)
	api.HandleFunc("/auth/login", s.handleLogin)
	api.HandleFunc("/auth/logout", s.handleLogout)
	api.HandleFunc("/auth/sso/login", s.handleSSOLogin)
	api.HandleFunc("/auth/sso/callback", s.handleSSOCallback)

	protected := func(h http.HandlerFunc) http.Handler {
		return s.authMiddleware(h)
	}
	api.Handle("/auth/change-password", protected(s.handleChangePassword))
	api.Handle("/auth/me", protected(s.handleMe))
	api.Handle("/profile", protected(s.handleProfile))
	api.Handle("/evaluations", protected(s.handleEvaluations))
	api.Handle("/evaluations/", protected(s.handleEvaluationByID))
	api.Handle("/admin/stats", protected(s.handleAdminStats))
	api.Handle("/admin/database", protected(s.handleAdminDatabase))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))
	root.Handle("/", spaFromDisk(s.webDir))

	return s.loggingMiddleware(withNoCache(root))
}
