package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/karanja-droid/geo-miner-ai-sub000/internal/client/api"
	"github.com/karanja-droid/geo-miner-ai-sub000/internal/client/config"
	sessionrepo "github.com/karanja-droid/geo-miner-ai-sub000/internal/client/repositories/session"
	"github.com/karanja-droid/geo-miner-ai-sub000/internal/client/services"
	"github.com/karanja-droid/geo-miner-ai-sub000/internal/logging"

	_ "modernc.org/sqlite"
)

// refreshCheckInterval is how often the background watcher inspects the
// current token for upcoming expiry.
const refreshCheckInterval = 30 * time.Second

// App ties the session manager, the dataset service and the REPL together.
// It also acts as the Navigator: an expired session drops the user back to
// the login prompt.
type App struct {
	config   *config.Config
	session  *services.SessionManager
	datasets *services.DatasetService
	logger   logging.Logger
	db       *sql.DB
	reader   *bufio.Reader
}

func NewApp(cfg *config.Config, logger logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := sessionrepo.InitDatabase(ctx, cfg.StoreDSN)
	if err != nil {
		logger.Error(ctx, "error initializing session store", "error", err)
		return nil, err
	}

	store := sessionrepo.NewSQLiteStore(db)

	client := api.New(cfg.APIBaseURL)
	client.SetTimeout(cfg.RequestTimeout)
	client.SetRetryAfterDefault(cfg.RetryAfterDefault)

	app := &App{
		config: cfg,
		logger: logger,
		db:     db,
		reader: bufio.NewReader(os.Stdin),
	}

	app.session = services.NewSessionManager(client, store, app, logger)
	app.datasets = services.NewDatasetService(client, logger)

	return app, nil
}

// NavigateToLogin satisfies services.Navigator. In a terminal client there
// is no page to route to, so the user is told to authenticate again.
func (a *App) NavigateToLogin() {
	printlnFn("Session expired. Please log in again.")
}

func (a *App) isLoggedIn() bool {
	return a.session.State().IsAuthenticated
}

func (a *App) status() string {
	state := a.session.State()
	if state.IsAuthenticated && state.User != nil {
		return fmt.Sprintf("(%s)", state.User.Email)
	}
	return ""
}

// Run restores any stored session, starts the token-refresh watcher and
// hands control to the REPL. It blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.db.Close()

	printlnFn("GeoVision CLI (type 'help' for commands)")

	a.session.VerifySession(ctx)

	go a.StartRefreshWatcher(ctx, refreshCheckInterval)

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

// StartRefreshWatcher periodically checks whether the current access token
// is about to expire and refreshes it ahead of time. It returns when ctx is
// cancelled.
func (a *App) StartRefreshWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if !a.session.NeedsRefresh(a.config.RefreshLeeway) {
				continue
			}
			rctx, cancel := context.WithTimeout(context.Background(), a.config.RequestTimeout)
			err := a.session.RefreshToken(rctx)
			cancel()
			if err != nil {
				a.logger.Warn(ctx, "background token refresh failed", "error", err)
			}

		case <-ctx.Done():
			return
		}
	}
}
