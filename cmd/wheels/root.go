package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wheels/wheels-go/internal/api"
	"github.com/wheels/wheels-go/internal/config"
	"github.com/wheels/wheels-go/internal/logger"
	"github.com/wheels/wheels-go/internal/session"
)

// app holds the wiring every command shares: config, the HTTP client
// and the session store.
type app struct {
	cfg     config.Config
	client  *api.Client
	session *session.Store
}

var a app

var rootCmd = &cobra.Command{
	Use:   "wheels",
	Short: "Wheels university carpooling client",
	Long: `wheels is a terminal client for the Wheels carpooling platform:
log in, browse and publish trips, manage seat reservations, register
vehicles and keep an eye on notifications.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		a.cfg = config.Load()
		logger.Setup(a.cfg.LogFile, a.cfg.LogLevel)
		a.client = api.NewClient(api.Options{
			BaseURL:   a.cfg.APIBaseURL,
			Timeout:   a.cfg.HTTPTimeout,
			RateLimit: a.cfg.RateLimit,
			RateBurst: a.cfg.RateBurst,
		})
		a.session = session.NewStore(a.cfg.SessionDir, a.client)
	},
}

// friendly rewrites wire-level failures into the messages users see:
// transport errors collapse to one generic line, auth errors point back
// at login, everything else passes the server's words through.
func friendly(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, api.ErrUnreachable) {
		return errors.New("cannot reach the server, try again later")
	}
	if api.IsAuthError(err) || errors.Is(err, session.ErrNotAuthenticated) {
		return fmt.Errorf("%v (run 'wheels login')", err)
	}
	return err
}
