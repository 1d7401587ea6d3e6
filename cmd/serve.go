package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/yeremiapane/table-booking/router"
	"github.com/yeremiapane/table-booking/services"
	"github.com/yeremiapane/table-booking/utils"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the booking API, staff board and expiry scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(true)
			if err != nil {
				return err
			}
			defer a.Close()

			if port == "" {
				port = a.cfg.Port
			}
			if a.cfg.GinMode == gin.ReleaseMode {
				gin.SetMode(gin.ReleaseMode)
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			snap, err := a.settings.Snapshot()
			if err != nil {
				return err
			}
			expiry, err := services.NewExpiryScheduler(a.bookings, a.cfg.SweepSchedule, snap.Location)
			if err != nil {
				return err
			}
			a.bookings.SetHoldScheduler(expiry)
			expiry.Start()
			defer expiry.Stop()

			// Holds left over from a previous run are cleared before serving.
			if _, err := expiry.RunSweep(); err != nil {
				utils.ErrorLogger.Printf("startup sweep: %v", err)
			}

			if a.relay != nil {
				go func() {
					if err := a.relay.Run(ctx, a.board.HandleEvent); err != nil {
						utils.ErrorLogger.Printf("redis relay stopped: %v", err)
					}
				}()
			}

			r := router.SetupRouter(router.Deps{
				DB:         a.db,
				Board:      a.board,
				Settings:   a.settings,
				Slots:      a.slots,
				Bookings:   a.bookings,
				CORSOrigin: a.cfg.CORSOrigin,
			})

			srv := &http.Server{
				Addr:              ":" + port,
				Handler:           r,
				ReadHeaderTimeout: 10 * time.Second,
			}
			errCh := make(chan error, 1)
			go func() {
				utils.InfoLogger.Printf("Listening on port %s", port)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
			defer stop()
			utils.InfoLogger.Println("Shutting down")
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "listen port (default $PORT or 8080)")
	return cmd
}
