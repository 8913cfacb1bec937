package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jimiolaniyan/feed/web"
)

func newServeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the feed in the browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, adapter, err := a.openStore()
			if err != nil {
				return err
			}
			defer adapter.Close()

			srv := &http.Server{
				Addr:         a.v.GetString("addr"),
				Handler:      web.NewHandler(store, a.logger),
				ReadTimeout:  15 * time.Second,
				WriteTimeout: 15 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() {
				a.logger.Infow("server started", "addr", srv.Addr, "backend", a.cfg.Backend, "posts", store.Len())
				errc <- srv.ListenAndServe()
			}()

			select {
			case err := <-errc:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			a.logger.Infow("shutting down")
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().String("addr", ":8090", "listen address")
	_ = a.v.BindPFlag("addr", cmd.Flags().Lookup("addr"))
	return cmd
}
