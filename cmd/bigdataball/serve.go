package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/JonnyRank/bigdataball-data/internal/app"
	"github.com/JonnyRank/bigdataball-data/internal/interfaces/httpapi"
	"github.com/JonnyRank/bigdataball-data/internal/usecase"
)

func serveCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the summary views and the pipeline job trigger over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.withApp(cmd, func(ctx context.Context, a *app.App) error {
				base := usecase.PipelineInput{
					Jobs:     a.Jobs(),
					Fantasy:  a.Folders(a.Config.Fantasy),
					Player:   a.Folders(a.Config.Player),
					SkipSync: !a.Config.DriveEnabled,
				}
				handler := httpapi.NewHandler(a.Summaries, a.Pipeline, base, a.Logger)
				srv := &http.Server{
					Addr:              a.Config.HTTPAddr,
					Handler:           httpapi.NewRouter(handler, a.Logger, a.Config.InternalJobToken),
					ReadHeaderTimeout: a.Config.HTTPReadTimeout,
					ReadTimeout:       a.Config.HTTPReadTimeout,
				}
				if a.Config.InternalJobToken == "" {
					a.Logger.Warn("INTERNAL_JOB_TOKEN is empty, pipeline job trigger is disabled")
				}

				errCh := make(chan error, 1)
				go func() {
					a.Logger.Info("http server starting", "addr", srv.Addr)
					if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						errCh <- err
					}
					close(errCh)
				}()

				select {
				case err := <-errCh:
					return err
				case <-ctx.Done():
				}

				shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					return err
				}
				a.Logger.Info("http server stopped")
				return nil
			})
		},
	}
}
