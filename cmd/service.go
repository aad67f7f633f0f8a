package cmd

import (
	"net"
	"net/http"

	"github.com/isometry/cakto-webhook-app/internal/config"
	"github.com/spf13/cobra"
)

func cmdService() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "service",
		Aliases: []string{"s", "serve", "standalone", "server"},
		Short:   "Serve the webhook over plain HTTP",
		PreRunE: func(_ *cobra.Command, _ []string) error {
			logger.Info("Spawning...")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger.Debug("Creating runtime...")
			rtm, err := setup(cmd.Context())
			if err != nil {
				return err
			}

			logger.Debug("Creating HTTP server...")
			h := http.NewServeMux()
			h.Handle(config.Service.Path, rtm)

			s := &http.Server{
				Handler:      h,
				Addr:         net.JoinHostPort(config.Service.Addr, config.Service.Port),
				WriteTimeout: config.Service.Timeout,
				ReadTimeout:  config.Service.Timeout,
				IdleTimeout:  config.Service.Timeout,
			}

			logger.Info("Serving...", "address", s.Addr, "path", config.Service.Path, "timeout", config.Service.Timeout.String())
			return s.ListenAndServe()
		},
	}

	bindEnvMap(cmd, svcEnvMapString)
	bindEnvMap(cmd, svcEnvMapDuration)
	return cmd
}
