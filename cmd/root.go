// Package cmd provides the entrypoint for the cakto-webhook-app cli.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/isometry/cakto-webhook-app/internal/config"
	"github.com/isometry/cakto-webhook-app/internal/helpers"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configFilePath string
	logger         = helpers.NewNoopLogger()
)

// New returns the root command for the cakto-webhook-app.
func New() *cobra.Command {
	var lambdaCmd, serviceCmd *cobra.Command

	cmd := &cobra.Command{
		Use:          "cakto-webhook-app",
		Short:        "Receives Cakto purchase webhooks and emails the purchaser",
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			config.Global.Mode = strings.TrimSpace(config.Global.Mode)
			logger = helpers.NewJSONLogger(os.Stdout, config.Global.Logging.Verbosity, config.Global.Logging.CallerTrace).
				With("mode", config.Global.Mode)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch config.Global.Mode {
			case config.ModeService:
				return chainCommands(cmd, args, serviceCmd.PreRunE, serviceCmd.RunE)
			case config.ModeLambda:
				return lambdaCmd.RunE(cmd, args)
			default:
				return fmt.Errorf("invalid mode: %s", config.Global.Mode)
			}
		},
	}

	// Root command flags
	cmd.PersistentFlags().StringVarP(&configFilePath, "config", "c", "config.yaml", "path to the configuration file")

	// Configuration loading & defaults
	if err := errors.Join(
		config.LoadFromFile(configFilePath),
		config.SetDefaults(),
	); err != nil {
		panic(err)
	}

	// Dynamic flags
	setupDynamicFlags(cmd)

	// Subcommands
	lambdaCmd, serviceCmd = cmdLambda(), cmdService()
	cmd.AddCommand(
		lambdaCmd,
		serviceCmd,
	)

	return cmd
}

func setupDynamicFlags(cmd *cobra.Command) {
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(replacer)

	bindEnvMap(cmd, envMapString)
	bindEnvMap(cmd, envMapBool)
	bindEnvMap(cmd, envMapCount)
	bindEnvMap(cmd, envMapUint)
	bindEnvMap(cmd, envMapDuration)
}
