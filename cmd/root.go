package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/olusolaa/infra-board/internal/app"
	"github.com/olusolaa/infra-board/internal/config"
	apperrors "github.com/olusolaa/infra-board/internal/errors"
)

var (
	cfgFile string
	v       = config.NewViper()
)

var rootCmd = &cobra.Command{
	Use:   "infra-board",
	Short: "Groups infrastructure resources into a categorized, validated board.",
	Long: `Infra Board loads resources from a project file, a Terraform state file or a
directory of Terraform configuration, classifies them by category and environment,
resolves deployment badges and validation states, and renders the resulting board
as text or JSON.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := app.BuildApplicationFromViper(cmd.Context(), v)
		if err != nil {
			printError("Application initialization failed", err)
			return err
		}
		if err := application.Run(cmd.Context()); err != nil {
			printError("Board build failed", err)
			return err
		}
		return nil
	},
}

func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// Flag and argument errors come from cobra and have not been printed yet.
		if apperrors.GetCode(err) == apperrors.CodeUnknown {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		}
		os.Exit(apperrors.ExitCode(err))
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "Configuration file path (default is ./.infra-board.yaml or $HOME/.infra-board.yaml)")
	flags.String("store-type", "", "Store type (project, tfstate, tfhcl)")
	flags.StringP("store", "s", "", "Path to the project file, state file or HCL directory")
	flags.String("region", "", "Primary region label for state files")
	flags.String("var-file", "", "Comma separated variable files for HCL directories")
	flags.String("zones", "", "Comma separated availability zones, overriding discovery")
	flags.Bool("aws", false, "Discover availability zones from AWS")
	flags.StringP("output", "o", "", "Output format (text, json)")
	flags.Bool("no-color", false, "Disable colored text output")
	flags.Bool("show-aliases", false, "List materialized deployment aliases in text output")
	flags.Bool("cost", false, "Estimate monthly AWS costs for priced resources")
	flags.String("cost-scenario", "", "Usage scenario for cost estimates (idle, 10_users, 100_users, 1000_users)")
	flags.String("stack-type", "", "Usage profile for cost estimates (3-tier-web-app, serverless-api, static-website, container-platform)")
	flags.String("currency", "", "Currency for cost estimates (USD, EUR, GBP, JPY)")
	flags.String("log-level", "", "Override log level (debug, info, warn, error)")
	flags.String("log-format", "", "Override log format (text, json)")

	bindings := map[string]string{
		"store.type":               "store-type",
		"store.path":               "store",
		"store.region":             "region",
		app.KeyVarFilesOverride:    "var-file",
		app.KeyZonesOverride:       "zones",
		"platform.aws.enabled":     "aws",
		"output.format":            "output",
		"output.text.no_color":     "no-color",
		"output.text.show_aliases": "show-aliases",
		"cost.enabled":             "cost",
		"cost.scenario":            "cost-scenario",
		"cost.stack_type":          "stack-type",
		"cost.currency":            "currency",
		"log.level":                "log-level",
		"log.format":               "log-format",
	}
	for key, flag := range bindings {
		cobra.CheckErr(v.BindPFlag(key, flags.Lookup(flag)))
	}

	rootCmd.AddCommand(watchCmd)
}

func initializeConfig() error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigName(config.FileName)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			wrapped := apperrors.WrapUserFacing(err, apperrors.CodeConfigReadError,
				"failed to read config file", "Check that the configuration file exists and is valid YAML.")
			printError("Configuration failed", wrapped)
			return wrapped
		}
	}
	return nil
}

func printError(prefix string, err error) {
	fmt.Fprintf(os.Stderr, "ERROR: %s: %v\n", prefix, err)
	if msg, suggestion, ok := apperrors.GetUserFacingMessage(err); ok {
		fmt.Fprintf(os.Stderr, "Error Details: %s\n", msg)
		if suggestion != "" {
			fmt.Fprintf(os.Stderr, "Suggestion: %s\n", suggestion)
		}
	}
}
