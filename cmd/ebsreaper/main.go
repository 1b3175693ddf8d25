package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/younsl/ebsreaper/internal/app"
	"github.com/younsl/ebsreaper/internal/config"
	"github.com/younsl/ebsreaper/internal/version"
)

// lambdaRuntimeEnv is set by the Lambda runtime in every function container
const lambdaRuntimeEnv = "AWS_LAMBDA_RUNTIME_API"

func main() {
	rootCmd := newRootCmd(config.New())

	// Inside Lambda the bootstrap runs the binary without arguments
	if os.Getenv(lambdaRuntimeEnv) != "" && len(os.Args) == 1 {
		rootCmd.SetArgs([]string{"lambda"})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	var (
		showVersion bool
		envFile     string
	)

	rootCmd := &cobra.Command{
		Use:   "ebsreaper",
		Short: "Tag, track and delete unattached EBS volumes",
		Long: `ebsreaper gives every unattached EBS volume a TTL tag, counts it down on
each scheduled run, keeps a Jira ticket updated about the volumes and deletes
them once the TTL reaches zero.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if envFile == "" {
				return nil
			}
			if err := godotenv.Load(envFile); err != nil {
				return fmt.Errorf("error loading env file %s: %w", envFile, err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Fprintln(cmd.OutOrStdout(), version.Get())
				return nil
			}
			return cmd.Help()
		},
	}

	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "Show version information")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Load environment variables from a dotenv file first")
	rootCmd.PersistentFlags().StringP("region", "r", "", "AWS region (default: AWS_REGION, then instance metadata)")
	rootCmd.PersistentFlags().String("log-level", config.DefaultLogLevel, "Log level (debug, info, warn, error)")

	// Flags take precedence over the environment when set
	_ = v.BindPFlag("region", rootCmd.PersistentFlags().Lookup("region"))
	_ = v.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(
		newRunCmd(v),
		newStatusCmd(v),
		newLambdaCmd(v),
	)
	return rootCmd
}

// setup validates the configuration and prepares logging for a command
func setup(v *viper.Viper, jsonLogs bool) (*config.Config, *logrus.Entry, error) {
	cfg, err := config.FromViper(v)
	if err != nil {
		return nil, nil, err
	}
	log, err := app.ConfigureLogging(cfg.LogLevel, jsonLogs)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}
