package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
	"github.com/younsl/ec2-manager/internal/models"
	"github.com/younsl/ec2-manager/internal/version"
	"github.com/younsl/ec2-manager/pkg/aws"
	"github.com/younsl/ec2-manager/pkg/manager"
	"github.com/younsl/ec2-manager/pkg/utils"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		listFlag    bool
		startID     string
		stopID      string
		testMode    bool
		quiet       bool
		verbose     bool
		showVersion bool
		region      string
	)

	rootCmd := &cobra.Command{
		Use:   "ec2-manager (--list | --start INSTANCE | --stop INSTANCE) [--quiet | --verbose] [--test]",
		Short: "CLI tool to list, start and stop EC2 instances",
		Long: `ec2-manager lists, starts and stops EC2 instances in a single AWS account.
Credentials are resolved by the AWS SDK default chain (environment variables,
shared config/credentials files, IMDS).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				info := version.Get()
				fmt.Printf("ec2-manager version %s (built: %s, commit: %s, %s)\n",
					info.Version, info.BuildDate, info.GitCommit, info.GoVersion)
				return nil
			}

			req, err := models.NewRequest(listFlag, startID, stopID, quiet, verbose, testMode)
			if err != nil {
				// Usage errors get the usage text, API errors don't
				cmd.SilenceUsage = false
				return err
			}

			if region != "" && !utils.IsValidRegion(region) {
				cmd.SilenceUsage = false
				return fmt.Errorf("invalid region '%s'", region)
			}

			return run(cmd.Context(), req, region)
		},
	}

	rootCmd.Flags().BoolVarP(&listFlag, "list", "l", false, "List all registered EC2 instances in the account")
	rootCmd.Flags().StringVar(&startID, "start", "", "Start the EC2 instance with the given ID")
	rootCmd.Flags().StringVar(&stopID, "stop", "", "Stop the EC2 instance with the given ID")
	rootCmd.Flags().BoolVar(&testMode, "test", false, "Check permissions without starting or stopping instances")
	rootCmd.Flags().BoolVar(&quiet, "quiet", false, "Print less text")
	rootCmd.Flags().BoolVar(&verbose, "verbose", false, "Print more text")
	rootCmd.Flags().StringVarP(&region, "region", "r", "", "AWS region (default: SDK-resolved region)")
	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "Show version information")

	return rootCmd
}

// run builds the authenticated client and hands the request to the
// dispatcher. In test mode the lifecycle calls go through the dry-run
// client instead, so nothing is mutated.
func run(ctx context.Context, req models.Request, region string) error {
	client, err := aws.NewEC2Client(ctx, region)
	if err != nil {
		return err
	}

	var lister manager.InstanceLister = client
	if req.Action == models.ActionList && req.Verbosity != models.VerbosityQuiet {
		lister = spinnerLister{inner: client}
	}

	var control manager.InstanceControl = client
	if req.DryRun {
		control = aws.NewDryRunClient(client.API())
	}

	return manager.New(lister, control, os.Stdout).Run(ctx, req)
}

// spinnerLister shows a spinner while the describe call is in flight.
type spinnerLister struct {
	inner manager.InstanceLister
}

func (l spinnerLister) ListInstances(ctx context.Context) ([]models.InstanceInfo, error) {
	s := spinner.New(spinner.CharSets[9], 100*time.Millisecond)
	s.Suffix = " Fetching EC2 instances ..."
	s.Writer = os.Stderr
	s.Start()
	defer s.Stop()

	return l.inner.ListInstances(ctx)
}
