// Package app wires the lifecycle tracker to AWS and Jira from a loaded configuration.
package app

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/sirupsen/logrus"
	"github.com/younsl/ebsreaper/internal/config"
	awsclient "github.com/younsl/ebsreaper/pkg/aws"
	"github.com/younsl/ebsreaper/pkg/jira"
	"github.com/younsl/ebsreaper/pkg/lifecycle"
	"github.com/younsl/ebsreaper/pkg/pricing"
)

// App holds the clients shared by the run and status commands
type App struct {
	Config  *config.Config
	AWS     aws.Config
	Volumes *awsclient.EBSClient
	Params  *awsclient.ParameterStore
	Log     *logrus.Entry
}

// New loads the AWS configuration and creates the volume and parameter clients
func New(ctx context.Context, cfg *config.Config, log *logrus.Entry) (*App, error) {
	awsCfg, err := awsclient.LoadConfig(ctx, cfg.Region)
	if err != nil {
		return nil, err
	}
	log.WithField("region", awsCfg.Region).Debug("Loaded AWS configuration")

	return &App{
		Config:  cfg,
		AWS:     awsCfg,
		Volumes: awsclient.NewEBSClient(awsCfg),
		Params:  awsclient.NewParameterStore(awsCfg),
		Log:     log,
	}, nil
}

// StateStore returns the store of the persisted cleanup cycle
func (a *App) StateStore() *lifecycle.StateStore {
	return lifecycle.NewStateStore(a.Params, a.Config.InitialDateParam(), a.Config.TicketIDParam())
}

// Tracker builds the lifecycle tracker, reading the Jira token from the parameter store
func (a *App) Tracker(ctx context.Context) (*lifecycle.Tracker, error) {
	token, err := a.Params.GetSecret(ctx, a.Config.JiraTokenName)
	if err != nil {
		return nil, fmt.Errorf("error reading jira token: %w", err)
	}

	issues, err := jira.NewClient(a.Config.JiraURL, a.Config.JiraLogin(), token)
	if err != nil {
		return nil, err
	}

	opts := []lifecycle.Option{lifecycle.WithLogger(a.Log)}
	if a.Config.EstimateCost {
		opts = append(opts, lifecycle.WithCostEstimator(pricing.EBSEstimator{}))
	}
	if a.Config.MetricsNamespace != "" {
		opts = append(opts, lifecycle.WithMetrics(awsclient.NewMetricsPublisher(a.AWS, a.Config.MetricsNamespace)))
	}
	if a.Config.ReportBucket != "" {
		opts = append(opts, lifecycle.WithReportArchiver(awsclient.NewReportArchiver(a.AWS, a.Config.ReportBucket)))
	}

	return lifecycle.NewTracker(a.Config, a.Volumes, a.Params, issues, opts...), nil
}
