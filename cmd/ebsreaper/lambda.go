package main

import (
	"context"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/younsl/ebsreaper/internal/app"
	awsclient "github.com/younsl/ebsreaper/pkg/aws"
	"github.com/younsl/ebsreaper/pkg/lifecycle"
)

// runner is the part of the tracker the handler drives
type runner interface {
	Run(ctx context.Context, account string) (*lifecycle.Result, error)
}

// newHandler returns the handler for scheduled EventBridge invocations.
// The account is taken from the invoked function ARN.
func newHandler(r runner, log *logrus.Entry) func(context.Context, events.CloudWatchEvent) (*lifecycle.Result, error) {
	return func(ctx context.Context, event events.CloudWatchEvent) (*lifecycle.Result, error) {
		lc, ok := lambdacontext.FromContext(ctx)
		if !ok {
			return nil, fmt.Errorf("invocation carries no lambda context")
		}
		account, err := awsclient.AccountFromARN(lc.InvokedFunctionArn)
		if err != nil {
			return nil, err
		}

		log.WithFields(logrus.Fields{
			"request_id": lc.AwsRequestID,
			"event_id":   event.ID,
			"event_time": event.Time,
			"account":    account,
		}).Info("Scheduled invocation")

		return r.Run(ctx, account)
	}
}

func newLambdaCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:    "lambda",
		Short:  "Start the AWS Lambda runtime loop",
		Args:   cobra.NoArgs,
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(v, true)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			a, err := app.New(ctx, cfg, log)
			if err != nil {
				return err
			}
			tracker, err := a.Tracker(ctx)
			if err != nil {
				return err
			}

			lambda.Start(newHandler(tracker, log))
			return nil
		},
	}
}
