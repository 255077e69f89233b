package main

// Build the Lambda handler binary:
//   GOOS=linux GOARCH=amd64 CGO_ENABLED=0 go build -o bootstrap ./cmd/lambda-worker

import (
	"context"
	"log"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"skincare-client/internal/bootstrap"
	"skincare-client/internal/shared/config"
	"skincare-client/internal/workerproc"
)

var (
	initOnce sync.Once
	initErr  error
	warmer   workerproc.Warmer
)

func initApp(ctx context.Context) {
	cfg := config.Load()
	// The worker consumes settle events; it must not publish new ones.
	cfg.SQSQueueURL = ""
	app, err := bootstrap.Build(ctx, cfg)
	if err != nil {
		initErr = err
		return
	}
	warmer = app.Results
}

func handler(ctx context.Context, event events.SQSEvent) (events.SQSEventResponse, error) {
	initOnce.Do(func() { initApp(context.WithoutCancel(ctx)) })
	if initErr != nil {
		log.Printf("bootstrap error: %v", initErr)
		failures := make([]events.SQSBatchItemFailure, 0, len(event.Records))
		for _, record := range event.Records {
			failures = append(failures, events.SQSBatchItemFailure{ItemIdentifier: record.MessageId})
		}
		return events.SQSEventResponse{BatchItemFailures: failures}, initErr
	}
	return processBatch(ctx, warmer, event), nil
}

// processBatch reports retryable failures only; malformed events are dropped.
func processBatch(ctx context.Context, w workerproc.Warmer, event events.SQSEvent) events.SQSEventResponse {
	failures := make([]events.SQSBatchItemFailure, 0)
	for _, record := range event.Records {
		err := workerproc.HandleMessage(ctx, w, record.Body)
		if err == nil {
			continue
		}
		log.Printf("settle event %s: %v", record.MessageId, err)
		if !workerproc.Permanent(err) {
			failures = append(failures, events.SQSBatchItemFailure{ItemIdentifier: record.MessageId})
		}
	}
	return events.SQSEventResponse{BatchItemFailures: failures}
}

func main() {
	lambda.Start(handler)
}
