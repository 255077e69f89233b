package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"skincare-client/internal/queue"
	"skincare-client/internal/results"
	"skincare-client/internal/shared/telemetry"
)

type fakeSQS struct {
	deleted []string
}

func (f *fakeSQS) ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
	return &sqs.ReceiveMessageOutput{}, nil
}

func (f *fakeSQS) DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error) {
	f.deleted = append(f.deleted, aws.ToString(params.ReceiptHandle))
	return &sqs.DeleteMessageOutput{}, nil
}

type fakeWarmer struct {
	err error
}

func (f fakeWarmer) Result(ctx context.Context, analysisID string) (results.View, error) {
	return results.View{AnalysisID: analysisID}, f.err
}

func settleMessage(t *testing.T, id string, msg queue.Message) sqstypes.Message {
	t.Helper()
	body, err := queue.EncodeMessage(msg)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	return sqstypes.Message{
		MessageId:     aws.String(id),
		ReceiptHandle: aws.String("r-" + id),
		Body:          aws.String(string(body)),
		Attributes:    map[string]string{"ApproximateReceiveCount": "1"},
	}
}

func TestWorkerDeletesMessageOnSuccess(t *testing.T) {
	t.Cleanup(telemetry.SetOutput(&bytes.Buffer{}))
	client := &fakeSQS{}
	msg := settleMessage(t, "m1", queue.Message{AnalysisID: "analysis-1", Status: "completed"})

	handleMessage(context.Background(), client, "queue", fakeWarmer{}, msg)

	if len(client.deleted) != 1 || client.deleted[0] != "r-m1" {
		t.Fatalf("expected delete of r-m1, got %v", client.deleted)
	}
}

func TestWorkerDeletesSkippedStatuses(t *testing.T) {
	t.Cleanup(telemetry.SetOutput(&bytes.Buffer{}))
	client := &fakeSQS{}
	msg := settleMessage(t, "m4", queue.Message{AnalysisID: "analysis-4", Status: "failed"})

	handleMessage(context.Background(), client, "queue", fakeWarmer{err: errors.New("unused")}, msg)

	if len(client.deleted) != 1 {
		t.Fatalf("expected failed-status event to be acknowledged, got %d deletes", len(client.deleted))
	}
}

func TestWorkerDoesNotDeleteOnFailure(t *testing.T) {
	t.Cleanup(telemetry.SetOutput(&bytes.Buffer{}))
	client := &fakeSQS{}
	msg := settleMessage(t, "m2", queue.Message{AnalysisID: "analysis-2", Status: "completed"})

	handleMessage(context.Background(), client, "queue", fakeWarmer{err: errors.New("boom")}, msg)

	if len(client.deleted) != 0 {
		t.Fatalf("expected no delete, got %d", len(client.deleted))
	}
}

func TestWorkerDeletesOnInvalidJSON(t *testing.T) {
	t.Cleanup(telemetry.SetOutput(&bytes.Buffer{}))
	client := &fakeSQS{}
	msg := sqstypes.Message{
		MessageId:     aws.String("m3"),
		ReceiptHandle: aws.String("r3"),
		Body:          aws.String("{bad-json"),
	}

	handleMessage(context.Background(), client, "queue", fakeWarmer{}, msg)

	if len(client.deleted) != 1 {
		t.Fatalf("expected delete, got %d", len(client.deleted))
	}
}
