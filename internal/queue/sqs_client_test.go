package queue

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

type fakeSender struct {
	inputs []*sqs.SendMessageInput
	err    error
}

func (f *fakeSender) SendMessage(ctx context.Context, in *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.inputs = append(f.inputs, in)
	if f.err != nil {
		return nil, f.err
	}
	return &sqs.SendMessageOutput{MessageId: aws.String("m-1")}, nil
}

func TestSendEncodesMessage(t *testing.T) {
	fake := &fakeSender{}
	c := &SQSClient{client: fake, queueURL: "https://sqs.example/queue"}

	err := c.Send(context.Background(), Message{AnalysisID: "a-1", Status: "completed", SettledAt: "2026-01-30T22:00:00Z"})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(fake.inputs) != 1 {
		t.Fatalf("expected one send, got %d", len(fake.inputs))
	}
	in := fake.inputs[0]
	if aws.ToString(in.QueueUrl) != "https://sqs.example/queue" {
		t.Fatalf("unexpected queue url %q", aws.ToString(in.QueueUrl))
	}
	msg, err := DecodeMessage([]byte(aws.ToString(in.MessageBody)))
	if err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if msg.AnalysisID != "a-1" || msg.Version != MessageVersion {
		t.Fatalf("unexpected body %+v", msg)
	}
	if got := aws.ToString(in.MessageAttributes["status"].StringValue); got != "completed" {
		t.Fatalf("expected status attribute, got %q", got)
	}
}

func TestSendWrapsErrors(t *testing.T) {
	boom := errors.New("throttled")
	c := &SQSClient{client: &fakeSender{err: boom}, queueURL: "q"}
	if err := c.Send(context.Background(), Message{AnalysisID: "a"}); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestNewSQSClientRequiresURL(t *testing.T) {
	if _, err := NewSQSClient(context.Background(), " ", ""); err == nil {
		t.Fatalf("expected error without a queue url")
	}
}
