package queue

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// Message is a received queue message.
type Message struct {
	ID   string
	Body string
}

// Receiver fetches a batch of messages, waiting up to waitSeconds for at
// least one to arrive.
type Receiver interface {
	Receive(ctx context.Context, maxMessages, waitSeconds int) ([]Message, error)
}

// ReceiveMessageAPI is the subset of the SQS client used here.
type ReceiveMessageAPI interface {
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
}

type SQSReceiver struct {
	client   ReceiveMessageAPI
	queueURL string
}

// NewSQSReceiver builds a receiver from the default AWS credential chain
// (environment, shared config, instance role).
func NewSQSReceiver(ctx context.Context, queueURL string) (*SQSReceiver, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewSQSReceiverWithClient(sqs.NewFromConfig(cfg), queueURL), nil
}

func NewSQSReceiverWithClient(client ReceiveMessageAPI, queueURL string) *SQSReceiver {
	return &SQSReceiver{client: client, queueURL: queueURL}
}

func (r *SQSReceiver) Receive(ctx context.Context, maxMessages, waitSeconds int) ([]Message, error) {
	out, err := r.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
		QueueUrl:            aws.String(r.queueURL),
		MaxNumberOfMessages: int32(maxMessages),
		WaitTimeSeconds:     int32(waitSeconds),
	})
	if err != nil {
		return nil, fmt.Errorf("receive message: %w", err)
	}

	msgs := make([]Message, 0, len(out.Messages))
	for _, m := range out.Messages {
		msgs = append(msgs, Message{
			ID:   aws.ToString(m.MessageId),
			Body: aws.ToString(m.Body),
		})
	}
	return msgs, nil
}
