// Package trigger consumes storage-object notifications and turns each record
// into one ingestion attempt. Delivery is at-least-once: retryable failures
// leave the message on the queue for redelivery, terminal ones delete it.
package trigger

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/cockroachdb/errors"
	"github.com/objectflow/ingester/internals/ingestion"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
)

// Poller long-polls an SQS queue and feeds the orchestrator. Attempts for
// different messages run concurrently on a bounded worker pool; attempts are
// independent, so no ordering is guaranteed between them.
type Poller struct {
	client       *sqs.Client
	queueURL     string
	orchestrator *ingestion.Orchestrator
	pool         *ants.Pool
}

// NewPoller returns a Poller with a worker pool of maxWorkers attempts.
func NewPoller(client *sqs.Client, queueURL string, orchestrator *ingestion.Orchestrator, maxWorkers int) (*Poller, error) {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	pool, err := ants.NewPool(maxWorkers)
	if err != nil {
		return nil, errors.Wrap(err, "create worker pool")
	}
	return &Poller{
		client:       client,
		queueURL:     queueURL,
		orchestrator: orchestrator,
		pool:         pool,
	}, nil
}

// Run polls until the context is cancelled.
func (p *Poller) Run(ctx context.Context) {
	zap.L().Info("Starting SQS poller", zap.String("queueUrl", p.queueURL))

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("SQS poller stopped")
			return
		default:
		}

		output, err := p.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:            aws.String(p.queueURL),
			MaxNumberOfMessages: 10,
			WaitTimeSeconds:     20,
		})
		if err != nil {
			if ctx.Err() != nil {
				zap.L().Info("SQS poller stopped")
				return
			}
			zap.L().Error("ReceiveMessage", zap.Error(err))
			continue
		}

		for _, message := range output.Messages {
			message := message
			if err := p.pool.Submit(func() { p.handleMessage(ctx, message) }); err != nil {
				zap.L().Error("Submit message to pool", zap.Error(err))
			}
		}
	}
}

// Close releases the worker pool. In-flight attempts keep running until the
// process context is cancelled.
func (p *Poller) Close() {
	p.pool.Release()
}

func (p *Poller) handleMessage(ctx context.Context, message sqstypes.Message) {
	if message.Body == nil {
		zap.L().Warn("Received message without body")
		p.deleteMessage(ctx, message)
		return
	}

	files, err := decodeEvent(*message.Body)
	if err != nil {
		zap.L().Warn("Undecodable storage event, dropping message", zap.Error(err))
		p.deleteMessage(ctx, message)
		return
	}
	if len(files) == 0 {
		zap.L().Warn("Storage event contains no file records")
		p.deleteMessage(ctx, message)
		return
	}

	retryable := false
	for _, file := range files {
		if _, err := p.orchestrator.ProcessFile(ctx, file); err != nil {
			if ingestion.Retryable(err) {
				retryable = true
			}
			// Non-retryable failures are already logged by the orchestrator;
			// redelivering them would only poison the queue.
		}
	}

	if retryable {
		zap.L().Info("Leaving message on queue for redelivery",
			zap.Stringp("messageId", message.MessageId))
		return
	}
	p.deleteMessage(ctx, message)
}

func (p *Poller) deleteMessage(ctx context.Context, message sqstypes.Message) {
	if message.ReceiptHandle == nil {
		return
	}
	_, err := p.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(p.queueURL),
		ReceiptHandle: message.ReceiptHandle,
	})
	if err != nil {
		zap.L().Error("DeleteMessage", zap.Error(err))
	}
}
