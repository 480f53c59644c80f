package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/aescanero/dago-node-arith/internal/config"
	"github.com/aescanero/dago-node-arith/internal/engine"
	"github.com/aescanero/dago-node-arith/internal/expr"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Worker represents the arithmetic worker
type Worker struct {
	id            string
	config        *config.Config
	redisClient   *redis.Client
	engine        *engine.Engine
	store         *ResultStore
	logger        *zap.Logger
	ctx           context.Context
	cancel        context.CancelFunc
	wg            sync.WaitGroup
	streamKey     string
	consumerGroup string
	resultStream  string
	errorStream   string
}

// NewWorker creates a new worker
func NewWorker(
	cfg *config.Config,
	redisClient *redis.Client,
	eng *engine.Engine,
	store *ResultStore,
	logger *zap.Logger,
) *Worker {
	ctx, cancel := context.WithCancel(context.Background())

	return &Worker{
		id:            cfg.WorkerID,
		config:        cfg,
		redisClient:   redisClient,
		engine:        eng,
		store:         store,
		logger:        logger,
		ctx:           ctx,
		cancel:        cancel,
		streamKey:     cfg.StreamKey,
		consumerGroup: cfg.ConsumerGroup,
		resultStream:  cfg.ResultStream,
		errorStream:   cfg.ResultStream + ".errors",
	}
}

// Start starts the worker
func (w *Worker) Start() error {
	w.logger.Info("starting arithmetic worker",
		zap.String("worker_id", w.id),
		zap.String("stream_key", w.streamKey),
		zap.String("consumer_group", w.consumerGroup),
	)

	if err := w.ensureConsumerGroup(); err != nil {
		return fmt.Errorf("failed to ensure consumer group: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.processWork()
	}()

	w.logger.Info("arithmetic worker started", zap.String("worker_id", w.id))
	return nil
}

// Stop stops the worker and waits for the in-flight message to finish
func (w *Worker) Stop() error {
	w.logger.Info("stopping arithmetic worker", zap.String("worker_id", w.id))

	w.cancel()
	w.wg.Wait()

	w.logger.Info("arithmetic worker stopped", zap.String("worker_id", w.id))
	return nil
}

// ensureConsumerGroup creates the consumer group if it doesn't exist
func (w *Worker) ensureConsumerGroup() error {
	err := w.redisClient.XGroupCreateMkStream(w.ctx, w.streamKey, w.consumerGroup, "0").Err()
	if err != nil {
		if strings.HasPrefix(err.Error(), "BUSYGROUP") {
			w.logger.Debug("consumer group already exists",
				zap.String("group", w.consumerGroup),
			)
			return nil
		}
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	w.logger.Info("created consumer group",
		zap.String("group", w.consumerGroup),
		zap.String("stream", w.streamKey),
	)
	return nil
}

// processWork processes work from the Redis stream
func (w *Worker) processWork() {
	w.logger.Info("starting work processing loop")

	for {
		select {
		case <-w.ctx.Done():
			w.logger.Info("work processing loop stopped")
			return
		default:
		}

		streams, err := w.redisClient.XReadGroup(w.ctx, &redis.XReadGroupArgs{
			Group:    w.consumerGroup,
			Consumer: w.id,
			Streams:  []string{w.streamKey, ">"},
			Count:    1,
			Block:    w.config.BlockTime,
		}).Result()

		if err != nil {
			if errors.Is(err, redis.Nil) || w.ctx.Err() != nil {
				continue
			}
			w.logger.Error("failed to read from stream", zap.Error(err))
			select {
			case <-w.ctx.Done():
			case <-time.After(time.Second):
			}
			continue
		}

		for _, stream := range streams {
			for _, message := range stream.Messages {
				// Finish the message even if Stop is called meanwhile
				w.handleMessage(context.WithoutCancel(w.ctx), message)
			}
		}
	}
}

// WorkRequest represents an evaluation work request
type WorkRequest struct {
	RequestID  string          `json:"request_id"`
	Mode       string          `json:"mode,omitempty"`
	Expression json.RawMessage `json:"expression"`
}

// handleMessage handles a single evaluation request message. The message is
// acknowledged whatever the outcome: evaluation is deterministic, so
// redelivery would fail the same way.
func (w *Worker) handleMessage(ctx context.Context, message redis.XMessage) {
	messageID := message.ID
	w.logger.Debug("processing evaluation request",
		zap.String("message_id", messageID),
	)

	request, err := w.parseWorkRequest(message.Values)
	if err != nil {
		w.logger.Error("failed to parse work request",
			zap.String("message_id", messageID),
			zap.Error(err),
		)
		w.publishError(ctx, request, nil, err)
		w.acknowledgeMessage(ctx, messageID)
		return
	}

	evalRequest, err := w.buildRequest(request)
	if err == nil {
		err = w.processRequest(ctx, evalRequest)
	}
	if err != nil {
		w.logger.Warn("evaluation request failed",
			zap.String("message_id", messageID),
			zap.String("request_id", request.RequestID),
			zap.String("kind", engine.ErrorKind(err)),
			zap.Error(err),
		)
		w.publishError(ctx, request, evalRequest, err)
	}

	w.acknowledgeMessage(ctx, messageID)
}

// parseWorkRequest parses a work request from a Redis message. The returned
// request is non-nil whenever the payload was valid JSON, so failures can
// still be attributed to a request ID.
func (w *Worker) parseWorkRequest(values map[string]interface{}) (*WorkRequest, error) {
	dataStr, ok := values["data"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: missing or invalid 'data' field", expr.ErrMalformed)
	}

	var request WorkRequest
	if err := json.Unmarshal([]byte(dataStr), &request); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal work request: %v", expr.ErrMalformed, err)
	}

	if request.RequestID == "" {
		request.RequestID = uuid.NewString()
	}

	if len(request.Expression) == 0 {
		return &request, fmt.Errorf("%w: request has no expression", expr.ErrMalformed)
	}

	return &request, nil
}

// buildRequest decodes the expression tree and mode of a work request
func (w *Worker) buildRequest(request *WorkRequest) (*engine.Request, error) {
	mode, err := engine.ParseMode(request.Mode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", expr.ErrMalformed, err)
	}

	tree, err := expr.Decode(request.Expression, w.config.MaxNodes)
	if err != nil {
		return nil, fmt.Errorf("failed to decode expression: %w", err)
	}

	return &engine.Request{
		ID:         request.RequestID,
		Mode:       mode,
		Expression: tree,
	}, nil
}

// processRequest evaluates, stores and publishes a request
func (w *Worker) processRequest(ctx context.Context, request *engine.Request) error {
	result, err := w.engine.Evaluate(ctx, request)
	if err != nil {
		return err
	}

	if err := w.store.Save(ctx, result); err != nil {
		// The published event still carries the value
		w.logger.Error("failed to store result",
			zap.String("request_id", result.RequestID),
			zap.Error(err),
		)
	}

	if err := w.publishResult(ctx, result); err != nil {
		return fmt.Errorf("failed to publish result: %w", err)
	}

	return nil
}

// resultEvent is the payload published on the result stream
type resultEvent struct {
	*engine.Result
	WorkerID  string    `json:"worker_id"`
	Timestamp time.Time `json:"timestamp"`
}

// errorEvent is the payload published on the error stream
type errorEvent struct {
	RequestID string    `json:"request_id,omitempty"`
	Kind      string    `json:"kind"`
	Error     string    `json:"error"`
	Summary   string    `json:"summary"`
	WorkerID  string    `json:"worker_id"`
	Timestamp time.Time `json:"timestamp"`
}

// publishResult publishes an evaluation result
func (w *Worker) publishResult(ctx context.Context, result *engine.Result) error {
	data, err := json.Marshal(resultEvent{
		Result:    result,
		WorkerID:  w.id,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	if err := w.publish(ctx, w.resultStream, data); err != nil {
		return err
	}

	w.logger.Info("published evaluation result",
		zap.String("request_id", result.RequestID),
		zap.Int64("value", result.Value),
	)

	return nil
}

// publishError publishes an error event
func (w *Worker) publishError(ctx context.Context, request *WorkRequest, evalRequest *engine.Request, err error) {
	event := errorEvent{
		Kind:      engine.ErrorKind(err),
		Error:     err.Error(),
		Summary:   w.engine.FailureSummary(evalRequest, err),
		WorkerID:  w.id,
		Timestamp: time.Now().UTC(),
	}
	if request != nil {
		event.RequestID = request.RequestID
	}

	data, marshalErr := json.Marshal(event)
	if marshalErr != nil {
		w.logger.Error("failed to marshal error event", zap.Error(marshalErr))
		return
	}

	if publishErr := w.publish(ctx, w.errorStream, data); publishErr != nil {
		w.logger.Error("failed to publish error event", zap.Error(publishErr))
	}
}

// publish adds a payload to a stream, retrying up to MaxRetries times
func (w *Worker) publish(ctx context.Context, stream string, data []byte) error {
	var err error
	for attempt := 0; attempt <= w.config.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * 100 * time.Millisecond):
			}
		}

		err = w.redisClient.XAdd(ctx, &redis.XAddArgs{
			Stream: stream,
			Values: map[string]interface{}{
				"data": string(data),
			},
		}).Err()
		if err == nil {
			return nil
		}

		w.logger.Warn("publish attempt failed",
			zap.String("stream", stream),
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)
	}

	return fmt.Errorf("failed to publish to stream %s: %w", stream, err)
}

// acknowledgeMessage acknowledges a message from the stream
func (w *Worker) acknowledgeMessage(ctx context.Context, messageID string) {
	err := w.redisClient.XAck(ctx, w.streamKey, w.consumerGroup, messageID).Err()
	if err != nil {
		w.logger.Error("failed to acknowledge message",
			zap.String("message_id", messageID),
			zap.Error(err),
		)
	}
}
