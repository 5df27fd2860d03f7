package worker

import (
	"context"
	"log/slog"
	"sync"
)

// Pipeline handles one inbound message and returns the reply text, empty when
// no reply should be sent.
type Pipeline interface {
	HandleInboundMessage(ctx context.Context, sender, text, messageID string) string
}

// Sender delivers outbound replies to customers.
type Sender interface {
	Send(ctx context.Context, to, text string) error
}

// Message is one queued inbound customer message.
type Message struct {
	Sender    string
	Text      string
	MessageID string
}

// MessageProcessor drains the inbound queue concurrently. The webhook handler
// enqueues and acknowledges immediately; replies go out from worker goroutines.
type MessageProcessor struct {
	pipeline Pipeline
	sender   Sender
	workers  int
	logger   *slog.Logger

	jobs   chan Message
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewMessageProcessor constructs the message worker pool.
func NewMessageProcessor(pipeline Pipeline, sender Sender, workers, queueSize int, logger *slog.Logger) *MessageProcessor {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}
	return &MessageProcessor{
		pipeline: pipeline,
		sender:   sender,
		workers:  workers,
		logger:   logger,
		jobs:     make(chan Message, queueSize),
	}
}

// Start launches background processing.
func (p *MessageProcessor) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx)
	}
}

// Stop waits for all workers to finish.
func (p *MessageProcessor) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

// Enqueue offers a message to the pool without blocking the webhook response.
// A full queue drops the message; the transport redelivers unacknowledged
// work, and the dedup guard absorbs the retries that did get through.
func (p *MessageProcessor) Enqueue(msg Message) bool {
	select {
	case p.jobs <- msg:
		return true
	default:
		p.logger.Warn("inbound queue full, message dropped",
			slog.String("message_id", msg.MessageID))
		return false
	}
}

func (p *MessageProcessor) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-p.jobs:
			p.handle(ctx, msg)
		}
	}
}

func (p *MessageProcessor) handle(ctx context.Context, msg Message) {
	reply := p.pipeline.HandleInboundMessage(ctx, msg.Sender, msg.Text, msg.MessageID)
	if reply == "" {
		return
	}
	if err := p.sender.Send(ctx, msg.Sender, reply); err != nil {
		p.logger.Error("reply send failed",
			slog.String("sender", msg.Sender), slog.String("error", err.Error()))
	}
}
