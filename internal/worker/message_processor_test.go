package worker_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	testhelpers "github.com/tinoe0404/eTuckshop-sub000/internal/test"
	"github.com/tinoe0404/eTuckshop-sub000/internal/worker"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func waitForMessages(t *testing.T, sender *testhelpers.SenderStub, want int) []testhelpers.SentMessage {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		if got := sender.Messages(); len(got) >= want {
			return got
		}
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for %d messages, got %d", want, len(sender.Messages()))
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestMessageProcessorDeliversReplies(t *testing.T) {
	sender := &testhelpers.SenderStub{}
	processor := worker.NewMessageProcessor(testhelpers.PipelineStub{}, sender, 2, 8, discardLogger())

	processor.Start(context.Background())
	defer processor.Stop()

	if !processor.Enqueue(worker.Message{Sender: "27820000001", Text: "hi", MessageID: "wamid.1"}) {
		t.Fatal("expected enqueue to succeed")
	}

	sent := waitForMessages(t, sender, 1)
	if sent[0].To != "27820000001" || sent[0].Text != "echo: hi" {
		t.Fatalf("unexpected delivery: %+v", sent[0])
	}
}

func TestMessageProcessorSkipsEmptyReplies(t *testing.T) {
	sender := &testhelpers.SenderStub{}
	pipeline := testhelpers.PipelineStub{
		HandleFn: func(ctx context.Context, senderID, text, messageID string) string {
			if text == "dup" {
				return ""
			}
			return "ok"
		},
	}
	processor := worker.NewMessageProcessor(pipeline, sender, 1, 8, discardLogger())

	processor.Start(context.Background())
	defer processor.Stop()

	processor.Enqueue(worker.Message{Sender: "a", Text: "dup", MessageID: "wamid.1"})
	processor.Enqueue(worker.Message{Sender: "b", Text: "real", MessageID: "wamid.2"})

	sent := waitForMessages(t, sender, 1)
	if len(sent) != 1 || sent[0].To != "b" {
		t.Fatalf("expected only the non-empty reply, got %+v", sent)
	}
}

func TestMessageProcessorDropsOnFullQueue(t *testing.T) {
	// Not started, so nothing drains the queue.
	processor := worker.NewMessageProcessor(testhelpers.PipelineStub{}, &testhelpers.SenderStub{}, 1, 1, discardLogger())

	if !processor.Enqueue(worker.Message{MessageID: "wamid.1"}) {
		t.Fatal("first enqueue should fit the queue")
	}
	if processor.Enqueue(worker.Message{MessageID: "wamid.2"}) {
		t.Fatal("second enqueue should be dropped, not block")
	}
}

func TestMessageProcessorStopIsIdempotentAfterDrain(t *testing.T) {
	sender := &testhelpers.SenderStub{}
	processor := worker.NewMessageProcessor(testhelpers.PipelineStub{}, sender, 4, 16, discardLogger())

	processor.Start(context.Background())
	for i := 0; i < 8; i++ {
		processor.Enqueue(worker.Message{Sender: "s", Text: "hi", MessageID: "wamid.x"})
	}
	waitForMessages(t, sender, 8)

	processor.Stop()
	processor.Stop()
}
