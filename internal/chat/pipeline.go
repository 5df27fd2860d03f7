package chat

import (
	"context"
	"log/slog"

	"github.com/tinoe0404/eTuckshop-sub000/internal/dedup"
	"github.com/tinoe0404/eTuckshop-sub000/internal/domain/model"
	"github.com/tinoe0404/eTuckshop-sub000/internal/session"
)

const apologyText = "Sorry, something went wrong on our side. Please try again in a moment."

// Pipeline is the inbound message path: dedup, per-sender serialization,
// session load, one state machine transition, session persist.
type Pipeline struct {
	guard    *dedup.Guard
	sessions *session.Store
	machine  *Machine
	locks    *KeyedMutex
	logger   *slog.Logger
}

// NewPipeline constructs the inbound pipeline.
func NewPipeline(guard *dedup.Guard, sessions *session.Store, machine *Machine, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		guard:    guard,
		sessions: sessions,
		machine:  machine,
		locks:    NewKeyedMutex(),
		logger:   logger,
	}
}

// HandleInboundMessage processes one message and returns the reply text.
// An empty return means no reply should be sent (redelivered duplicate).
// Infrastructure failures never escape: the session is left untouched and a
// generic apology is returned so the customer can simply retry.
func (p *Pipeline) HandleInboundMessage(ctx context.Context, sender, text, messageID string) string {
	admitted, err := p.guard.Admit(ctx, messageID)
	if err != nil {
		p.logger.Error("dedup check failed",
			slog.String("message_id", messageID), slog.String("error", err.Error()))
		return apologyText
	}
	if !admitted {
		p.logger.Info("duplicate message dropped", slog.String("message_id", messageID))
		return ""
	}

	release := p.locks.Lock(sender)
	defer release()

	sess, err := p.sessions.Get(ctx, sender)
	if err != nil {
		p.logger.Error("session load failed",
			slog.String("sender", sender), slog.String("error", err.Error()))
		return apologyText
	}
	if sess == nil {
		sess = model.NewSession()
	}

	outcome, err := p.machine.Handle(ctx, sender, sess, ParseCommand(text))
	if err != nil {
		p.logger.Error("transition failed",
			slog.String("sender", sender),
			slog.String("step", string(sess.Step)),
			slog.String("error", err.Error()))
		return apologyText
	}

	if outcome.EndSession {
		if err := p.sessions.Delete(ctx, sender); err != nil {
			p.logger.Error("session delete failed",
				slog.String("sender", sender), slog.String("error", err.Error()))
		}
	} else if err := p.sessions.Save(ctx, sender, sess); err != nil {
		p.logger.Error("session save failed",
			slog.String("sender", sender), slog.String("error", err.Error()))
		return apologyText
	}

	return outcome.Reply
}
