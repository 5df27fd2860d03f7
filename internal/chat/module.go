package chat

import (
	"go.uber.org/fx"
)

// Module provides the conversation state machine and inbound pipeline.
var Module = fx.Provide(
	NewMachine,
	NewPipeline,
)
