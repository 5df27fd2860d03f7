package chat

import (
	"strconv"
	"strings"
)

// CommandKind discriminates parsed inbound text.
type CommandKind int

const (
	// CmdFreeText is any input that matched no other rule.
	CmdFreeText CommandKind = iota
	// CmdNumber is a positive numeric menu selection.
	CmdNumber
	// CmdBack is the universal "0" go-back sentinel.
	CmdBack
	// CmdReset is the global menu/home reset.
	CmdReset
	// CmdHelp requests the static help text without changing step.
	CmdHelp
)

// Command is the typed form of a raw inbound message. Text always carries the
// trimmed original input so steps expecting free text (names, PINs, order
// numbers) can read it regardless of Kind.
type Command struct {
	Kind   CommandKind
	Number int
	Text   string
}

var resetWords = map[string]struct{}{
	"menu":  {},
	"home":  {},
	"hi":    {},
	"start": {},
}

// ParseCommand turns raw transport text into a Command. Keeping this as a
// separate stage isolates transport quirks from the step handlers.
func ParseCommand(raw string) Command {
	text := strings.TrimSpace(raw)
	lowered := strings.ToLower(text)

	if _, ok := resetWords[lowered]; ok {
		return Command{Kind: CmdReset, Text: text}
	}
	if lowered == "help" {
		return Command{Kind: CmdHelp, Text: text}
	}
	if n, err := strconv.Atoi(text); err == nil {
		if n == 0 {
			return Command{Kind: CmdBack, Text: text}
		}
		if n > 0 {
			return Command{Kind: CmdNumber, Number: n, Text: text}
		}
	}
	return Command{Kind: CmdFreeText, Text: text}
}
