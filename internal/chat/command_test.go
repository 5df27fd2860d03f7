package chat

import "testing"

func TestParseCommand(t *testing.T) {
	cases := []struct {
		in     string
		kind   CommandKind
		number int
		text   string
	}{
		{"1", CmdNumber, 1, "1"},
		{"  42 ", CmdNumber, 42, "42"},
		{"0", CmdBack, 0, "0"},
		{"-3", CmdFreeText, 0, "-3"},
		{"menu", CmdReset, 0, "menu"},
		{"MENU", CmdReset, 0, "MENU"},
		{"hi", CmdReset, 0, "hi"},
		{"home", CmdReset, 0, "home"},
		{"start", CmdReset, 0, "start"},
		{"help", CmdHelp, 0, "help"},
		{"Help", CmdHelp, 0, "Help"},
		{"Alice", CmdFreeText, 0, "Alice"},
		{"  Alice Smith  ", CmdFreeText, 0, "Alice Smith"},
		{"", CmdFreeText, 0, ""},
		{"1234", CmdNumber, 1234, "1234"},
		{"TS-ABC-DEF", CmdFreeText, 0, "TS-ABC-DEF"},
	}

	for _, tc := range cases {
		cmd := ParseCommand(tc.in)
		if cmd.Kind != tc.kind {
			t.Errorf("ParseCommand(%q) kind = %v, want %v", tc.in, cmd.Kind, tc.kind)
		}
		if cmd.Number != tc.number {
			t.Errorf("ParseCommand(%q) number = %d, want %d", tc.in, cmd.Number, tc.number)
		}
		if cmd.Text != tc.text {
			t.Errorf("ParseCommand(%q) text = %q, want %q", tc.in, cmd.Text, tc.text)
		}
	}
}
