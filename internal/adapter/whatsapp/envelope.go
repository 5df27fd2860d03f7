package whatsapp

// Envelope mirrors the webhook delivery payload from the Cloud API. Only text
// messages are of interest; everything else in the envelope is ignored.
type Envelope struct {
	Object string  `json:"object"`
	Entry  []Entry `json:"entry"`
}

type Entry struct {
	ID      string   `json:"id"`
	Changes []Change `json:"changes"`
}

type Change struct {
	Field string `json:"field"`
	Value Value  `json:"value"`
}

type Value struct {
	Contacts []Contact `json:"contacts"`
	Messages []Message `json:"messages"`
}

type Contact struct {
	WaID    string  `json:"wa_id"`
	Profile Profile `json:"profile"`
}

type Profile struct {
	Name string `json:"name"`
}

type Message struct {
	ID   string `json:"id"`
	From string `json:"from"`
	Type string `json:"type"`
	Text *Text  `json:"text,omitempty"`
}

type Text struct {
	Body string `json:"body"`
}

// Inbound is one normalized customer message extracted from an envelope.
type Inbound struct {
	Sender      string
	Text        string
	MessageID   string
	DisplayName string
}

// Inbound flattens the envelope into the text messages it carries. Status
// updates and non-text message types are skipped.
func (e Envelope) Inbound() []Inbound {
	var result []Inbound
	for _, entry := range e.Entry {
		for _, change := range entry.Changes {
			names := make(map[string]string, len(change.Value.Contacts))
			for _, contact := range change.Value.Contacts {
				names[contact.WaID] = contact.Profile.Name
			}
			for _, msg := range change.Value.Messages {
				if msg.Type != "text" || msg.Text == nil {
					continue
				}
				result = append(result, Inbound{
					Sender:      msg.From,
					Text:        msg.Text.Body,
					MessageID:   msg.ID,
					DisplayName: names[msg.From],
				})
			}
		}
	}
	return result
}
