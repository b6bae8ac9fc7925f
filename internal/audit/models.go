package audit

import (
	"time"

	"tradelog/internal/command/models"
)

// Embed colors per record kind.
const (
	ColorTrade       = 0x0099FF
	ColorGrantAccess = 0x57F287
	ColorAssignRole  = 0xFFA500
)

// Field is one labelled value of a record. Order is display order.
type Field struct {
	Label  string
	Value  string
	Inline bool
}

// Author is the line shown above the title.
type Author struct {
	Name    string
	IconURL string
}

// Footer is the attribution shown under the fields.
type Footer struct {
	Text    string
	IconURL string
}

// Record is the human-readable audit entry posted to the logging channel.
// Built fresh per invocation and never mutated after Build returns.
type Record struct {
	Kind      models.Kind
	Title     string
	Color     int
	Author    Author
	Fields    []Field
	Timestamp time.Time
	Footer    Footer
}

// Field returns the first field with the given label.
func (r *Record) Field(label string) (Field, bool) {
	for _, f := range r.Fields {
		if f.Label == label {
			return f, true
		}
	}
	return Field{}, false
}
