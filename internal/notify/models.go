package notify

// Method records how a notification target was resolved.
type Method string

const (
	MethodRole          Method = "role"
	MethodUser          Method = "user"
	MethodRawIDFallback Method = "raw_id_fallback"
	MethodUnresolved    Method = "unresolved"
)

// Target is the mention to ping after a record is posted. It is derived per
// invocation and never cached: role and membership state is live.
type Target struct {
	Mention string
	Method  Method
}

// Resolved reports whether there is anything to send.
func (t Target) Resolved() bool {
	return t.Method != MethodUnresolved && t.Mention != ""
}
