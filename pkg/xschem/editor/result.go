package editor

// Result is the tri-state outcome of an interactive operation that may be
// cancelled by the user: dialogs return {yes, no, cancel}, gestures return
// {ok, cancel, error}, and a cancel propagates upward to abort the enclosing
// gesture (descend, new-file, quit).
type Result int

const (
	ResultOK Result = iota
	ResultCancel
	ResultError
)

func (r Result) String() string {
	switch r {
	case ResultOK:
		return "ok"
	case ResultCancel:
		return "cancel"
	default:
		return "error"
	}
}
