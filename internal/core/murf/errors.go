package murf

// Kind classifies where a request died so handlers can pick a status code
// without inspecting messages.
type Kind int

const (
	// KindValidation marks bad client input; nothing was sent upstream.
	KindValidation Kind = iota
	// KindConfig marks a missing API key.
	KindConfig
	// KindUpstream marks a non-2xx answer from Murf.
	KindUpstream
	// KindContract marks a 200 from Murf whose body is missing the fields
	// we depend on.
	KindContract
	// KindTransport marks a network-level failure or timeout.
	KindTransport
)

// Error carries the upstream status and body alongside the classification.
// Status and Payload are only meaningful for KindUpstream; Details holds the
// upstream body parsed as JSON when possible, raw text otherwise; Payload is
// the request payload we sent, echoed back to help callers debug.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Details any
	Payload any
}

func (e *Error) Error() string { return e.Message }

// HTTPStatus maps the error onto the local response code. Upstream errors
// mirror whatever status Murf returned; everything else is a plain 400/500.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return 400
	case KindUpstream:
		return e.Status
	default:
		return 500
	}
}
