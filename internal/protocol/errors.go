package protocol

const (
	// Protocol/transport validation.
	ErrProtoBadRequest = "E_PROTO_BAD_REQUEST"
	ErrProtoVersion    = "E_PROTO_VERSION"

	// Session routing/state.
	ErrSessionBusy = "E_SESSION_BUSY"
	ErrRateLimit   = "E_RATE_LIMIT"

	// Input layer.
	ErrBadDirection = "E_BAD_DIRECTION"
	ErrInternal     = "E_INTERNAL"
)

var knownCodes = map[string]struct{}{
	ErrProtoBadRequest: {},
	ErrProtoVersion:    {},
	ErrSessionBusy:     {},
	ErrRateLimit:       {},
	ErrBadDirection:    {},
	ErrInternal:        {},
}

func IsKnownCode(code string) bool {
	if code == "" {
		return true
	}
	_, ok := knownCodes[code]
	return ok
}
