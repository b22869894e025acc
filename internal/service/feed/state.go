package feed

// State is the connection state of the feed.
//
//	Disconnected -> Connecting -> Streaming -> (failure) Reconnecting -> Connecting
//
// Every transport failure routes through Reconnecting; the feed never gives
// up on transient errors.
type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateStreaming
	StateReconnecting
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateStreaming:
		return "streaming"
	case StateReconnecting:
		return "reconnecting"
	default:
		return "unknown"
	}
}

// transitions is the legal edge set of the state machine. Stop is legal from
// every live state, which is why Disconnected appears as a target everywhere.
var transitions = map[State]map[State]bool{
	StateDisconnected: {
		StateConnecting: true,
	},
	StateConnecting: {
		StateStreaming:    true,
		StateReconnecting: true,
		StateDisconnected: true,
	},
	StateStreaming: {
		StateReconnecting: true,
		StateDisconnected: true,
	},
	StateReconnecting: {
		StateConnecting:   true,
		StateDisconnected: true,
	},
}

func validTransition(from, to State) bool {
	return transitions[from][to]
}
