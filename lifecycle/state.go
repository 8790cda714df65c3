package lifecycle

// State is the lifecycle position of a single token id.
type State int

const (
	StateUnminted State = iota
	StateMinted
	StateFrozen // minted with immutable metadata
	StateBurned // terminal
)

func (s State) String() string {
	switch s {
	case StateUnminted:
		return "unminted"
	case StateMinted:
		return "minted"
	case StateFrozen:
		return "frozen"
	case StateBurned:
		return "burned"
	default:
		return "unknown"
	}
}

// transitions is the allowed move set per state. Burned is terminal and
// nothing returns to unminted.
var transitions = map[State][]State{
	StateUnminted: {StateMinted},
	StateMinted:   {StateFrozen, StateBurned},
	StateFrozen:   {StateBurned},
	StateBurned:   {},
}

// canTransition reports whether a token may move from one state to
// another in a single step.
func canTransition(from, to State) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
