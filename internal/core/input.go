package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone        Action = iota
	ActionTrigger            // Space - start a round, or drop the current sprite
	ActionAcknowledge        // Enter, Esc - dismiss the round-over message
	ActionQuit               // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionTrigger:
		return "Trigger"
	case ActionAcknowledge:
		return "Acknowledge"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
