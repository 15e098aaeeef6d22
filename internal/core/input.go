package core

import "strings"

// Action is a semantic player command, independent of the key, mouse button
// or web message that produced it.
type Action int

const (
	ActionNone  Action = iota
	ActionStart        // S, Enter, web "start"
	ActionReset        // R, web "reset"
	ActionClaim        // 1-9 in the terminal, web "click"
	ActionResize       // Terminal resize, web "resize"
	ActionHelp         // ?
	ActionQuit         // Q, Ctrl+C
)

// String returns the lowercase action name used on the wire.
func (a Action) String() string {
	switch a {
	case ActionStart:
		return "start"
	case ActionReset:
		return "reset"
	case ActionClaim:
		return "click"
	case ActionResize:
		return "resize"
	case ActionHelp:
		return "help"
	case ActionQuit:
		return "quit"
	default:
		return "none"
	}
}

// ParseAction maps a wire name back to an Action. Unknown names give
// ActionNone.
func ParseAction(name string) Action {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "start":
		return ActionStart
	case "reset":
		return ActionReset
	case "click":
		return ActionClaim
	case "resize":
		return ActionResize
	case "help":
		return ActionHelp
	case "quit":
		return ActionQuit
	default:
		return ActionNone
	}
}

// Command is one decoded player input.
type Command struct {
	Action Action

	// Slot is the 1-based live balloon index for keyboard claims.
	Slot int

	// Target is the balloon ID for pointer and web claims.
	Target string

	// Width and Height carry the new surface size for ActionResize.
	Width, Height int
}
