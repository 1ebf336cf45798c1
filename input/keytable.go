package input

// Action is a controller command bound to a key
type Action uint8

const (
	ActionNone Action = iota
	ActionToggleRunning
	ActionStep
	ActionToggleKind
	ActionMassUp
	ActionMassDown
	ActionClear
	ActionDeleteSelected
	ActionDeselect
)

var actionNames = [...]string{
	ActionNone:           "none",
	ActionToggleRunning:  "toggle_running",
	ActionStep:           "step",
	ActionToggleKind:     "toggle_kind",
	ActionMassUp:         "mass_up",
	ActionMassDown:       "mass_down",
	ActionClear:          "clear",
	ActionDeleteSelected: "delete_selected",
	ActionDeselect:       "deselect",
}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

// KeyTable maps keys to actions
type KeyTable struct {
	Keys  map[Key]Action
	Runes map[rune]Action
}

// DefaultKeyTable returns the default bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		Keys: map[Key]Action{
			KeySpace:     ActionToggleRunning,
			KeyTab:       ActionStep,
			KeyBackspace: ActionDeleteSelected,
			KeyDelete:    ActionDeleteSelected,
			KeyEnter:     ActionDeselect,
		},
		Runes: map[rune]Action{
			' ': ActionToggleRunning,
			's': ActionToggleKind,
			'S': ActionToggleKind,
			'+': ActionMassUp,
			'=': ActionMassUp,
			'-': ActionMassDown,
			'_': ActionMassDown,
			'c': ActionClear,
			'C': ActionClear,
			'x': ActionDeleteSelected,
		},
	}
}

// Lookup resolves a KeyPressed event to an action
func (kt *KeyTable) Lookup(e Event) Action {
	if e.Type != EventKeyPressed {
		return ActionNone
	}
	if e.Key == KeyRune {
		return kt.Runes[e.Rune]
	}
	return kt.Keys[e.Key]
}
