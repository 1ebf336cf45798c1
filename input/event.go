package input

import "fmt"

// EventType discriminates input events
type EventType uint8

const (
	EventNone EventType = iota
	EventWindowClosed
	EventKeyPressed
	EventMouseButtonPressed
	EventMouseButtonReleased
	EventMouseMoved
)

func (t EventType) String() string {
	switch t {
	case EventWindowClosed:
		return "WindowClosed"
	case EventKeyPressed:
		return "KeyPressed"
	case EventMouseButtonPressed:
		return "MouseButtonPressed"
	case EventMouseButtonReleased:
		return "MouseButtonReleased"
	case EventMouseMoved:
		return "MouseMoved"
	}
	return "None"
}

// Key identifies non-rune keys; KeyRune means Event.Rune carries the character
type Key uint8

const (
	KeyNone Key = iota
	KeyRune
	KeySpace
	KeyTab
	KeyEnter
	KeyBackspace
	KeyDelete
	KeyEscape
)

// MouseButton identifies a pointer button
type MouseButton uint8

const (
	ButtonNone MouseButton = iota
	ButtonLeft
	ButtonRight
	ButtonMiddle
)

func (b MouseButton) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonMiddle:
		return "middle"
	}
	return "none"
}

// Event is a single discrete input event
// X and Y are world pixels for mouse events
type Event struct {
	Type   EventType
	Key    Key
	Rune   rune
	Button MouseButton
	X, Y   float64
}

func (e Event) String() string {
	switch e.Type {
	case EventKeyPressed:
		if e.Key == KeyRune {
			return fmt.Sprintf("%s(%q)", e.Type, e.Rune)
		}
		return fmt.Sprintf("%s(key=%d)", e.Type, e.Key)
	case EventMouseButtonPressed, EventMouseButtonReleased:
		return fmt.Sprintf("%s(%s, %.0f, %.0f)", e.Type, e.Button, e.X, e.Y)
	case EventMouseMoved:
		return fmt.Sprintf("%s(%.0f, %.0f)", e.Type, e.X, e.Y)
	}
	return e.Type.String()
}

// KeyEvent builds a KeyPressed event for a special key
func KeyEvent(k Key) Event {
	return Event{Type: EventKeyPressed, Key: k}
}

// RuneEvent builds a KeyPressed event for a printable character
func RuneEvent(r rune) Event {
	return Event{Type: EventKeyPressed, Key: KeyRune, Rune: r}
}

// MouseEvent builds a mouse event at (x, y)
func MouseEvent(t EventType, b MouseButton, x, y float64) Event {
	return Event{Type: t, Button: b, X: x, Y: y}
}
