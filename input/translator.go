package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/spring-sim/vmath"
)

// CellMapper converts a terminal cell into world pixels
type CellMapper interface {
	CellCenter(x, y int) vmath.Vec2
}

// buttonMap lists tracked tcell buttons; wheel and extra buttons are ignored
var buttonMap = [...]struct {
	mask   tcell.ButtonMask
	button MouseButton
}{
	{tcell.ButtonPrimary, ButtonLeft},
	{tcell.ButtonSecondary, ButtonRight},
	{tcell.ButtonMiddle, ButtonMiddle},
}

// Translator converts tcell events into input events
// tcell reports mouse state as a mask of held buttons, so presses and
// releases are derived by diffing against the previous mask
type Translator struct {
	mapper   CellMapper
	buttons  tcell.ButtonMask
	lastX    int
	lastY    int
	hasMouse bool
}

// NewTranslator creates a translator that places mouse events at cell centres
func NewTranslator(mapper CellMapper) *Translator {
	return &Translator{mapper: mapper}
}

// Translate returns zero or more events for ev
func (t *Translator) Translate(ev tcell.Event) []Event {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if e, ok := t.translateKey(ev); ok {
			return []Event{e}
		}
	case *tcell.EventMouse:
		return t.translateMouse(ev)
	}
	return nil
}

func (t *Translator) translateKey(ev *tcell.EventKey) (Event, bool) {
	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		return Event{Type: EventWindowClosed}, true
	case tcell.KeyTab:
		return KeyEvent(KeyTab), true
	case tcell.KeyEnter:
		return KeyEvent(KeyEnter), true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return KeyEvent(KeyBackspace), true
	case tcell.KeyDelete:
		return KeyEvent(KeyDelete), true
	case tcell.KeyRune:
		switch r := ev.Rune(); r {
		case 'q', 'Q':
			return Event{Type: EventWindowClosed}, true
		case ' ':
			return KeyEvent(KeySpace), true
		default:
			return RuneEvent(r), true
		}
	}
	return Event{}, false
}

func (t *Translator) translateMouse(ev *tcell.EventMouse) []Event {
	cx, cy := ev.Position()
	p := t.mapper.CellCenter(cx, cy)
	mask := ev.Buttons()

	var out []Event
	if t.hasMouse && (cx != t.lastX || cy != t.lastY) {
		out = append(out, MouseEvent(EventMouseMoved, ButtonNone, p.X, p.Y))
	}
	for _, b := range buttonMap {
		was := t.buttons&b.mask != 0
		now := mask&b.mask != 0
		switch {
		case now && !was:
			out = append(out, MouseEvent(EventMouseButtonPressed, b.button, p.X, p.Y))
		case was && !now:
			out = append(out, MouseEvent(EventMouseButtonReleased, b.button, p.X, p.Y))
		}
	}

	t.buttons = mask
	t.lastX, t.lastY = cx, cy
	t.hasMouse = true
	return out
}
