package editor

type Motion int

const (
	MotionLeft Motion = iota
	MotionRight
	MotionUp
	MotionDown
	MotionWordLeft
	MotionWordRight
	MotionLineStart
	MotionLineEnd
	MotionDocStart
	MotionDocEnd
)

type ActionKind int

const (
	ActionMove ActionKind = iota
	ActionSelect
	ActionSelectAll
	ActionClick
	ActionDrag
	ActionInsert
	ActionPaste
	ActionEnter
	ActionBackspace
	ActionDelete
)

// Position is a (line, column) pair counted in runes from zero.
type Position struct {
	Line   int
	Column int
}

// Action is one edit or navigation request coming from the presentation
// layer. Only the field matching Kind is read.
type Action struct {
	Kind   ActionKind
	Motion Motion
	Pos    Position
	Rune   rune
	Text   string
}

func Move(m Motion) Action { return Action{Kind: ActionMove, Motion: m} }

// Select moves the caret like Move but keeps the selection anchor.
func Select(m Motion) Action { return Action{Kind: ActionSelect, Motion: m} }

func SelectAll() Action { return Action{Kind: ActionSelectAll} }

func Click(pos Position) Action { return Action{Kind: ActionClick, Pos: pos} }

func Drag(pos Position) Action { return Action{Kind: ActionDrag, Pos: pos} }

func Insert(r rune) Action { return Action{Kind: ActionInsert, Rune: r} }

func Paste(text string) Action { return Action{Kind: ActionPaste, Text: text} }

func Enter() Action { return Action{Kind: ActionEnter} }

func Backspace() Action { return Action{Kind: ActionBackspace} }

func Delete() Action { return Action{Kind: ActionDelete} }
