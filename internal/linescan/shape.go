package linescan

// lexState is the position of the line walker relative to string and comment
// regions. Strings are tracked by quote parity: any quote character toggles
// in or out, whichever kind opened the region. A '#' starts the comment even
// inside a string.
type lexState int

const (
	stateCode lexState = iota
	stateString
	stateComment
	stateCommentString
)

func (s lexState) next(c byte, escaped bool) lexState {
	switch c {
	case '"', '\'':
		switch s {
		case stateCode:
			return stateString
		case stateString:
			return stateCode
		case stateComment:
			return stateCommentString
		case stateCommentString:
			return stateComment
		}
	case '#':
		if escaped {
			return s
		}
		switch s {
		case stateCode:
			return stateComment
		case stateString:
			return stateCommentString
		}
	}
	return s
}

func (s lexState) inString() bool {
	return s == stateString || s == stateCommentString
}

func (s lexState) inComment() bool {
	return s == stateComment || s == stateCommentString
}

// shape is what one pass of the state machine learns about a line.
type shape struct {
	text         string
	comment      int // byte offset of the comment '#', -1 when the line has none
	todo         int // byte offset of the first TODO in any letter case, -1 when none
	todoInString bool
}

func scanShape(line string) shape {
	sh := shape{text: line, comment: -1, todo: -1}
	state := stateCode
	for i := 0; i < len(line); i++ {
		if sh.todo < 0 && todoAt(line, i) {
			sh.todo = i
			sh.todoInString = state.inString()
		}
		c := line[i]
		prev := state
		state = state.next(c, i > 0 && line[i-1] == '\\')
		if sh.comment < 0 && !prev.inComment() && state.inComment() {
			sh.comment = i
		}
	}
	return sh
}

// code returns the line with the comment removed.
func (sh shape) code() string {
	if sh.comment < 0 {
		return sh.text
	}
	return sh.text[:sh.comment]
}

func (sh shape) hasComment() bool {
	return sh.comment >= 0
}

func todoAt(s string, i int) bool {
	const todo = "TODO"
	if i+len(todo) > len(s) {
		return false
	}
	for j := 0; j < len(todo); j++ {
		c := s[i+j]
		if 'a' <= c && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c != todo[j] {
			return false
		}
	}
	return true
}
