// Package linescan applies the text-pattern rules S001 through S009 to the
// raw lines of one file.
package linescan

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/phobologic/pystyle/internal/casing"
	"github.com/phobologic/pystyle/internal/model"
)

const (
	maxLineLength = 79
	indentWidth   = 4
	blankRunLimit = 3
)

// line is the input of a single rule evaluation.
type line struct {
	shape
	blanksBefore int
}

type emitFunc func(code model.RuleCode, token string)

// rules run in this order on every line.
var rules = []func(l *line, emit emitFunc){
	checkLength,
	checkIndentation,
	checkSemicolon,
	checkInlineComment,
	checkTodo,
	checkBlankLines,
	checkKeywordSpacing,
	checkClassName,
	checkFunctionName,
}

// Scan returns the line-rule violations of f, in ascending line order and,
// within one line, in rule order.
func Scan(f *model.SourceFile) []model.Violation {
	var (
		out []model.Violation
		run blankRun
	)
	for i, text := range f.Lines {
		l := &line{shape: scanShape(text), blanksBefore: run.length()}
		n := i + 1
		for _, rule := range rules {
			rule(l, func(code model.RuleCode, token string) {
				out = append(out, model.Violation{File: f.Path, Line: n, Code: code, Token: token})
			})
		}
		run.observe(text)
	}
	return out
}

// blankRun counts the blank lines seen directly before the current one.
type blankRun struct {
	n int
}

func (b *blankRun) length() int {
	return b.n
}

func (b *blankRun) observe(text string) {
	if isBlank(text) {
		b.n++
		return
	}
	b.n = 0
}

func isBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}

func checkLength(l *line, emit emitFunc) {
	if utf8.RuneCountInString(l.text) > maxLineLength {
		emit(model.S001, "")
	}
}

func checkIndentation(l *line, emit emitFunc) {
	spaces := len(l.text) - len(strings.TrimLeft(l.text, " "))
	if spaces > 0 && spaces%indentWidth != 0 {
		emit(model.S002, "")
	}
}

func checkSemicolon(l *line, emit emitFunc) {
	if strings.HasSuffix(strings.TrimRightFunc(l.code(), unicode.IsSpace), ";") {
		emit(model.S003, "")
	}
}

func checkInlineComment(l *line, emit emitFunc) {
	if !l.hasComment() {
		return
	}
	before := l.code()
	if strings.TrimSpace(before) != "" && !strings.HasSuffix(before, "  ") {
		emit(model.S004, "")
	}
}

func checkTodo(l *line, emit emitFunc) {
	if l.hasComment() && l.todo >= 0 && !l.todoInString {
		emit(model.S005, "")
	}
}

func checkBlankLines(l *line, emit emitFunc) {
	if !isBlank(l.text) && l.blanksBefore >= blankRunLimit {
		emit(model.S006, "")
	}
}

// checkKeywordSpacing looks at the first occurrence of each keyword: the
// character after the keyword and one separator must not be a space, unless
// the name that follows is private.
func checkKeywordSpacing(l *line, emit emitFunc) {
	for _, kw := range []string{"def", "class"} {
		rest, ok := afterKeyword(l.text, kw)
		if !ok || len(rest) < 2 || rest[1] != ' ' {
			continue
		}
		if strings.HasPrefix(strings.TrimLeft(rest[1:], " "), "_") {
			continue
		}
		emit(model.S007, kw)
	}
}

func checkClassName(l *line, emit emitFunc) {
	rest, ok := afterKeyword(l.text, "class")
	if !ok {
		return
	}
	name := nameBefore(rest, "(:")
	if !casing.CamelCase.Valid(name) {
		emit(model.S008, name)
	}
}

func checkFunctionName(l *line, emit emitFunc) {
	rest, ok := afterKeyword(l.text, "def")
	if !ok {
		return
	}
	name := nameBefore(rest, "(")
	if !casing.SnakeCase.Valid(name) {
		emit(model.S009, name)
	}
}

// afterKeyword returns the text after the first occurrence of kw. The match
// is a plain substring match: "undefined" contains "def".
func afterKeyword(text, kw string) (string, bool) {
	i := strings.Index(text, kw)
	if i < 0 {
		return "", false
	}
	return text[i+len(kw):], true
}

// nameBefore returns rest up to the first of the stop characters, trimmed.
func nameBefore(rest, stops string) string {
	if i := strings.IndexAny(rest, stops); i >= 0 {
		rest = rest[:i]
	}
	return strings.TrimSpace(rest)
}
