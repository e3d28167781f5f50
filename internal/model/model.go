// Package model defines core data structures for pystyle.
package model

import (
	"fmt"
	"strings"
)

// RuleCode is the stable identifier of a style rule.
type RuleCode string

const (
	S001 RuleCode = "S001"
	S002 RuleCode = "S002"
	S003 RuleCode = "S003"
	S004 RuleCode = "S004"
	S005 RuleCode = "S005"
	S006 RuleCode = "S006"
	S007 RuleCode = "S007"
	S008 RuleCode = "S008"
	S009 RuleCode = "S009"
	S010 RuleCode = "S010"
	S011 RuleCode = "S011"
	S012 RuleCode = "S012"
)

// templates holds the canonical message of each rule. A %s verb marks the
// place where the violation token is substituted.
var templates = map[RuleCode]string{
	S001: "Too long line",
	S002: "Indentation is not a multiple of four",
	S003: "Unnecessary semicolon",
	S004: "At least two spaces required before inline comments",
	S005: "TODO found",
	S006: "More than two blank lines used before this line",
	S007: "Too many spaces after '%s'",
	S008: "Class name '%s' should be written in CamelCase",
	S009: "Function name '%s' should be written in snake_case",
	S010: "Argument name %s should be written in snake_case",
	S011: "Variable %s should be written in snake_case",
	S012: "The default argument value is mutable",
}

// Template returns the message template for code, or "" for unknown codes.
func (c RuleCode) Template() string {
	return templates[c]
}

// Tokenized reports whether the rule's message carries a substituted token.
func (c RuleCode) Tokenized() bool {
	return strings.Contains(templates[c], "%s")
}

// Violation is one reported rule match.
type Violation struct {
	File  string
	Line  int
	Code  RuleCode
	Token string // offending identifier or keyword, "" when the template has none
}

// Message returns the human-readable message with the token substituted.
func (v Violation) Message() string {
	tmpl := v.Code.Template()
	if v.Code.Tokenized() {
		return fmt.Sprintf(tmpl, v.Token)
	}
	return tmpl
}

// SourceFile is the immutable line view of one file.
type SourceFile struct {
	Path  string
	Lines []string
}

// NewSourceFile splits content into lines. \r\n and lone \r are treated as
// \n; terminators are not part of any line and a trailing terminator does not
// produce an extra empty line.
func NewSourceFile(path string, content []byte) *SourceFile {
	text := strings.ReplaceAll(string(content), "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	if text == "" {
		return &SourceFile{Path: path}
	}
	text = strings.TrimSuffix(text, "\n")
	return &SourceFile{Path: path, Lines: strings.Split(text, "\n")}
}
