package lexer

import "fmt"

// Token identifies a lexical element.
type Token uint8

// Tokens; the keyword block must stay in the order of keywordNames.
const (
	NoToken Token = iota
	EOL

	IntegerLiteral
	LongLiteral
	RealLiteral
	StringLiteral

	RealIdent
	IntegerIdent
	LongIdent
	BooleanIdent
	StringIdent

	AND
	ARRAYS
	DIM
	DUMP
	END
	FALSE
	FOR
	GOSUB
	GOTO
	IF
	INPUT
	LET
	LIST
	LOAD
	MOD
	NEW
	NEXT
	NOT
	OR
	PRINT
	REM
	RETURN
	RUN
	SAVE
	STEP
	STOP
	TAB
	THEN
	TO
	TRUE
	VARS

	Star
	Slash
	Plus
	Minus
	Equal
	Colon
	Semicolon
	Less
	LessEqual
	LessGreater
	Greater
	GreaterEqual
	GreaterLess
	Comma
	Caret
	LeftParen
	RightParen

	tokenCount
)

const firstKeyword = AND

var keywordNames = []string{
	"AND", "ARRAYS", "DIM", "DUMP", "END", "FALSE", "FOR", "GOSUB", "GOTO",
	"IF", "INPUT", "LET", "LIST", "LOAD", "MOD", "NEW", "NEXT", "NOT", "OR",
	"PRINT", "REM", "RETURN", "RUN", "SAVE", "STEP", "STOP", "TAB", "THEN",
	"TO", "TRUE", "VARS",
}

var operatorNames = [...]string{
	Star:         "*",
	Slash:        "/",
	Plus:         "+",
	Minus:        "-",
	Equal:        "=",
	Colon:        ":",
	Semicolon:    ";",
	Less:         "<",
	LessEqual:    "<=",
	LessGreater:  "<>",
	Greater:      ">",
	GreaterEqual: ">=",
	GreaterLess:  "><",
	Comma:        ",",
	Caret:        "^",
	LeftParen:    "(",
	RightParen:   ")",
}

var otherNames = [...]string{
	NoToken:        "NoToken",
	EOL:            "EOL",
	IntegerLiteral: "IntegerLiteral",
	LongLiteral:    "LongLiteral",
	RealLiteral:    "RealLiteral",
	StringLiteral:  "StringLiteral",
	RealIdent:      "RealIdent",
	IntegerIdent:   "IntegerIdent",
	LongIdent:      "LongIdent",
	BooleanIdent:   "BooleanIdent",
	StringIdent:    "StringIdent",
}

// Text returns the source text of a keyword or operator token, or "" for
// other tokens.
func (t Token) Text() string {
	switch {
	case t.IsKeyword():
		return keywordNames[t-firstKeyword]
	case t.IsOperator():
		return operatorNames[t]
	}
	return ""
}

func (t Token) String() string {
	if s := t.Text(); s != "" {
		return s
	}
	if int(t) < len(otherNames) {
		return otherNames[t]
	}
	return fmt.Sprintf("Token(%d)", uint8(t))
}

// IsKeyword returns true for keyword tokens.
func (t Token) IsKeyword() bool { return t >= firstKeyword && t <= VARS }

// IsOperator returns true for operator and punctuation tokens.
func (t Token) IsOperator() bool { return t >= Star && t < tokenCount }

// IsIdent returns true for identifier tokens.
func (t Token) IsIdent() bool { return t >= RealIdent && t <= StringIdent }

// IsLiteral returns true for number and string literal tokens.
func (t Token) IsLiteral() bool { return t >= IntegerLiteral && t <= StringLiteral }

// IsRelation returns true for comparison operators.
func (t Token) IsRelation() bool {
	switch t {
	case Equal, Less, LessEqual, LessGreater, Greater, GreaterEqual, GreaterLess:
		return true
	}
	return false
}
