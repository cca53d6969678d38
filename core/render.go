package core

import (
	"fmt"
	"strings"
)

// Status symbols used in rendered blocks and transmissions.
const (
	SymbolOK       = "'ok"
	SymbolInactive = "'inactive"
	SymbolNone     = "'none"
	SymbolInvalid  = "'invalid"
	SymbolError    = "'error"
	SymbolSaved    = "'saved"
)

// IndentUnit is the leading whitespace for one level of nesting.
const IndentUnit = "    "

// field is one :key value pair of a status block.
type field struct {
	key   string
	value string
}

func quoted(s string) string { return fmt.Sprintf("%q", s) }

// block describes one parenthesised status block.
type block struct {
	header     string
	showFields bool
	fields     []field
	showInner  bool
	innerKey   string
	inner      []string
}

// render writes the block at the given indent. Fields are inline when
// children are hidden and one per line otherwise; children are expected to be
// rendered two units deeper than indent.
func (b block) render(indent int) string {
	var sb strings.Builder
	pad := func(n int) {
		for range n {
			sb.WriteString(IndentUnit)
		}
	}

	pad(indent)
	sb.WriteString("(" + b.header)
	if b.showInner {
		sb.WriteByte('\n')
	}

	if b.showFields {
		for _, f := range b.fields {
			if b.showInner {
				pad(indent + 1)
			} else {
				sb.WriteByte(' ')
			}
			sb.WriteString(f.key + " " + f.value)
			if b.showInner {
				sb.WriteByte('\n')
			}
		}
	}

	if b.showInner {
		pad(indent + 1)
		sb.WriteString(b.innerKey + " (\n")
		for _, child := range b.inner {
			sb.WriteString(child)
		}
		pad(indent + 1)
		sb.WriteString(")\n")
		pad(indent)
	}
	sb.WriteString(")\n")
	return sb.String()
}
