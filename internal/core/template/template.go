// Package template compiles location-format templates such as "$B.$C.$D.$E"
// into segments and evaluates them against workbook rows.
package template

import (
	"fmt"
	"strings"
)

// Segment is either a literal run or a single column reference.
// Column is -1 for literals.
type Segment struct {
	Text   string
	Column int
}

func (s Segment) IsRef() bool {
	return s.Column >= 0
}

// Ref renders a column reference back in template notation, e.g. "$B".
func (s Segment) Ref() string {
	if !s.IsRef() {
		return ""
	}
	return fmt.Sprintf("$%c", 'A'+rune(s.Column))
}

type Compiled struct {
	src      string
	segments []Segment
}

func (c Compiled) String() string {
	return c.src
}

func (c Compiled) Empty() bool {
	return len(c.segments) == 0
}

func (c Compiled) Segments() []Segment {
	return c.segments
}

// Compile scans the template left to right. "$" followed by one ASCII
// letter A-Z (either case) becomes a column reference, A mapping to index
// 0. Any other character, including a "$" not followed by a letter, joins
// the current literal run. Compile never fails; malformed references
// simply stay literal.
func Compile(src string) Compiled {
	var segments []Segment
	var literal strings.Builder

	flush := func() {
		if literal.Len() > 0 {
			segments = append(segments, Segment{Text: literal.String(), Column: -1})
			literal.Reset()
		}
	}

	for i := 0; i < len(src); i++ {
		ch := src[i]
		if ch == '$' && i+1 < len(src) {
			if idx := letterIndex(src[i+1]); idx >= 0 {
				flush()
				segments = append(segments, Segment{Column: idx})
				i++
				continue
			}
		}
		literal.WriteByte(ch)
	}
	flush()

	return Compiled{src: src, segments: segments}
}

func letterIndex(ch byte) int {
	switch {
	case ch >= 'A' && ch <= 'Z':
		return int(ch - 'A')
	case ch >= 'a' && ch <= 'z':
		return int(ch - 'a')
	default:
		return -1
	}
}

// WarnFunc is invoked for every column reference that falls outside the
// sheet's column count. The ref is in template notation ("$F").
type WarnFunc func(ref string, index int)

// Build evaluates the template against one row. Literals are emitted
// verbatim; references resolve to the trimmed cell value at their index.
// A reference beyond columnCount contributes an empty string and fires
// warn; a reference within the sheet but past the end of a short row is
// just an empty cell. Build always returns a string.
func (c Compiled) Build(row []string, columnCount int, warn WarnFunc) string {
	var b strings.Builder
	for _, seg := range c.segments {
		if !seg.IsRef() {
			b.WriteString(seg.Text)
			continue
		}
		if seg.Column >= columnCount {
			if warn != nil {
				warn(seg.Ref(), seg.Column)
			}
			continue
		}
		if seg.Column < len(row) {
			b.WriteString(strings.TrimSpace(row[seg.Column]))
		}
	}
	return b.String()
}
