package minesweeper

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"emperror.dev/errors"
)

// MaxMessageLength is the longest message Discord accepts.
const MaxMessageLength = 2000

const ErrMessageTooLong = errors.Sentinel("rendered board does not fit in a message")

var digitWords = [...]string{
	"zero", "one", "two", "three", "four", "five", "six", "seven", "eight",
}

// Token is the spoiler-masked emoji shortcode for a single cell.
func Token(c Cell) string {
	if c.IsMine() {
		return "||  :boom:  ||  "
	}
	return "||  :" + digitWords[c.Count()] + ":  ||  "
}

// Render formats the board as a Discord message: a header with the mine
// count followed by one line of spoiler tokens per row.
func Render(b *Board) (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\n%d akna van elrejtve\n", b.MineCount())

	for y := 0; y < b.Size(); y++ {
		for x := 0; x < b.Size(); x++ {
			sb.WriteString(Token(b.Cell(x, y)))
		}
		sb.WriteByte('\n')
	}

	txt := sb.String()
	if n := utf8.RuneCountInString(txt); n > MaxMessageLength {
		return "", errors.WithDetails(errors.WithStack(ErrMessageTooLong), "length", n, "size", b.Size())
	}
	return txt, nil
}

// Fits reports whether every possible board of the given configuration
// renders within MaxMessageLength.
func Fits(size, mineCount int) bool {
	longest := utf8.RuneCountInString(Token(Cell{mine: true}))
	for i := range digitWords {
		if l := utf8.RuneCountInString(Token(Cell{count: uint8(i)})); l > longest {
			longest = l
		}
	}

	header := utf8.RuneCountInString(fmt.Sprintf("\n%d akna van elrejtve\n", mineCount))
	return header+size*(size*longest+1) <= MaxMessageLength
}
