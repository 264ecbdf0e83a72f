package esregex

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rivo/uniseg"
)

// tabstopWidth is the width tabs are rendered as.
const tabstopWidth = 4

// Render writes d as a human-readable report with a source snippet and a
// caret underline per label. source is the text the label spans index into
// and filename is only used in the location line.
func (d *Diagnostic) Render(w io.Writer, filename, source string) error {
	out := bufio.NewWriter(w)
	fmt.Fprintf(out, "error[%s]: %s\n", d.Kind, d.Message)

	for _, label := range d.Labels {
		start := min(int(label.Start), len(source))
		end := min(max(int(label.End), start), len(source))

		lineStart := strings.LastIndexAny(source[:start], "\n") + 1
		lineEnd := strings.IndexAny(source[start:], "\r\n")
		if lineEnd == -1 {
			lineEnd = len(source)
		} else {
			lineEnd += start
		}
		lineno := strings.Count(source[:lineStart], "\n") + 1
		line := source[lineStart:lineEnd]

		column := stringWidth(0, source[lineStart:start])
		width := stringWidth(column, source[start:min(end, lineEnd)]) - column
		width = max(width, 1)

		gutter := strings.Repeat(" ", len(strconv.Itoa(lineno)))
		fmt.Fprintf(out, "%s--> %s:%d:%d\n", gutter, filename, lineno, column+1)
		fmt.Fprintf(out, "%s |\n", gutter)
		fmt.Fprintf(out, "%d | %s\n", lineno, expandTabs(line))
		fmt.Fprintf(out, "%s | %s%s\n", gutter, strings.Repeat(" ", column), strings.Repeat("^", width))
	}
	if d.Help != "" {
		fmt.Fprintf(out, "  = help: %s\n", d.Help)
	}
	return out.Flush()
}

// stringWidth returns the column reached after printing text at column.
func stringWidth(column int, text string) int {
	for {
		nextTab := strings.IndexByte(text, '\t')
		if nextTab == -1 {
			return column + uniseg.StringWidth(text)
		}
		column += uniseg.StringWidth(text[:nextTab])
		column += tabstopWidth - (column % tabstopWidth)
		text = text[nextTab+1:]
	}
}

func expandTabs(line string) string {
	if !strings.Contains(line, "\t") {
		return line
	}
	var sb strings.Builder
	column := 0
	for {
		nextTab := strings.IndexByte(line, '\t')
		if nextTab == -1 {
			sb.WriteString(line)
			return sb.String()
		}
		sb.WriteString(line[:nextTab])
		column += uniseg.StringWidth(line[:nextTab])
		tab := tabstopWidth - (column % tabstopWidth)
		sb.WriteString(strings.Repeat(" ", tab))
		column += tab
		line = line[nextTab+1:]
	}
}
