// FILE: lixenwraith/options/help.go
package options

import (
	"bufio"
	"io"
	"strings"

	"github.com/rivo/uniseg"
)

// Print writes the help listing: the caption, one line per option with its
// description wrapped to the catalog's line length, then each group.
// A tab in a description paragraph marks the indent of its continuation lines.
func (c *Catalog) Print(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if err := c.print(bw, c.optionColumnWidth()); err != nil {
		return err
	}
	return bw.Flush()
}

// String returns the help listing
func (c *Catalog) String() string {
	var b strings.Builder
	_ = c.Print(&b)
	return b.String()
}

func (c *Catalog) print(w *bufio.Writer, width int) error {
	if c.caption != "" {
		w.WriteString(c.caption + ":\n")
	}

	for i, opt := range c.options {
		if c.grouped[i] {
			continue
		}
		if err := formatOne(w, opt, width, c.lineLength); err != nil {
			return err
		}
		w.WriteByte('\n')
	}

	for _, group := range c.groups {
		w.WriteByte('\n')
		if err := group.print(w, width); err != nil {
			return err
		}
	}
	return nil
}

// optionColumnWidth sizes the name column to the widest entry, within the line geometry
func (c *Catalog) optionColumnWidth() int {
	width := 23
	for _, opt := range c.options {
		width = max(width, uniseg.StringWidth(firstColumn(opt)))
	}
	width = min(width, c.lineLength-c.minDescriptionLength-1)
	return width + 1
}

func firstColumn(opt *Option) string {
	return "  " + opt.FormatName() + " " + opt.FormatParameter()
}

func formatOne(w *bufio.Writer, opt *Option, width, lineLength int) error {
	first := firstColumn(opt)
	w.WriteString(first)
	if opt.Description() == "" {
		return nil
	}

	if used := uniseg.StringWidth(first); used >= width {
		w.WriteByte('\n')
		w.WriteString(strings.Repeat(" ", width))
	} else {
		w.WriteString(strings.Repeat(" ", width-used))
	}
	return formatDescription(w, opt.Description(), width, lineLength)
}

func formatDescription(w *bufio.Writer, desc string, indent, lineLength int) error {
	// One column less than the terminal, so a full line never wraps on its own
	if lineLength > 1 {
		lineLength--
	}

	paragraphs := strings.Split(desc, "\n")
	for i, par := range paragraphs {
		if err := formatParagraph(w, par, indent, lineLength); err != nil {
			return err
		}
		if i < len(paragraphs)-1 {
			w.WriteByte('\n')
			w.WriteString(strings.Repeat(" ", indent))
		}
	}
	return nil
}

func formatParagraph(w *bufio.Writer, par string, indent, lineLength int) error {
	lineLength -= indent
	if lineLength <= 0 {
		w.WriteString(par)
		return nil
	}

	parIndent := 0
	if tab := strings.IndexByte(par, '\t'); tab >= 0 {
		if strings.Count(par, "\t") > 1 {
			return &Error{Kind: ErrInvalidCatalog, Message: "Only one tab per paragraph is allowed in the options description"}
		}
		parIndent = len([]rune(par[:tab]))
		par = par[:tab] + par[tab+1:]
		if parIndent >= lineLength {
			parIndent = 0
		}
	}

	text := []rune(par)
	if len(text) < lineLength {
		w.WriteString(par)
		return nil
	}

	begin, end := 0, len(text)
	firstLine := true
	for begin < end {
		if !firstLine {
			// drop a single leading space left over from the break
			if text[begin] == ' ' && begin+1 < end && text[begin+1] != ' ' {
				begin++
			}
		}

		lineEnd := begin + min(end-begin, lineLength)

		// avoid chopping a word when a space exists in the second half of the line
		if text[lineEnd-1] != ' ' && lineEnd < end && text[lineEnd] != ' ' {
			lastSpace := -1
			for i := lineEnd - 1; i >= begin; i-- {
				if text[i] == ' ' {
					lastSpace = i + 1
					break
				}
			}
			if lastSpace > begin && lineEnd-lastSpace < lineLength/2 {
				lineEnd = lastSpace
			}
		}

		w.WriteString(string(text[begin:lineEnd]))

		if firstLine {
			indent += parIndent
			lineLength -= parIndent
			firstLine = false
		}

		if lineEnd != end {
			w.WriteByte('\n')
			w.WriteString(strings.Repeat(" ", indent))
		}
		begin = lineEnd
	}
	return nil
}
