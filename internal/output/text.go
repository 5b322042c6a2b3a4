package output

import "strconv"

// TextFormatter formats results as one human-readable line per input.
type TextFormatter struct {
	styles    Styles
	filesOnly bool
}

// NewTextFormatter creates a TextFormatter. With filesOnly set, only the
// names of inputs containing non-ASCII bytes are printed.
func NewTextFormatter(styles Styles, filesOnly bool) *TextFormatter {
	return &TextFormatter{styles: styles, filesOnly: filesOnly}
}

func (f *TextFormatter) Format(buf []byte, r Result) []byte {
	// errors go to the log, not to the report
	if r.Err != nil {
		return buf
	}

	if f.filesOnly {
		if r.ASCII() {
			return buf
		}
		buf = append(buf, f.styles.Path.Render(r.Name())...)
		return append(buf, '\n')
	}

	buf = append(buf, f.styles.Path.Render(r.Name())...)
	buf = append(buf, f.styles.Separator.Render(":")...)
	buf = append(buf, ' ')
	if r.ASCII() {
		buf = append(buf, f.styles.ASCII.Render("ascii")...)
	} else {
		buf = append(buf, f.styles.NonASCII.Render("non-ascii")...)
		buf = append(buf, " at offset "...)
		buf = append(buf, f.styles.Offset.Render(strconv.FormatInt(r.Index, 10))...)
	}
	return append(buf, '\n')
}

var _ Formatter = (*TextFormatter)(nil)
