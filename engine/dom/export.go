package dom

import (
	"io"

	"github.com/aymerick/douceur/parser"
	"github.com/npillmayer/shortmark/core"
	"golang.org/x/net/html"
)

// WriteDocument writes the editable surface as a standalone HTML document.
// If stylesheet is non-empty, it is parsed as CSS and embedded into the
// document head. A stylesheet which does not parse is rejected with an
// error of code core.EINVALID and nothing is written.
func WriteDocument(w io.Writer, s *Surface, stylesheet string) error {
	var css string
	if stylesheet != "" {
		sheet, err := parser.Parse(stylesheet)
		if err != nil {
			return core.WrapError(err, core.EINVALID, "cannot parse stylesheet")
		}
		tracer().Debugf("embedding stylesheet with %d rules", len(sheet.Rules))
		css = sheet.String()
	}
	if _, err := io.WriteString(w, "<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"/>"); err != nil {
		return err
	}
	if css != "" {
		if _, err := io.WriteString(w, "<style>\n"+css+"\n</style>"); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, "</head><body>"); err != nil {
		return err
	}
	if err := html.Render(w, s.root); err != nil {
		return err
	}
	_, err := io.WriteString(w, "</body></html>\n")
	return err
}
