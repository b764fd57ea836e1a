package fichebundle

import (
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"cardioapp_backend/app/core"
)

// Layout geometry. Coordinates follow the fiche template: y starts at the top
// of the page (800) and decreases, a new page starts when the cursor would
// pass the bottom margin (120).
const (
	layoutPageTop    = 800.0
	layoutPageBottom = 120.0

	layoutMarginLeft  = 50.0
	layoutIndentLeft  = 60.0
	layoutLineHeight  = 14.0
	layoutMaxLineLen  = 95
	layoutTitleSize   = 14.0
	layoutHeadingSize = 12.0
	layoutBodySize    = 11.0
)

// A4 height in points, used to flip layout coordinates into the PDF
// coordinate system.
const pdfPageHeight = 842.0

type LayoutLine struct {
	X    float64
	Y    float64
	Text string
	Bold bool
	Size float64
}

type LayoutPage struct {
	Lines []LayoutLine
}

// DocumentLayout is the paginated text of one fiche, independent of the PDF
// encoding. Building it is deterministic for identical input.
type DocumentLayout struct {
	Title string
	Pages []LayoutPage
}

// Lines returns every text line of the document in reading order.
func (d *DocumentLayout) Lines() []string {
	var out []string
	for _, page := range d.Pages {
		for _, line := range page.Lines {
			out = append(out, line.Text)
		}
	}
	return out
}

type layoutCursor struct {
	doc *DocumentLayout
	y   float64
}

func (c *layoutCursor) page() *LayoutPage {
	return &c.doc.Pages[len(c.doc.Pages)-1]
}

func (c *layoutCursor) newPage() {
	c.doc.Pages = append(c.doc.Pages, LayoutPage{})
	c.y = layoutPageTop
}

func (c *layoutCursor) breakPageIfNeeded() {
	if c.y < layoutPageBottom {
		c.newPage()
	}
}

func (c *layoutCursor) add(x float64, text string, bold bool, size float64) {
	page := c.page()
	page.Lines = append(page.Lines, LayoutLine{X: x, Y: c.y, Text: text, Bold: bold, Size: size})
}

// BuildLayout lays the fiche out into pages: fixed section order, one
// "key: value" line per mapping entry in submitted order, long lines wrapped
// at the maximum width without splitting words.
func BuildLayout(fiche *Fiche) *DocumentLayout {
	doc := &DocumentLayout{Title: "Fiche Patient"}
	c := &layoutCursor{doc: doc}
	c.newPage()

	c.add(layoutMarginLeft, "FICHE PATIENT", true, layoutTitleSize)
	c.y -= 30

	layoutSection(c, "Administratif", &fiche.Administratif)
	layoutSection(c, "Motif de consultation", &fiche.MotifConsultation)
	layoutSection(c, "Facteurs de risque", &fiche.FacteursRisque)
	layoutSection(c, "Antécédents cardio", &fiche.AntecedentsCardio)
	if strings.TrimSpace(fiche.TraitementOCR) != "" {
		layoutTextSection(c, "Traitement (OCR)", fiche.TraitementOCR)
	}
	layoutSection(c, "Consentement", &fiche.Consentement)

	return doc
}

func layoutHeading(c *layoutCursor, title string) {
	c.breakPageIfNeeded()
	c.add(layoutMarginLeft, title, true, layoutHeadingSize)
	c.y -= 18
}

func layoutSection(c *layoutCursor, title string, m *OrderedMap) {
	layoutHeading(c, title)

	if m.Len() == 0 {
		c.breakPageIfNeeded()
		c.add(layoutIndentLeft, "-", false, layoutBodySize)
		c.y -= layoutLineHeight
	} else {
		for _, kv := range m.Pairs() {
			text := fmt.Sprintf("%s: %s", kv.Key, FormatValue(kv.Value))
			layoutMultiline(c, text)
		}
	}
	c.y -= 6
}

func layoutTextSection(c *layoutCursor, title, text string) {
	layoutHeading(c, title)
	layoutMultiline(c, text)
	c.y -= 6
}

// layoutMultiline emits text wrapped at the maximum line length, breaking the
// page between wrapped lines when the cursor reaches the bottom margin. Words
// are never split; a word longer than the width gets its own line.
func layoutMultiline(c *layoutCursor, text string) {
	s := strings.TrimSpace(text)
	if s == "" {
		return
	}

	for _, line := range wrapText(s, layoutMaxLineLen) {
		c.breakPageIfNeeded()
		c.add(layoutIndentLeft, line, false, layoutBodySize)
		c.y -= layoutLineHeight
	}
}

func wrapText(s string, maxLen int) []string {
	words := strings.Fields(s)
	lines := []string{}
	line := ""
	for _, w := range words {
		if line == "" {
			line = w
			continue
		}
		if len(line)+len(w)+1 <= maxLen {
			line = line + " " + w
		} else {
			lines = append(lines, line)
			line = w
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

// WritePDF draws the layout into a PDF file. Any drawing or write error is a
// render failure.
func WritePDF(layout *DocumentLayout, path string) error {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetTitle(layout.Title, true)
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, page := range layout.Pages {
		pdf.AddPage()
		for _, line := range page.Lines {
			style := ""
			if line.Bold {
				style = "B"
			}
			pdf.SetFont("Helvetica", style, line.Size)
			pdf.Text(line.X, pdfPageHeight-line.Y, tr(line.Text))
		}
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("%w: %v", core.ErrRenderFailure, err)
	}
	return nil
}
