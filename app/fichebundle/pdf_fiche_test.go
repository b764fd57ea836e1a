package fichebundle

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func mustFiche(t *testing.T, body string) *Fiche {
	t.Helper()
	fiche, err := ValidateFiche([]byte(body))
	assert.NoError(t, err)
	return fiche
}

const scenarioBody = `{
	"administratif": {"nom": "Dupont", "prenom": "Jean"},
	"motif_consultation": {"motif": "Douleur thoracique"},
	"facteurs_risque": {"tabac": "oui"},
	"antecedents_cardio": {},
	"consentement": {"accepte": true}
}`

func TestBuildLayoutDeterministic(t *testing.T) {
	fiche1 := mustFiche(t, scenarioBody)
	fiche2 := mustFiche(t, scenarioBody)

	assert.Equal(t, BuildLayout(fiche1), BuildLayout(fiche2))
}

func TestBuildLayoutScenario(t *testing.T) {
	layout := BuildLayout(mustFiche(t, scenarioBody))
	lines := layout.Lines()

	assert.Contains(t, lines, "FICHE PATIENT")
	assert.Contains(t, lines, "nom: Dupont")
	assert.Contains(t, lines, "prenom: Jean")
	assert.Contains(t, lines, "motif: Douleur thoracique")
	assert.Contains(t, lines, "tabac: oui")
	assert.Contains(t, lines, "accepte: true")
	// empty antecedents section renders a dash
	assert.Contains(t, lines, "-")
	assert.Len(t, layout.Pages, 1)
}

func TestBuildLayoutSectionOrder(t *testing.T) {
	layout := BuildLayout(mustFiche(t, scenarioBody))
	lines := layout.Lines()

	order := []string{
		"FICHE PATIENT",
		"Administratif",
		"Motif de consultation",
		"Facteurs de risque",
		"Antécédents cardio",
		"Consentement",
	}
	last := -1
	for _, heading := range order {
		idx := indexOf(lines, heading)
		assert.True(t, idx > last, "heading %q out of order", heading)
		last = idx
	}
}

func indexOf(lines []string, s string) int {
	for i, line := range lines {
		if line == s {
			return i
		}
	}
	return -1
}

func TestBuildLayoutOneLinePerPairInOrder(t *testing.T) {
	body := `{
		"administratif": {},
		"motif_consultation": {},
		"facteurs_risque": {"tabac": "non", "hta": "oui", "diabete": "non", "cholesterol": "oui", "heredite": "non"},
		"antecedents_cardio": {},
		"consentement": {}
	}`
	layout := BuildLayout(mustFiche(t, body))
	lines := layout.Lines()

	expected := []string{"tabac: non", "hta: oui", "diabete: non", "cholesterol: oui", "heredite: non"}
	start := indexOf(lines, "Facteurs de risque")
	assert.True(t, start >= 0)
	assert.Equal(t, expected, lines[start+1:start+1+len(expected)])
}

func TestBuildLayoutSkipsEmptyPrescription(t *testing.T) {
	layout := BuildLayout(mustFiche(t, scenarioBody))
	assert.Equal(t, -1, indexOf(layout.Lines(), "Traitement (OCR)"))

	withText := strings.Replace(scenarioBody, `"consentement"`, `"traitement_ocr": "Aspirine 100mg", "consentement"`, 1)
	layout = BuildLayout(mustFiche(t, withText))
	assert.NotEqual(t, -1, indexOf(layout.Lines(), "Traitement (OCR)"))
	assert.Contains(t, layout.Lines(), "Aspirine 100mg")
}

func TestWrapTextRespectsWidth(t *testing.T) {
	words := []string{}
	for i := 0; i < 40; i++ {
		words = append(words, fmt.Sprintf("mot%02d", i))
	}
	text := strings.Join(words, " ")

	lines := wrapText(text, 95)
	assert.True(t, len(lines) > 1)
	for _, line := range lines {
		assert.True(t, len(line) <= 95, "line too long: %q", line)
	}
	// no word lost, no word split
	assert.Equal(t, words, strings.Fields(strings.Join(lines, " ")))
}

func TestWrapTextKeepsLongWordWhole(t *testing.T) {
	long := strings.Repeat("x", 120)
	lines := wrapText("avant "+long+" apres", 95)
	assert.Contains(t, lines, long)
}

func TestBuildLayoutPaginatesLongPrescription(t *testing.T) {
	// 60 words of 90 chars each: every one forces its own line, which is
	// more than fits between the top and bottom margins.
	words := make([]string, 60)
	for i := range words {
		words[i] = fmt.Sprintf("ligne%02d%s", i, strings.Repeat("x", 83))
	}
	body := fmt.Sprintf(`{
		"administratif": {},
		"motif_consultation": {},
		"facteurs_risque": {},
		"antecedents_cardio": {},
		"consentement": {},
		"traitement_ocr": %q
	}`, strings.Join(words, " "))

	layout := BuildLayout(mustFiche(t, body))
	assert.True(t, len(layout.Pages) > 1, "expected more than one page, got %d", len(layout.Pages))

	lines := layout.Lines()
	for _, word := range words {
		assert.Contains(t, lines, word)
	}
}

func TestLayoutLinesStayAboveBottomMargin(t *testing.T) {
	words := make([]string, 80)
	for i := range words {
		words[i] = fmt.Sprintf("w%03d%s", i, strings.Repeat("y", 85))
	}
	body := fmt.Sprintf(`{
		"administratif": {},
		"motif_consultation": {},
		"facteurs_risque": {},
		"antecedents_cardio": {},
		"consentement": {},
		"traitement_ocr": %q
	}`, strings.Join(words, " "))

	layout := BuildLayout(mustFiche(t, body))
	for _, page := range layout.Pages {
		for _, line := range page.Lines {
			assert.True(t, line.Y >= layoutPageBottom, "line below margin: %q at %f", line.Text, line.Y)
			assert.True(t, line.Y <= layoutPageTop)
		}
	}
}

func TestWritePDF(t *testing.T) {
	layout := BuildLayout(mustFiche(t, scenarioBody))
	path := filepath.Join(t.TempDir(), "fiche_test.pdf")

	assert.NoError(t, WritePDF(layout, path))

	info, err := os.Stat(path)
	assert.NoError(t, err)
	assert.True(t, info.Size() > 0)
}

func TestWritePDFBadPathIsRenderFailure(t *testing.T) {
	layout := BuildLayout(mustFiche(t, scenarioBody))
	err := WritePDF(layout, filepath.Join(t.TempDir(), "missing", "sub", "fiche.pdf"))
	assert.Error(t, err)
}
