package fichebundle

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"cardioapp_backend/app/core"
)

func TestOrderedMapPreservesInsertionOrder(t *testing.T) {
	var m OrderedMap
	err := json.Unmarshal([]byte(`{"b":1,"a":"x","c":true,"zz":null}`), &m)
	assert.NoError(t, err)

	keys := []string{}
	for _, kv := range m.Pairs() {
		keys = append(keys, kv.Key)
	}
	assert.Equal(t, []string{"b", "a", "c", "zz"}, keys)
}

func TestOrderedMapMarshalRoundTrip(t *testing.T) {
	in := `{"tabac":"oui","hta":true,"imc":27.5,"autres":{"sport":"non"}}`

	var m OrderedMap
	assert.NoError(t, json.Unmarshal([]byte(in), &m))

	out, err := json.Marshal(m)
	assert.NoError(t, err)
	assert.Equal(t, in, string(out))
}

func TestOrderedMapGet(t *testing.T) {
	var m OrderedMap
	assert.NoError(t, json.Unmarshal([]byte(`{"nom":"Dupont","age":63}`), &m))

	v, ok := m.Get("nom")
	assert.True(t, ok)
	assert.Equal(t, "Dupont", v)

	_, ok = m.Get("prenom")
	assert.False(t, ok)
}

func TestOrderedMapRejectsNonObject(t *testing.T) {
	var m OrderedMap
	assert.Error(t, json.Unmarshal([]byte(`["a","b"]`), &m))
}

func TestValidateFiche(t *testing.T) {
	body := []byte(`{
		"administratif": {"nom": "Dupont", "prenom": "Jean"},
		"motif_consultation": {"motif": "Douleur thoracique"},
		"facteurs_risque": {"tabac": "oui"},
		"antecedents_cardio": {},
		"consentement": {"accepte": true}
	}`)

	fiche, err := ValidateFiche(body)
	assert.NoError(t, err)
	assert.Equal(t, 2, fiche.Administratif.Len())
	assert.Equal(t, 0, fiche.AntecedentsCardio.Len())
	assert.Equal(t, "", fiche.TraitementOCR)
}

func TestValidateFicheMissingSectionNamesField(t *testing.T) {
	body := []byte(`{
		"motif_consultation": {},
		"facteurs_risque": {},
		"antecedents_cardio": {},
		"consentement": {}
	}`)

	_, err := ValidateFiche(body)
	assert.Error(t, err)

	validationErr, ok := err.(*core.ValidationError)
	assert.True(t, ok)
	assert.Equal(t, "administratif", validationErr.Field)
}

func TestValidateFicheRejectsNonObjectSection(t *testing.T) {
	body := []byte(`{
		"administratif": {},
		"motif_consultation": {},
		"facteurs_risque": "tabac",
		"antecedents_cardio": {},
		"consentement": {}
	}`)

	_, err := ValidateFiche(body)
	validationErr, ok := err.(*core.ValidationError)
	assert.True(t, ok)
	assert.Equal(t, "facteurs_risque", validationErr.Field)
}

func TestValidateFicheRejectsNonStringPrescription(t *testing.T) {
	body := []byte(`{
		"administratif": {},
		"motif_consultation": {},
		"facteurs_risque": {},
		"antecedents_cardio": {},
		"consentement": {},
		"traitement_ocr": {"bad": "shape"}
	}`)

	_, err := ValidateFiche(body)
	validationErr, ok := err.(*core.ValidationError)
	assert.True(t, ok)
	assert.Equal(t, "traitement_ocr", validationErr.Field)
}

func TestValidateFicheIgnoresUnknownKeys(t *testing.T) {
	body := []byte(`{
		"administratif": {},
		"motif_consultation": {},
		"facteurs_risque": {},
		"antecedents_cardio": {},
		"consentement": {},
		"frontend_version": "2.3.1"
	}`)

	_, err := ValidateFiche(body)
	assert.NoError(t, err)
}

func TestValidateFicheRejectsNonJSONBody(t *testing.T) {
	_, err := ValidateFiche([]byte(`nom=Dupont`))
	validationErr, ok := err.(*core.ValidationError)
	assert.True(t, ok)
	assert.Equal(t, "body", validationErr.Field)
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "", FormatValue(nil))
	assert.Equal(t, "oui", FormatValue("oui"))
	assert.Equal(t, "true", FormatValue(true))
	assert.Equal(t, "false", FormatValue(false))
	assert.Equal(t, "27.5", FormatValue(json.Number("27.5")))
	assert.Equal(t, `{"sport":"non"}`, FormatValue(map[string]interface{}{"sport": "non"}))
}
