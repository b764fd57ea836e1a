package fichebundle

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"cardioapp_backend/app/core"
)

// Fiche is the submitted patient intake form. The sub-sections are open-ended
// key/value bags; keys are whatever the frontend sent, in the order it sent
// them.
type Fiche struct {
	Administratif     OrderedMap `json:"administratif"`
	MotifConsultation OrderedMap `json:"motif_consultation"`
	FacteursRisque    OrderedMap `json:"facteurs_risque"`
	AntecedentsCardio OrderedMap `json:"antecedents_cardio"`
	TraitementOCR     string     `json:"traitement_ocr"`
	Consentement      OrderedMap `json:"consentement"`
}

// FicheRecord is the append-only archive row. Rows are never updated or
// deleted.
type FicheRecord struct {
	core.Model
	Token       string    `json:"token" gorm:"unique_index"`
	SubmittedAt time.Time `json:"submitted_at"`
	RawPayload  string    `json:"raw_payload" gorm:"type:text"`
}

func (FicheRecord) TableName() string {
	return "fiches"
}

// FicheListItem is what the admin archive listing returns per row.
type FicheListItem struct {
	Token       string    `json:"id"`
	SubmittedAt time.Time `json:"submitted_at"`
	RawPayload  string    `json:"raw_payload"`
}

type SubmitResponse struct {
	Ok               bool   `json:"ok"`
	Id               string `json:"id"`
	DocumentFilename string `json:"document_filename"`
	DocumentUrl      string `json:"document_url"`
	AdminUrl         string `json:"admin_url"`
}

var requiredSections = []string{
	"administratif",
	"motif_consultation",
	"facteurs_risque",
	"antecedents_cardio",
	"consentement",
}

// ValidateFiche checks the payload shape and decodes it. Every required
// section must be present as a JSON object; unknown extra keys are ignored.
// The returned error names the first offending field.
func ValidateFiche(body []byte) (*Fiche, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		return nil, &core.ValidationError{Field: "body"}
	}

	for _, section := range requiredSections {
		raw, ok := top[section]
		if !ok {
			return nil, &core.ValidationError{Field: section}
		}
		if !isJSONObject(raw) {
			return nil, &core.ValidationError{Field: section}
		}
	}
	if raw, ok := top["traitement_ocr"]; ok && !isJSONNull(raw) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, &core.ValidationError{Field: "traitement_ocr"}
		}
	}

	fiche := &Fiche{}
	if err := json.Unmarshal(body, fiche); err != nil {
		return nil, &core.ValidationError{Field: "body"}
	}
	return fiche, nil
}

func isJSONObject(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) > 0 && t[0] == '{'
}

func isJSONNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

// KeyValue is one entry of an OrderedMap. Raw keeps the value bytes as
// submitted so the payload survives a marshal round-trip unchanged.
type KeyValue struct {
	Key   string
	Value interface{}
	Raw   json.RawMessage
}

// OrderedMap is a JSON object that preserves the insertion order of the
// submitted payload, which plain Go maps do not.
type OrderedMap struct {
	pairs []KeyValue
}

func (m *OrderedMap) Len() int {
	return len(m.pairs)
}

func (m *OrderedMap) Pairs() []KeyValue {
	return m.pairs
}

func (m *OrderedMap) Set(key string, value interface{}) {
	raw, _ := json.Marshal(value)
	for i := range m.pairs {
		if m.pairs[i].Key == key {
			m.pairs[i].Value = value
			m.pairs[i].Raw = raw
			return
		}
	}
	m.pairs = append(m.pairs, KeyValue{Key: key, Value: value, Raw: raw})
}

func (m *OrderedMap) Get(key string) (interface{}, bool) {
	for _, kv := range m.pairs {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return nil, false
}

func (m *OrderedMap) UnmarshalJSON(b []byte) error {
	m.pairs = nil

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	t, err := dec.Token()
	if err != nil {
		return err
	}
	if t == nil {
		return nil
	}
	delim, ok := t.(json.Delim)
	if !ok || delim != '{' {
		return fmt.Errorf("expected JSON object, got %v", t)
	}

	for dec.More() {
		keyToken, err := dec.Token()
		if err != nil {
			return err
		}
		key := keyToken.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}

		valueDec := json.NewDecoder(bytes.NewReader(raw))
		valueDec.UseNumber()
		var value interface{}
		if err := valueDec.Decode(&value); err != nil {
			return err
		}

		m.pairs = append(m.pairs, KeyValue{Key: key, Value: value, Raw: raw})
	}

	// closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

func (m OrderedMap) MarshalJSON() ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.WriteByte('{')
	for i, kv := range m.pairs {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(kv.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(kv.Raw)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// FormatValue renders a mapping value the way it appears on the PDF.
func FormatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case json.Number:
		return val.String()
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(b)
	}
}
