package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Document is one record. Data maps attribute id to raw value.
// Order records the key order of Data as it was decoded, when known.
type Document struct {
	ID           string         `json:"id" yaml:"id"`
	CollectionID string         `json:"collectionId" yaml:"collectionId"`
	Data         map[string]any `json:"data" yaml:"data"`
	Order        []string       `json:"-" yaml:"-"`
}

// Keys returns the data keys: Order first (skipping keys no longer in Data),
// then any remaining keys in sorted order.
func (d Document) Keys() []string {
	keys := make([]string, 0, len(d.Data))
	seen := make(map[string]bool, len(d.Data))
	for _, k := range d.Order {
		if _, ok := d.Data[k]; ok && !seen[k] {
			keys = append(keys, k)
			seen[k] = true
		}
	}
	rest := make([]string, 0, len(d.Data)-len(keys))
	for k := range d.Data {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

// UnmarshalJSON decodes the document keeping numbers as json.Number and
// remembering the key order of the data object.
func (d *Document) UnmarshalJSON(b []byte) error {
	var aux struct {
		ID           string          `json:"id"`
		CollectionID string          `json:"collectionId"`
		Data         json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	d.ID = aux.ID
	d.CollectionID = aux.CollectionID
	d.Data = nil
	d.Order = nil

	if len(aux.Data) == 0 || bytes.Equal(bytes.TrimSpace(aux.Data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(aux.Data))
	dec.UseNumber()
	if err := dec.Decode(&d.Data); err != nil {
		return fmt.Errorf("document %s: %w", aux.ID, err)
	}

	order, err := objectKeys(aux.Data)
	if err != nil {
		return fmt.Errorf("document %s: %w", aux.ID, err)
	}
	d.Order = order
	return nil
}

// objectKeys lists the top-level keys of a JSON object in document order.
func objectKeys(raw json.RawMessage) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)
		keys = append(keys, key)

		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
	}
	return keys, nil
}
