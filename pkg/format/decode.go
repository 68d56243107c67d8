package format

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/aretw0/lumina/pkg/domain"
	"gopkg.in/yaml.v3"
)

// DecodeJSON parses a JSON document into a DisplayValue, keeping object keys
// in document order (duplicates included). Numbers are kept as json.Number.
func DecodeJSON(data []byte) (domain.DisplayValue, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeJSONValue(dec)
	if err != nil {
		return nil, fmt.Errorf("failed to decode json: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode json: unexpected data after top-level value")
	}
	return v, nil
}

func decodeJSONValue(dec *json.Decoder) (domain.DisplayValue, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '[':
			seq := domain.Sequence{}
			for dec.More() {
				item, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				seq = append(seq, item)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return seq, nil
		case '{':
			m := domain.Mapping{}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("unexpected object key %v", keyTok)
				}
				val, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				m = append(m, domain.Entry{Key: key, Value: val})
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return m, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %q", t)
	case nil:
		return domain.Null(), nil
	default:
		return domain.Scalar{Value: t}, nil
	}
}

// DecodeYAML parses a YAML document into a DisplayValue, keeping mapping
// keys in document order. An empty document decodes to null.
func DecodeYAML(data []byte) (domain.DisplayValue, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to decode yaml: %w", err)
	}
	return fromYAMLNode(&root), nil
}

func fromYAMLNode(n *yaml.Node) domain.DisplayValue {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return domain.Null()
		}
		return fromYAMLNode(n.Content[0])
	case yaml.SequenceNode:
		seq := make(domain.Sequence, 0, len(n.Content))
		for _, item := range n.Content {
			seq = append(seq, fromYAMLNode(item))
		}
		return seq
	case yaml.MappingNode:
		m := make(domain.Mapping, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i]
			keyText := key.Value
			if key.Kind != yaml.ScalarNode {
				keyText = Format(fromYAMLNode(key))
			}
			m = append(m, domain.Entry{Key: keyText, Value: fromYAMLNode(n.Content[i+1])})
		}
		return m
	case yaml.AliasNode:
		if n.Alias == nil {
			return domain.Null()
		}
		return fromYAMLNode(n.Alias)
	case yaml.ScalarNode:
		return yamlScalar(n)
	}
	return domain.Null()
}

func yamlScalar(n *yaml.Node) domain.Scalar {
	switch n.ShortTag() {
	case "!!null":
		return domain.Null()
	case "!!bool":
		if b, err := strconv.ParseBool(n.Value); err == nil {
			return domain.Bool(b)
		}
		var b bool
		if err := n.Decode(&b); err == nil {
			return domain.Bool(b)
		}
	case "!!int", "!!float":
		return domain.Number(json.Number(n.Value))
	}
	return domain.String(n.Value)
}
