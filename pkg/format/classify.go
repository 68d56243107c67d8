package format

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"

	"github.com/aretw0/lumina/pkg/domain"
)

// Classify turns a native Go value into a DisplayValue.
//
// Slices and arrays become sequences. Maps with string keys become mappings;
// Go maps carry no insertion order, so their keys are sorted. Values that are
// neither scalar, sequence nor mapping fall back to their fmt string form.
func Classify(v any) domain.DisplayValue {
	switch x := v.(type) {
	case nil:
		return domain.Null()
	case domain.DisplayValue:
		return x
	case string, bool, json.Number,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return domain.Scalar{Value: x}
	case []byte:
		return domain.String(string(x))
	case []any:
		seq := make(domain.Sequence, len(x))
		for i, item := range x {
			seq[i] = Classify(item)
		}
		return seq
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := make(domain.Mapping, len(keys))
		for i, k := range keys {
			m[i] = domain.Entry{Key: k, Value: Classify(x[k])}
		}
		return m
	case fmt.Stringer:
		return domain.String(x.String())
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return domain.Null()
		}
		return Classify(rv.Elem().Interface())
	case reflect.Slice:
		if rv.IsNil() {
			return domain.Sequence{}
		}
		fallthrough
	case reflect.Array:
		seq := make(domain.Sequence, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			seq[i] = Classify(rv.Index(i).Interface())
		}
		return seq
	case reflect.Map:
		type pair struct {
			key string
			val reflect.Value
		}
		pairs := make([]pair, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			pairs = append(pairs, pair{key: fmt.Sprint(iter.Key().Interface()), val: iter.Value()})
		}
		sort.Slice(pairs, func(i, j int) bool { return pairs[i].key < pairs[j].key })
		m := make(domain.Mapping, len(pairs))
		for i, p := range pairs {
			m[i] = domain.Entry{Key: p.key, Value: Classify(p.val.Interface())}
		}
		return m
	case reflect.String:
		return domain.String(rv.String())
	case reflect.Bool:
		return domain.Bool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return domain.Int(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return domain.Scalar{Value: rv.Uint()}
	case reflect.Float32, reflect.Float64:
		return domain.Float(rv.Float())
	}

	return domain.String(fmt.Sprint(v))
}
