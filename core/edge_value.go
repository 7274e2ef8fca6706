// File: edge_value.go
// Role: EdgeValue, the single edge slot shared by labels and numeric costs.
//
// Determinism:
//   - Equal compares kind first, then label (==) or cost (==).
//
// Notes:
//   - EdgeValue is a comparable struct, so it can key a Go map as long as
//     its label is comparable. AddEdge enforces that, and rejects NaN and
//     infinite costs.
//   - The JSON form carries the label's Go type, so an int label decodes
//     as an int again.

package core

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
)

// EdgeKind tags how an EdgeValue is interpreted.
type EdgeKind uint8

const (
	// KindLabel marks an opaque label compared by equality.
	KindLabel EdgeKind = iota

	// KindCost marks a numeric cost used by weighted algorithms.
	KindCost
)

// String returns "label" or "cost".
func (k EdgeKind) String() string {
	switch k {
	case KindLabel:
		return "label"
	case KindCost:
		return "cost"
	default:
		return fmt.Sprintf("EdgeKind(%d)", uint8(k))
	}
}

// EdgeValue is either a label or a cost. The zero value is Label(nil).
type EdgeValue struct {
	kind  EdgeKind
	label any
	cost  float64
}

// Label builds a label-valued edge.
func Label(v any) EdgeValue { return EdgeValue{kind: KindLabel, label: v} }

// Cost builds a cost-valued edge.
func Cost(c float64) EdgeValue { return EdgeValue{kind: KindCost, cost: c} }

// Kind reports the interpretation of v.
func (v EdgeValue) Kind() EdgeKind { return v.kind }

// IsLabel reports whether v carries a label.
func (v EdgeValue) IsLabel() bool { return v.kind == KindLabel }

// IsCost reports whether v carries a cost.
func (v EdgeValue) IsCost() bool { return v.kind == KindCost }

// AsLabel returns the label and true, or nil and false for a cost.
func (v EdgeValue) AsLabel() (any, bool) {
	if v.kind != KindLabel {
		return nil, false
	}

	return v.label, true
}

// AsCost returns the cost and true, or 0 and false for a label.
func (v EdgeValue) AsCost() (float64, bool) {
	if v.kind != KindCost {
		return 0, false
	}

	return v.cost, true
}

// Equal reports whether v and o have the same kind and payload.
// Uncomparable labels are never equal.
func (v EdgeValue) Equal(o EdgeValue) bool {
	if v.kind != o.kind {
		return false
	}
	if v.kind == KindCost {
		return v.cost == o.cost
	}
	if !isComparable(v.label) || !isComparable(o.label) {
		return false
	}

	return v.label == o.label
}

// HasLabel is shorthand for v.Equal(Label(label)).
func (v EdgeValue) HasLabel(label any) bool { return v.Equal(Label(label)) }

// String renders the value for logs and CLI output.
func (v EdgeValue) String() string {
	if v.kind == KindCost {
		return fmt.Sprintf("cost(%g)", v.cost)
	}

	return fmt.Sprintf("%v", v.label)
}

// validate rejects labels that cannot be compared with == and costs that
// are NaN or infinite.
func (v EdgeValue) validate() error {
	switch v.kind {
	case KindLabel:
		if !isComparable(v.label) {
			return fmt.Errorf("%w: label of type %T is not comparable", ErrInvalidEdgeValue, v.label)
		}
	case KindCost:
		if math.IsNaN(v.cost) || math.IsInf(v.cost, 0) {
			return fmt.Errorf("%w: cost %v is not finite", ErrInvalidEdgeValue, v.cost)
		}
	default:
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidEdgeValue, v.kind)
	}

	return nil
}

// labelDecoders maps a wire type name to a decoder that restores the label
// with its original Go type.
var labelDecoders = map[string]func(json.RawMessage) (any, error){
	"string":  decodeLabel[string],
	"bool":    decodeLabel[bool],
	"int":     decodeLabel[int],
	"int8":    decodeLabel[int8],
	"int16":   decodeLabel[int16],
	"int32":   decodeLabel[int32],
	"int64":   decodeLabel[int64],
	"uint":    decodeLabel[uint],
	"uint8":   decodeLabel[uint8],
	"uint16":  decodeLabel[uint16],
	"uint32":  decodeLabel[uint32],
	"uint64":  decodeLabel[uint64],
	"float32": decodeLabel[float32],
	"float64": decodeLabel[float64],
}

func decodeLabel[T any](raw json.RawMessage) (any, error) {
	var x T
	if err := json.Unmarshal(raw, &x); err != nil {
		return nil, err
	}

	return x, nil
}

// labelType names the wire type of a label. Only nil, strings, booleans and
// the built-in numeric types have one.
func labelType(label any) (string, bool) {
	switch x := label.(type) {
	case nil:
		return "", true
	case string:
		return "string", true
	case bool:
		return "bool", true
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%T", x), true
	case float32:
		return "float32", !math.IsNaN(float64(x)) && !math.IsInf(float64(x), 0)
	case float64:
		return "float64", !math.IsNaN(x) && !math.IsInf(x, 0)
	default:
		return "", false
	}
}

// EncodableLabel reports whether label survives a JSON round trip with its
// Go type intact: nil, a string, a bool or a finite built-in number.
func EncodableLabel(label any) bool {
	_, ok := labelType(label)
	return ok
}

// edgeValueJSON is the wire form: either a cost, or a label with the name of
// its Go type.
type edgeValueJSON struct {
	Label json.RawMessage `json:"label,omitempty"`
	Type  string          `json:"type,omitempty"`
	Cost  *float64        `json:"cost,omitempty"`
}

// MarshalJSON encodes a cost as {"cost": c} and a label as
// {"label": v, "type": "int"}. Labels without a wire type fail with
// ErrInvalidEdgeValue.
func (v EdgeValue) MarshalJSON() ([]byte, error) {
	if err := v.validate(); err != nil {
		return nil, err
	}
	if v.kind == KindCost {
		c := v.cost
		return json.Marshal(edgeValueJSON{Cost: &c})
	}

	typ, ok := labelType(v.label)
	if !ok {
		return nil, fmt.Errorf("%w: label of type %T cannot be encoded", ErrInvalidEdgeValue, v.label)
	}
	if v.label == nil {
		return []byte(`{}`), nil
	}
	raw, err := json.Marshal(v.label)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEdgeValue, err)
	}

	return json.Marshal(edgeValueJSON{Label: raw, Type: typ})
}

// UnmarshalJSON decodes the form written by MarshalJSON. A label without a
// type is decoded as plain JSON, so numbers come back as float64.
func (v *EdgeValue) UnmarshalJSON(data []byte) error {
	var raw edgeValueJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEdgeValue, err)
	}
	if raw.Cost != nil {
		*v = Cost(*raw.Cost)
		return v.validate()
	}
	if len(raw.Label) == 0 || string(raw.Label) == "null" {
		*v = Label(nil)
		return nil
	}

	var (
		label any
		err   error
	)
	if raw.Type == "" {
		err = json.Unmarshal(raw.Label, &label)
	} else {
		dec, ok := labelDecoders[raw.Type]
		if !ok {
			return fmt.Errorf("%w: unknown label type %q", ErrInvalidEdgeValue, raw.Type)
		}
		label, err = dec(raw.Label)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEdgeValue, err)
	}
	*v = Label(label)

	return v.validate()
}

func isComparable(x any) bool {
	if x == nil {
		return true
	}

	return reflect.TypeOf(x).Comparable()
}
