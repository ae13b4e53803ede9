package jsonvalue

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
)

// DecodeError reports that input text was not a single valid JSON document.
// A failed decode never produces a partial Value.
type DecodeError struct {
	Offset int64
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid json at offset %d: %v", e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Decode parses one JSON document. Object member order and number literals
// are preserved. A bare top-level scalar (null, boolean, number or string)
// is wrapped in a single-element list so that path queries can address it
// as element 0; lists and objects decode as-is.
func Decode(data []byte) (Value, error) {
	v, err := decodeDocument(data)
	if err != nil {
		return Value{}, err
	}
	if !v.IsContainer() {
		return ListValue(v), nil
	}
	return v, nil
}

// DecodeString is Decode over string input.
func DecodeString(s string) (Value, error) {
	return Decode([]byte(s))
}

func decodeDocument(data []byte) (Value, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Value{}, &DecodeError{Offset: 0, Err: errors.New("empty input")}
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return Value{}, wrapDecodeError(dec, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = errors.New("trailing data after document")
		}
		return Value{}, wrapDecodeError(dec, err)
	}
	return v, nil
}

func wrapDecodeError(dec *json.Decoder, err error) error {
	offset := dec.InputOffset()
	var syn *json.SyntaxError
	if errors.As(err, &syn) {
		offset = syn.Offset
	}
	return &DecodeError{Offset: offset, Err: err}
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return Value{}, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeList(dec)
		default:
			return Value{}, fmt.Errorf("unexpected delimiter %q", t.String())
		}
	case nil:
		return NullValue(), nil
	case bool:
		return BoolValue(t), nil
	case json.Number:
		return NumberValue(t.String()), nil
	case string:
		return StringValue(t), nil
	default:
		return Value{}, fmt.Errorf("unexpected token %v", tok)
	}
}

func decodeObject(dec *json.Decoder) (Value, error) {
	var members []Member
	index := map[string]int{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return Value{}, fmt.Errorf("object key is not a string: %v", keyTok)
		}
		val, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}
		if at, seen := index[key]; seen {
			members[at].Value = val
			continue
		}
		index[key] = len(members)
		members = append(members, Member{Key: key, Value: val})
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return ObjectValue(members...), nil
}

func decodeList(dec *json.Decoder) (Value, error) {
	var items []Value
	for dec.More() {
		item, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}
		items = append(items, item)
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return ListValue(items...), nil
}

// FromInterface converts an author-supplied literal (the shapes produced by
// encoding/json plus plain Go ints) into a Value. Unlike Decode it never
// wraps scalars: a fragment 27 means the scalar 27. Map keys are sorted so
// diagnostics remain deterministic. Values that are not JSON-representable
// yield an error.
func FromInterface(v any) (Value, error) {
	switch t := v.(type) {
	case nil:
		return NullValue(), nil
	case Value:
		return t, nil
	case bool:
		return BoolValue(t), nil
	case string:
		return StringValue(t), nil
	case json.Number:
		return NumberValue(t.String()), nil
	case int:
		return NumberValue(strconv.FormatInt(int64(t), 10)), nil
	case int64:
		return NumberValue(strconv.FormatInt(t, 10)), nil
	case float64:
		return NumberValue(strconv.FormatFloat(t, 'f', -1, 64)), nil
	case []any:
		items := make([]Value, len(t))
		for i, item := range t {
			iv, err := FromInterface(item)
			if err != nil {
				return Value{}, err
			}
			items[i] = iv
		}
		return ListValue(items...), nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		members := make([]Member, len(keys))
		for i, k := range keys {
			mv, err := FromInterface(t[k])
			if err != nil {
				return Value{}, err
			}
			members[i] = Member{Key: k, Value: mv}
		}
		return ObjectValue(members...), nil
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return Value{}, fmt.Errorf("unsupported literal type %T: %w", v, err)
		}
		return decodeDocument(b)
	}
}

// MustFromInterface is FromInterface for literals known to be valid, such as
// values written directly in test tables.
func MustFromInterface(v any) Value {
	val, err := FromInterface(v)
	if err != nil {
		panic(fmt.Sprintf("jsonvalue: %v", err))
	}
	return val
}
