package jsonvalue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLooseScalarEquals(t *testing.T) {
	tests := []struct {
		name string
		a    Value
		b    Value
		want bool
	}{
		{"null equals null", NullValue(), NullValue(), true},
		{"null vs false", NullValue(), BoolValue(false), false},
		{"bool equals same bool", BoolValue(true), BoolValue(true), true},
		{"bool vs other bool", BoolValue(true), BoolValue(false), false},
		{"bool vs number one", BoolValue(true), NumberValue("1"), false},
		{"bool vs string true", BoolValue(true), StringValue("true"), false},
		{"numbers numerically", NumberValue("25"), NumberValue("25.0"), true},
		{"numbers via exponent", NumberValue("2.5e1"), NumberValue("25"), true},
		{"numbers differ", NumberValue("25"), NumberValue("26"), false},
		{"number equals numeric string", NumberValue("27"), StringValue("27"), true},
		{"numeric string equals number", StringValue("27.0"), NumberValue("27"), true},
		{"number vs word", NumberValue("27"), StringValue("banana"), false},
		{"number vs padded string", NumberValue("27"), StringValue(" 27"), false},
		{"strings bytewise", StringValue("abc"), StringValue("abc"), true},
		{"strings differ bytewise", StringValue("27"), StringValue("27.0"), false},
		{"string case sensitive", StringValue("Abc"), StringValue("abc"), false},
		{"container never loose", ListValue(NumberValue("1")), ListValue(NumberValue("1")), false},
		{"object never loose", ObjectValue(), ObjectValue(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LooseScalarEquals(tt.a, tt.b))
			assert.Equal(t, tt.want, LooseScalarEquals(tt.b, tt.a), "loose equality should be symmetric")
		})
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want bool
	}{
		{"identical objects", `{"a": 1, "b": 2}`, `{"a": 1, "b": 2}`, true},
		{"member order ignored", `{"a": 1, "b": 2}`, `{"b": 2, "a": 1}`, true},
		{"extra key breaks equality", `{"a": 1}`, `{"a": 1, "b": 2}`, false},
		{"list order matters", `[1, 2]`, `[2, 1]`, false},
		{"list equal", `[1, 2]`, `[1, 2]`, true},
		{"numbers numeric", `[1e3]`, `[1000]`, true},
		{"number vs string not equal strictly", `[27]`, `["27"]`, false},
		{"nested", `{"u": {"n": "x", "ids": [1]}}`, `{"u": {"ids": [1], "n": "x"}}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			av := mustDecodeAny(t, tt.a)
			bv := mustDecodeAny(t, tt.b)
			assert.Equal(t, tt.want, Equal(av, bv))
		})
	}
}

func mustDecodeAny(t *testing.T, s string) Value {
	t.Helper()
	v, err := decodeDocument([]byte(s))
	if err != nil {
		t.Fatalf("decode %q: %v", s, err)
	}
	return v
}
