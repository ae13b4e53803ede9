package jsonvalue

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeString_PreservesMemberOrder(t *testing.T) {
	v, err := DecodeString(`{"zeta": 1, "alpha": 2, "mid": {"b": 1, "a": 2}}`)
	require.NoError(t, err)
	require.Equal(t, KindObject, v.Kind())

	var keys []string
	for _, m := range v.Members() {
		keys = append(keys, m.Key)
	}
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, keys)

	mid, ok := v.Get("mid")
	require.True(t, ok)
	assert.Equal(t, "b", mid.Members()[0].Key)
	assert.Equal(t, "a", mid.Members()[1].Key)
}

func TestDecodeString_NumberLiterals(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		literal   string
		canonical string
	}{
		{"integer verbatim", `{"n": 25}`, "25", "25"},
		{"negative integer", `{"n": -3}`, "-3", "-3"},
		{"fraction trimmed", `{"n": 2.50}`, "2.50", "2.5"},
		{"exponent expanded", `{"n": 1e3}`, "1e3", "1000"},
		{"negative exponent", `{"n": 1.5e-2}`, "1.5e-2", "0.015"},
		{"zero fraction kept distinct", `{"n": 25.0}`, "25.0", "25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := DecodeString(tt.input)
			require.NoError(t, err)
			n, ok := v.Get("n")
			require.True(t, ok)
			assert.Equal(t, KindNumber, n.Kind())
			assert.Equal(t, tt.literal, n.NumberLiteral())
			assert.Equal(t, tt.canonical, n.CanonicalNumber())
		})
	}
}

func TestDecodeString_WrapsBareScalars(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  Kind
	}{
		{"bare number", `27`, KindNumber},
		{"bare string", `"hello"`, KindString},
		{"bare null", `null`, KindNull},
		{"bare bool", `true`, KindBool},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := DecodeString(tt.input)
			require.NoError(t, err)
			require.Equal(t, KindList, v.Kind())
			require.Equal(t, 1, v.Len())
			assert.Equal(t, tt.kind, v.Items()[0].Kind())
		})
	}
}

func TestDecodeString_ContainersNotWrapped(t *testing.T) {
	obj, err := DecodeString(`{"a": 1}`)
	require.NoError(t, err)
	assert.Equal(t, KindObject, obj.Kind())

	list, err := DecodeString(`[1, 2, 3]`)
	require.NoError(t, err)
	assert.Equal(t, KindList, list.Kind())
	assert.Equal(t, 3, list.Len())
}

func TestDecodeString_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"whitespace only", "   \n\t"},
		{"unterminated object", `{"a": 1`},
		{"bad token", `{invalid}`},
		{"trailing data", `{"a": 1} extra`},
		{"second document", `{} {}`},
		{"bare word", `hello`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeString(tt.input)
			require.Error(t, err)
			var decodeErr *DecodeError
			assert.True(t, errors.As(err, &decodeErr), "want *DecodeError, got %T", err)
		})
	}
}

func TestDecodeString_DuplicateKeyLastWins(t *testing.T) {
	v, err := DecodeString(`{"a": 1, "b": 2, "a": 3}`)
	require.NoError(t, err)
	require.Equal(t, 2, v.Len())
	assert.Equal(t, "a", v.Members()[0].Key)
	a, _ := v.Get("a")
	assert.Equal(t, "3", a.NumberLiteral())
}

func TestFromInterface(t *testing.T) {
	t.Run("scalar not wrapped", func(t *testing.T) {
		v, err := FromInterface(27)
		require.NoError(t, err)
		assert.Equal(t, KindNumber, v.Kind())
		assert.Equal(t, "27", v.NumberLiteral())
	})

	t.Run("map keys sorted", func(t *testing.T) {
		v, err := FromInterface(map[string]any{"zeta": 1, "alpha": 2})
		require.NoError(t, err)
		require.Equal(t, 2, v.Len())
		assert.Equal(t, "alpha", v.Members()[0].Key)
		assert.Equal(t, "zeta", v.Members()[1].Key)
	})

	t.Run("nested literal", func(t *testing.T) {
		v, err := FromInterface(map[string]any{
			"user": map[string]any{"name": "nadia", "admin": true},
			"ids":  []any{1, 2},
		})
		require.NoError(t, err)
		user, ok := v.Get("user")
		require.True(t, ok)
		name, ok := user.Get("name")
		require.True(t, ok)
		assert.Equal(t, "nadia", name.Text())
		ids, _ := v.Get("ids")
		assert.Equal(t, 2, ids.Len())
	})

	t.Run("json number kept verbatim", func(t *testing.T) {
		v, err := FromInterface(json.Number("1e3"))
		require.NoError(t, err)
		assert.Equal(t, "1e3", v.NumberLiteral())
		assert.Equal(t, "1000", v.CanonicalNumber())
	})

	t.Run("float64 rendered canonically", func(t *testing.T) {
		v, err := FromInterface(2.5)
		require.NoError(t, err)
		assert.Equal(t, "2.5", v.NumberLiteral())
	})

	t.Run("value passthrough", func(t *testing.T) {
		orig := StringValue("x")
		v, err := FromInterface(orig)
		require.NoError(t, err)
		assert.True(t, Equal(orig, v))
	})

	t.Run("struct falls back to marshal", func(t *testing.T) {
		type payload struct {
			Name string `json:"name"`
		}
		v, err := FromInterface(payload{Name: "nadia"})
		require.NoError(t, err)
		name, ok := v.Get("name")
		require.True(t, ok)
		assert.Equal(t, "nadia", name.Text())
	})

	t.Run("unsupported type", func(t *testing.T) {
		_, err := FromInterface(make(chan int))
		assert.Error(t, err)
	})
}

func TestValue_Interface(t *testing.T) {
	v, err := DecodeString(`{"name": "nadia", "age": 30, "admin": false, "tags": ["a"], "meta": null}`)
	require.NoError(t, err)

	got := v.Interface()
	want := map[string]any{
		"name":  "nadia",
		"age":   float64(30),
		"admin": false,
		"tags":  []any{"a"},
		"meta":  nil,
	}
	assert.Equal(t, want, got)
}

func TestValue_JSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"order kept", `{"b": 1, "a": 2}`, `{"b":1,"a":2}`},
		{"canonical numbers", `[1e3, 2.50]`, `[1000,2.5]`},
		{"escaping", `{"q": "say \"hi\""}`, `{"q":"say \"hi\""}`},
		{"null and bools", `[null, true, false]`, `[null,true,false]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := DecodeString(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.JSON())
		})
	}
}
