package bytecode_test

import (
	"testing"

	"github.com/mna/blc/lang/bytecode"
	"github.com/stretchr/testify/require"
)

func TestValueConstructorsAndPredicates(t *testing.T) {
	cases := []struct {
		v    bytecode.Value
		kind bytecode.Kind
	}{
		{bytecode.Int(42), bytecode.KindInt},
		{bytecode.Float(3.5), bytecode.KindFloat},
		{bytecode.Bool(true), bytecode.KindBool},
		{bytecode.Char('x'), bytecode.KindChar},
		{bytecode.StrRef(3), bytecode.KindStrRef},
		{bytecode.ListRef(1), bytecode.KindListRef},
		{bytecode.ObjectRef(0), bytecode.KindObjectRef},
	}
	for _, c := range cases {
		require.Equal(t, c.kind, c.v.Kind(), c.v.String())
	}
}

func TestValueExtractors(t *testing.T) {
	require.Equal(t, int64(7), bytecode.Int(7).AsInt())
	require.Equal(t, 1.5, bytecode.Float(1.5).AsFloat())
	require.True(t, bytecode.Bool(true).AsBool())
	require.False(t, bytecode.Bool(false).AsBool())
	require.Equal(t, 'z', bytecode.Char('z').AsChar())
	require.Equal(t, uint32(9), bytecode.StrRef(9).AsRef())
}

func TestValueGobRoundTrip(t *testing.T) {
	vals := []bytecode.Value{
		bytecode.Int(-17),
		bytecode.Float(2.71828),
		bytecode.Bool(true),
		bytecode.Char('!'),
		bytecode.StrRef(12),
		bytecode.ListRef(0),
		bytecode.ObjectRef(5),
	}
	for _, v := range vals {
		data, err := v.GobEncode()
		require.NoError(t, err)
		var got bytecode.Value
		require.NoError(t, got.GobDecode(data))
		require.Equal(t, v, got)
	}
}

func TestValueString(t *testing.T) {
	require.Equal(t, "42", bytecode.Int(42).String())
	require.Equal(t, "true", bytecode.Bool(true).String())
}
