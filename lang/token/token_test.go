package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenString(t *testing.T) {
	for tok := Token(0); tok < maxToken; tok++ {
		require.NotEmpty(t, tok.String(), "token %d", tok)
	}
}

func TestGoString(t *testing.T) {
	require.Equal(t, "'+'", PLUS.GoString())
	require.Equal(t, "'=='", EQ.GoString())
	require.Equal(t, "if", IF.GoString())
	require.Equal(t, "identifier", IDENT.GoString())
}

func TestIsComparison(t *testing.T) {
	for _, tok := range []Token{LT, GT, LE, GE, EQ, NEQ} {
		require.True(t, tok.IsComparison(), tok.String())
	}
	for _, tok := range []Token{PLUS, AND, IF, IDENT} {
		require.False(t, tok.IsComparison(), tok.String())
	}
}

func TestIsArithmetic(t *testing.T) {
	for _, tok := range []Token{PLUS, MINUS, STAR, SLASH, PERCENT, CARET} {
		require.True(t, tok.IsArithmetic(), tok.String())
	}
	for _, tok := range []Token{LT, AND, IF, IDENT} {
		require.False(t, tok.IsArithmetic(), tok.String())
	}
}

func TestKeywords(t *testing.T) {
	for tok := AND; tok < maxToken; tok++ {
		got, ok := Keywords[tok.String()]
		require.True(t, ok)
		require.Equal(t, tok, got)
	}
	require.Len(t, Keywords, int(maxToken-AND))
}
