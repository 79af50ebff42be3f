package scanner_test

import (
	"testing"

	"github.com/mna/blc/lang/scanner"
	"github.com/mna/blc/lang/token"
	"github.com/stretchr/testify/require"
)

type gotTok struct {
	tok token.Token
	lit string
}

func scanAll(t *testing.T, src string) []gotTok {
	t.Helper()
	var s scanner.Scanner
	s.Init("test", []byte(src))
	var out []gotTok
	for {
		_, tok, val := s.Scan()
		if tok == token.EOF {
			break
		}
		lit := val.String
		if lit == "" {
			lit = val.Raw
		}
		out = append(out, gotTok{tok, lit})
	}
	require.NoError(t, s.Errs())
	return out
}

func TestScanArithmetic(t *testing.T) {
	got := scanAll(t, "x = 2 + 3 * 4")
	want := []gotTok{
		{token.IDENT, "x"}, {token.ASSIGN, ""}, {token.INT, "2"},
		{token.PLUS, ""}, {token.INT, "3"}, {token.STAR, ""}, {token.INT, "4"},
	}
	require.Equal(t, want, got)
}

func TestScanKeywordsAndComment(t *testing.T) {
	got := scanAll(t, "if x { return true } # trailing comment")
	want := []gotTok{
		{token.IF, "if"}, {token.IDENT, "x"}, {token.LBRACE, ""},
		{token.RETURN, "return"}, {token.TRUE, "true"}, {token.RBRACE, ""},
		{token.COMMENT, "# trailing comment"},
	}
	require.Equal(t, want, got)
}

func TestScanStringAndFloat(t *testing.T) {
	got := scanAll(t, `s = "a\nb"; f = 1.5e2`)
	require.Equal(t, []gotTok{
		{token.IDENT, "s"}, {token.ASSIGN, ""}, {token.STRING, "a\nb"}, {token.SEMI, ""},
		{token.IDENT, "f"}, {token.ASSIGN, ""}, {token.FLOAT, "1.5e2"},
	}, got)
}

func TestScanComparisonsAndDotted(t *testing.T) {
	got := scanAll(t, "a.b.c >= 1 and c != 2 or not d")
	want := []gotTok{
		{token.IDENT, "a"}, {token.DOT, ""}, {token.IDENT, "b"}, {token.DOT, ""}, {token.IDENT, "c"},
		{token.GE, ""}, {token.INT, "1"}, {token.AND, "and"}, {token.IDENT, "c"}, {token.NEQ, ""},
		{token.INT, "2"}, {token.OR, "or"}, {token.NOT, "not"}, {token.IDENT, "d"},
	}
	require.Equal(t, want, got)
}

func TestScanIllegalCharacter(t *testing.T) {
	var s scanner.Scanner
	s.Init("test", []byte("x = @"))
	for {
		_, tok, _ := s.Scan()
		if tok == token.EOF {
			break
		}
	}
	require.Error(t, s.Errs())
}
