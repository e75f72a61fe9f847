package lexer_test

import (
	"testing"

	"github.com/siilike/pgrow/internal/lexer"
	"github.com/siilike/pgrow/internal/token"
	"github.com/stretchr/testify/require"
)

type expectedToken struct {
	expectedType    token.Type
	expectedLiteral string
	expectedPos     int
}

func collect(t *testing.T, input string, mode lexer.Mode) []expectedToken {
	t.Helper()
	l := lexer.New(input, mode)
	var out []expectedToken
	for {
		tok, err := l.NextToken()
		require.NoError(t, err)
		out = append(out, expectedToken{tok.Type, tok.Literal, tok.Pos})
		if tok.Type == token.EOF {
			return out
		}
	}
}

func TestNextToken_Record(t *testing.T) {
	input := `1,,"a""b","c\\d",NULL`

	expected := []expectedToken{
		{token.UNQUOTED, "1", 0},
		{token.NULL, "", 2},
		{token.QUOTED, `a"b`, 3},
		{token.QUOTED, `c\d`, 10},
		{token.NULL, "NULL", 17},
		{token.EOF, "", 21},
	}

	require.Equal(t, expected, collect(t, input, lexer.Record))
}

func TestNextToken_Array(t *testing.T) {
	input := `1,NULL,"a\"b",{2,"x,y"},"",`

	expected := []expectedToken{
		{token.UNQUOTED, "1", 0},
		{token.NULL, "NULL", 2},
		{token.QUOTED, `a"b`, 7},
		{token.UNQUOTED, `{2,"x,y"}`, 14},
		{token.QUOTED, "", 24},
		{token.NULL, "", 27},
		{token.EOF, "", 27},
	}

	require.Equal(t, expected, collect(t, input, lexer.Array))
}

func TestNextToken_NestedArrayIsOpaque(t *testing.T) {
	expected := []expectedToken{
		{token.UNQUOTED, `{"a\"b"}`, 0},
		{token.QUOTED, "c", 9},
		{token.EOF, "", 12},
	}

	require.Equal(t, expected, collect(t, `{"a\"b"},"c"`, lexer.Array))
}

func TestNextToken_QuoteRuns(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"Only an escaped quote", `""""`, `"`},
		{"Two escaped quotes", `""""""`, `""`},
		{"Leading escaped quote", `"""a"`, `"a`},
		{"Trailing escaped quote", `"a"""`, `a"`},
		{"Backslash then quote", `"a\\"""`, `a\"`},
		{"Backslash escaped quote", `"a\"b"`, `a"b`},
		{"Three backslashes", `"\\\x"`, `\x`},
		{"Four backslashes", `"\\\\"`, `\\`},
		{"Comma inside quotes", `"a,b"`, "a,b"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := lexer.New(tc.input, lexer.Record)
			tok, err := l.NextToken()
			require.NoError(t, err)
			require.Equal(t, token.QUOTED, tok.Type)
			require.Equal(t, tc.expected, tok.Literal)

			tok, err = l.NextToken()
			require.NoError(t, err)
			require.Equal(t, token.EOF, tok.Type)
		})
	}
}

func TestNextToken_NullPrefix(t *testing.T) {
	// The character after the keyword is skipped even when it is not a comma.
	expected := []expectedToken{
		{token.NULL, "NULL", 0},
		{token.NULL, "", 5},
		{token.UNQUOTED, "1", 6},
		{token.EOF, "", 7},
	}

	require.Equal(t, expected, collect(t, "NULLX,1", lexer.Record))
}

func TestNextToken_Errors(t *testing.T) {
	testCases := []struct {
		name        string
		input       string
		mode        lexer.Mode
		expectedErr string
	}{
		{"Backslash outside quotes", `a\b`, lexer.Record, "backslash outside quotes at offset 1"},
		{"Unterminated quote", `"abc`, lexer.Array, "unterminated quoted element at offset 0"},
		{"Unterminated record quote", `1,"abc`, lexer.Record, "unterminated quoted element at offset 2"},
		{"Unclosed nested array", `{1,2`, lexer.Array, "unbalanced braces at offset 0"},
		{"Stray closing brace", `1},2`, lexer.Array, "unbalanced braces at offset 2"},
		{"Escape at end", `"a\`, lexer.Array, "escape at end of input at offset 2"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l := lexer.New(tc.input, tc.mode)
			var err error
			for {
				var tok token.Token
				tok, err = l.NextToken()
				if err != nil || tok.Type == token.EOF {
					break
				}
			}
			require.Error(t, err)
			require.EqualError(t, err, tc.expectedErr)

			var lexErr *lexer.Error
			require.ErrorAs(t, err, &lexErr)
		})
	}
}
