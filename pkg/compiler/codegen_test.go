package compiler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateSource(t *testing.T, src string) string {
	t.Helper()
	prog := parseSource(t, src)
	require.NoError(t, Analyze(prog))
	out, err := Generate(prog)
	require.NoError(t, err)
	return out
}

// body strips the fixed preamble and the closing brace of main.
func body(t *testing.T, out string) string {
	t.Helper()
	require.True(t, strings.HasPrefix(out, preamble), "missing preamble:\n%s", out)
	require.True(t, strings.HasSuffix(out, "}\n"), "main not closed:\n%s", out)
	return strings.TrimSuffix(strings.TrimPrefix(out, preamble), "}\n")
}

func TestGeneratePreamble(t *testing.T) {
	out := generateSource(t, "")
	expected := "#include <stdio.h>\n" +
		"#define print(num) printf(\"%d\\n\", (num))\n" +
		"int _ = 0;\n" +
		"int main() {\n" +
		"}\n"
	assert.Equal(t, expected, out)
}

func TestGenerateStatements(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Declaration",
			input:    "looksmaxxing x = 5|",
			expected: "    int x = 5;\n",
		},
		{
			name:     "Assignment",
			input:    "looksmaxxing x = 5| x = x rizz 1|",
			expected: "    int x = 5;\n    x = (x) + (1);\n",
		},
		{
			name:     "Call Statement",
			input:    "print(7)|",
			expected: "    _ = print(7);\n",
		},
		{
			name:  "If Else",
			input: "looksmaxxing x = 1| sus x == 1 >> x = 2| << sussy >> x = 3| <<",
			expected: "    int x = 1;\n" +
				"    if ((x) == (1)) {\n" +
				"        x = 2;\n" +
				"    } else {\n" +
				"        x = 3;\n" +
				"    }\n",
		},
		{
			name:  "If Without Else",
			input: "sus 1 >> sigma| <<",
			expected: "    if (1) {\n" +
				"        return 0;\n" +
				"    }\n",
		},
		{
			name:  "While",
			input: "looksmaxxing i = 0| edge i != 10 >> i = i rizz 1| <<",
			expected: "    int i = 0;\n" +
				"    while ((i) != (10)) {\n" +
				"        i = (i) + (1);\n" +
				"    }\n",
		},
		{
			name:  "Function",
			input: "skibidi add(a, b) >> sigma a rizz b| << print(add(1, 2))|",
			expected: "    int add(int a, int b) {\n" +
				"        return (a) + (b);\n" +
				"    }\n" +
				"    _ = print(add(1, 2));\n",
		},
		{
			name:  "Function Without Params",
			input: "skibidi one() >> sigma 1| <<",
			expected: "    int one() {\n" +
				"        return 1;\n" +
				"    }\n",
		},
		{
			name:  "Function Falling Off The End",
			input: "skibidi f(n) >> sus n >> sigma n| << <<",
			expected: "    int f(int n) {\n" +
				"        if (n) {\n" +
				"            return n;\n" +
				"        }\n" +
				"        return 0;\n" +
				"    }\n",
		},
		{
			name:  "Function Ending In Bare Return",
			input: "skibidi f() >> print(1)| sigma| <<",
			expected: "    int f() {\n" +
				"        _ = print(1);\n" +
				"        return 0;\n" +
				"    }\n",
		},
		{
			name:  "Shadowing Declaration Reads Outer Binding",
			input: "looksmaxxing x = 5| sus 1 >> looksmaxxing x = x rizz 1| looksmaxxing y = x| <<",
			expected: "    int x = 5;\n" +
				"    if (1) {\n" +
				"        int _t0 = (x) + (1);\n" +
				"        int x = _t0;\n" +
				"        int y = x;\n" +
				"    }\n",
		},
		{
			name:  "Shadowing Parameter Inside Call",
			input: "skibidi g(n) >> sus 1 >> looksmaxxing n = g(n fanumtax 1)| sigma n| << <<",
			expected: "    int g(int n) {\n" +
				"        if (1) {\n" +
				"            int _t0 = g((n) - (1));\n" +
				"            int n = _t0;\n" +
				"            return n;\n" +
				"        }\n" +
				"        return 0;\n" +
				"    }\n",
		},
		{
			name:     "Bare Return",
			input:    "sigma|",
			expected: "    return 0;\n",
		},
		{
			name:     "Every Operator",
			input:    "looksmaxxing a = 1 rizz 2 fanumtax 3 gyatt 4 mog 5 == 6 != 7|",
			expected: "    int a = ((1) + (2)) - (((3) * (4)) / (((5) == (6)) != (7)));\n",
		},
		{
			name:     "Equality Binds Tighter",
			input:    "looksmaxxing a = 2| looksmaxxing b = a gyatt a == 2|",
			expected: "    int a = 2;\n    int b = (a) * ((a) == (2));\n",
		},
		{
			name:     "Reserved C Names",
			input:    "looksmaxxing int = 1| skibidi main(for) >> sigma for| << print(main(int))|",
			expected: "    int int_ = 1;\n    int main_(int for_) {\n        return for_;\n    }\n    _ = print(main_(int_));\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := generateSource(t, tt.input)
			assert.Equal(t, tt.expected, body(t, out))
		})
	}
}

// unknownStmt is a Stmt the generator has no case for.
type unknownStmt struct{}

func (unknownStmt) stmtNode()      {}
func (unknownStmt) String() string { return "unknown" }

type unknownExpr struct{}

func (unknownExpr) exprNode()      {}
func (unknownExpr) String() string { return "unknown" }

func TestGenerateUnknownNode(t *testing.T) {
	_, err := Generate(&Program{Stmts: []Stmt{unknownStmt{}}})
	assert.EqualError(t, err, "codegen: unexpected statement compiler.unknownStmt")

	_, err = Generate(&Program{Stmts: []Stmt{&ReturnStmt{Value: unknownExpr{}}}})
	assert.EqualError(t, err, "codegen: unexpected expression compiler.unknownExpr")
}

// TestGenerateWellFormed checks that emitted C never has dangling braces or
// missing terminators: braces balance, and every line ends a statement or
// opens/closes a block.
func TestGenerateWellFormed(t *testing.T) {
	programs := []string{
		fibSource,
		"looksmaxxing x = 5| skibidi f(n) >> sigma x gyatt n| << print(f(3))|",
		"sus 1 >> sus 2 >> edge 0 >><< << sussy >> skibidi k() >><< << <<",
		"skibidi a() >> skibidi b() >> skibidi c() >> sigma 3| << sigma c()| << sigma b()| << print(a())|",
	}

	for _, src := range programs {
		out := generateSource(t, src)

		depth := 0
		for _, ch := range out {
			switch ch {
			case '{':
				depth++
			case '}':
				depth--
				require.GreaterOrEqual(t, depth, 0, "unbalanced braces:\n%s", out)
			}
		}
		assert.Equal(t, 0, depth, "unbalanced braces:\n%s", out)

		lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
		for _, l := range lines[3:] { // past the include, define, and discard lines
			l = strings.TrimSpace(l)
			ok := strings.HasSuffix(l, ";") || strings.HasSuffix(l, "{") || l == "}"
			assert.True(t, ok, "unterminated line %q in:\n%s", l, out)
		}
	}
}
