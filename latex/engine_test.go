package latex

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/mathjson/latex/library"
	"github.com/dhamidi/mathjson/latex/parser"
	"github.com/dhamidi/mathjson/mathjson"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		// numbers
		{"3.14", `3.14`},
		{"-2", `-2`},
		{`10\%`, `0.1`},
		{`1.5\times 10^{3}`, `{"num":"1.5e3"}`},
		{`0.\overline{3}`, `{"num":"0.(3)"}`},

		// arithmetic
		{"1+2*3", `["Add",1,["Multiply",2,3]]`},
		{"a-b-c", `["Subtract",["Subtract","a","b"],"c"]`},
		{"-2x", `["Multiply",-2,"x"]`},
		{"-x", `["Negate","x"]`},
		{"+x", `"x"`},
		{"2x", `["Multiply",2,"x"]`},
		{`\pi r^2`, `["Multiply","Pi",["Power","r",2]]`},
		{`2\frac{3}{4}`, `["Add",2,["Rational",3,4]]`},
		{`2\,3/4`, `["Add",2,["Rational",3,4]]`},
		{"n!", `["Factorial","n"]`},
		{`x^2_1`, `["Power",["Subscript","x",1],2]`},
		{`x_1^2`, `["Power",["Subscript","x",1],2]`},
		{`x^2^3`, `["Power",["Power","x",2],3]`},
		{`a\bmod b`, `["Mod","a","b"]`},

		// delimiters
		{"(x)", `"x"`},
		{`\left(x\right)`, `"x"`},
		{"(a,b)", `["Delimiter","a","b"]`},
		{"1,2,3", `["Sequence",1,2,3]`},
		{`\{1,2\}`, `["Set",1,2]`},
		{"[1,2]", `["List",1,2]`},
		{"|x|", `["Abs","x"]`},
		{"|1+|2|+3|", `["Abs",["Add",1,["Abs",2],3]]`},
		{`\lfloor x\rfloor`, `["Floor","x"]`},

		// relations and logic
		{"x<y", `["Less","x","y"]`},
		{`x\le y`, `["LessEqual","x","y"]`},
		{"a=b=c", `["Equal","a","b","c"]`},
		{`x\in\R`, `["Element","x","RealNumbers"]`},
		{`p\land q\lor r`, `["Or",["And","p","q"],"r"]`},

		// identifiers and functions
		{`\alpha`, `"alpha"`},
		{`\mathrm{x_{max}}`, `"x_max"`},
		{`\mathbf{v}`, `"v_bold"`},
		{"f(x)", `["f","x"]`},
		{"f(a,b)", `["f","a","b"]`},
		{"f'(x)", `["Apply",["Derivative","f",1],"x"]`},
		{`f^{(2)}`, `["Derivative","f",2]`},
		{`\sin x`, `["Sin","x"]`},
		{`\sin(x)`, `["Sin","x"]`},
		{`\sin^2 x`, `["Power",["Sin","x"],2]`},
		{`\log_2 x`, `["Log","x",2]`},
		{`\operatorname{mean}(x)`, `["Mean","x"]`},
		{`\mathrm{e}^x`, `["Power","ExponentialE","x"]`},

		// constructs
		{`\frac{1}{2}`, `["Divide",1,2]`},
		{`\frac12`, `["Divide",1,2]`},
		{`\sqrt{x}`, `["Sqrt","x"]`},
		{`\sqrt[3]{x}`, `["Root","x",3]`},
		{`\sum_{i=1}^{n} i`, `["Sum","i",["Tuple","i",1,"n"]]`},
		{`\int x\,dx`, `["Integrate","x","x"]`},
		{`\int_0^1 x^2 dx`, `["Integrate",["Power","x",2],["Tuple","x",0,1]]`},
		{`\lim_{x\to 0} f(x)`, `["Limit",["f","x"],"x",0]`},
		{`\text{hello}`, `"'hello'"`},
		{`\begin{pmatrix}1&2\\3&4\end{pmatrix}`, `["Matrix",["List",["List",1,2],["List",3,4]]]`},
		{`\begin{cases}x & x>0\\-x & \text{otherwise}\end{cases}`, `["Which",["Greater","x",0],"x","True",["Negate","x"]]`},

		// display delimiters
		{"$x+1$", `["Add","x",1]`},
		{`\[x\]`, `"x"`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"x+", `["Add","x",["Error","'missing'"]]`},
		{`\frac{1`, `["Divide",["Error","'expected-closing-delimiter'",["LatexString","'{1'"]],["Error","'expected-argument'"]]`},
		{"x)", `["Sequence","x",["Error","'expected-open-delimiter'",["LatexString","')'"]]]`},
		{"(x", `["Error","'expected-closing-delimiter'",["LatexString","'(x'"]]`},
		{"[1,2", `["Error","'expected-closing-delimiter'",["LatexString","'[1,2'"]]`},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseErrorCodes(t *testing.T) {
	tests := []struct {
		input string
		code  string
	}{
		{`\unknowncommand`, parser.CodeUnexpectedCommand},
		{`\mathbf{x+1}`, parser.CodeInvalidIdentifier},
		{`\begin{foo}x\end{foo}`, parser.CodeUnknownEnvironment},
		{`\begin{pmatrix}1\end{bmatrix}`, parser.CodeUnbalancedEnvironment},
		{`\end{pmatrix}`, parser.CodeUnbalancedEnvironment},
		{`\begin x`, parser.CodeExpectedEnvironmentName},
		{"{1+2", parser.CodeExpectedClosingDelimiter},
		{`\right)`, parser.CodeExpectedOpenDelimiter},
		{`\left(x`, parser.CodeExpectedClosingDelimiter},
		{"f(x", parser.CodeExpectedClosingDelimiter},
		{`\lfloor x`, parser.CodeExpectedClosingDelimiter},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			errs := got.Errors()
			require.NotEmpty(t, errs, "no error in %s", got)
			assert.Equal(t, tt.code, errs[0].ErrorCode(), "in %s", got)
		})
	}
}

func TestParseNeverFailsOnMalformedInput(t *testing.T) {
	inputs := []string{
		"", "}", "{", "((", "))", `\left(`, `\right)`, "^", "_", "^^", "x^", "x_",
		`\frac`, `\sqrt[`, `\begin{`, `\end`, "&", `\\`, "|||", "+-*/",
		`\sum_`, `\int`, `\lim`, `\text{`, "''", `\mathrm{`, "1.2.3", `\left|x\right.`,
		strings.Repeat("{", 400) + "x", strings.Repeat("(", 100) + "x", strings.Repeat(`\left(`, 50) + "x",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			got, err := Parse(input)
			require.NoError(t, err)
			require.NotNil(t, got)
		})
	}
}

func TestUnclosedLeftDelimiter(t *testing.T) {
	got, err := Parse(`\left(x`)
	require.NoError(t, err)
	require.True(t, got.IsError(), "got %s", got)
	assert.Equal(t, parser.CodeExpectedClosingDelimiter, got.ErrorCode())
	assert.Equal(t, `\left(x`, got.ErrorContext())
}

func TestParseTerminatesOnDeepNesting(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"parens", strings.Repeat("(", 200) + "x"},
		{"brackets", strings.Repeat("[", 200) + "x"},
		{"braces", strings.Repeat("{", 400) + "x"},
		{"left", strings.Repeat(`\left(`, 100) + "x"},
		{"one close", strings.Repeat("(", 40) + "x)"},
		{"mixed", strings.Repeat("[(", 30) + "x)"},
		{"applications", strings.Repeat("f(", 30) + "x"},
		{"roots", strings.Repeat(`\sqrt[`, 30) + "x]"},
		{"bars", strings.Repeat("|", 41) + "x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *mathjson.Expr
			var err error
			done := make(chan struct{})
			go func() {
				defer close(done)
				got, err = Parse(tt.input)
			}()
			select {
			case <-done:
			case <-time.After(10 * time.Second):
				t.Fatalf("Parse did not finish")
			}
			require.NoError(t, err)
			require.NotNil(t, got)
			if tt.name != "bars" {
				assert.True(t, got.HasErrors(), "no error in %s", got)
			}
		})
	}
}

func TestSourceSpans(t *testing.T) {
	got, err := Parse(`x + \frac{1}{2}`, parser.WithSourceSpans())
	require.NoError(t, err)
	assert.Equal(t, `x + \frac{1}{2}`, got.Latex)
	assert.Equal(t, `\frac{1}{2}`, got.Op(1).Latex)
}

func TestWithEntries(t *testing.T) {
	extra, err := library.LoadEntries(strings.NewReader(`
entries:
  - kind: infix
    latex: '\oplus'
    name: DirectSum
    precedence: 275
    associativity: both
  - kind: symbol
    latex: '\pi'
    name: Tau
  - kind: function
    identifier: erf
    name: Erf
`))
	require.NoError(t, err)

	engine, err := WithEntries(extra)
	require.NoError(t, err)

	for input, want := range map[string]string{
		`a\oplus b\oplus c`:     `["DirectSum","a","b","c"]`,
		`\pi`:                   `"Tau"`,
		`\operatorname{erf}(x)`: `["Erf","x"]`,
		`1+2`:                   `["Add",1,2]`,
	} {
		got, err := engine.Parse(input)
		require.NoError(t, err)
		assert.Equal(t, want, got.String(), input)
	}

	got, err := Parse(`\pi`)
	require.NoError(t, err)
	assert.Equal(t, `"Pi"`, got.String(), "the default engine is unchanged")
}

func TestNewRejectsBadEntries(t *testing.T) {
	_, err := New([]parser.Entry{&parser.SymbolEntry{Name: "X"}})
	assert.ErrorContains(t, err, "building dictionary")
}

func TestEngineOptions(t *testing.T) {
	engine, err := New(library.Entries(), parser.WithSignificantWhitespace())
	require.NoError(t, err)

	got, err := engine.Parse("2 x")
	require.NoError(t, err)
	assert.Equal(t, `["Sequence",2,"x"]`, got.String())

	got, err = engine.Parse("2x")
	require.NoError(t, err)
	assert.Equal(t, `["Multiply",2,"x"]`, got.String())
}

func TestConcurrentParse(t *testing.T) {
	engine := Default()
	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got, err := engine.Parse(fmt.Sprintf(`\frac{%d}{x}+%d`, i, i))
			if err == nil {
				results[i] = got.String()
			}
		}(i)
	}
	wg.Wait()
	for i, got := range results {
		assert.Equal(t, fmt.Sprintf(`["Add",["Divide",%d,"x"],%d]`, i, i), got)
	}
}
