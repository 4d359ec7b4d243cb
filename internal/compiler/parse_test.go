package compiler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/pulsenet/internal/ir"
	"github.com/roach88/pulsenet/internal/testutil"
)

func TestParseNetwork_SampleNetworks(t *testing.T) {
	tests := []struct {
		name string
		text string
		want ir.Network
	}{
		{"inverter loop", testutil.InverterLoopText, testutil.InverterLoop()},
		{"counter", testutil.CounterText, testutil.Counter()},
		{"conjunction", testutil.ConjunctionText, testutil.Conjunction()},
		{"feeder", testutil.FeederText, testutil.Feeder()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseNetworkString(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseNetwork_WhitespaceAndComments(t *testing.T) {
	src := `
# entry
broadcaster->a,b

   %a ->  b
&b -> a ,  out
`
	n, err := ParseNetworkString(src)
	require.NoError(t, err)

	assert.Equal(t, []string{"broadcaster", "a", "b"}, n.Names())
	assert.Equal(t, []string{"a", "b"}, n.Modules[0].Destinations)
	assert.Equal(t, []string{"a", "out"}, n.Modules[2].Destinations)
	assert.Equal(t, ir.KindNand, n.Modules[2].Kind)
}

func TestParseNetwork_Empty(t *testing.T) {
	n, err := ParseNetworkString("\n\n")
	require.NoError(t, err)
	assert.Empty(t, n.Modules)
}

func TestParseNetwork_Errors(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		field string
		line  int
	}{
		{"missing arrow", "broadcaster a, b", "wiring", 1},
		{"untagged module", "broadcaster -> a\nfoo -> a", "name", 2},
		{"empty flipflop name", "% -> a", "name", 1},
		{"empty nand name", "& -> a", "name", 1},
		{"no destinations", "%a -> ", "destinations", 1},
		{"empty destination", "%a -> b,, c", "destinations", 1},
		{"trailing comma", "%a -> b,", "destinations", 1},
		{"duplicate module", "%a -> b\n\n&a -> b", "name", 3},
		{"duplicate across kinds", "broadcaster -> a\n%broadcaster -> a", "name", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseNetworkString(tt.src)
			require.Error(t, err)

			var ce *CompileError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.field, ce.Field)
			assert.Equal(t, tt.line, ce.Line)
			assert.True(t, strings.HasPrefix(err.Error(), "line "), err.Error())
		})
	}
}

func TestFormatNetwork_RoundTrip(t *testing.T) {
	for _, text := range []string{
		testutil.InverterLoopText,
		testutil.CounterText,
		testutil.ConjunctionText,
		testutil.FeederText,
	} {
		n, err := ParseNetworkString(text)
		require.NoError(t, err)

		assert.Equal(t, text, FormatNetwork(n))
	}
}

func TestCompileError_Error(t *testing.T) {
	assert.Equal(t, "line 4: name: bad", (&CompileError{Field: "name", Message: "bad", Line: 4}).Error())
	assert.Equal(t, "modules: missing", (&CompileError{Field: "modules", Message: "missing"}).Error())
}
