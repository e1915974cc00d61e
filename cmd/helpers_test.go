package cmd

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{input: "s\n", want: true},
		{input: "S\n", want: true},
		{input: "sim\n", want: true},
		{input: "y\n", want: true},
		{input: "y", want: true},
		{input: "n\n", want: false},
		{input: "\n", want: false},
		{input: "", want: false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			var out bytes.Buffer

			got := promptConfirm(strings.NewReader(tt.input), &out, "Excluir? [s/N]: ")
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "Excluir? [s/N]: ", out.String())
		})
	}
}

func TestParseMonth(t *testing.T) {
	now := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)

	got, err := parseMonth("", now, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, now, got)

	got, err = parseMonth("2023-12", now, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 2023, got.Year())
	assert.Equal(t, time.December, got.Month())

	_, err = parseMonth("12/2023", now, time.UTC)
	assert.Error(t, err)
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{name: "short", input: "Ana", maxLen: 10, want: "Ana"},
		{name: "exact", input: "Ana", maxLen: 3, want: "Ana"},
		{name: "long", input: "Maria da Conceição", maxLen: 10, want: "Maria d..."},
		{name: "tiny limit", input: "João", maxLen: 2, want: "Jo"},
		{name: "multibyte kept whole", input: "Conceição", maxLen: 8, want: "Conce..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, truncateString(tt.input, tt.maxLen))
		})
	}
}

func TestCenterString(t *testing.T) {
	assert.Equal(t, "  Mês  ", centerString("Mês", 7))
	assert.Equal(t, "toolong", centerString("toolong", 3))
}

func TestPrintInfoBox(t *testing.T) {
	var out bytes.Buffer

	printInfoBox(&out, "Resumo", map[string]string{"Total": "R$ 10.00", "Mês": "2024-03"}, []string{"Mês", "Total", "Missing"})

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Contains(t, lines[1], "Resumo")
	assert.Contains(t, lines[3], "Mês: 2024-03")
	assert.Contains(t, lines[4], "Total: R$ 10.00")

	for _, l := range lines {
		assert.Equal(t, boxWidth, len([]rune(l)), l)
	}
}
