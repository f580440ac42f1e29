package lint

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverity(t *testing.T) {
	tests := []struct {
		input string
		want  Severity
		ok    bool
	}{
		{"error", SeverityError, true},
		{"WARNING", SeverityWarning, true},
		{"warn", SeverityWarning, true},
		{" info ", SeverityInfo, true},
		{"hint", SeverityHint, true},
		{"fatal", SeverityWarning, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseSeverity(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, "unknown", Severity(42).String())
	assert.True(t, SeverityError.AtLeast(SeverityWarning))
	assert.True(t, SeverityWarning.AtLeast(SeverityWarning))
	assert.False(t, SeverityHint.AtLeast(SeverityWarning))
}

func TestSeverity_JSON(t *testing.T) {
	data, err := json.Marshal(map[string]Severity{"s": SeverityError})
	require.NoError(t, err)
	assert.JSONEq(t, `{"s":"error"}`, string(data))

	var out struct{ S Severity }
	require.NoError(t, json.Unmarshal([]byte(`{"S":"hint"}`), &out))
	assert.Equal(t, SeverityHint, out.S)

	assert.Error(t, json.Unmarshal([]byte(`{"S":"loud"}`), &out))
}

func TestDecodeOptions(t *testing.T) {
	type opts struct {
		Format          string `mapstructure:"format"`
		CaseInsensitive bool   `mapstructure:"case_insensitive"`
		Max             int    `mapstructure:"max"`
	}

	var o opts
	require.NoError(t, DecodeOptions("TST01", map[string]any{
		"format":           "^a$",
		"case_insensitive": "true", // from an environment variable
		"max":              "10",
	}, &o))
	assert.Equal(t, opts{Format: "^a$", CaseInsensitive: true, Max: 10}, o)

	o = opts{Format: "keep"}
	require.NoError(t, DecodeOptions("TST01", nil, &o))
	assert.Equal(t, "keep", o.Format, "nil options keep defaults")

	err := DecodeOptions("TST01", map[string]any{"fromat": "x"}, &o)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "fromat", cfgErr.Key)

	err = DecodeOptions("TST01", map[string]any{"max": "many"}, &o)
	require.ErrorAs(t, err, &cfgErr)
	assert.Empty(t, cfgErr.Key)
}
