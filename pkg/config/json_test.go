package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONParser(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		data        string
		canParse    bool
		wantErr     bool
		errContains string
		want        *Config
	}{
		{
			name:     "rules_in_order",
			filename: "rules.json",
			data:     `{"rules": [{"search": "b*", "replacement": "x"}, {"search": "a", "replacement": "y", "case_sensitive": true}], "concurrency": 3}`,
			canParse: true,
			want: &Config{
				Rules: []RuleConfig{
					{Search: "b*", Replacement: "x"},
					{Search: "a", Replacement: "y", CaseSensitive: true},
				},
				Concurrency: 3,
			},
		},
		{
			name:     "no_defaults_before_validate",
			filename: " RULES.JSON ",
			data:     `{"rules": []}`,
			canParse: true,
			want:     &Config{Rules: []RuleConfig{}},
		},
		{
			name:        "unknown_top_level_field",
			filename:    "rules.json",
			data:        `{"rules": [], "destination": "out"}`,
			canParse:    true,
			wantErr:     true,
			errContains: `unknown field "destination"`,
		},
		{
			name:        "unknown_rule_field",
			filename:    "rules.json",
			data:        `{"rules": [{"search": "a", "old": "b"}]}`,
			canParse:    true,
			wantErr:     true,
			errContains: `unknown field "old"`,
		},
		{
			name:        "wrong_type",
			filename:    "rules.json",
			data:        `{"concurrency": "many"}`,
			canParse:    true,
			wantErr:     true,
			errContains: "parsing JSON",
		},
		{
			name:     "not_json",
			filename: "rules.yaml",
			canParse: false,
		},
	}

	p := &JSONParser{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.canParse, p.CanParse(tt.filename))
			if !tt.canParse {
				return
			}

			cfg, err := p.Parse(context.Background(), []byte(tt.data))
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg)
		})
	}
}
