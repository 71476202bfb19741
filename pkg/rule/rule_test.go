package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		name          string
		search        string
		caseSensitive bool
		want          *Pattern
	}{
		{
			name:   "whole_word",
			search: "cat",
			want:   &Pattern{Needle: "cat", Boundary: Whole},
		},
		{
			name:   "contains",
			search: "*log*",
			want:   &Pattern{Needle: "log", Boundary: Contains},
		},
		{
			name:          "ends_with",
			search:        "*ing",
			caseSensitive: true,
			want:          &Pattern{Needle: "ing", Boundary: EndsWith, CaseSensitive: true},
		},
		{
			name:   "starts_with",
			search: "pre*",
			want:   &Pattern{Needle: "pre", Boundary: StartsWith},
		},
		{
			name:   "only_one_marker_stripped_per_side",
			search: "**x**",
			want:   &Pattern{Needle: "*x*", Boundary: Contains},
		},
		{
			name:   "metacharacters_are_literal",
			search: "a.b(c)",
			want:   &Pattern{Needle: "a.b(c)", Boundary: Whole},
		},
		{
			name:   "empty",
			search: "",
		},
		{
			name:   "single_star",
			search: "*",
		},
		{
			name:   "double_star",
			search: "**",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compile(tt.search, tt.caseSensitive)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompileIsDeterministic(t *testing.T) {
	text := "Foo foo FOO food *foo* foo_bar"
	for _, search := range []string{"foo", "foo*", "*foo", "*foo*"} {
		for _, cs := range []bool{true, false} {
			a := Compile(search, cs)
			b := Compile(search, cs)
			assert.Equal(t, a.FindAll(text), b.FindAll(text), "search %q case sensitive %v", search, cs)
		}
	}
}

func TestFindAll(t *testing.T) {
	tests := []struct {
		name          string
		search        string
		caseSensitive bool
		text          string
		want          []string
	}{
		{
			name:   "whole_word_default",
			search: "cat",
			text:   "cats category cat scatter",
			want:   []string{"cat"},
		},
		{
			name:          "contains_wildcard",
			search:        "*log*",
			caseSensitive: true,
			text:          "catalog logger logs",
			want:          []string{"catalog", "logger", "logs"},
		},
		{
			name:   "starts_with",
			search: "data*",
			text:   "data dataset metadata",
			want:   []string{"data", "dataset"},
		},
		{
			name:   "ends_with",
			search: "*set",
			text:   "set dataset settle",
			want:   []string{"set", "dataset"},
		},
		{
			name:   "case_insensitive",
			search: "id",
			text:   "ID Id id iD",
			want:   []string{"ID", "Id", "id", "iD"},
		},
		{
			name:          "case_sensitive",
			search:        "id",
			caseSensitive: true,
			text:          "ID Id id",
			want:          []string{"id"},
		},
		{
			name:   "unicode_letters_are_word_chars",
			search: "cafe",
			text:   "cafe cafeé écafe cafe",
			want:   []string{"cafe", "cafe"},
		},
		{
			name:   "digits_and_underscore_are_word_chars",
			search: "x",
			text:   "x x1 _x x,x",
			want:   []string{"x", "x", "x"},
		},
		{
			name:   "csv_delimiters_are_boundaries",
			search: "foo",
			text:   "foo,foo\tfoo;\"foo\"",
			want:   []string{"foo", "foo", "foo", "foo"},
		},
		{
			name:   "metacharacters_match_literally",
			search: "a.b",
			text:   "a.b axb",
			want:   []string{"a.b"},
		},
		{
			name:   "ends_with_prefers_longest_prefix",
			search: "*ab",
			text:   "abab",
			want:   []string{"abab"},
		},
		{
			name:   "non_word_needle_needs_word_neighbour",
			search: "-",
			text:   "a-b - c",
			want:   []string{"-"},
		},
		{
			name:   "non_overlapping",
			search: "*aa*",
			text:   "aaaa aa",
			want:   []string{"aaaa", "aa"},
		},
		{
			name:   "no_match",
			search: "dog",
			text:   "cats and birds",
			want:   nil,
		},
		{
			name:   "empty_text",
			search: "dog",
			text:   "",
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Compile(tt.search, tt.caseSensitive)
			require.NotNil(t, p)

			var got []string
			for _, m := range p.FindAll(tt.text) {
				got = append(got, tt.text[m.Start:m.End])
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, len(tt.want), p.Count(tt.text))
		})
	}
}

func TestFindAllFragments(t *testing.T) {
	p := Compile("*log*", true)
	require.NotNil(t, p)

	text := "catalog logger"
	matches := p.FindAll(text)
	require.Len(t, matches, 2)

	first := matches[0]
	assert.Equal(t, "cata", text[first.Start:first.NeedleStart])
	assert.Equal(t, "log", text[first.NeedleStart:first.NeedleEnd])
	assert.Equal(t, "", text[first.NeedleEnd:first.End])

	second := matches[1]
	assert.Equal(t, "", text[second.Start:second.NeedleStart])
	assert.Equal(t, "ger", text[second.NeedleEnd:second.End])
}

func TestActiveAndValidate(t *testing.T) {
	rules := []Rule{
		{Search: "", Replacement: "x"},
		{Search: "*", Replacement: "x"},
		{Search: "a", Replacement: "b"},
		{Search: "**", Replacement: "x"},
	}

	active := Active(rules)
	require.Len(t, active, 1)
	assert.Equal(t, "a", active[0].Search)
	require.NoError(t, Validate(rules))

	err := Validate([]Rule{{Search: "*"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoActiveRules))

	err = Validate(nil)
	assert.True(t, errors.Is(err, ErrNoActiveRules))
}

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		expr      string
		want      Rule
		wantError string
	}{
		{
			name: "simple",
			expr: "foo=>bar",
			want: Rule{Search: "foo", Replacement: "bar"},
		},
		{
			name: "empty_replacement",
			expr: "*tmp*=>",
			want: Rule{Search: "*tmp*", Replacement: ""},
		},
		{
			name: "arrow_in_replacement",
			expr: "a=>b=>c",
			want: Rule{Search: "a", Replacement: "b=>c"},
		},
		{
			name:      "missing_arrow",
			expr:      "foo",
			wantError: "expected search=>replacement",
		},
		{
			name:      "empty_search",
			expr:      "=>bar",
			wantError: "search is empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.expr, false)
			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
