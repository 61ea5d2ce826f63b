package cli

import (
	"io"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestRegisterCopyFlagParsesValues(t *testing.T) {
	testCases := []struct {
		name        string
		arguments   []string
		expected    bool
		expectError bool
	}{
		{
			name:        "defaults_to_false",
			arguments:   []string{},
			expected:    false,
			expectError: false,
		},
		{
			name:        "sets_true_without_value",
			arguments:   []string{"--copy"},
			expected:    true,
			expectError: false,
		},
		{
			name:        "sets_false_with_equals",
			arguments:   []string{"--copy=false"},
			expected:    false,
			expectError: false,
		},
		{
			name:        "sets_false_with_separated_no",
			arguments:   []string{"--copy", "no"},
			expected:    false,
			expectError: false,
		},
		{
			name:        "sets_true_with_y_literal",
			arguments:   []string{"--copy", "y"},
			expected:    true,
			expectError: false,
		},
		{
			name:        "keeps_non_literal_word_positional",
			arguments:   []string{"--copy", "build"},
			expected:    true,
			expectError: false,
		},
		{
			name:        "rejects_invalid_equals_value",
			arguments:   []string{"--copy=maybe"},
			expected:    false,
			expectError: true,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			var flagValue bool
			flagSet := pflag.NewFlagSet("copy-flag", pflag.ContinueOnError)
			flagSet.SetOutput(io.Discard)
			registerCopyFlag(flagSet, &flagValue)
			normalizedArguments := normalizeCopyFlagArguments(testCase.arguments)
			parseErr := flagSet.Parse(normalizedArguments)
			if testCase.expectError {
				if parseErr == nil {
					t.Fatalf("expected error for arguments %v", testCase.arguments)
				}
				return
			}
			if parseErr != nil {
				t.Fatalf("unexpected parse error: %v", parseErr)
			}
			if flagValue != testCase.expected {
				t.Fatalf("expected value %t, got %t", testCase.expected, flagValue)
			}
		})
	}
}

func TestNormalizeCopyFlagArguments(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		arguments []string
		expected  []string
	}{
		{
			name:      "rewrites_bare_flag_at_end",
			arguments: []string{"build", "--copy"},
			expected:  []string{"build", "--copy=true"},
		},
		{
			name:      "consumes_boolean_literal",
			arguments: []string{"--copy", "off", "build"},
			expected:  []string{"--copy=false", "build"},
		},
		{
			name:      "preserves_positional_path",
			arguments: []string{"--copy", "../service"},
			expected:  []string{"--copy=true", "../service"},
		},
		{
			name:      "preserves_subcommand_name",
			arguments: []string{"--copy", "build", "../service"},
			expected:  []string{"--copy=true", "build", "../service"},
		},
		{
			name:      "stops_at_double_dash",
			arguments: []string{"--", "--copy", "yes"},
			expected:  []string{"--", "--copy", "yes"},
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			normalized := normalizeCopyFlagArguments(testCase.arguments)
			if strings.Join(normalized, " ") != strings.Join(testCase.expected, " ") {
				t.Fatalf("expected %v, got %v", testCase.expected, normalized)
			}
		})
	}
}
