package main

import (
	"testing"

	"github.com/lightningnetwork/lnd/record"
	"github.com/stretchr/testify/require"
)

// TestParseBool tests the boolean spellings accepted for flags.
func TestParseBool(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"true", "t", "1"} {
		value, err := parseBool(s)
		require.NoError(t, err, s)
		require.True(t, value, s)
	}

	for _, s := range []string{"false", "f", "0"} {
		value, err := parseBool(s)
		require.NoError(t, err, s)
		require.False(t, value, s)
	}

	for _, s := range []string{"", "yes", "TRUE", "T", "2", "true "} {
		_, err := parseBool(s)
		require.Error(t, err, s)
	}
}

// TestParseLengths tests parsing of comma separated field lengths.
func TestParseLengths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		expected  []uint64
		expectErr bool
	}{
		{
			name: "empty",
		},
		{
			name:     "single",
			input:    "10",
			expected: []uint64{10},
		},
		{
			name:     "ordered with spaces",
			input:    "10, 20,0",
			expected: []uint64{10, 20, 0},
		},
		{
			name:      "negative",
			input:     "10,-1",
			expectErr: true,
		},
		{
			name:      "not a number",
			input:     "ten",
			expectErr: true,
		},
		{
			name:      "trailing comma",
			input:     "10,",
			expectErr: true,
		},
	}

	for _, testCase := range tests {
		testCase := testCase

		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			lengths, err := parseLengths(testCase.input)
			require.Equal(t, testCase.expectErr, err != nil)
			require.Equal(t, testCase.expected, lengths)
		})
	}
}

// TestParseCustomRecords tests parsing of custom records provided on the
// command line.
func TestParseCustomRecords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		expected  record.CustomSet
		expectErr bool
	}{
		{
			name:     "empty",
			expected: record.CustomSet{},
		},
		{
			name:  "two records",
			input: "65536=aabb,65540=cc",
			expected: record.CustomSet{
				65536: {0xaa, 0xbb},
				65540: {0xcc},
			},
		},
		{
			name:      "missing value",
			input:     "65536",
			expectErr: true,
		},
		{
			name:      "bad hex",
			input:     "65536=zz",
			expectErr: true,
		},
		{
			name:      "duplicate",
			input:     "65536=aa,65536=bb",
			expectErr: true,
		},
	}

	for _, testCase := range tests {
		testCase := testCase

		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			customRecords, err := parseCustomRecords(testCase.input)
			require.Equal(t, testCase.expectErr, err != nil)
			require.Equal(t, testCase.expected, customRecords)
		})
	}
}
