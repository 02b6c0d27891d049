package orgurl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{
			name:     "lightning host",
			in:       "https://acme.lightning.force.com/lightning/page/home",
			expected: "https://acme.my.salesforce.com/lightning/page/home",
		},
		{
			name:     "sandbox prefix preserved",
			in:       "https://acme--uat.sandbox.lightning.force.com/",
			expected: "https://acme--uat.sandbox.my.salesforce.com/",
		},
		{
			name:     "develop prefix preserved",
			in:       "https://foo.develop.lightning.force.com/abc",
			expected: "https://foo.develop.my.salesforce.com/abc",
		},
		{
			name:     "already canonical",
			in:       "https://acme.my.salesforce.com/services/data",
			expected: "https://acme.my.salesforce.com/services/data",
		},
		{
			name:     "non-salesforce host untouched",
			in:       "https://example.com/path",
			expected: "https://example.com/path",
		},
		{
			name:     "malformed returned unchanged",
			in:       "ht!tp://%%%",
			expected: "ht!tp://%%%",
		},
		{
			name:     "empty string",
			in:       "",
			expected: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.in))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"https://acme.lightning.force.com/x",
		"https://acme.my.salesforce.com",
		"https://acme--dev.sandbox.lightning.force.com/services/data/v60.0/query/01g",
		"not a url at all",
		"://broken",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "normalize should be idempotent for %q", in)
	}
}

func TestParse(t *testing.T) {
	o, err := Parse("https://acme.lightning.force.com/")
	require.NoError(t, err)
	assert.Equal(t, "acme.my.salesforce.com", o.Host())
	assert.Equal(t, "https://acme.my.salesforce.com", o.URL())

	// bare hostname
	o, err = Parse("acme.my.salesforce.com")
	require.NoError(t, err)
	assert.Equal(t, "https://acme.my.salesforce.com", o.URL())

	// trailing slashes stripped, scheme forced
	o, err = Parse("http://acme.my.salesforce.com///")
	require.NoError(t, err)
	assert.Equal(t, "https://acme.my.salesforce.com", o.URL())

	_, err = Parse("")
	assert.Error(t, err)

	assert.True(t, Origin{}.IsZero())
	assert.False(t, o.IsZero())
}
