package name_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/ginjaninja78/towbill/internal/name"
	"github.com/ginjaninja78/towbill/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		raw   string
		last  string
		first string
		str   string
	}{
		{"Doe, John", "Doe", "John", "Doe, John"},
		{"John Doe", "Doe", "John", "Doe, John"},
		{"Cher", "", "", "Cher"},
		{"  Doe  ,   John   ", "Doe", "John", "Doe, John"},
		{"John Michael Doe", "Doe", "John Michael", "Doe, John Michael"},
		{"", "", "", ""},
		{"Doe,John", "Doe", "John", "Doe, John"},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			n, err := name.Parse(tc.raw)
			require.NoError(t, err)
			assert.Equal(t, tc.last, n.Last())
			assert.Equal(t, tc.first, n.First())
			assert.Equal(t, tc.str, n.String())
		})
	}
	t.Run("should reject more than one comma", func(t *testing.T) {
		_, err := name.Parse("Doe,John,Smith")
		var fe *validation.FormatError
		assert.True(t, errors.As(err, &fe))
	})
}

func TestEqual(t *testing.T) {
	t.Run("should treat both formats as the same person", func(t *testing.T) {
		a := name.MustParse("Doe, John")
		b := name.MustParse("John Doe")
		assert.True(t, a.Equal(b))
		assert.Equal(t, a.Key(), b.Key())
	})
	t.Run("should distinguish different first names", func(t *testing.T) {
		a := name.MustParse("Doe, John")
		b := name.MustParse("Jane Doe")
		assert.False(t, a.Equal(b))
		assert.NotEqual(t, a.Key(), b.Key())
	})
	t.Run("should compare single words by raw text", func(t *testing.T) {
		assert.True(t, name.MustParse("Cher").Equal(name.MustParse("Cher")))
		assert.False(t, name.MustParse("Cher").Equal(name.MustParse("Zoe")))
	})
	t.Run("single word never equals a parsed name with the same last name", func(t *testing.T) {
		// Known edge case: "Doe" and "John Doe" are different parties.
		assert.False(t, name.MustParse("Doe").Equal(name.MustParse("John Doe")))
	})
}

func TestCompare(t *testing.T) {
	t.Run("should sort by last then first with bare names interleaved", func(t *testing.T) {
		names := []name.Name{
			name.MustParse("Jane Doe"),
			name.MustParse("Zoe"),
			name.MustParse("John Smith"),
			name.MustParse("Doe, John"),
			name.MustParse("Cher"),
			name.MustParse("Smith, Adam"),
		}
		slices.SortFunc(names, name.Compare)
		var got []string
		for _, n := range names {
			got = append(got, n.String())
		}
		assert.Equal(t, []string{"Cher", "Doe, Jane", "Doe, John", "Smith, Adam", "Smith, John", "Zoe"}, got)
	})
	t.Run("bare name sorts before a named entry on tie", func(t *testing.T) {
		bare := name.MustParse("Doe")
		named := name.MustParse("Doe, John")
		assert.Equal(t, -1, name.Compare(bare, named))
		assert.Equal(t, 1, name.Compare(named, bare))
	})
	t.Run("equal names compare as zero", func(t *testing.T) {
		assert.Equal(t, 0, name.Compare(name.MustParse("Doe, John"), name.MustParse("John Doe")))
		assert.Equal(t, 0, name.Compare(name.MustParse("Cher"), name.MustParse("Cher")))
	})
	t.Run("empty name sorts first", func(t *testing.T) {
		assert.Equal(t, -1, name.Compare(name.Name{}, name.MustParse("Aaron Abbot")))
	})
}
