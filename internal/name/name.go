// Package name parses the free-form person names found in tow tickets and
// gives them a normalized "Last, First" identity, so that "Doe, John" and
// "John Doe" bill to the same party.
package name

import (
	"strings"

	"github.com/ginjaninja78/towbill/internal/validation"
)

// Name is an immutable parsed person name.
//
// When the raw text could not be split into last and first parts (a single
// word, or empty), both parts are empty and the raw text is the identity.
type Name struct {
	raw   string
	last  string
	first string
}

// Key is a comparable identity for grouping names in maps.
// Two names are equal exactly when their keys are equal.
type Key struct {
	Last  string
	First string
	Raw   string
}

// Parse splits raw into last and first name.
//
//   - "Last, First" : exactly one comma, both sides trimmed
//   - "First Middle Last" : the last word is the last name
//   - anything else : kept as-is, no parts
//
// More than one comma is a FormatError.
func Parse(raw string) (Name, error) {
	raw = strings.TrimSpace(raw)
	n := Name{raw: raw}

	switch {
	case strings.Contains(raw, ","):
		parts := strings.Split(raw, ",")
		if len(parts) != 2 {
			return Name{}, &validation.FormatError{
				Field:   "name",
				Value:   raw,
				Message: "name must be in 'Last, First' format",
			}
		}
		n.last = strings.TrimSpace(parts[0])
		n.first = strings.TrimSpace(parts[1])
	case strings.ContainsAny(raw, " \t"):
		words := strings.Fields(raw)
		n.last = words[len(words)-1]
		n.first = strings.Join(words[:len(words)-1], " ")
	}
	return n, nil
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(raw string) Name {
	n, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return n
}

func (n Name) Raw() string   { return n.raw }
func (n Name) Last() string  { return n.last }
func (n Name) First() string { return n.first }

// IsZero reports whether the name is empty.
func (n Name) IsZero() bool {
	return n.raw == ""
}

// hasParts reports whether both last and first were recovered.
func (n Name) hasParts() bool {
	return n.last != "" && n.first != ""
}

// String returns "Last, First" when both parts are known, else the raw text.
func (n Name) String() string {
	if n.hasParts() {
		return n.last + ", " + n.first
	}
	return n.raw
}

// Key returns the grouping identity of the name.
func (n Name) Key() Key {
	if n.last == "" && n.first == "" {
		return Key{Raw: n.raw}
	}
	return Key{Last: n.last, First: n.first}
}

// Equal reports whether two names identify the same person.
func (n Name) Equal(other Name) bool {
	return n.Key() == other.Key()
}

// Compare orders names by last then first name.
//
// A name without parts is compared by its raw text against the other's last
// name, and sorts first when those tie. The result is -1, 0 or +1.
func Compare(a, b Name) int {
	ak, bk := a.Key(), b.Key()
	aBare := ak.Last == "" && ak.First == ""
	bBare := bk.Last == "" && bk.First == ""

	switch {
	case aBare && bBare:
		return strings.Compare(ak.Raw, bk.Raw)
	case aBare:
		if c := strings.Compare(ak.Raw, bk.Last); c != 0 {
			return c
		}
		return -1
	case bBare:
		if c := strings.Compare(ak.Last, bk.Raw); c != 0 {
			return c
		}
		return 1
	}
	if c := strings.Compare(ak.Last, bk.Last); c != 0 {
		return c
	}
	return strings.Compare(ak.First, bk.First)
}
