package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// Element represents one of the five elemental categories (wuxing)
type Element int

const (
	ElementWood Element = iota
	ElementFire
	ElementEarth
	ElementMetal
	ElementWater
)

// NumElements is the fixed number of element categories
const NumElements = 5

var elementLabels = [NumElements]string{"木", "火", "土", "金", "水"}

// AllElements returns the elements in their fixed enumeration order.
// The order is used for tie-breaking and for encoding tallies.
func AllElements() []Element {
	return []Element{ElementWood, ElementFire, ElementEarth, ElementMetal, ElementWater}
}

// IsValid checks if the element is one of the five categories
func (e Element) IsValid() bool {
	return e >= ElementWood && e <= ElementWater
}

// String returns the label of the element
func (e Element) String() string {
	if !e.IsValid() {
		return ""
	}
	return elementLabels[e]
}

// MarshalText implements encoding.TextMarshaler
func (e Element) MarshalText() ([]byte, error) {
	if !e.IsValid() {
		return nil, goerr.New("invalid element", goerr.V("element", int(e)))
	}
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (e *Element) UnmarshalText(text []byte) error {
	parsed, err := ParseElement(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// ParseElement parses an element label
func ParseElement(label string) (Element, error) {
	for i, l := range elementLabels {
		if l == label {
			return Element(i), nil
		}
	}
	return 0, goerr.New("unknown element label", goerr.V("label", label))
}
