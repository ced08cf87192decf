package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/secmon-lab/bazi/pkg/domain/types"
	"gopkg.in/yaml.v3"
)

// Tally counts symbols per element. The zero value has all five
// elements at zero.
type Tally struct {
	counts [types.NumElements]int
}

// NewTally creates a tally from explicit counts, in fixed element order
func NewTally(wood, fire, earth, metal, water int) Tally {
	return Tally{counts: [types.NumElements]int{wood, fire, earth, metal, water}}
}

// Add increments the count of an element. Invalid elements are ignored.
func (t *Tally) Add(e types.Element) {
	if !e.IsValid() {
		return
	}
	t.counts[e]++
}

// Count returns the count of an element
func (t Tally) Count(e types.Element) int {
	if !e.IsValid() {
		return 0
	}
	return t.counts[e]
}

// Total returns the sum over all elements
func (t Tally) Total() int {
	total := 0
	for _, c := range t.counts {
		total += c
	}
	return total
}

// Weakest returns the element with the smallest count. Ties go to the
// element appearing first in types.AllElements.
func (t Tally) Weakest() types.Element {
	weakest := types.ElementWood
	for _, e := range types.AllElements() {
		if t.counts[e] < t.counts[weakest] {
			weakest = e
		}
	}
	return weakest
}

// Map returns the counts keyed by element label
func (t Tally) Map() map[string]int {
	m := make(map[string]int, types.NumElements)
	for _, e := range types.AllElements() {
		m[e.String()] = t.counts[e]
	}
	return m
}

// Describe summarizes missing (0) and dominant (3 or more) elements
func (t Tally) Describe() string {
	var notes []string
	for _, e := range types.AllElements() {
		switch c := t.counts[e]; {
		case c == 0:
			notes = append(notes, e.String()+"缺失")
		case c >= 3:
			notes = append(notes, e.String()+"旺盛")
		}
	}
	if len(notes) == 0 {
		return "五行平衡"
	}
	return strings.Join(notes, "，")
}

// MarshalJSON encodes the tally as an object keyed by element label, in
// fixed element order
func (t Tally) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range types.AllElements() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.String())
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(t.counts[e]))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object keyed by element label. Missing labels
// count as zero.
func (t *Tally) UnmarshalJSON(data []byte) error {
	var raw map[string]int
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	return t.fromMap(raw)
}

// MarshalYAML encodes the tally as a mapping in fixed element order
func (t Tally) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range types.AllElements() {
		var value yaml.Node
		if err := value.Encode(t.counts[e]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.String()},
			&value,
		)
	}
	return node, nil
}

// UnmarshalYAML decodes a mapping keyed by element label
func (t *Tally) UnmarshalYAML(value *yaml.Node) error {
	var raw map[string]int
	if err := value.Decode(&raw); err != nil {
		return err
	}
	return t.fromMap(raw)
}

func (t *Tally) fromMap(raw map[string]int) error {
	var counts [types.NumElements]int
	for label, count := range raw {
		e, err := types.ParseElement(label)
		if err != nil {
			return err
		}
		counts[e] = count
	}
	t.counts = counts
	return nil
}
