package fakephone

import "fmt"

// WeightedName is one entry of a Distribution.
type WeightedName struct {
	Name   string
	Weight int
}

// Distribution is a small discrete table used for weighted format selection and
// for union categories. It is immutable once built.
type Distribution struct {
	entries []WeightedName
	total   int
}

// NewDistribution validates the table. Empty tables, negative weights and all
// zero weights are configuration errors.
func NewDistribution(entries ...WeightedName) (Distribution, error) {
	if len(entries) == 0 {
		return Distribution{}, &ConfigError{Field: "distribution", Err: fmt.Errorf("no entries")}
	}

	d := Distribution{entries: make([]WeightedName, len(entries))}
	for i, entry := range entries {
		if entry.Name == "" {
			return Distribution{}, &ConfigError{Field: "distribution", Err: fmt.Errorf("entry %d has no name", i)}
		}
		if entry.Weight < 0 {
			return Distribution{}, &ConfigError{Field: "distribution", Err: fmt.Errorf("entry %q has negative weight %d", entry.Name, entry.Weight)}
		}
		d.entries[i] = entry
		d.total += entry.Weight
	}

	if d.total == 0 {
		return Distribution{}, &ConfigError{Field: "distribution", Err: fmt.Errorf("all weights are zero")}
	}
	return d, nil
}

// UniformDistribution gives every name weight one.
func UniformDistribution(names ...string) (Distribution, error) {
	entries := make([]WeightedName, len(names))
	for i, name := range names {
		entries[i] = WeightedName{Name: name, Weight: 1}
	}
	return NewDistribution(entries...)
}

// Len returns the number of entries.
func (d Distribution) Len() int {
	return len(d.entries)
}

// Entries returns a copy of the table.
func (d Distribution) Entries() []WeightedName {
	if len(d.entries) == 0 {
		return nil
	}
	out := make([]WeightedName, len(d.entries))
	copy(out, d.entries)
	return out
}

// Names returns entry names in declaration order.
func (d Distribution) Names() []string {
	if len(d.entries) == 0 {
		return nil
	}
	out := make([]string, len(d.entries))
	for i, entry := range d.entries {
		out[i] = entry.Name
	}
	return out
}

// Probability returns the selection probability of name, summed over duplicates.
func (d Distribution) Probability(name string) float64 {
	if d.total == 0 {
		return 0
	}
	weight := 0
	for _, entry := range d.entries {
		if entry.Name == name {
			weight += entry.Weight
		}
	}
	return float64(weight) / float64(d.total)
}

// SampleIndex draws an entry index proportionally to its weight.
func (d Distribution) SampleIndex(src Source) int {
	if d.total == 0 {
		return -1
	}
	n := src.IntN(d.total)
	for i, entry := range d.entries {
		if n < entry.Weight {
			return i
		}
		n -= entry.Weight
	}
	return len(d.entries) - 1
}

// Sample draws an entry name proportionally to its weight.
func (d Distribution) Sample(src Source) string {
	idx := d.SampleIndex(src)
	if idx < 0 {
		return ""
	}
	return d.entries[idx].Name
}
