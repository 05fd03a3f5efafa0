package domain

// GroupedData holds report values grouped by label.
// Keys preserves first-occurrence order; Values holds each label's chunk.
// Both are only ever mutated through Touch and Append so they stay in sync.
type GroupedData struct {
	Keys   []string            `json:"keys"`
	Values map[string][]string `json:"values"`
}

// NewGroupedData creates an empty grouped data set
func NewGroupedData() *GroupedData {
	return &GroupedData{
		Keys:   make([]string, 0),
		Values: make(map[string][]string),
	}
}

// Touch registers a label without recording a value.
// Returns true if the label was seen for the first time.
func (g *GroupedData) Touch(label string) bool {
	if _, exists := g.Values[label]; exists {
		return false
	}
	g.Values[label] = nil
	g.Keys = append(g.Keys, label)
	return true
}

// Append records a value under label, registering the label if needed
func (g *GroupedData) Append(label, value string) {
	g.Touch(label)
	g.Values[label] = append(g.Values[label], value)
}

// Chunk returns the values recorded for label (nil if none)
func (g *GroupedData) Chunk(label string) []string {
	return g.Values[label]
}

// Has reports whether label has been registered
func (g *GroupedData) Has(label string) bool {
	_, ok := g.Values[label]
	return ok
}

// Len returns the number of distinct labels
func (g *GroupedData) Len() int {
	return len(g.Keys)
}

// ValueCount returns the total number of recorded values
func (g *GroupedData) ValueCount() int {
	total := 0
	for _, v := range g.Values {
		total += len(v)
	}
	return total
}
