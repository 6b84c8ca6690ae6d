package transform

// LevelCensus maps a depth to the number of nodes placed at that depth.
type LevelCensus map[int]int

// Census counts the depth entries at each depth in a single pass.
func Census(depths []DepthEntry) LevelCensus {
	c := make(LevelCensus)
	for _, d := range depths {
		c[d.Depth]++
	}
	return c
}

// Total returns the number of counted entries.
func (c LevelCensus) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

// MaxCount returns the population of the most crowded level, or 0 for an
// empty census.
func (c LevelCensus) MaxCount() int {
	m := 0
	for _, v := range c {
		m = max(m, v)
	}
	return m
}

// MaxDepth returns the deepest populated level, or -1 for an empty census.
func (c LevelCensus) MaxDepth() int {
	m := -1
	for d := range c {
		m = max(m, d)
	}
	return m
}

// Levels returns the number of levels from 0 through MaxDepth inclusive.
func (c LevelCensus) Levels() int {
	return c.MaxDepth() + 1
}
