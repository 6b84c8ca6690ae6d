package transform

import "testing"

func TestCensus(t *testing.T) {
	tests := []struct {
		name     string
		depths   []DepthEntry
		want     LevelCensus
		maxCount int
		maxDepth int
	}{
		{"empty", nil, LevelCensus{}, 0, -1},
		{"single", []DepthEntry{{5, 0}}, LevelCensus{0: 1}, 1, 0},
		{"fan out", []DepthEntry{{1, 0}, {2, 1}, {3, 1}}, LevelCensus{0: 1, 1: 2}, 2, 1},
		{"gap", []DepthEntry{{1, 0}, {2, 2}}, LevelCensus{0: 1, 2: 1}, 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Census(tt.depths)
			if len(got) != len(tt.want) {
				t.Fatalf("Census() = %v, want %v", got, tt.want)
			}
			for d, n := range tt.want {
				if got[d] != n {
					t.Errorf("Census()[%d] = %d, want %d", d, got[d], n)
				}
			}
			if got.Total() != len(tt.depths) {
				t.Errorf("Total() = %d, want %d", got.Total(), len(tt.depths))
			}
			if got.MaxCount() != tt.maxCount {
				t.Errorf("MaxCount() = %d, want %d", got.MaxCount(), tt.maxCount)
			}
			if got.MaxDepth() != tt.maxDepth {
				t.Errorf("MaxDepth() = %d, want %d", got.MaxDepth(), tt.maxDepth)
			}
			if got.Levels() != tt.maxDepth+1 {
				t.Errorf("Levels() = %d, want %d", got.Levels(), tt.maxDepth+1)
			}
		})
	}
}
