package env

import "testing"

func TestSenseWalls(t *testing.T) {
	cross := [][]int{
		{0, 1, 0},
		{0, 1, 1},
		{0, 0, 0},
	}
	cases := []struct {
		name  string
		grid  [][]int
		agent Cell
		want  WallStatus
	}{
		{"centre of cross", cross, Cell{Row: 1, Col: 1}, WallStatus{Up: true, Right: true}},
		{"top edge is out of bounds", cross, Cell{Row: 0, Col: 1}, WallStatus{Down: true}},
		{"corner", cross, Cell{Row: 2, Col: 2}, WallStatus{Up: true}},
		{"open field", openGrid(9, 10), DefaultAgentCell, WallStatus{Up: true, Down: true, Left: true, Right: true}},
		{"nil grid", nil, DefaultAgentCell, WallStatus{}},
		{"empty row", [][]int{{}}, Cell{}, WallStatus{}},
		{"agent outside grid", cross, Cell{Row: 5, Col: 5}, WallStatus{}},
		{"ragged neighbour row", [][]int{{1}, {1, 1}, {1, 1}}, Cell{Row: 1, Col: 1}, WallStatus{Down: true, Left: true}},
		{"non-sentinel values are walls", [][]int{{2, 2, 2}, {2, 1, 2}, {2, 2, 2}}, Cell{Row: 1, Col: 1}, WallStatus{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SenseWalls(tc.grid, tc.agent); got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}

func TestWallStatus_Closed(t *testing.T) {
	w := WallStatus{Left: true, Right: true}
	if w.Closed() != 2 {
		t.Fatalf("expected 2 closed directions, got %d", w.Closed())
	}
	if (WallStatus{}).Closed() != 4 {
		t.Fatal("zero WallStatus should be fully closed")
	}
}
