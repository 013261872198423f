package game

import (
	"testing"

	"grid-snake/game/entity"
	"grid-snake/game/types"
)

// fixedRandom replays a list of values, reduced modulo n. Once exhausted it returns 0.
type fixedRandom struct {
	values []int
	pos    int
}

func (r *fixedRandom) Intn(n int) int {
	if r.pos >= len(r.values) {
		return 0
	}
	v := r.values[r.pos] % n
	r.pos++
	return v
}

// newTestEngine builds an engine with a hand-placed snake and food
func newTestEngine(grid types.Grid, body []types.Cell, dir types.Direction, food *types.Cell) *Engine {
	e := NewEngine(grid, types.NewRandom(1))
	e.snake = &entity.Snake{Body: append([]types.Cell(nil), body...)}
	e.direction = dir
	e.lastDirection = dir
	if food != nil {
		e.food, e.hasFood = *food, true
	}
	return e
}

func assertDistinct(t *testing.T, cells []types.Cell) {
	t.Helper()
	seen := make(map[types.Cell]bool, len(cells))
	for _, c := range cells {
		if seen[c] {
			t.Fatalf("cell %v occupied twice in %v", c, cells)
		}
		seen[c] = true
	}
}

func TestGenerateStart(t *testing.T) {
	grid := types.Grid{Rows: 7, Columns: 9}
	for seed := uint64(0); seed < 200; seed++ {
		e := NewEngine(grid, types.NewRandom(seed))
		e.GenerateStart()

		body := e.Snake()
		if len(body) != 3 {
			t.Fatalf("seed %d: expected 3 segments, got %d", seed, len(body))
		}
		head := body[0]
		if head.Row < 2 || head.Row >= grid.Rows-2 || head.Col < 2 || head.Col >= grid.Columns-2 {
			t.Fatalf("seed %d: head %v outside spawn area", seed, head)
		}
		dir := e.Direction()
		if !dir.IsValid() || dir != e.LastDirection() {
			t.Fatalf("seed %d: bad directions %v / %v", seed, dir, e.LastDirection())
		}
		if body[1] != head.Sub(dir) || body[2] != body[1].Sub(dir) {
			t.Fatalf("seed %d: body %v does not trail behind %v", seed, body, dir)
		}
		food, ok := e.Food()
		if !ok {
			t.Fatalf("seed %d: expected food", seed)
		}
		for _, part := range body {
			if part == food {
				t.Fatalf("seed %d: food %v on snake", seed, food)
			}
		}
		if e.Score() != 0 {
			t.Fatalf("seed %d: expected score 0, got %d", seed, e.Score())
		}
		if e.CheckCollision() {
			t.Fatalf("seed %d: fresh snake would collide", seed)
		}
	}
}

func TestGenerateStartFixedSource(t *testing.T) {
	// direction index 1 (right), head row 2+0, head col 2+1, then food index 0
	e := NewEngine(types.Grid{Rows: 5, Columns: 6}, &fixedRandom{values: []int{1, 0, 1, 0}})
	e.GenerateStart()

	want := []types.Cell{{Row: 2, Col: 3}, {Row: 2, Col: 2}, {Row: 2, Col: 1}}
	got := e.Snake()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected body %v, got %v", want, got)
		}
	}
	if e.Direction() != types.Right {
		t.Fatalf("expected direction right, got %v", e.Direction())
	}
	if food, _ := e.Food(); food != (types.Cell{Row: 0, Col: 0}) {
		t.Fatalf("expected food at (0,0), got %v", food)
	}
}

// rawRandom returns its values unreduced, ignoring n
type rawRandom struct {
	values []int
	pos    int
}

func (r *rawRandom) Intn(n int) int {
	v := r.values[r.pos%len(r.values)]
	r.pos++
	return v
}

func TestGenerateStartRejectsBadSpawn(t *testing.T) {
	tests := []struct {
		name   string
		values []int
	}{
		// right, head row 2+9 on a 5-row board
		{"row out of range", []int{1, 9, 0}},
		// up, head col 2-3 off the left edge
		{"col out of range", []int{2, 0, -3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine(types.Grid{Rows: 5, Columns: 5}, &rawRandom{values: tt.values})
			defer func() {
				if recover() == nil {
					t.Fatal("expected a panic for a spawn off the board")
				}
			}()
			e.GenerateStart()
		})
	}
}

func TestGenerateStartResets(t *testing.T) {
	e := NewEngine(types.Grid{Rows: 10, Columns: 10}, types.NewRandom(7))
	e.GenerateStart()
	e.score = 12
	e.snake.Move(e.nextHead())
	e.GenerateStart()

	if e.Score() != 0 || e.Length() != 3 {
		t.Fatalf("expected reset state, got score %d length %d", e.Score(), e.Length())
	}
}

func TestChangeDirection(t *testing.T) {
	body := []types.Cell{{Row: 2, Col: 2}, {Row: 1, Col: 2}, {Row: 0, Col: 2}}
	tests := []struct {
		name      string
		requested types.Direction
		want      DirectionResult
	}{
		{"same", types.Down, DirectionApplied},
		{"right", types.Right, DirectionApplied},
		{"left", types.Left, DirectionApplied},
		{"reverse", types.Up, DirectionReversal},
		{"zero", types.Direction{}, DirectionInvalid},
		{"diagonal", types.Direction{Row: 1, Col: 1}, DirectionInvalid},
		{"long", types.Direction{Row: 2, Col: 0}, DirectionInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(types.Grid{Rows: 5, Columns: 5}, body, types.Down, nil)
			got := e.RequestDirection(tt.requested)
			if got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			wantDir := types.Down
			if got == DirectionApplied {
				wantDir = tt.requested
			}
			if e.Direction() != wantDir {
				t.Fatalf("expected current direction %v, got %v", wantDir, e.Direction())
			}
			if e.LastDirection() != types.Down {
				t.Fatalf("last direction changed to %v", e.LastDirection())
			}
		})
	}
}

func TestChangeDirectionBool(t *testing.T) {
	body := []types.Cell{{Row: 2, Col: 2}, {Row: 1, Col: 2}, {Row: 0, Col: 2}}
	e := newTestEngine(types.Grid{Rows: 5, Columns: 5}, body, types.Down, nil)

	if e.ChangeDirection(types.Up) {
		t.Fatal("expected reversal to be rejected")
	}
	if e.Direction() != types.Down {
		t.Fatalf("expected direction down, got %v", e.Direction())
	}
	if !e.ChangeDirection(types.Right) {
		t.Fatal("expected right to be accepted")
	}
}

func TestChangeDirectionComparesLastApplied(t *testing.T) {
	// heading right; left is a reversal, but up then down within one tick is fine
	body := []types.Cell{{Row: 2, Col: 2}, {Row: 2, Col: 1}, {Row: 2, Col: 0}}
	e := newTestEngine(types.Grid{Rows: 6, Columns: 6}, body, types.Right, nil)

	if !e.ChangeDirection(types.Up) {
		t.Fatal("expected up to be accepted")
	}
	if !e.ChangeDirection(types.Down) {
		t.Fatal("expected down to be accepted while last applied is right")
	}
	if e.Direction() != types.Down {
		t.Fatalf("expected pending down, got %v", e.Direction())
	}
	if e.ChangeDirection(types.Left) {
		t.Fatal("expected left to be rejected")
	}

	e.Step()
	if e.LastDirection() != types.Down {
		t.Fatalf("expected last direction down, got %v", e.LastDirection())
	}
	if e.ChangeDirection(types.Up) {
		t.Fatal("expected up to be rejected after moving down")
	}
}

func TestStepEatsFood(t *testing.T) {
	body := []types.Cell{{Row: 2, Col: 2}, {Row: 2, Col: 1}, {Row: 2, Col: 0}}
	food := types.Cell{Row: 2, Col: 3}
	e := newTestEngine(types.Grid{Rows: 5, Columns: 5}, body, types.Right, &food)

	res := e.Step()
	if !res.AteFood {
		t.Fatal("expected to eat food")
	}
	snake := e.Snake()
	if snake[0] != food {
		t.Fatalf("expected head at %v, got %v", food, snake[0])
	}
	if len(snake) != 4 {
		t.Fatalf("expected length 4, got %d", len(snake))
	}
	if e.Score() != 1 {
		t.Fatalf("expected score 1, got %d", e.Score())
	}
	newFood, ok := e.Food()
	if !ok {
		t.Fatal("expected new food")
	}
	for _, part := range snake {
		if part == newFood {
			t.Fatalf("food %v placed on snake", newFood)
		}
	}
}

func TestStepMovesWithoutFood(t *testing.T) {
	body := []types.Cell{{Row: 2, Col: 2}, {Row: 2, Col: 1}, {Row: 2, Col: 0}}
	food := types.Cell{Row: 0, Col: 0}
	e := newTestEngine(types.Grid{Rows: 5, Columns: 5}, body, types.Down, &food)

	if res := e.Step(); res.AteFood {
		t.Fatal("did not expect to eat")
	}
	want := []types.Cell{{Row: 3, Col: 2}, {Row: 2, Col: 2}, {Row: 2, Col: 1}}
	got := e.Snake()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
	if len(got) != 3 || e.Score() != 0 {
		t.Fatalf("expected length 3 score 0, got %d/%d", len(got), e.Score())
	}
	if f, _ := e.Food(); f != food {
		t.Fatalf("food moved to %v", f)
	}
}

func TestCheckCollision(t *testing.T) {
	tests := []struct {
		name string
		body []types.Cell
		dir  types.Direction
		want types.CollisionType
	}{
		{
			name: "top wall",
			body: []types.Cell{{Row: 0, Col: 2}, {Row: 1, Col: 2}, {Row: 2, Col: 2}},
			dir:  types.Up,
			want: types.WallCollision,
		},
		{
			name: "bottom wall",
			body: []types.Cell{{Row: 4, Col: 2}, {Row: 3, Col: 2}, {Row: 2, Col: 2}},
			dir:  types.Down,
			want: types.WallCollision,
		},
		{
			name: "left wall",
			body: []types.Cell{{Row: 2, Col: 0}, {Row: 2, Col: 1}, {Row: 2, Col: 2}},
			dir:  types.Left,
			want: types.WallCollision,
		},
		{
			name: "right wall",
			body: []types.Cell{{Row: 2, Col: 4}, {Row: 2, Col: 3}, {Row: 2, Col: 2}},
			dir:  types.Right,
			want: types.WallCollision,
		},
		{
			name: "own body",
			body: []types.Cell{{Row: 2, Col: 2}, {Row: 2, Col: 3}, {Row: 3, Col: 3}, {Row: 3, Col: 2}, {Row: 3, Col: 1}},
			dir:  types.Down,
			want: types.SelfCollision,
		},
		{
			// the tail has not moved yet when the check runs
			name: "tail",
			body: []types.Cell{{Row: 2, Col: 2}, {Row: 2, Col: 3}, {Row: 3, Col: 3}, {Row: 3, Col: 2}},
			dir:  types.Down,
			want: types.SelfCollision,
		},
		{
			name: "free",
			body: []types.Cell{{Row: 2, Col: 2}, {Row: 2, Col: 1}, {Row: 2, Col: 0}},
			dir:  types.Right,
			want: types.NoCollision,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(types.Grid{Rows: 5, Columns: 5}, tt.body, tt.dir, nil)
			if got := e.Collision(); got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			if got := e.CheckCollision(); got != (tt.want != types.NoCollision) {
				t.Fatalf("CheckCollision returned %v", got)
			}
		})
	}
}

func TestReadOnlyChecksAreIdempotent(t *testing.T) {
	e := NewEngine(types.Grid{Rows: 8, Columns: 8}, types.NewRandom(3))
	e.GenerateStart()
	before := e.Snapshot()

	first, over := e.CheckCollision(), e.IsGameOver()
	for i := 0; i < 10; i++ {
		if e.CheckCollision() != first || e.IsGameOver() != over {
			t.Fatal("read-only checks changed their answer")
		}
	}

	after := e.Snapshot()
	if before.String() != after.String() || before.Direction != after.Direction || before.Score != after.Score {
		t.Fatal("read-only checks mutated state")
	}
}

func serpentine(grid types.Grid) []types.Cell {
	var cells []types.Cell
	for row := 0; row < grid.Rows; row++ {
		for i := 0; i < grid.Columns; i++ {
			col := i
			if row%2 == 1 {
				col = grid.Columns - 1 - i
			}
			cells = append(cells, types.Cell{Row: row, Col: col})
		}
	}
	return cells
}

func TestBoardFull(t *testing.T) {
	grid := types.Grid{Rows: 5, Columns: 5}
	path := serpentine(grid)
	food := path[0]
	body := path[1:] // head at (0,1), moving left onto the last free cell

	e := newTestEngine(grid, body, types.Left, &food)
	if e.IsGameOver() {
		t.Fatal("game over before the last food")
	}
	if e.CheckCollision() {
		t.Fatal("unexpected collision")
	}

	if res := e.Step(); !res.AteFood {
		t.Fatal("expected to eat the last food")
	}
	if !e.IsGameOver() {
		t.Fatal("expected game over on a full board")
	}
	if _, ok := e.Food(); ok {
		t.Fatal("expected no food")
	}
	if e.Length() != grid.Size() {
		t.Fatalf("expected length %d, got %d", grid.Size(), e.Length())
	}
	if e.Snapshot().Food != nil {
		t.Fatal("expected snapshot without food")
	}
}

func TestRandomPlayKeepsInvariants(t *testing.T) {
	grid := types.Grid{Rows: 6, Columns: 7}
	for seed := uint64(1); seed <= 50; seed++ {
		rng := types.NewRandom(seed)
		e := NewEngine(grid, rng)
		e.GenerateStart()

		for tick := 0; tick < 500; tick++ {
			e.ChangeDirection(types.Directions[rng.Intn(4)])
			if e.CheckCollision() {
				break
			}

			before := e.Length()
			res := e.Step()
			body := e.Snake()
			assertDistinct(t, body)

			want := before
			if res.AteFood {
				want++
			}
			if len(body) != want {
				t.Fatalf("seed %d tick %d: expected length %d, got %d", seed, tick, want, len(body))
			}
			if food, ok := e.Food(); ok {
				for _, part := range body {
					if part == food {
						t.Fatalf("seed %d tick %d: food on snake", seed, tick)
					}
				}
			}
			if e.IsGameOver() {
				break
			}
		}
	}
}

func TestDeterminism(t *testing.T) {
	grid := types.Grid{Rows: 12, Columns: 12}
	run := func() string {
		e := NewEngine(grid, types.NewRandom(99))
		e.GenerateStart()
		for i := 0; i < 40 && !e.CheckCollision(); i++ {
			if i%7 == 3 {
				e.ChangeDirection(e.LastDirection().TurnLeft())
			}
			e.Step()
		}
		return e.Snapshot().String()
	}

	if a, b := run(), run(); a != b {
		t.Fatalf("same seed produced different games:\n%s\n%s", a, b)
	}
}
