package bitmap

import "testing"

func TestRot90(t *testing.T) {
	m := From([]bool{
		true, true, true, true, true, false, false,
		true, true, true, true, false, false, false,
		true, true, true, true, false, false, false,
		true, true, true, true, false, false, false,
		true, true, true, true, false, false, false,
		true, true, true, true, false, false, false,
		true, true, true, true, false, false, false,
	}, 7, 7)

	want := From([]bool{
		true, true, true, true, true, true, true,
		true, true, true, true, true, true, true,
		true, true, true, true, true, true, true,
		true, true, true, true, true, true, true,
		false, false, false, false, false, false, true,
		false, false, false, false, false, false, false,
		false, false, false, false, false, false, false,
	}, 7, 7)

	got := m.Rot90()
	if !Equal(got, want) {
		t.Fatalf("Rot90() = %+v, want %+v", got.cells, want.cells)
	}
}

func TestRot90Dimensions(t *testing.T) {
	m := From([]bool{
		true, false,
		true, true,
		true, false,
	}, 3, 2)

	got := m.Rot90()
	if got.NumRows() != 2 || got.NumCols() != 3 {
		t.Fatalf("Rot90() dims = %dx%d, want 2x3", got.NumRows(), got.NumCols())
	}
}

func TestRot90FourTimesIsIdentity(t *testing.T) {
	m := From([]bool{
		true, false, true,
		false, true, false,
	}, 2, 3)

	got := m
	for i := 0; i < 4; i++ {
		got = got.Rot90()
	}
	if !Equal(got, m) {
		t.Fatalf("four rotations = %+v, want original %+v", got.cells, m.cells)
	}
}

func TestTrim(t *testing.T) {
	m := From([]bool{
		false, false, false, false,
		false, true, true, false,
		false, true, false, false,
		false, false, false, false,
	}, 4, 4)

	want := From([]bool{
		true, true,
		true, false,
	}, 2, 2)

	got := m.Trim()
	if !Equal(got, want) {
		t.Fatalf("Trim() = %+v (%dx%d), want %+v", got.cells, got.nrows, got.ncols, want.cells)
	}
}

func TestTrimAllFalse(t *testing.T) {
	m := From([]bool{false, false, false, false}, 2, 2)
	got := m.Trim()
	if got.NumRows() != 0 || got.NumCols() != 0 {
		t.Fatalf("Trim() of empty mask = %dx%d, want 0x0", got.NumRows(), got.NumCols())
	}
}

func TestSubarray(t *testing.T) {
	m := From([]bool{
		true, false, false,
		false, true, true,
		false, false, true,
	}, 3, 3)

	got := m.Subarray(1, 1, 2, 2)
	want := From([]bool{
		true, true,
		false, true,
	}, 2, 2)
	if !Equal(got, want) {
		t.Fatalf("Subarray() = %+v, want %+v", got.cells, want.cells)
	}
}

func TestCount(t *testing.T) {
	m := From([]bool{true, false, true, true}, 2, 2)
	if got := m.Count(); got != 3 {
		t.Fatalf("Count() = %d, want 3", got)
	}
}

func TestPackDedupesIdenticalShapes(t *testing.T) {
	a := From([]bool{true, true, false, true}, 2, 2)
	b := a.Copy()
	if a.Pack() != b.Pack() {
		t.Fatal("Pack() differs for identical bitmaps")
	}

	c := From([]bool{true, false, false, true}, 2, 2)
	if a.Pack() == c.Pack() {
		t.Fatal("Pack() collided for different bitmaps")
	}
}

func TestCopyIsIndependent(t *testing.T) {
	a := From([]bool{true, false}, 1, 2)
	b := a.Copy()
	b.cells[0] = false
	if a.At(0, 0) != true {
		t.Fatal("mutating a copy mutated the original")
	}
}
