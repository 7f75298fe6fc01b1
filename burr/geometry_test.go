package burr

import (
	"reflect"
	"testing"
)

func TestSolidGeometry(t *testing.T) {
	if len(solid) != 104 {
		t.Errorf("TestSolidGeometry: solid has %d cells (expected 104)", len(solid))
	}
	if solidLo != (Cell{-3, -3, -3}) || solidHi != (Cell{2, 2, 2}) {
		t.Errorf("TestSolidGeometry: solid bounds are %v, %v", solidLo, solidHi)
	}
	if len(fullBar()) != 24 {
		t.Errorf("TestSolidGeometry: full bar has %d cells", len(fullBar()))
	}
	for i, s := range slots {
		if len(required[i]) != 8 {
			t.Errorf("TestSolidGeometry: slot %s has %d required cells", s.Name(), len(required[i]))
		}
		placed := s.placeAll(fullBar())
		if !placed.contains(required[i]) {
			t.Errorf("TestSolidGeometry: full bar in slot %s misses required cells", s.Name())
		}
		if !solid.contains(placed) {
			t.Errorf("TestSolidGeometry: slot %s sticks out of the solid", s.Name())
		}
	}
}

type slotPlaceTestcase struct {
	in   Cell
	outs [6]Cell // world cell per slot, A through F
}

func TestSlotPlace(t *testing.T) {
	tcs := []slotPlaceTestcase{
		{Cell{-1, -1, 2}, [6]Cell{
			{-1, -2, 2}, {2, -1, -1}, {-2, -3, -1}, {2, -1, 1}, {0, -3, -1}, {-1, 0, 2},
		}},
		{Cell{0, 1, -3}, [6]Cell{
			{0, 0, -3}, {-3, 1, -2}, {-1, 2, 1}, {-3, 1, 0}, {1, 2, 1}, {0, 2, -3},
		}},
		{Cell{1, 0, 0}, [6]Cell{
			{1, -1, 0}, {0, 0, -3}, {0, -1, 0}, {0, 0, -1}, {2, -1, 0}, {1, 1, 0},
		}},
	}
	for i, tc := range tcs {
		for si, s := range slots {
			if got := s.place(tc.in); got != tc.outs[si] {
				t.Errorf("TestSlotPlace case %d: slot %s places %v at %v (expected %v)",
					i+1, s.Name(), tc.in, got, tc.outs[si])
			}
		}
	}
}

func TestSlotNames(t *testing.T) {
	for want := byte('A'); want <= 'F'; want++ {
		si, ok := slotIndex(want)
		if !ok || slots[si].name != want {
			t.Errorf("TestSlotNames: slotIndex(%q) gave %d, %v", string(want), si, ok)
		}
	}
	for _, bad := range []byte{'G', 'a', '@', '1'} {
		if _, ok := slotIndex(bad); ok {
			t.Errorf("TestSlotNames: slotIndex(%q) should fail", string(bad))
		}
	}
}

// Admissibility depends on the slot: the same shape covers the
// required end blocks under different orientations in different
// slots.
func TestAdmissiblePerSlot(t *testing.T) {
	p, e := newPiece(1, oakShapes[0])
	if e != nil {
		t.Fatalf("TestAdmissiblePerSlot: newPiece failed: %v", e)
	}
	expected := map[string][]string{
		"A": {"a", "e"},
		"B": {"b", "f"},
		"C": {"d", "h"},
		"D": {"d", "h"},
		"E": {"b", "f"},
		"F": {"c", "g"},
	}
	for si, s := range slots {
		var labels []string
		for _, v := range admissible(s, p) {
			labels = append(labels, string(v.label))
		}
		if !reflect.DeepEqual(labels, expected[s.Name()]) {
			t.Errorf("TestAdmissiblePerSlot: slot %s admits %v (expected %v)",
				s.Name(), labels, expected[s.Name()])
		}
		for _, v := range admissible(s, p) {
			if !v.cells.contains(required[si]) {
				t.Errorf("TestAdmissiblePerSlot: slot %s variant %q misses required cells",
					s.Name(), string(v.label))
			}
		}
	}
}

func TestTravelEnvelope(t *testing.T) {
	if !inTravelEnvelope(solid) {
		t.Errorf("TestTravelEnvelope: the solid is outside its own envelope")
	}
	edge := newCellset([]Cell{{solidHi.X + clearance, 0, 0}})
	if !inTravelEnvelope(edge) {
		t.Errorf("TestTravelEnvelope: cell at the margin should be inside")
	}
	beyond := newCellset([]Cell{{solidHi.X + clearance + 1, 0, 0}})
	if inTravelEnvelope(beyond) {
		t.Errorf("TestTravelEnvelope: cell past the margin should be outside")
	}
}
