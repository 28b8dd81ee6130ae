package models

import (
	"encoding/json"
	"fmt"
)

// Grid dimensions of the seating chart.
const (
	GridRows = 5
	GridCols = 6
	GridSize = GridRows * GridCols
)

// SeatingLayout holds one student id per slot, 0 meaning the slot is empty.
type SeatingLayout []int

// NewSeatingLayout returns an empty grid.
func NewSeatingLayout() SeatingLayout {
	return make(SeatingLayout, GridSize)
}

// Clone returns a copy of the layout.
func (l SeatingLayout) Clone() SeatingLayout {
	out := make(SeatingLayout, len(l))
	copy(out, l)
	return out
}

// Swap exchanges the occupants of two slots, either of which may be empty.
func (l SeatingLayout) Swap(i, j int) error {
	if i < 0 || i >= len(l) || j < 0 || j >= len(l) {
		return fmt.Errorf("seat index out of range: %d, %d", i, j)
	}
	if i == j {
		return nil
	}
	l[i], l[j] = l[j], l[i]
	return nil
}

// MarshalJSON encodes empty slots as null.
func (l SeatingLayout) MarshalJSON() ([]byte, error) {
	ids := make([]*int, len(l))
	for i, id := range l {
		if id != 0 {
			v := id
			ids[i] = &v
		}
	}
	return json.Marshal(ids)
}

// UnmarshalJSON decodes a list of ids or nulls.
func (l *SeatingLayout) UnmarshalJSON(data []byte) error {
	var ids []*int
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	out := make(SeatingLayout, len(ids))
	for i, id := range ids {
		if id != nil {
			out[i] = *id
		}
	}
	*l = out
	return nil
}
