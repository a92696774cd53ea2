package slot

import (
	"testing"
	"time"

	"github.com/BruksfildServices01/escape-booking/internal/httperr"
	"github.com/BruksfildServices01/escape-booking/internal/models"
)

func TestOverlaps(t *testing.T) {
	a := Block{Start: at(10, 0), End: at(11, 30)}

	tests := []struct {
		name string
		b    Block
		want bool
	}{
		{"touching after", Block{Start: at(11, 30), End: at(13, 0)}, false},
		{"touching before", Block{Start: at(8, 30), End: at(10, 0)}, false},
		{"inside", Block{Start: at(10, 15), End: at(10, 45)}, true},
		{"crossing start", Block{Start: at(9, 30), End: at(10, 1)}, true},
		{"crossing end", Block{Start: at(11, 29), End: at(12, 0)}, true},
		{"covering", Block{Start: at(9, 0), End: at(12, 0)}, true},
	}

	for _, tt := range tests {
		if got := Overlaps(a, tt.b); got != tt.want {
			t.Fatalf("%s: got %v want %v", tt.name, got, tt.want)
		}
		if got := Overlaps(tt.b, a); got != tt.want {
			t.Fatalf("%s reversed: got %v want %v", tt.name, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	s := models.Slot{Start: at(10, 0).Add(42 * time.Second), Duration: 60, Buffer: 30}
	if err := Normalize(&s); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if !s.Start.Equal(at(10, 0)) {
		t.Fatalf("start not truncated: %v", s.Start)
	}
	if !s.AppointmentEnd.Equal(at(11, 0)) || !s.BlockEnd.Equal(at(11, 30)) {
		t.Fatalf("ends = %v / %v", s.AppointmentEnd, s.BlockEnd)
	}

	bad := models.Slot{Start: at(10, 0)}
	if err := Normalize(&bad); !httperr.IsBusiness(err, "invalid_slot") {
		t.Fatalf("zero duration: got %v", err)
	}
}

func TestValidatePlacement(t *testing.T) {
	existing := []models.Slot{
		newSlot(1, 1, at(10, 0)),
		newSlot(2, 2, at(12, 0)),
	}

	next := newSlot(0, 1, at(11, 30))
	if err := ValidatePlacement(&next, existing); err != nil {
		t.Fatalf("touching slot rejected: %v", err)
	}

	clash := newSlot(0, 1, at(11, 0))
	if err := ValidatePlacement(&clash, existing); !httperr.IsBusiness(err, "slot_overlaps") {
		t.Fatalf("overlap: got %v", err)
	}

	otherRoom := newSlot(0, 2, at(10, 0))
	if err := ValidatePlacement(&otherRoom, existing); err != nil {
		t.Fatalf("other room rejected: %v", err)
	}

	// moving slot 1 by 15 minutes only overlaps its own old row
	moved := newSlot(1, 1, at(10, 15))
	if err := ValidatePlacement(&moved, existing); err != nil {
		t.Fatalf("self overlap rejected: %v", err)
	}
}
