package plant

import (
	"testing"

	"github.com/matzehuels/sprout/pkg/errors"
)

func TestNewInput(t *testing.T) {
	for time := MinStage; time <= MaxStage; time++ {
		in, err := NewInput(time)
		if err != nil {
			t.Fatalf("NewInput(%d): %v", time, err)
		}
		if in.Time() != time {
			t.Errorf("Time() = %d, want %d", in.Time(), time)
		}
		if got, want := in.Scale(), float64(time)*0.25; got != want {
			t.Errorf("Scale() = %v, want %v", got, want)
		}
		if in.Flowering() != (time == 4) {
			t.Errorf("Flowering() = %v at stage %d", in.Flowering(), time)
		}
	}
	for _, bad := range []int{0, 5, -1} {
		if _, err := NewInput(bad); !errors.Is(err, errors.ErrCodeInvalidStage) {
			t.Errorf("NewInput(%d) = %v, want INVALID_STAGE", bad, err)
		}
	}
}

func TestStages(t *testing.T) {
	want := []string{"Seedling", "Young Plant", "Mature Plant", "Flowering"}
	got := Stages()
	if len(got) != len(want) {
		t.Fatalf("len(Stages()) = %d", len(got))
	}
	for i, s := range got {
		if s.ID != i+1 || s.Name != want[i] {
			t.Errorf("stage %d = %d %q", i, s.ID, s.Name)
		}
		if len(s.Characteristics) != 3 || s.Description == "" {
			t.Errorf("stage %q incomplete: %+v", s.Name, s)
		}
	}

	got[0].Characteristics[0] = "changed"
	if Stages()[0].Characteristics[0] == "changed" {
		t.Error("Stages() exposes the catalog for mutation")
	}
}

func TestStageByID(t *testing.T) {
	s, err := StageByID(4)
	if err != nil || s.Name != "Flowering" {
		t.Errorf("StageByID(4) = %+v, %v", s, err)
	}
	if _, err := StageByID(7); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("StageByID(7) = %v, want NOT_FOUND", err)
	}
	if MustInput(2).Stage().Name != "Young Plant" {
		t.Error("Input.Stage() mismatch")
	}
}
