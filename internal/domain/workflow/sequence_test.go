package workflow

import (
	"errors"
	"testing"
)

func TestNewSequence(t *testing.T) {
	tests := []struct {
		name    string
		raw     []string
		want    Sequence
		wantErr error
	}{
		{
			name: "canonical names",
			raw:  []string{"faculty", "committee", "rector"},
			want: Sequence{StepFaculty, StepCommittee, StepRector},
		},
		{
			name: "legacy aliases normalize",
			raw:  []string{"faculty_admin", "committee_member", "rectorate"},
			want: Sequence{StepFaculty, StepCommittee, StepRector},
		},
		{
			name: "whitespace and case tolerated",
			raw:  []string{" Faculty ", "COMMITTEE"},
			want: Sequence{StepFaculty, StepCommittee},
		},
		{
			name:    "empty sequence rejected",
			raw:     []string{},
			wantErr: ErrEmptySequence,
		},
		{
			name:    "unknown step rejected",
			raw:     []string{"faculty", "dean"},
			wantErr: ErrInvalidStep,
		},
		{
			name:    "done is not a configurable step",
			raw:     []string{"faculty", "done"},
			wantErr: ErrInvalidStep,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewSequence(tt.raw)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("NewSequence() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewSequence() error = %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("NewSequence() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSequence_Next(t *testing.T) {
	seq := Sequence{StepFaculty, StepCommittee, StepRector}

	next, ok := seq.Next(StepFaculty)
	if !ok || next != StepCommittee {
		t.Errorf("Next(faculty) = %v, %v, want committee, true", next, ok)
	}

	next, ok = seq.Next(StepCommittee)
	if !ok || next != StepRector {
		t.Errorf("Next(committee) = %v, %v, want rector, true", next, ok)
	}

	if _, ok := seq.Next(StepRector); ok {
		t.Error("Next(rector) should report no following step")
	}

	if _, ok := seq.Next(StepDone); ok {
		t.Error("Next(done) should report no following step")
	}
}

func TestSequence_Equal(t *testing.T) {
	tests := []struct {
		name  string
		a, b  Sequence
		equal bool
	}{
		{
			name:  "same steps",
			a:     Sequence{StepFaculty, StepCommittee},
			b:     Sequence{StepFaculty, StepCommittee},
			equal: true,
		},
		{
			name:  "different order",
			a:     Sequence{StepFaculty, StepCommittee},
			b:     Sequence{StepCommittee, StepFaculty},
			equal: false,
		},
		{
			name:  "prefix is not equal",
			a:     Sequence{StepFaculty, StepCommittee},
			b:     Sequence{StepFaculty, StepCommittee, StepRector},
			equal: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.equal {
				t.Errorf("Equal() = %v, want %v", got, tt.equal)
			}
		})
	}
}
