package filter

import (
	"errors"
	"testing"

	"github.com/ajmonfue/poke-explorer/internal/services/catalog/domain"
	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Terms
	}{
		{name: "empty", input: "  ", want: Terms{}},
		{name: "single", input: `type = "fire"`, want: Terms{Type: "fire"}},
		{name: "conjunction", input: `type = "grass" AND generation = "generation-i"`, want: Terms{Type: "grass", Generation: "generation-i"}},
		{name: "all fields", input: `name = "saur" AND type = "grass" AND generation = "generation-i"`, want: Terms{Name: "saur", Type: "grass", Generation: "generation-i"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.input)
			if err != nil {
				t.Fatalf("parse %q: %v", tc.input, err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("terms mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseRejects(t *testing.T) {
	inputs := []string{
		`type = "fire" OR type = "water"`,
		`type != "fire"`,
		`color = "red"`,
		`type = "fire" AND type = "water"`,
		`type = `,
	}
	for _, input := range inputs {
		if _, err := Parse(input); !errors.Is(err, ErrInvalidFilter) {
			t.Fatalf("parse %q err = %v, want %v", input, err, ErrInvalidFilter)
		}
	}
}

func TestApplyOverlaysFilter(t *testing.T) {
	base := domain.ListFilter{Name: "pika", Type: "electric", Limit: 12, Offset: 24}
	got, err := Apply(`type = "fire"`, base)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	want := domain.ListFilter{Name: "pika", Type: "fire", Limit: 12, Offset: 24}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("filter mismatch (-want +got):\n%s", diff)
	}

	unchanged, err := Apply("", base)
	if err != nil {
		t.Fatalf("apply empty: %v", err)
	}
	if diff := cmp.Diff(base, unchanged); diff != "" {
		t.Fatalf("empty filter changed input (-want +got):\n%s", diff)
	}
}
