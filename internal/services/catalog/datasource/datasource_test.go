package datasource

import (
	"errors"
	"testing"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{in: "", want: KindPokeAPI},
		{in: "pokeapi", want: KindPokeAPI},
		{in: "sqlite", want: KindSQLite},
	}
	for _, tc := range tests {
		got, err := ParseKind(tc.in)
		if err != nil {
			t.Fatalf("ParseKind(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseKind(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}

	if _, err := ParseKind("prisma"); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("ParseKind(prisma) err = %v, want %v", err, ErrUnknownKind)
	}
}
