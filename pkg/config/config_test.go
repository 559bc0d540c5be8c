package config_test

import (
	"strings"
	"testing"

	"constraintlab/pkg/config"
	"constraintlab/pkg/kernel"
)

const sampleDoc = `
types:
  Int:
    supertypes: [Numeric]
    conformsTo: [Equatable, IntegerLiteral]
  Numeric:
    supertypes: [Any]
  Point:
    members:
      x: Int
      y: Int
literalDefaults:
  IntegerLiteral: Int
literalAlternatives:
  IntegerLiteral: [Double]
`

func TestDecodeAndBuild(t *testing.T) {
	doc, err := config.Decode(strings.NewReader(sampleDoc))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	k, conformances, members := doc.Build()

	supers := k.DirectSupertypes(kernel.Class{Name: "Int"})
	if len(supers) != 1 || supers[0].String() != "Numeric" {
		t.Fatalf("want [Numeric], got %v", supers)
	}

	if got := conformances["Int"]; len(got) != 2 {
		t.Fatalf("want 2 conformances for Int, got %v", got)
	}

	if def, ok := k.DefaultType("IntegerLiteral"); !ok || def.String() != "Int" {
		t.Fatalf("want default Int, got %v ok=%v", def, ok)
	}

	point, ok := members["Point"]
	if !ok || point["x"].String() != "Int" || point["y"].String() != "Int" {
		t.Fatalf("want Point{x: Int, y: Int}, got %v", point)
	}
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	bad := "types:\n  Int:\n    unknownField: true\n"
	if _, err := config.Decode(strings.NewReader(bad)); err == nil {
		t.Fatal("want an error for an unknown field with KnownFields enabled")
	}
}
