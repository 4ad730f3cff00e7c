package model

import (
	"testing"

	"github.com/gridwatt/gridplan/core/geo"
)

func TestBuildingEfficiency(t *testing.T) {
	b := Building{ID: "b1", HouseCount: 10, ConnectionCost: 500}
	if e := b.Efficiency(); e != 0.02 {
		t.Fatalf("expected 0.02, got %v", e)
	}
	unresolved := Building{ID: "b2", HouseCount: 10}
	if e := unresolved.Efficiency(); e != 0 {
		t.Fatalf("unset cost should yield 0 efficiency, got %v", e)
	}
}

func TestBuildingValidate(t *testing.T) {
	if err := (Building{ID: "b", HouseCount: 1}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (Building{HouseCount: 1}).Validate(); err == nil {
		t.Fatalf("expected error for missing id")
	}
	if err := (Building{ID: "b", HouseCount: 0}).Validate(); err == nil {
		t.Fatalf("expected error for zero houses")
	}
}

func TestInfrastructureLineDerived(t *testing.T) {
	geom := geo.Line(geo.Pt(0, 0), geo.Pt(100, 0))
	l := NewInfrastructureLine("l1", "aérien", &geom, DefaultLineSpecs)
	if l.Type != LineAerial {
		t.Fatalf("expected aerial, got %s", l.Type)
	}
	if l.Length != 100 {
		t.Fatalf("expected length 100, got %v", l.Length)
	}
	if c := l.TotalCost(); c != 50000 {
		t.Fatalf("expected total cost 50000, got %v", c)
	}
	if tt := l.TotalTime(); tt != 200 {
		t.Fatalf("expected total time 200, got %v", tt)
	}
	if c := l.CostPerBuilding(); c != 50000 {
		t.Fatalf("empty line should report full cost, got %v", c)
	}
	l.AddBuilding("b1")
	l.AddBuilding("b2")
	if c := l.CostPerBuilding(); c != 25000 {
		t.Fatalf("expected 25000, got %v", c)
	}
}

func TestAddBuildingSharedFlag(t *testing.T) {
	l := &InfrastructureLine{ID: "l1"}
	l.AddBuilding("b1")
	if l.Shared {
		t.Fatalf("one building should not mark the line shared")
	}
	l.AddBuilding("b1")
	if l.Shared || len(l.ConnectedBuildings) != 1 {
		t.Fatalf("duplicate id must not re-register: %v", l.ConnectedBuildings)
	}
	l.AddBuilding("b2")
	if !l.Shared {
		t.Fatalf("second distinct building must mark the line shared")
	}
	l.AddBuilding("b3")
	if !l.Shared {
		t.Fatalf("shared must stay true")
	}
}

func TestNormalizeLineType(t *testing.T) {
	cases := map[string]string{
		"aérien":      LineAerial,
		"Aerial":      LineAerial,
		"semi-aérien": LineSemiAerial,
		"SEMI-AERIEN": LineSemiAerial,
		"fourreau":    LineUnderground,
		"underground": LineUnderground,
		"mystery":     LineAerial,
	}
	for label, want := range cases {
		if got := NormalizeLineType(label); got != want {
			t.Errorf("%s: expected %s, got %s", label, want, got)
		}
	}
}

func TestRegistryOrder(t *testing.T) {
	reg := NewBuildingRegistry()
	reg.Put("b2", &Building{ID: "b2", HouseCount: 1})
	reg.Put("b1", &Building{ID: "b1", HouseCount: 1})
	reg.Put("b3", &Building{ID: "b3", HouseCount: 1})
	// Replacement keeps the original position.
	reg.Put("b1", &Building{ID: "b1", HouseCount: 5})

	ids := reg.IDs()
	want := []string{"b2", "b1", "b3"}
	for i, id := range want {
		if ids[i] != id {
			t.Fatalf("expected order %v, got %v", want, ids)
		}
	}
	b, ok := reg.Get("b1")
	if !ok || b.HouseCount != 5 {
		t.Fatalf("replacement should update the value")
	}
}
