// Package priority computes a building's intrinsic importance from its
// category and occupant count. The score is independent of connection
// cost; cost efficiency only enters later, in the allocator's composite
// ranking.
package priority

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/gridwatt/gridplan/core/model"
)

// Category is the resolved building category.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryResidential
	CategorySchool
	CategoryHospital
)

func (c Category) String() string {
	switch c {
	case CategoryHospital:
		return "hospital"
	case CategorySchool:
		return "school"
	case CategoryResidential:
		return "residential"
	default:
		return "unknown"
	}
}

// Default category weights.
const (
	WeightHospital    = 100.0
	WeightSchool      = 50.0
	WeightResidential = 10.0
	WeightUnknown     = 1.0
)

// categoryKeywords maps folded label substrings to categories. Source
// data mixes French and English labels, with and without accents.
var categoryKeywords = []struct {
	keyword  string
	category Category
}{
	{"hopital", CategoryHospital},
	{"hospital", CategoryHospital},
	{"ecole", CategorySchool},
	{"school", CategorySchool},
	{"habitation", CategoryResidential},
	{"residen", CategoryResidential},
	{"maison", CategoryResidential},
}

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// fold lowercases the label and strips diacritics, so "Hôpital" and
// "hopital" resolve identically.
func fold(label string) string {
	folded, _, err := transform.String(foldTransformer, strings.ToLower(label))
	if err != nil {
		return strings.ToLower(label)
	}
	return folded
}

// Categorize resolves a raw category label to a Category using
// accent-insensitive substring matching.
func Categorize(label string) Category {
	l := fold(label)
	for _, kw := range categoryKeywords {
		if strings.Contains(l, kw.keyword) {
			return kw.category
		}
	}
	return CategoryUnknown
}

// IsCritical reports whether the label resolves to a critical facility.
// Critical facilities are never deferred by the phase partitioner.
func IsCritical(label string) bool {
	return Categorize(label) == CategoryHospital
}

// Engine computes priority scores from a per-category weight table.
type Engine struct {
	weights map[Category]float64
}

// NewEngine returns an engine with the default weight table.
func NewEngine() *Engine {
	return &Engine{weights: map[Category]float64{
		CategoryHospital:    WeightHospital,
		CategorySchool:      WeightSchool,
		CategoryResidential: WeightResidential,
		CategoryUnknown:     WeightUnknown,
	}}
}

// Weight returns the weight for a raw category label.
func (e *Engine) Weight(label string) float64 {
	return e.weights[Categorize(label)]
}

// Score returns the priority score for a category label and house count.
func (e *Engine) Score(label string, houseCount int) float64 {
	return e.Weight(label) * float64(houseCount)
}

// ScoreAll recomputes the priority score of every building in the
// registry.
func (e *Engine) ScoreAll(buildings *model.BuildingRegistry) {
	for _, b := range buildings.All() {
		b.PriorityScore = e.Score(b.Type, b.HouseCount)
	}
}
