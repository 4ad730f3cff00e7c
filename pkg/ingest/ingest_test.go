package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gridwatt/gridplan/core/model"
)

func TestReadBuildingsJSON(t *testing.T) {
	in := `{"buildings": [
		{"id": "h1", "type": "hopital", "house_count": 10, "point": {"x": 1, "y": 2}},
		{"id": "r1", "type": "habitation", "house_count": 3}
	]}`

	records, err := ReadBuildingsJSON(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "h1", records[0].ID)
	require.NotNil(t, records[0].Point)
	require.Equal(t, 2.0, records[0].Point.Y)
	require.Nil(t, records[1].Point)
}

func TestReadBuildingsCSV(t *testing.T) {
	in := "id,type,house_count,x,y\n" +
		"h1,hopital,10,1.5,2.5\n" +
		"r1,habitation,3,,\n"

	records, err := ReadBuildingsCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, 10, records[0].HouseCount)
	require.Equal(t, 1.5, records[0].Point.X)
	// Empty coordinates leave the geometry unset.
	require.Nil(t, records[1].Point)
}

func TestReadBuildingsCSV_MissingColumn(t *testing.T) {
	_, err := ReadBuildingsCSV(strings.NewReader("id,type\na,hopital\n"))
	require.ErrorContains(t, err, "missing column house_count")
}

func TestReadBuildingsCSV_BadHouseCount(t *testing.T) {
	in := "id,type,house_count\nh1,hopital,many\n"
	_, err := ReadBuildingsCSV(strings.NewReader(in))
	require.ErrorContains(t, err, "row 2")
}

func TestReadLinesJSON(t *testing.T) {
	in := `{"lines": [
		{"id": "l1", "type": "aerien", "points": [{"x": 0, "y": 0}, {"x": 100, "y": 0}]}
	]}`

	records, err := ReadLinesJSON(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Len(t, records[0].Points, 2)
}

func TestMapBuildings_SourceDefaults(t *testing.T) {
	reg, err := MapBuildings([]BuildingRecord{{ID: "b1"}})
	require.NoError(t, err)

	b, ok := reg.Get("b1")
	require.True(t, ok)
	require.Equal(t, "habitation", b.Type)
	require.Equal(t, 1, b.HouseCount)
}

func TestMapBuildings_RejectsInvalid(t *testing.T) {
	_, err := MapBuildings([]BuildingRecord{{ID: "", Type: "hopital", HouseCount: 1}})
	require.Error(t, err)
}

func TestMapLines_AssignsSpecs(t *testing.T) {
	reg, err := MapLines([]LineRecord{
		{ID: "l1", Type: "souterrain"},
		{ID: "l2", Type: "something odd"},
	}, model.DefaultLineSpecs)
	require.NoError(t, err)

	l1, _ := reg.Get("l1")
	require.Equal(t, model.LineUnderground, l1.Type)
	require.Equal(t, 900.0, l1.CostPerMeter)

	// Unknown labels fall back to the aerial spec.
	l2, _ := reg.Get("l2")
	require.Equal(t, model.LineAerial, l2.Type)
	require.Equal(t, 500.0, l2.CostPerMeter)
}

func TestMapLines_RequiresID(t *testing.T) {
	_, err := MapLines([]LineRecord{{Type: "aerien"}}, model.DefaultLineSpecs)
	require.Error(t, err)
}

func TestLoadBuildings_ByExtension(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "buildings.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("id,type,house_count\nb1,hopital,2\n"), 0o644))
	records, err := LoadBuildings(csvPath)
	require.NoError(t, err)
	require.Len(t, records, 1)

	jsonPath := filepath.Join(dir, "buildings.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"buildings":[{"id":"b1","type":"hopital","house_count":2}]}`), 0o644))
	records, err = LoadBuildings(jsonPath)
	require.NoError(t, err)
	require.Len(t, records, 1)

	_, err = LoadBuildings(filepath.Join(dir, "buildings.xml"))
	require.Error(t, err)
}

func TestLoadLines_RejectsNonJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lines.csv")
	require.NoError(t, os.WriteFile(path, []byte("id,type\n"), 0o644))
	_, err := LoadLines(path)
	require.Error(t, err)
}
