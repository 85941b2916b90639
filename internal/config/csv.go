package config

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ArchetypeColumns is the fixed header of a tabular archetype file.
var ArchetypeColumns = []string{
	"unitKey",
	"race",
	"layer",
	"hp",
	"shield",
	"armor",
	"damage",
	"cooldownTicks",
	"attackStyle",
	"range",
	"speed",
	"attackMask",
	"renderSize",
	"capacity",
	"count",
	"explosiveRadius",
}

// ParseArchetypesCSV reads the tabular archetype format. Blank lines and lines
// starting with '#' are ignored. The header must match ArchetypeColumns exactly.
func ParseArchetypesCSV(r io.Reader) (*ArchetypesConfig, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("archetype csv: empty input")
	}
	if err != nil {
		return nil, fmt.Errorf("archetype csv: %w", err)
	}
	if len(header) != len(ArchetypeColumns) {
		return nil, fmt.Errorf("archetype csv: header has %d columns, want %d", len(header), len(ArchetypeColumns))
	}
	for i, col := range ArchetypeColumns {
		if strings.TrimSpace(header[i]) != col {
			return nil, fmt.Errorf("archetype csv: header mismatch at column %d: got %q, want %q", i+1, strings.TrimSpace(header[i]), col)
		}
	}

	out := &ArchetypesConfig{}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("archetype csv: %w", err)
		}
		line, _ := cr.FieldPos(0)
		if len(rec) != len(ArchetypeColumns) {
			return nil, fmt.Errorf("archetype csv line %d: %d columns, want %d", line, len(rec), len(ArchetypeColumns))
		}
		for i := range rec {
			rec[i] = strings.TrimSpace(rec[i])
		}
		def, err := parseArchetypeRow(rec)
		if err != nil {
			return nil, fmt.Errorf("archetype csv line %d: %w", line, err)
		}
		out.Units = append(out.Units, def)
	}
	if len(out.Units) == 0 {
		return nil, errors.New("archetype csv: no data rows")
	}
	return out, nil
}

func parseArchetypeRow(rec []string) (ArchetypeDef, error) {
	def := ArchetypeDef{
		Key:         rec[0],
		Race:        rec[1],
		Layer:       rec[2],
		AttackStyle: rec[8],
		AttackMask:  rec[11],
	}
	numeric := []struct {
		col int
		dst *float64
	}{
		{3, &def.HP},
		{4, &def.Shield},
		{5, &def.Armor},
		{6, &def.Damage},
		{7, &def.CooldownTicks},
		{9, &def.Range},
		{10, &def.Speed},
		{12, &def.RenderSize},
		{13, &def.Capacity},
		{14, &def.Count},
		{15, &def.ExplosiveRadius},
	}
	for _, n := range numeric {
		v, err := parseNumber(ArchetypeColumns[n.col], rec[n.col])
		if err != nil {
			return ArchetypeDef{}, err
		}
		*n.dst = v
	}
	return def, nil
}

func parseNumber(field, raw string) (float64, error) {
	if raw == "" {
		return 0, fmt.Errorf("missing value for %s", field)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid value %q for %s", raw, field)
	}
	return v, nil
}
