package rename

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Field keys of the eight-segment naming scheme, in canonical order.
const (
	FieldClass  = "class"
	FieldRev    = "rev"
	FieldVer    = "ver"
	FieldSpec   = "spec"
	FieldDate   = "date"
	FieldClient = "client"
	FieldJob    = "job"
	FieldDesc   = "desc"
)

// FieldOrder is the fixed segment order of built filenames.
var FieldOrder = []string{
	FieldClass, FieldRev, FieldVer, FieldSpec,
	FieldDate, FieldClient, FieldJob, FieldDesc,
}

// Option is one selectable code of a fixed-choice field.
type Option struct {
	Code        string `yaml:"code"`
	Description string `yaml:"description"`
}

// TaxonomyField describes one segment of the naming scheme. Fields
// without options are free text.
type TaxonomyField struct {
	Key     string   `yaml:"key"`
	Label   string   `yaml:"label"`
	Options []Option `yaml:"options,omitempty"`
}

// FixedChoice reports whether the field enumerates its values.
func (f TaxonomyField) FixedChoice() bool {
	return len(f.Options) > 0
}

// HasOption reports whether code is one of the field's option codes.
func (f TaxonomyField) HasOption(code string) bool {
	for _, o := range f.Options {
		if o.Code == code {
			return true
		}
	}
	return false
}

// Taxonomy is the immutable catalog of naming segments loaded at
// startup.
type Taxonomy struct {
	Fields []TaxonomyField `yaml:"fields"`
}

// Field returns the catalog entry for key.
func (t Taxonomy) Field(key string) (TaxonomyField, bool) {
	for _, f := range t.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return TaxonomyField{}, false
}

// DefaultTaxonomy returns the built-in AEC catalog.
func DefaultTaxonomy() Taxonomy {
	return Taxonomy{Fields: []TaxonomyField{
		{Key: FieldClass, Label: "Document Class", Options: []Option{
			{Code: "DWG", Description: "Drawing"},
			{Code: "SPEC", Description: "Specification"},
			{Code: "SUB", Description: "Submittal"},
			{Code: "RFI", Description: "Request for Information"},
			{Code: "CO", Description: "Change Order"},
			{Code: "ASI", Description: "Addendum / Supplemental"},
			{Code: "SHOP", Description: "Shop Drawing"},
			{Code: "PHOTO", Description: "Photo Documentation"},
			{Code: "RPT", Description: "Report"},
			{Code: "SCHED", Description: "Schedule"},
			{Code: "CORR", Description: "Correspondence"},
			{Code: "CALC", Description: "Calculation"},
			{Code: "LOG", Description: "Log / Register"},
			{Code: "MTG", Description: "Meeting Minutes"},
			{Code: "INV", Description: "Invoice"},
			{Code: "PM", Description: "Project Management"},
			{Code: "SAF", Description: "Safety"},
			{Code: "QC", Description: "Quality Control"},
		}},
		{Key: FieldRev, Label: "Revision", Options: []Option{
			{Code: "R00", Description: "Initial Issue"},
			{Code: "R01", Description: "Revision 1"},
			{Code: "R02", Description: "Revision 2"},
			{Code: "R03", Description: "Revision 3"},
			{Code: "R04", Description: "Revision 4"},
			{Code: "R05", Description: "Revision 5"},
			{Code: "RA", Description: "Revision A"},
			{Code: "RB", Description: "Revision B"},
			{Code: "RC", Description: "Revision C"},
			{Code: "RD", Description: "Revision D"},
		}},
		{Key: FieldVer, Label: "Version", Options: []Option{
			{Code: "V1", Description: "Version 1"},
			{Code: "V2", Description: "Version 2"},
			{Code: "V3", Description: "Version 3"},
			{Code: "DRAFT", Description: "Draft"},
			{Code: "FINAL", Description: "Final"},
			{Code: "IFC", Description: "Issued for Construction"},
			{Code: "IFR", Description: "Issued for Review"},
			{Code: "IFB", Description: "Issued for Bid"},
			{Code: "RECORD", Description: "Record / As-Built"},
		}},
		{Key: FieldSpec, Label: "Discipline / Spec Section", Options: []Option{
			{Code: "ARCH", Description: "Architectural"},
			{Code: "STRUC", Description: "Structural"},
			{Code: "MEP", Description: "Mechanical/Electrical/Plumbing"},
			{Code: "ELEC", Description: "Electrical"},
			{Code: "MECH", Description: "Mechanical"},
			{Code: "PLMB", Description: "Plumbing"},
			{Code: "CIVIL", Description: "Civil"},
			{Code: "FIRE", Description: "Fire Protection"},
			{Code: "LAND", Description: "Landscape"},
			{Code: "GEN", Description: "General"},
			{Code: "DIV01", Description: "Division 01 - General"},
			{Code: "DIV03", Description: "Division 03 - Concrete"},
			{Code: "DIV05", Description: "Division 05 - Metals"},
			{Code: "DIV07", Description: "Division 07 - Thermal/Moisture"},
			{Code: "DIV08", Description: "Division 08 - Openings"},
			{Code: "DIV09", Description: "Division 09 - Finishes"},
			{Code: "DIV22", Description: "Division 22 - Plumbing"},
			{Code: "DIV23", Description: "Division 23 - HVAC"},
			{Code: "DIV26", Description: "Division 26 - Electrical"},
		}},
		{Key: FieldDate, Label: "Date"},
		{Key: FieldClient, Label: "Client"},
		{Key: FieldJob, Label: "Job Number"},
		{Key: FieldDesc, Label: "Description"},
	}}
}

// LoadTaxonomyFile reads a catalog from a YAML file. A missing file
// falls back to the built-in catalog.
func LoadTaxonomyFile(path string) (Taxonomy, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultTaxonomy(), nil
		}
		return Taxonomy{}, fmt.Errorf("read taxonomy: %w", err)
	}
	var t Taxonomy
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Taxonomy{}, fmt.Errorf("decode taxonomy: %w", err)
	}
	if err := t.validate(); err != nil {
		return Taxonomy{}, fmt.Errorf("taxonomy %s: %w", filepath.Clean(path), err)
	}
	return t, nil
}

// EnsureTaxonomyFile writes the built-in catalog to path when no file
// exists yet, so users have something concrete to edit.
func EnsureTaxonomyFile(path string) error {
	clean := strings.TrimSpace(path)
	if clean == "" {
		return nil
	}
	clean = filepath.Clean(clean)
	if _, err := os.Stat(clean); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat taxonomy: %w", err)
	}
	if dir := filepath.Dir(clean); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create taxonomy dir: %w", err)
		}
	}
	data, err := yaml.Marshal(DefaultTaxonomy())
	if err != nil {
		return fmt.Errorf("encode taxonomy: %w", err)
	}
	if err := os.WriteFile(clean, data, 0o644); err != nil {
		return fmt.Errorf("write taxonomy: %w", err)
	}
	return nil
}

func (t Taxonomy) validate() error {
	if len(t.Fields) == 0 {
		return errors.New("no fields defined")
	}
	known := make(map[string]struct{}, len(FieldOrder))
	for _, key := range FieldOrder {
		known[key] = struct{}{}
	}
	seen := make(map[string]struct{}, len(t.Fields))
	for _, f := range t.Fields {
		if _, ok := known[f.Key]; !ok {
			return fmt.Errorf("unknown field key %q", f.Key)
		}
		if _, dup := seen[f.Key]; dup {
			return fmt.Errorf("duplicate field key %q", f.Key)
		}
		seen[f.Key] = struct{}{}
		for _, o := range f.Options {
			if strings.TrimSpace(o.Code) == "" {
				return fmt.Errorf("field %q has an option without a code", f.Key)
			}
		}
	}
	// Every segment of the naming scheme must be present; the UI
	// builds one control group per field.
	for _, key := range FieldOrder {
		if _, ok := seen[key]; !ok {
			return fmt.Errorf("missing field %q", key)
		}
	}
	return nil
}
