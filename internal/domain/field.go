package domain

import "fmt"

// Field identifies one of the nine measurement columns.
type Field int

const (
	Temp Field = iota
	Salinity
	DO
	DOSat
	PH
	Turbidity
	TotalN
	TotalP
	Entero

	// NumFields is the number of measurement fields.
	NumFields = int(Entero) + 1
)

var fieldColumns = [NumFields]string{
	"Temp", "Salinity", "DO", "DO_sat", "pH", "Turbidity", "TotalN", "TotalP", "Entero",
}

var fieldLabels = [NumFields]string{
	"Temperature (C)",
	"Salinity (ppt)",
	"Dissolved Oxygen (mg/L)",
	"Oxygen Saturation (%)",
	"pH",
	"Turbidity (NTU)",
	"Nitrogen (ug/L)",
	"Phosphorus (ug/L)",
	"Enterococcus (MPN)",
}

// Fields returns every measurement field in column order.
func Fields() []Field {
	out := make([]Field, NumFields)
	for i := range out {
		out[i] = Field(i)
	}
	return out
}

// Column returns the CSV column name, e.g. "DO_sat".
func (f Field) Column() string {
	if !f.Valid() {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return fieldColumns[f]
}

// Label returns the human label with unit, e.g. "Oxygen Saturation (%)".
func (f Field) Label() string {
	if !f.Valid() {
		return f.Column()
	}
	return fieldLabels[f]
}

func (f Field) String() string { return f.Column() }

// Valid reports whether f is a known field.
func (f Field) Valid() bool { return f >= 0 && int(f) < NumFields }

// ParseField looks up a field by its column name.
func ParseField(column string) (Field, error) {
	for i, c := range fieldColumns {
		if c == column {
			return Field(i), nil
		}
	}
	return 0, fmt.Errorf("unknown measurement field %q", column)
}
