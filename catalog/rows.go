package catalog

// Constraint type codes as stored in pg_constraint.contype.
const (
	ConstraintPrimary = "p"
	ConstraintUnique  = "u"
)

type TableRow struct {
	OID         uint32 `yaml:"oid"`
	Schema      string `yaml:"schema"`
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Kind        string `yaml:"kind"`
}

type ColumnRow struct {
	OID         uint32  `yaml:"oid"`
	Schema      string  `yaml:"schema"`
	Table       string  `yaml:"table"`
	Name        string  `yaml:"name"`
	Description string  `yaml:"description,omitempty"`
	Type        string  `yaml:"type"`
	Nullable    bool    `yaml:"nullable"`
	Default     *string `yaml:"default,omitempty"`
}

// KeyRow is a primary or unique constraint together with the definition of
// the index backing it.
type KeyRow struct {
	OID        uint32 `yaml:"oid"`
	Name       string `yaml:"name"`
	Definition string `yaml:"definition"`
	Type       string `yaml:"type"`
}

type ForeignKeyRow struct {
	OID       uint32 `yaml:"oid"`
	Name      string `yaml:"name,omitempty"`
	Column    string `yaml:"column"`
	RefOID    uint32 `yaml:"ref_oid"`
	RefColumn string `yaml:"ref_column"`
}

type CheckRow struct {
	OID    uint32 `yaml:"oid"`
	Name   string `yaml:"name,omitempty"`
	Source string `yaml:"source"`
}

type InheritRow struct {
	ParentOID    uint32 `yaml:"parent_oid"`
	ParentSchema string `yaml:"parent_schema"`
	ParentTable  string `yaml:"parent_table"`
	ChildOID     uint32 `yaml:"child_oid"`
	ChildSchema  string `yaml:"child_schema"`
	ChildTable   string `yaml:"child_table"`
}
