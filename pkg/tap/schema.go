package tap

// FieldType represents the semantic type of a field
type FieldType string

const (
	FieldTypeString FieldType = "string"
	FieldTypeInt    FieldType = "int"
	FieldTypeFloat  FieldType = "float"
	FieldTypeBool   FieldType = "bool"
	FieldTypeObject FieldType = "object"
	FieldTypeArray  FieldType = "array"
)

// Schema describes the shape of a stream's records
type Schema struct {
	Fields []Field
}

// Field represents a field in a schema. Object and array fields carry
// their nested structure in Fields.
type Field struct {
	Name     string
	Type     FieldType
	Nullable bool
	Fields   []Field
}

// FieldNames returns the top-level field names in declaration order
func (s *Schema) FieldNames() []string {
	names := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		names = append(names, f.Name)
	}
	return names
}

// HasField reports whether a top-level field is declared
func (s *Schema) HasField(name string) bool {
	for _, f := range s.Fields {
		if f.Name == name {
			return true
		}
	}
	return false
}
