package streams

import (
	"github.com/casesondemand/tap-leadbyte/pkg/tap"
)

// Schema field constructors. Every field is nullable; the API omits fields
// freely depending on display options.

func str(name string) tap.Field {
	return tap.Field{Name: name, Type: tap.FieldTypeString, Nullable: true}
}

func integer(name string) tap.Field {
	return tap.Field{Name: name, Type: tap.FieldTypeInt, Nullable: true}
}

func number(name string) tap.Field {
	return tap.Field{Name: name, Type: tap.FieldTypeFloat, Nullable: true}
}

func object(name string, fields ...tap.Field) tap.Field {
	return tap.Field{Name: name, Type: tap.FieldTypeObject, Nullable: true, Fields: fields}
}

func array(name string, elem ...tap.Field) tap.Field {
	return tap.Field{Name: name, Type: tap.FieldTypeArray, Nullable: true, Fields: elem}
}

func strs(names ...string) []tap.Field {
	fields := make([]tap.Field, 0, len(names))
	for _, name := range names {
		fields = append(fields, str(name))
	}
	return fields
}
