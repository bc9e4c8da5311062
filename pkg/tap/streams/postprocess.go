package streams

import (
	"github.com/casesondemand/tap-leadbyte/pkg/taperrors"
)

// keyField maps a nested identifier onto the flattened primary-key field
// it populates.
type keyField struct {
	flat   string
	object string
	field  string
}

// requireNested returns row[object][field] and fails loudly when either
// level is absent. Shape errors here abort the stream.
func requireNested(row map[string]interface{}, object, field string) (interface{}, error) {
	nested, ok := row[object].(map[string]interface{})
	if !ok {
		return nil, taperrors.Newf(taperrors.ErrorTypeData, "missing required object %q", object)
	}
	value, ok := nested[field]
	if !ok {
		return nil, taperrors.Newf(taperrors.ErrorTypeData, "missing required field %s.%s", object, field)
	}
	return value, nil
}

// optionalNested returns row[object][field], or the sentinel when the
// nested object is absent. The inner field must still exist once the
// object is present.
func optionalNested(row map[string]interface{}, object, field string, sentinel interface{}) (interface{}, error) {
	nested, ok := row[object].(map[string]interface{})
	if !ok {
		return sentinel, nil
	}
	value, ok := nested[field]
	if !ok {
		return nil, taperrors.Newf(taperrors.ErrorTypeData, "missing required field %s.%s", object, field)
	}
	return value, nil
}

// flattenKeys copies nested identifiers to flattened sibling fields so
// they can serve as composite primary keys.
func flattenKeys(keys []keyField) func(map[string]interface{}) (map[string]interface{}, error) {
	return func(row map[string]interface{}) (map[string]interface{}, error) {
		for _, k := range keys {
			value, err := requireNested(row, k.object, k.field)
			if err != nil {
				return nil, err
			}
			row[k.flat] = value
		}
		return row, nil
	}
}

// pushKeys are the flattened key fields shared by the messaging report
// streams.
var pushKeys = []keyField{
	{flat: "campaign_id", object: "campaign", field: "id"},
	{flat: "responder_id", object: "responder", field: "id"},
	{flat: "supplier_id", object: "supplier", field: "id"},
	{flat: "push_id", object: "push", field: "id"},
}
