package extraction

import (
	"encoding/json"
	"sort"

	"github.com/invopop/jsonschema"
)

const (
	propertiesKey           = "properties"
	additionalPropertiesKey = "additionalProperties"
	typeKey                 = "type"
	requiredKey             = "required"
	itemsKey                = "items"
)

// SchemaFor reflects T into an inlined JSON Schema map suitable for
// structured-output APIs. Every object closes its property set and lists all
// properties as required. It panics if T cannot be reflected, which only
// happens for programmer error.
func SchemaFor[T any]() map[string]any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	var v T
	schema := reflector.Reflect(v)
	encoded, err := schema.MarshalJSON()
	if err != nil {
		panic(err)
	}
	var out map[string]any
	if err := json.Unmarshal(encoded, &out); err != nil {
		panic(err)
	}
	delete(out, "$schema")
	delete(out, "$id")
	closeObjects(out)
	return out
}

func closeObjects(schema map[string]any) {
	if schemaType, ok := schema[typeKey].(string); ok && schemaType == "object" {
		schema[additionalPropertiesKey] = false
		if properties, ok := schema[propertiesKey].(map[string]any); ok && len(properties) > 0 {
			required := make([]string, 0, len(properties))
			for name := range properties {
				required = append(required, name)
			}
			sort.Strings(required)
			schema[requiredKey] = required
		}
	}
	if properties, ok := schema[propertiesKey].(map[string]any); ok {
		for _, prop := range properties {
			if propMap, ok := prop.(map[string]any); ok {
				closeObjects(propMap)
			}
		}
	}
	if items, ok := schema[itemsKey].(map[string]any); ok {
		closeObjects(items)
	}
}
