package analyzer

import "fmt"

// FieldType is the coarse JSON type a schema field must have.
type FieldType string

const (
	TypeString      FieldType = "string"
	TypeNumber      FieldType = "number"
	TypeArray       FieldType = "array"
	TypeStringArray FieldType = "string array"
	TypeObject      FieldType = "object"
)

// Field declares one required key in an analysis result.
type Field struct {
	Name string
	Type FieldType
}

// Schema is the declared shape of an analysis result. Every field is
// required; extra keys in the response are tolerated.
type Schema []Field

// Validate checks the parsed response against the schema. The returned error
// names the first field that is missing or has the wrong type.
func (s Schema) Validate(data map[string]any) error {
	for _, field := range s {
		value, ok := data[field.Name]
		if !ok {
			return fmt.Errorf("missing required field %q", field.Name)
		}
		if err := checkType(value, field.Type); err != nil {
			return fmt.Errorf("field %q: %w", field.Name, err)
		}
	}
	return nil
}

func checkType(value any, want FieldType) error {
	switch want {
	case TypeString:
		if _, ok := value.(string); !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
	case TypeNumber:
		// encoding/json decodes all JSON numbers to float64.
		if _, ok := value.(float64); !ok {
			return fmt.Errorf("expected number, got %T", value)
		}
	case TypeArray:
		if _, ok := value.([]any); !ok {
			return fmt.Errorf("expected array, got %T", value)
		}
	case TypeStringArray:
		items, ok := value.([]any)
		if !ok {
			return fmt.Errorf("expected string array, got %T", value)
		}
		for i, item := range items {
			if _, ok := item.(string); !ok {
				return fmt.Errorf("expected string array, element %d is %T", i, item)
			}
		}
	case TypeObject:
		if _, ok := value.(map[string]any); !ok {
			return fmt.Errorf("expected object, got %T", value)
		}
	default:
		return fmt.Errorf("unknown field type %q", want)
	}
	return nil
}
