package booklet

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// courseSchema is deliberately permissive about the field variants
// the exports produce (text vs text_md, templates under topic or
// module, string or numeric ids) and strict about structure.
const courseSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["areas"],
  "properties": {
    "areas": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name"],
        "properties": {
          "name": {"type": "string"},
          "desc": {"type": "string"},
          "chapters": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["name"],
              "properties": {
                "name": {"type": "string"},
                "desc": {"type": "string"},
                "topics": {
                  "type": "array",
                  "items": {
                    "type": "object",
                    "required": ["name"],
                    "properties": {
                      "name": {"type": "string"},
                      "desc": {"type": "string"},
                      "banner_color": {"type": "string"},
                      "modules": {
                        "type": "array",
                        "items": {
                          "type": "object",
                          "required": ["name"],
                          "properties": {
                            "name": {"type": "string"},
                            "desc": {"type": "string"},
                            "templates": {"$ref": "#/$defs/templates"}
                          }
                        }
                      },
                      "templates": {"$ref": "#/$defs/templates"}
                    }
                  }
                }
              }
            }
          }
        }
      }
    }
  },
  "$defs": {
    "templates": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id"],
        "properties": {
          "id": {"type": ["string", "number"]},
          "text": {"type": "array", "items": {"type": "string"}},
          "text_md": {"type": "array", "items": {"type": "string"}},
          "images": {"type": "array", "items": {"type": "string"}},
          "roadsigns": {"type": "array", "items": {"type": "string"}},
          "videos": {"type": "array", "items": {"type": "string"}},
          "quiz": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["que"],
              "properties": {
                "que": {"type": "string"},
                "ans": {"type": "string"},
                "is_true": {"type": "boolean"}
              }
            }
          }
        }
      }
    }
  }
}`

var compiledSchema = jsonschema.MustCompileString("course.schema.json", courseSchema)

// ValidateJSON checks a raw course document against the schema.
func ValidateJSON(data []byte) error {
	var v interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("booklet: %w: %v", ErrInvalidInput, err)
	}
	if err := compiledSchema.Validate(v); err != nil {
		return fmt.Errorf("booklet: %w: %v", ErrInvalidInput, err)
	}
	return nil
}
