package har

import (
	"errors"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// harSchema is deliberately loose: it checks the containers and the fields the
// accessors decode, and allows anything else.
const harSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["log"],
  "properties": {
    "log": {
      "type": "object",
      "properties": {
        "version": {"type": "string"},
        "creator": {"$ref": "#/$defs/creator"},
        "pages": {"type": "array"},
        "entries": {"type": "array", "items": {"$ref": "#/$defs/entry"}}
      }
    }
  },
  "$defs": {
    "number": {"type": ["number", "string", "boolean", "null"]},
    "string": {"type": ["string", "null"]},
    "pair": {
      "type": "object",
      "properties": {
        "name": {"$ref": "#/$defs/string"},
        "value": {"$ref": "#/$defs/string"}
      }
    },
    "pairs": {"type": "array", "items": {"$ref": "#/$defs/pair"}},
    "creator": {
      "type": "object",
      "properties": {
        "name": {"type": "string"},
        "version": {"type": "string"}
      }
    },
    "entry": {
      "type": "object",
      "properties": {
        "startedDateTime": {"type": "string"},
        "time": {"$ref": "#/$defs/number"},
        "request": {
          "type": "object",
          "properties": {
            "method": {"$ref": "#/$defs/string"},
            "url": {"$ref": "#/$defs/string"},
            "httpVersion": {"type": "string"},
            "headers": {"$ref": "#/$defs/pairs"},
            "queryString": {"$ref": "#/$defs/pairs"},
            "cookies": {"$ref": "#/$defs/pairs"},
            "headersSize": {"$ref": "#/$defs/number"},
            "bodySize": {"$ref": "#/$defs/number"},
            "postData": {
              "type": "object",
              "properties": {
                "mimeType": {"type": "string"},
                "text": {"$ref": "#/$defs/string"},
                "params": {
                  "type": "array",
                  "items": {
                    "type": "object",
                    "properties": {
                      "name": {"$ref": "#/$defs/string"},
                      "value": {"$ref": "#/$defs/string"},
                      "fileName": {"type": "string"},
                      "contentType": {"type": "string"}
                    }
                  }
                }
              }
            }
          }
        },
        "response": {
          "type": "object",
          "properties": {
            "status": {"$ref": "#/$defs/number"},
            "statusText": {"type": "string"},
            "httpVersion": {"type": "string"},
            "headers": {"$ref": "#/$defs/pairs"},
            "cookies": {"$ref": "#/$defs/pairs"},
            "redirectURL": {"type": "string"},
            "headersSize": {"$ref": "#/$defs/number"},
            "bodySize": {"$ref": "#/$defs/number"},
            "content": {
              "type": "object",
              "properties": {
                "size": {"$ref": "#/$defs/number"},
                "compression": {"$ref": "#/$defs/number"},
                "mimeType": {"$ref": "#/$defs/string"},
                "text": {"$ref": "#/$defs/string"},
                "encoding": {"type": "string"}
              }
            }
          }
        },
        "timings": {
          "type": "object",
          "additionalProperties": true,
          "properties": {
            "blocked": {"$ref": "#/$defs/number"},
            "dns": {"$ref": "#/$defs/number"},
            "connect": {"$ref": "#/$defs/number"},
            "ssl": {"$ref": "#/$defs/number"},
            "send": {"$ref": "#/$defs/number"},
            "wait": {"$ref": "#/$defs/number"},
            "receive": {"$ref": "#/$defs/number"}
          }
        }
      }
    }
  }
}`

const schemaURL = "har.schema.json"

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	return jsonschema.CompileString(schemaURL, harSchema)
})

// validate checks a decoded document against the HAR schema. The returned
// error is an *Error of kind ErrInvalidFormat pointing at the deepest failure.
func validate(doc any) error {
	schema, err := compiledSchema()
	if err != nil {
		return err
	}
	err = schema.Validate(doc)
	if err == nil {
		return nil
	}
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return &Error{Kind: ErrInvalidFormat, Cause: err}
	}
	leaf := deepestCause(verr)
	loc := leaf.InstanceLocation
	if loc == "" {
		loc = "/"
	}
	return &Error{Kind: ErrInvalidFormat, Message: leaf.Message, Location: loc}
}

func deepestCause(verr *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(verr.Causes) > 0 {
		verr = verr.Causes[0]
	}
	return verr
}
