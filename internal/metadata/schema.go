package metadata

// rawSchema is the JSON Schema for the assembly document the metadata
// reader hands over. Validation runs before decoding so a malformed
// document is rejected with a path-accurate message instead of surfacing
// later as a half-populated model.
const rawSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "asmlens assembly document",
  "type": "object",
  "required": ["name", "types"],
  "properties": {
    "name": {"type": "string", "minLength": 1},
    "full_name": {"type": "string"},
    "version": {"type": "string"},
    "culture": {"type": "string"},
    "public_key_token": {"type": "string"},
    "runtime": {"type": "string"},
    "architecture": {"type": "string"},
    "kind": {"type": "string"},
    "location": {"type": "string"},
    "types": {"type": "array", "items": {"$ref": "#/definitions/type"}},
    "type_refs": {"type": "array", "items": {"$ref": "#/definitions/type"}}
  },
  "definitions": {
    "type": {
      "type": "object",
      "required": ["name"],
      "properties": {
        "name": {"type": "string", "minLength": 1},
        "namespace": {"type": "string"},
        "visibility": {"type": "string"},
        "is_class": {"type": "boolean"},
        "is_interface": {"type": "boolean"},
        "is_enum": {"type": "boolean"},
        "is_value_type": {"type": "boolean"},
        "is_abstract": {"type": "boolean"},
        "is_sealed": {"type": "boolean"},
        "base_type": {"type": "string"},
        "interfaces": {"type": "array", "items": {"type": "string"}},
        "fields": {"type": "array", "items": {"$ref": "#/definitions/field"}},
        "properties": {"type": "array", "items": {"$ref": "#/definitions/property"}},
        "methods": {"type": "array", "items": {"$ref": "#/definitions/method"}},
        "constructors": {"type": "array", "items": {"$ref": "#/definitions/method"}},
        "events": {"type": "array", "items": {"$ref": "#/definitions/event"}},
        "nested_types": {"type": "array", "items": {"type": "string"}}
      }
    },
    "field": {
      "type": "object",
      "required": ["name", "type"],
      "properties": {
        "name": {"type": "string"},
        "type": {"type": "string"},
        "visibility": {"type": "string"},
        "is_static": {"type": "boolean"},
        "is_init_only": {"type": "boolean"},
        "is_literal": {"type": "boolean"},
        "constant": {"type": "string"}
      }
    },
    "property": {
      "type": "object",
      "required": ["name", "type"],
      "properties": {
        "name": {"type": "string"},
        "type": {"type": "string"},
        "has_getter": {"type": "boolean"},
        "has_setter": {"type": "boolean"},
        "getter_visibility": {"type": "string"},
        "setter_visibility": {"type": "string"}
      }
    },
    "method": {
      "type": "object",
      "required": ["name"],
      "properties": {
        "name": {"type": "string"},
        "return_type": {"type": "string"},
        "parameters": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["type"],
            "properties": {
              "name": {"type": "string"},
              "type": {"type": "string"}
            }
          }
        },
        "visibility": {"type": "string"},
        "is_static": {"type": "boolean"},
        "is_virtual": {"type": "boolean"},
        "is_abstract": {"type": "boolean"},
        "is_final": {"type": "boolean"},
        "is_async": {"type": "boolean"},
        "body": {"type": "array", "items": {"$ref": "#/definitions/instruction"}}
      }
    },
    "event": {
      "type": "object",
      "required": ["name"],
      "properties": {
        "name": {"type": "string"},
        "delegate_type": {"type": "string"}
      }
    },
    "instruction": {
      "type": "object",
      "required": ["op"],
      "properties": {
        "op": {"type": "string", "minLength": 1},
        "str": {"type": "string"},
        "int": {"type": "integer"},
        "float": {"type": "number"},
        "member": {
          "type": "object",
          "required": ["name", "declaring_type"],
          "properties": {
            "name": {"type": "string"},
            "declaring_type": {"type": "string"},
            "signature": {"type": "string"}
          }
        }
      }
    }
  }
}`
