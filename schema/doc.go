// Package schema provides the validated in-memory model of an API
// description: the type registry, the entities declared by a document, type
// resolution and the container usage index backends consume.
//
// # Documents
//
// A document is an attribute map whose root has a name, a version and six
// optional lists:
//
//	{
//	  "name": "demo",
//	  "version": "1.0",
//	  "constants": [{"name": "MAX", "type": "int32", "value": "10"}],
//	  "enums":     [{"name": "Color", "members": [{"name": "red", "value": 0}]}],
//	  "aliases":   [{"name": "Handle", "base_type": "int64"}],
//	  "structs":   [{"name": "Vec2", "members": [{"name": "x", "type": "float32"}]}],
//	  "classes":   [{"name": "Widget", "methods": [...]}],
//	  "functions": [{"name": "version", "type": "string"}]
//	}
//
// [NewAPI] builds the whole document. Entities are bound first, so every type
// is registered before any entity is validated, and a typed value may name a
// type declared further down the document.
//
// # Field Binding
//
// Each entity kind declares its fields explicitly. Unknown fields, missing
// required fields and values of the wrong shape are collected and reported
// together as one [*FieldError]:
//
//	_, err := schema.NewConstant(reg, schema.Attrs{"nme": "MAX", "value": "1"})
//	errors.Is(err, schema.ErrUnexpectedField) // true: nme
//	errors.Is(err, schema.ErrMissingField)    // true: name, type
//
// Structural rules (list and array are exclusive, void can't be const, a
// constant must be numeric, ...) are checked after binding and reported as
// [*ValidationError].
//
// # Resolution
//
// Types are referenced by name and looked up in the document's [Registry].
// [Registry.Resolve] follows aliases to the first non-alias type and reports
// alias cycles as [*CycleError]. Classification predicates such as IsInt
// always answer for the resolved type.
//
// # Usage
//
// [API.Usage] indexes the resolved types used as lists and the counts of
// every fixed-size array, so a backend can declare each container binding
// once.
package schema
