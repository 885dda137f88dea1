package schema

import (
	"fmt"
	"sync"
)

var apiFields = []fieldSpec{
	required("name", kindString),
	required("version", kindString),
	optional("constants", kindList),
	optional("enums", kindList),
	optional("aliases", kindList),
	optional("structs", kindList),
	optional("classes", kindList),
	optional("functions", kindList),
}

// API is the root of a schema document. It owns the registry its entities
// resolve through. An API is immutable once NewAPI returns.
type API struct {
	reg       *Registry
	name      string
	version   string
	constants []*Constant
	enums     []*Enum
	aliases   []*Alias
	structs   []*Struct
	classes   []*Class
	functions []*Function

	usageOnce sync.Once
	usage     *Usage
}

// NewAPI builds and validates the document described by attrs.
//
// Entities are built in two passes. The first binds the fields of every
// entity and registers the types in the order primitives, constants, enums,
// aliases, structs, classes, functions. The second validates the entities
// in the same order, so a type may be referenced before its declaration.
// The first error aborts the build.
func NewAPI(attrs Attrs) (*API, error) {
	f, err := bind(kindAPI, attrs, apiFields)
	if err != nil {
		return nil, err
	}
	api := &API{
		reg:     NewRegistry(),
		name:    f.str("name"),
		version: f.str("version"),
	}
	empty := true
	for _, l := range []string{"constants", "enums", "aliases", "structs", "classes", "functions"} {
		if len(f.list(l)) > 0 {
			empty = false
		}
	}
	if empty {
		return nil, NewValidationError(kindAPI, api.name, "defines no api", ErrEmptyAPI)
	}
	if err := api.reg.SeedPrimitives(); err != nil {
		return nil, err
	}
	if err := api.bindAll(f); err != nil {
		return nil, err
	}
	if err := api.validate(); err != nil {
		return nil, err
	}
	return api, nil
}

func (api *API) bindAll(f *fields) error {
	reg := api.reg
	for _, a := range f.list("constants") {
		c, err := bindConstant(reg, a)
		if err != nil {
			return err
		}
		api.constants = append(api.constants, c)
	}
	for _, a := range f.list("enums") {
		e, err := bindEnum(reg, a)
		if err != nil {
			return err
		}
		if err := reg.Register(e); err != nil {
			return err
		}
		api.enums = append(api.enums, e)
	}
	for _, a := range f.list("aliases") {
		al, err := bindAlias(reg, a)
		if err != nil {
			return err
		}
		if err := reg.Register(al); err != nil {
			return err
		}
		api.aliases = append(api.aliases, al)
	}
	for _, a := range f.list("structs") {
		s, err := bindStruct(reg, a)
		if err != nil {
			return err
		}
		if err := reg.Register(s); err != nil {
			return err
		}
		api.structs = append(api.structs, s)
	}
	for _, a := range f.list("classes") {
		c, err := bindClass(reg, a)
		if err != nil {
			return err
		}
		if err := reg.Register(c); err != nil {
			return err
		}
		api.classes = append(api.classes, c)
	}
	for _, a := range f.list("functions") {
		fn, err := bindFunction(reg, a)
		if err != nil {
			return err
		}
		api.functions = append(api.functions, fn)
	}
	return nil
}

func (api *API) validate() error {
	names := make([]string, 0, len(api.constants))
	for _, c := range api.constants {
		if err := c.validate(); err != nil {
			return err
		}
		names = append(names, c.name)
	}
	if err := uniqueNames(kindAPI, api.name, "constant", names); err != nil {
		return err
	}
	for _, e := range api.enums {
		if err := e.validate(); err != nil {
			return err
		}
	}
	for _, a := range api.aliases {
		if err := a.validate(); err != nil {
			return err
		}
	}
	for _, s := range api.structs {
		if err := s.validate(); err != nil {
			return err
		}
	}
	for _, c := range api.classes {
		if err := c.validate(); err != nil {
			return err
		}
	}
	names = names[:0]
	for _, fn := range api.functions {
		if err := fn.validate(); err != nil {
			return err
		}
		names = append(names, fn.name)
	}
	return uniqueNames(kindAPI, api.name, "function", names)
}

// Name returns the API name.
func (api *API) Name() string { return api.name }

// Version returns the API version string.
func (api *API) Version() string { return api.version }

// Registry returns the registry the document resolves through.
func (api *API) Registry() *Registry { return api.reg }

// Lookup returns the type registered under name.
func (api *API) Lookup(name string) (Type, error) { return api.reg.Lookup(name) }

func (api *API) Constants() []*Constant { return api.constants }
func (api *API) Enums() []*Enum         { return api.enums }
func (api *API) Aliases() []*Alias      { return api.aliases }
func (api *API) Structs() []*Struct     { return api.structs }
func (api *API) Classes() []*Class      { return api.classes }
func (api *API) Functions() []*Function { return api.functions }

// Class returns the class named name.
func (api *API) Class(name string) (*Class, bool) {
	for _, c := range api.classes {
		if c.name == name {
			return c, true
		}
	}
	return nil, false
}

// Struct returns the struct named name.
func (api *API) Struct(name string) (*Struct, bool) {
	for _, s := range api.structs {
		if s.name == name {
			return s, true
		}
	}
	return nil, false
}

// Function returns the free function named name.
func (api *API) Function(name string) (*Function, bool) {
	for _, fn := range api.functions {
		if fn.name == name {
			return fn, true
		}
	}
	return nil, false
}

// Usage returns the list and array usage index of the document. It is
// computed on first call.
func (api *API) Usage() *Usage {
	api.usageOnce.Do(func() {
		api.usage = Collect(api)
	})
	return api.usage
}

func (api *API) String() string {
	return fmt.Sprintf("API %s v%s", api.name, api.version)
}
