package schema

// Snapshot is a plain, serializable view of a validated document, with
// every type reference resolved. It is what `apigen dump` exports.
type Snapshot struct {
	Name      string             `json:"name" yaml:"name" msgpack:"name"`
	Version   string             `json:"version" yaml:"version" msgpack:"version"`
	Types     []string           `json:"types" yaml:"types" msgpack:"types"`
	Constants []TypedSnapshot    `json:"constants,omitempty" yaml:"constants,omitempty" msgpack:"constants,omitempty"`
	Enums     []EnumSnapshot     `json:"enums,omitempty" yaml:"enums,omitempty" msgpack:"enums,omitempty"`
	Aliases   []AliasSnapshot    `json:"aliases,omitempty" yaml:"aliases,omitempty" msgpack:"aliases,omitempty"`
	Structs   []StructSnapshot   `json:"structs,omitempty" yaml:"structs,omitempty" msgpack:"structs,omitempty"`
	Classes   []ClassSnapshot    `json:"classes,omitempty" yaml:"classes,omitempty" msgpack:"classes,omitempty"`
	Functions []CallableSnapshot `json:"functions,omitempty" yaml:"functions,omitempty" msgpack:"functions,omitempty"`
	Usage     UsageSnapshot      `json:"usage" yaml:"usage" msgpack:"usage"`
}

// TypedSnapshot describes a constant, member or parameter.
type TypedSnapshot struct {
	Name       string  `json:"name" yaml:"name" msgpack:"name"`
	Type       string  `json:"type" yaml:"type" msgpack:"type"`
	Resolved   string  `json:"resolved" yaml:"resolved" msgpack:"resolved"`
	RefType    RefType `json:"ref_type,omitempty" yaml:"ref_type,omitempty" msgpack:"ref_type,omitempty"`
	ArrayCount int     `json:"array_count,omitempty" yaml:"array_count,omitempty" msgpack:"array_count,omitempty"`
	IsList     bool    `json:"is_list,omitempty" yaml:"is_list,omitempty" msgpack:"is_list,omitempty"`
	IsConst    bool    `json:"is_const,omitempty" yaml:"is_const,omitempty" msgpack:"is_const,omitempty"`
	IsStatic   bool    `json:"is_static,omitempty" yaml:"is_static,omitempty" msgpack:"is_static,omitempty"`
	Value      string  `json:"value,omitempty" yaml:"value,omitempty" msgpack:"value,omitempty"`
}

// EnumSnapshot describes an enum.
type EnumSnapshot struct {
	Name     string          `json:"name" yaml:"name" msgpack:"name"`
	BaseType string          `json:"base_type" yaml:"base_type" msgpack:"base_type"`
	Members  []TypedSnapshot `json:"members" yaml:"members" msgpack:"members"`
}

// AliasSnapshot describes an alias.
type AliasSnapshot struct {
	Name       string  `json:"name" yaml:"name" msgpack:"name"`
	BaseType   string  `json:"base_type" yaml:"base_type" msgpack:"base_type"`
	Resolved   string  `json:"resolved" yaml:"resolved" msgpack:"resolved"`
	RefType    RefType `json:"ref_type,omitempty" yaml:"ref_type,omitempty" msgpack:"ref_type,omitempty"`
	ArrayCount int     `json:"array_count,omitempty" yaml:"array_count,omitempty" msgpack:"array_count,omitempty"`
	IsList     bool    `json:"is_list,omitempty" yaml:"is_list,omitempty" msgpack:"is_list,omitempty"`
	IsConst    bool    `json:"is_const,omitempty" yaml:"is_const,omitempty" msgpack:"is_const,omitempty"`
}

// StructSnapshot describes a struct.
type StructSnapshot struct {
	Name    string          `json:"name" yaml:"name" msgpack:"name"`
	Members []TypedSnapshot `json:"members,omitempty" yaml:"members,omitempty" msgpack:"members,omitempty"`
}

// ClassSnapshot describes a class.
type ClassSnapshot struct {
	Name          string             `json:"name" yaml:"name" msgpack:"name"`
	StaticFactory string             `json:"static_factory,omitempty" yaml:"static_factory,omitempty" msgpack:"static_factory,omitempty"`
	Constants     []TypedSnapshot    `json:"constants,omitempty" yaml:"constants,omitempty" msgpack:"constants,omitempty"`
	Members       []TypedSnapshot    `json:"members,omitempty" yaml:"members,omitempty" msgpack:"members,omitempty"`
	Methods       []CallableSnapshot `json:"methods,omitempty" yaml:"methods,omitempty" msgpack:"methods,omitempty"`
}

// CallableSnapshot describes a method or function.
type CallableSnapshot struct {
	Returns       TypedSnapshot   `json:"returns" yaml:"returns" msgpack:"returns"`
	Parameters    []TypedSnapshot `json:"parameters,omitempty" yaml:"parameters,omitempty" msgpack:"parameters,omitempty"`
	IsFactory     bool            `json:"is_factory,omitempty" yaml:"is_factory,omitempty" msgpack:"is_factory,omitempty"`
	IsStatic      bool            `json:"is_static,omitempty" yaml:"is_static,omitempty" msgpack:"is_static,omitempty"`
	IsConstMethod bool            `json:"is_const_method,omitempty" yaml:"is_const_method,omitempty" msgpack:"is_const_method,omitempty"`
}

// UsageSnapshot lists the container usage of the document.
type UsageSnapshot struct {
	Lists  []string         `json:"lists,omitempty" yaml:"lists,omitempty" msgpack:"lists,omitempty"`
	Arrays map[string][]int `json:"arrays,omitempty" yaml:"arrays,omitempty" msgpack:"arrays,omitempty"`
}

// Snapshot returns the serializable view of api.
func (api *API) Snapshot() *Snapshot {
	s := &Snapshot{
		Name:    api.name,
		Version: api.version,
		Types:   api.reg.Names(),
	}
	for _, c := range api.constants {
		s.Constants = append(s.Constants, snapTyped(&c.Typed, c.value))
	}
	for _, e := range api.enums {
		es := EnumSnapshot{Name: e.name, BaseType: e.baseType}
		for _, m := range e.members {
			es.Members = append(es.Members, snapTyped(&m.Typed, m.value))
		}
		s.Enums = append(s.Enums, es)
	}
	for _, a := range api.aliases {
		s.Aliases = append(s.Aliases, AliasSnapshot{
			Name:       a.name,
			BaseType:   a.baseType,
			Resolved:   typeName(a.Resolved()),
			RefType:    a.ref,
			ArrayCount: a.arrayCount,
			IsList:     a.isList,
			IsConst:    a.isConst,
		})
	}
	for _, st := range api.structs {
		ss := StructSnapshot{Name: st.name}
		for _, m := range st.members {
			ss.Members = append(ss.Members, snapMember(m))
		}
		s.Structs = append(s.Structs, ss)
	}
	for _, c := range api.classes {
		cs := ClassSnapshot{Name: c.name}
		if f, ok := c.StaticFactory(); ok {
			cs.StaticFactory = f.name
		}
		for _, k := range c.constants {
			cs.Constants = append(cs.Constants, snapTyped(&k.Typed, k.value))
		}
		for _, m := range c.members {
			cs.Members = append(cs.Members, snapMember(m))
		}
		for _, m := range c.methods {
			ms := snapCallable(&m.Callable)
			ms.IsStatic = m.isStatic
			ms.IsConstMethod = m.isConstMethod
			cs.Methods = append(cs.Methods, ms)
		}
		s.Classes = append(s.Classes, cs)
	}
	for _, fn := range api.functions {
		s.Functions = append(s.Functions, snapCallable(&fn.Callable))
	}
	u := api.Usage()
	for _, t := range u.ListTypes() {
		s.Usage.Lists = append(s.Usage.Lists, t.Name())
	}
	if len(u.ArrayUsages()) > 0 {
		s.Usage.Arrays = make(map[string][]int, len(u.ArrayUsages()))
		for _, au := range u.ArrayUsages() {
			s.Usage.Arrays[au.Type.Name()] = au.Counts
		}
	}
	return s
}

func typeName(t Type) string {
	if t == nil {
		return ""
	}
	return t.Name()
}

func snapTyped(t *Typed, value string) TypedSnapshot {
	return TypedSnapshot{
		Name:       t.name,
		Type:       t.typeName,
		Resolved:   typeName(t.Resolved()),
		RefType:    t.ref,
		ArrayCount: t.arrayCount,
		IsList:     t.isList,
		IsConst:    t.isConst,
		Value:      value,
	}
}

func snapMember(m *Member) TypedSnapshot {
	ts := snapTyped(&m.Typed, "")
	ts.IsStatic = m.isStatic
	return ts
}

func snapCallable(c *Callable) CallableSnapshot {
	cs := CallableSnapshot{
		Returns:   snapTyped(&c.Typed, ""),
		IsFactory: c.isFactory,
	}
	for _, p := range c.parameters {
		cs.Parameters = append(cs.Parameters, snapTyped(&p.Typed, ""))
	}
	return cs
}
