package schema

var memberFields = append(append([]fieldSpec(nil), typedFields...),
	optional("is_static", kindBool),
)

var structFields = []fieldSpec{
	required("name", kindString),
	optional("members", kindList),
}

var classFields = []fieldSpec{
	required("name", kindString),
	optional("constants", kindList),
	optional("members", kindList),
	optional("methods", kindList),
}

// Member is a data field of a struct or class.
type Member struct {
	Typed
	isStatic bool
}

// NewMember builds and validates a member against reg.
func NewMember(reg *Registry, attrs Attrs) (*Member, error) {
	m, err := bindMember(reg, attrs)
	if err != nil {
		return nil, err
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func bindMember(reg *Registry, attrs Attrs) (*Member, error) {
	f, err := bind(kindMember, attrs, memberFields)
	if err != nil {
		return nil, err
	}
	m := &Member{isStatic: f.flag("is_static")}
	m.bindTyped(reg, kindMember, f)
	return m, nil
}

// IsStatic reports whether the member is static.
func (m *Member) IsStatic() bool { return m.isStatic }

func (m *Member) validate() error {
	if err := m.validateTyped(); err != nil {
		return err
	}
	if m.IsVoid() {
		return m.invalid("can't have a void type", nil)
	}
	return nil
}

func bindMembers(reg *Registry, list []Attrs) ([]*Member, error) {
	members := make([]*Member, 0, len(list))
	for _, attrs := range list {
		m, err := bindMember(reg, attrs)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, nil
}

func validateMembers(kind, owner string, members []*Member) error {
	names := make([]string, len(members))
	for i, m := range members {
		if err := m.validate(); err != nil {
			return err
		}
		names[i] = m.name
	}
	return uniqueNames(kind, owner, "member", names)
}

func findMember(members []*Member, name string) (*Member, bool) {
	for _, m := range members {
		if m.name == name {
			return m, true
		}
	}
	return nil, false
}

// Struct is a plain aggregate of typed members.
type Struct struct {
	classes
	reg     *Registry
	name    string
	members []*Member
}

// NewStruct builds a struct, registers it in reg and validates it.
func NewStruct(reg *Registry, attrs Attrs) (*Struct, error) {
	s, err := bindStruct(reg, attrs)
	if err != nil {
		return nil, err
	}
	if err := reg.Register(s); err != nil {
		return nil, err
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func bindStruct(reg *Registry, attrs Attrs) (*Struct, error) {
	f, err := bind(kindStruct, attrs, structFields)
	if err != nil {
		return nil, err
	}
	members, err := bindMembers(reg, f.list("members"))
	if err != nil {
		return nil, err
	}
	return &Struct{reg: reg, name: f.str("name"), members: members}, nil
}

func (*Struct) isType() {}

// Name returns the struct name.
func (s *Struct) Name() string { return s.name }

// Kind returns KindStruct.
func (*Struct) Kind() Kind { return KindStruct }

// Resolved returns s.
func (s *Struct) Resolved() Type { return s }

// Members returns the members in declaration order.
func (s *Struct) Members() []*Member { return s.members }

// Member returns the member named name.
func (s *Struct) Member(name string) (*Member, bool) { return findMember(s.members, name) }

func (s *Struct) String() string { return "Struct " + s.name }

func (s *Struct) validate() error {
	if err := validName(kindStruct, s.name); err != nil {
		return err
	}
	for _, m := range s.members {
		if m.isStatic {
			return NewValidationError(kindStruct, s.name, "structs can't have static members, "+m.name+" is static", nil)
		}
	}
	return validateMembers(kindStruct, s.name, s.members)
}

// Class is an aggregate with constants, members and methods.
type Class struct {
	classes
	reg       *Registry
	name      string
	constants []*Constant
	members   []*Member
	methods   []*Method
}

// NewClass builds a class, registers it in reg and validates it.
func NewClass(reg *Registry, attrs Attrs) (*Class, error) {
	c, err := bindClass(reg, attrs)
	if err != nil {
		return nil, err
	}
	if err := reg.Register(c); err != nil {
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func bindClass(reg *Registry, attrs Attrs) (*Class, error) {
	f, err := bind(kindClass, attrs, classFields)
	if err != nil {
		return nil, err
	}
	c := &Class{reg: reg, name: f.str("name")}
	for _, a := range f.list("constants") {
		k, err := bindConstant(reg, a)
		if err != nil {
			return nil, err
		}
		c.constants = append(c.constants, k)
	}
	if c.members, err = bindMembers(reg, f.list("members")); err != nil {
		return nil, err
	}
	for _, a := range f.list("methods") {
		m, err := bindMethod(reg, a)
		if err != nil {
			return nil, err
		}
		c.methods = append(c.methods, m)
	}
	return c, nil
}

func (*Class) isType() {}

// Name returns the class name.
func (c *Class) Name() string { return c.name }

// Kind returns KindClass.
func (*Class) Kind() Kind { return KindClass }

// Resolved returns c.
func (c *Class) Resolved() Type { return c }

// Constants returns the class constants in declaration order.
func (c *Class) Constants() []*Constant { return c.constants }

// Members returns the members in declaration order.
func (c *Class) Members() []*Member { return c.members }

// Methods returns the methods in declaration order.
func (c *Class) Methods() []*Method { return c.methods }

// Member returns the member named name.
func (c *Class) Member(name string) (*Member, bool) { return findMember(c.members, name) }

// Method returns the method named name.
func (c *Class) Method(name string) (*Method, bool) {
	for _, m := range c.methods {
		if m.name == name {
			return m, true
		}
	}
	return nil, false
}

// StaticFactory returns the first factory method that constructs an
// instance of c itself.
func (c *Class) StaticFactory() (*Method, bool) {
	for _, m := range c.methods {
		if m.isFactory && m.Resolved() == Type(c) {
			return m, true
		}
	}
	return nil, false
}

// Factories returns every factory method of c, in declaration order.
func (c *Class) Factories() []*Method {
	var fs []*Method
	for _, m := range c.methods {
		if m.isFactory {
			fs = append(fs, m)
		}
	}
	return fs
}

func (c *Class) String() string { return "Class " + c.name }

func (c *Class) validate() error {
	if err := validName(kindClass, c.name); err != nil {
		return err
	}
	names := make([]string, len(c.constants))
	for i, k := range c.constants {
		if err := k.validate(); err != nil {
			return err
		}
		names[i] = k.name
	}
	if err := uniqueNames(kindClass, c.name, "constant", names); err != nil {
		return err
	}
	if err := validateMembers(kindClass, c.name, c.members); err != nil {
		return err
	}
	names = make([]string, len(c.methods))
	for i, m := range c.methods {
		if err := m.validate(); err != nil {
			return err
		}
		names[i] = m.name
	}
	return uniqueNames(kindClass, c.name, "method", names)
}
