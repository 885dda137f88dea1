package schema

var parameterFields = typedFields

var functionFields = append(append([]fieldSpec(nil), typedFields...),
	optional("parameters", kindList),
	optional("is_factory", kindBool),
)

var methodFields = append(append([]fieldSpec(nil), functionFields...),
	optional("is_static", kindBool),
	optional("is_const_method", kindBool),
)

// Parameter is an argument of a method or function. It may be a list but
// never a fixed array.
type Parameter struct {
	Typed
}

// NewParameter builds and validates a parameter against reg.
func NewParameter(reg *Registry, attrs Attrs) (*Parameter, error) {
	p, err := bindParameter(reg, attrs)
	if err != nil {
		return nil, err
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func bindParameter(reg *Registry, attrs Attrs) (*Parameter, error) {
	f, err := bind(kindParameter, attrs, parameterFields)
	if err != nil {
		return nil, err
	}
	p := &Parameter{}
	p.bindTyped(reg, kindParameter, f)
	return p, nil
}

func (p *Parameter) validate() error {
	if err := p.validateTyped(); err != nil {
		return err
	}
	if p.isArray {
		return p.invalid("can't pass arrays as parameters", nil)
	}
	return nil
}

// Callable is the shape shared by methods and free functions. The embedded
// Typed describes the return value.
type Callable struct {
	Typed
	parameters []*Parameter
	isFactory  bool
}

func (c *Callable) bindCallable(reg *Registry, kind string, f *fields) error {
	c.bindTyped(reg, kind, f)
	c.isFactory = f.flag("is_factory")
	for _, a := range f.list("parameters") {
		p, err := bindParameter(reg, a)
		if err != nil {
			return err
		}
		c.parameters = append(c.parameters, p)
	}
	if c.isFactory {
		c.isConst = false
		if c.ref == RefNone {
			c.ref = RefRaw
		}
	}
	return nil
}

// Parameters returns the parameters in declaration order.
func (c *Callable) Parameters() []*Parameter { return c.parameters }

// Parameter returns the parameter named name.
func (c *Callable) Parameter(name string) (*Parameter, bool) {
	for _, p := range c.parameters {
		if p.name == name {
			return p, true
		}
	}
	return nil, false
}

// IsFactory reports whether the callable constructs and returns a class
// instance.
func (c *Callable) IsFactory() bool { return c.isFactory }

// ReturnsVoid reports whether the callable returns nothing.
func (c *Callable) ReturnsVoid() bool { return c.IsVoid() }

func (c *Callable) validateCallable() error {
	if err := c.validateTyped(); err != nil {
		return err
	}
	names := make([]string, len(c.parameters))
	for i, p := range c.parameters {
		if err := p.validate(); err != nil {
			return err
		}
		names[i] = p.name
	}
	if err := uniqueNames(c.kind, c.name, "parameter", names); err != nil {
		return err
	}
	if !c.isFactory {
		return nil
	}
	if c.ref == RefNonOptional {
		return c.invalid("is a factory - ref_type must be 'raw', 'shared', or 'unique'", nil)
	}
	if c.resolved.Kind() != KindClass {
		return c.invalid("is a factory - type "+c.typeName+" is not a class", nil)
	}
	return nil
}

// Function is a free function of the API.
type Function struct {
	Callable
}

// NewFunction builds and validates a function against reg.
func NewFunction(reg *Registry, attrs Attrs) (*Function, error) {
	fn, err := bindFunction(reg, attrs)
	if err != nil {
		return nil, err
	}
	if err := fn.validate(); err != nil {
		return nil, err
	}
	return fn, nil
}

func bindFunction(reg *Registry, attrs Attrs) (*Function, error) {
	f, err := bind(kindFunction, attrs, functionFields)
	if err != nil {
		return nil, err
	}
	fn := &Function{}
	if err := fn.bindCallable(reg, kindFunction, f); err != nil {
		return nil, err
	}
	return fn, nil
}

func (fn *Function) validate() error { return fn.validateCallable() }

// Method is a member function of a class.
type Method struct {
	Callable
	isStatic      bool
	isConstMethod bool
}

// NewMethod builds and validates a method against reg.
func NewMethod(reg *Registry, attrs Attrs) (*Method, error) {
	m, err := bindMethod(reg, attrs)
	if err != nil {
		return nil, err
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func bindMethod(reg *Registry, attrs Attrs) (*Method, error) {
	f, err := bind(kindMethod, attrs, methodFields)
	if err != nil {
		return nil, err
	}
	m := &Method{
		isStatic:      f.flag("is_static"),
		isConstMethod: f.flag("is_const_method"),
	}
	if err := m.bindCallable(reg, kindMethod, f); err != nil {
		return nil, err
	}
	return m, nil
}

// IsStatic reports whether the method is static.
func (m *Method) IsStatic() bool { return m.isStatic }

// IsConstMethod reports whether the method does not modify its receiver.
func (m *Method) IsConstMethod() bool { return m.isConstMethod }

func (m *Method) validate() error {
	if err := m.validateCallable(); err != nil {
		return err
	}
	if m.isStatic && m.isConstMethod {
		return m.invalid("can't be both static and const method", nil)
	}
	return nil
}
