package schema

// Registry maps type names to their definitions. Names are write-once:
// registering a name twice fails. A document owns one Registry, built fresh
// for every load.
type Registry struct {
	types map[string]Type
	order []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[string]Type)}
}

// Register inserts t under its name.
func (r *Registry) Register(t Type) error {
	if existing, ok := r.types[t.Name()]; ok {
		return &RedefinitionError{
			Name:      t.Name(),
			Existing:  existing.String(),
			Redefined: t.String(),
		}
	}
	r.types[t.Name()] = t
	r.order = append(r.order, t.Name())
	return nil
}

// Lookup returns the type registered under name.
func (r *Registry) Lookup(name string) (Type, error) {
	t, ok := r.types[name]
	if !ok {
		return nil, &UnknownTypeError{Name: name}
	}
	return t, nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.types[name]
	return ok
}

// Reset clears all registrations.
func (r *Registry) Reset() {
	r.types = make(map[string]Type)
	r.order = nil
}

// SeedPrimitives registers the built-in primitive types.
func (r *Registry) SeedPrimitives() error {
	for _, name := range Primitives {
		if err := r.Register(NewPrimitive(name)); err != nil {
			return err
		}
	}
	return nil
}

// Resolve looks up name and follows alias base types until a non-alias type
// is reached. Revisiting an alias on the way is reported as a CycleError.
func (r *Registry) Resolve(name string) (Type, error) {
	var (
		chain []string
		seen  = make(map[string]struct{})
	)
	for {
		t, err := r.Lookup(name)
		if err != nil {
			return nil, err
		}
		a, ok := t.(*Alias)
		if !ok {
			return t, nil
		}
		chain = append(chain, name)
		if _, ok := seen[name]; ok {
			return nil, &CycleError{Chain: chain}
		}
		seen[name] = struct{}{}
		name = a.baseType
	}
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	return len(r.order)
}
