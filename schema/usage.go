package schema

// ArrayUsage records every fixed array count a type is used with.
type ArrayUsage struct {
	Type   Type
	Counts []int // in document order, duplicates kept
}

// Usage indexes which resolved types appear as lists and as fixed-size
// arrays across a document. Backends use it to declare container bindings
// once per type.
type Usage struct {
	lists  []Type
	inList map[Type]struct{}
	arrays []*ArrayUsage
	byType map[Type]*ArrayUsage
}

type usageSite interface {
	Resolved() Type
	IsList() bool
	IsArray() bool
	ArrayCount() int
}

// Collect walks api in document order: constants, struct members, class
// members, class methods with their parameters, then function parameters.
func Collect(api *API) *Usage {
	u := &Usage{
		inList: make(map[Type]struct{}),
		byType: make(map[Type]*ArrayUsage),
	}
	for _, c := range api.constants {
		u.add(c)
	}
	for _, s := range api.structs {
		for _, m := range s.members {
			u.add(m)
		}
	}
	for _, c := range api.classes {
		for _, m := range c.members {
			u.add(m)
		}
		for _, m := range c.methods {
			u.add(m)
		}
		for _, m := range c.methods {
			for _, p := range m.parameters {
				u.add(p)
			}
		}
	}
	for _, fn := range api.functions {
		for _, p := range fn.parameters {
			u.add(p)
		}
	}
	return u
}

func (u *Usage) add(site usageSite) {
	t := site.Resolved()
	if t == nil {
		return
	}
	if site.IsList() {
		if _, ok := u.inList[t]; !ok {
			u.inList[t] = struct{}{}
			u.lists = append(u.lists, t)
		}
	}
	if site.IsArray() {
		au, ok := u.byType[t]
		if !ok {
			au = &ArrayUsage{Type: t}
			u.byType[t] = au
			u.arrays = append(u.arrays, au)
		}
		au.Counts = append(au.Counts, site.ArrayCount())
	}
}

// ListTypes returns the distinct types used as lists, in first-seen order.
func (u *Usage) ListTypes() []Type { return u.lists }

// UsedInList reports whether t is used as a list anywhere.
func (u *Usage) UsedInList(t Type) bool {
	_, ok := u.inList[t]
	return ok
}

// ArrayUsages returns one entry per type used as an array, in first-seen order.
func (u *Usage) ArrayUsages() []*ArrayUsage { return u.arrays }

// ArrayCounts returns the array counts t is used with.
func (u *Usage) ArrayCounts(t Type) []int {
	if au, ok := u.byType[t]; ok {
		return au.Counts
	}
	return nil
}

// Empty reports whether no list or array usage was found.
func (u *Usage) Empty() bool {
	return len(u.lists) == 0 && len(u.arrays) == 0
}

// DistinctCounts returns the counts of au without duplicates, in first-seen order.
func (au *ArrayUsage) DistinctCounts() []int {
	seen := make(map[int]struct{}, len(au.Counts))
	var out []int
	for _, n := range au.Counts {
		if _, ok := seen[n]; !ok {
			seen[n] = struct{}{}
			out = append(out, n)
		}
	}
	return out
}
