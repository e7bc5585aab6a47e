package routing

// Param is a named value captured while matching.
type Param struct {
	Name  string
	Value string
}

// Params are route parameters in capture order.
type Params []Param

// Get returns the value of the first parameter called name.
func (p Params) Get(name string) (string, bool) {
	for _, kv := range p {
		if kv.Name == name {
			return kv.Value, true
		}
	}
	return "", false
}

// Map returns the parameters as a map. Later duplicates win.
func (p Params) Map() map[string]string {
	m := make(map[string]string, len(p))
	for _, kv := range p {
		m[kv.Name] = kv.Value
	}
	return m
}
