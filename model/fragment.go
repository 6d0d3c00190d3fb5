package model

// MappingFragment maps an entity type onto an additional store object
// beyond its main one, used for entity splitting. Properties join a
// fragment by carrying a column override for the fragment's store
// object.
type MappingFragment struct {
	entity *EntityType
	store  StoreObject
}

// Entity returns the entity type being split.
func (f *MappingFragment) Entity() *EntityType { return f.entity }

// StoreObject returns the fragment's store object.
func (f *MappingFragment) StoreObject() StoreObject { return f.store }

// Properties returns the entity type's properties mapped to this
// fragment, i.e. those carrying a column override for its store object.
func (f *MappingFragment) Properties() []*Property {
	var out []*Property
	for _, p := range f.entity.AllProperties() {
		if p.HasOverrideFor(f.store) {
			out = append(out, p)
		}
	}
	return out
}
