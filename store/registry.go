package store

import (
	"encoding/json"
	"reflect"
	"sort"

	"github.com/invopop/jsonschema"
)

// registry holds one table per stored type, created on demand.
type registry struct {
	tables map[reflect.Type]anyTable
}

func newRegistry() registry {
	return registry{tables: make(map[reflect.Type]anyTable)}
}

// lookup returns T's table, creating it when create is set.
func lookup[T any](r *registry, create bool) *table[T] {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	if t, ok := r.tables[typ]; ok {
		return t.(*table[T])
	}
	if !create {
		return nil
	}
	t := newTable[T]()
	r.tables[typ] = t
	return t
}

func (r *registry) each(fn func(anyTable)) {
	for _, t := range r.tables {
		fn(t)
	}
}

// Register ensures a table for T exists. It is idempotent and only needed when
// the type should show up in Types before the first value is stored.
func Register[T any](s *Store) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lookup[T](&s.types, true)
}

// TypeInfo describes one registered type.
type TypeInfo struct {
	// Name is the Go type name.
	Name string `json:"name"`
	// Cells is the number of live IDs holding a value of this type.
	Cells int `json:"cells"`
	// Orphans is the number of entries left behind by removed IDs.
	Orphans int `json:"orphans"`
	// Schema is a JSON Schema for the type.
	Schema map[string]interface{} `json:"schema,omitempty"`
}

// Types returns every registered type sorted by name.
func (s *Store) Types() []TypeInfo {
	type described struct {
		info TypeInfo
		typ  reflect.Type
	}

	s.mu.Lock()
	all := make([]described, 0, len(s.types.tables))
	s.types.each(func(t anyTable) {
		live, orphaned := t.count(s.slots.contains)
		all = append(all, described{
			info: TypeInfo{Name: t.elemType().String(), Cells: live, Orphans: orphaned},
			typ:  t.elemType(),
		})
	})
	s.mu.Unlock()

	sort.Slice(all, func(i, j int) bool { return all[i].info.Name < all[j].info.Name })
	out := make([]TypeInfo, len(all))
	for i, d := range all {
		d.info.Schema = TypeToSchema(d.typ)
		out[i] = d.info
	}
	return out
}

// TypeToSchema converts a reflect.Type to a JSON schema.
func TypeToSchema(t reflect.Type) (schemaMap map[string]interface{}) {
	fallback := map[string]interface{}{
		"type":        "object",
		"description": t.String(),
	}

	// Types jsonschema cannot describe (funcs, channels) fall back to a stub.
	// ExpandedStruct panics on anything but a struct, so it is set per kind.
	defer func() {
		if r := recover(); r != nil {
			schemaMap = fallback
		}
	}()

	reflector := jsonschema.Reflector{
		ExpandedStruct:            t.Kind() == reflect.Struct,
		DoNotReference:            true,
		AllowAdditionalProperties: false,
	}
	schema := reflector.ReflectFromType(t)

	data, err := json.Marshal(schema)
	if err != nil {
		return fallback
	}
	if err := json.Unmarshal(data, &schemaMap); err != nil {
		return fallback
	}
	if _, exists := schemaMap["description"]; !exists {
		schemaMap["description"] = t.String()
	}
	return schemaMap
}
