package payload

import (
	"reflect"

	"github.com/erraggy/asyncspec/spec"
)

// schemaCache tracks the named struct types seen by one generator.
// It prevents duplicate generation and handles circular references.
type schemaCache struct {
	byType     map[reflect.Type]spec.Schema // Type → Schema
	byName     map[string]reflect.Type      // Name → Type (for reverse lookup)
	nameByType map[reflect.Type]string      // Type → Name
	inProgress map[reflect.Type]bool        // Circular reference detection
	order      []reflect.Type               // First-completion order
}

func newSchemaCache() *schemaCache {
	return &schemaCache{
		byType:     make(map[reflect.Type]spec.Schema),
		byName:     make(map[string]reflect.Type),
		nameByType: make(map[reflect.Type]string),
		inProgress: make(map[reflect.Type]bool),
	}
}

// get returns a cached schema for the given type, or nil if not cached.
func (c *schemaCache) get(t reflect.Type) spec.Schema {
	return c.byType[t]
}

// reserve binds a name to a type before its schema is complete, so that
// recursive references can point at it.
func (c *schemaCache) reserve(t reflect.Type, name string) {
	c.byName[name] = t
	c.nameByType[t] = name
}

// set stores the completed schema for t.
func (c *schemaCache) set(t reflect.Type, schema spec.Schema) {
	if _, seen := c.byType[t]; !seen {
		c.order = append(c.order, t)
	}
	c.byType[t] = schema
}

func (c *schemaCache) isInProgress(t reflect.Type) bool {
	return c.inProgress[t]
}

func (c *schemaCache) markInProgress(t reflect.Type) {
	c.inProgress[t] = true
}

func (c *schemaCache) clearInProgress(t reflect.Type) {
	delete(c.inProgress, t)
}

// nameFor returns the name bound to t, or "" if none.
func (c *schemaCache) nameFor(t reflect.Type) string {
	return c.nameByType[t]
}

// typeFor returns the type bound to name, or nil if not found.
func (c *schemaCache) typeFor(name string) reflect.Type {
	return c.byName[name]
}
