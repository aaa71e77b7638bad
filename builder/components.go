package builder

import (
	"fmt"
	"reflect"

	"github.com/erraggy/asyncspec/spec"
)

// Collision records a component-table key written twice with different
// content. The later write is kept.
type Collision struct {
	// Component is the table the key belongs to.
	Component ComponentType
	// Key is the normalized key.
	Key string
	// Previous describes the first writer.
	Previous string
	// Current describes the writer that replaced it.
	Current string
}

// String returns a human-readable description of the collision.
func (c Collision) String() string {
	return fmt.Sprintf("%s %q from %s replaced by %s", c.Component, c.Key, c.Previous, c.Current)
}

// components owns the document-wide tables for one Build call.
// It is never shared between calls.
type components struct {
	schemas        map[string]spec.Schema
	schemaSources  map[string]string
	messages       map[string]*spec.Message
	messageSources map[string]string

	collisions []Collision
	log        Logger
	strict     bool
}

func newComponents(log Logger, strict bool) *components {
	return &components{
		schemas:        make(map[string]spec.Schema),
		schemaSources:  make(map[string]string),
		messages:       make(map[string]*spec.Message),
		messageSources: make(map[string]string),
		log:            log,
		strict:         strict,
	}
}

// putSchema stores a schema body under key. An identical body already
// stored under key is not a collision.
func (c *components) putSchema(key string, body spec.Schema, source string) error {
	if prev, ok := c.schemas[key]; ok && !reflect.DeepEqual(prev, body) {
		if err := c.collide(ComponentSchema, key, c.schemaSources[key], source); err != nil {
			return err
		}
	}
	c.schemas[key] = body
	c.schemaSources[key] = source
	c.log.Debug("registered schema", "key", key, "source", source)
	return nil
}

// putMessage stores a resolved message under key.
func (c *components) putMessage(key string, msg *spec.Message, source string) error {
	if prev, ok := c.messages[key]; ok && !reflect.DeepEqual(prev, msg) {
		if err := c.collide(ComponentMessage, key, c.messageSources[key], source); err != nil {
			return err
		}
	}
	c.messages[key] = msg
	c.messageSources[key] = source
	c.log.Debug("registered message", "key", key, "source", source)
	return nil
}

// collide records a collision. In strict mode it fails instead.
func (c *components) collide(kind ComponentType, key, previous, current string) error {
	col := Collision{Component: kind, Key: key, Previous: previous, Current: current}
	if c.strict {
		return NewCollisionError(col)
	}
	c.collisions = append(c.collisions, col)
	c.log.Warn("component key collision, keeping later definition",
		"component", string(kind), "key", key, "previous", previous, "current", current)
	return nil
}
