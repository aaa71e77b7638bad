package spec

import (
	"slices"
	"strings"

	"github.com/erraggy/asyncspec/internal/pathutil"
	"github.com/erraggy/asyncspec/specerrors"
)

// CheckReferences walks every "$ref" in the document and returns one
// ReferenceError per local reference whose target does not exist.
// Non-local references (other files, URLs) are not checked.
// The result order is deterministic.
func (d *Document) CheckReferences() []error {
	c := &refChecker{doc: d, ptr: pathutil.Get()}
	defer pathutil.Put(c.ptr)
	c.walkDocument()
	return c.errs
}

// LocalRefs returns every local "$ref" target in the document, sorted and
// deduplicated.
func (d *Document) LocalRefs() []string {
	c := &refChecker{doc: d, ptr: pathutil.Get(), collect: true}
	defer pathutil.Put(c.ptr)
	c.walkDocument()
	slices.Sort(c.seen)
	return slices.Compact(c.seen)
}

type refChecker struct {
	doc     *Document
	ptr     *pathutil.PointerBuilder
	errs    []error
	collect bool
	seen    []string
}

func (c *refChecker) walkDocument() {
	d := c.doc
	c.ptr.Push("servers")
	for _, name := range sortedKeys(d.Servers) {
		c.ptr.Push(name)
		c.ptr.Push("security")
		for i, ref := range d.Servers[name].Security {
			c.ptr.PushIndex(i)
			c.check(ref)
			c.ptr.Pop()
		}
		c.ptr.Pop()
		c.ptr.Pop()
	}
	c.ptr.Pop()

	c.ptr.Push("channels")
	for _, name := range sortedKeys(d.Channels) {
		ch := d.Channels[name]
		c.ptr.Push(name)
		c.ptr.Push("servers")
		for i, ref := range ch.Servers {
			c.ptr.PushIndex(i)
			c.check(ref)
			c.ptr.Pop()
		}
		c.ptr.Pop()
		c.ptr.Push("messages")
		for _, msg := range sortedKeys(ch.Messages) {
			c.ptr.Push(msg)
			c.check(ch.Messages[msg])
			c.ptr.Pop()
		}
		c.ptr.Pop()
		c.ptr.Pop()
	}
	c.ptr.Pop()

	c.ptr.Push("operations")
	for _, name := range sortedKeys(d.Operations) {
		op := d.Operations[name]
		c.ptr.Push(name)
		c.ptr.Push("channel")
		c.check(op.Channel)
		c.ptr.Pop()
		c.ptr.Push("messages")
		for i, ref := range op.Messages {
			c.ptr.PushIndex(i)
			c.check(ref)
			c.ptr.Pop()
		}
		c.ptr.Pop()
		c.ptr.Pop()
	}
	c.ptr.Pop()

	if d.Components == nil {
		return
	}
	c.ptr.Push("components")
	c.ptr.Push("messages")
	for _, name := range sortedKeys(d.Components.Messages) {
		msg := d.Components.Messages[name]
		if msg == nil || msg.Payload == nil {
			continue
		}
		c.ptr.Push(name)
		c.ptr.Push("payload")
		if msg.Payload.Ref != "" {
			c.checkTarget(msg.Payload.Ref)
		}
		c.ptr.Push("oneOf")
		for i, ref := range msg.Payload.OneOf {
			c.ptr.PushIndex(i)
			c.check(ref)
			c.ptr.Pop()
		}
		c.ptr.Pop()
		c.walkValue(msg.Payload.Extra)
		c.ptr.Pop()
		c.ptr.Pop()
	}
	c.ptr.Pop()
	c.ptr.Push("schemas")
	for _, name := range sortedKeys(d.Components.Schemas) {
		c.ptr.Push(name)
		c.walkValue(d.Components.Schemas[name])
		c.ptr.Pop()
	}
	c.ptr.Pop()
	c.ptr.Pop()
}

// walkValue finds "$ref" strings anywhere inside a decoded schema value.
func (c *refChecker) walkValue(v any) {
	switch t := v.(type) {
	case map[string]any:
		for _, k := range sortedKeys(t) {
			if ref, ok := t[k].(string); ok && k == "$ref" {
				c.checkTarget(ref)
				continue
			}
			c.ptr.Push(k)
			c.walkValue(t[k])
			c.ptr.Pop()
		}
	case []any:
		for i, item := range t {
			c.ptr.PushIndex(i)
			c.walkValue(item)
			c.ptr.Pop()
		}
	}
}

func (c *refChecker) check(ref *Reference) {
	if ref == nil {
		c.errs = append(c.errs, &specerrors.ReferenceError{
			Location: c.ptr.String(),
			Message:  "missing reference",
		})
		return
	}
	c.checkTarget(ref.Ref)
}

func (c *refChecker) checkTarget(target string) {
	if !strings.HasPrefix(target, "#") {
		return
	}
	if c.collect {
		c.seen = append(c.seen, target)
		return
	}
	if !c.doc.Resolves(target) {
		c.errs = append(c.errs, &specerrors.ReferenceError{
			Ref:      target,
			Location: c.ptr.String(),
			Message:  "target not found",
		})
	}
}

// Resolves reports whether a local reference points at an existing
// element of the document.
func (d *Document) Resolves(ref string) bool {
	segs, ok := pathutil.SplitLocal(ref)
	if !ok {
		return false
	}
	switch segs[0] {
	case "servers":
		return len(segs) == 2 && d.Servers[segs[1]] != nil
	case "channels":
		if len(segs) < 2 {
			return false
		}
		ch := d.Channels[segs[1]]
		switch {
		case ch == nil:
			return false
		case len(segs) == 2:
			return true
		case len(segs) == 4 && segs[2] == "messages":
			return ch.Messages[segs[3]] != nil
		}
		return false
	case "operations":
		return len(segs) == 2 && d.Operations[segs[1]] != nil
	case "components":
		return d.Components != nil && d.Components.resolves(segs[1:])
	}
	return false
}

func (c *Components) resolves(segs []string) bool {
	if len(segs) < 2 {
		return false
	}
	switch segs[0] {
	case "messages":
		return len(segs) == 2 && c.Messages[segs[1]] != nil
	case "securitySchemes":
		return len(segs) == 2 && c.SecuritySchemes[segs[1]] != nil
	case "schemas":
		s, ok := c.Schemas[segs[1]]
		if !ok {
			return false
		}
		return resolvePointer(s, segs[2:])
	}
	return false
}

// resolvePointer follows the remaining pointer segments into a schema body.
func resolvePointer(v any, segs []string) bool {
	for _, seg := range segs {
		switch t := v.(type) {
		case map[string]any:
			next, ok := t[seg]
			if !ok {
				return false
			}
			v = next
		case []any:
			i, ok := parseIndex(seg)
			if !ok || i >= len(t) {
				return false
			}
			v = t[i]
		default:
			return false
		}
	}
	return true
}

func parseIndex(s string) (int, bool) {
	if s == "" || (len(s) > 1 && s[0] == '0') {
		return 0, false
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
