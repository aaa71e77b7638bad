package payload

import (
	"slices"
	"strconv"
	"strings"

	"github.com/erraggy/asyncspec/descriptor"
	"github.com/erraggy/asyncspec/spec"
)

// Source is the payload one handler accepts or produces.
type Source struct {
	// Handler names the handler function.
	Handler string
	Payload descriptor.Payload
}

// ResolvePayloads merges the payloads of the handlers sharing one channel.
//
// With a single source its payload is returned unchanged. With several, the
// result is a keyed union holding one variant per source, in order. A
// variant whose title has ":"-separated words (a generated title such as
// "orders:Message:Payload") is renamed to
// "<handler>:<extra>:<words after servedWords>"; extra is skipped when it
// is empty or already one of the words. Shared definitions of every source
// are kept in order. Variants that end up with the same name are merged,
// the later body winning. No sources yield an empty payload.
func ResolvePayloads(sources []Source, extra string, servedWords int) descriptor.Payload {
	switch len(sources) {
	case 0:
		return descriptor.Payload{}
	case 1:
		return sources[0].Payload
	}

	out := descriptor.Payload{Variants: []descriptor.NamedSchema{}}
	index := make(map[string]int)
	add := func(v descriptor.NamedSchema) {
		if i, ok := index[v.Name]; ok {
			out.Variants[i] = v
			return
		}
		index[v.Name] = len(out.Variants)
		out.Variants = append(out.Variants, v)
	}

	for i, src := range sources {
		out.Definitions = append(out.Definitions, src.Payload.Definitions...)
		if src.Payload.IsUnion() {
			for _, v := range src.Payload.Variants {
				add(v)
			}
			continue
		}

		body := spec.CloneSchema(src.Payload.Schema)
		if body == nil {
			body = spec.Schema{}
		}
		name, ok := spec.SchemaTitle(body)
		switch {
		case !ok && src.Handler != "":
			name = src.Handler
		case !ok:
			name = "Payload" + strconv.Itoa(i+1)
		default:
			if words := strings.Split(name, ":"); len(words) > 1 {
				name = handlerTitle(src.Handler, extra, words, servedWords)
				body["title"] = name
			}
		}
		add(descriptor.NamedSchema{Name: name, Schema: body})
	}
	return out
}

func handlerTitle(handler, extra string, words []string, servedWords int) string {
	parts := make([]string, 0, len(words)+2)
	if handler != "" {
		parts = append(parts, handler)
	}
	if extra != "" && !slices.Contains(words, extra) {
		parts = append(parts, extra)
	}
	if servedWords < 0 {
		servedWords = 0
	}
	if servedWords < len(words) {
		for _, w := range words[servedWords:] {
			if w != "" {
				parts = append(parts, w)
			}
		}
	}
	return strings.Join(parts, ":")
}
