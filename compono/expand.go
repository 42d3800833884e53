package compono

import "strings"

// MaxExpansionDepth bounds how many nested component invocations may be
// expanded before the engine gives up and reports the invocation in place.
const MaxExpansionDepth = 64

// callStack tracks the chain of invocation tags currently being expanded, so
// a component invoking itself (directly or through intermediaries) can be
// caught and reported instead of recursing forever. It is per-document, not
// per-scope: a component may be invoked again once it has fully returned.
type callStack struct {
	tags []string
}

func (c *callStack) contains(tag string) bool {
	for _, t := range c.tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (c *callStack) push(tag string) { c.tags = append(c.tags, tag) }
func (c *callStack) pop()            { c.tags = c.tags[:len(c.tags)-1] }

// Expand walks doc in place, expanding component invocations against the
// def-* definitions in lexical scope at each invocation site, and returns
// doc.
func Expand(b *Build, doc *Node) *Node {
	processScope(b, doc, nil, &callStack{}, 0)
	return doc
}

// processScope implements the expansion algorithm for one scope: it collects
// local definitions, then walks root's children, expanding invocations and
// recursing into native/reserved elements (and unresolved invocations) by
// calling processScope again. Each such call opens a new scope frame linked
// to this one, so definitions declared as direct children of a native
// element are visible only inside that element; the enclosing frame is not
// reused for it.
func processScope(b *Build, root *Node, parent *Scope, stack *callStack, depth int) {
	scope := NewScope(parent)
	collectDefinitions(b, scope, root)

	i := 0
	for i < len(root.Children) {
		child := root.Children[i]
		if child.Kind != ElementKind {
			i++
			continue
		}

		if isReserved(child.Tag) || isNative(child.Tag) {
			processScope(b, child, scope, stack, depth)
			i++
			continue
		}

		def, ok := scope.resolve(child.Tag)
		if !ok {
			b.WarnfAt(child, "unknown invocation symbol <%s>", child.Tag)
			processScope(b, child, scope, stack, depth)
			i++
			continue
		}

		expanded := expandInvocation(b, child, def, scope, stack, depth)
		if expanded == nil {
			// Expansion was aborted (depth or cycle); leave the invocation as-is.
			i++
			continue
		}
		n := root.ReplaceChild(i, expanded...)
		i += n
	}
}

// expandInvocation expands a single resolved invocation (call, bound to def)
// and returns its replacement node sequence, or nil if expansion had to be
// aborted and the invocation should be left untouched. callerScope is the
// lexical scope in effect at the invocation site: the expanded body resolves
// its own nested invocations against callerScope, not against def's scope,
// so a definition body sees the lexical environment of its call site rather
// than that of the place it was declared.
func expandInvocation(b *Build, call *Node, def *Node, callerScope *Scope, stack *callStack, depth int) []*Node {
	if depth >= MaxExpansionDepth {
		b.Errorf(call.Source, "max expansion depth exceeded expanding <%s>", call.Tag)
		return nil
	}
	if stack.contains(call.Tag) {
		b.Errorf(call.Source, "recursive component cycle detected at <%s>", call.Tag)
		return nil
	}

	payload := buildSlotPayload(call)

	synthetic := NewDocument()
	for _, c := range def.Children {
		synthetic.AppendChild(c.Clone())
	}

	substitute(b, call, synthetic, payload)
	payload.warnUnused(b, call)

	stack.push(call.Tag)
	processScope(b, synthetic, callerScope, stack, depth+1)
	stack.pop()

	out := append([]*Node{}, synthetic.Children...)
	for _, c := range out {
		c.Parent = nil
	}
	synthetic.Children = nil
	return out
}

// slotBucket holds the clones destined for one named (or default) slot, and
// whether a <slot> element has claimed them yet.
type slotBucket struct {
	nodes []*Node
	used  bool
}

// slotPayload is the set of content buckets built from a component
// invocation's children, keyed by the "slot" attribute the caller tagged
// each child with (empty key is the default bucket).
type slotPayload struct {
	buckets map[string]*slotBucket
}

func buildSlotPayload(call *Node) *slotPayload {
	p := &slotPayload{buckets: make(map[string]*slotBucket)}
	for _, child := range call.Children {
		clone := child.Clone()
		name := ""
		if clone.Kind == ElementKind {
			if slot, ok := clone.Attr("slot"); ok && slot != "" {
				name = slot
				clone.Attrs = removeAttr(clone.Attrs, "slot")
			}
		}
		b, ok := p.buckets[name]
		if !ok {
			b = &slotBucket{}
			p.buckets[name] = b
		}
		b.nodes = append(b.nodes, clone)
	}
	return p
}

// take returns a fresh clone of the named bucket's nodes (empty for an
// unprovided named bucket) and marks the bucket used.
func (p *slotPayload) take(name string) []*Node {
	b, ok := p.buckets[name]
	if !ok {
		return nil
	}
	b.used = true
	out := make([]*Node, len(b.nodes))
	for i, n := range b.nodes {
		out[i] = n.Clone()
	}
	return out
}

// warnUnused reports every named bucket (name != "") that was never consumed
// by a matching <slot> and still holds content.
func (p *slotPayload) warnUnused(b *Build, call *Node) {
	for name, bucket := range p.buckets {
		if name == "" || bucket.used || len(bucket.nodes) == 0 {
			continue
		}
		b.Warnf(call.Source, "unknown named slot '%s' provided to <%s>", name, call.Tag)
	}
}

func removeAttr(attrs []Attribute, name string) []Attribute {
	out := attrs[:0:0]
	for _, a := range attrs {
		if a.Name == name {
			continue
		}
		out = append(out, a)
	}
	return out
}

// substitute walks root (a synthetic definition-body tree), replacing every
// <prop> with its resolved text and every <slot> with the matching payload
// bucket. call is the invocation whose attributes feed <prop> resolution.
func substitute(b *Build, call *Node, root *Node, payload *slotPayload) {
	i := 0
	for i < len(root.Children) {
		child := root.Children[i]
		if child.Kind != ElementKind {
			i++
			continue
		}
		switch child.Tag {
		case "prop":
			n := root.ReplaceChild(i, resolveProp(b, call, child))
			i += n
		case "slot":
			name, _ := child.Attr("name")
			nodes := payload.take(name)
			n := root.ReplaceChild(i, nodes...)
			i += n
		default:
			substitute(b, call, child, payload)
			i++
		}
	}
}

// resolveProp computes the Text node that replaces a <prop> element: the
// invocation's matching attribute value, falling back to the <prop>'s
// default attribute, falling back to empty with a warning.
func resolveProp(b *Build, call *Node, prop *Node) *Node {
	name, ok := prop.Attr("name")
	if !ok || name == "" {
		b.Errorf(prop.Source, "<prop> missing required 'name' attribute")
		return &Node{Kind: TextKind}
	}

	var value string
	if v, present := call.Attr(name); present {
		value = v
	} else if d, present := prop.Attr("default"); present {
		value = d
	} else {
		b.Warnf(prop.Source, "missing prop '%s' on <%s>", name, call.Tag)
	}

	return &Node{Kind: TextKind, Text: escapeProp(value)}
}

// escapeProp escapes text for substitution as element content: &, <, >
// only. Unlike attribute escaping it does not escape quotes, since the
// result is never placed inside a quoted attribute value.
func escapeProp(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '&':
			sb.WriteString("&amp;")
		case '<':
			sb.WriteString("&lt;")
		case '>':
			sb.WriteString("&gt;")
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
