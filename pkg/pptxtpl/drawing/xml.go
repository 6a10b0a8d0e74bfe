// Package drawing wraps the PresentationML/DrawingML shape tree of a slide
// in typed shape variants.
package drawing

import (
	"strings"

	"github.com/beevik/etree"
)

// XML namespaces used in slides and charts.
const (
	NsA     = "http://schemas.openxmlformats.org/drawingml/2006/main"
	NsP     = "http://schemas.openxmlformats.org/presentationml/2006/main"
	NsR     = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	NsC     = "http://schemas.openxmlformats.org/drawingml/2006/chart"
	NsA16   = "http://schemas.microsoft.com/office/drawing/2014/main"
	NsP14   = "http://schemas.microsoft.com/office/powerpoint/2010/main"
	URITbl  = "http://schemas.openxmlformats.org/drawingml/2006/table"
	URIChrt = NsC
)

var conventionalPrefix = map[string]string{
	NsA:   "a",
	NsP:   "p",
	NsR:   "r",
	NsC:   "c",
	NsA16: "a16",
	NsP14: "p14",
}

// Is reports whether el is the element local in namespace ns. Detached
// copies cannot resolve their namespace, so the conventional prefix is
// accepted as well.
func Is(el *etree.Element, ns, local string) bool {
	if el == nil || el.Tag != local {
		return false
	}
	if p, ok := conventionalPrefix[ns]; ok && el.Space == p {
		return true
	}
	return el.NamespaceURI() == ns
}

// Child returns the first child element local in namespace ns.
func Child(el *etree.Element, ns, local string) *etree.Element {
	if el == nil {
		return nil
	}
	for _, c := range el.ChildElements() {
		if Is(c, ns, local) {
			return c
		}
	}
	return nil
}

// Children returns every child element local in namespace ns.
func Children(el *etree.Element, ns, local string) []*etree.Element {
	if el == nil {
		return nil
	}
	var out []*etree.Element
	for _, c := range el.ChildElements() {
		if Is(c, ns, local) {
			out = append(out, c)
		}
	}
	return out
}

// Path follows a chain of child elements, all in namespace ns.
func Path(el *etree.Element, ns string, locals ...string) *etree.Element {
	for _, local := range locals {
		el = Child(el, ns, local)
		if el == nil {
			return nil
		}
	}
	return el
}

// Descendants returns every element below el named local in namespace ns,
// in document order.
func Descendants(el *etree.Element, ns, local string) []*etree.Element {
	var out []*etree.Element
	var walk func(*etree.Element)
	walk = func(e *etree.Element) {
		for _, c := range e.ChildElements() {
			if Is(c, ns, local) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	if el != nil {
		walk(el)
	}
	return out
}

// PrefixFor returns the prefix bound to ns in the scope of el. When the
// namespace is not declared it is declared on the root of el's tree with
// the conventional prefix.
func PrefixFor(el *etree.Element, ns string) string {
	root := el
	for e := el; e != nil; e = e.Parent() {
		for _, a := range e.Attr {
			if a.Value != ns {
				continue
			}
			if a.Space == "xmlns" {
				return a.Key
			}
			if a.Space == "" && a.Key == "xmlns" {
				return ""
			}
		}
		root = e
	}
	p, ok := conventionalPrefix[ns]
	if !ok {
		p = "ns"
	}
	root.CreateAttr("xmlns:"+p, ns)
	return p
}

// NewChild creates an element local in namespace ns, using the prefix
// bound in the scope of parent, and inserts it before the first existing
// child whose local name is one of followers (or appends it).
func NewChild(parent *etree.Element, ns, local string, followers ...string) *etree.Element {
	el := etree.NewElement(qualify(PrefixFor(parent, ns), local))
	InsertBefore(parent, el, followers...)
	return el
}

// EnsureChild returns the first child local in namespace ns, creating it
// (see NewChild) when absent.
func EnsureChild(parent *etree.Element, ns, local string, followers ...string) *etree.Element {
	if c := Child(parent, ns, local); c != nil {
		return c
	}
	return NewChild(parent, ns, local, followers...)
}

// InsertBefore inserts child into parent before the first child element
// whose local name is in followers. Without such a sibling the child is
// appended.
func InsertBefore(parent, child *etree.Element, followers ...string) {
	for _, c := range parent.ChildElements() {
		for _, f := range followers {
			if c.Tag == f {
				parent.InsertChildAt(c.Index(), child)
				return
			}
		}
	}
	parent.AddChild(child)
}

// Remove detaches el from its parent.
func Remove(el *etree.Element) {
	if el == nil {
		return
	}
	if p := el.Parent(); p != nil {
		p.RemoveChild(el)
	}
}

// RelAttrs returns every attribute of el and its descendants that lives in
// the relationships namespace (r:id, r:embed, r:link, ...).
func RelAttrs(el *etree.Element) []*etree.Attr {
	var out []*etree.Attr
	var walk func(*etree.Element)
	walk = func(e *etree.Element) {
		for i := range e.Attr {
			a := &e.Attr[i]
			if a.Space == "" || a.Space == "xmlns" {
				continue
			}
			if a.Space == "r" || a.NamespaceURI() == NsR {
				out = append(out, a)
			}
		}
		for _, c := range e.ChildElements() {
			walk(c)
		}
	}
	walk(el)
	return out
}

func qualify(prefix, local string) string {
	if prefix == "" {
		return local
	}
	return prefix + ":" + local
}

func attrInt(el *etree.Element, key string) (int64, bool) {
	if el == nil {
		return 0, false
	}
	v := strings.TrimSpace(el.SelectAttrValue(key, ""))
	if v == "" {
		return 0, false
	}
	n, err := parseInt(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
