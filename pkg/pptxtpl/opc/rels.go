package opc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// Relationship is a single entry of a relationships part.
type Relationship struct {
	ID       string
	Type     string
	Target   string
	External bool
}

// Relationships is the ordered relationship set owned by one part (or by
// the package itself when Source is "/").
type Relationships struct {
	Source string
	items  []*Relationship
}

func newRelationships(source string) *Relationships {
	return &Relationships{Source: source}
}

// All returns the relationships in document order.
func (r *Relationships) All() []*Relationship {
	out := make([]*Relationship, len(r.items))
	copy(out, r.items)
	return out
}

// Len returns the number of relationships.
func (r *Relationships) Len() int {
	return len(r.items)
}

// Get returns the relationship with the given id, or nil.
func (r *Relationships) Get(id string) *Relationship {
	for _, rel := range r.items {
		if rel.ID == id {
			return rel
		}
	}
	return nil
}

// FirstOfType returns the first relationship of the given type, or nil.
func (r *Relationships) FirstOfType(relType string) *Relationship {
	for _, rel := range r.items {
		if rel.Type == relType {
			return rel
		}
	}
	return nil
}

// OfType returns every relationship of the given type.
func (r *Relationships) OfType(relType string) []*Relationship {
	var out []*Relationship
	for _, rel := range r.items {
		if rel.Type == relType {
			out = append(out, rel)
		}
	}
	return out
}

// NextID returns the lowest unused "rIdN" identifier.
func (r *Relationships) NextID() string {
	used := make(map[int]bool, len(r.items))
	for _, rel := range r.items {
		if n, ok := rIDNumber(rel.ID); ok {
			used[n] = true
		}
	}
	for n := 1; ; n++ {
		if !used[n] {
			return "rId" + strconv.Itoa(n)
		}
	}
}

// Add appends a relationship with a freshly allocated id.
func (r *Relationships) Add(relType, target string, external bool) *Relationship {
	rel := &Relationship{
		ID:       r.NextID(),
		Type:     relType,
		Target:   target,
		External: external,
	}
	r.items = append(r.items, rel)
	return rel
}

// AddPart relates the owner to the part named target, computing the
// relative target string.
func (r *Relationships) AddPart(relType, target string) *Relationship {
	return r.Add(relType, RelativeTarget(r.Source, target), false)
}

// Put appends rel as is. It fails when the id is already taken.
func (r *Relationships) Put(rel Relationship) (*Relationship, error) {
	if r.Get(rel.ID) != nil {
		return nil, fmt.Errorf("relationship %s already exists in %s", rel.ID, r.Source)
	}
	out := rel
	r.items = append(r.items, &out)
	return &out, nil
}

// Remove deletes the relationship with the given id and reports whether it
// existed.
func (r *Relationships) Remove(id string) bool {
	for i, rel := range r.items {
		if rel.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return true
		}
	}
	return false
}

// TargetName resolves an internal relationship to the part name it points
// at. External relationships return "".
func (r *Relationships) TargetName(rel *Relationship) string {
	if rel == nil || rel.External {
		return ""
	}
	return ResolveTarget(r.Source, rel.Target)
}

func parseRelationships(source string, data []byte) (*Relationships, error) {
	rels := newRelationships(source)
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parse relationships of %s: %w", source, err)
	}
	root := doc.Root()
	if root == nil {
		return rels, nil
	}
	for _, el := range root.ChildElements() {
		if el.Tag != "Relationship" {
			continue
		}
		rels.items = append(rels.items, &Relationship{
			ID:       el.SelectAttrValue("Id", ""),
			Type:     el.SelectAttrValue("Type", ""),
			Target:   el.SelectAttrValue("Target", ""),
			External: strings.EqualFold(el.SelectAttrValue("TargetMode", ""), targetModeExt),
		})
	}
	return rels, nil
}

func (r *Relationships) marshal() ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	root := doc.CreateElement("Relationships")
	root.CreateAttr("xmlns", nsRelationships)
	for _, rel := range r.items {
		el := root.CreateElement("Relationship")
		el.CreateAttr("Id", rel.ID)
		el.CreateAttr("Type", rel.Type)
		el.CreateAttr("Target", rel.Target)
		if rel.External {
			el.CreateAttr("TargetMode", targetModeExt)
		}
	}
	return doc.WriteToBytes()
}

func rIDNumber(id string) (int, bool) {
	if !strings.HasPrefix(id, "rId") {
		return 0, false
	}
	n, err := strconv.Atoi(id[3:])
	if err != nil {
		return 0, false
	}
	return n, true
}
