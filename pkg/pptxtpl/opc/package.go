package opc

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"github.com/natefinch/atomic"
)

// ErrNotPackage indicates the zip archive carries no content types part.
var ErrNotPackage = errors.New("not an OPC package")

// ErrMalformedPart indicates a part whose XML could not be parsed or whose
// structure is missing required elements.
var ErrMalformedPart = errors.New("malformed part")

// ErrPartNotFound indicates a relationship that points at a part absent
// from the package.
var ErrPartNotFound = errors.New("part not found")

// Package is an in-memory OPC package.
type Package struct {
	parts map[string]*Part
	order []string
	rels  *Relationships
	types *contentTypes
}

// Read reads a package from a zip archive.
func Read(ra io.ReaderAt, size int64) (*Package, error) {
	zr, err := zip.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotPackage, err)
	}

	pkg := &Package{
		parts: make(map[string]*Part),
		rels:  newRelationships("/"),
	}

	entries := make(map[string][]byte, len(zr.File))
	var names []string
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		data, err := readZipFile(f)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.Name, err)
		}
		name := partName(f.Name)
		entries[name] = data
		names = append(names, name)
	}

	ctData, ok := entries[contentTypesName]
	if !ok {
		return nil, ErrNotPackage
	}
	if pkg.types, err = parseContentTypes(ctData); err != nil {
		return nil, err
	}

	relSets := make(map[string]*Relationships)
	for _, name := range names {
		if name == contentTypesName {
			continue
		}
		if source, ok := SourceOfRels(name); ok {
			rels, err := parseRelationships(source, entries[name])
			if err != nil {
				return nil, err
			}
			relSets[source] = rels
			continue
		}
		pkg.parts[name] = &Part{
			Name:        name,
			ContentType: pkg.types.lookup(name),
			blob:        entries[name],
		}
		pkg.order = append(pkg.order, name)
	}

	for source, rels := range relSets {
		if source == "/" {
			pkg.rels = rels
			continue
		}
		if part, ok := pkg.parts[source]; ok {
			part.rels = rels
		}
	}

	return pkg, nil
}

// Rels returns the package-level relationships.
func (p *Package) Rels() *Relationships {
	return p.rels
}

// Part returns the part with the given name, or nil.
func (p *Package) Part(name string) *Part {
	return p.parts[name]
}

// Parts returns all parts in archive order.
func (p *Package) Parts() []*Part {
	out := make([]*Part, 0, len(p.order))
	for _, name := range p.order {
		out = append(out, p.parts[name])
	}
	return out
}

// AddPart adds a binary part.
func (p *Package) AddPart(name, contentType string, blob []byte) (*Part, error) {
	if _, exists := p.parts[name]; exists {
		return nil, fmt.Errorf("part %s already exists", name)
	}
	part := &Part{Name: name, ContentType: contentType, blob: blob}
	p.parts[name] = part
	p.order = append(p.order, name)
	p.types.register(name, contentType)
	return part, nil
}

// AddXMLPart adds a part backed by an XML tree.
func (p *Package) AddXMLPart(name, contentType string, doc *etree.Document) (*Part, error) {
	part, err := p.AddPart(name, contentType, nil)
	if err != nil {
		return nil, err
	}
	part.SetXML(doc)
	return part, nil
}

// RemovePart drops a part and its relationships from the package.
func (p *Package) RemovePart(name string) {
	if _, ok := p.parts[name]; !ok {
		return
	}
	delete(p.parts, name)
	delete(p.types.overrides, name)
	for i, n := range p.order {
		if n == name {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
}

// EnsureDefault registers a default content type for ext if none exists
// and reports whether it did.
func (p *Package) EnsureDefault(ext, contentType string) bool {
	if _, ok := p.types.defaults[ext]; ok {
		return false
	}
	p.types.setDefault(ext, contentType)
	return true
}

// RemoveDefault drops the default content type of ext.
func (p *Package) RemoveDefault(ext string) {
	p.types.removeDefault(ext)
}

// NextPartName returns the first name produced by tmpl (a format with one
// %d verb) that is not used yet, counting from 1.
func (p *Package) NextPartName(tmpl string) string {
	for n := 1; ; n++ {
		name := fmt.Sprintf(tmpl, n)
		if _, exists := p.parts[name]; !exists {
			return name
		}
	}
}

// Related resolves relationship relID of source to its target part.
func (p *Package) Related(source *Part, relID string) (*Part, *Relationship, error) {
	rel := source.Rels().Get(relID)
	if rel == nil {
		return nil, nil, fmt.Errorf("%w: %s has no relationship %s", ErrPartNotFound, source.Name, relID)
	}
	if rel.External {
		return nil, rel, fmt.Errorf("relationship %s of %s is external", relID, source.Name)
	}
	name := source.Rels().TargetName(rel)
	target := p.parts[name]
	if target == nil {
		return nil, rel, fmt.Errorf("%w: %s (from %s %s)", ErrPartNotFound, name, source.Name, relID)
	}
	return target, rel, nil
}

// RelatedByType resolves the first relationship of relType owned by source.
func (p *Package) RelatedByType(source *Part, relType string) (*Part, *Relationship, error) {
	rel := source.Rels().FirstOfType(relType)
	if rel == nil {
		return nil, nil, fmt.Errorf("%w: %s has no %s relationship", ErrPartNotFound, source.Name, shortRelType(relType))
	}
	return p.Related(source, rel.ID)
}

// MainDocument returns the part targeted by the package officeDocument
// relationship.
func (p *Package) MainDocument() (*Part, error) {
	rel := p.rels.FirstOfType(RelTypeOfficeDocument)
	if rel == nil {
		return nil, fmt.Errorf("%w: no officeDocument relationship", ErrNotPackage)
	}
	name := p.rels.TargetName(rel)
	part := p.parts[name]
	if part == nil {
		return nil, fmt.Errorf("%w: %s", ErrPartNotFound, name)
	}
	return part, nil
}

// WriteTo serializes the package as a zip archive. Only the parts that can
// be reached from the package relationships are written.
func (p *Package) WriteTo(w io.Writer) (int64, error) {
	reachable := p.reachable()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	ctData, err := p.types.marshal(reachable)
	if err != nil {
		return 0, err
	}
	if err := writeZipEntry(zw, contentTypesName, ctData); err != nil {
		return 0, err
	}
	if err := p.writeRels(zw, p.rels); err != nil {
		return 0, err
	}

	for _, name := range p.order {
		if !reachable[name] {
			continue
		}
		part := p.parts[name]
		data, err := part.Blob()
		if err != nil {
			return 0, fmt.Errorf("serialize %s: %w", name, err)
		}
		if err := writeZipEntry(zw, name, data); err != nil {
			return 0, err
		}
		if part.rels != nil {
			if err := p.writeRels(zw, part.rels); err != nil {
				return 0, err
			}
		}
	}

	if err := zw.Close(); err != nil {
		return 0, err
	}
	return buf.WriteTo(w)
}

// Save writes the package atomically to path.
func (p *Package) Save(path string) error {
	var buf bytes.Buffer
	if _, err := p.WriteTo(&buf); err != nil {
		return err
	}
	return atomic.WriteFile(path, &buf)
}

func (p *Package) writeRels(zw *zip.Writer, rels *Relationships) error {
	if rels.Len() == 0 {
		return nil
	}
	data, err := rels.marshal()
	if err != nil {
		return err
	}
	return writeZipEntry(zw, RelsName(rels.Source), data)
}

// reachable walks the relationship graph from the package root.
func (p *Package) reachable() map[string]bool {
	seen := make(map[string]bool)
	queue := []*Relationships{p.rels}
	for len(queue) > 0 {
		rels := queue[0]
		queue = queue[1:]
		for _, rel := range rels.items {
			if rel.External {
				continue
			}
			name := rels.TargetName(rel)
			part, ok := p.parts[name]
			if !ok || seen[name] {
				continue
			}
			seen[name] = true
			if part.rels != nil {
				queue = append(queue, part.rels)
			}
		}
	}
	return seen
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func writeZipEntry(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.CreateHeader(&zip.FileHeader{
		Name:   zipName(name),
		Method: zip.Deflate,
	})
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func shortRelType(relType string) string {
	if i := strings.LastIndex(relType, "/"); i >= 0 {
		return relType[i+1:]
	}
	return relType
}
