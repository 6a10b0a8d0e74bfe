package opc

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// Part is one named entry of the package. XML parts are parsed lazily and
// edited in place; the tree is serialized again only when the package is
// written.
type Part struct {
	Name        string
	ContentType string

	blob []byte
	doc  *etree.Document
	rels *Relationships
}

// IsXML reports whether the part holds XML content.
func (p *Part) IsXML() bool {
	ct := p.ContentType
	return strings.HasSuffix(ct, "+xml") || strings.HasSuffix(ct, "/xml") || Ext(p.Name) == "xml"
}

// XML returns the parsed tree of the part, parsing it on first use.
func (p *Part) XML() (*etree.Document, error) {
	if p.doc != nil {
		return p.doc, nil
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(p.blob); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedPart, p.Name, err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("%w: %s has no root element", ErrMalformedPart, p.Name)
	}
	p.doc = doc
	p.blob = nil
	return doc, nil
}

// SetXML replaces the content of the part with doc.
func (p *Part) SetXML(doc *etree.Document) {
	p.doc = doc
	p.blob = nil
}

// Blob returns the serialized content of the part.
func (p *Part) Blob() ([]byte, error) {
	if p.doc != nil {
		return p.doc.WriteToBytes()
	}
	return p.blob, nil
}

// SetBlob replaces the content of the part with raw bytes.
func (p *Part) SetBlob(b []byte) {
	p.blob = b
	p.doc = nil
}

// Rels returns the relationships owned by the part. The set is created on
// first use.
func (p *Part) Rels() *Relationships {
	if p.rels == nil {
		p.rels = newRelationships(p.Name)
	}
	return p.rels
}

// CopyXML returns a deep copy of the part tree as a new document.
func (p *Part) CopyXML() (*etree.Document, error) {
	doc, err := p.XML()
	if err != nil {
		return nil, err
	}
	return doc.Copy(), nil
}
