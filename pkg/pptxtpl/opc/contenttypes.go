package opc

import (
	"fmt"
	"sort"

	"github.com/beevik/etree"
)

// contentTypes mirrors [Content_Types].xml.
type contentTypes struct {
	defaults     map[string]string // extension -> content type
	defaultOrder []string
	overrides    map[string]string // part name -> content type
}

func newContentTypes() *contentTypes {
	return &contentTypes{
		defaults:  make(map[string]string),
		overrides: make(map[string]string),
	}
}

func parseContentTypes(data []byte) (*contentTypes, error) {
	ct := newContentTypes()
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parse content types: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return ct, nil
	}
	for _, el := range root.ChildElements() {
		switch el.Tag {
		case "Default":
			ct.setDefault(el.SelectAttrValue("Extension", ""), el.SelectAttrValue("ContentType", ""))
		case "Override":
			ct.overrides[el.SelectAttrValue("PartName", "")] = el.SelectAttrValue("ContentType", "")
		}
	}
	return ct, nil
}

func (ct *contentTypes) setDefault(ext, contentType string) {
	if _, ok := ct.defaults[ext]; !ok {
		ct.defaultOrder = append(ct.defaultOrder, ext)
	}
	ct.defaults[ext] = contentType
}

func (ct *contentTypes) removeDefault(ext string) {
	if _, ok := ct.defaults[ext]; !ok {
		return
	}
	delete(ct.defaults, ext)
	for i, e := range ct.defaultOrder {
		if e == ext {
			ct.defaultOrder = append(ct.defaultOrder[:i], ct.defaultOrder[i+1:]...)
			break
		}
	}
}

// lookup resolves the content type of a part: overrides first, then the
// extension default.
func (ct *contentTypes) lookup(name string) string {
	if v, ok := ct.overrides[name]; ok {
		return v
	}
	return ct.defaults[Ext(name)]
}

// register records contentType for name, as a default when the extension
// already maps to it and as an override otherwise.
func (ct *contentTypes) register(name, contentType string) {
	ext := Ext(name)
	if def, ok := ct.defaults[ext]; ok && def == contentType {
		delete(ct.overrides, name)
		return
	}
	ct.overrides[name] = contentType
}

func (ct *contentTypes) marshal(parts map[string]bool) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	root := doc.CreateElement("Types")
	root.CreateAttr("xmlns", nsContentTypes)
	for _, ext := range ct.defaultOrder {
		el := root.CreateElement("Default")
		el.CreateAttr("Extension", ext)
		el.CreateAttr("ContentType", ct.defaults[ext])
	}

	names := make([]string, 0, len(ct.overrides))
	for name := range ct.overrides {
		if parts[name] {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		el := root.CreateElement("Override")
		el.CreateAttr("PartName", name)
		el.CreateAttr("ContentType", ct.overrides[name])
	}
	return doc.WriteToBytes()
}
