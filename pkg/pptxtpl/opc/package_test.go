package opc

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testTypes = `<?xml version="1.0" encoding="UTF-8"?>` +
		`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
		`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
		`<Default Extension="xml" ContentType="application/xml"/>` +
		`<Override PartName="/doc/main.xml" ContentType="application/vnd.test.main+xml"/>` +
		`</Types>`
	testRootRels = `<?xml version="1.0" encoding="UTF-8"?>` +
		`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		`<Relationship Id="rId1" Type="` + RelTypeOfficeDocument + `" Target="doc/main.xml"/>` +
		`</Relationships>`
	testMainRels = `<?xml version="1.0" encoding="UTF-8"?>` +
		`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		`<Relationship Id="rId1" Type="` + RelTypeImage + `" Target="media/a.png"/>` +
		`<Relationship Id="rId3" Type="` + RelTypeHyperlink + `" Target="https://example.com" TargetMode="External"/>` +
		`</Relationships>`
)

func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func testPackage(t *testing.T) *Package {
	t.Helper()
	data := buildZip(t, map[string]string{
		"[Content_Types].xml":     testTypes,
		"_rels/.rels":             testRootRels,
		"doc/main.xml":            `<main><item/></main>`,
		"doc/_rels/main.xml.rels": testMainRels,
		"doc/media/a.png":         "png",
		"doc/orphan.xml":          `<orphan/>`,
	})
	pkg, err := Read(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	return pkg
}

func TestRead(t *testing.T) {
	pkg := testPackage(t)

	main, err := pkg.MainDocument()
	require.NoError(t, err)
	assert.Equal(t, "/doc/main.xml", main.Name)
	assert.Equal(t, "application/vnd.test.main+xml", main.ContentType)
	assert.True(t, main.IsXML())

	img, rel, err := pkg.Related(main, "rId1")
	require.NoError(t, err)
	assert.Equal(t, "/doc/media/a.png", img.Name)
	assert.Equal(t, RelTypeImage, rel.Type)
	assert.Equal(t, "", img.ContentType, "no default for png")

	_, _, err = pkg.Related(main, "rId3")
	assert.Error(t, err, "external targets are not parts")
	_, _, err = pkg.Related(main, "rId9")
	assert.True(t, errors.Is(err, ErrPartNotFound))

	link := main.Rels().Get("rId3")
	require.NotNil(t, link)
	assert.True(t, link.External)
	assert.Equal(t, "", main.Rels().TargetName(link))
}

func TestReadNotAPackage(t *testing.T) {
	_, err := Read(bytes.NewReader([]byte("plain")), 5)
	assert.ErrorIs(t, err, ErrNotPackage)

	data := buildZip(t, map[string]string{"a.txt": "x"})
	_, err = Read(bytes.NewReader(data), int64(len(data)))
	assert.ErrorIs(t, err, ErrNotPackage)
}

func TestMalformedXML(t *testing.T) {
	pkg := testPackage(t)
	p, err := pkg.AddPart("/doc/bad.xml", "application/xml", []byte("<<not xml>>"))
	require.NoError(t, err)
	_, err = p.XML()
	assert.ErrorIs(t, err, ErrMalformedPart)
}

func TestRelationships(t *testing.T) {
	pkg := testPackage(t)
	main, err := pkg.MainDocument()
	require.NoError(t, err)
	rels := main.Rels()

	assert.Equal(t, "rId2", rels.NextID())
	rel := rels.AddPart(RelTypeChart, "/doc/charts/chart1.xml")
	assert.Equal(t, "rId2", rel.ID)
	assert.Equal(t, "charts/chart1.xml", rel.Target)
	assert.Equal(t, "rId4", rels.NextID())

	_, err = rels.Put(Relationship{ID: "rId1", Type: RelTypeImage, Target: "x.png"})
	assert.Error(t, err, "id taken")
	_, err = rels.Put(Relationship{ID: "rId7", Type: RelTypeImage, Target: "x.png"})
	require.NoError(t, err)

	assert.Len(t, rels.OfType(RelTypeImage), 2)
	assert.Equal(t, "rId1", rels.FirstOfType(RelTypeImage).ID)
	assert.True(t, rels.Remove("rId1"))
	assert.False(t, rels.Remove("rId1"))
	assert.Equal(t, 3, rels.Len())
}

func TestWriteToDropsUnreachable(t *testing.T) {
	pkg := testPackage(t)
	main, err := pkg.MainDocument()
	require.NoError(t, err)

	doc := etree.NewDocument()
	doc.CreateElement("chart")
	name := pkg.NextPartName("/doc/charts/chart%d.xml")
	assert.Equal(t, "/doc/charts/chart1.xml", name)
	_, err = pkg.AddXMLPart(name, ContentTypeChart, doc)
	require.NoError(t, err)
	main.Rels().AddPart(RelTypeChart, name)
	assert.Equal(t, "/doc/charts/chart2.xml", pkg.NextPartName("/doc/charts/chart%d.xml"))

	main.Rels().Remove("rId1")

	var buf bytes.Buffer
	_, err = pkg.WriteTo(&buf)
	require.NoError(t, err)

	back, err := Read(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	assert.NotNil(t, back.Part("/doc/main.xml"))
	assert.NotNil(t, back.Part("/doc/charts/chart1.xml"))
	assert.Equal(t, ContentTypeChart, back.Part("/doc/charts/chart1.xml").ContentType)
	assert.Nil(t, back.Part("/doc/media/a.png"), "unreferenced image dropped")
	assert.Nil(t, back.Part("/doc/orphan.xml"), "orphan dropped")

	backMain, err := back.MainDocument()
	require.NoError(t, err)
	assert.NotNil(t, backMain.Rels().Get("rId3"), "external link kept")
}

func TestDefaults(t *testing.T) {
	pkg := testPackage(t)
	assert.True(t, pkg.EnsureDefault("xlsx", ContentTypeXlsx))
	assert.False(t, pkg.EnsureDefault("xlsx", ContentTypeXlsx))

	p, err := pkg.AddPart("/doc/embeddings/book1.xlsx", ContentTypeXlsx, []byte("zip"))
	require.NoError(t, err)
	assert.Equal(t, ContentTypeXlsx, pkg.types.lookup(p.Name))

	pkg.RemovePart(p.Name)
	assert.Nil(t, pkg.Part(p.Name))
	pkg.RemoveDefault("xlsx")
	assert.True(t, pkg.EnsureDefault("xlsx", ContentTypeXlsx))
}

func TestSave(t *testing.T) {
	pkg := testPackage(t)
	path := filepath.Join(t.TempDir(), "out.zip")
	require.NoError(t, pkg.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	back, err := Read(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	main, err := back.MainDocument()
	require.NoError(t, err)
	doc, err := main.XML()
	require.NoError(t, err)
	assert.Equal(t, "main", doc.Root().Tag)
}
