package pptxtpl

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"github.com/zzhzhao/pptxtpl/pkg/pptxtpl/drawing"
	"github.com/zzhzhao/pptxtpl/pkg/pptxtpl/label"
	"github.com/zzhzhao/pptxtpl/pkg/pptxtpl/opc"
)

// Template is a presentation opened for filling. It is not safe for
// concurrent use.
type Template struct {
	name   string
	pkg    *opc.Package
	pres   *opc.Part
	format *label.Format
	log    *zap.Logger
}

// slide is a resolved slide: its part and its shape tree.
type slide struct {
	index int
	entry *etree.Element // p:sldId
	part  *opc.Part
	doc   *etree.Document
	tree  *etree.Element // p:spTree
}

// Open reads the presentation stored at path.
func Open(path string, opts Options) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}
	t, err := OpenReader(bytes.NewReader(data), int64(len(data)), opts)
	if err != nil {
		return nil, err
	}
	t.name = filepath.Base(path)
	return t, nil
}

// OpenReader reads a presentation from r.
func OpenReader(r io.ReaderAt, size int64, opts Options) (*Template, error) {
	format, err := opts.format()
	if err != nil {
		return nil, err
	}
	if err := detectCompoundFile(r, size); err != nil {
		return nil, err
	}

	pkg, err := opc.Read(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	pres, err := pkg.MainDocument()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if !strings.Contains(pres.ContentType, "presentationml") {
		return nil, fmt.Errorf("%w: main part is %s", ErrInvalidFormat, pres.ContentType)
	}
	doc, err := pres.XML()
	if err != nil {
		return nil, err
	}
	if !drawing.Is(doc.Root(), drawing.NsP, "presentation") {
		return nil, fmt.Errorf("%w: %s is not a presentation", ErrMalformedPart, pres.Name)
	}

	return &Template{
		pkg:    pkg,
		pres:   pres,
		format: format,
		log:    opts.logger(),
	}, nil
}

// Name returns the file name the template was opened from, if any.
func (t *Template) Name() string { return t.name }

// Format returns the label format in use.
func (t *Template) Format() *label.Format { return t.format }

// Save writes the presentation to path, replacing the file atomically.
// Parts no longer reachable (deleted slides, pruned charts) are dropped.
func (t *Template) Save(path string) error {
	if err := t.pkg.Save(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	t.log.Debug("saved presentation", zap.String("path", path), zap.Int("slides", t.SlideCount()))
	return nil
}

// WriteTo writes the presentation as a pptx archive.
func (t *Template) WriteTo(w io.Writer) (int64, error) {
	return t.pkg.WriteTo(w)
}

// SlideCount returns the number of slides.
func (t *Template) SlideCount() int {
	return len(t.slideEntries())
}

func (t *Template) presRoot() *etree.Element {
	doc, _ := t.pres.XML()
	return doc.Root()
}

// slideList returns p:sldIdLst, creating it when create is set.
func (t *Template) slideList(create bool) *etree.Element {
	root := t.presRoot()
	if lst := drawing.Child(root, drawing.NsP, "sldIdLst"); lst != nil || !create {
		return lst
	}
	return drawing.NewChild(root, drawing.NsP, "sldIdLst",
		"sldSz", "notesSz", "smartTags", "embeddedFontLst", "custShowLst",
		"photoAlbum", "custDataLst", "kinsoku", "defaultTextStyle", "modifyVerifier", "extLst")
}

func (t *Template) slideEntries() []*etree.Element {
	return drawing.Children(t.slideList(false), drawing.NsP, "sldId")
}

func (t *Template) slide(i int) (*slide, error) {
	entries := t.slideEntries()
	if i < 0 || i >= len(entries) {
		return nil, fmt.Errorf("%w: %d (deck has %d slides)", ErrSlideIndex, i, len(entries))
	}
	part, _, err := t.pkg.Related(t.pres, drawing.RelAttr(entries[i], "id"))
	if err != nil {
		return nil, err
	}
	s, err := loadSlide(part)
	if err != nil {
		return nil, err
	}
	s.index = i
	s.entry = entries[i]
	return s, nil
}

func loadSlide(part *opc.Part) (*slide, error) {
	doc, err := part.XML()
	if err != nil {
		return nil, err
	}
	tree := drawing.Path(doc.Root(), drawing.NsP, "cSld", "spTree")
	if tree == nil {
		return nil, fmt.Errorf("%w: %s has no shape tree", ErrMalformedPart, part.Name)
	}
	return &slide{part: part, doc: doc, tree: tree}, nil
}

// shapes returns the top-level shapes of the slide.
func (s *slide) shapes() []drawing.Shape {
	return drawing.Shapes(s.tree)
}

// slides resolves every slide in order.
func (t *Template) slides() ([]*slide, error) {
	n := t.SlideCount()
	out := make([]*slide, 0, n)
	for i := 0; i < n; i++ {
		s, err := t.slide(i)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
