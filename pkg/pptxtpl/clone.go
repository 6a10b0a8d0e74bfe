package pptxtpl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/zzhzhao/pptxtpl/pkg/pptxtpl/chart"
	"github.com/zzhzhao/pptxtpl/pkg/pptxtpl/drawing"
	"github.com/zzhzhao/pptxtpl/pkg/pptxtpl/opc"
)

// CloneStage is the progress of a slide clone.
type CloneStage int

const (
	StageRequested CloneStage = iota
	StageLayoutCloned
	StageShapesCopied
	StageRelinked
	StageRepositioned
	StageDone
)

func (s CloneStage) String() string {
	switch s {
	case StageRequested:
		return "requested"
	case StageLayoutCloned:
		return "layout-cloned"
	case StageShapesCopied:
		return "shapes-copied"
	case StageRelinked:
		return "relationships-relinked"
	case StageRepositioned:
		return "repositioned"
	case StageDone:
		return "done"
	default:
		return "stage(" + strconv.Itoa(int(s)) + ")"
	}
}

// minSlideID is the smallest id allowed in p:sldIdLst.
const minSlideID = 256

// CloneSlide copies slide source, with its charts and notes, and places
// the copy at index target (0..SlideCount()). Pictures, media and
// hyperlinks are shared with the source; charts and their workbooks are
// duplicated so the copy can be rebound on its own.
//
// On failure every part, relationship and slide entry created so far is
// removed again and a *CloneError is returned.
func (t *Template) CloneSlide(source, target int) error {
	n := t.SlideCount()
	if source < 0 || source >= n {
		return &CloneError{Source: source, Target: target, Stage: StageRequested,
			Err: fmt.Errorf("%w: %d (deck has %d slides)", ErrSlideIndex, source, n)}
	}
	if target < 0 || target > n {
		return &CloneError{Source: source, Target: target, Stage: StageRequested,
			Err: fmt.Errorf("%w: target %d (deck has %d slides)", ErrSlideIndex, target, n)}
	}

	tx := newCloneTx(t)
	stage, err := tx.run(source, target)
	if err != nil {
		tx.rollback()
		t.log.Warn("clone rolled back",
			zap.Int("source", source),
			zap.Int("target", target),
			zap.Stringer("stage", stage),
			zap.Error(err))
		return &CloneError{Source: source, Target: target, Stage: stage, Err: err}
	}
	t.log.Debug("cloned slide",
		zap.Int("source", source),
		zap.Int("target", target),
		zap.String("part", tx.slidePart.Name))
	return nil
}

// cloneTx allocates the identifiers of one clone and journals every change
// it makes to the package.
type cloneTx struct {
	t        *Template
	undo     []func()
	styleIDs map[string]int // content type -> last id handed out

	slidePart *opc.Part
	slideDoc  *etree.Document
	entry     *etree.Element
}

func newCloneTx(t *Template) *cloneTx {
	return &cloneTx{t: t, styleIDs: make(map[string]int)}
}

func (tx *cloneTx) record(undo func()) {
	tx.undo = append(tx.undo, undo)
}

func (tx *cloneTx) rollback() {
	for i := len(tx.undo) - 1; i >= 0; i-- {
		tx.undo[i]()
	}
	tx.undo = nil
}

func (tx *cloneTx) run(source, target int) (CloneStage, error) {
	src, err := tx.t.slide(source)
	if err != nil {
		return StageRequested, err
	}

	layoutRelID, err := tx.cloneLayout(src)
	if err != nil {
		return StageRequested, err
	}
	tx.stage(StageLayoutCloned)

	tree := drawing.Path(tx.slideDoc.Root(), drawing.NsP, "cSld", "spTree")
	for _, el := range src.tree.ChildElements() {
		if !drawing.IsShapeElement(el) {
			continue
		}
		cp := el.Copy()
		refreshCreationIDs(cp)
		drawing.InsertBefore(tree, cp, "extLst")
	}
	tx.stage(StageShapesCopied)

	if err := tx.relink(src, layoutRelID); err != nil {
		return StageShapesCopied, err
	}
	tx.stage(StageRelinked)

	tx.t.moveEntry(tx.entry, target)
	if el := tx.t.addToSection(target); el != nil {
		tx.record(func() { drawing.Remove(el) })
	}
	tx.stage(StageRepositioned)
	return StageDone, nil
}

func (tx *cloneTx) stage(s CloneStage) {
	tx.t.log.Debug("clone stage", zap.String("part", tx.slidePart.Name), zap.Stringer("stage", s))
}

// cloneLayout creates the new slide part from the source root with an
// empty shape tree, relates it to the source layout and appends it to the
// slide list. It returns the id of the layout relationship.
func (tx *cloneTx) cloneLayout(src *slide) (string, error) {
	pkg := tx.t.pkg
	layout := src.part.Rels().FirstOfType(opc.RelTypeSlideLayout)
	if layout == nil {
		return "", fmt.Errorf("%w: %s has no slide layout", ErrMalformedPart, src.part.Name)
	}

	doc := src.doc.Copy()
	tree := drawing.Path(doc.Root(), drawing.NsP, "cSld", "spTree")
	for _, el := range tree.ChildElements() {
		if drawing.IsShapeElement(el) {
			tree.RemoveChild(el)
		}
	}

	name := pkg.NextPartName(opc.SlidePartTemplate)
	part, err := pkg.AddXMLPart(name, opc.ContentTypeSlide, doc)
	if err != nil {
		return "", err
	}
	tx.record(func() { pkg.RemovePart(name) })
	tx.slidePart = part
	tx.slideDoc = doc

	layoutRel := part.Rels().AddPart(opc.RelTypeSlideLayout, src.part.Rels().TargetName(layout))

	presRels := tx.t.pres.Rels()
	rel := presRels.AddPart(opc.RelTypeSlide, name)
	tx.record(func() { presRels.Remove(rel.ID) })

	lst := tx.t.slideList(true)
	entry := drawing.NewChild(lst, drawing.NsP, "sldId", "extLst")
	entry.CreateAttr("id", strconv.Itoa(tx.t.nextSlideID()))
	entry.CreateAttr(drawing.PrefixFor(lst, drawing.NsR)+":id", rel.ID)
	tx.record(func() { lst.RemoveChild(entry) })
	tx.entry = entry

	return layoutRel.ID, nil
}

// relink recreates the source relationships on the new slide and points
// the copied XML at them.
func (tx *cloneTx) relink(src *slide, layoutRelID string) error {
	pkg := tx.t.pkg
	rels := tx.slidePart.Rels()
	ids := make(map[string]string)

	for _, rel := range src.part.Rels().All() {
		if rel.External {
			ids[rel.ID] = rels.Add(rel.Type, rel.Target, true).ID
			continue
		}
		targetName := src.part.Rels().TargetName(rel)
		switch rel.Type {
		case opc.RelTypeSlideLayout:
			ids[rel.ID] = layoutRelID
		case opc.RelTypeChart:
			srcChart := pkg.Part(targetName)
			if srcChart == nil {
				return fmt.Errorf("%w: chart %s (%s of %s)", ErrMalformedPart, targetName, rel.ID, src.part.Name)
			}
			name, err := tx.copyChart(srcChart)
			if err != nil {
				return err
			}
			ids[rel.ID] = rels.AddPart(rel.Type, name).ID
		case opc.RelTypeNotesSlide:
			srcNotes := pkg.Part(targetName)
			if srcNotes == nil {
				return fmt.Errorf("%w: notes %s (%s of %s)", ErrMalformedPart, targetName, rel.ID, src.part.Name)
			}
			name, err := tx.copyNotes(srcNotes)
			if err != nil {
				return err
			}
			ids[rel.ID] = rels.AddPart(rel.Type, name).ID
		default:
			if pkg.Part(targetName) == nil {
				tx.t.log.Warn("relationship to missing part skipped",
					zap.String("slide", src.part.Name), zap.String("rel", rel.ID), zap.String("target", targetName))
				continue
			}
			ids[rel.ID] = rels.AddPart(rel.Type, targetName).ID
		}
	}

	root := tx.slideDoc.Root()
	for _, ref := range drawing.Descendants(root, drawing.NsC, "chart") {
		if _, ok := ids[drawing.RelAttr(ref, "id")]; !ok {
			return fmt.Errorf("%w: chart frame refers to unknown relationship %q", ErrMalformedPart, drawing.RelAttr(ref, "id"))
		}
	}
	for _, a := range drawing.RelAttrs(root) {
		if id, ok := ids[a.Value]; ok {
			a.Value = id
		}
	}
	return nil
}

// copyChart duplicates a chart part with its workbook, style, colours and
// user shapes. Relationship ids inside the chart are kept.
func (tx *cloneTx) copyChart(src *opc.Part) (string, error) {
	pkg := tx.t.pkg
	doc, err := src.CopyXML()
	if err != nil {
		return "", err
	}
	if _, err := chart.New(doc); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrMalformedPart, src.Name, err)
	}

	name := pkg.NextPartName(opc.ChartPartTemplate)
	part, err := pkg.AddXMLPart(name, src.ContentType, doc)
	if err != nil {
		return "", err
	}
	tx.record(func() { pkg.RemovePart(name) })

	for _, rel := range src.Rels().All() {
		if rel.External {
			if _, err := part.Rels().Put(*rel); err != nil {
				return "", err
			}
			continue
		}
		targetName := src.Rels().TargetName(rel)
		sub := pkg.Part(targetName)
		if sub == nil {
			return "", fmt.Errorf("%w: %s (%s of %s)", ErrMalformedPart, targetName, rel.ID, src.Name)
		}

		var newName string
		switch rel.Type {
		case opc.RelTypePackage, opc.RelTypeOleObject:
			// embedded workbooks, .xlsx or legacy .xls, belong to one chart
			newName, err = tx.copyBlob(sub, opc.EmbeddedXlsxTemplate)
		case opc.RelTypeChartStyle:
			newName, err = tx.copyStyle(sub, opc.ChartStylePartTemplate)
		case opc.RelTypeChartColorStyle:
			newName, err = tx.copyStyle(sub, opc.ChartColorPartTemplate)
		case opc.RelTypeChartUserShapes:
			newName, err = tx.copyXMLPart(sub, opc.ChartShapesTemplate)
		default:
			newName = targetName
		}
		if err != nil {
			return "", err
		}
		if _, err := part.Rels().Put(opc.Relationship{
			ID:     rel.ID,
			Type:   rel.Type,
			Target: opc.RelativeTarget(name, newName),
		}); err != nil {
			return "", err
		}
	}
	return name, nil
}

// copyNotes duplicates a notes slide, relating the copy to the notes
// master and to the new slide.
func (tx *cloneTx) copyNotes(src *opc.Part) (string, error) {
	pkg := tx.t.pkg
	if src.Rels().FirstOfType(opc.RelTypeNotesMaster) == nil {
		return "", fmt.Errorf("%w: %s has no notes master", ErrMalformedPart, src.Name)
	}
	doc, err := src.CopyXML()
	if err != nil {
		return "", err
	}
	name := pkg.NextPartName(opc.NotesSlidePartTemplate)
	part, err := pkg.AddXMLPart(name, src.ContentType, doc)
	if err != nil {
		return "", err
	}
	tx.record(func() { pkg.RemovePart(name) })

	for _, rel := range src.Rels().All() {
		out := *rel
		switch {
		case rel.External:
		case rel.Type == opc.RelTypeSlide:
			out.Target = opc.RelativeTarget(name, tx.slidePart.Name)
		default:
			out.Target = opc.RelativeTarget(name, src.Rels().TargetName(rel))
		}
		if _, err := part.Rels().Put(out); err != nil {
			return "", err
		}
	}
	return name, nil
}

func (tx *cloneTx) copyBlob(src *opc.Part, tmpl string) (string, error) {
	pkg := tx.t.pkg
	blob, err := src.Blob()
	if err != nil {
		return "", err
	}
	ext := opc.Ext(src.Name)
	if ext != "" && pkg.EnsureDefault(ext, src.ContentType) {
		tx.record(func() { pkg.RemoveDefault(ext) })
	}
	if ext != "" && ext != opc.Ext(tmpl) {
		tmpl = strings.TrimSuffix(tmpl, "."+opc.Ext(tmpl)) + "." + ext
	}
	name := pkg.NextPartName(tmpl)
	cp := make([]byte, len(blob))
	copy(cp, blob)
	if _, err := pkg.AddPart(name, src.ContentType, cp); err != nil {
		return "", err
	}
	tx.record(func() { pkg.RemovePart(name) })
	return name, nil
}

func (tx *cloneTx) copyXMLPart(src *opc.Part, tmpl string) (string, error) {
	pkg := tx.t.pkg
	doc, err := src.CopyXML()
	if err != nil {
		return "", err
	}
	name := pkg.NextPartName(tmpl)
	part, err := pkg.AddXMLPart(name, src.ContentType, doc)
	if err != nil {
		return "", err
	}
	tx.record(func() { pkg.RemovePart(name) })

	for _, rel := range src.Rels().All() {
		out := *rel
		if !rel.External {
			out.Target = opc.RelativeTarget(name, src.Rels().TargetName(rel))
		}
		if _, err := part.Rels().Put(out); err != nil {
			return "", err
		}
	}
	return name, nil
}

// copyStyle duplicates a chart style or colour part under a fresh numeric
// id.
func (tx *cloneTx) copyStyle(src *opc.Part, tmpl string) (string, error) {
	name, err := tx.copyXMLPart(src, tmpl)
	if err != nil {
		return "", err
	}
	doc, err := tx.t.pkg.Part(name).XML()
	if err != nil {
		return "", err
	}
	if root := doc.Root(); root.SelectAttr("id") != nil {
		root.CreateAttr("id", strconv.Itoa(tx.nextStyleID(src.ContentType)))
	}
	return name, nil
}

// nextStyleID returns an id above every id used by parts of contentType,
// including ids handed out earlier in this clone.
func (tx *cloneTx) nextStyleID(contentType string) int {
	last, ok := tx.styleIDs[contentType]
	if !ok {
		for _, p := range tx.t.pkg.Parts() {
			if p.ContentType != contentType {
				continue
			}
			doc, err := p.XML()
			if err != nil {
				continue
			}
			if id, err := strconv.Atoi(doc.Root().SelectAttrValue("id", "")); err == nil && id > last {
				last = id
			}
		}
	}
	last++
	tx.styleIDs[contentType] = last
	return last
}

// nextSlideID returns an unused p:sldId id.
func (t *Template) nextSlideID() int {
	next := minSlideID
	for _, e := range t.slideEntries() {
		if id, err := strconv.Atoi(e.SelectAttrValue("id", "")); err == nil && id >= next {
			next = id + 1
		}
	}
	return next
}

// refreshCreationIDs gives every a16:creationId below el a new GUID.
func refreshCreationIDs(el *etree.Element) {
	for _, c := range drawing.Descendants(el, drawing.NsA16, "creationId") {
		c.CreateAttr("id", "{"+strings.ToUpper(uuid.NewString())+"}")
	}
}
