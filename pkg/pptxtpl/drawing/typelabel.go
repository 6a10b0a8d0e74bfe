package drawing

// PresetGeomMap maps OOXML preset geometry names to human-readable type labels.
var PresetGeomMap = map[string]string{
	"flowChartProcess":           "AutoShape-FlowchartProcess",
	"flowChartDecision":          "AutoShape-FlowchartDecision",
	"flowChartTerminator":        "AutoShape-FlowchartTerminator",
	"flowChartData":              "AutoShape-FlowchartData",
	"flowChartDocument":          "AutoShape-FlowchartDocument",
	"flowChartMultidocument":     "AutoShape-FlowchartMultidocument",
	"flowChartPredefinedProcess": "AutoShape-FlowchartPredefinedProcess",
	"flowChartConnector":         "AutoShape-FlowchartConnector",
	"rect":                       "AutoShape-Rectangle",
	"roundRect":                  "AutoShape-RoundedRectangle",
	"ellipse":                    "AutoShape-Oval",
	"diamond":                    "AutoShape-Diamond",
	"triangle":                   "AutoShape-IsoscelesTriangle",
	"rightArrow":                 "AutoShape-RightArrow",
	"leftArrow":                  "AutoShape-LeftArrow",
	"chevron":                    "AutoShape-Chevron",
	"homePlate":                  "AutoShape-Pentagon",
	"straightConnector1":         "Line",
	"bentConnector2":             "AutoShape-Connector",
	"bentConnector3":             "AutoShape-Connector",
	"bentConnector4":             "AutoShape-Connector",
	"curvedConnector2":           "AutoShape-Connector",
	"curvedConnector3":           "AutoShape-Connector",
	"line":                       "Line",
	"textBox":                    "TextBox",
}

// TypeLabel returns a readable type for a shape: the mapped preset
// geometry of auto shapes and connectors, "TextBox", "Placeholder", or the
// variant name for frames, pictures and groups.
func TypeLabel(s Shape) string {
	switch v := s.(type) {
	case *TextShape:
		if v.IsTextBox() {
			return "TextBox"
		}
		if prst := v.PresetGeometry(); prst != "" {
			return presetLabel(prst)
		}
		if v.IsPlaceholder() {
			return "Placeholder"
		}
		return "Unknown"
	case *TableShape:
		return "Table"
	case *ChartShape:
		return "Chart"
	case *PictureShape:
		return "Picture"
	case *GroupShape:
		return "Group"
	case *OtherShape:
		if pg := Child(Child(v.el, NsP, "spPr"), NsA, "prstGeom"); pg != nil {
			return presetLabel(pg.SelectAttrValue("prst", ""))
		}
		return v.el.Tag
	}
	return "Unknown"
}

func presetLabel(prst string) string {
	if label, ok := PresetGeomMap[prst]; ok {
		return label
	}
	return "AutoShape-" + prst
}
