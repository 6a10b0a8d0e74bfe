package opc

import (
	"path"
	"strings"
)

// ResolveTarget resolves a relationship target relative to the part that
// owns the relationship. Part names always start with "/".
func ResolveTarget(source, target string) string {
	if strings.HasPrefix(target, "/") {
		return path.Clean(target)
	}
	base := "/"
	if source != "/" {
		base = path.Dir(source)
	}
	return path.Join(base, target)
}

// RelativeTarget returns the target string that reaches part target from
// part source, e.g. "../charts/chart2.xml".
func RelativeTarget(source, target string) string {
	baseDir := "/"
	if source != "/" {
		baseDir = path.Dir(source)
	}
	from := splitSegments(baseDir)
	to := splitSegments(path.Dir(target))

	common := 0
	for common < len(from) && common < len(to) && from[common] == to[common] {
		common++
	}

	var parts []string
	for i := common; i < len(from); i++ {
		parts = append(parts, "..")
	}
	parts = append(parts, to[common:]...)
	parts = append(parts, path.Base(target))
	return strings.Join(parts, "/")
}

// RelsName returns the name of the relationships part belonging to part.
func RelsName(part string) string {
	if part == "/" || part == "" {
		return packageRelsName
	}
	return path.Join(path.Dir(part), "_rels", path.Base(part)+".rels")
}

// SourceOfRels is the inverse of RelsName. It reports false when name is
// not a relationships part.
func SourceOfRels(name string) (string, bool) {
	if !strings.HasSuffix(name, ".rels") {
		return "", false
	}
	if name == packageRelsName {
		return "/", true
	}
	dir := path.Dir(name)
	if path.Base(dir) != "_rels" {
		return "", false
	}
	return path.Join(path.Dir(dir), strings.TrimSuffix(path.Base(name), ".rels")), true
}

// Ext returns the lower-case extension of a part name without the dot.
func Ext(name string) string {
	return strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
}

func splitSegments(dir string) []string {
	var out []string
	for _, s := range strings.Split(dir, "/") {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func zipName(part string) string {
	return strings.TrimPrefix(part, "/")
}

func partName(zipEntry string) string {
	return "/" + strings.TrimPrefix(zipEntry, "/")
}
