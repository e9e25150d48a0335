package convert

import "strings"

// Label is the (family, class) key read from a repeat name.
type Label struct {
	Family string
	Class  string
	// rule names the grammar alternative that matched.
	rule string
}

type labelRule struct {
	name string
	sep  string
}

// labelGrammar lists the composite label forms in priority order. The first
// alternative whose separator occurs in the name decides the split, and the
// text on its left must be non-empty:
//
//	family#class/subclass   (Dfam / RepeatModeler libraries)
//	family:class
//	family/class
//
// A name with none of the separators is a bare family and takes its class
// from the class/family column.
var labelGrammar = []labelRule{
	{name: "hash", sep: "#"},
	{name: "colon", sep: ":"},
	{name: "slash", sep: "/"},
}

// ParseLabel splits a repeat name into family and class. classColumn is the
// scanner's class/family column, used when the name carries no class of its
// own. ok is false when the name is blank or the deciding separator has
// nothing on its left.
func ParseLabel(name, classColumn string) (Label, bool) {
	name = strings.TrimSpace(name)
	classColumn = strings.TrimSpace(classColumn)

	for _, rule := range labelGrammar {
		left, right, found := strings.Cut(name, rule.sep)
		if !found {
			continue
		}
		family := strings.TrimSpace(left)
		if family == "" {
			return Label{}, false
		}
		class := strings.TrimSpace(right)
		if class == "" {
			class = classColumn
		}
		return Label{Family: family, Class: class, rule: rule.name}, true
	}

	if name == "" {
		return Label{}, false
	}
	return Label{Family: name, Class: classColumn, rule: "bare"}, true
}
