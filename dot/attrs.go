package dot

// Recognized Graphviz attribute vocabularies. The parser never rejects an
// unknown attribute name; these sets exist for consumers and for the lint
// rules, so forward-compatible DOT files keep working.

var graphAttrNames = nameSet(
	"bb", "bgcolor", "center", "charset", "clusterrank", "colorscheme",
	"comment", "compound", "concentrate", "damping", "defaultdist", "dim",
	"diredgeconstraints", "dpi", "epsilon", "esep", "fontcolor", "fontname",
	"fontnames", "fontpath", "fontsize", "k", "label", "labeljust",
	"labelloc", "landscape", "layers", "layersep", "levelsgap", "margin",
	"maxiter", "mclimit", "mindist", "mode", "model", "mosek", "nodesep",
	"nojustify", "normalize", "nslimit", "nslimit1", "ordering",
	"orientation", "outputorder", "overlap", "pack", "packmode", "pad",
	"page", "pagedir", "quantum", "rank", "rankdir", "ranksep", "ratio",
	"remincross", "resolution", "root", "rotate", "samplepoints",
	"searchsize", "sep", "showboxes", "size", "splines", "start",
	"stylesheet", "target", "truecolor", "url", "viewport", "voro_margin",
)

var nodeAttrNames = nameSet(
	"color", "colorscheme", "comment", "distortion", "fillcolor",
	"fixedsize", "fontcolor", "fontname", "fontsize", "group", "height",
	"image", "imagescale", "label", "layer", "margin", "nojustify",
	"orientation", "peripheries", "pin", "pos", "rects", "regular", "root",
	"samplepoints", "shape", "shapefile", "showboxes", "sides", "skew",
	"style", "target", "tooltip", "url", "vertices", "width", "z",
)

var edgeAttrNames = nameSet(
	"arrowhead", "arrowsize", "arrowtail", "color", "colorscheme",
	"comment", "constraint", "decorate", "dir", "edgehref", "edgetarget",
	"edgetooltip", "edgeurl", "fontcolor", "fontname", "fontsize",
	"headclip", "headhref", "headlabel", "headport", "headtarget",
	"headtooltip", "headurl", "href", "label", "labelangle",
	"labeldistance", "labelfloat", "labelfontcolor", "labelfontname",
	"labelfontsize", "layer", "len", "lhead", "ltail", "minlen",
	"nojustify", "pos", "samehead", "sametail", "showboxes", "style",
	"tailclip", "tailhref", "taillabel", "tailport", "tailtarget",
	"tailtooltip", "tailurl", "target", "tooltip", "url", "weight",
)

func nameSet(names ...string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}

// KnownGraphAttr reports whether name is a recognized graph attribute.
func KnownGraphAttr(name string) bool { return graphAttrNames[name] }

// KnownNodeAttr reports whether name is a recognized node attribute.
func KnownNodeAttr(name string) bool { return nodeAttrNames[name] }

// KnownEdgeAttr reports whether name is a recognized edge attribute.
func KnownEdgeAttr(name string) bool { return edgeAttrNames[name] }
