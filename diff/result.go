package diff

// Kind classifies a diff entry.
type Kind uint8

const (
	// Added means the entry exists only in the modified package.
	Added Kind = iota
	// Removed means the entry exists only in the baseline package.
	Removed
	// Changed means the entry exists in both packages with differing content.
	Changed
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case Added:
		return "added"
	case Removed:
		return "removed"
	case Changed:
		return "changed"
	default:
		return "unknown"
	}
}

// FieldDiff is one field-level difference with display-ready values. Name is
// the field identifier ("subVersion", "checksum", ...); it is empty for bare
// value lines such as platform strings and layer membership entries. Before
// is empty for Added entries and After for Removed ones.
type FieldDiff struct {
	Kind   Kind
	Name   string
	Before string
	After  string
}

// Section is the diff of one metadata group, named after its chunk tag
// (PVER, PFLG, PCNT, PCRT, PMOD, PLAT, AINF, LINF). Sections with no
// differences are not emitted.
type Section struct {
	Name    string
	Entries []FieldDiff
}

// EntityDiff is the diff of one asset or layer. Before and After are
// display labels for each side (the asset's debug name, or the layer's
// "LHDR (type)" form); the side an entity is absent from has an empty label.
// Fields holds the field-level sub-diff; for summary-mode asset diffs it is
// nil, labels only.
type EntityDiff struct {
	Kind   Kind
	Before string
	After  string
	Fields []FieldDiff
}

// EntityList groups the entity diffs of one kind of entity.
type EntityList struct {
	Added   []EntityDiff
	Removed []EntityDiff
	Changed []EntityDiff
}

// Len returns the total number of entity diffs in the list.
func (l EntityList) Len() int {
	return len(l.Added) + len(l.Removed) + len(l.Changed)
}

// Result is the structured outcome of comparing two packages.
//
// Sections, Assets and Layers are ordered deterministically: metadata
// sections in chunk declaration order, assets ascending by ID, layer type
// groups ascending by type with group members in stream order. The three
// counters aggregate in that same order, so identical inputs always produce
// identical counts.
type Result struct {
	Sections []Section
	Assets   EntityList
	Layers   EntityList

	Additions     int
	Deletions     int
	Modifications int
}

// Empty reports whether the two packages were identical under the options
// the diff ran with.
func (r *Result) Empty() bool {
	return len(r.Sections) == 0 && r.Assets.Len() == 0 && r.Layers.Len() == 0 &&
		r.Additions == 0 && r.Deletions == 0 && r.Modifications == 0
}
