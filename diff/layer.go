package diff

import (
	"fmt"
	"slices"

	"github.com/arloliu/hipdiff/hip"
)

// diffLayers matches layers positionally within per-type groups and appends
// the resulting entity diffs and counts to res.
//
// Grouping: baseline layers seed each type group in stream order; modified
// layers of the same type fill the group positionally, with trailing excess
// on either side classified as added or removed whole layers. Membership
// lines for assets in addedIDs/removedIDs are suppressed; those assets are
// already reported by the asset diff, and their appearance here would only
// restate it.
func diffLayers(res *Result, b, m *hip.Package, addedIDs, removedIDs map[uint32]struct{}) {
	bNames := assetNames(b)
	mNames := assetNames(m)

	groups := make(map[uint32][]pairIdx)
	for i := range b.Layers {
		t := b.Layers[i].Type
		groups[t] = append(groups[t], pairIdx{b: i, m: -1})
	}
	filled := make(map[uint32]int)
	for i := range m.Layers {
		t := m.Layers[i].Type
		k := filled[t]
		if k < len(groups[t]) {
			groups[t][k].m = i
		} else {
			groups[t] = append(groups[t], pairIdx{b: -1, m: i})
		}
		filled[t]++
	}

	types := make([]uint32, 0, len(groups))
	for t := range groups {
		types = append(types, t)
	}
	slices.Sort(types)

	for _, t := range types {
		for _, p := range groups[t] {
			switch {
			case p.b == -1:
				l := m.Layers[p.m]
				e := EntityDiff{Kind: Added, After: layerLabel(l.Type)}
				e.Fields = layerFieldDump(l, Added, addedIDs, mNames)
				res.Layers.Added = append(res.Layers.Added, e)
				res.count(Added, 1)

			case p.m == -1:
				l := b.Layers[p.b]
				e := EntityDiff{Kind: Removed, Before: layerLabel(l.Type)}
				e.Fields = layerFieldDump(l, Removed, removedIDs, bNames)
				res.Layers.Removed = append(res.Layers.Removed, e)
				res.count(Removed, 1)

			default:
				bl := b.Layers[p.b]
				ml := m.Layers[p.m]
				fields, adds, dels := layerPairFields(bl, ml, addedIDs, removedIDs, bNames, mNames)
				if len(fields) == 0 {
					continue
				}
				res.Layers.Changed = append(res.Layers.Changed, EntityDiff{
					Kind:   Changed,
					Before: layerLabel(bl.Type),
					After:  layerLabel(ml.Type),
					Fields: fields,
				})
				res.count(Changed, 1)
				res.Additions += adds
				res.Deletions += dels
			}
		}
	}
}

// layerPairFields builds the sub-diff of one matched layer pair and returns
// it together with the addition/deletion count delta of its non-derivative
// membership lines. The caller commits both only when the sub-diff is
// non-empty.
func layerPairFields(bl, ml hip.LayerEntry, addedIDs, removedIDs map[uint32]struct{}, bNames, mNames map[uint32]string) (fields []FieldDiff, adds, dels int) {
	bSet := idSet(bl.AssetIDs)
	mSet := idSet(ml.AssetIDs)

	union := make([]uint32, 0, len(bSet)+len(mSet))
	for id := range bSet {
		union = append(union, id)
	}
	for id := range mSet {
		if _, ok := bSet[id]; !ok {
			union = append(union, id)
		}
	}
	slices.Sort(union)

	for _, id := range union {
		_, inB := bSet[id]
		_, inM := mSet[id]
		switch {
		case !inB && inM:
			if _, derivative := addedIDs[id]; !derivative {
				fields = append(fields, fieldAdded("", quoted(memberName(mNames, id))))
				adds++
			}
		case inB && !inM:
			if _, derivative := removedIDs[id]; !derivative {
				fields = append(fields, fieldRemoved("", quoted(memberName(bNames, id))))
				dels++
			}
		}
	}

	fields = appendScalar(fields, "misc", bl.Debug.Misc, ml.Debug.Misc, decVal)

	return fields, adds, dels
}

// layerFieldDump renders one side of an added or removed layer: its type,
// its non-derivative members, and its debug scalar.
func layerFieldDump(l hip.LayerEntry, kind Kind, suppress map[uint32]struct{}, names map[uint32]string) []FieldDiff {
	one := func(name, val string) FieldDiff {
		if kind == Added {
			return fieldAdded(name, val)
		}

		return fieldRemoved(name, val)
	}

	fields := []FieldDiff{one("type", decVal(l.Type))}
	for _, id := range l.AssetIDs {
		if _, derivative := suppress[id]; derivative {
			continue
		}
		fields = append(fields, one("", quoted(memberName(names, id))))
	}

	return append(fields, one("misc", decVal(l.Debug.Misc)))
}

func layerLabel(t uint32) string {
	return fmt.Sprintf("LHDR (%d)", t)
}

func assetNames(p *hip.Package) map[uint32]string {
	names := make(map[uint32]string, len(p.Assets))
	for i := range p.Assets {
		names[p.Assets[i].ID] = assetLabel(p.Assets[i])
	}

	return names
}

func memberName(names map[uint32]string, id uint32) string {
	if name, ok := names[id]; ok {
		return name
	}

	return hex8Val(id)
}

func idSet(ids []uint32) map[uint32]struct{} {
	set := make(map[uint32]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}

	return set
}
