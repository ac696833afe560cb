package diff

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/arloliu/hipdiff/hip"
	"github.com/arloliu/hipdiff/internal/hash"
)

type pairIdx struct {
	b int
	m int
}

// diffAssets matches assets across the two packages by ID and appends the
// resulting entity diffs and counts to res. It returns the sets of added and
// removed asset IDs, which the layer pass needs to suppress derivative
// membership lines.
func diffAssets(res *Result, b, m *hip.Package, opts Options) (addedIDs, removedIDs map[uint32]struct{}) {
	index := make(map[uint32]pairIdx, len(b.Assets)+len(m.Assets))
	for i := range b.Assets {
		index[b.Assets[i].ID] = pairIdx{b: i, m: -1}
	}
	for i := range m.Assets {
		if p, ok := index[m.Assets[i].ID]; ok {
			p.m = i
			index[m.Assets[i].ID] = p
		} else {
			index[m.Assets[i].ID] = pairIdx{b: -1, m: i}
		}
	}

	ids := make([]uint32, 0, len(index))
	for id := range index {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	addedIDs = make(map[uint32]struct{})
	removedIDs = make(map[uint32]struct{})

	for _, id := range ids {
		p := index[id]
		switch {
		case p.b == -1:
			a := m.Assets[p.m]
			e := EntityDiff{Kind: Added, After: assetLabel(a)}
			if opts.Detailed {
				e.Fields = assetFieldDump(a, Added)
			}
			res.Assets.Added = append(res.Assets.Added, e)
			res.count(Added, 1)
			addedIDs[id] = struct{}{}

		case p.m == -1:
			a := b.Assets[p.b]
			e := EntityDiff{Kind: Removed, Before: assetLabel(a)}
			if opts.Detailed {
				e.Fields = assetFieldDump(a, Removed)
			}
			res.Assets.Removed = append(res.Assets.Removed, e)
			res.count(Removed, 1)
			removedIDs[id] = struct{}{}

		default:
			ba := b.Assets[p.b]
			ma := m.Assets[p.m]
			if ba.ID != ma.ID {
				// Matched by map key, so this cannot legitimately differ; a
				// mismatch is a matcher bug, not a data change.
				panic(fmt.Sprintf("diff: matched asset pair with differing IDs 0x%08X / 0x%08X", ba.ID, ma.ID))
			}

			fields := changedAssetFields(b, m, ba, ma, opts)
			if len(fields) == 0 {
				continue
			}
			e := EntityDiff{Kind: Changed, Before: assetLabel(ba), After: assetLabel(ma)}
			if opts.Detailed {
				e.Fields = fields
			}
			res.Assets.Changed = append(res.Assets.Changed, e)
			res.count(Changed, 1)
		}
	}

	return addedIDs, removedIDs
}

// changedAssetFields returns one FieldDiff per differing sub-field of a
// matched pair, in directory field order, or nil when the pair is identical.
func changedAssetFields(bp, mp *hip.Package, ba, ma hip.AssetEntry, opts Options) []FieldDiff {
	var fields []FieldDiff

	fields = appendScalar(fields, "type", ba.Type, ma.Type, hex8Val)
	if opts.IncludeOffsets {
		fields = appendScalar(fields, "offset", ba.Offset, ma.Offset, decVal)
	}
	fields = appendScalar(fields, "size", ba.Size, ma.Size, decVal)
	if opts.IncludePluses {
		fields = appendScalar(fields, "plus", ba.Plus, ma.Plus, decVal)
	}
	fields = appendScalar(fields, "flags", ba.Flags, ma.Flags, hex8Val)

	if changed, before, after := comparePayload(bp, mp, ba, ma, opts); changed {
		fields = append(fields, fieldChanged("data", before, after))
	}

	fields = appendScalar(fields, "align", ba.Debug.Align, ma.Debug.Align, decVal)
	if ba.Debug.Name != ma.Debug.Name {
		fields = append(fields, fieldChanged("name", ba.Debug.Name, ma.Debug.Name))
	}
	if ba.Debug.Filename != ma.Debug.Filename {
		fields = append(fields, fieldChanged("filename", ba.Debug.Filename, ma.Debug.Filename))
	}
	fields = appendScalar(fields, "checksum", ba.Debug.Checksum, ma.Debug.Checksum, hex8Val)

	return fields
}

// comparePayload decides whether a matched pair's data changed. In
// checksum-trust mode only the stored debug checksums are consulted and the
// payload bytes are never read; otherwise the bytes are compared directly.
// The returned strings are compact display fingerprints for the data line.
func comparePayload(bp, mp *hip.Package, ba, ma hip.AssetEntry, opts Options) (changed bool, before, after string) {
	if opts.TrustChecksums {
		if ba.Debug.Checksum == ma.Debug.Checksum {
			return false, "", ""
		}

		return true, hex8Val(ba.Debug.Checksum), hex8Val(ma.Debug.Checksum)
	}

	bPayload := bp.Payload(ba)
	mPayload := mp.Payload(ma)
	if ba.Size == ma.Size && bytes.Equal(bPayload, mPayload) {
		return false, "", ""
	}

	return true, digestVal(bPayload), digestVal(mPayload)
}

func digestVal(payload []byte) string {
	return fmt.Sprintf("0x%016X", hash.Digest(payload))
}

// assetLabel is the display name of an asset: its debug name, or the ID when
// the archive carries no debug chunk.
func assetLabel(a hip.AssetEntry) string {
	if a.Debug.Name != "" {
		return a.Debug.Name
	}

	return hex8Val(a.ID)
}

// assetFieldDump renders every directory field of an asset on one side, used
// for detailed added/removed entries.
func assetFieldDump(a hip.AssetEntry, kind Kind) []FieldDiff {
	one := func(name, val string) FieldDiff {
		if kind == Added {
			return fieldAdded(name, val)
		}

		return fieldRemoved(name, val)
	}

	return []FieldDiff{
		one("id", hex8Val(a.ID)),
		one("type", hex8Val(a.Type)),
		one("offset", decVal(a.Offset)),
		one("size", decVal(a.Size)),
		one("plus", decVal(a.Plus)),
		one("flags", hex8Val(a.Flags)),
		one("align", decVal(a.Debug.Align)),
		one("name", a.Debug.Name),
		one("filename", a.Debug.Filename),
		one("checksum", hex8Val(a.Debug.Checksum)),
	}
}
