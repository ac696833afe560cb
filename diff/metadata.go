package diff

import (
	"strings"

	"github.com/arloliu/hipdiff/hip"
)

// diffMetadata compares the header metadata groups scalar by scalar and
// returns one Section per group with differences, in chunk declaration
// order.
func diffMetadata(b, m *hip.Package) []Section {
	var sections []Section
	add := func(name string, entries []FieldDiff) {
		if len(entries) > 0 {
			sections = append(sections, Section{Name: name, Entries: entries})
		}
	}

	var pver []FieldDiff
	pver = appendScalar(pver, "subVersion", b.Version.Sub, m.Version.Sub, hexVal)
	pver = appendScalar(pver, "clientVersion", b.Version.Client, m.Version.Client, hexVal)
	pver = appendScalar(pver, "compatVersion", b.Version.Compat, m.Version.Compat, hexVal)
	add("PVER", pver)

	add("PFLG", appendScalar(nil, "flags", b.Flags, m.Flags, hexVal))

	var pcnt []FieldDiff
	pcnt = appendScalar(pcnt, "assetCount", b.Counts.AssetCount, m.Counts.AssetCount, decVal)
	pcnt = appendScalar(pcnt, "layerCount", b.Counts.LayerCount, m.Counts.LayerCount, decVal)
	pcnt = appendScalar(pcnt, "maxAssetSize", b.Counts.MaxAssetSize, m.Counts.MaxAssetSize, decVal)
	pcnt = appendScalar(pcnt, "maxLayerSize", b.Counts.MaxLayerSize, m.Counts.MaxLayerSize, decVal)
	pcnt = appendScalar(pcnt, "maxXformAssetSize", b.Counts.MaxXformAssetSize, m.Counts.MaxXformAssetSize, decVal)
	add("PCNT", pcnt)

	var pcrt []FieldDiff
	pcrt = appendScalar(pcrt, "time", b.Creation.Time, m.Creation.Time, decVal)
	bNote := normalizeNote(b.Creation.Note)
	mNote := normalizeNote(m.Creation.Note)
	if bNote != mNote {
		pcrt = append(pcrt, fieldChanged("", quoted(bNote), quoted(mNote)))
	}
	add("PCRT", pcrt)

	add("PMOD", appendScalar(nil, "time", b.ModTime, m.ModTime, decVal))

	add("PLAT", diffPlatform(b.Platform, m.Platform))

	add("AINF", appendScalar(nil, "ainf", b.AssetInfo, m.AssetInfo, decVal))
	add("LINF", appendScalar(nil, "linf", b.LayerInfo, m.LayerInfo, decVal))

	return sections
}

func appendScalar(entries []FieldDiff, name string, before, after uint32, format func(uint32) string) []FieldDiff {
	if before != after {
		entries = append(entries, fieldChanged(name, format(before), format(after)))
	}

	return entries
}

// normalizeNote strips the trailing newline historical archive writers left
// in the creation note, so it never shows up as a phantom change.
func normalizeNote(s string) string {
	return strings.TrimSuffix(s, "\n")
}

// diffPlatform handles the one optional metadata group. A presence mismatch
// emits the whole group as added or removed, id and strings alike; when both
// sides have it, strings are compared positionally up to the longer count.
func diffPlatform(b, m *hip.Platform) []FieldDiff {
	if b == nil && m == nil {
		return nil
	}

	var entries []FieldDiff
	switch {
	case b == nil:
		entries = append(entries, fieldAdded("id", hex8Val(m.ID)))
		for _, s := range m.Strings {
			entries = append(entries, fieldAdded("", quoted(s)))
		}
	case m == nil:
		entries = append(entries, fieldRemoved("id", hex8Val(b.ID)))
		for _, s := range b.Strings {
			entries = append(entries, fieldRemoved("", quoted(s)))
		}
	default:
		entries = appendScalar(entries, "id", b.ID, m.ID, hex8Val)
		n := max(len(b.Strings), len(m.Strings))
		for i := 0; i < n; i++ {
			switch {
			case i >= len(b.Strings):
				entries = append(entries, fieldAdded("", quoted(m.Strings[i])))
			case i >= len(m.Strings):
				entries = append(entries, fieldRemoved("", quoted(b.Strings[i])))
			case b.Strings[i] != m.Strings[i]:
				entries = append(entries, fieldChanged("", quoted(b.Strings[i]), quoted(m.Strings[i])))
			}
		}
	}

	return entries
}
