package hip

import (
	"github.com/arloliu/hipdiff/endian"
)

// Test-only archive builder. Frames payloads as tag+length blocks and
// mirrors the on-disk string padding rules so decoder tests can construct
// archives with known field values.

var engine = endian.GetBigEndianEngine()

func be32(vs ...uint32) []byte {
	var buf []byte
	for _, v := range vs {
		buf = engine.AppendUint32(buf, v)
	}

	return buf
}

func cat(parts ...[]byte) []byte {
	var buf []byte
	for _, p := range parts {
		buf = append(buf, p...)
	}

	return buf
}

func blk(tag string, parts ...[]byte) []byte {
	payload := cat(parts...)
	buf := []byte(tag)
	buf = engine.AppendUint32(buf, uint32(len(payload)))

	return append(buf, payload...)
}

// cstr encodes a NUL-terminated string with the even-alignment pad byte the
// format requires after odd total lengths.
func cstr(s string) []byte {
	buf := append([]byte(s), 0)
	if len(buf)&1 == 1 {
		buf = append(buf, 0)
	}

	return buf
}

// archiveFixture describes a synthetic archive for buildArchive.
type archiveFixture struct {
	version   Version
	flags     uint32
	creation  Creation
	modTime   uint32
	platform  *Platform
	assetInfo uint32
	layerInfo uint32
	assets    []fixtureAsset
	layers    []LayerEntry
	pad       uint32

	// overrides for malformed-input tests
	declaredAssetCount *uint32
	declaredLayerCount *uint32
	omitRootMarker     bool
}

type fixtureAsset struct {
	entry   AssetEntry // Offset is filled in by buildArchive
	payload []byte
}

// buildArchive lays out a complete archive image. Asset offsets are assigned
// sequentially inside the DPAK payload region.
func buildArchive(f *archiveFixture) []byte {
	assetCount := uint32(len(f.assets))
	if f.declaredAssetCount != nil {
		assetCount = *f.declaredAssetCount
	}
	layerCount := uint32(len(f.layers))
	if f.declaredLayerCount != nil {
		layerCount = *f.declaredLayerCount
	}

	pack := cat(
		blk("PVER", be32(f.version.Sub, f.version.Client, f.version.Compat)),
		blk("PFLG", be32(f.flags)),
		blk("PCNT", be32(assetCount, layerCount, 0, 0, 0)),
		blk("PCRT", be32(f.creation.Time), cstr(f.creation.Note)),
		blk("PMOD", be32(f.modTime)),
	)
	if f.platform != nil {
		plat := be32(f.platform.ID)
		for _, s := range f.platform.Strings {
			plat = append(plat, cstr(s)...)
		}
		pack = append(pack, blk("PLAT", plat)...)
	}

	// Directory and data region. Offsets are absolute stream positions, so
	// the layout below is computed in two passes: first with zero offsets to
	// learn where DPAK's payload lands, then for real.
	image := layout(f, pack, assetCount, layerCount, 0)
	dataStart := dataStartOf(f, image)

	return layout(f, pack, assetCount, layerCount, dataStart)
}

func layout(f *archiveFixture, pack []byte, assetCount, layerCount, dataStart uint32) []byte {
	offset := dataStart
	var ahdrs []byte
	for _, fa := range f.assets {
		a := fa.entry
		a.Offset = offset
		a.Size = uint32(len(fa.payload))
		offset += a.Size

		adbg := blk("ADBG",
			be32(a.Debug.Align), cstr(a.Debug.Name), cstr(a.Debug.Filename), be32(a.Debug.Checksum))
		ahdrs = append(ahdrs, blk("AHDR",
			be32(a.ID, a.Type, a.Offset, a.Size, a.Plus, a.Flags), adbg)...)
	}

	var lhdrs []byte
	for _, l := range f.layers {
		body := be32(l.Type, uint32(len(l.AssetIDs)))
		body = append(body, be32(l.AssetIDs...)...)
		body = append(body, blk("LDBG", be32(l.Debug.Misc))...)
		lhdrs = append(lhdrs, blk("LHDR", body)...)
	}

	dict := blk("DICT",
		blk("ATOC", blk("AINF", be32(f.assetInfo)), ahdrs),
		blk("LTOC", blk("LINF", be32(f.layerInfo)), lhdrs),
	)

	var payloads []byte
	for _, fa := range f.assets {
		payloads = append(payloads, fa.payload...)
	}
	var dpak []byte
	if len(f.assets) > 0 {
		dpak = cat(be32(f.pad), make([]byte, f.pad), payloads)
	}
	strm := blk("STRM", blk("DHDR", be32(0)), blk("DPAK", dpak))

	var image []byte
	if !f.omitRootMarker {
		image = blk("HIPA")
	}

	return cat(image, blk("PACK", pack), dict, strm)
}

// dataStartOf finds the absolute offset of the first payload byte inside the
// laid-out image: DPAK's payload begins after its pad-length field and pad.
func dataStartOf(f *archiveFixture, image []byte) uint32 {
	if len(f.assets) == 0 {
		return 0
	}

	var total uint32
	for _, fa := range f.assets {
		total += uint32(len(fa.payload))
	}

	// DPAK payload (pad field + pad bytes + asset payloads) sits at the very
	// end of the image.
	return uint32(len(image)) - total
}
