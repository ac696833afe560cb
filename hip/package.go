// Package hip decodes HIP game-asset archives into an in-memory document.
//
// A HIP archive is a nested-chunk binary container: a tree of tagged,
// length-prefixed blocks holding package metadata, an asset directory, a
// layer directory, and one contiguous payload region. Decode performs a
// single forward pass over the archive image and produces a Package, which
// is read-only afterwards and exclusively owns its tables and data buffer.
//
// Unknown blocks at any level are skipped transparently, so archives written
// by newer tools with extra chunks still decode. Structural inconsistencies
// (missing root marker, directory counts that do not match the declared
// counts, nesting deeper than the format allows) abort the decode; there is
// no partial result.
package hip

// StringSize is the fixed storage size of every string field in the format,
// terminator included, so at most StringSize-1 content bytes are kept.
const StringSize = 32

// Version holds the PVER chunk fields.
type Version struct {
	Sub    uint32
	Client uint32
	Compat uint32
}

// Counts holds the PCNT chunk fields. AssetCount and LayerCount size the
// directory tables; the max-size fields are advisory metadata.
type Counts struct {
	AssetCount        uint32
	LayerCount        uint32
	MaxAssetSize      uint32
	MaxLayerSize      uint32
	MaxXformAssetSize uint32
}

// Creation holds the PCRT chunk fields. Note is stored exactly as decoded;
// historical tools wrote a trailing newline, which the diff engine normalizes
// at comparison time.
type Creation struct {
	Time uint32
	Note string
}

// Platform holds the PLAT chunk fields. The chunk is optional; a Package
// decoded from an archive without one has a nil Platform.
type Platform struct {
	ID      uint32
	Strings []string
}

// AssetDebug holds the optional ADBG sub-chunk of an asset header. Absent
// debug chunks leave the zero value.
type AssetDebug struct {
	Align    uint32
	Name     string
	Filename string
	Checksum uint32
}

// AssetEntry is one AHDR directory entry. ID is unique within a Package and
// is the identity key the diff engine matches assets by. Offset is the
// absolute stream offset of the asset's payload inside the data region.
type AssetEntry struct {
	ID     uint32
	Type   uint32
	Offset uint32
	Size   uint32
	Plus   uint32
	Flags  uint32
	Debug  AssetDebug
}

// LayerDebug holds the optional LDBG sub-chunk of a layer header.
type LayerDebug struct {
	Misc uint32
}

// LayerEntry is one LHDR directory entry. Layers carry no persistent
// identity across archive versions; Type is shared by many layers, and
// AssetIDs reference the owning Package's assets by ID. Every asset belongs
// to exactly one layer.
type LayerEntry struct {
	Type     uint32
	AssetIDs []uint32
	Debug    LayerDebug
}

// Package is the fully decoded archive document.
//
// A Package is built once by Decode and must be treated as read-only
// afterwards. It owns Data and all entry tables; nothing aliases the input
// byte slice the archive was decoded from.
type Package struct {
	Version  Version
	Flags    uint32
	Counts   Counts
	Creation Creation
	ModTime  uint32

	// Platform is nil when the archive has no PLAT chunk.
	Platform *Platform

	// AssetInfo and LayerInfo are the reserved AINF/LINF scalars. The format
	// carries one on the asset side and one on the layer side independently.
	AssetInfo uint32
	LayerInfo uint32

	// DataHeader is the reserved DHDR scalar.
	DataHeader uint32

	Assets []AssetEntry
	Layers []LayerEntry

	// Data is the contiguous payload region from the DPAK chunk, and
	// DataStart the absolute stream offset where it began. Asset payloads
	// are ranges of Data addressed by AssetEntry.Offset relative to
	// DataStart.
	Data      []byte
	DataStart uint32
}

// Payload returns the byte range of Data backing the given asset, derived
// from its Offset and Size. It returns nil when the range falls outside the
// data region, which only happens for malformed directories.
func (p *Package) Payload(a AssetEntry) []byte {
	start := int64(a.Offset) - int64(p.DataStart)
	end := start + int64(a.Size)
	if start < 0 || end > int64(len(p.Data)) {
		return nil
	}

	return p.Data[start:end]
}
