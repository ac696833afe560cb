package hip

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/arloliu/hipdiff/chunk"
	"github.com/arloliu/hipdiff/errs"
	"github.com/arloliu/hipdiff/internal/options"
)

// Decoder walks the block tag hierarchy of an archive image and populates a
// Package. It is single-use: one Decode call per instance.
type Decoder struct {
	r     *chunk.Reader
	pkg   *Package
	trace *zap.Logger
}

// DecoderOption configures a Decoder.
type DecoderOption = options.Option[*Decoder]

// WithTraceLogger installs a logger that records every entered block with
// its tag, nesting depth and payload length. Useful when inspecting archives
// written by unfamiliar tools; decoding is silent by default.
func WithTraceLogger(logger *zap.Logger) DecoderOption {
	return options.NoError(func(d *Decoder) {
		if logger != nil {
			d.trace = logger
		}
	})
}

// Decode decodes a complete archive image into a Package.
//
// Decoding is one strict forward pass. Block tags recognized at each level
// are decoded; unrecognized tags are skipped whole. Any read failure or
// structural mismatch aborts the decode with a ChunkError naming the chunk
// it happened in, and no partial Package is returned.
//
// Parameters:
//   - data: Complete archive image (callers decompress enclosing file
//     compression first; see the compress package)
//   - opts: Optional decoder configuration
//
// Returns:
//   - *Package: Decoded document, exclusively owned by the caller
//   - error: ChunkError wrapping errs sentinels, or an option error
func Decode(data []byte, opts ...DecoderOption) (*Package, error) {
	d := &Decoder{
		r:     chunk.NewReader(data),
		pkg:   &Package{},
		trace: zap.NewNop(),
	}
	if err := options.Apply(d, opts...); err != nil {
		return nil, err
	}

	if err := d.decode(); err != nil {
		return nil, err
	}

	return d.pkg, nil
}

func (d *Decoder) decode() error {
	valid := false
	for {
		tag, ok, err := d.enter()
		if err != nil {
			return err
		}
		if !ok {
			break
		}

		var derr error
		switch tag {
		case TagHIPA:
			valid = true
		case TagPACK:
			derr = d.decodePACK()
		case TagDICT:
			derr = d.decodeDICT()
		case TagSTRM:
			derr = d.decodeSTRM()
		}
		if derr != nil {
			return &ChunkError{Tag: tag, Depth: d.r.Depth(), Err: derr}
		}
		if err := d.r.Exit(); err != nil {
			return err
		}

		// The marker must be the first block; nothing else makes the stream a
		// HIP archive, however well its siblings happen to parse.
		if !valid {
			return errs.ErrMissingRootMarker
		}
	}

	if !valid {
		return errs.ErrMissingRootMarker
	}

	return nil
}

// enter wraps Reader.Enter with optional block tracing.
func (d *Decoder) enter() (chunk.Tag, bool, error) {
	tag, ok, err := d.r.Enter()
	if ok {
		d.trace.Debug("block",
			zap.Stringer("tag", tag),
			zap.Int("depth", d.r.Depth()),
			zap.Int("length", d.r.Remaining()),
		)
	}

	return tag, ok, err
}

// walk iterates the children of the current block, dispatching each known
// tag to fn and skipping the rest. Errors from fn are tagged with the chunk
// they occurred in.
func (d *Decoder) walk(fn func(tag chunk.Tag) error) error {
	for {
		tag, ok, err := d.enter()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		if err := fn(tag); err != nil {
			return &ChunkError{Tag: tag, Depth: d.r.Depth(), Err: err}
		}
		if err := d.r.Exit(); err != nil {
			return err
		}
	}
}

func (d *Decoder) decodePACK() error {
	return d.walk(func(tag chunk.Tag) error {
		switch tag {
		case TagPVER:
			return d.readUint32s(&d.pkg.Version.Sub, &d.pkg.Version.Client, &d.pkg.Version.Compat)
		case TagPFLG:
			return d.readUint32s(&d.pkg.Flags)
		case TagPCNT:
			c := &d.pkg.Counts
			return d.readUint32s(&c.AssetCount, &c.LayerCount, &c.MaxAssetSize, &c.MaxLayerSize, &c.MaxXformAssetSize)
		case TagPCRT:
			return d.decodePCRT()
		case TagPMOD:
			return d.readUint32s(&d.pkg.ModTime)
		case TagPLAT:
			return d.decodePLAT()
		}

		return nil
	})
}

func (d *Decoder) decodePCRT() error {
	if err := d.readUint32s(&d.pkg.Creation.Time); err != nil {
		return err
	}
	note, err := d.r.ReadString(StringSize)
	if err != nil {
		return err
	}
	d.pkg.Creation.Note = note

	return nil
}

func (d *Decoder) decodePLAT() error {
	plat := &Platform{}
	if err := d.readUint32s(&plat.ID); err != nil {
		return err
	}

	for d.r.Remaining() > 0 {
		s, err := d.r.ReadString(StringSize)
		if err != nil {
			return err
		}
		plat.Strings = append(plat.Strings, s)
	}

	d.pkg.Platform = plat

	return nil
}

func (d *Decoder) decodeDICT() error {
	d.pkg.Assets = make([]AssetEntry, 0, d.pkg.Counts.AssetCount)
	d.pkg.Layers = make([]LayerEntry, 0, d.pkg.Counts.LayerCount)

	return d.walk(func(tag chunk.Tag) error {
		switch tag {
		case TagATOC:
			return d.decodeATOC()
		case TagLTOC:
			return d.decodeLTOC()
		}

		return nil
	})
}

func (d *Decoder) decodeATOC() error {
	err := d.walk(func(tag chunk.Tag) error {
		switch tag {
		case TagAINF:
			return d.readUint32s(&d.pkg.AssetInfo)
		case TagAHDR:
			return d.decodeAHDR()
		}

		return nil
	})
	if err != nil {
		return err
	}

	if got, want := len(d.pkg.Assets), int(d.pkg.Counts.AssetCount); got != want {
		return fmt.Errorf("asset directory holds %d headers, declared %d: %w", got, want, errs.ErrEntryCountMismatch)
	}

	return nil
}

func (d *Decoder) decodeAHDR() error {
	var a AssetEntry
	if err := d.readUint32s(&a.ID, &a.Type, &a.Offset, &a.Size, &a.Plus, &a.Flags); err != nil {
		return err
	}

	err := d.walk(func(tag chunk.Tag) error {
		if tag == TagADBG {
			return d.decodeADBG(&a.Debug)
		}

		return nil
	})
	if err != nil {
		return err
	}

	d.pkg.Assets = append(d.pkg.Assets, a)

	return nil
}

func (d *Decoder) decodeADBG(dbg *AssetDebug) error {
	if err := d.readUint32s(&dbg.Align); err != nil {
		return err
	}

	var err error
	if dbg.Name, err = d.r.ReadString(StringSize); err != nil {
		return err
	}
	if dbg.Filename, err = d.r.ReadString(StringSize); err != nil {
		return err
	}

	return d.readUint32s(&dbg.Checksum)
}

func (d *Decoder) decodeLTOC() error {
	covered := 0
	err := d.walk(func(tag chunk.Tag) error {
		switch tag {
		case TagLINF:
			return d.readUint32s(&d.pkg.LayerInfo)
		case TagLHDR:
			n, err := d.decodeLHDR()
			covered += n

			return err
		}

		return nil
	})
	if err != nil {
		return err
	}

	if got, want := len(d.pkg.Layers), int(d.pkg.Counts.LayerCount); got != want {
		return fmt.Errorf("layer directory holds %d headers, declared %d: %w", got, want, errs.ErrEntryCountMismatch)
	}
	if want := int(d.pkg.Counts.AssetCount); covered != want {
		return fmt.Errorf("layers reference %d assets, package declares %d: %w", covered, want, errs.ErrLayerCoverageMismatch)
	}

	return nil
}

// decodeLHDR decodes one layer header and returns how many asset IDs it
// listed, so the caller can verify full coverage of the asset table.
func (d *Decoder) decodeLHDR() (int, error) {
	var l LayerEntry
	var count uint32
	if err := d.readUint32s(&l.Type, &count); err != nil {
		return 0, err
	}

	// The IDs are inline, not sub-blocks; bound the allocation by what the
	// region can actually hold before trusting the declared count.
	if int(count)*4 > d.r.Remaining() {
		return 0, errs.ErrUnexpectedEOF
	}
	if count > 0 {
		l.AssetIDs = make([]uint32, count)
		for i := range l.AssetIDs {
			if err := d.readUint32s(&l.AssetIDs[i]); err != nil {
				return 0, err
			}
		}
	}

	err := d.walk(func(tag chunk.Tag) error {
		if tag == TagLDBG {
			return d.readUint32s(&l.Debug.Misc)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	d.pkg.Layers = append(d.pkg.Layers, l)

	return int(count), nil
}

func (d *Decoder) decodeSTRM() error {
	return d.walk(func(tag chunk.Tag) error {
		switch tag {
		case TagDHDR:
			return d.readUint32s(&d.pkg.DataHeader)
		case TagDPAK:
			return d.decodeDPAK()
		}

		return nil
	})
}

func (d *Decoder) decodeDPAK() error {
	// An empty package has no payload region to read.
	if d.pkg.Counts.AssetCount == 0 {
		return nil
	}

	var pad uint32
	if err := d.readUint32s(&pad); err != nil {
		return err
	}
	if err := d.r.Skip(int(pad)); err != nil {
		return err
	}

	d.pkg.DataStart = uint32(d.r.Pos())

	data, err := d.r.ReadBytes(d.r.BlockEnd() - d.r.Pos())
	if err != nil {
		return err
	}
	d.pkg.Data = data

	return nil
}

// readUint32s reads consecutive big-endian uint32 fields into dst in order.
func (d *Decoder) readUint32s(dst ...*uint32) error {
	for _, p := range dst {
		v, err := d.r.ReadUint32()
		if err != nil {
			return err
		}
		*p = v
	}

	return nil
}
