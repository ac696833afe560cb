package hip

import "github.com/arloliu/hipdiff/chunk"

// Block tags of the HIP container grammar.
//
//	HIPA                      root marker, must come first
//	PACK                      package metadata
//	  PVER PFLG PCNT PCRT PMOD PLAT
//	DICT                      directory
//	  ATOC  AINF, AHDR xN (each with optional ADBG)
//	  LTOC  LINF, LHDR xM (each with optional LDBG)
//	STRM                      data stream
//	  DHDR DPAK
var (
	TagHIPA = chunk.MakeTag("HIPA")
	TagPACK = chunk.MakeTag("PACK")
	TagPVER = chunk.MakeTag("PVER")
	TagPFLG = chunk.MakeTag("PFLG")
	TagPCNT = chunk.MakeTag("PCNT")
	TagPCRT = chunk.MakeTag("PCRT")
	TagPMOD = chunk.MakeTag("PMOD")
	TagPLAT = chunk.MakeTag("PLAT")
	TagDICT = chunk.MakeTag("DICT")
	TagATOC = chunk.MakeTag("ATOC")
	TagAINF = chunk.MakeTag("AINF")
	TagAHDR = chunk.MakeTag("AHDR")
	TagADBG = chunk.MakeTag("ADBG")
	TagLTOC = chunk.MakeTag("LTOC")
	TagLINF = chunk.MakeTag("LINF")
	TagLHDR = chunk.MakeTag("LHDR")
	TagLDBG = chunk.MakeTag("LDBG")
	TagSTRM = chunk.MakeTag("STRM")
	TagDHDR = chunk.MakeTag("DHDR")
	TagDPAK = chunk.MakeTag("DPAK")
)
