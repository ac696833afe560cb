package hip

import (
	"fmt"

	"github.com/arloliu/hipdiff/chunk"
)

// ChunkError reports which chunk a decode failed in and at what nesting
// depth. Errors wrap outward level by level, so a failure deep in the tree
// reads like "PACK chunk (depth 1): PCRT chunk (depth 2): ...".
type ChunkError struct {
	Tag   chunk.Tag
	Depth int
	Err   error
}

func (e *ChunkError) Error() string {
	return fmt.Sprintf("%s chunk (depth %d): %v", e.Tag, e.Depth, e.Err)
}

func (e *ChunkError) Unwrap() error {
	return e.Err
}
