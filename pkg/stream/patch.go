// Package stream defines the patch operations emitted when a resolved
// snapshot changes, plus their JSON wire framing. Patches describe leaf
// mutations only; the full merge never re-runs for a value change.
package stream

import (
	"encoding/json"
	"fmt"

	"github.com/vango-dev/attrmerge/internal/errors"
)

// PatchOp is the type of patch operation.
type PatchOp uint8

const (
	PatchSetAttr     PatchOp = 0x01 // Set/update attribute
	PatchRemoveAttr  PatchOp = 0x02 // Remove attribute
	PatchAddClass    PatchOp = 0x03 // Add class token
	PatchRemoveClass PatchOp = 0x04 // Remove class token
	PatchSetStyle    PatchOp = 0x05 // Set style property
	PatchRemoveStyle PatchOp = 0x06 // Remove style property
)

// String returns the string representation of the PatchOp.
func (op PatchOp) String() string {
	switch op {
	case PatchSetAttr:
		return "SetAttr"
	case PatchRemoveAttr:
		return "RemoveAttr"
	case PatchAddClass:
		return "AddClass"
	case PatchRemoveClass:
		return "RemoveClass"
	case PatchSetStyle:
		return "SetStyle"
	case PatchRemoveStyle:
		return "RemoveStyle"
	default:
		return "Unknown"
	}
}

var validOps = map[PatchOp]bool{
	PatchSetAttr:     true,
	PatchRemoveAttr:  true,
	PatchAddClass:    true,
	PatchRemoveClass: true,
	PatchSetStyle:    true,
	PatchRemoveStyle: true,
}

// Patch represents a single attribute mutation to apply to one node.
type Patch struct {
	Op     PatchOp `json:"op"`
	NodeID string  `json:"node"`
	Key    string  `json:"key"`
	Value  string  `json:"value,omitempty"`
}

// Frame is one wire message: the patches produced by a single source
// notification, applied atomically in order.
type Frame struct {
	Seq     uint64  `json:"seq"`
	Patches []Patch `json:"patches"`
}

// Encode serializes the frame for the wire.
func (f *Frame) Encode() ([]byte, error) {
	return json.Marshal(f)
}

// DecodeFrame parses and validates a wire frame. Malformed JSON yields E060,
// an out-of-range operation yields E061.
func DecodeFrame(data []byte) (*Frame, error) {
	var f Frame
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, errors.New("E060").Wrap(err)
	}
	for _, p := range f.Patches {
		if !validOps[p.Op] {
			return nil, errors.New("E061").WithDetail(fmt.Sprintf("op 0x%02X targeting node %q", uint8(p.Op), p.NodeID))
		}
		if p.NodeID == "" || p.Key == "" {
			return nil, errors.New("E060").WithDetail(fmt.Sprintf("patch %s missing node or key", p.Op))
		}
	}
	return &f, nil
}
