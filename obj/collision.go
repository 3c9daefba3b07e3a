package obj

import "github.com/milk9111/boxloop/common"

// Collision describes one detected overlap: the box that was hit and the
// world object that owns it. For a tilemap the box is a single solid tile.
// Every query returns its own value, so results can be kept and compared.
type Collision struct {
	Box    common.Box
	Object Object
}
