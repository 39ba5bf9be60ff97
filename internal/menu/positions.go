package menu

import "github.com/atomicstack/menukit/internal/overlay"

// StandardDropdownBelowPositions opens a menu under its trigger, falling back
// to above it and then to the trigger's other edge.
var StandardDropdownBelowPositions = []overlay.ConnectedPosition{
	{OriginX: overlay.Start, OriginY: overlay.Bottom, OverlayX: overlay.Start, OverlayY: overlay.Top},
	{OriginX: overlay.Start, OriginY: overlay.Top, OverlayX: overlay.Start, OverlayY: overlay.Bottom},
	{OriginX: overlay.End, OriginY: overlay.Bottom, OverlayX: overlay.End, OverlayY: overlay.Top},
	{OriginX: overlay.End, OriginY: overlay.Top, OverlayX: overlay.End, OverlayY: overlay.Bottom},
}

// StandardDropdownAdjacentPositions opens a submenu beside its trigger.
var StandardDropdownAdjacentPositions = []overlay.ConnectedPosition{
	{OriginX: overlay.End, OriginY: overlay.Top, OverlayX: overlay.Start, OverlayY: overlay.Top},
	{OriginX: overlay.End, OriginY: overlay.Bottom, OverlayX: overlay.Start, OverlayY: overlay.Bottom},
	{OriginX: overlay.Start, OriginY: overlay.Top, OverlayX: overlay.End, OverlayY: overlay.Top},
	{OriginX: overlay.Start, OriginY: overlay.Bottom, OverlayX: overlay.End, OverlayY: overlay.Bottom},
}

// ContextMenuPositions places a context menu next to the pointer, nudged away
// so the pointer does not sit on the first item.
var ContextMenuPositions = contextMenuPositions()

func contextMenuPositions() []overlay.ConnectedPosition {
	out := make([]overlay.ConnectedPosition, len(StandardDropdownBelowPositions))
	for i, pos := range StandardDropdownBelowPositions {
		pos.OffsetX = -2
		if pos.OverlayX == overlay.Start {
			pos.OffsetX = 2
		}
		pos.OffsetY = -1
		if pos.OverlayY == overlay.Top {
			pos.OffsetY = 1
		}
		out[i] = pos
	}
	return out
}
