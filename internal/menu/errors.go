package menu

import (
	"errors"

	"github.com/atomicstack/menukit/internal/aim"
)

// Configuration errors. They are returned while the menu graph is being
// built and indicate a programming mistake rather than a user action.
var (
	ErrExistingMenuStack     = errors.New("menu: panel already has a menu stack; a panel may only be used by one trigger")
	ErrMissingMenuStack      = errors.New("menu: expected a menu stack; build the menu through a panel or as an inline menu")
	ErrMissingMenuAim        = errors.New("menu: menu aim is enabled but no scheduler was configured")
	ErrMissingOverlayService = errors.New("menu: expected an overlay service")
	ErrMissingPointerTracker = aim.ErrMissingPointerTracker
	ErrMissingMenu           = aim.ErrMissingMenu
)
