package menu

import "github.com/atomicstack/menukit/internal/logging"

// reportError records errors raised from input handlers, which have no
// caller to return them to.
func reportError(err error) {
	if err != nil {
		logging.Error(err)
	}
}
