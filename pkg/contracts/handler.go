// Package contracts holds the small interfaces shared between the
// application bootstrap and the domain handlers.
package contracts

import "github.com/julienschmidt/httprouter"

// Handler is implemented by every HTTP handler that exposes routes.
type Handler interface {
	RegisterRoutes(*httprouter.Router)
}
