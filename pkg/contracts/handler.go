package contracts

import "github.com/julienschmidt/httprouter"

// Handler is implemented by the pricing and catalog route groups so the
// application can mount them without knowing their shape.
type Handler interface {
	RegisterRoutes(*httprouter.Router)
}
