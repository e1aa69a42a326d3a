package i

import "github.com/gin-gonic/gin"

// Controller mounts its routes on a router group.
type Controller interface {
	RegisterPublic(*gin.RouterGroup)
}
