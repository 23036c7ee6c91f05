package router

import "github.com/gin-gonic/gin"

// Module is one feature area (auth, users, oauth) that knows how to mount
// its own routes on a RouterGroup.
type Module interface {
	Register(rg *gin.RouterGroup)
}
