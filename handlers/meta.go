package handlers

import (
	"net/http"

	"astromitra/state"

	"github.com/gin-gonic/gin"
)

// ReferenceHandler serves the consultation languages and specialities
// from the app slice.
func ReferenceHandler(store *state.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"languages":    store.Languages(),
			"specialities": store.Specialities(),
		})
	}
}
