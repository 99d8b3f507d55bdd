package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/puttputt/internal/course"
)

// ListCourses returns a summary of every course on offer
func ListCourses(catalog *course.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"courses": catalog.List()})
	}
}

// GetHole returns the authored layout of one hole, for rendering
func GetHole(catalog *course.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		crs, err := catalog.Get(c.Param("course"))
		if err != nil {
			writeError(c, err)
			return
		}
		n, err := strconv.Atoi(c.Param("hole"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "hole must be a number"})
			return
		}
		_, spec, err := crs.Hole(n)
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"course":      crs.ID,
			"fingerprint": crs.Fingerprint,
			"number":      n,
			"hole":        spec,
		})
	}
}
