package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// ExampleFile serves a bundled example YAML file for download. Only plain
// .yaml names are accepted; path traversal attempts get 400.
func ExampleFile(c *gin.Context) {
	filename := c.Param("filename")
	safeName := filepath.Base(filename)

	if safeName != filename || !strings.HasSuffix(safeName, ".yaml") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filename"})
		return
	}

	content, err := os.ReadFile(filepath.Join("examples", safeName))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Example '%s' not found", safeName)})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", safeName))
	c.Data(http.StatusOK, "application/x-yaml", content)
}
