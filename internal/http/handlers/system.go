package handlers

import (
	"net/http"

	intconfig "bonviapp/internal/config"

	"github.com/gin-gonic/gin"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "bonviapp en línea"})
}

func StoreCheck(c *gin.Context) {
	if intconfig.Store == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "almacenamiento no conectado"})
		return
	}
	if _, _, err := intconfig.Store.Get("requests"); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "fallo al leer el almacenamiento: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "almacenamiento OK"})
}
