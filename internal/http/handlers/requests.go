package handlers

import (
	"net/http"

	intconfig "bonviapp/internal/config"
	"bonviapp/internal/http/middleware"
	"bonviapp/internal/repositories"
	"bonviapp/internal/services"

	"github.com/gin-gonic/gin"
)

func requestService(c *gin.Context) services.RequestService {
	return services.RequestService{
		Requests:  repositories.RequestRepository{Store: intconfig.Store},
		RequestID: middleware.GetRequestID(c),
	}
}

// GET /api/requests
func GetRequests(c *gin.Context) {
	list, err := requestService(c).List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// POST /api/requests
func CreateRequest(c *gin.Context) {
	var in services.CreateRequestInput
	if !BindJSONOrError(c, &in) {
		return
	}
	req, err := requestService(c).Create(in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, req)
}

// DELETE /api/requests/:id
func DeleteRequest(c *gin.Context) {
	if err := requestService(c).Delete(c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "pedido eliminado"})
}
