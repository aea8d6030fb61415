package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	intconfig "bonviapp/internal/config"
	"bonviapp/internal/domain/models"
	"bonviapp/internal/http/middleware"
	"bonviapp/internal/repositories"
	"bonviapp/internal/services"

	"github.com/gin-gonic/gin"
)

func budgetService(c *gin.Context) services.BudgetService {
	return services.BudgetService{
		Store:     intconfig.Store,
		RequestID: middleware.GetRequestID(c),
	}
}

// GET /api/requests/:id/budget
func GetBudget(c *gin.Context) {
	doc, err := budgetService(c).Load(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

type saveBudgetInput struct {
	BudgetOptions []models.BudgetOption `json:"budgetOptions"`
}

// PUT /api/requests/:id/budget — replaces the stored options and
// stamps lastModified.
func SaveBudget(c *gin.Context) {
	var in saveBudgetInput
	if !BindJSONOrError(c, &in) {
		return
	}
	doc, err := budgetService(c).Save(c.Param("id"), in.BudgetOptions)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// POST /api/requests/:id/budget/options
func AddBudgetOption(c *gin.Context) {
	doc, err := budgetService(c).AddOption(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, doc)
}

// DELETE /api/requests/:id/budget/options/:optionId
func DeleteBudgetOption(c *gin.Context) {
	doc, err := budgetService(c).DeleteOption(c.Param("id"), c.Param("optionId"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// POST /api/requests/:id/budget/options/:optionId/items
func AddBudgetItem(c *gin.Context) {
	doc, err := budgetService(c).AddItem(c.Param("id"), c.Param("optionId"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, doc)
}

type editItemInput struct {
	Field string          `json:"field"`
	Value json.RawMessage `json:"value"`
}

// PUT /api/requests/:id/budget/options/:optionId/items/:index
func EditBudgetItem(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "índice de item inválido", err)
		return
	}
	var in editItemInput
	if !BindJSONOrError(c, &in) {
		return
	}
	doc, err := budgetService(c).EditItem(c.Param("id"), c.Param("optionId"), index, in.Field, in.Value)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// DELETE /api/requests/:id/budget/options/:optionId/items/:index
func DeleteBudgetItem(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "índice de item inválido", err)
		return
	}
	doc, err := budgetService(c).DeleteItem(c.Param("id"), c.Param("optionId"), index)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// POST /api/requests/:id/budget/approve — the single state transition:
// budget stamped approved, reservation created, request consumed.
func ApproveBudget(c *gin.Context) {
	res, err := budgetService(c).Approve(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// GET /api/requests/:id/budget/pdf
func GetBudgetPDF(c *gin.Context) {
	svc := services.DocsService{
		Budgets:   repositories.BudgetRepository{Store: intconfig.Store},
		RequestID: middleware.GetRequestID(c),
	}
	pdf, filename, err := svc.GenerateBudgetPDF(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
