package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/collab-projects-api/internal/dto"
	"github.com/yukikurage/collab-projects-api/internal/services"
	"github.com/yukikurage/collab-projects-api/internal/utils"
)

// CatalogHandler serves the skill and discipline reference lists
type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

type catalogRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
}

func (r catalogRequest) input() services.CatalogInput {
	return services.CatalogInput{Name: r.Name, Description: r.Description}
}

func listCatalogInput(c *gin.Context) services.ListCatalogInput {
	return services.ListCatalogInput{
		Search:     c.Query("search"),
		Ordering:   c.Query("ordering"),
		Pagination: utils.GetPaginationParams(c),
	}
}

func (h *CatalogHandler) ListSkills(c *gin.Context) {
	input := listCatalogInput(c)
	skills, total, err := h.catalogService.ListSkills(input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSkillListResponse(skills, input.Pagination, total))
}

func (h *CatalogHandler) GetSkill(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "skill")
	if !ok {
		return
	}
	skill, err := h.catalogService.GetSkill(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSkillDTO(*skill))
}

func (h *CatalogHandler) CreateSkill(c *gin.Context) {
	var req catalogRequest
	if !bindJSON(c, &req) {
		return
	}
	skill, err := h.catalogService.CreateSkill(req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToSkillDTO(*skill))
}

func (h *CatalogHandler) UpdateSkill(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "skill")
	if !ok {
		return
	}
	var req catalogRequest
	if !bindJSON(c, &req) {
		return
	}
	skill, err := h.catalogService.UpdateSkill(id, req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSkillDTO(*skill))
}

func (h *CatalogHandler) DeleteSkill(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "skill")
	if !ok {
		return
	}
	if err := h.catalogService.DeleteSkill(id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CatalogHandler) ListDisciplines(c *gin.Context) {
	input := listCatalogInput(c)
	disciplines, total, err := h.catalogService.ListDisciplines(input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToDisciplineListResponse(disciplines, input.Pagination, total))
}

func (h *CatalogHandler) GetDiscipline(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "discipline")
	if !ok {
		return
	}
	discipline, err := h.catalogService.GetDiscipline(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToDisciplineDTO(*discipline))
}

func (h *CatalogHandler) CreateDiscipline(c *gin.Context) {
	var req catalogRequest
	if !bindJSON(c, &req) {
		return
	}
	discipline, err := h.catalogService.CreateDiscipline(req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToDisciplineDTO(*discipline))
}

func (h *CatalogHandler) UpdateDiscipline(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "discipline")
	if !ok {
		return
	}
	var req catalogRequest
	if !bindJSON(c, &req) {
		return
	}
	discipline, err := h.catalogService.UpdateDiscipline(id, req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToDisciplineDTO(*discipline))
}

func (h *CatalogHandler) DeleteDiscipline(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "discipline")
	if !ok {
		return
	}
	if err := h.catalogService.DeleteDiscipline(id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
