package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-management/kds"
	"github.com/yeremiapane/restaurant-management/models"
	"github.com/yeremiapane/restaurant-management/services"
	"github.com/yeremiapane/restaurant-management/utils"
)

var (
	ErrMenuNotFound  = errors.New("Menu not found.")
	ErrMenuDateRange = errors.New("Start date must be before end date.")
)

type MenuController struct {
	Menus *services.MenuService
	Hub   *kds.Hub
}

func NewMenuController(svc *services.Services, hub *kds.Hub) *MenuController {
	RegisterValidators()
	if hub == nil {
		hub = kds.Default()
	}
	return &MenuController{Menus: svc.Menus, Hub: hub}
}

type createMenuRequest struct {
	Name      string     `json:"name" binding:"required,min=2,max=100"`
	Category  string     `json:"category" binding:"required,min=2,max=50"`
	StartDate *time.Time `json:"start_date" binding:"required"`
	EndDate   *time.Time `json:"end_date" binding:"required"`
}

// GetAllMenus -> GET /menus?page=&recordPerPage=
func (mc *MenuController) GetAllMenus(c *gin.Context) {
	p, err := parsePagination(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	ctx := c.Request.Context()
	total, err := mc.Menus.CountMenus(ctx)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	menus, err := mc.Menus.GetMenus(ctx, p.Skip(), p.PerPage, nil)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of menus", listResponse("menus", menus, total, p))
}

func (mc *MenuController) GetMenuByID(c *gin.Context) {
	menu, err := mc.Menus.GetMenu(c.Request.Context(), c.Param("menu_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if menu == nil {
		utils.RespondError(c, http.StatusNotFound, ErrMenuNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu detail", menu)
}

func (mc *MenuController) CreateMenu(c *gin.Context) {
	var req createMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !req.StartDate.Before(*req.EndDate) {
		utils.RespondError(c, http.StatusBadRequest, ErrMenuDateRange)
		return
	}

	menu := models.Menu{
		Name:      req.Name,
		Category:  req.Category,
		StartDate: req.StartDate.UTC(),
		EndDate:   req.EndDate.UTC(),
	}
	if _, err := mc.Menus.CreateMenu(c.Request.Context(), &menu); err != nil {
		respondServiceError(c, err)
		return
	}

	mc.Hub.Broadcast(kds.Message{Event: kds.EventMenuCreate, Data: menu})
	utils.InfoLogger.WithField("menu_id", menu.MenuID).Info("Menu created")
	utils.RespondJSON(c, http.StatusCreated, "Menu created successfully", menu)
}

// UpdateMenu applies a partial update. The date range is checked against the
// stored values for whichever bound is not in the request.
func (mc *MenuController) UpdateMenu(c *gin.Context) {
	ctx := c.Request.Context()
	menuID := c.Param("menu_id")

	existing, err := mc.Menus.GetMenu(ctx, menuID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if existing == nil {
		utils.RespondError(c, http.StatusNotFound, ErrMenuNotFound)
		return
	}

	var req models.MenuUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	start, end := existing.StartDate, existing.EndDate
	if req.StartDate != nil {
		start = *req.StartDate
	}
	if req.EndDate != nil {
		end = *req.EndDate
	}
	if (req.StartDate != nil || req.EndDate != nil) && !start.Before(end) {
		utils.RespondError(c, http.StatusBadRequest, ErrMenuDateRange)
		return
	}

	if _, err := mc.Menus.UpdateMenu(ctx, existing.MenuID, req); err != nil {
		respondServiceError(c, err)
		return
	}
	menu, err := mc.Menus.GetMenu(ctx, existing.MenuID)
	if err != nil || menu == nil {
		respondServiceError(c, err)
		return
	}

	mc.Hub.Broadcast(kds.Message{Event: kds.EventMenuUpdate, Data: menu})
	utils.RespondJSON(c, http.StatusOK, "Menu updated successfully", menu)
}
