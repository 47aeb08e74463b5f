package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-management/kds"
	"github.com/yeremiapane/restaurant-management/models"
	"github.com/yeremiapane/restaurant-management/services"
	"github.com/yeremiapane/restaurant-management/utils"
)

var ErrFoodNotFound = errors.New("Food item not found.")

type FoodController struct {
	Foods *services.FoodService
	Menus *services.MenuService
	Hub   *kds.Hub
}

func NewFoodController(svc *services.Services, hub *kds.Hub) *FoodController {
	RegisterValidators()
	if hub == nil {
		hub = kds.Default()
	}
	return &FoodController{Foods: svc.Foods, Menus: svc.Menus, Hub: hub}
}

type createFoodRequest struct {
	Name      string  `json:"name" binding:"required,min=2,max=100"`
	Price     float64 `json:"price" binding:"required,gt=0"`
	FoodImage *string `json:"food_image"`
	MenuID    string  `json:"menu_id" binding:"required"`
}

func (fc *FoodController) GetAllFoods(c *gin.Context) {
	p, err := parsePagination(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	ctx := c.Request.Context()
	total, err := fc.Foods.CountFoods(ctx)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	foods, err := fc.Foods.GetFoods(ctx, p.Skip(), p.PerPage, nil)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of food items", listResponse("food_items", foods, total, p))
}

func (fc *FoodController) GetFoodByID(c *gin.Context) {
	food, err := fc.Foods.GetFood(c.Request.Context(), c.Param("food_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if food == nil {
		utils.RespondError(c, http.StatusNotFound, ErrFoodNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Food item detail", food)
}

func (fc *FoodController) CreateFood(c *gin.Context) {
	ctx := c.Request.Context()

	var req createFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	menu, err := fc.Menus.GetMenu(ctx, req.MenuID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if menu == nil {
		utils.RespondError(c, http.StatusBadRequest, ErrMenuNotFound)
		return
	}

	food := models.Food{
		Name:      req.Name,
		Price:     req.Price,
		FoodImage: req.FoodImage,
		MenuID:    menu.MenuID,
	}
	if _, err := fc.Foods.CreateFood(ctx, &food); err != nil {
		respondServiceError(c, err)
		return
	}

	fc.Hub.Broadcast(kds.Message{Event: kds.EventFoodCreate, Data: food})
	utils.RespondJSON(c, http.StatusCreated, "Food item created successfully", food)
}

func (fc *FoodController) UpdateFood(c *gin.Context) {
	ctx := c.Request.Context()

	existing, err := fc.Foods.GetFood(ctx, c.Param("food_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if existing == nil {
		utils.RespondError(c, http.StatusNotFound, ErrFoodNotFound)
		return
	}

	var req models.FoodUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.MenuID != nil {
		menu, err := fc.Menus.GetMenu(ctx, *req.MenuID)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		if menu == nil {
			utils.RespondError(c, http.StatusBadRequest, ErrMenuNotFound)
			return
		}
		req.MenuID = &menu.MenuID
	}

	if _, err := fc.Foods.UpdateFood(ctx, existing.FoodID, req); err != nil {
		respondServiceError(c, err)
		return
	}
	food, err := fc.Foods.GetFood(ctx, existing.FoodID)
	if err != nil || food == nil {
		respondServiceError(c, err)
		return
	}

	fc.Hub.Broadcast(kds.Message{Event: kds.EventFoodUpdate, Data: food})
	utils.RespondJSON(c, http.StatusOK, "Food item updated successfully", food)
}
