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

var ErrTableNotFound = errors.New("Table not found.")

type TableController struct {
	Tables *services.TableService
	Hub    *kds.Hub
}

func NewTableController(svc *services.Services, hub *kds.Hub) *TableController {
	RegisterValidators()
	if hub == nil {
		hub = kds.Default()
	}
	return &TableController{Tables: svc.Tables, Hub: hub}
}

type createTableRequest struct {
	TableNumber    int `json:"table_number" binding:"required,gt=0"`
	NumberOfGuests int `json:"number_of_guests" binding:"required,min=1,max=20"`
}

// GetAllTables -> tables ordered by table_number
func (tc *TableController) GetAllTables(c *gin.Context) {
	p, err := parsePagination(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	ctx := c.Request.Context()
	total, err := tc.Tables.CountTables(ctx)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	tables, err := tc.Tables.GetTables(ctx, p.Skip(), p.PerPage, nil)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of tables", listResponse("tables", tables, total, p))
}

func (tc *TableController) GetTableByID(c *gin.Context) {
	table, err := tc.Tables.GetTable(c.Request.Context(), c.Param("table_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if table == nil {
		utils.RespondError(c, http.StatusNotFound, ErrTableNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

func (tc *TableController) CreateTable(c *gin.Context) {
	var req createTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table := models.Table{
		TableNumber:    req.TableNumber,
		NumberOfGuests: req.NumberOfGuests,
	}
	if _, err := tc.Tables.CreateTable(c.Request.Context(), &table); err != nil {
		respondServiceError(c, err)
		return
	}

	tc.Hub.Broadcast(kds.Message{Event: kds.EventTableCreate, Data: table})
	utils.InfoLogger.WithField("table_id", table.TableID).Infof("New table created: %d", table.TableNumber)
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

func (tc *TableController) UpdateTable(c *gin.Context) {
	ctx := c.Request.Context()

	existing, err := tc.Tables.GetTable(ctx, c.Param("table_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if existing == nil {
		utils.RespondError(c, http.StatusNotFound, ErrTableNotFound)
		return
	}

	var req models.TableUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if _, err := tc.Tables.UpdateTable(ctx, existing.TableID, req); err != nil {
		respondServiceError(c, err)
		return
	}
	table, err := tc.Tables.GetTable(ctx, existing.TableID)
	if err != nil || table == nil {
		respondServiceError(c, err)
		return
	}

	tc.Hub.Broadcast(kds.Message{Event: kds.EventTableUpdate, Data: table})
	utils.RespondJSON(c, http.StatusOK, "Table updated successfully", table)
}
