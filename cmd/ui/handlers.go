package main

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"thriftbot-go/internal/models"
)

// APIHandler holds dependencies for the API endpoints.
type APIHandler struct {
	log *zap.Logger
	db  *gorm.DB
}

// NewAPIHandler creates a new APIHandler.
func NewAPIHandler(log *zap.Logger, db *gorm.DB) *APIHandler {
	return &APIHandler{log: log, db: db}
}

// ItemsHandler returns inventory records, newest first, optionally filtered
// by ?status=.
func (h *APIHandler) ItemsHandler(w http.ResponseWriter, r *http.Request) {
	q := h.db.Order("created_at desc")
	if status := r.URL.Query().Get("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var items []models.InventoryItem
	if err := q.Find(&items).Error; err != nil {
		h.log.Error("Failed to get items from database", zap.Error(err))
		http.Error(w, "Failed to get items", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}

// StatsDetail holds sales statistics for a given period.
type StatsDetail struct {
	ItemsSold       int64   `json:"items_sold"`
	ProfitableSales int64   `json:"profitable_sales"`
	TotalProfit     float64 `json:"total_profit"`
	TotalFees       float64 `json:"total_fees"`
}

// StatisticsResponse is the structure for the /api/statistics endpoint.
type StatisticsResponse struct {
	Since30d  StatsDetail `json:"since_30d"`
	AllTime   StatsDetail `json:"all_time"`
	Listed    int64       `json:"listed"`
	Inventory int64       `json:"inventory"`
}

// StatisticsHandler calculates and returns sales statistics.
func (h *APIHandler) StatisticsHandler(w http.ResponseWriter, r *http.Request) {
	var sold []models.InventoryItem
	if err := h.db.Where("status = ?", models.StatusSold).Find(&sold).Error; err != nil {
		h.log.Error("Failed to get sold items for statistics", zap.Error(err))
		http.Error(w, "Failed to calculate statistics", http.StatusInternalServerError)
		return
	}

	since30d := time.Now().AddDate(0, 0, -30)
	stats30d := StatsDetail{}
	statsAllTime := StatsDetail{}

	for _, item := range sold {
		statsAllTime.ItemsSold++
		statsAllTime.TotalProfit += item.NetProfit
		statsAllTime.TotalFees += item.TotalFees
		if item.NetProfit > 0 {
			statsAllTime.ProfitableSales++
		}

		if item.SoldAt != nil && item.SoldAt.After(since30d) {
			stats30d.ItemsSold++
			stats30d.TotalProfit += item.NetProfit
			stats30d.TotalFees += item.TotalFees
			if item.NetProfit > 0 {
				stats30d.ProfitableSales++
			}
		}
	}

	response := StatisticsResponse{
		Since30d: stats30d,
		AllTime:  statsAllTime,
	}
	h.db.Model(&models.InventoryItem{}).Where("status = ?", models.StatusListed).Count(&response.Listed)
	h.db.Model(&models.InventoryItem{}).Where("status = ?", models.StatusInventory).Count(&response.Inventory)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
