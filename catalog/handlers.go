package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"greennest/models"
	"greennest/rdx"
	"greennest/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

const (
	plantImageDir      = "./static/plantpic"
	categoriesCacheKey = "plants:categories"
	categoriesCacheTTL = 10 * time.Minute
)

// Handler owns the plant catalog HTTP surface.
type Handler struct {
	Store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{Store: store}
}

// GET /api/plants
func (h *Handler) GetPlants(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	q := r.URL.Query()
	filter := ListFilter{
		Category: q.Get("category"),
		Search:   q.Get("search"),
		Sort:     q.Get("sort"),
	}
	skip, limit := utils.ParsePagination(r, 50, 200)

	plants, err := h.Store.List(ctx, filter, skip, limit)
	if err != nil {
		log.Println("GetPlants error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch plants")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"count":   len(plants),
		"data":    plants,
	})
}

// GetPlantByID serves GET /api/plants/:id. The static /categories path
// shares the segment, which httprouter cannot express, so it is dispatched
// here.
func (h *Handler) GetPlantByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if ps.ByName("id") == "categories" {
		h.GetCategories(w, r, ps)
		return
	}
	h.GetPlant(w, r, ps)
}

func (h *Handler) GetPlant(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	plant, err := h.Store.Resolve(ctx, ps.ByName("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Plant not found")
			return
		}
		log.Println("GetPlant error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch plant")
		return
	}

	utils.RespondWithData(w, http.StatusOK, plant)
}

// GET /api/plants/categories
func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if cached, err := rdx.RdxGet(categoriesCacheKey); err == nil && cached != "" {
		var categories []string
		if err := json.Unmarshal([]byte(cached), &categories); err == nil {
			utils.RespondWithData(w, http.StatusOK, categories)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	categories, err := h.Store.DistinctCategories(ctx)
	if err != nil {
		log.Println("GetCategories error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}

	if data, err := json.Marshal(categories); err == nil {
		if err := rdx.SetWithExpiry(categoriesCacheKey, string(data), categoriesCacheTTL); err != nil {
			log.Println("Failed to cache categories:", err)
		}
	}

	utils.RespondWithData(w, http.StatusOK, categories)
}

// POST /api/plants
func (h *Handler) CreatePlant(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var plant models.Plant
	if err := json.NewDecoder(r.Body).Decode(&plant); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if plant.PlantID == "" || plant.Name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "id and name are required")
		return
	}
	if plant.Price < 0 || plant.Stock < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "price and stock must be non-negative")
		return
	}
	if !models.ValidCategory(plant.Category) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid category")
		return
	}

	if _, err := h.Store.Resolve(ctx, plant.PlantID); err == nil {
		utils.RespondWithError(w, http.StatusConflict, "Plant already exists")
		return
	} else if !errors.Is(err, ErrNotFound) {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create plant")
		return
	}

	if plant.Image == "" {
		plant.Image = "/images/default-plant.jpg"
	}
	if plant.CareLevel == "" {
		plant.CareLevel = "Easy"
	}
	if plant.LightRequirement == "" {
		plant.LightRequirement = "Medium"
	}
	if plant.WateringFrequency == "" {
		plant.WateringFrequency = "Weekly"
	}
	now := time.Now()
	plant.CreatedAt = now
	plant.UpdatedAt = now

	if err := h.Store.Insert(ctx, plant); err != nil {
		log.Println("CreatePlant error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create plant")
		return
	}

	_ = rdx.RdxDel(categoriesCacheKey)

	utils.RespondWithData(w, http.StatusCreated, plant)
}

// plantUpdateRequest carries the fields an admin may edit; nil means leave as is.
type plantUpdateRequest struct {
	Name              *string  `json:"name"`
	Description       *string  `json:"description"`
	Price             *float64 `json:"price"`
	Category          *string  `json:"category"`
	Image             *string  `json:"image"`
	Stock             *int     `json:"stock"`
	Featured          *bool    `json:"featured"`
	CareLevel         *string  `json:"careLevel"`
	LightRequirement  *string  `json:"lightRequirement"`
	WateringFrequency *string  `json:"wateringFrequency"`
}

// PUT /api/plants/:id
func (h *Handler) UpdatePlant(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req plantUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	updateFields := bson.M{}
	if req.Name != nil {
		updateFields["name"] = *req.Name
	}
	if req.Description != nil {
		updateFields["description"] = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "price must be non-negative")
			return
		}
		updateFields["price"] = *req.Price
	}
	if req.Category != nil {
		if !models.ValidCategory(*req.Category) {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid category")
			return
		}
		updateFields["category"] = *req.Category
	}
	if req.Image != nil {
		updateFields["image"] = *req.Image
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "stock must be non-negative")
			return
		}
		updateFields["stock"] = *req.Stock
	}
	if req.Featured != nil {
		updateFields["featured"] = *req.Featured
	}
	if req.CareLevel != nil {
		updateFields["carelevel"] = *req.CareLevel
	}
	if req.LightRequirement != nil {
		updateFields["lightrequirement"] = *req.LightRequirement
	}
	if req.WateringFrequency != nil {
		updateFields["wateringfrequency"] = *req.WateringFrequency
	}

	if len(updateFields) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "No fields to update")
		return
	}

	updated, err := h.Store.Update(ctx, ps.ByName("id"), updateFields)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Plant not found")
			return
		}
		log.Println("UpdatePlant error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update plant")
		return
	}

	_ = rdx.RdxDel(categoriesCacheKey)

	utils.RespondWithData(w, http.StatusOK, updated)
}

// DELETE /api/plants/:id
func (h *Handler) DeletePlant(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.Store.Delete(ctx, ps.ByName("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Plant not found")
			return
		}
		log.Println("DeletePlant error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete plant")
		return
	}

	_ = rdx.RdxDel(categoriesCacheKey)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": "Plant deleted"})
}

// POST /api/plants/:id/image
func (h *Handler) UploadPlantImage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Image file missing")
		return
	}
	defer file.Close()

	if !utils.ValidateImageFileType(w, header) {
		return
	}

	filename, err := utils.SaveImageWithThumb(file, header, plantImageDir)
	if err != nil {
		log.Println("UploadPlantImage save error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Unable to save image")
		return
	}

	updated, err := h.Store.Update(ctx, ps.ByName("id"), bson.M{"image": "/static/plantpic/" + filename})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Plant not found")
			return
		}
		log.Println("UploadPlantImage update error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update plant image")
		return
	}

	utils.RespondWithData(w, http.StatusOK, updated)
}
