package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/shopassist/backend/internal/domain"
	"github.com/shopassist/backend/internal/usecase"
)

const (
	serviceName    = "shopassist-backend"
	serviceVersion = "1.0.0"
)

// Services groups the use cases served over HTTP
type Services struct {
	Recommender *usecase.RecommendationService
	Images      *usecase.ImageSearchService
	Chat        *usecase.ChatService
	Catalog     domain.CatalogRepository
}

// saveReporter is implemented by catalogs that persist in the background of a mutation
type saveReporter interface {
	LastSaveError() error
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	recommender    *usecase.RecommendationService
	images         *usecase.ImageSearchService
	chat           *usecase.ChatService
	catalog        domain.CatalogRepository
	maxUploadBytes int64
	logger         zerolog.Logger
}

// NewHandler creates a new HTTP handler. maxUploadBytes bounds image uploads.
func NewHandler(services Services, maxUploadBytes int64, logger zerolog.Logger) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 10 << 20
	}
	return &Handler{
		recommender:    services.Recommender,
		images:         services.Images,
		chat:           services.Chat,
		catalog:        services.Catalog,
		maxUploadBytes: maxUploadBytes,
		logger:         logger.With().Str("component", "http").Logger(),
	}
}

// queryRequest is the body of chat and recommendation requests
type queryRequest struct {
	Query string `json:"query" binding:"required"`
	Limit *int   `json:"limit,omitempty"`
}

// descriptionRequest is the body of an image description search
type descriptionRequest struct {
	Description string `json:"description" binding:"required"`
}

// productRequest is the body of a product creation request
type productRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Brand       string          `json:"brand"`
	ImageURL    string          `json:"image_url"`
	Tags        []string        `json:"tags"`
}

func timestamp() string {
	return time.Now().Format(time.RFC3339)
}

func errorBody(message string) gin.H {
	return gin.H{
		"error":     message,
		"timestamp": timestamp(),
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	response := gin.H{
		"status":    "healthy",
		"service":   serviceName,
		"version":   serviceVersion,
		"timestamp": timestamp(),
	}

	products, err := h.catalog.All(c.Request.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("health check could not read catalog")
		response["status"] = "degraded"
	} else {
		response["products"] = len(products)
	}

	if reporter, ok := h.catalog.(saveReporter); ok {
		if saveErr := reporter.LastSaveError(); saveErr != nil {
			response["status"] = "degraded"
			response["catalog_error"] = saveErr.Error()
		}
	}

	c.JSON(http.StatusOK, response)
}

// Chat answers a conversational query with a canned reply and recommendations
func (h *Handler) Chat(c *gin.Context) {
	query, _, ok := h.bindQuery(c)
	if !ok {
		return
	}

	reply, err := h.chat.Reply(c.Request.Context(), query)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondChat(c, reply)
}

// Recommend returns products for a free-text query
func (h *Handler) Recommend(c *gin.Context) {
	query, limit, ok := h.bindQuery(c)
	if !ok {
		return
	}

	result, err := h.recommender.Recommend(c.Request.Context(), query, limit)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products":  result.Products,
		"query":     query,
		"count":     len(result.Products),
		"strategy":  result.Strategy,
		"timestamp": timestamp(),
	})
}

// ImageSearch matches a text description of an image against the catalog
func (h *Handler) ImageSearch(c *gin.Context) {
	var req descriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("Description is required"))
		return
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		c.JSON(http.StatusBadRequest, errorBody("Description cannot be empty"))
		return
	}

	result, err := h.images.SearchByDescription(c.Request.Context(), description)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products":    result.Products,
		"description": description,
		"features":    result.Features,
		"count":       len(result.Products),
		"timestamp":   timestamp(),
	})
}

// ImageUpload matches an uploaded image against the catalog by its file name
func (h *Handler) ImageUpload(c *gin.Context) {
	file, ok := h.formImage(c)
	if !ok {
		return
	}

	products, err := h.images.SearchByFilename(c.Request.Context(), file.Filename)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products":  products,
		"count":     len(products),
		"timestamp": timestamp(),
	})
}

// AgentChat answers a query with generated text and recommendations for it
func (h *Handler) AgentChat(c *gin.Context) {
	query, _, ok := h.bindQuery(c)
	if !ok {
		return
	}

	reply, err := h.chat.AgentChat(c.Request.Context(), query)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondChat(c, reply)
}

// AgentImage describes an uploaded image with the generative vision model
func (h *Handler) AgentImage(c *gin.Context) {
	file, ok := h.formImage(c)
	if !ok {
		return
	}

	image, err := readUpload(file, h.maxUploadBytes)
	if err != nil {
		h.logger.Warn().Err(err).Str("filename", file.Filename).Msg("failed to read upload")
		c.JSON(http.StatusBadRequest, errorBody("Could not read uploaded image"))
		return
	}

	response, err := h.chat.AgentImage(c.Request.Context(), image, file.Header.Get("Content-Type"), c.PostForm("prompt"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"response":  response,
		"timestamp": timestamp(),
	})
}

// ListProducts returns the whole catalog
func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.catalog.All(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products":  products,
		"count":     len(products),
		"timestamp": timestamp(),
	})
}

// GetProduct returns a single product by id
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}

	product, err := h.catalog.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product":   product,
		"timestamp": timestamp(),
	})
}

// CreateProduct adds a product and returns it with its assigned id
func (h *Handler) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("Invalid product: name is required"))
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, errorBody("Product name cannot be empty"))
		return
	}
	if req.Price.IsNegative() {
		c.JSON(http.StatusBadRequest, errorBody("Product price cannot be negative"))
		return
	}

	product := domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Brand:       req.Brand,
		ImageURL:    req.ImageURL,
		Tags:        req.Tags,
	}
	id, err := h.catalog.Add(c.Request.Context(), product)
	if err != nil {
		h.respondError(c, err)
		return
	}

	created, err := h.catalog.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"product":   created,
		"timestamp": timestamp(),
	})
}

// UpdateProduct applies a partial update to a product
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}

	var update domain.ProductUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("Invalid product update"))
		return
	}
	if update.IsEmpty() {
		c.JSON(http.StatusBadRequest, errorBody("Update must set at least one field"))
		return
	}
	if update.Price != nil && update.Price.IsNegative() {
		c.JSON(http.StatusBadRequest, errorBody("Product price cannot be negative"))
		return
	}

	product, err := h.catalog.Update(c.Request.Context(), id, update)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product":   product,
		"timestamp": timestamp(),
	})
}

// DeleteProduct removes a product by id
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := productID(c)
	if !ok {
		return
	}

	if err := h.catalog.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"deleted":   id,
		"timestamp": timestamp(),
	})
}

// NotFound answers unknown routes
func (h *Handler) NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, errorBody("Endpoint not found"))
}

// bindQuery reads and validates a {query, limit?} body, answering 400 itself on failure
func (h *Handler) bindQuery(c *gin.Context) (string, int, bool) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("Query is required"))
		return "", 0, false
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		c.JSON(http.StatusBadRequest, errorBody("Query cannot be empty"))
		return "", 0, false
	}

	limit := 0
	if req.Limit != nil {
		if *req.Limit < 1 {
			c.JSON(http.StatusBadRequest, errorBody("Limit must be a positive integer"))
			return "", 0, false
		}
		limit = *req.Limit
	}
	return query, limit, true
}

// formImage returns the "image" part of a multipart upload, answering 400 itself on failure
func (h *Handler) formImage(c *gin.Context) (*multipart.FileHeader, bool) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("No image uploaded"))
		return nil, false
	}
	if file.Size > h.maxUploadBytes {
		c.JSON(http.StatusBadRequest, errorBody(fmt.Sprintf("Image exceeds the %d MB upload limit", h.maxUploadBytes>>20)))
		return nil, false
	}
	return file, true
}

func (h *Handler) respondChat(c *gin.Context, reply *domain.ChatReply) {
	response := gin.H{
		"response":  reply.Response,
		"timestamp": timestamp(),
	}
	if reply.Intent != "" {
		response["intent"] = reply.Intent
	}
	if len(reply.Products) > 0 {
		response["products"] = reply.Products
	}
	c.JSON(http.StatusOK, response)
}

// respondError maps domain errors to HTTP status codes
func (h *Handler) respondError(c *gin.Context, err error) {
	status := errorStatus(err)
	_ = c.Error(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		h.logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		message = "Internal server error"
	}
	c.JSON(status, errorBody(message))
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, domain.ErrServiceNotConfigured):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrExternalService):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func productID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, errorBody("Product id must be a positive integer"))
		return 0, false
	}
	return id, true
}

func readUpload(file *multipart.FileHeader, maxBytes int64) ([]byte, error) {
	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, maxBytes))
}
