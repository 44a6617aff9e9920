package listings

import (
	"errors"
	"net/url"

	"listing-manager/core/encoder"
	"listing-manager/core/logger"
	"listing-manager/core/reconcile"
	"listing-manager/core/sku"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for listings.
type Handler struct {
	service  *Service
	validate *validator.Validate
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterStructValidation(validatePrice, CreateListingDTO{})

	return &Handler{
		service:  service,
		validate: validate,
	}
}

// validatePrice rejects listings without any keys or metal.
func validatePrice(sl validator.StructLevel) {
	listing := sl.Current().Interface().(CreateListingDTO)
	if listing.Currencies.IsZero() {
		sl.ReportError(listing.Currencies, "Currencies", "currencies", "required", "")
	}
}

// RegisterRoutes registers the listing routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/listings")
	group.Post("/", h.HandleCreate)
	group.Delete("/", h.HandleRemove)
	group.Delete("/all", h.HandleRemoveAll)
	group.Get("/sell/:sku", h.HandleGetSellInstance)
	group.Get("/queue", h.HandleQueue)
	group.Post("/flush", h.HandleFlush)
	group.Post("/encode", h.HandleEncode)
}

// HandleCreate enqueues listings.
// @Summary Create Listings
// @Description Validates, encodes and enqueues listings. Unencodable listings are dropped silently.
// @Tags listings
// @Accept json
// @Produce json
// @Param body body CreateListingsRequest true "Listings"
// @Success 202 {object} map[string]interface{} "Accepted"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 503 {object} map[string]string "Engine not ready"
// @Router /listings [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var body CreateListingsRequest
	if details, ok := h.bind(c, &body); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(details)
	}

	n, err := h.service.Create(body.Listings)
	if err != nil {
		return h.engineError(c, l, err)
	}

	l.Info("Listings enqueued", zap.Int("count", n))
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"submitted": n})
}

// HandleRemove enqueues listing removals.
// @Summary Remove Listings
// @Description Enqueues removals by SKU, instance id or encoded item.
// @Tags listings
// @Accept json
// @Produce json
// @Param body body RemoveListingsRequest true "Listings"
// @Success 202 {object} map[string]interface{} "Accepted"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 503 {object} map[string]string "Engine not ready"
// @Router /listings [delete]
func (h *Handler) HandleRemove(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var body RemoveListingsRequest
	if details, ok := h.bind(c, &body); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(details)
	}

	n, err := h.service.Remove(body.Listings)
	if err != nil {
		return h.engineError(c, l, err)
	}

	l.Info("Listing removals enqueued", zap.Int("count", n))
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"submitted": n})
}

// HandleRemoveAll removes every desired listing.
// @Summary Remove All Listings
// @Description Deletes every desired listing known to the listing service and clears the sell registry.
// @Tags listings
// @Produce json
// @Success 200 {object} map[string]string "Removed"
// @Failure 502 {object} map[string]string "Listing service error"
// @Router /listings/all [delete]
func (h *Handler) HandleRemoveAll(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Removing all listings")

	if err := h.service.RemoveAll(c.Context()); err != nil {
		l.Error("Remove all listings failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "removed"})
}

// HandleGetSellInstance returns the registered sell listing instance id.
// @Summary Get Sell Listing Instance
// @Description Returns the instance id of the active sell listing for an item type.
// @Tags listings
// @Produce json
// @Param sku path string true "SKU (e.g. '5021;6')"
// @Success 200 {object} map[string]string "Instance"
// @Failure 404 {object} map[string]string "Not registered"
// @Router /listings/sell/{sku} [get]
func (h *Handler) HandleGetSellInstance(c *fiber.Ctx) error {
	raw, err := url.PathUnescape(c.Params("sku"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	key, err := sku.Normalize(raw)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	id, ok := h.service.SellInstance(key)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no sell listing registered", "sku": key})
	}
	return c.JSON(fiber.Map{"sku": key, "id": id})
}

// HandleQueue reports the engine state.
// @Summary Queue Status
// @Tags listings
// @Produce json
// @Success 200 {object} QueueReport
// @Router /listings/queue [get]
func (h *Handler) HandleQueue(c *fiber.Ctx) error {
	return c.JSON(h.service.Queue())
}

// HandleFlush flushes the queue immediately.
// @Summary Flush Queue
// @Description Dispatches one batch of creates and deletes now. Failed batches stay queued.
// @Tags listings
// @Produce json
// @Success 200 {object} FlushReport
// @Router /listings/flush [post]
func (h *Handler) HandleFlush(c *fiber.Ctx) error {
	report := h.service.Flush(c.Context())
	if report.CreateError != "" || report.DeleteError != "" {
		logger.WithRayID(h.service.logger, c).Warn("Manual flush had failures",
			zap.String("create_error", report.CreateError),
			zap.String("delete_error", report.DeleteError))
	}
	return c.JSON(report)
}

// HandleEncode previews the encoded item.
// @Summary Encode SKU
// @Description Returns the item payload the listing service would receive.
// @Tags listings
// @Accept json
// @Produce json
// @Param body body EncodeRequest true "SKU"
// @Success 200 {object} encoder.Item
// @Failure 400 {object} map[string]string "Malformed SKU"
// @Failure 404 {object} map[string]string "Unknown defindex"
// @Router /listings/encode [post]
func (h *Handler) HandleEncode(c *fiber.Ctx) error {
	var body EncodeRequest
	if details, ok := h.bind(c, &body); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(details)
	}

	item, err := h.service.Encode(body.SKU)
	switch {
	case errors.Is(err, encoder.ErrItemMetadataNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case err != nil:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(item)
}

// bind parses and validates the body. On failure it returns the error payload.
func (h *Handler) bind(c *fiber.Ctx, out any) (fiber.Map, bool) {
	if err := c.BodyParser(out); err != nil {
		return fiber.Map{"error": "invalid JSON body", "details": err.Error()}, false
	}
	if err := h.validate.Struct(out); err != nil {
		return fiber.Map{"error": "validation failed", "details": validationDetails(err)}, false
	}
	return nil, true
}

func (h *Handler) engineError(c *fiber.Ctx, l *zap.Logger, err error) error {
	if errors.Is(err, reconcile.ErrNotReady) {
		l.Warn("Listing engine not ready")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}
	l.Error("Listing engine error", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

func validationDetails(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	details := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, fe.Namespace()+": "+fe.Tag())
	}
	return details
}
