package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chirper/chirp-api/internal/api/metrics"
	"github.com/chirper/chirp-api/internal/core/domain"
	"github.com/chirper/chirp-api/internal/core/ports"
)

// ChirpHandler handles HTTP requests for chirp operations.
type ChirpHandler struct {
	service ports.ChirpService
}

func NewChirpHandler(service ports.ChirpService) *ChirpHandler {
	return &ChirpHandler{service: service}
}

// List handles GET / — the public timeline, newest first.
//
// @Summary      List all chirps
// @Tags         chirps
// @Produce      json
// @Success      200  {object}  listChirpsResponse
// @Failure      500  {object}  errorResponse
// @Router       / [get]
func (h *ChirpHandler) List(c echo.Context) error {
	chirps, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}

	data := make([]chirpResponse, 0, len(chirps))
	for _, chirp := range chirps {
		data = append(data, toChirpResponse(chirp))
	}
	return c.JSON(http.StatusOK, listChirpsResponse{Data: data})
}

// Create handles POST /chirps.
//
// @Summary      Create a new chirp
// @Tags         chirps
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      chirpRequest  true  "Chirp message"
// @Success      201   {object}  chirpResponse
// @Failure      400   {object}  errorResponse            "quota exceeded"
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  validationErrorsResponse
// @Router       /chirps [post]
func (h *ChirpHandler) Create(c echo.Context) error {
	actorID, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req chirpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	chirp, err := h.service.Create(c.Request().Context(), ports.CreateChirpInput{
		ActorID: actorID,
		Message: req.Message,
	})
	if err != nil {
		if errors.Is(err, domain.ErrQuotaExceeded) {
			metrics.QuotaRejectionsTotal.Inc()
		}
		return err
	}

	metrics.ChirpsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toChirpResponse(chirp))
}

// Edit handles GET /chirps/:id/edit — the chirp's current state for its owner.
//
// @Summary      Fetch a chirp for editing
// @Tags         chirps
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Chirp id"
// @Success      200  {object}  chirpResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /chirps/{id}/edit [get]
func (h *ChirpHandler) Edit(c echo.Context) error {
	actorID, err := ctxActor(c)
	if err != nil {
		return err
	}

	chirp, err := h.service.GetForEdit(c.Request().Context(), actorID, c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			metrics.ForbiddenTotal.WithLabelValues("edit").Inc()
		}
		return err
	}

	return c.JSON(http.StatusOK, toChirpResponse(chirp))
}

// Update handles PATCH /chirps/:id. Successful updates redirect to the
// timeline, mirroring the form-driven flow.
//
// @Summary      Update a chirp's message
// @Tags         chirps
// @Accept       json
// @Security     BearerAuth
// @Param        id    path      string        true  "Chirp id"
// @Param        body  body      chirpRequest  true  "New message"
// @Success      302   "redirect to /"
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  validationErrorsResponse
// @Router       /chirps/{id} [patch]
func (h *ChirpHandler) Update(c echo.Context) error {
	actorID, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req chirpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	_, err = h.service.Update(c.Request().Context(), ports.UpdateChirpInput{
		ActorID: actorID,
		ChirpID: c.Param("id"),
		Message: req.Message,
	})
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			metrics.ForbiddenTotal.WithLabelValues("update").Inc()
		}
		return err
	}

	metrics.ChirpsUpdatedTotal.Inc()
	return c.Redirect(http.StatusFound, "/")
}

// Delete handles DELETE /chirps/:id. Successful deletions redirect to the
// timeline.
//
// @Summary      Delete a chirp
// @Tags         chirps
// @Security     BearerAuth
// @Param        id  path  string  true  "Chirp id"
// @Success      302  "redirect to /"
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /chirps/{id} [delete]
func (h *ChirpHandler) Delete(c echo.Context) error {
	actorID, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.service.Destroy(c.Request().Context(), actorID, c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			metrics.ForbiddenTotal.WithLabelValues("delete").Inc()
		}
		return err
	}

	metrics.ChirpsDeletedTotal.Inc()
	return c.Redirect(http.StatusFound, "/")
}

func toChirpResponse(chirp *domain.Chirp) chirpResponse {
	return chirpResponse{
		ID:        chirp.ID,
		OwnerID:   chirp.OwnerID,
		Message:   chirp.Message,
		CreatedAt: chirp.CreatedAt,
		UpdatedAt: chirp.UpdatedAt,
	}
}
