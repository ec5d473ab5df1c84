package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shenikar/event_dispatch/internal/config"
	"github.com/shenikar/event_dispatch/internal/models"
	"github.com/shenikar/event_dispatch/internal/service"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	eventService      service.EventService
	incidentService   service.IncidentService
	assignmentService service.AssignmentService
	locations         LocationReader
	ws                http.Handler
	logger            *logrus.Logger
	validate          *validator.Validate
	cfg               *config.Config
}

// NewHandler собирает обработчики REST API; ws - транспорт хаба, nil отключает маршрут /ws
func NewHandler(
	eventService service.EventService,
	incidentService service.IncidentService,
	assignmentService service.AssignmentService,
	locations LocationReader,
	ws http.Handler,
	logger *logrus.Logger,
	cfg *config.Config,
) *Handler {
	return &Handler{
		eventService:      eventService,
		incidentService:   incidentService,
		assignmentService: assignmentService,
		locations:         locations,
		ws:                ws,
		logger:            logger,
		validate:          validator.New(),
		cfg:               cfg,
	}
}

// success отвечает конвертом {"status":"success", key: value}
func success(c *gin.Context, code int, key string, value any) {
	body := gin.H{"status": "success"}
	if key != "" {
		body[key] = value
	}
	c.JSON(code, body)
}

func failure(c *gin.Context, code int, message string) {
	c.JSON(code, ErrorResponse{Status: "error", Message: message})
}

// statusFor сопоставляет класс доменной ошибки с HTTP-статусом
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrEventInactive), errors.Is(err, models.ErrConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// serviceError пишет ответ по ошибке сервиса; детали внутренних ошибок клиенту не отдаются
func (h *Handler) serviceError(c *gin.Context, log *logrus.Entry, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		log.WithError(err).Error("Request failed")
		failure(c, code, "internal server error")
		return
	}
	log.WithError(err).Warn("Request rejected")
	failure(c, code, err.Error())
}

// bind разбирает и проверяет тело запроса; при ошибке ответ уже записан
func (h *Handler) bind(c *gin.Context, log *logrus.Entry, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		failure(c, http.StatusBadRequest, "invalid request body")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		log.WithError(err).Warn("Validation failed")
		failure(c, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// pathID читает положительный целочисленный параметр пути
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		failure(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
