package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shenikar/family_crisis_hub/internal/config"
	"github.com/shenikar/family_crisis_hub/internal/models"
	"github.com/shenikar/family_crisis_hub/internal/service"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	dashboard service.DashboardService
	logger    *logrus.Logger
	validate  *validator.Validate
	cfg       *config.Config
}

func NewHandler(dashboard service.DashboardService, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		dashboard: dashboard,
		logger:    logger,
		validate:  validator.New(),
		cfg:       cfg,
	}
}

// bindAndValidate разбирает тело запроса; при ошибке ответ уже записан
func (h *Handler) bindAndValidate(c *gin.Context, log *logrus.Entry, input any) bool {
	if err := c.ShouldBindJSON(input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// @Summary Get dashboard state
// @Description Get the full dashboard snapshot: view, loading flags, notifications, circle, crisis events and plan. Requires API key.
// @Tags Dashboard
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} service.DashboardState
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /dashboard [get]
func (h *Handler) getDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.dashboard.Snapshot())
}

// @Summary Switch dashboard view
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param view body ViewRequest true "View"
// @Success 200 {object} service.DashboardState
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Router /dashboard/view [put]
func (h *Handler) setView(c *gin.Context) {
	var input ViewRequest
	log := h.logger.WithField("method", "setView")
	if !h.bindAndValidate(c, log, &input) {
		return
	}

	if err := h.dashboard.SetView(service.View(input.View)); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, h.dashboard.Snapshot())
}

// @Summary Switch crisis tab
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param tab body TabRequest true "Tab"
// @Success 200 {object} service.DashboardState
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Router /dashboard/tab [put]
func (h *Handler) setTab(c *gin.Context) {
	var input TabRequest
	log := h.logger.WithField("method", "setTab")
	if !h.bindAndValidate(c, log, &input) {
		return
	}

	if err := h.dashboard.SetCrisisTab(service.CrisisTab(input.Tab)); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, h.dashboard.Snapshot())
}

// @Summary Create a family circle
// @Description Create a family circle and start status updates for it. Replaces the current circle. Requires API key.
// @Tags Circle
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param circle body CreateCircleRequest true "Circle creation request"
// @Success 201 {object} models.Circle
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /circle [post]
func (h *Handler) createCircle(c *gin.Context) {
	var input CreateCircleRequest
	log := h.logger.WithField("method", "createCircle")
	if !h.bindAndValidate(c, log, &input) {
		return
	}

	circle, err := h.dashboard.CreateCircle(c.Request.Context(), input.Name, DTOToMemberSeeds(input.Members))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, circle)
}

// @Summary Exit the family circle
// @Description Stop status updates and clear the circle and its plan. Requires API key.
// @Tags Circle
// @Security ApiKeyAuth
// @Success 204 "No Content"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /circle [delete]
func (h *Handler) exitCircle(c *gin.Context) {
	log := h.logger.WithField("method", "exitCircle")

	if err := h.dashboard.Exit(c.Request.Context()); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Update a member
// @Description Partially update a member's status, message, location or sharing flag. Requires API key.
// @Tags Circle
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Member ID"
// @Param member body UpdateMemberRequest true "Member patch"
// @Success 200 {object} models.Member
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 404 {object} map[string]string "Member not found"
// @Failure 409 {object} map[string]string "No family circle"
// @Router /circle/members/{id} [patch]
func (h *Handler) updateMember(c *gin.Context) {
	var input UpdateMemberRequest
	log := h.logger.WithField("method", "updateMember").WithField("id", c.Param("id"))
	if !h.bindAndValidate(c, log, &input) {
		return
	}
	if input.Location != nil {
		if err := h.validate.Struct(input.Location); err != nil {
			log.WithError(err).Warn("Validation failed")
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	member, err := h.dashboard.UpdateMember(c.Request.Context(), c.Param("id"), DTOToMemberPatch(input))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

// @Summary Toggle location sharing
// @Tags Circle
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Member ID"
// @Success 200 {object} models.Member
// @Failure 404 {object} map[string]string "Member not found"
// @Router /circle/members/{id}/location-sharing [post]
func (h *Handler) toggleLocationSharing(c *gin.Context) {
	log := h.logger.WithField("method", "toggleLocationSharing").WithField("id", c.Param("id"))

	member, err := h.dashboard.ToggleLocationSharing(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

// @Summary Add a voice note
// @Description Attach a recorded voice note to a member. Not available offline. Requires API key.
// @Tags Circle
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Member ID"
// @Param note body VoiceNoteRequest true "Voice note"
// @Success 201 {object} models.Member
// @Failure 404 {object} map[string]string "Member not found"
// @Failure 503 {object} map[string]string "Offline"
// @Router /circle/members/{id}/voice-notes [post]
func (h *Handler) addVoiceNote(c *gin.Context) {
	var input VoiceNoteRequest
	log := h.logger.WithField("method", "addVoiceNote").WithField("id", c.Param("id"))
	if !h.bindAndValidate(c, log, &input) {
		return
	}

	member, err := h.dashboard.AddVoiceNote(c.Request.Context(), c.Param("id"), input.URL)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, member)
}

// @Summary Delete a voice note
// @Tags Circle
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Member ID"
// @Param noteId path string true "Voice note ID"
// @Success 200 {object} models.Member
// @Failure 404 {object} map[string]string "Member or note not found"
// @Failure 503 {object} map[string]string "Offline"
// @Router /circle/members/{id}/voice-notes/{noteId} [delete]
func (h *Handler) deleteVoiceNote(c *gin.Context) {
	log := h.logger.WithField("method", "deleteVoiceNote").WithFields(logrus.Fields{
		"id":      c.Param("id"),
		"note_id": c.Param("noteId"),
	})

	member, err := h.dashboard.DeleteVoiceNote(c.Request.Context(), c.Param("id"), c.Param("noteId"))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

// @Summary Submit an SMS check-in
// @Description Parse a free-text message with AI and apply the resulting status to the member. Requires API key.
// @Tags Check-in
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param checkin body CheckinRequest true "Check-in"
// @Success 200 {object} models.Member
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 502 {object} map[string]string "AI response could not be used"
// @Failure 503 {object} map[string]string "Offline"
// @Router /checkins [post]
func (h *Handler) submitCheckin(c *gin.Context) {
	var input CheckinRequest
	log := h.logger.WithField("method", "submitCheckin")
	if !h.bindAndValidate(c, log, &input) {
		return
	}

	member, err := h.dashboard.SubmitCheckin(c.Request.Context(), input.MemberID, input.Message)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

// @Summary Generate an AI action plan
// @Description Run the multi-agent plan for the current circle and crisis events. Only one generation runs at a time. Requires API key.
// @Tags Plan
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} models.MultiAgentPlan
// @Failure 409 {object} map[string]string "Generation already in progress"
// @Failure 502 {object} map[string]string "AI response could not be used"
// @Failure 503 {object} map[string]string "Offline"
// @Router /plan [post]
func (h *Handler) generatePlan(c *gin.Context) {
	log := h.logger.WithField("method", "generatePlan")

	plan, err := h.dashboard.GeneratePlan(c.Request.Context())
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// @Summary Clear the AI action plan
// @Tags Plan
// @Security ApiKeyAuth
// @Success 204 "No Content"
// @Router /plan [delete]
func (h *Handler) clearPlan(c *gin.Context) {
	log := h.logger.WithField("method", "clearPlan")

	if err := h.dashboard.ClearPlan(c.Request.Context()); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Assess a route to a meetup point
// @Description Ask the AI for route viability from a member's location to a meetup point of the current plan. Falls back to a non-viable route on failure. Requires API key.
// @Tags Plan
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param route body RouteRequest true "Route request"
// @Success 200 {object} models.RouteInfo
// @Failure 400 {object} map[string]string "Unknown meetup point or hidden location"
// @Failure 404 {object} map[string]string "Member not found"
// @Router /plan/routes [post]
func (h *Handler) assessRoute(c *gin.Context) {
	var input RouteRequest
	log := h.logger.WithField("method", "assessRoute")
	if !h.bindAndValidate(c, log, &input) {
		return
	}

	route, err := h.dashboard.AssessRoute(c.Request.Context(), input.MemberID, input.MeetupRank)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, route)
}

// @Summary Refresh crisis events
// @Description Re-fetch hazards for the current location. Failures degrade to an empty list. Requires API key.
// @Tags Crisis
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} CrisisRefreshResponse
// @Router /crisis-events/refresh [post]
func (h *Handler) refreshCrisisEvents(c *gin.Context) {
	outcome := h.dashboard.RefreshCrisisData(c.Request.Context())
	c.JSON(http.StatusOK, CrisisRefreshResponse{Outcome: outcome, Events: h.dashboard.Snapshot().Events})
}

// @Summary Report device location
// @Description Report the device position or a geolocation denial. Requires API key.
// @Tags Crisis
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param location body ReportLocationRequest true "Location"
// @Success 200 {object} CrisisRefreshResponse
// @Success 202 "Denial accepted"
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Router /location [post]
func (h *Handler) reportLocation(c *gin.Context) {
	var input ReportLocationRequest
	log := h.logger.WithField("method", "reportLocation")
	if !h.bindAndValidate(c, log, &input) {
		return
	}

	if input.Denied {
		h.dashboard.DenyLocation()
		c.Status(http.StatusAccepted)
		return
	}

	loc := models.Coordinates{Lat: input.Lat, Lng: input.Lng, Accuracy: input.Accuracy}
	outcome := h.dashboard.ReportLocation(c.Request.Context(), loc)
	c.JSON(http.StatusOK, CrisisRefreshResponse{Outcome: outcome, Events: h.dashboard.Snapshot().Events})
}

// @Summary Report a connectivity transition
// @Tags System
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param connectivity body ConnectivityRequest true "Connectivity"
// @Success 200 {object} ConnectivityResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Router /connectivity [post]
func (h *Handler) setConnectivity(c *gin.Context) {
	var input ConnectivityRequest
	log := h.logger.WithField("method", "setConnectivity")
	if !h.bindAndValidate(c, log, &input) {
		return
	}

	changed := h.dashboard.SetOnline(c.Request.Context(), *input.Online)
	c.JSON(http.StatusOK, ConnectivityResponse{Online: *input.Online, Changed: changed})
}

// @Summary Get the map view
// @Description Markers for members, hazards and meetup points, with a text list when the map is unavailable. Requires API key.
// @Tags Crisis
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} mapview.View
// @Router /map [get]
func (h *Handler) getMap(c *gin.Context) {
	c.JSON(http.StatusOK, h.dashboard.MapView())
}

// @Summary Get the preparedness plan
// @Tags Preparedness
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} PreparednessResponse
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /preparedness [get]
func (h *Handler) getPreparedness(c *gin.Context) {
	log := h.logger.WithField("method", "getPreparedness")

	plan, err := h.dashboard.Preparedness(c.Request.Context())
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToPreparednessResponse(plan))
}

// @Summary Toggle a preparedness item
// @Description Set or toggle an item's status. The change is reverted if it cannot be saved. Not available offline. Requires API key.
// @Tags Preparedness
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Item ID"
// @Param item body ToggleItemRequest false "Target status"
// @Success 200 {object} PreparednessResponse
// @Failure 404 {object} map[string]string "Item not found"
// @Failure 503 {object} map[string]string "Offline"
// @Router /preparedness/items/{id} [put]
func (h *Handler) toggleItem(c *gin.Context) {
	var input ToggleItemRequest
	log := h.logger.WithField("method", "toggleItem").WithField("id", c.Param("id"))
	if c.Request.ContentLength != 0 && !h.bindAndValidate(c, log, &input) {
		return
	}

	plan, err := h.dashboard.TogglePreparednessItem(c.Request.Context(), c.Param("id"), models.ItemStatus(input.Status))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToPreparednessResponse(plan))
}

// @Summary Dismiss a notification
// @Tags Dashboard
// @Security ApiKeyAuth
// @Param id path string true "Notification ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Notification not found"
// @Router /notifications/{id} [delete]
func (h *Handler) dismissNotification(c *gin.Context) {
	if !h.dashboard.DismissNotification(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Get the theme
// @Tags Dashboard
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} ThemeResponse
// @Router /theme [get]
func (h *Handler) getTheme(c *gin.Context) {
	c.JSON(http.StatusOK, ThemeResponse{Theme: string(h.dashboard.Theme())})
}

// @Summary Set the theme
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param theme body ThemeRequest true "Theme"
// @Success 200 {object} ThemeResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Router /theme [put]
func (h *Handler) setTheme(c *gin.Context) {
	var input ThemeRequest
	log := h.logger.WithField("method", "setTheme")
	if !h.bindAndValidate(c, log, &input) {
		return
	}

	if err := h.dashboard.SetTheme(c.Request.Context(), service.Theme(input.Theme)); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ThemeResponse{Theme: input.Theme})
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
