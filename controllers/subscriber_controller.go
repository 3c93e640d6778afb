package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ahsan-alam-500/tonycustom/models"
	"github.com/ahsan-alam-500/tonycustom/repository"
)

// SubscriberController handles newsletter signups.
type SubscriberController struct {
	contacts repository.ContactRepository
	logger   *zap.Logger
}

// NewSubscriberController creates a new SubscriberController.
func NewSubscriberController(contacts repository.ContactRepository, logger *zap.Logger) *SubscriberController {
	return &SubscriberController{contacts: contacts, logger: logger}
}

// Store handles POST /subscribe.
func (sc *SubscriberController) Store(c *gin.Context) {
	var req models.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	exists, err := sc.contacts.SubscriberExists(c.Request.Context(), email)
	if err != nil {
		sc.logger.Error("Failed to check subscriber", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to subscribe")
		return
	}
	if exists {
		respondValidation(c, map[string]string{"email": "is already subscribed"})
		return
	}

	sub := &models.Subscriber{Email: email}
	if err := sc.contacts.CreateSubscriber(c.Request.Context(), sub); err != nil {
		sc.logger.Error("Failed to save subscriber", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to subscribe")
		return
	}
	respondSuccess(c, http.StatusCreated, "Subscribed successfully", gin.H{"subscriber": sub})
}

// Index handles GET /subscribers.
func (sc *SubscriberController) Index(c *gin.Context) {
	subs, err := sc.contacts.FindAllSubscribers(c.Request.Context())
	if err != nil {
		sc.logger.Error("Failed to fetch subscribers", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to fetch subscribers")
		return
	}
	respondSuccess(c, http.StatusOK, "Subscribers fetched successfully", gin.H{"subscribers": subs})
}
