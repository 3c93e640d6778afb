package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ahsan-alam-500/tonycustom/models"
	"github.com/ahsan-alam-500/tonycustom/repository"
	"github.com/ahsan-alam-500/tonycustom/services"
)

// ContactController handles contact form submissions.
type ContactController struct {
	contacts repository.ContactRepository
	mailer   services.EmailSender
	logger   *zap.Logger
}

// NewContactController creates a new ContactController.
func NewContactController(contacts repository.ContactRepository, mailer services.EmailSender, logger *zap.Logger) *ContactController {
	return &ContactController{contacts: contacts, mailer: mailer, logger: logger}
}

// Store handles POST /contact.
func (cc *ContactController) Store(c *gin.Context) {
	var req models.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	contact := &models.Contact{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := cc.contacts.CreateContact(c.Request.Context(), contact); err != nil {
		cc.logger.Error("Failed to save contact message", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to send message")
		return
	}

	// Notification failure must not fail the submission.
	if err := cc.mailer.SendContactNotification(contact); err != nil {
		cc.logger.Warn("Failed to send contact notification",
			zap.String("contact_id", contact.ID.String()), zap.Error(err))
	}

	respondSuccess(c, http.StatusCreated, "Message sent successfully", gin.H{"contact": contact})
}

// Index handles GET /contacts.
func (cc *ContactController) Index(c *gin.Context) {
	contacts, err := cc.contacts.FindAllContacts(c.Request.Context())
	if err != nil {
		cc.logger.Error("Failed to fetch contacts", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to fetch contacts")
		return
	}
	respondSuccess(c, http.StatusOK, "Contacts fetched successfully", gin.H{"contacts": contacts})
}

// Show handles GET /contacts/:id.
func (cc *ContactController) Show(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid contact id")
		return
	}

	contact, err := cc.contacts.FindContactByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Contact not found")
			return
		}
		cc.logger.Error("Failed to fetch contact", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to fetch contact")
		return
	}
	respondSuccess(c, http.StatusOK, "Contact fetched successfully", gin.H{"contact": contact})
}

// Destroy handles DELETE /contacts/:id.
func (cc *ContactController) Destroy(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid contact id")
		return
	}

	if _, err := cc.contacts.FindContactByID(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Contact not found")
			return
		}
		cc.logger.Error("Failed to fetch contact", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to delete contact")
		return
	}

	if err := cc.contacts.DeleteContact(c.Request.Context(), id); err != nil {
		cc.logger.Error("Failed to delete contact", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to delete contact")
		return
	}
	respondSuccess(c, http.StatusOK, "Contact deleted successfully", nil)
}
