package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"medizo/utils"
)

// ContactController relays customer messages to the support inbox.
type ContactController struct {
	email     *utils.EmailService
	recipient string
	logger    zerolog.Logger
}

func NewContactController(email *utils.EmailService, recipient string, logger zerolog.Logger) *ContactController {
	return &ContactController{email: email, recipient: recipient, logger: logger}
}

// Send accepts a contact-form message and delivers it asynchronously.
func (cc *ContactController) Send(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Subject string `json:"subject"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if body.Name == "" || body.Email == "" || body.Message == "" {
		utils.WriteError(w, http.StatusBadRequest, "Missing fields")
		return
	}

	if !cc.email.Enabled() || cc.recipient == "" {
		utils.WriteError(w, http.StatusServiceUnavailable, "Email delivery is not configured")
		return
	}

	subject := body.Subject
	if subject == "" {
		subject = "New contact message"
	}
	content := fmt.Sprintf("From: %s <%s>\n\n%s", body.Name, body.Email, body.Message)

	go func() {
		if err := cc.email.SendEmail(cc.recipient, subject, content); err != nil {
			cc.logger.Error().Err(err).Str("from", body.Email).Msg("send contact email")
		}
	}()

	utils.WriteJSON(w, http.StatusAccepted, map[string]string{"message": "Message received"})
}
