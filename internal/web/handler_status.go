package web

import "net/http"

// handleStatus reports whether the WhatsApp integration has every credential
// it needs, plus the webhook URL an operator should configure in Twilio.
// Purely informational; no side effects.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	configured := s.dispatcher != nil && s.service.Configured()

	msg := "WhatsApp integration requires environment variables to be set"
	if configured {
		msg = "WhatsApp integration is configured and ready"
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"configured": configured,
		"webhookUrl": s.webhookURL,
		"message":    msg,
	})
}
