package web

import (
	"net/http"
	"strconv"
)

// handleWebhook serves inbound Twilio WhatsApp events. Twilio posts a
// form-encoded payload with the sender address, an attachment count, and the
// first attachment URL when one exists.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if s.dispatcher == nil || !s.service.Configured() {
		http.Error(w, "WhatsApp integration not configured", http.StatusServiceUnavailable)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	from := r.FormValue("From")
	if from == "" {
		http.Error(w, "Missing sender information", http.StatusBadRequest)
		return
	}

	numMedia, _ := strconv.Atoi(r.FormValue("NumMedia"))
	mediaURL := r.FormValue("MediaUrl0")

	ctx := r.Context()

	// No image: welcome the sender and stop. The generation pipeline is never
	// invoked for a no-image event.
	if numMedia == 0 || mediaURL == "" {
		if err := s.dispatcher.SendWelcome(ctx, from); err != nil {
			s.logger.Error("failed to send welcome message", "from", from, "error", err)
			http.Error(w, "Error", http.StatusInternalServerError)
			return
		}
		s.respondOK(w)
		return
	}

	result, err := s.service.GenerateFromMediaURL(ctx, mediaURL)
	if err != nil {
		s.logger.Error("webhook generation failed", "from", from, "error", err)
		s.dispatcher.SendErrorNotice(ctx, from)
		http.Error(w, "Error", http.StatusInternalServerError)
		return
	}

	if err := s.dispatcher.SendRecipes(ctx, from, result); err != nil {
		s.logger.Error("webhook dispatch failed", "from", from, "error", err)
		s.dispatcher.SendErrorNotice(ctx, from)
		http.Error(w, "Error", http.StatusInternalServerError)
		return
	}

	s.respondOK(w)
}

func (s *Server) respondOK(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("OK"))
}
