package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"shareit/internal/service"
)

func (s *HTTPServer) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.ItemID <= 0 {
		writeError(w, http.StatusBadRequest, "itemId is required")
		return
	}
	if req.Start.IsZero() || req.End.IsZero() {
		writeError(w, http.StatusBadRequest, "start and end are required")
		return
	}
	if !req.End.After(req.Start.Time) {
		writeError(w, http.StatusBadRequest, "end must be after start")
		return
	}
	if req.Start.Before(time.Now()) {
		writeError(w, http.StatusBadRequest, "start must not be in the past")
		return
	}

	booking, err := s.bookings.CreateBooking(r.Context(), userID, service.CreateBookingRequest{
		ItemID: req.ItemID,
		Start:  req.Start.Time,
		End:    req.End.Time,
	})
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toBookingResponse(booking))
}

func (s *HTTPServer) handleFinalizeBooking(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	bookingID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	approvedRaw := r.URL.Query().Get("approved")
	approved, err := strconv.ParseBool(approvedRaw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "approved query parameter must be true or false")
		return
	}

	booking, err := s.bookings.FinalizeBooking(r.Context(), userID, bookingID, approved)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingResponse(booking))
}

func (s *HTTPServer) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	bookingID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	booking, err := s.bookings.GetBooking(r.Context(), userID, bookingID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingResponse(booking))
}

func (s *HTTPServer) handleListBookingsByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	bookings, err := s.bookings.ListByBooker(r.Context(), userID, stateToken(r))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingResponses(bookings))
}

func (s *HTTPServer) handleListBookingsByOwner(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	bookings, err := s.bookings.ListByOwner(r.Context(), userID, stateToken(r))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingResponses(bookings))
}

// stateToken reads the state filter, defaulting to ALL.
func stateToken(r *http.Request) string {
	state := r.URL.Query().Get("state")
	if state == "" {
		return "ALL"
	}
	return state
}
