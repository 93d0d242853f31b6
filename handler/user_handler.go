package handler

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/radhian/sip-engine/consts"
	"github.com/radhian/sip-engine/entity"
	"github.com/radhian/sip-engine/infra/db/model"
)

func (h *SipHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req entity.CreateUserRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.User.CreateUser(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, user)
}

func (h *SipHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.User.GetUser(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, user)
}

// GetUserSips lists a user's SIPs, optionally filtered by ?state=.
func (h *SipHandler) GetUserSips(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]
	if _, err := h.User.GetUser(userID); err != nil {
		writeError(w, err)
		return
	}

	var (
		sips []model.Sip
		err  error
	)
	if state := r.URL.Query().Get("state"); state != "" {
		code, ok := consts.ParseSipState(strings.ToUpper(state))
		if !ok {
			writeFailure(w, http.StatusBadRequest, "unknown state "+state)
			return
		}
		sips, err = h.Sip.GetSIPsByUserAndState(userID, code)
	} else {
		sips, err = h.Sip.GetSIPsByUser(userID)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, sips)
}
