package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

func SendJSON(w http.ResponseWriter, v any) (int, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return 0, err
	}
	w.Header().Add("Content-Type", "application/json")
	return w.Write(payload)
}

func sendJSONOrLog(w http.ResponseWriter, log *logrus.Logger, v any) {
	sendJSONStatus(w, log, http.StatusOK, v)
}

// sendJSONStatus marshals v before writing anything, so a payload that
// cannot be encoded still gets a clean 500.
func sendJSONStatus(w http.ResponseWriter, log *logrus.Logger, status int, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.WithError(err).Error("unable to send response")
		return
	}
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(payload); err != nil {
		log.WithError(err).Error("unable to send response")
	}
}

// sendError writes {"error": ...} with the given status.
func sendError(w http.ResponseWriter, log *logrus.Logger, status int, err error) {
	payload, jsonErr := json.Marshal(wrapError(err))
	if jsonErr != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.WithError(jsonErr).Error("unable to send error")
		return
	}
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}

func wrapError(err error) map[string]string {
	return map[string]string{
		"error": err.Error(),
	}
}
