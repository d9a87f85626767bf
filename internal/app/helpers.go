package app

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

// RequireMethod validates that the request uses the specified HTTP method
func RequireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// WriteJSON encodes v onto w with the JSON content type.
func WriteJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Error("error encoding response")
	}
}

// monthParam parses the month query parameter, defaulting to the current
// month in the configured zone when absent.
func (a *App) monthParam(r *http.Request) (time.Month, bool) {
	s := r.URL.Query().Get("month")
	if s == "" {
		return a.Classifier.Now().In(a.Cfg.Zone).Month(), true
	}
	m, err := strconv.Atoi(s)
	if err != nil || m < 1 || m > 12 {
		return 0, false
	}
	return time.Month(m), true
}
