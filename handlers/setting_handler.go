package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/arden-cole/portfoliobackend/models"
	"github.com/arden-cole/portfoliobackend/repository"
)

type SettingHandler struct {
	SettingRepo repository.SettingRepository
}

func NewSettingHandler(settingRepo repository.SettingRepository) *SettingHandler {
	return &SettingHandler{SettingRepo: settingRepo}
}

func (sh *SettingHandler) ListSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := sh.SettingRepo.ListAll()
	if err != nil {
		log.Printf("Error listing settings: %v", err)
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "failed to retrieve settings")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (sh *SettingHandler) GetSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "setting_key")

	setting, err := sh.SettingRepo.Get(key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "setting not found")
		} else {
			log.Printf("Error getting setting '%s': %v", key, err)
			WriteAPIError(w, http.StatusInternalServerError, "internal_error", "failed to retrieve setting")
		}
		return
	}
	writeJSON(w, http.StatusOK, setting)
}

// SetSetting upserts the value for a key; the body is any JSON document.
func (sh *SettingHandler) SetSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "setting_key")
	if key == "" {
		WriteAPIError(w, http.StatusBadRequest, "bad_request", "setting key is required")
		return
	}

	var value json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&value); err != nil {
		writeJSON(w, http.StatusBadRequest, MutationResult{OK: false, Error: "invalid request body"})
		return
	}

	setting := &models.Setting{Key: key, Value: value}
	if err := sh.SettingRepo.Set(setting); err != nil {
		log.Printf("Error setting '%s': %v", key, err)
		writeJSON(w, http.StatusInternalServerError, MutationResult{OK: false, Error: "failed to save setting"})
		return
	}

	writeMutationOK(w, http.StatusOK, setting)
}
