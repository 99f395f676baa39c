package api

import (
	"mime"
	"net/http"

	"simple-gifting/internal/domain"
)

// Installation wizard actions
const (
	actionConfigureMetafields  = "configure_metafields"
	actionEnableApp            = "enable_app"
	actionCompleteInstallation = "complete_installation"
)

func (h *Handler) getSettings(w http.ResponseWriter, r *http.Request) {
	shop := domain.GetShopFromContext(r.Context())
	config, err := h.deps.Configs.Get(r.Context(), shop)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, config)
}

// updateSettings accepts either a JSON patch or the settings form
func (h *Handler) updateSettings(w http.ResponseWriter, r *http.Request) {
	patch, err := parseSettingsPatch(r)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	// Only the installation wizard completes an installation
	patch.InstallationCompleted = nil

	shop := domain.GetShopFromContext(r.Context())
	config, err := h.deps.Configs.Update(r.Context(), shop, patch)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "config": config})
}

func parseSettingsPatch(r *http.Request) (*domain.ShopConfigurationPatch, error) {
	if isJSON(r) {
		patch := &domain.ShopConfigurationPatch{}
		if err := decodeJSON(r, patch); err != nil {
			return nil, err
		}
		return patch, nil
	}
	if err := r.ParseForm(); err != nil {
		return nil, &domain.ValidationError{Message: "invalid form body"}
	}
	return domain.ParseShopConfigurationForm(r.PostForm)
}

func isJSON(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

func (h *Handler) installStatus(w http.ResponseWriter, r *http.Request) {
	shop := domain.GetShopFromContext(r.Context())
	status, err := h.deps.Setup.Status(r.Context(), shop)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, status)
}

type installRequest struct {
	Action string `json:"action"`
}

func (h *Handler) installAction(w http.ResponseWriter, r *http.Request) {
	var req installRequest
	if isJSON(r) {
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, h.logger, err)
			return
		}
	} else {
		req.Action = r.FormValue("action")
	}

	ctx := r.Context()
	shop := domain.GetShopFromContext(ctx)

	switch req.Action {
	case actionConfigureMetafields:
		results, err := h.deps.Setup.ConfigureMetafields(ctx, shop)
		if err != nil {
			h.logger.Error().Err(err).Str("shop", shop).Msg("Failed to configure metafields")
			respondJSON(w, http.StatusBadGateway, map[string]any{"success": false, "error": "Failed to configure metafields"})
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"success": true, "results": results})

	case actionEnableApp:
		if _, err := h.deps.Setup.EnableApp(ctx, shop); err != nil {
			respondError(w, h.logger, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"success": true, "message": "App enabled successfully"})

	case actionCompleteInstallation:
		if _, err := h.deps.Setup.CompleteInstallation(ctx, shop); err != nil {
			respondError(w, h.logger, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Installation completed successfully"})

	default:
		respondJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "Unknown action"})
	}
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	shop := domain.GetShopFromContext(r.Context())
	respondJSON(w, http.StatusOK, h.deps.Setup.DashboardStats(r.Context(), shop))
}
