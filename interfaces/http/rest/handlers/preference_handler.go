package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"cinegraph-backend/application/commands"
	commandbus "cinegraph-backend/application/commands/bus"
	"cinegraph-backend/application/queries"
	querybus "cinegraph-backend/application/queries/bus"
	"cinegraph-backend/pkg/common"
)

const maxBodyBytes = 64 * 1024

// PreferenceHandler serves like/dislike judgments and status queries
type PreferenceHandler struct {
	commandBus *commandbus.CommandBus
	queryBus   *querybus.QueryBus
	logger     *zap.Logger
}

// NewPreferenceHandler creates a new preference handler
func NewPreferenceHandler(commandBus *commandbus.CommandBus, queryBus *querybus.QueryBus, logger *zap.Logger) *PreferenceHandler {
	return &PreferenceHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		logger:     logger,
	}
}

type setPreferenceRequest struct {
	Username  string `json:"username"`
	MovieName string `json:"movieName"`
	Kind      string `json:"kind"`
}

type preferenceResponse struct {
	Applied        bool   `json:"applied"`
	AlreadyInState bool   `json:"alreadyInState"`
	Status         string `json:"status"`
}

// SetPreference handles POST /preferences
func (h *PreferenceHandler) SetPreference(w http.ResponseWriter, r *http.Request) {
	var req setPreferenceRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest,
			common.StandardErrorCodes.BadRequest, "invalid request body")
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.SetPreferenceCommand{
		Username:  req.Username,
		MovieName: req.MovieName,
		Kind:      req.Kind,
	})
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, toPreferenceResponse(result))
}

// ClearPreference handles DELETE /preferences/{username}/{movieName}
func (h *PreferenceHandler) ClearPreference(w http.ResponseWriter, r *http.Request) {
	result, err := h.commandBus.Send(r.Context(), commands.ClearPreferenceCommand{
		Username:  pathParam(r, "username"),
		MovieName: pathParam(r, "movieName"),
	})
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, toPreferenceResponse(result))
}

// GetPreferenceStatus handles GET /preferences/{username}/{movieName}
func (h *PreferenceHandler) GetPreferenceStatus(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.GetPreferenceStatusQuery{
		Username:  pathParam(r, "username"),
		MovieName: pathParam(r, "movieName"),
	})
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

func toPreferenceResponse(result *commandbus.CommandResult) preferenceResponse {
	resp := preferenceResponse{
		Applied:        result.Applied,
		AlreadyInState: result.AlreadyInState,
	}
	if data, ok := result.Data.(map[string]interface{}); ok {
		if status, ok := data["status"].(string); ok {
			resp.Status = status
		}
	}
	return resp
}
