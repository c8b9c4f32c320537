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

// UserHandler serves per-user stats, judged lists, and the friends feature
type UserHandler struct {
	commandBus *commandbus.CommandBus
	queryBus   *querybus.QueryBus
	logger     *zap.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(commandBus *commandbus.CommandBus, queryBus *querybus.QueryBus, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		logger:     logger,
	}
}

// GetStats handles GET /users/{username}/stats
func (h *UserHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.GetUserStatsQuery{
		Username: pathParam(r, "username"),
	})
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// ListLikes handles GET /users/{username}/likes
func (h *UserHandler) ListLikes(w http.ResponseWriter, r *http.Request) {
	h.listJudged(w, r, "liked")
}

// ListDislikes handles GET /users/{username}/dislikes
func (h *UserHandler) ListDislikes(w http.ResponseWriter, r *http.Request) {
	h.listJudged(w, r, "disliked")
}

func (h *UserHandler) listJudged(w http.ResponseWriter, r *http.Request, state string) {
	result, err := h.queryBus.Ask(r.Context(), queries.ListJudgedMoviesQuery{
		Username: pathParam(r, "username"),
		State:    state,
	})
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// ListFriends handles GET /users/{username}/friends
func (h *UserHandler) ListFriends(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.ListFriendsQuery{
		Username: pathParam(r, "username"),
	})
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

type friendRequest struct {
	Username string `json:"username"`
	Friend   string `json:"friend"`
}

type friendResponse struct {
	Applied        bool `json:"applied"`
	AlreadyInState bool `json:"alreadyInState"`
}

// AddFriend handles POST /friends
func (h *UserHandler) AddFriend(w http.ResponseWriter, r *http.Request) {
	var req friendRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest,
			common.StandardErrorCodes.BadRequest, "invalid request body")
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.AddFriendCommand{
		Username: req.Username,
		Friend:   req.Friend,
	})
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, friendResponse{
		Applied:        result.Applied,
		AlreadyInState: result.AlreadyInState,
	})
}

// RemoveFriend handles DELETE /friends/{username}/{friend}
func (h *UserHandler) RemoveFriend(w http.ResponseWriter, r *http.Request) {
	result, err := h.commandBus.Send(r.Context(), commands.RemoveFriendCommand{
		Username: pathParam(r, "username"),
		Friend:   pathParam(r, "friend"),
	})
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, friendResponse{
		Applied:        result.Applied,
		AlreadyInState: result.AlreadyInState,
	})
}
