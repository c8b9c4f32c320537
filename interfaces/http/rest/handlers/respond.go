package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"cinegraph-backend/pkg/common"
	pkgerrors "cinegraph-backend/pkg/errors"
)

// respondAppError maps an application error onto the response envelope.
// Unknown errors become opaque 500s; AppError carries its own status and
// code.
func respondAppError(w http.ResponseWriter, logger *zap.Logger, err error) {
	if appErr := pkgerrors.GetAppError(err); appErr != nil {
		code := appErr.Code
		if code == "" {
			code = string(appErr.Type)
		}
		if appErr.Details != nil {
			common.RespondErrorWithDetails(w, appErr.HTTPStatus, code, appErr.Message, appErr.Details)
			return
		}
		common.RespondError(w, appErr.HTTPStatus, code, appErr.Message)
		return
	}

	logger.Error("unhandled error", zap.Error(err))
	common.RespondError(w, http.StatusInternalServerError,
		common.StandardErrorCodes.InternalError, "internal server error")
}
