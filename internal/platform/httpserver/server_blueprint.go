package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	blueprinterrors "clipcast/contexts/content/blueprint-service/domain/errors"
	blueprinthttp "clipcast/contexts/content/blueprint-service/transport/http"
	"clipcast/internal/platform/storage"
)

// Example video uploads arrive as multipart forms; the part size is capped
// by the storage layer, this bound covers the whole form.
const maxUploadFormBytes = 101 << 20

func (s *Server) handleCreateBlueprint(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireBlueprintUser(w, r)
	if !ok {
		return
	}

	var req blueprinthttp.CreateBlueprintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBlueprintError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.modules.Blueprints.Handler.CreateBlueprintHandler(r.Context(), userID, req)
	if err != nil {
		writeBlueprintDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetBlueprint(w http.ResponseWriter, r *http.Request) {
	resp, err := s.modules.Blueprints.Handler.GetBlueprintHandler(r.Context(), r.PathValue("blueprint_id"))
	if err != nil {
		writeBlueprintDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListBlueprints(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireBlueprintUser(w, r)
	if !ok {
		return
	}

	resp, err := s.modules.Blueprints.Handler.ListBlueprintsHandler(r.Context(), userID, r.PathValue("brand_id"))
	if err != nil {
		writeBlueprintDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSaveBlueprintFields(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireBlueprintUser(w, r)
	if !ok {
		return
	}

	var req blueprinthttp.SaveFieldsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBlueprintError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.modules.Blueprints.Handler.SaveFieldsHandler(r.Context(), userID, r.PathValue("blueprint_id"), req)
	if err != nil {
		writeBlueprintDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSetSectionLayout(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireBlueprintUser(w, r)
	if !ok {
		return
	}

	var req blueprinthttp.SetSectionLayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBlueprintError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.modules.Blueprints.Handler.SetSectionLayoutHandler(r.Context(), userID, r.PathValue("blueprint_id"), req)
	if err != nil {
		writeBlueprintDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAddExampleVideo(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireBlueprintUser(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadFormBytes); err != nil {
		writeBlueprintError(w, http.StatusBadRequest, "invalid_form", "request must be a multipart form")
		return
	}
	file, header, err := r.FormFile("video")
	if err != nil {
		writeBlueprintError(w, http.StatusBadRequest, "missing_file", "video file part is required")
		return
	}
	defer file.Close()

	resp, err := s.modules.Blueprints.Handler.AddExampleVideoHandler(
		r.Context(),
		userID,
		r.PathValue("blueprint_id"),
		r.FormValue("label"),
		header.Header.Get("Content-Type"),
		header.Size,
		file,
	)
	if err != nil {
		writeBlueprintDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleRemoveExampleVideo(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireBlueprintUser(w, r)
	if !ok {
		return
	}

	resp, err := s.modules.Blueprints.Handler.RemoveExampleVideoHandler(
		r.Context(),
		userID,
		r.PathValue("blueprint_id"),
		r.PathValue("video_id"),
	)
	if err != nil {
		writeBlueprintDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteBlueprint(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireBlueprintUser(w, r)
	if !ok {
		return
	}

	if err := s.modules.Blueprints.Handler.DeleteBlueprintHandler(r.Context(), userID, r.PathValue("blueprint_id")); err != nil {
		writeBlueprintDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) requireBlueprintUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := s.auth.UserID(r)
	if !ok {
		writeBlueprintError(w, http.StatusUnauthorized, "missing_user", "authenticated user is required")
		return "", false
	}
	return userID, true
}

func writeBlueprintDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, blueprinterrors.ErrBlueprintNotFound):
		writeBlueprintError(w, http.StatusNotFound, "blueprint_not_found", err.Error())
	case errors.Is(err, blueprinterrors.ErrVideoNotFound):
		writeBlueprintError(w, http.StatusNotFound, "video_not_found", err.Error())
	case errors.Is(err, blueprinterrors.ErrUnknownSection):
		writeBlueprintError(w, http.StatusBadRequest, "unknown_section", err.Error())
	case errors.Is(err, storage.ErrUnsupportedMediaType):
		writeBlueprintError(w, http.StatusUnsupportedMediaType, "unsupported_media_type", err.Error())
	case errors.Is(err, storage.ErrFileTooLarge):
		writeBlueprintError(w, http.StatusRequestEntityTooLarge, "file_too_large", err.Error())
	case errors.Is(err, blueprinterrors.ErrForbidden):
		writeBlueprintError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, blueprinterrors.ErrInvalidRequest):
		writeBlueprintError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeBlueprintError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeBlueprintError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, blueprinthttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
