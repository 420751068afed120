package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/sparks/noteapp/internal/common"
	"github.com/sparks/noteapp/internal/server/models"
)

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Token    string `json:"token"`
}

type noteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type noteResponse struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type attachmentUploadResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type attachmentDownloadResponse struct {
	URL string `json:"url"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeServiceError maps the internal error taxonomy to wire responses.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrorEmailTaken):
		writeError(w, http.StatusBadRequest, "Email already in use")
	case errors.Is(err, common.ErrorInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, common.ErrorForbidden):
		writeError(w, http.StatusForbidden, "Not allowed")
	case errors.Is(err, common.ErrorNotFound):
		w.WriteHeader(http.StatusNotFound)
	default:
		s.logger.Error(r.Context(), "request failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Internal error")
	}
}

func noteToResponse(n *models.Note) noteResponse {
	return noteResponse{ID: n.ID, Title: n.Title, Content: n.Content}
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.users.Signup(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "user signed up", "email", result.User.Email)

	writeJSON(w, http.StatusOK, authResponse{
		ID:       result.User.ID,
		Username: result.User.Username,
		Email:    result.User.Email,
		Token:    result.Token,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{
		ID:       result.User.ID,
		Username: result.User.Username,
		Email:    result.User.Email,
		Token:    result.Token,
	})
}

func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request, user *models.User) {
	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	note, err := s.notes.Create(r.Context(), user, req.Title, req.Content)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, noteToResponse(note))
}

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request, user *models.User) {
	result, err := s.notes.List(r.Context(), user)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	responses := []noteResponse{}
	for _, n := range result {
		responses = append(responses, noteToResponse(n))
	}
	writeJSON(w, http.StatusOK, responses)
}

// notePathID extracts the {id} path segment; malformed ids are treated the
// same as nonexistent notes.
func notePathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, common.ErrorNotFound
	}
	return id, nil
}

func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request, user *models.User) {
	id, err := notePathID(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	note, err := s.notes.Update(r.Context(), user, id, req.Title, req.Content)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, noteToResponse(note))
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request, user *models.User) {
	id, err := notePathID(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	if err := s.notes.Delete(r.Context(), user, id); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Note deleted"})
}

func (s *Server) handlePresignUpload(w http.ResponseWriter, r *http.Request, user *models.User) {
	id, err := notePathID(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	key, url, err := s.notes.PresignAttachmentUpload(r.Context(), user, id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, attachmentUploadResponse{Key: key, URL: url})
}

func (s *Server) handlePresignDownload(w http.ResponseWriter, r *http.Request, user *models.User) {
	id, err := notePathID(r)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	url, err := s.notes.PresignAttachmentDownload(r.Context(), user, id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, attachmentDownloadResponse{URL: url})
}
