package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	authdomain "senprep/backend/internal/domain/auth"
	authusecase "senprep/backend/internal/usecase/auth"
)

func (s *Server) registerRoutes() {
	s.router.Handle("/", http.HandlerFunc(s.handleRoot))
	s.router.Handle("/health", http.HandlerFunc(s.handleHealth))
	s.router.Handle("/student/signup", http.HandlerFunc(s.handleStudentSignup))
	s.router.Handle("/login", http.HandlerFunc(s.handleStudentLogin))
	s.router.Handle("/teacher/signup", http.HandlerFunc(s.handleTeacherSignup))
	s.router.Handle("/teacher/login", http.HandlerFunc(s.handleTeacherLogin))
	s.router.Handle("/auth/me", s.authMiddleware(http.HandlerFunc(s.handleMe)))
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "resource not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "SEN Prep Questions Backend Running..."})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStudentSignup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	var payload struct {
		Name         string `json:"name"`
		Email        string `json:"email"`
		Password     string `json:"password"`
		MatricNumber string `json:"matricNumber"`
		Level        string `json:"level"`
		Role         string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	_, token, err := s.authService.RegisterStudent(r.Context(), authusecase.RegisterStudentInput{
		Name:         payload.Name,
		Email:        payload.Email,
		Password:     payload.Password,
		MatricNumber: payload.MatricNumber,
		Level:        payload.Level,
		Role:         payload.Role,
	})
	if err != nil {
		s.writeAuthError(w, err, "registration failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Student created successfully",
		"token":   token,
	})
}

func (s *Server) handleStudentLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	var payload struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	identifier := payload.Email
	if identifier == "" {
		identifier = payload.Username
	}

	token, _, err := s.authService.LoginStudent(r.Context(), authdomain.Credentials{
		Identifier: identifier,
		Password:   payload.Password,
	})
	if err != nil {
		s.writeAuthError(w, err, "login failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"token":   token,
	})
}

func (s *Server) handleTeacherSignup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	var payload struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	// Teacher signup intentionally returns no token; teachers log in
	// through /teacher/login after registering.
	if _, err := s.authService.RegisterTeacher(r.Context(), authusecase.RegisterTeacherInput{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: payload.Password,
	}); err != nil {
		s.writeAuthError(w, err, "registration failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Teacher created successfully",
	})
}

func (s *Server) handleTeacherLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	token, _, err := s.authService.LoginTeacher(r.Context(), authdomain.Credentials{
		Identifier: payload.Email,
		Password:   payload.Password,
	})
	if err != nil {
		s.writeAuthError(w, err, "login failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"token":   token,
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	principal, ok := principalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": principal})
}

// writeAuthError translates auth module failures into the response contract:
// client-side failures are 400 with a short message, everything else is a
// logged 500 that exposes no internal detail.
func (s *Server) writeAuthError(w http.ResponseWriter, err error, fallback string) {
	var vErr authdomain.ValidationError
	switch {
	case errors.Is(err, authdomain.ErrDuplicateCredential):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, authdomain.ErrInvalidCredentials):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &vErr):
		writeError(w, http.StatusBadRequest, vErr.Error())
	default:
		log.Printf("auth error: %v", err)
		writeError(w, http.StatusInternalServerError, fallback)
	}
}

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r.Header.Get("Authorization"))
		if token == "" {
			writeError(w, http.StatusUnauthorized, "authorization token required")
			return
		}

		principal, err := s.authService.VerifyToken(r.Context(), token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyPrincipal{}, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func principalFromContext(ctx context.Context) (*authusecase.Principal, bool) {
	principal, ok := ctx.Value(ctxKeyPrincipal{}).(*authusecase.Principal)
	if !ok || principal == nil {
		return nil, false
	}
	return principal, true
}

type ctxKeyPrincipal struct{}

func extractBearerToken(header string) string {
	if header == "" {
		return ""
	}
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
