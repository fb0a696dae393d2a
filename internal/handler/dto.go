package handler

import "github.com/msomdec/lotes-map/internal/domain"

type okResponse struct {
	OK bool `json:"ok"`
}

type errorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// userResponse answers register, login and the session lookup at /auth/me.
type userResponse struct {
	OK   bool             `json:"ok"`
	User *domain.Identity `json:"user"`
}

type deleteResponse struct {
	OK      bool     `json:"ok"`
	Deleted []string `json:"deleted"`
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type deleteRequest struct {
	IDs []string `json:"ids"`
}
