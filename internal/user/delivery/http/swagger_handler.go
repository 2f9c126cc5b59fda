package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
// @Summary Swagger documentation
// @Description Swagger API documentation
// @Tags Swagger
// @Success 200 {string} string "Swagger UI"
// @Router /swagger/ [get]
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	// Swagger UI
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// ListUsers godoc
// @Summary List all users
// @Description Get every user, newest first
// @Tags Users
// @Produce json
// @Success 200 {object} object{success=bool,data=[]object{id=int,username=string,email=string,full_name=string,created_at=string,updated_at=string}}
// @Failure 500 {object} object{success=bool,message=string}
// @Router /api/v1/users [get]
func (h *UserHandler) ListUsersDoc() {}

// GetUser godoc
// @Summary Get user by ID
// @Description Get a single user
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} object{success=bool,data=object{id=int,username=string,email=string,full_name=string}}
// @Failure 400 {object} object{success=bool,message=string}
// @Failure 404 {object} object{success=bool,message=string}
// @Router /api/v1/users/{id} [get]
func (h *UserHandler) GetUserDoc() {}

// CreateUser godoc
// @Summary Create a user
// @Description Create a new user; username and email must be unused
// @Tags Users
// @Accept json
// @Produce json
// @Param request body object{username=string,email=string,full_name=string} true "User data"
// @Success 201 {object} object{success=bool,data=object{id=int,username=string,email=string,full_name=string}}
// @Failure 400 {object} object{success=bool,message=string}
// @Failure 409 {object} object{success=bool,message=string}
// @Router /api/v1/users [post]
func (h *UserHandler) CreateUserDoc() {}

// UpdateUser godoc
// @Summary Update a user
// @Description Overwrite username, email and full name of an existing user
// @Tags Users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body object{username=string,email=string,full_name=string} true "User data"
// @Success 200 {object} object{success=bool,data=object{id=int,username=string,email=string,full_name=string}}
// @Failure 400 {object} object{success=bool,message=string}
// @Failure 404 {object} object{success=bool,message=string}
// @Failure 409 {object} object{success=bool,message=string}
// @Router /api/v1/users/{id} [put]
func (h *UserHandler) UpdateUserDoc() {}

// DeleteUser godoc
// @Summary Delete a user
// @Description Remove a user permanently
// @Tags Users
// @Param id path int true "User ID"
// @Success 204 {string} string "No Content"
// @Failure 400 {object} object{success=bool,message=string}
// @Failure 404 {object} object{success=bool,message=string}
// @Router /api/v1/users/{id} [delete]
func (h *UserHandler) DeleteUserDoc() {}

// HealthCheck godoc
// @Summary Health check
// @Description Check service health and database connectivity
// @Tags Health
// @Produce json
// @Success 200 {object} object{success=bool,data=object{status=string}}
// @Failure 503 {object} object{success=bool,message=string}
// @Router /health [get]
func (h *UserHandler) HealthCheckDoc() {}
