package api

import (
	"fmt"
	"net/http"
	"strconv"

	"dining-reviews/internal/logging"
	"dining-reviews/internal/models"
	"dining-reviews/internal/service"
)

// @Summary      Update a user
// @Description  Replaces the password and profile image of the named user.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        updateRequest  body      CredentialsRequest  true  "New credentials"
// @Success      200            {string}  string "alice"
// @Failure      400            {object}  ErrorResponse "Missing params or unknown image"
// @Failure      404            {object}  ErrorResponse "User not found"
// @Failure      500            {object}  ErrorResponse "Internal Server Error"
// @Router       /user/update [put]
func (s *Server) UpdateUserHandler(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCredentials(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	err = s.services.Users.Update(r.Context(), service.UpdateUserInput{
		Username: req.Username,
		Password: req.Password,
		ImageID:  req.ImageID.ptr(),
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, req.Username)
}

// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Param        username  query     string  true  "Username"
// @Success      200       {object}  models.User
// @Failure      400       {object}  ErrorResponse "Missing username"
// @Failure      404       {object}  ErrorResponse "User not found"
// @Failure      500       {object}  ErrorResponse "Internal Server Error"
// @Router       /user/delete [delete]
func (s *Server) DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		handleError(w, r, missingParam("username"))
		return
	}

	user, err := s.services.Users.Delete(r.Context(), username)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// @Summary      Get a user
// @Description  Looks a user up by id, or by the session token when one is given.
// @Tags         users
// @Produce      json
// @Param        id     query     int     false  "User ID"
// @Param        token  query     string  false  "Session token"
// @Success      200    {object}  models.User
// @Failure      400    {object}  ErrorResponse "Missing or malformed id"
// @Failure      401    {object}  ErrorResponse "Invalid token"
// @Failure      404    {object}  ErrorResponse "User not found"
// @Failure      500    {object}  ErrorResponse "Internal Server Error"
// @Router       /user [get]
func (s *Server) GetUserHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var (
		user *models.User
		err  error
	)
	if token := query.Get("token"); token != "" {
		user, err = s.services.Users.GetByToken(r.Context(), token)
	} else {
		var id int64
		id, err = parseID(query.Get("id"), "id")
		if err == nil {
			user, err = s.services.Users.GetByID(r.Context(), id)
		}
	}
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   models.User
// @Failure      401  {object}  ErrorResponse "Unauthorized"
// @Failure      500  {object}  ErrorResponse "Internal Server Error"
// @Router       /users [get]
func (s *Server) ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := s.services.Users.List(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}

	if claims := GetUserFromContext(r.Context()); claims != nil {
		logging.Debug().
			Int64("user_id", claims.UserID).
			Str("username", claims.Username).
			Int("count", len(users)).
			Msg("listed users")
	}

	writeJSON(w, http.StatusOK, users)
}

// parseID reads a positive integer id from a query parameter.
func parseID(raw, name string) (int64, error) {
	if raw == "" {
		return 0, missingParam(name)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", service.ErrInvalidInput, name)
	}
	return id, nil
}
