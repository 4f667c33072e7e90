package api

import (
	"encoding/json"
	"net/http"

	"dining-reviews/internal/service"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required" example:"alice"`
	Password string `json:"password" validate:"required" example:"pw1"`
}

type TokenResponse struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.eyJ1c2VyX2lkIjoxLCJ1c2VybmFtZSI6ImFsaWNlIn0...."`
}

// optionalString records whether a JSON key was sent at all, so that an
// explicit null can be told apart from a missing key.
type optionalString struct {
	Set   bool
	Value *string
}

func (o *optionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

// ptr returns the value, treating "" as no value.
func (o optionalString) ptr() *string {
	if o.Value == nil || *o.Value == "" {
		return nil
	}
	return o.Value
}

// CredentialsRequest is the body of register and update. img_id must be
// present but may be null.
type CredentialsRequest struct {
	Username string         `json:"username" validate:"required" example:"alice"`
	Password string         `json:"password" validate:"required" example:"pw1"`
	ImageID  optionalString `json:"img_id" swaggertype:"string" example:"V1StGXR8_Z5jdHi6B-myT"`
}

func decodeCredentials(r *http.Request) (*CredentialsRequest, error) {
	var req CredentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, err
	}
	if !req.ImageID.Set {
		return nil, missingParam("img_id")
	}
	return &req, nil
}

// @Summary      Logs a user in
// @Description  Authenticates a user and returns a signed bearer token.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        loginRequest   body      LoginRequest  true  "Login Credentials"
// @Success      200            {object}  TokenResponse
// @Failure      400            {object}  ErrorResponse "Invalid request body"
// @Failure      401            {object}  ErrorResponse "Invalid username or password"
// @Failure      500            {object}  ErrorResponse "Internal Server Error"
// @Router       /user/login [post]
func (s *Server) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	token, _, err := s.services.Auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{Token: token})
}

// @Summary      Registers a user
// @Description  Creates an account. The response points the client at the login route.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        registerRequest  body      CredentialsRequest  true  "New account"
// @Success      200              {object}  models.User
// @Header       200              {string}  Location  "/user/login"
// @Failure      400              {object}  ErrorResponse "Missing params or unknown image"
// @Failure      409              {object}  ErrorResponse "Username taken"
// @Failure      500              {object}  ErrorResponse "Internal Server Error"
// @Router       /user/register [post]
func (s *Server) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCredentials(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	user, err := s.services.Auth.Register(r.Context(), service.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		ImageID:  req.ImageID.ptr(),
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	w.Header().Set("Location", "/user/login")
	writeJSON(w, http.StatusOK, user)
}
