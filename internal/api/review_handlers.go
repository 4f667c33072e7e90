package api

import (
	"net/http"

	"dining-reviews/internal/service"
	"dining-reviews/internal/validation"
)

type CreateReviewRequest struct {
	UserID        int64   `json:"user_id" validate:"required,gt=0" example:"1"`
	Rating        int     `json:"rating" validate:"required,gte=1,lte=5" example:"5"`
	Location      string  `json:"location" validate:"required,location" example:"hampshire"`
	ReviewText    string  `json:"review_text" validate:"required" example:"great"`
	VisitedDate   string  `json:"visited_date" validate:"required,date" example:"2024-01-01"`
	ReviewImageID *string `json:"review_img_id" example:"V1StGXR8_Z5jdHi6B-myT"`
}

// UpdateReviewRequest changes only the fields that are present.
type UpdateReviewRequest struct {
	ReviewID    int64   `json:"review_id" validate:"required,gt=0" example:"1"`
	Rating      *int    `json:"rating" validate:"omitempty,gte=1,lte=5" example:"4"`
	Location    *string `json:"location" validate:"omitempty,location" example:"franklin"`
	ReviewText  *string `json:"review_text" example:"still great"`
	VisitedDate *string `json:"visited_date" validate:"omitempty,date" example:"2024-01-02"`
}

type DeleteReviewRequest struct {
	ReviewID int64 `json:"review_id" validate:"required,gt=0" example:"1"`
}

type locationQuery struct {
	Name string `json:"name" validate:"required,feed"`
}

// @Summary      Create a review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        review  body      CreateReviewRequest  true  "Review"
// @Success      200     {object}  models.Review
// @Failure      400     {object}  ErrorResponse "Invalid review"
// @Failure      500     {object}  ErrorResponse "Internal Server Error"
// @Router       /review/create [post]
func (s *Server) CreateReviewHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	imageID := req.ReviewImageID
	if imageID != nil && *imageID == "" {
		imageID = nil
	}

	review, err := s.services.Reviews.Create(r.Context(), service.CreateReviewInput{
		UserID:        req.UserID,
		Rating:        req.Rating,
		Location:      req.Location,
		ReviewText:    req.ReviewText,
		VisitedDate:   req.VisitedDate,
		ReviewImageID: imageID,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, review)
}

// @Summary      Get a review
// @Tags         reviews
// @Produce      json
// @Param        id   query     int  true  "Review ID"
// @Success      200  {object}  models.Review
// @Failure      400  {object}  ErrorResponse "Missing or malformed id"
// @Failure      404  {object}  ErrorResponse "Review not found"
// @Failure      500  {object}  ErrorResponse "Internal Server Error"
// @Router       /review [get]
func (s *Server) GetReviewHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.URL.Query().Get("id"), "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	review, err := s.services.Reviews.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, review)
}

// @Summary      List a user's reviews
// @Description  Returns the user's reviews, newest first.
// @Tags         reviews
// @Produce      json
// @Param        id   query     int  true  "User ID"
// @Success      200  {array}   models.Review
// @Failure      400  {object}  ErrorResponse "Missing or malformed id"
// @Failure      500  {object}  ErrorResponse "Internal Server Error"
// @Router       /review/userid [get]
func (s *Server) ListUserReviewsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.URL.Query().Get("id"), "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	reviews, err := s.services.Reviews.ListByUser(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, reviews)
}

// @Summary      List a dining hall's reviews
// @Description  Returns reviews newest first. The name "index" returns the five newest reviews across all halls.
// @Tags         reviews
// @Produce      json
// @Param        name  query     string  true  "Dining hall or index"  Enums(index, hampshire, franklin, berkshire, worcester)
// @Success      200   {array}   models.Review
// @Failure      400   {object}  ErrorResponse "Unknown location"
// @Failure      500   {object}  ErrorResponse "Internal Server Error"
// @Router       /review/location [get]
func (s *Server) ListLocationReviewsHandler(w http.ResponseWriter, r *http.Request) {
	q := locationQuery{Name: r.URL.Query().Get("name")}
	if err := validation.ValidateStruct(q); err != nil {
		handleError(w, r, err)
		return
	}

	reviews, err := s.services.Reviews.ListByLocation(r.Context(), q.Name)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, reviews)
}

// @Summary      Update a review
// @Description  Partially updates rating, location, text or visit date. The owner and id never change.
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        update  body      UpdateReviewRequest  true  "Fields to change"
// @Success      200     {object}  models.UpdateResult
// @Failure      400     {object}  ErrorResponse "Invalid update"
// @Failure      500     {object}  ErrorResponse "Internal Server Error"
// @Router       /review/update [put]
func (s *Server) UpdateReviewHandler(w http.ResponseWriter, r *http.Request) {
	var req UpdateReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.services.Reviews.Update(r.Context(), req.ReviewID, service.UpdateReviewInput{
		Rating:      req.Rating,
		Location:    req.Location,
		ReviewText:  req.ReviewText,
		VisitedDate: req.VisitedDate,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// @Summary      Delete a review
// @Description  Deletes the review and, best effort, the image it referenced.
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        delete  body      DeleteReviewRequest  true  "Review to delete"
// @Success      200     {object}  models.DeleteResult
// @Failure      400     {object}  ErrorResponse "Missing review_id"
// @Failure      500     {object}  ErrorResponse "Internal Server Error"
// @Router       /review/delete [delete]
func (s *Server) DeleteReviewHandler(w http.ResponseWriter, r *http.Request) {
	var req DeleteReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.services.Reviews.Delete(r.Context(), req.ReviewID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
