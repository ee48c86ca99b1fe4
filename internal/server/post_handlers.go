package server

import (
	"errors"
	"fmt"
	"strings"

	"feedsvc/internal/etag"
	"feedsvc/internal/hypermedia"
	"feedsvc/internal/models"
	"feedsvc/internal/observability"
	"feedsvc/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const (
	headerETag        = "ETag"
	headerIfMatch     = "If-Match"
	headerIfNoneMatch = "If-None-Match"
)

// createPostRequest is the payload for creating a post.
type createPostRequest struct {
	Title       string  `json:"title"`
	Body        *string `json:"body"`
	ImageURL    *string `json:"image_url"`
	CreatedBy   int     `json:"created_by"`
	InterestIDs []int   `json:"interest_ids"`
}

// updatePostRequest distinguishes omitted fields (nil pointers) from supplied
// ones, so a sparse payload only touches the columns it names. InterestIDs
// follows the same rule: nil keeps the association set, an empty slice clears
// it, a populated slice replaces it.
type updatePostRequest struct {
	Title       *string `json:"title"`
	Body        *string `json:"body"`
	ImageURL    *string `json:"image_url"`
	InterestIDs []int   `json:"interest_ids"`
}

// assignments maps the supplied scalar fields to their column assignments.
func (r *updatePostRequest) assignments() map[string]any {
	fields := map[string]any{}
	if r.Title != nil {
		fields["title"] = *r.Title
	}
	if r.Body != nil {
		fields["body"] = *r.Body
	}
	if r.ImageURL != nil {
		fields["image_url"] = *r.ImageURL
	}
	return fields
}

// postPage is the collection representation, fingerprinted as a whole so the
// collection ETag changes whenever any member or the page shape does.
type postPage struct {
	Items   []*models.Post   `json:"items"`
	Total   int64            `json:"total"`
	Skip    int              `json:"skip"`
	Limit   int              `json:"limit"`
	HasMore bool             `json:"has_more"`
	Links   hypermedia.Links `json:"links"`
}

// enrichPost attaches the associated interests and navigation links. Every
// fingerprint is computed over this enriched form, never the bare row.
func (s *Server) enrichPost(c *fiber.Ctx, post *models.Post) error {
	interests, err := s.postRepo.Interests(c.Context(), post.PostID)
	if err != nil {
		return err
	}
	if interests == nil {
		interests = []models.Interest{}
	}
	post.Interests = interests
	post.Links = hypermedia.PostLinks(post.PostID)
	return nil
}

// ListPosts handles GET /posts with pagination, filtering and a collection ETag.
func (s *Server) ListPosts(c *fiber.Ctx) error {
	page := parsePagination(c)

	filter := repository.PostFilter{
		Skip:       page.Skip,
		Limit:      page.Limit,
		InterestID: queryIntPtr(c, "interest_id"),
		CreatedBy:  queryIntPtr(c, "created_by"),
		Search:     strings.TrimSpace(c.Query("search")),
	}

	posts, total, err := s.postRepo.List(c.Context(), filter)
	if err != nil {
		observability.StoreErrors.WithLabelValues("list").Inc()
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}
	if posts == nil {
		posts = []*models.Post{}
	}

	for _, post := range posts {
		if err := s.enrichPost(c, post); err != nil {
			observability.StoreErrors.WithLabelValues("list").Inc()
			return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
		}
	}

	resp := postPage{
		Items:   posts,
		Total:   total,
		Skip:    page.Skip,
		Limit:   page.Limit,
		HasMore: int64(page.Skip+page.Limit) < total,
		Links:   hypermedia.CollectionLinks(page.Skip, page.Limit, int(total)),
	}

	token, err := etag.Compute(resp)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}
	c.Set(headerETag, etag.Quote(token))

	return c.JSON(resp)
}

// GetPost handles GET /posts/:id with If-None-Match short-circuiting.
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postRepo.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound, models.NewNotFoundError("Post", id))
		}
		observability.StoreErrors.WithLabelValues("get").Inc()
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}

	if err := s.enrichPost(c, post); err != nil {
		observability.StoreErrors.WithLabelValues("get").Inc()
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}

	token, err := etag.Compute(post)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}

	if ifNoneMatch := c.Get(headerIfNoneMatch); ifNoneMatch != "" {
		if etag.Match(ifNoneMatch, token) {
			observability.ConditionalRequests.WithLabelValues("if-none-match", observability.OutcomeNotModified).Inc()
			// 304 carries the validator but no body
			c.Set(headerETag, etag.Quote(token))
			c.Status(fiber.StatusNotModified)
			return c.Send(nil)
		}
		observability.ConditionalRequests.WithLabelValues("if-none-match", observability.OutcomeMatch).Inc()
	}

	c.Set(headerETag, etag.Quote(token))
	return c.JSON(post)
}

// CreatePost handles POST /posts.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req createPostRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if strings.TrimSpace(req.Title) == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Title is required"))
	}
	if req.CreatedBy <= 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("created_by is required"))
	}

	post := &models.Post{
		Title:     req.Title,
		Body:      req.Body,
		ImageURL:  req.ImageURL,
		CreatedBy: req.CreatedBy,
	}

	if err := s.postRepo.Create(c.Context(), post, req.InterestIDs); err != nil {
		if models.HasCode(err, models.CodeInvalidReference) {
			return models.RespondWithError(c, fiber.StatusBadRequest, err)
		}
		observability.StoreErrors.WithLabelValues("create").Inc()
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}

	// Re-read so the representation carries store-assigned values.
	created, err := s.postRepo.GetByID(c.Context(), post.PostID)
	if err != nil {
		observability.StoreErrors.WithLabelValues("create").Inc()
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}
	if err := s.enrichPost(c, created); err != nil {
		observability.StoreErrors.WithLabelValues("create").Inc()
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}

	token, err := etag.Compute(created)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}
	c.Set(headerETag, etag.Quote(token))
	c.Set(fiber.HeaderLocation, fmt.Sprintf("/posts/%d", created.PostID))

	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdatePost handles PUT /posts/:id with ownership and If-Match checks.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	createdBy := c.QueryInt("created_by", 0)
	if createdBy <= 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("created_by query parameter is required"))
	}

	var req updatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	existing, err := s.postRepo.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound, models.NewNotFoundError("Post", id))
		}
		observability.StoreErrors.WithLabelValues("update").Inc()
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}

	if existing.CreatedBy != createdBy {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("You can only update posts you created"))
	}

	// The precondition compares against the fingerprint of the current server
	// state, freshly enriched, so a stale client token never slips through.
	if ifMatch := c.Get(headerIfMatch); ifMatch != "" {
		if err := s.enrichPost(c, existing); err != nil {
			observability.StoreErrors.WithLabelValues("update").Inc()
			return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
		}
		current, err := etag.Compute(existing)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
		}
		if !etag.Match(ifMatch, current) {
			observability.ConditionalRequests.WithLabelValues("if-match", observability.OutcomePreconditionFailed).Inc()
			return models.RespondWithError(c, fiber.StatusPreconditionFailed,
				models.NewPreconditionFailedError("Post has been modified; refresh and retry"))
		}
		observability.ConditionalRequests.WithLabelValues("if-match", observability.OutcomeMatch).Inc()
	}

	assignments := req.assignments()
	if len(assignments) > 0 || req.InterestIDs != nil {
		if err := s.postRepo.Update(c.Context(), id, assignments, req.InterestIDs); err != nil {
			if models.HasCode(err, models.CodeInvalidReference) {
				return models.RespondWithError(c, fiber.StatusBadRequest, err)
			}
			observability.StoreErrors.WithLabelValues("update").Inc()
			return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
		}
	}

	updated, err := s.postRepo.GetByID(c.Context(), id)
	if err != nil {
		observability.StoreErrors.WithLabelValues("update").Inc()
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}
	if err := s.enrichPost(c, updated); err != nil {
		observability.StoreErrors.WithLabelValues("update").Inc()
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}

	token, err := etag.Compute(updated)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}
	c.Set(headerETag, etag.Quote(token))

	return c.JSON(updated)
}

// DeletePost handles DELETE /posts/:id with an ownership check.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	createdBy := c.QueryInt("created_by", 0)
	if createdBy <= 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("created_by query parameter is required"))
	}

	existing, err := s.postRepo.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound, models.NewNotFoundError("Post", id))
		}
		observability.StoreErrors.WithLabelValues("delete").Inc()
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}

	if existing.CreatedBy != createdBy {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("You can only delete posts you created"))
	}

	if err := s.postRepo.Delete(c.Context(), id); err != nil {
		observability.StoreErrors.WithLabelValues("delete").Inc()
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"status":  "deleted",
		"post_id": id,
	})
}
