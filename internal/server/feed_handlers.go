package server

import (
	"log/slog"

	"feedline/internal/models"
	"feedline/internal/notifications"
	"feedline/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const postsPerPage = 2

// postView is the post shape sent to clients and over the feed channel.
// The creator is collapsed to an id/name summary.
type postView struct {
	ID        uint                  `json:"_id"`
	Title     string                `json:"title"`
	Content   string                `json:"content"`
	ImageURL  string                `json:"imageUrl"`
	Creator   models.CreatorSummary `json:"creator"`
	CreatedAt string                `json:"createdAt"`
	UpdatedAt string                `json:"updatedAt"`
}

func newPostView(p *models.Post) postView {
	return postView{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		ImageURL:  p.ImageURL,
		Creator:   p.Creator.Summary(),
		CreatedAt: p.CreatedAt.UTC().Format("2006-01-02T15:04:05.000Z"),
		UpdatedAt: p.UpdatedAt.UTC().Format("2006-01-02T15:04:05.000Z"),
	}
}

// GetPosts returns one page of the feed, newest first
func (s *Server) GetPosts(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	total, err := s.postRepo.Count(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	posts, err := s.postRepo.List(c.UserContext(), postsPerPage, (page-1)*postsPerPage)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	views := make([]postView, 0, len(posts))
	for _, p := range posts {
		views = append(views, newPostView(p))
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":    "Fetched posts successfully",
		"posts":      views,
		"totalItems": total,
	})
}

// CreatePost creates a post from a multipart form with an attached image
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	title := c.FormValue("title")
	content := c.FormValue("content")

	if fieldErrs := validation.Post(title, content); len(fieldErrs) > 0 {
		return models.RespondWithError(c,
			models.NewValidationError("Validation failed, entered data is incorrect.", fieldErrs))
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return models.RespondWithError(c,
			models.NewMissingImageError("No image provided"))
	}

	imageURL, err := s.images.Save(fileHeader)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	creator, err := s.userRepo.GetByID(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}
	if creator == nil {
		return models.RespondWithError(c,
			models.NewUnauthenticatedError("Not authenticated"))
	}

	post := &models.Post{
		Title:     title,
		Content:   content,
		ImageURL:  imageURL,
		CreatorID: userID,
		Creator:   *creator,
	}

	if err := s.postRepo.Create(c.UserContext(), post); err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	slog.InfoContext(c.UserContext(), "post created", "post_id", post.ID, "user_id", userID)

	view := newPostView(post)
	s.broadcaster.Publish(c.UserContext(), notifications.ActionCreate, view)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Post created successfully",
		"post":    view,
		"creator": view.Creator,
	})
}

// GetPost returns a single post by id
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, ok := s.parsePostID(c)
	if !ok {
		return nil
	}

	post, err := s.postRepo.GetByID(c.UserContext(), postID)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}
	if post == nil {
		return models.RespondWithError(c,
			models.NewNotFoundError("Could not find post"))
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Post fetched",
		"post":    newPostView(post),
	})
}

// UpdatePost replaces a post's title, content and image. Only the creator
// may edit. The image is either a fresh upload or the existing reference
// echoed back in the form; neither present is a validation failure.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	postID, ok := s.parsePostID(c)
	if !ok {
		return nil
	}

	title := c.FormValue("title")
	content := c.FormValue("content")

	if fieldErrs := validation.Post(title, content); len(fieldErrs) > 0 {
		return models.RespondWithError(c,
			models.NewValidationError("Validation failed, entered data is incorrect.", fieldErrs))
	}

	imageURL := c.FormValue("image")
	if fileHeader, err := c.FormFile("image"); err == nil {
		saved, serr := s.images.Save(fileHeader)
		if serr != nil {
			return models.RespondWithError(c, serr)
		}
		imageURL = saved
	}
	if imageURL == "" {
		return models.RespondWithError(c,
			models.NewMissingImageError("No file picked!"))
	}

	post, err := s.postRepo.GetByID(c.UserContext(), postID)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}
	if post == nil {
		return models.RespondWithError(c,
			models.NewNotFoundError("Could not find post"))
	}
	if post.CreatorID != userID {
		return models.RespondWithError(c,
			models.NewForbiddenError("Not authorized"))
	}

	// Drop the superseded artifact once the reference changes
	if imageURL != post.ImageURL {
		s.images.Remove(post.ImageURL)
	}

	post.Title = title
	post.Content = content
	post.ImageURL = imageURL

	if err := s.postRepo.Update(c.UserContext(), post); err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	slog.InfoContext(c.UserContext(), "post updated", "post_id", post.ID, "user_id", userID)

	view := newPostView(post)
	s.broadcaster.Publish(c.UserContext(), notifications.ActionUpdate, view)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Edited post successfully",
		"post":    view,
	})
}

// DeletePost removes a post and its image artifact. Only the creator may delete.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	postID, ok := s.parsePostID(c)
	if !ok {
		return nil
	}

	post, err := s.postRepo.GetByID(c.UserContext(), postID)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}
	if post == nil {
		return models.RespondWithError(c,
			models.NewNotFoundError("Could not find post"))
	}
	if post.CreatorID != userID {
		return models.RespondWithError(c,
			models.NewForbiddenError("Not authorized"))
	}

	s.images.Remove(post.ImageURL)

	if err := s.postRepo.Delete(c.UserContext(), post.ID); err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	slog.InfoContext(c.UserContext(), "post deleted", "post_id", postID, "user_id", userID)

	s.broadcaster.Publish(c.UserContext(), notifications.ActionDelete, postID)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Deleted post",
	})
}

// GetStatus returns the caller's status line
func (s *Server) GetStatus(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userRepo.GetByID(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}
	if user == nil {
		return models.RespondWithError(c,
			models.NewForbiddenError("Not authorized"))
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Fetched status successfully",
		"status":  user.Status,
	})
}

type statusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus replaces the caller's status line
func (s *Server) UpdateStatus(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Validation failed, entered data is incorrect.",
				[]validation.FieldError{{Field: "body", Message: "Invalid request body"}}))
	}

	if fieldErrs := validation.Status(req.Status); len(fieldErrs) > 0 {
		return models.RespondWithError(c,
			models.NewValidationError("Validation failed, entered data is incorrect.", fieldErrs))
	}

	user, err := s.userRepo.GetByID(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}
	if user == nil {
		return models.RespondWithError(c,
			models.NewForbiddenError("Not authorized"))
	}

	user.Status = req.Status
	if err := s.userRepo.Update(c.UserContext(), user); err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Updated status successfully",
		"status":  user.Status,
	})
}
