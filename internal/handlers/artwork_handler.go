package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sharedspace-app/backend/internal/dto"
	"github.com/sharedspace-app/backend/internal/middleware"
	"github.com/sharedspace-app/backend/internal/services"
)

type ArtworkHandler struct {
	artworkService *services.ArtworkService
	voteService    *services.VoteService
}

func NewArtworkHandler(artworkService *services.ArtworkService, voteService *services.VoteService) *ArtworkHandler {
	return &ArtworkHandler{artworkService: artworkService, voteService: voteService}
}

func (h *ArtworkHandler) ListAll(c *fiber.Ctx) error {
	artworks, err := h.artworkService.ListAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch artworks",
		})
	}
	return c.JSON(artworks)
}

func (h *ArtworkHandler) ListMine(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	artworks, err := h.artworkService.ListMine(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch artworks",
		})
	}
	return c.JSON(artworks)
}

func (h *ArtworkHandler) ListFriends(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	artworks, err := h.artworkService.ListFriends(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch artworks",
		})
	}
	return c.JSON(artworks)
}

func (h *ArtworkHandler) ListByOwner(c *fiber.Ctx) error {
	var req dto.OwnerLookupRequest
	if err := c.BodyParser(&req); err != nil || req.OwnerID == uuid.Nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "owner_id is required",
		})
	}

	artworks, err := h.artworkService.ListByOwner(req.OwnerID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOwnerNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Owner not found",
			})
		case errors.Is(err, services.ErrArtworkNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "No artworks found for this owner",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch artworks",
		})
	}
	return c.JSON(artworks)
}

func (h *ArtworkHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid artwork ID",
		})
	}

	artwork, err := h.artworkService.GetByID(id)
	if err != nil {
		if errors.Is(err, services.ErrArtworkNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Artwork not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch artwork",
		})
	}
	return c.JSON(artwork)
}

func (h *ArtworkHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreateArtworkRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "title is required",
		})
	}

	artwork, err := h.artworkService.Create(userID, &req)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Unable to create artwork",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(artwork)
}

func (h *ArtworkHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid artwork ID",
		})
	}

	var req dto.UpdateArtworkRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	artwork, err := h.artworkService.Update(id, &req)
	if err != nil {
		if errors.Is(err, services.ErrArtworkNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Artwork not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Unable to update artwork",
		})
	}
	return c.JSON(artwork)
}

func (h *ArtworkHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid artwork ID",
		})
	}

	if err := h.artworkService.Delete(id); err != nil {
		if errors.Is(err, services.ErrArtworkNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Artwork not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Unable to delete artwork",
		})
	}
	return c.JSON(fiber.Map{"message": "Artwork deleted"})
}

func (h *ArtworkHandler) DeleteBatch(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.DeleteArtworksRequest
	if err := c.BodyParser(&req); err != nil || len(req.IDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "ids array is required",
		})
	}

	deleted, err := h.artworkService.DeleteOwned(userID, req.IDs)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Unable to delete artworks",
		})
	}
	return c.JSON(fiber.Map{"message": fmt.Sprintf("Successfully deleted %d artworks", deleted)})
}

func (h *ArtworkHandler) CastVote(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	artworkID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid artwork ID",
		})
	}

	var req dto.CastVoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	vote, err := h.voteService.Cast(artworkID, userID, req.Score, req.SelectedTags)
	if err != nil {
		if errors.Is(err, services.ErrArtworkNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Artwork not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Unable to record vote",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(vote)
}

// Rescore recomputes the cached total score from the vote log (admin only).
func (h *ArtworkHandler) Rescore(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid artwork ID",
		})
	}

	total, err := h.voteService.RefreshTotalScore(id)
	if err != nil {
		if errors.Is(err, services.ErrArtworkNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Artwork not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Unable to recompute score",
		})
	}
	return c.JSON(fiber.Map{"artwork_id": id, "total_score": total})
}
