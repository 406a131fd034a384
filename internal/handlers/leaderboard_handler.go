package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sharedspace-app/backend/internal/dto"
	"github.com/sharedspace-app/backend/internal/services"
)

type LeaderboardHandler struct {
	leaderboardService *services.LeaderboardService
}

func NewLeaderboardHandler(leaderboardService *services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

func (h *LeaderboardHandler) RankArtworks(c *fiber.Ctx) error {
	tag := c.Query("tag", "")
	limit, _ := strconv.Atoi(c.Query("limit", "0"))
	if limit > 100 {
		limit = 100
	}

	ranked, err := h.leaderboardService.RankArtworks(tag, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to compute leaderboard",
		})
	}
	return c.JSON(ranked)
}

func (h *LeaderboardHandler) RankArtists(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "0"))
	if limit > 100 {
		limit = 100
	}

	ranked, err := h.leaderboardService.RankArtists(limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to compute leaderboard",
		})
	}
	return c.JSON(ranked)
}

func (h *LeaderboardHandler) ArtworkRank(c *fiber.Ctx) error {
	var req dto.ArtworkRankRequest
	if err := c.BodyParser(&req); err != nil || req.ArtworkID == uuid.Nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "artwork_id is required",
		})
	}

	rank, total, err := h.leaderboardService.RankOf(req.ArtworkID)
	if err != nil {
		if errors.Is(err, services.ErrArtworkNotRanked) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Artwork is not ranked",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to compute rank",
		})
	}
	return c.JSON(dto.ArtworkRankResponse{Rank: rank, TotalScore: total})
}

func (h *LeaderboardHandler) TopPublicArtworks(c *fiber.Ctx) error {
	top, err := h.leaderboardService.TopPublicArtworks()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Error fetching leaderboard",
		})
	}
	return c.JSON(top)
}

func (h *LeaderboardHandler) StreakLeaders(c *fiber.Ctx) error {
	leaders, err := h.leaderboardService.StreakLeaders()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Error fetching streak leaderboard",
		})
	}
	return c.JSON(leaders)
}
