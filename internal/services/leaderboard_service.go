package services

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/sharedspace-app/backend/internal/dto"
	"github.com/sharedspace-app/backend/internal/models"
	"gorm.io/gorm"
)

var ErrArtworkNotRanked = errors.New("artwork not ranked")

const defaultRankLimit = 10

// LeaderboardService computes rollups over the vote log: ranked artworks
// (optionally restricted to one tag), ranked artists, and single-artwork rank
// lookups. It also serves the legacy public leaderboard read off the cached
// Artwork.TotalScore column.
type LeaderboardService struct {
	db        *gorm.DB
	integrity *IntegrityService
}

func NewLeaderboardService(db *gorm.DB, integrity *IntegrityService) *LeaderboardService {
	return &LeaderboardService{db: db, integrity: integrity}
}

type rollup struct {
	Key        uuid.UUID
	TotalScore int
}

// rollupByArtwork groups votes by artwork id, summing scores. Group order is
// first appearance in the vote log, so the descending stable sort below gives
// equal scores a deterministic, documented order instead of per-run
// nondeterminism. Votes not carrying the requested tag are skipped.
func rollupByArtwork(votes []models.Vote, tag string) []rollup {
	index := make(map[uuid.UUID]int)
	groups := make([]rollup, 0)
	for _, v := range votes {
		if tag != "" && !hasTag(v.SelectedTags, tag) {
			continue
		}
		i, ok := index[v.ArtworkID]
		if !ok {
			i = len(groups)
			index[v.ArtworkID] = i
			groups = append(groups, rollup{Key: v.ArtworkID})
		}
		groups[i].TotalScore += v.Score
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].TotalScore > groups[j].TotalScore
	})
	return groups
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

// fetchVotes loads the full vote log in insertion order.
func (s *LeaderboardService) fetchVotes() ([]models.Vote, error) {
	var votes []models.Vote
	if err := s.db.Order("created_at ASC").Find(&votes).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch votes: %w", err)
	}
	return votes, nil
}

// RankArtworks aggregates the vote log into a ranked artwork list. Groups
// whose artwork no longer resolves are silently excluded rather than errored,
// so the result may carry fewer than limit entries.
func (s *LeaderboardService) RankArtworks(tag string, limit int) ([]dto.RankedArtwork, error) {
	if limit <= 0 {
		limit = defaultRankLimit
	}

	votes, err := s.fetchVotes()
	if err != nil {
		return nil, err
	}

	groups := rollupByArtwork(votes, tag)
	if len(groups) > limit {
		groups = groups[:limit]
	}

	ids := make([]uuid.UUID, len(groups))
	for i, g := range groups {
		ids[i] = g.Key
	}

	var artworks []models.Artwork
	if len(ids) > 0 {
		if err := s.db.Preload("Owner").Where("id IN ?", ids).Find(&artworks).Error; err != nil {
			return nil, fmt.Errorf("failed to join artworks: %w", err)
		}
	}
	byID := make(map[uuid.UUID]*models.Artwork, len(artworks))
	for i := range artworks {
		byID[artworks[i].ID] = &artworks[i]
	}

	ranked := make([]dto.RankedArtwork, 0, len(groups))
	for _, g := range groups {
		art, ok := byID[g.Key]
		if !ok {
			continue
		}
		ranked = append(ranked, dto.RankedArtwork{
			ArtworkID:  g.Key,
			TotalScore: g.TotalScore,
			Artwork:    art,
		})
	}
	return ranked, nil
}

// RankArtists aggregates votes per artwork owner: a two-hop join from vote to
// artwork to owner. Votes on artworks that no longer resolve are dropped, as
// are owners who no longer exist.
func (s *LeaderboardService) RankArtists(limit int) ([]dto.RankedArtist, error) {
	if limit <= 0 {
		limit = defaultRankLimit
	}

	votes, err := s.fetchVotes()
	if err != nil {
		return nil, err
	}

	artworkIDs := make([]uuid.UUID, 0)
	seen := make(map[uuid.UUID]bool)
	for _, v := range votes {
		if !seen[v.ArtworkID] {
			seen[v.ArtworkID] = true
			artworkIDs = append(artworkIDs, v.ArtworkID)
		}
	}

	ownerOf := make(map[uuid.UUID]uuid.UUID)
	if len(artworkIDs) > 0 {
		var artworks []models.Artwork
		if err := s.db.Select("id", "owner_id").Where("id IN ?", artworkIDs).Find(&artworks).Error; err != nil {
			return nil, fmt.Errorf("failed to join artworks: %w", err)
		}
		for _, a := range artworks {
			ownerOf[a.ID] = a.OwnerID
		}
	}

	index := make(map[uuid.UUID]int)
	groups := make([]rollup, 0)
	for _, v := range votes {
		ownerID, ok := ownerOf[v.ArtworkID]
		if !ok {
			continue
		}
		i, ok := index[ownerID]
		if !ok {
			i = len(groups)
			index[ownerID] = i
			groups = append(groups, rollup{Key: ownerID})
		}
		groups[i].TotalScore += v.Score
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].TotalScore > groups[j].TotalScore
	})
	if len(groups) > limit {
		groups = groups[:limit]
	}

	ownerIDs := make([]uuid.UUID, len(groups))
	for i, g := range groups {
		ownerIDs[i] = g.Key
	}
	users := make(map[uuid.UUID]models.User)
	if len(ownerIDs) > 0 {
		var rows []models.User
		if err := s.db.Where("id IN ?", ownerIDs).Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to join users: %w", err)
		}
		for _, u := range rows {
			users[u.ID] = u
		}
	}

	ranked := make([]dto.RankedArtist, 0, len(groups))
	for _, g := range groups {
		u, ok := users[g.Key]
		if !ok {
			continue
		}
		ranked = append(ranked, dto.RankedArtist{
			UserID:     g.Key,
			TotalScore: g.TotalScore,
			User: dto.UserResponse{
				ID:             u.ID,
				Username:       u.Username,
				Email:          u.Email,
				ProfilePicture: u.ProfilePicture,
				UserType:       u.UserType,
				StreakCount:    u.StreakCount,
			},
		})
	}
	return ranked, nil
}

// RankOf locates the artwork's 1-based position in the full unfiltered,
// unlimited ranking. An artwork with no votes is not ranked.
func (s *LeaderboardService) RankOf(artworkID uuid.UUID) (int, int, error) {
	votes, err := s.fetchVotes()
	if err != nil {
		return 0, 0, err
	}

	for i, g := range rollupByArtwork(votes, "") {
		if g.Key == artworkID {
			return i + 1, g.TotalScore, nil
		}
	}
	return 0, 0, ErrArtworkNotRanked
}

// TopPublicArtworks is the legacy leaderboard surface: it reads the cached
// TotalScore column off public artworks instead of re-aggregating the vote
// log. Ten rows are fetched to leave headroom for orphaned entries; the top
// three survivors are returned.
func (s *LeaderboardService) TopPublicArtworks() ([]dto.TopPublicArtwork, error) {
	var artworks []models.Artwork
	err := s.db.Preload("Owner").
		Where("privacy = ? AND total_score > 0", models.PrivacyPublic).
		Order("total_score DESC").
		Limit(10).
		Find(&artworks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch top artworks: %w", err)
	}

	valid, _ := s.integrity.CleanupOrphans(artworks)
	if len(valid) > 3 {
		valid = valid[:3]
	}

	top := make([]dto.TopPublicArtwork, 0, len(valid))
	for _, art := range valid {
		author := "Anonymous"
		if art.Owner != nil && art.Owner.Username != "" {
			author = art.Owner.Username
		}
		top = append(top, dto.TopPublicArtwork{
			Image:      art.ImageURL,
			TotalScore: art.TotalScore,
			Author:     author,
		})
	}
	return top, nil
}

// StreakLeaders returns the five users with the longest active streaks.
func (s *LeaderboardService) StreakLeaders() ([]dto.StreakLeader, error) {
	var users []models.User
	err := s.db.Where("streak_count > 0").
		Order("streak_count DESC").
		Limit(5).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch streak leaders: %w", err)
	}

	leaders := make([]dto.StreakLeader, 0, len(users))
	for _, u := range users {
		leaders = append(leaders, dto.StreakLeader{
			Name:  u.Username,
			Score: u.StreakCount,
			Image: u.ProfilePicture,
		})
	}
	return leaders, nil
}
