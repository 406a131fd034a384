package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sharedspace-app/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankArtworksTagFilter(t *testing.T) {
	db := setupDB(t)
	svc := NewLeaderboardService(db, NewIntegrityService(db))

	owner := seedUser(t, db, "painter")
	voter := seedUser(t, db, "voter")
	artA := seedArtwork(t, db, owner.ID, "A")
	artB := seedArtwork(t, db, owner.ID, "B")

	base := time.Now().UTC()
	seedVote(t, db, artA.ID, voter.ID, 5, []string{"abstract"}, base)
	seedVote(t, db, artA.ID, voter.ID, 3, []string{"vivid"}, base.Add(time.Second))
	seedVote(t, db, artB.ID, voter.ID, 4, []string{"abstract"}, base.Add(2*time.Second))

	// Filtered: only votes carrying the tag count toward the total.
	ranked, err := svc.RankArtworks("abstract", 0)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, artA.ID, ranked[0].ArtworkID)
	assert.Equal(t, 5, ranked[0].TotalScore)
	assert.Equal(t, artB.ID, ranked[1].ArtworkID)
	assert.Equal(t, 4, ranked[1].TotalScore)

	// Unfiltered: full sums.
	ranked, err = svc.RankArtworks("", 0)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, artA.ID, ranked[0].ArtworkID)
	assert.Equal(t, 8, ranked[0].TotalScore)
	assert.Equal(t, artB.ID, ranked[1].ArtworkID)
	assert.Equal(t, 4, ranked[1].TotalScore)
}

func TestRankArtworksTiesKeepLogOrder(t *testing.T) {
	db := setupDB(t)
	svc := NewLeaderboardService(db, NewIntegrityService(db))

	owner := seedUser(t, db, "painter")
	voter := seedUser(t, db, "voter")
	first := seedArtwork(t, db, owner.ID, "first")
	second := seedArtwork(t, db, owner.ID, "second")

	base := time.Now().UTC()
	seedVote(t, db, first.ID, voter.ID, 7, nil, base)
	seedVote(t, db, second.ID, voter.ID, 7, nil, base.Add(time.Second))

	ranked, err := svc.RankArtworks("", 0)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, first.ID, ranked[0].ArtworkID)
	assert.Equal(t, second.ID, ranked[1].ArtworkID)
}

func TestRankArtworksDropsUnresolvedArtworks(t *testing.T) {
	db := setupDB(t)
	svc := NewLeaderboardService(db, NewIntegrityService(db))

	owner := seedUser(t, db, "painter")
	voter := seedUser(t, db, "voter")
	art := seedArtwork(t, db, owner.ID, "kept")

	base := time.Now().UTC()
	seedVote(t, db, art.ID, voter.ID, 2, nil, base)
	seedVote(t, db, uuid.New(), voter.ID, 99, nil, base.Add(time.Second))

	ranked, err := svc.RankArtworks("", 0)
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, art.ID, ranked[0].ArtworkID)
	require.NotNil(t, ranked[0].Artwork)
	assert.Equal(t, "kept", ranked[0].Artwork.Title)
}

func TestRankArtworksLimit(t *testing.T) {
	db := setupDB(t)
	svc := NewLeaderboardService(db, NewIntegrityService(db))

	owner := seedUser(t, db, "painter")
	voter := seedUser(t, db, "voter")
	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		art := seedArtwork(t, db, owner.ID, "art")
		seedVote(t, db, art.ID, voter.ID, 10-i, nil, base.Add(time.Duration(i)*time.Second))
	}

	ranked, err := svc.RankArtworks("", 2)
	require.NoError(t, err)
	assert.Len(t, ranked, 2)
	assert.Equal(t, 10, ranked[0].TotalScore)
	assert.Equal(t, 9, ranked[1].TotalScore)
}

func TestRankArtists(t *testing.T) {
	db := setupDB(t)
	svc := NewLeaderboardService(db, NewIntegrityService(db))

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	voter := seedUser(t, db, "voter")
	aliceArt1 := seedArtwork(t, db, alice.ID, "a1")
	aliceArt2 := seedArtwork(t, db, alice.ID, "a2")
	bobArt := seedArtwork(t, db, bob.ID, "b1")

	base := time.Now().UTC()
	seedVote(t, db, aliceArt1.ID, voter.ID, 3, nil, base)
	seedVote(t, db, bobArt.ID, voter.ID, 5, nil, base.Add(time.Second))
	seedVote(t, db, aliceArt2.ID, voter.ID, 4, nil, base.Add(2*time.Second))

	ranked, err := svc.RankArtists(0)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, alice.ID, ranked[0].UserID)
	assert.Equal(t, 7, ranked[0].TotalScore)
	assert.Equal(t, "alice", ranked[0].User.Username)
	assert.Equal(t, bob.ID, ranked[1].UserID)
	assert.Equal(t, 5, ranked[1].TotalScore)
}

func TestRankOf(t *testing.T) {
	db := setupDB(t)
	svc := NewLeaderboardService(db, NewIntegrityService(db))

	owner := seedUser(t, db, "painter")
	voter := seedUser(t, db, "voter")
	leader := seedArtwork(t, db, owner.ID, "leader")
	runnerUp := seedArtwork(t, db, owner.ID, "runner-up")
	unvoted := seedArtwork(t, db, owner.ID, "unvoted")

	base := time.Now().UTC()
	seedVote(t, db, leader.ID, voter.ID, 9, nil, base)
	seedVote(t, db, runnerUp.ID, voter.ID, 4, nil, base.Add(time.Second))

	rank, total, err := svc.RankOf(leader.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, rank)
	assert.Equal(t, 9, total)

	rank, total, err = svc.RankOf(runnerUp.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, rank)
	assert.Equal(t, 4, total)

	_, _, err = svc.RankOf(unvoted.ID)
	assert.ErrorIs(t, err, ErrArtworkNotRanked)
}

func TestTopPublicArtworks(t *testing.T) {
	db := setupDB(t)
	svc := NewLeaderboardService(db, NewIntegrityService(db))

	owner := seedUser(t, db, "painter")
	nameless := seedUser(t, db, "")

	for _, score := range []int{40, 30, 20, 10} {
		art := seedArtwork(t, db, owner.ID, "public")
		require.NoError(t, db.Model(art).UpdateColumn("total_score", score).Error)
	}

	// Highest-scored entry belongs to a user without a username.
	top1 := seedArtwork(t, db, nameless.ID, "top")
	require.NoError(t, db.Model(top1).UpdateColumn("total_score", 99).Error)

	// Private and zero-score artworks never appear.
	private := seedArtwork(t, db, owner.ID, "private")
	require.NoError(t, db.Model(private).Updates(map[string]interface{}{
		"privacy":     models.PrivacyPrivate,
		"total_score": 1000,
	}).Error)
	seedArtwork(t, db, owner.ID, "unscored")

	top, err := svc.TopPublicArtworks()
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, 99, top[0].TotalScore)
	assert.Equal(t, "Anonymous", top[0].Author)
	assert.Equal(t, 40, top[1].TotalScore)
	assert.Equal(t, "painter", top[1].Author)
	assert.Equal(t, 30, top[2].TotalScore)
}

func TestTopPublicArtworksReclaimsOrphans(t *testing.T) {
	db := setupDB(t)
	svc := NewLeaderboardService(db, NewIntegrityService(db))

	owner := seedUser(t, db, "painter")
	kept := seedArtwork(t, db, owner.ID, "kept")
	require.NoError(t, db.Model(kept).UpdateColumn("total_score", 10).Error)

	orphan := seedArtwork(t, db, uuid.New(), "orphan")
	require.NoError(t, db.Model(orphan).UpdateColumn("total_score", 50).Error)

	top, err := svc.TopPublicArtworks()
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, 10, top[0].TotalScore)

	var count int64
	require.NoError(t, db.Model(&models.Artwork{}).Where("id = ?", orphan.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestStreakLeaders(t *testing.T) {
	db := setupDB(t)
	svc := NewLeaderboardService(db, NewIntegrityService(db))

	for i, streak := range []int{3, 9, 1, 7, 5, 2, 8} {
		u := seedUser(t, db, "user"+string(rune('a'+i)))
		require.NoError(t, db.Model(u).UpdateColumn("streak_count", streak).Error)
	}
	seedUser(t, db, "inactive")

	leaders, err := svc.StreakLeaders()
	require.NoError(t, err)
	require.Len(t, leaders, 5)
	assert.Equal(t, 9, leaders[0].Score)
	assert.Equal(t, 8, leaders[1].Score)
	assert.Equal(t, 7, leaders[2].Score)
	assert.Equal(t, 5, leaders[3].Score)
	assert.Equal(t, 3, leaders[4].Score)
}
