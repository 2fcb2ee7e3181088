package service

import (
	"context"
	"strings"
	"time"

	"utsavdarshan/internal/models"

	"github.com/sirupsen/logrus"
)

// Badges is the milestone catalogue, ordered by the visits it takes.
var Badges = []models.Badge{
	{ID: "badge_1_visit", Title: "First Darshan", Description: "Visited your first pandal", Icon: "first-darshan.png", Visits: 1},
	{ID: "badge_5_visits", Title: "Pandal Hopper", Description: "Visited 5 pandals", Icon: "pandal-hopper.png", Visits: 5},
	{ID: "badge_10_visits", Title: "Explorer", Description: "Visited 10 pandals", Icon: "explorer.png", Visits: 10},
	{ID: "badge_25_visits", Title: "Pilgrim", Description: "Visited 25 pandals", Icon: "pilgrim.png", Visits: 25},
}

func badgeByID(id string) (models.Badge, bool) {
	for _, b := range Badges {
		if b.ID == id {
			return b, true
		}
	}
	return models.Badge{}, false
}

// EarnedBadge is a catalogue badge with the time the user earned it.
type EarnedBadge struct {
	models.Badge
	AwardedAt time.Time `json:"awarded_at"`
}

// BadgeProgress is a user's badge shelf.
type BadgeProgress struct {
	PandalsVisited int           `json:"pandals_visited"`
	Earned         []EarnedBadge `json:"earned"`
	Next           *models.Badge `json:"next,omitempty"`
	Remaining      int           `json:"remaining,omitempty"`
}

// VisitReceipt is a recorded check-in plus any badges it unlocked.
type VisitReceipt struct {
	models.Visit
	NewBadges []models.Badge `json:"new_badges"`
}

func distinctPandals(visits []models.Visit) int {
	seen := make(map[string]struct{}, len(visits))
	for _, v := range visits {
		seen[v.PandalID] = struct{}{}
	}
	return len(seen)
}

// awardMilestones grants every catalogue badge the user's distinct visit
// count has reached. Already held badges are skipped by the store, so a
// failed award is picked up again on the next visit.
func (s *DirectoryService) awardMilestones(ctx context.Context, userID string) ([]models.Badge, error) {
	visits, err := s.visits.ListVisitsByUser(ctx, userID)
	if err != nil {
		return nil, storeErr("list visits", err)
	}
	count := distinctPandals(visits)
	now := s.now().UTC()
	out := []models.Badge{}
	for _, b := range Badges {
		if count < b.Visits {
			break
		}
		awarded, err := s.visits.AwardBadge(ctx, &models.UserBadge{UserID: userID, BadgeID: b.ID, AwardedAt: now})
		if err != nil {
			return out, storeErr("award badge", err)
		}
		if awarded {
			logrus.WithFields(logrus.Fields{"user_id": userID, "badge": b.ID}).Info("badge awarded")
			out = append(out, b)
		}
	}
	return out, nil
}

// BadgeProgress lists the badges userID holds and the next one to earn.
func (s *DirectoryService) BadgeProgress(ctx context.Context, userID string) (*BadgeProgress, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, invalid("user_id", "is required")
	}
	held, err := s.visits.ListUserBadges(ctx, userID)
	if err != nil {
		return nil, storeErr("list badges", err)
	}
	visits, err := s.visits.ListVisitsByUser(ctx, userID)
	if err != nil {
		return nil, storeErr("list visits", err)
	}
	out := &BadgeProgress{PandalsVisited: distinctPandals(visits), Earned: []EarnedBadge{}}
	for _, ub := range held {
		b, ok := badgeByID(ub.BadgeID)
		if !ok {
			continue
		}
		out.Earned = append(out.Earned, EarnedBadge{Badge: b, AwardedAt: ub.AwardedAt})
	}
	for i := range Badges {
		if Badges[i].Visits > out.PandalsVisited {
			next := Badges[i]
			out.Next = &next
			out.Remaining = next.Visits - out.PandalsVisited
			break
		}
	}
	return out, nil
}
