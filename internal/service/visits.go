package service

import (
	"context"
	"slices"
	"sort"
	"strings"

	"utsavdarshan/internal/models"

	"github.com/sirupsen/logrus"
)

// RecordVisit logs a check-in by userID at an existing pandal and awards any
// milestone badges it unlocks. A failed award does not undo the visit.
func (s *DirectoryService) RecordVisit(ctx context.Context, userID, pandalID string) (*VisitReceipt, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, invalid("user_id", "is required")
	}
	if _, err := s.GetPandal(ctx, pandalID); err != nil {
		return nil, err
	}
	v := &models.Visit{UserID: userID, PandalID: pandalID, VisitedAt: s.now().UTC()}
	if err := s.visits.CreateVisit(ctx, v); err != nil {
		return nil, storeErr("create visit", err)
	}
	badges, err := s.awardMilestones(ctx, userID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Warn("badge award failed")
	}
	if badges == nil {
		badges = []models.Badge{}
	}
	return &VisitReceipt{Visit: *v, NewBadges: badges}, nil
}

// Visits returns a user's check-ins, newest first.
func (s *DirectoryService) Visits(ctx context.Context, userID string) ([]models.Visit, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, invalid("user_id", "is required")
	}
	list, err := s.visits.ListVisitsByUser(ctx, userID)
	if err != nil {
		return nil, storeErr("list visits", err)
	}
	slices.Reverse(list)
	sort.SliceStable(list, func(i, j int) bool { return list[i].VisitedAt.After(list[j].VisitedAt) })
	return list, nil
}
