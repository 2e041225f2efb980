package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"content-rebirth/models"
)

type DashboardService struct {
	meetings MeetingStore
	contents ContentStore
	userID   primitive.ObjectID
}

func NewDashboardService(meetings MeetingStore, contents ContentStore, userID primitive.ObjectID) *DashboardService {
	return &DashboardService{meetings: meetings, contents: contents, userID: userID}
}

// Stats totals the default user's meetings, content and views.
func (s *DashboardService) Stats(ctx context.Context) (models.DashboardStats, error) {
	var stats models.DashboardStats
	var err error

	if stats.TotalMeetings, err = s.meetings.CountByUser(ctx, s.userID); err != nil {
		return models.DashboardStats{}, persistenceError("failed to count meetings", err)
	}
	if stats.TotalContent, err = s.contents.CountByUser(ctx, s.userID, ""); err != nil {
		return models.DashboardStats{}, persistenceError("failed to count content", err)
	}
	if stats.PublishedContent, err = s.contents.CountByUser(ctx, s.userID, models.ContentStatusPublished); err != nil {
		return models.DashboardStats{}, persistenceError("failed to count published content", err)
	}
	if stats.TotalViews, err = s.contents.SumViews(ctx, s.userID); err != nil {
		return models.DashboardStats{}, persistenceError("failed to sum views", err)
	}
	return stats, nil
}
