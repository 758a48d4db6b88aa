package v1

import (
	"fmt"

	"github.com/shenikar/safezone_notifier/internal/models"
)

// DTOToReportModel преобразует DTO создания в доменную модель
func DTOToReportModel(dto CreateReportRequest) *models.Report {
	return &models.Report{
		UserID:      dto.UserID,
		Latitude:    dto.Latitude,
		Longitude:   dto.Longitude,
		Category:    dto.Category,
		Description: dto.Description,
		PhotoURL:    dto.PhotoURL,
	}
}

// ModelToReportResponse преобразует доменную модель в DTO для ответа, добавляя оформление категории
func ModelToReportResponse(model *models.Report) *ReportResponse {
	style := models.StyleFor(model.Category)
	return &ReportResponse{
		ID:          model.ID,
		UserID:      model.UserID,
		Latitude:    model.Latitude,
		Longitude:   model.Longitude,
		Category:    model.Category,
		Icon:        style.Icon,
		Color:       style.Color,
		Description: model.Description,
		PhotoURL:    model.PhotoURL,
		Status:      model.Status,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

// ModelsToReportResponses преобразует слайс моделей в слайс DTO
func ModelsToReportResponses(reports []*models.Report) []*ReportResponse {
	responses := make([]*ReportResponse, len(reports))
	for i, report := range reports {
		responses[i] = ModelToReportResponse(report)
	}
	return responses
}

func ModelsToReportScoreResponses(scores []*models.ReportScore) []*ReportScoreResponse {
	responses := make([]*ReportScoreResponse, len(scores))
	for i, s := range scores {
		responses[i] = &ReportScoreResponse{
			ReportID:    s.ReportID,
			Category:    s.Category,
			Description: s.Description,
			Status:      s.Status,
			CreatedAt:   s.CreatedAt,
			Upvotes:     s.Upvotes,
			Downvotes:   s.Downvotes,
			Score:       s.Score,
		}
	}
	return responses
}

func DTOToSubscriptionModel(dto SubscriptionRequest) *models.Subscription {
	return &models.Subscription{
		UserID:       dto.UserID,
		CenterLat:    dto.CenterLat,
		CenterLng:    dto.CenterLng,
		RadiusMeters: dto.RadiusMeters,
	}
}

func ModelToSubscriptionResponse(model *models.Subscription) *SubscriptionResponse {
	return &SubscriptionResponse{
		ID:           model.ID,
		UserID:       model.UserID,
		CenterLat:    model.CenterLat,
		CenterLng:    model.CenterLng,
		RadiusMeters: model.RadiusMeters,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}

// NotifyResultToResponse формирует ответ рассылки в формате клиента
func NotifyResultToResponse(reportID int64, result *models.NotifyResult) *NotifyResponse {
	users := make([]NotifiedUser, len(result.Notifications))
	for i, n := range result.Notifications {
		users[i] = NotifiedUser{UserID: n.UserID, Status: n.Status}
	}

	resp := &NotifyResponse{NotifiedUsers: users}
	if result.SubscriptionCount == 0 {
		resp.Message = "No subscribers to notify."
	} else {
		resp.Message = fmt.Sprintf("Successfully processed report %d. Notified %d subscribers.", reportID, result.NotifiedCount)
	}
	return resp
}
