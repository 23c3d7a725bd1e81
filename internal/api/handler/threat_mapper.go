package handler

import (
	"github.com/mangrovewatch/guardian-system/internal/core/domain"
	"github.com/mangrovewatch/guardian-system/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createThreatRequest, userID, idempotencyKey string, photos []string) ports.CreateThreatInput {
	return ports.CreateThreatInput{
		UserID:         userID,
		Type:           domain.ThreatType(req.Type),
		Title:          req.Title,
		Description:    req.Description,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		Priority:       domain.ThreatPriority(req.Priority),
		Sector:         req.Sector,
		Photos:         photos,
		IdempotencyKey: idempotencyKey,
	}
}

func toUpdateInput(req updateThreatRequest, reviewerID string) ports.UpdateThreatInput {
	in := ports.UpdateThreatInput{
		Title:       req.Title,
		Description: req.Description,
		Sector:      req.Sector,
		ReviewerID:  reviewerID,
	}
	if req.Status != nil {
		status := domain.ThreatStatus(*req.Status)
		in.Status = &status
	}
	if req.Priority != nil {
		priority := domain.ThreatPriority(*req.Priority)
		in.Priority = &priority
	}
	return in
}

func toListFilter(q listThreatsQuery) ports.ThreatFilter {
	return ports.ThreatFilter{
		Status: domain.ThreatStatus(q.Status),
		Type:   domain.ThreatType(q.Type),
		UserID: q.UserID,
	}
}
