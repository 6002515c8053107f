package service

import (
	"time"

	"github.com/samber/lo"

	"client-portal-api/internal/domain"
	"client-portal-api/internal/dto"
)

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dto.DateLayout)
	return &s
}

func toProjectResponse(p *domain.Project) *dto.ProjectResponse {
	return &dto.ProjectResponse{
		ID:                    p.ID,
		ClientName:            p.ClientName,
		ProjectName:           p.ProjectName,
		Passcode:              p.Passcode,
		StartDate:             formatDate(p.StartDate),
		LaunchDate:            formatDate(p.LaunchDate),
		CurrentPhase:          p.CurrentPhase,
		OnboardingCompleted:   p.OnboardingCompleted,
		OnboardingCompletedAt: p.OnboardingCompletedAt,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
}

func toProjectTreeResponse(p *domain.Project) *dto.ProjectTreeResponse {
	return &dto.ProjectTreeResponse{
		ProjectResponse: *toProjectResponse(p),
		Phases: lo.Map(p.Phases, func(ph domain.Phase, _ int) dto.PhaseResponse {
			return *toPhaseResponse(&ph)
		}),
	}
}

func toPhaseResponse(ph *domain.Phase) *dto.PhaseResponse {
	return &dto.PhaseResponse{
		ID:         ph.ID,
		ProjectID:  ph.ProjectID,
		PhaseOrder: ph.PhaseOrder,
		Name:       ph.Name,
		Status:     string(ph.Status),
		Completion: ph.Completion,
		NextSteps:  ph.NextSteps,
		Tasks: lo.Map(ph.Tasks, func(t domain.Task, _ int) dto.TaskResponse {
			return toTaskResponse(&t)
		}),
		Deliverables: lo.Map(ph.Deliverables, func(d domain.Deliverable, _ int) dto.DeliverableResponse {
			return *toDeliverableResponse(&d)
		}),
	}
}

func toTaskResponse(t *domain.Task) dto.TaskResponse {
	return dto.TaskResponse{
		ID:        t.ID,
		PhaseID:   t.PhaseID,
		Name:      t.Name,
		Completed: t.Completed,
		TaskOrder: t.TaskOrder,
	}
}

func toDeliverableResponse(d *domain.Deliverable) *dto.DeliverableResponse {
	return &dto.DeliverableResponse{
		ID:               d.ID,
		PhaseID:          d.PhaseID,
		Name:             d.Name,
		Status:           string(d.Status),
		FileURL:          d.FileURL,
		DeliverableOrder: d.DeliverableOrder,
	}
}

func toCommentResponse(c *domain.Comment) *dto.CommentResponse {
	return &dto.CommentResponse{
		ID:            c.ID,
		DeliverableID: c.DeliverableID,
		ProjectID:     c.ProjectID,
		UserType:      string(c.UserType),
		UserName:      c.UserName,
		Message:       c.Message,
		CreatedAt:     c.CreatedAt,
	}
}

func toFileResponse(f *domain.File) *dto.FileResponse {
	return &dto.FileResponse{
		ID:            f.ID,
		ProjectID:     f.ProjectID,
		DeliverableID: f.DeliverableID,
		FileName:      f.FileName,
		FileURL:       f.FileURL,
		FileType:      f.FileType,
		FileSize:      f.FileSize,
		UploadedBy:    string(f.UploadedBy),
		CreatedAt:     f.CreatedAt,
	}
}

func toAssetResponse(a *domain.OnboardingAsset) *dto.OnboardingAssetResponse {
	return &dto.OnboardingAssetResponse{
		ID:        a.ID,
		AssetType: string(a.AssetType),
		FileName:  a.FileName,
		FileURL:   a.FileURL,
		FileSize:  a.FileSize,
		ExpiresAt: a.ExpiresAt,
	}
}
