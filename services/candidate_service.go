package services

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"staffly/models"
	"staffly/pkg/apperr"
	"staffly/pkg/realtime"
	"staffly/repository"
)

type CandidateService struct {
	candidates repository.CandidateRepository
	events     Publisher
	clock      Clock
}

func NewCandidateService(candidates repository.CandidateRepository, events Publisher, clock Clock) *CandidateService {
	return &CandidateService{candidates: candidates, events: events, clock: clock}
}

type BoardColumn struct {
	Status     string             `json:"status"`
	Candidates []models.Candidate `json:"candidates"`
}

func (s *CandidateService) List(ctx context.Context, companyID primitive.ObjectID) ([]models.Candidate, error) {
	candidates, err := s.candidates.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, unexpected("failed to list candidates", err)
	}
	return candidates, nil
}

// Board groups the tenant's candidates into kanban columns in stage order.
func (s *CandidateService) Board(ctx context.Context, companyID primitive.ObjectID) ([]BoardColumn, error) {
	candidates, err := s.List(ctx, companyID)
	if err != nil {
		return nil, err
	}
	index := make(map[string]int, len(models.CandidateStages))
	board := make([]BoardColumn, len(models.CandidateStages))
	for i, stage := range models.CandidateStages {
		index[stage] = i
		board[i] = BoardColumn{Status: stage, Candidates: []models.Candidate{}}
	}
	for _, c := range candidates {
		if i, ok := index[c.Status]; ok {
			board[i].Candidates = append(board[i].Candidates, c)
		}
	}
	return board, nil
}

func (s *CandidateService) Create(ctx context.Context, companyID primitive.ObjectID, payload *models.CandidateCreatePayload) (*models.Candidate, error) {
	c := &models.Candidate{
		CompanyID: companyID,
		Name:      strings.TrimSpace(payload.Name),
		Email:     normalizeEmail(payload.Email),
		Phone:     strings.TrimSpace(payload.Phone),
		Position:  strings.TrimSpace(payload.Position),
		ResumeURL: strings.TrimSpace(payload.ResumeURL),
		Status:    models.CandidateStages[0],
	}
	if err := s.candidates.Create(ctx, c); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperr.Conflict("Candidate with this email already exists")
		}
		return nil, unexpected("failed to create candidate", err)
	}
	return c, nil
}

// Move puts the candidate in another column and tells the tenant's admins.
func (s *CandidateService) Move(ctx context.Context, companyID, id primitive.ObjectID, status string) (*models.Candidate, error) {
	valid := false
	for _, stage := range models.CandidateStages {
		if stage == status {
			valid = true
			break
		}
	}
	if !valid {
		return nil, apperr.Validation("Unknown candidate status")
	}

	now := s.clock.now()
	found, err := s.candidates.SetStatus(ctx, companyID, id, status, now)
	if err != nil {
		return nil, unexpected("failed to update candidate", err)
	}
	if !found {
		return nil, apperr.NotFound("Candidate not found")
	}
	c, err := s.candidates.FindByID(ctx, companyID, id)
	if err != nil || c == nil {
		return nil, unexpected("failed to reload candidate", err)
	}

	s.events.ToAdmins(companyID.Hex(), realtime.Event{Type: realtime.EventCandidateMoved, Payload: c})
	return c, nil
}

func (s *CandidateService) Delete(ctx context.Context, companyID, id primitive.ObjectID) error {
	deleted, err := s.candidates.Delete(ctx, companyID, id)
	if err != nil {
		return unexpected("failed to delete candidate", err)
	}
	if !deleted {
		return apperr.NotFound("Candidate not found")
	}
	return nil
}
