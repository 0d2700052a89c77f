package services

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"staffly/models"
	"staffly/pkg/apperr"
	"staffly/pkg/realtime"
)

func TestCandidateBoardAndMove(t *testing.T) {
	now := day(2024, time.May, 2, 9, 0)
	events := &recordingPublisher{}
	svc := NewCandidateService(&fakeCandidates{}, events, fakeClock(&now))
	company := primitive.NewObjectID()
	ctx := context.Background()

	jo, err := svc.Create(ctx, company, &models.CandidateCreatePayload{Name: "Jo", Email: "Jo@Example.com", Phone: "1", Position: "Dev"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if jo.Status != "Applied" || jo.Email != "jo@example.com" {
		t.Fatalf("candidate = %+v", jo)
	}
	if _, err := svc.Create(ctx, company, &models.CandidateCreatePayload{Name: "Kim", Email: "kim@example.com", Phone: "2", Position: "QA"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err = svc.Create(ctx, company, &models.CandidateCreatePayload{Name: "Jo again", Email: "jo@example.com", Phone: "3", Position: "Dev"})
	wantKind(t, err, apperr.KindConflict)

	moved, err := svc.Move(ctx, company, jo.ID, "Interview")
	if err != nil || moved.Status != "Interview" {
		t.Fatalf("Move = %+v, %v", moved, err)
	}
	if len(events.events) != 1 || events.events[0].ev.Type != realtime.EventCandidateMoved {
		t.Fatalf("events = %+v", events.events)
	}

	board, err := svc.Board(ctx, company)
	if err != nil {
		t.Fatalf("Board: %v", err)
	}
	if len(board) != len(models.CandidateStages) {
		t.Fatalf("columns = %d", len(board))
	}
	if len(board[0].Candidates) != 1 || len(board[2].Candidates) != 1 || board[2].Status != "Interview" {
		t.Fatalf("board = %+v", board)
	}

	_, err = svc.Move(ctx, company, jo.ID, "Ghosted")
	wantKind(t, err, apperr.KindValidation)
	_, err = svc.Move(ctx, primitive.NewObjectID(), jo.ID, "Offer")
	wantKind(t, err, apperr.KindNotFound)
}
