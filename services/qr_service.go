package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"staffly/models"
	"staffly/pkg/apperr"
	"staffly/pkg/period"
	"staffly/repository"
)

const (
	ScanCheckIn  = "check_in"
	ScanCheckOut = "check_out"
)

const qrImageSize = 256

// QRService issues the tenant's daily attendance code and resolves scans
// into check-ins or check-outs.
type QRService struct {
	codes      repository.QRCodeRepository
	attendance *AttendanceService
	records    repository.AttendanceRepository
	clock      Clock
	log        *zap.Logger
}

func NewQRService(codes repository.QRCodeRepository, attendance *AttendanceService, records repository.AttendanceRepository, clock Clock, log *zap.Logger) *QRService {
	return &QRService{codes: codes, attendance: attendance, records: records, clock: clock, log: log}
}

// Today returns the tenant's code for today, creating it on first use, along
// with a PNG rendering.
func (s *QRService) Today(ctx context.Context, claims *models.Claims) (*models.QRCode, []byte, error) {
	now := s.clock.now()
	today := period.StartOfDay(now)

	qr, err := s.codes.FindByCompanyAndDate(ctx, claims.CompanyID, today)
	if err != nil {
		return nil, nil, unexpected("failed to load QR code", err)
	}
	if qr == nil {
		qr = &models.QRCode{
			CompanyID: claims.CompanyID,
			Code:      uuid.NewString(),
			Date:      today,
			ExpiresAt: today.AddDate(0, 0, 1),
			CreatedAt: now,
		}
		if err := s.codes.Create(ctx, qr); err != nil {
			if !errors.Is(err, repository.ErrDuplicateKey) {
				return nil, nil, unexpected("failed to create QR code", err)
			}
			// Another admin created it first.
			if qr, err = s.codes.FindByCompanyAndDate(ctx, claims.CompanyID, today); err != nil || qr == nil {
				return nil, nil, unexpected("failed to load QR code", err)
			}
		}
	}

	png, err := qrcode.Encode(qr.Code, qrcode.Medium, qrImageSize)
	if err != nil {
		return nil, nil, unexpected("failed to render QR code", err)
	}
	return qr, png, nil
}

// Scan checks the employee in, or out when they are already in.
func (s *QRService) Scan(ctx context.Context, claims *models.Claims, code string) (string, *models.Attendance, error) {
	qr, err := s.codes.FindByCode(ctx, code)
	if err != nil {
		return "", nil, unexpected("failed to load QR code", err)
	}
	if qr == nil || qr.CompanyID != claims.CompanyID {
		return "", nil, apperr.NotFound("QR code not found")
	}

	now := s.clock.now()
	if !qr.Date.Equal(period.StartOfDay(now)) || !now.Before(qr.ExpiresAt) {
		return "", nil, apperr.InvalidState("QR code has expired")
	}

	existing, err := s.records.FindByEmployeeAndDate(ctx, claims.UserID, period.StartOfDay(now))
	if err != nil {
		return "", nil, unexpected("failed to load attendance", err)
	}
	if existing == nil {
		rec, err := s.attendance.CheckIn(ctx, claims)
		return ScanCheckIn, rec, err
	}
	rec, err := s.attendance.CheckOut(ctx, claims)
	return ScanCheckOut, rec, err
}
