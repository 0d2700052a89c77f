package paseto

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/o1egl/paseto"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"staffly/models"
)

const defaultTokenTTL = 30 * 24 * time.Hour

type Maker struct {
	v2  *paseto.V2
	key []byte
	ttl time.Duration
}

// NewMaker decodes a base64 secret that must yield exactly 32 bytes.
func NewMaker(secret string, ttl time.Duration) (*Maker, error) {
	key, err := decodeKey(secret)
	if err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &Maker{v2: paseto.NewV2(), key: key, ttl: ttl}, nil
}

func decodeKey(secret string) ([]byte, error) {
	encodings := []*base64.Encoding{
		base64.URLEncoding,
		base64.RawURLEncoding,
		base64.StdEncoding,
		base64.RawStdEncoding,
	}
	var lastErr error
	for _, enc := range encodings {
		key, err := enc.DecodeString(secret)
		if err != nil {
			lastErr = err
			continue
		}
		if len(key) != 32 {
			return nil, fmt.Errorf("PASETO_SECRET must be exactly 32 bytes after Base64 decoding, got %d bytes", len(key))
		}
		return key, nil
	}
	return nil, fmt.Errorf("failed to decode PASETO_SECRET: %w", lastErr)
}

func (m *Maker) GenerateToken(user *models.Employee) (string, error) {
	now := time.Now()

	token := paseto.JSONToken{
		Subject:    user.ID.Hex(),
		IssuedAt:   now,
		Expiration: now.Add(m.ttl),
		NotBefore:  now,
	}
	token.Set("user_id", user.ID.Hex())
	token.Set("company_id", user.CompanyID.Hex())
	token.Set("email", user.Email)
	token.Set("role", user.Role)

	return m.v2.Encrypt(m.key, token, "")
}

func (m *Maker) ValidateToken(tokenString string) (*models.Claims, error) {
	var token paseto.JSONToken
	var footer string

	if err := m.v2.Decrypt(tokenString, m.key, &token, &footer); err != nil {
		return nil, fmt.Errorf("failed to decrypt paseto token: %w", err)
	}
	if err := token.Validate(); err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}

	userID, err := primitive.ObjectIDFromHex(token.Get("user_id"))
	if err != nil {
		return nil, fmt.Errorf("invalid user_id format: %w", err)
	}
	companyID, err := primitive.ObjectIDFromHex(token.Get("company_id"))
	if err != nil {
		return nil, fmt.Errorf("invalid company_id format: %w", err)
	}
	role := token.Get("role")
	if role == "" {
		return nil, errors.New("token carries no role")
	}

	return &models.Claims{
		UserID:    userID,
		CompanyID: companyID,
		Email:     token.Get("email"),
		Role:      role,
	}, nil
}
