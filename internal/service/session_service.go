package service

import (
	"encoding/hex"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/sha3"

	"github.com/pearlvault/backend/internal/apperror"
	"github.com/pearlvault/backend/internal/model"
)

var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// SessionService issues and validates wallet session tokens. Connecting a
// wallet exchanges a verified address for a bearer token; every vault
// operation then derives the caller's account from that token.
type SessionService struct {
	secret []byte
	ttl    time.Duration
}

func NewSessionService(secret string, ttl time.Duration) *SessionService {
	return &SessionService{secret: []byte(secret), ttl: ttl}
}

// ConnectResponse is returned to a wallet that established a session.
type ConnectResponse struct {
	Token   string              `json:"token"`
	Session model.WalletSession `json:"session"`
}

// Connect validates the wallet address and issues a session token bound to
// its checksummed form.
func (s *SessionService) Connect(address string) (*ConnectResponse, error) {
	checksummed, err := ChecksumAddress(address)
	if err != nil {
		return nil, apperror.ValidationError("address", err.Error())
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": checksummed,
		"exp": now.Add(s.ttl).Unix(),
		"iat": now.Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return &ConnectResponse{
		Token:   token,
		Session: model.WalletSession{Connected: true, Address: checksummed},
	}, nil
}

// Validate parses a session token and returns the wallet address it was
// issued for.
func (s *SessionService) Validate(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}

	address, ok := claims["sub"].(string)
	if !ok || !addressPattern.MatchString(address) {
		return "", errors.New("invalid address in token")
	}

	return address, nil
}

// ChecksumAddress returns the EIP-55 checksummed form of an address. Inputs
// in all-lowercase or all-uppercase hex carry no checksum and are accepted
// as-is; mixed-case inputs must already match their checksummed form.
func ChecksumAddress(address string) (string, error) {
	if !addressPattern.MatchString(address) {
		return "", errors.New("address must be 0x followed by 40 hex characters")
	}

	hexPart := strings.TrimPrefix(address, "0x")
	lower := strings.ToLower(hexPart)

	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(lower))
	hash := hex.EncodeToString(h.Sum(nil))

	var b strings.Builder
	b.WriteString("0x")
	for i, c := range lower {
		if c >= 'a' && c <= 'f' && hash[i] >= '8' {
			b.WriteByte(byte(c) - ('a' - 'A'))
		} else {
			b.WriteByte(byte(c))
		}
	}
	checksummed := b.String()

	if hexPart != lower && hexPart != strings.ToUpper(lower) && hexPart != checksummed[2:] {
		return "", errors.New("address checksum mismatch")
	}

	return checksummed, nil
}
