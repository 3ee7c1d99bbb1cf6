package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/pearlvault/backend/internal/model"
	"github.com/pearlvault/backend/internal/service"
)

// MockTermService implements TermServiceInterface for testing
type MockTermService struct {
	mock.Mock
}

func (m *MockTermService) ListTermViews(ctx context.Context, baseAPY decimal.Decimal) ([]service.TermView, error) {
	args := m.Called(ctx, baseAPY)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.TermView), args.Error(1)
}

type fixedMarket struct {
	snapshot model.MarketSnapshot
}

func (f *fixedMarket) Snapshot() model.MarketSnapshot { return f.snapshot }

func TestTermHandler_List(t *testing.T) {
	t.Parallel()

	baseAPY := decimal.NewFromInt(4000)
	market := &fixedMarket{snapshot: model.MarketSnapshot{BaseAPY: baseAPY, MarketPrice: decimal.NewFromInt(40)}}

	mockService := new(MockTermService)
	mockService.On("ListTermViews", mock.Anything, baseAPY).Return([]service.TermView{
		{
			Term:         model.Term{NoteAddress: "0xaaa", NoteLabel: "Stone-Hand PEARL Note", LockPeriodDays: 28, MultiplierBP: 100},
			Multiplier:   "1x",
			ExpectedAPY:  baseAPY,
			BonusPercent: 5,
		},
	}, nil)

	h := NewTermHandler(mockService, market)

	req := httptest.NewRequest(http.MethodGet, "/terms", nil)
	w := httptest.NewRecorder()

	h.List(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var views []service.TermView
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &views))
	assert.Len(t, views, 1)
	assert.Equal(t, "1x", views[0].Multiplier)
	mockService.AssertExpectations(t)
}

func TestTermHandler_List_ServiceError(t *testing.T) {
	t.Parallel()

	market := &fixedMarket{snapshot: model.MarketSnapshot{BaseAPY: decimal.NewFromInt(4000)}}

	mockService := new(MockTermService)
	mockService.On("ListTermViews", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	h := NewTermHandler(mockService, market)

	req := httptest.NewRequest(http.MethodGet, "/terms", nil)
	w := httptest.NewRecorder()

	h.List(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestTermHandler_Metrics(t *testing.T) {
	t.Parallel()

	market := &fixedMarket{snapshot: model.MarketSnapshot{
		BaseAPY:             decimal.NewFromFloat(4923.91),
		MarketPrice:         decimal.NewFromFloat(41.22),
		TreasuryMarketValue: decimal.NewFromInt(405472580),
	}}

	h := NewTermHandler(new(MockTermService), market)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()

	h.Metrics(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var snapshot model.MarketSnapshot
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &snapshot))
	assert.True(t, snapshot.BaseAPY.Equal(decimal.NewFromFloat(4923.91)))
}
