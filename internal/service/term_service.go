package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/pearlvault/backend/internal/apperror"
	"github.com/pearlvault/backend/internal/model"
	"github.com/pearlvault/backend/internal/repository"
)

// TermRepositoryInterface defines the contract for lock-up catalog access.
type TermRepositoryInterface interface {
	List(ctx context.Context) ([]model.Term, error)
	GetByNoteAddress(ctx context.Context, noteAddress string) (*model.Term, error)
	ListBonusTiers(ctx context.Context) ([]model.BonusTier, error)
	Count(ctx context.Context) (int, error)
	Seed(ctx context.Context, terms []model.Term, tiers []model.BonusTier) error
}

// TermService owns the lock-up catalog: the offered terms, their bonus
// tiers, and the derived display fields for term cards.
type TermService struct {
	repo TermRepositoryInterface
}

func NewTermService(repo TermRepositoryInterface) *TermService {
	return &TermService{repo: repo}
}

// TermView is a catalog entry decorated for display.
type TermView struct {
	model.Term
	Multiplier   string          `json:"multiplier"`
	ExpectedAPY  decimal.Decimal `json:"expectedApy"`
	BonusPercent int64           `json:"bonusPercent"`
	Boosted      bool            `json:"boosted"`
}

// EnsureCatalog seeds the default catalog when the tables are empty (or when
// forced) and verifies that every term has a distinct note address. A
// duplicate note address would make locks ambiguous, so it is a startup
// failure, not a warning.
func (s *TermService) EnsureCatalog(ctx context.Context, force bool) error {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("counting terms: %w", err)
	}

	if count == 0 || force {
		if err := s.repo.Seed(ctx, model.DefaultTerms, model.DefaultBonusTiers); err != nil {
			return fmt.Errorf("seeding catalog: %w", err)
		}
	}

	terms, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	return validateTerms(terms)
}

func validateTerms(terms []model.Term) error {
	seen := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		if t.NoteAddress == "" {
			return errors.New("catalog term has empty note address")
		}
		if t.LockPeriodDays <= 0 {
			return fmt.Errorf("term %s has non-positive lock period", t.NoteAddress)
		}
		if _, dup := seen[t.NoteAddress]; dup {
			return fmt.Errorf("catalog has duplicate note address %s", t.NoteAddress)
		}
		seen[t.NoteAddress] = struct{}{}
	}
	return nil
}

// ListTerms returns the catalog in display order.
func (s *TermService) ListTerms(ctx context.Context) ([]model.Term, error) {
	terms, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing terms: %w", err)
	}
	return terms, nil
}

// GetTerm looks up a term by its note address.
func (s *TermService) GetTerm(ctx context.Context, noteAddress string) (*model.Term, error) {
	term, err := s.repo.GetByNoteAddress(ctx, noteAddress)
	if errors.Is(err, repository.ErrTermNotFound) {
		return nil, apperror.NotFound("term")
	}
	if err != nil {
		return nil, fmt.Errorf("getting term %s: %w", noteAddress, err)
	}
	return term, nil
}

// BonusTiers returns all configured bonus tiers.
func (s *TermService) BonusTiers(ctx context.Context) ([]model.BonusTier, error) {
	tiers, err := s.repo.ListBonusTiers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing bonus tiers: %w", err)
	}
	return tiers, nil
}

// ListTermViews decorates the catalog with the display fields term cards
// need: the rendered multiplier, the APY after the multiplier is applied,
// the bonus tier, and the boost badge for long lock periods.
func (s *TermService) ListTermViews(ctx context.Context, baseAPY decimal.Decimal) ([]TermView, error) {
	terms, err := s.ListTerms(ctx)
	if err != nil {
		return nil, err
	}
	tiers, err := s.BonusTiers(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]TermView, 0, len(terms))
	for _, term := range terms {
		views = append(views, TermView{
			Term:         term,
			Multiplier:   DisplayMultiplier(term.MultiplierBP),
			ExpectedAPY:  ExpectedAPY(baseAPY, term.MultiplierBP),
			BonusPercent: BonusFor(tiers, term.LockPeriodDays),
			Boosted:      term.LockPeriodDays >= model.BoostBadgeMinDays,
		})
	}
	return views, nil
}
