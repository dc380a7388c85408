package adjust

import (
	"context"
	"time"

	"github.com/nicsoto/ArriendoFacil/internal/indicator"
	"github.com/nicsoto/ArriendoFacil/internal/models"
)

// Engine binds the pure calculations to an indicator source (normally a
// CachedSource wrapping the HTTP client).
type Engine struct {
	src indicator.Source
}

func NewEngine(src indicator.Source) *Engine { return &Engine{src: src} }

// Result is the outcome of a contract's next annual adjustment. Exactly one
// of IPC/UF is set for index-based contracts; both are nil for fixed rent.
type Result struct {
	Type           models.AdjustmentType `json:"type"`
	OriginalAmount float64               `json:"originalAmount"`
	NewAmount      float64               `json:"newAmount"`
	Variation      float64               `json:"variation"`
	EffectiveDate  time.Time             `json:"effectiveDate"`
	IPC            *IPCResult            `json:"ipc,omitempty"`
	UF             *UFResult             `json:"uf,omitempty"`
}

// IPCAdjustment fetches the IPC series and compounds the variations between
// the two dates.
func (e *Engine) IPCAdjustment(ctx context.Context, principal float64, start, end time.Time) (IPCResult, error) {
	series, err := e.src.FetchIPC(ctx)
	if err != nil {
		return IPCResult{}, err
	}
	return CompoundIPC(series, principal, start, end)
}

// UFConversion fetches the UF series and converts the UF amount at date.
func (e *Engine) UFConversion(ctx context.Context, ufAmount float64, date time.Time) (UFResult, error) {
	series, err := e.src.FetchUF(ctx)
	if err != nil {
		return UFResult{}, err
	}
	return ConvertUF(series, ufAmount, date)
}

// CLPToUF fetches the UF series and expresses a CLP amount in UF at date.
func (e *Engine) CLPToUF(ctx context.Context, clpAmount float64, date time.Time) (UFResult, error) {
	series, err := e.src.FetchUF(ctx)
	if err != nil {
		return UFResult{}, err
	}
	return ConvertCLPToUF(series, clpAmount, date)
}

// CurrentUF returns the most recent UF observation. The API publishes the
// series newest first.
func (e *Engine) CurrentUF(ctx context.Context) (indicator.Point, error) {
	series, err := e.src.FetchUF(ctx)
	if err != nil {
		return indicator.Point{}, err
	}
	if len(series) == 0 {
		return indicator.Point{}, ErrValueNotFound
	}
	return series[0], nil
}

// NextAdjustment computes the adjustment due at the contract's first
// anniversary, dispatching on the contract's adjustment type.
func (e *Engine) NextAdjustment(ctx context.Context, c *models.Contract) (Result, error) {
	anniversary := c.AnniversaryDate()
	switch c.Adjustment {
	case models.AdjustmentIPC:
		ipc, err := e.IPCAdjustment(ctx, c.MonthlyRent, c.StartDate, anniversary)
		if err != nil {
			return Result{}, err
		}
		return Result{
			Type:           models.AdjustmentIPC,
			OriginalAmount: ipc.OriginalAmount,
			NewAmount:      ipc.NewAmount,
			Variation:      ipc.Variation,
			EffectiveDate:  anniversary,
			IPC:            &ipc,
		}, nil
	case models.AdjustmentUF:
		uf, err := e.UFConversion(ctx, c.MonthlyRent, anniversary)
		if err != nil {
			return Result{}, err
		}
		return Result{
			Type:           models.AdjustmentUF,
			OriginalAmount: c.MonthlyRent,
			NewAmount:      uf.CLPAmount,
			Variation:      0,
			EffectiveDate:  anniversary,
			UF:             &uf,
		}, nil
	default:
		// Fixed rent: identity, no variation.
		return Result{
			Type:           models.AdjustmentFixed,
			OriginalAmount: c.MonthlyRent,
			NewAmount:      c.MonthlyRent,
			EffectiveDate:  anniversary,
		}, nil
	}
}
