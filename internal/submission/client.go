package submission

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Analysis is the valuation API response: yearly series indexed from the
// purchase year, followed by whole-period ratios.
type Analysis struct {
	AnnualRentIncome         []float64 `json:"annual_rent_income"`
	NetOperatingIncome       []float64 `json:"net_operating_income"`
	AnnualLoanRepayment      []float64 `json:"annual_loan_repayment"`
	AnnualPrincipalPayment   []float64 `json:"annual_principal_payment"`
	AnnualInterestPayment    []float64 `json:"annual_interest_payment"`
	LoanBalance              []float64 `json:"loan_balance"`
	BeforeTaxCashFlow        []float64 `json:"befor_tax_cash_flow"`
	CumulativeCashFlow       []float64 `json:"cumulative_cash_flow"`
	DepreciationExpense      []float64 `json:"depreciation_expense"`
	TaxAmount                []float64 `json:"tax_amount"`
	AfterTaxCashFlow         []float64 `json:"after_tax_cash_flow"`
	NetPresentValue          []float64 `json:"net_present_value"`
	NOIYield                 float64   `json:"noi_yield"`
	FreeClearReturn          float64   `json:"free_clearly_return"`
	CashOnCashReturn         float64   `json:"cash_on_cash_return"`
	InternalRateOfReturn     float64   `json:"internal_rate_of_return"`
	PaybackPeriod            float64   `json:"payback_period"`
	SaleGrossYield           float64   `json:"sale_gross_yield"`
	ReturnOnInvestment       float64   `json:"return_on_investment"`
	DebtServiceCoverageRatio float64   `json:"debt_service_coverage_ratio"`
	LoanToValue              float64   `json:"loan_to_value"`
	DeadCrossYear            float64   `json:"dead_cross_year"`
	TotalPL                  float64   `json:"total_pl"`
}

// Result is the analysis together with the request that produced it.
type Result struct {
	Conditions Request `json:"conditions"`
	Analysis
}

// ValuationError reports a failed valuation call. StatusCode is zero when
// no response was received.
type ValuationError struct {
	StatusCode int
	Status     string
	Err        error
}

func (e *ValuationError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("valuation API error: %s", e.Status)
	}
	return fmt.Sprintf("valuation API unreachable: %v", e.Err)
}

func (e *ValuationError) Unwrap() error {
	return e.Err
}

// Valuator analyzes a finished form.
type Valuator interface {
	Analyze(ctx context.Context, req Request) (*Result, error)
}

// Client calls the valuation API over HTTP.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient returns a client posting to url with the given timeout.
func NewClient(url string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Analyze posts req and decodes the analysis.
func (c *Client) Analyze(ctx context.Context, req Request) (*Result, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode valuation request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build valuation request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error("valuation request failed",
			zap.String("op", "submission.Analyze"),
			zap.String("url", c.url),
			zap.Error(err),
		)
		return nil, &ValuationError{Err: err}
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Warn("failed to close valuation response",
				zap.String("op", "submission.Analyze"),
				zap.Error(closeErr),
			)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		c.logger.Error("valuation API returned an error",
			zap.String("op", "submission.Analyze"),
			zap.Int("status", resp.StatusCode),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, &ValuationError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Err:        errors.New(http.StatusText(resp.StatusCode)),
		}
	}

	var analysis Analysis
	if err := json.NewDecoder(resp.Body).Decode(&analysis); err != nil {
		return nil, fmt.Errorf("failed to decode valuation response: %w", err)
	}

	c.logger.Info("valuation completed",
		zap.String("op", "submission.Analyze"),
		zap.Int("years", len(analysis.AnnualRentIncome)),
		zap.Float64("irr", analysis.InternalRateOfReturn),
		zap.Duration("duration", time.Since(start)),
	)

	return &Result{Conditions: req, Analysis: analysis}, nil
}
