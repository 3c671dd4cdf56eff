package tools

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/toolbelt/toolbelt/internal/domain/entities"
	"github.com/toolbelt/toolbelt/internal/domain/errors"

	"go.uber.org/zap"
)

// GoogleFinanceTool fabricates market data instead of calling a provider.
// Prices follow a pseudo-random walk seeded from the symbol so repeated
// calls stay consistent. NOT PRODUCTION DATA: this adapter exists for demos
// and offline agent runs only.
type GoogleFinanceTool struct {
	toolBase
	now func() time.Time
}

func NewGoogleFinanceTool(name, description string, configuration map[string]string, logger *zap.Logger) *GoogleFinanceTool {
	return &GoogleFinanceTool{
		toolBase: toolBase{
			name:          name,
			description:   description,
			configuration: configuration,
			logger:        logger,
		},
		now: time.Now,
	}
}

func (t *GoogleFinanceTool) Parameters() []entities.Parameter {
	return []entities.Parameter{
		{
			Name:        "operation",
			Type:        "string",
			Enum:        []string{"get_price", "get_earnings"},
			Description: "The finance operation to perform (default: get_price)",
			Required:    false,
		},
		{
			Name:        "symbol",
			Type:        "string",
			MaxLength:   12,
			Description: "Ticker symbol, e.g. GOOG",
			Required:    true,
		},
	}
}

type financeQuote struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	Currency      string  `json:"currency"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
	Timestamp     string  `json:"timestamp"`
	Simulated     bool    `json:"simulated"`
}

type financeEarnings struct {
	Symbol    string    `json:"symbol"`
	Quarter   string    `json:"quarter"`
	RevenueM  float64   `json:"revenue_millions"`
	EPS       float64   `json:"eps"`
	Surprise  float64   `json:"surprise_percent"`
	Simulated bool      `json:"simulated"`
}

func (t *GoogleFinanceTool) Execute(arguments string) (string, error) {
	t.logger.Debug("Executing Google Finance tool", zap.String("arguments", arguments))

	if err := validateArguments(t.Parameters(), arguments); err != nil {
		return entities.Failed(err, nil).JSON(), nil
	}

	var args struct {
		Operation string `json:"operation"`
		Symbol    string `json:"symbol"`
	}
	if err := unmarshalArgs(arguments, &args); err != nil {
		return entities.Failed(err, nil).JSON(), nil
	}

	symbol := strings.ToUpper(args.Symbol)

	switch args.Operation {
	case "", "get_price":
		return entities.OK(t.simulateQuote(symbol)).JSON(), nil
	case "get_earnings":
		return entities.OK(t.simulateEarnings(symbol)).JSON(), nil
	default:
		err := errors.InvalidInputErrorf("unknown operation %q", args.Operation)
		return entities.Failed(err, nil).JSON(), nil
	}
}

// symbolSeed hashes the symbol so the walk is deterministic per ticker.
func symbolSeed(symbol string) int64 {
	h := fnv.New64a()
	h.Write([]byte(symbol))
	return int64(h.Sum64())
}

func (t *GoogleFinanceTool) simulateQuote(symbol string) financeQuote {
	rng := rand.New(rand.NewSource(symbolSeed(symbol)))

	base := 20 + rng.Float64()*480
	change := (rng.Float64() - 0.5) * base * 0.1
	price := base + change

	return financeQuote{
		Symbol:        symbol,
		Price:         round2(price),
		Currency:      "USD",
		Change:        round2(change),
		ChangePercent: round2(change / base * 100),
		Timestamp:     t.now().UTC().Format(time.RFC3339),
		Simulated:     true,
	}
}

func (t *GoogleFinanceTool) simulateEarnings(symbol string) []financeEarnings {
	rng := rand.New(rand.NewSource(symbolSeed(symbol) + 1))

	quarters := lastFourQuarters(t.now())
	earnings := make([]financeEarnings, 0, len(quarters))
	for _, q := range quarters {
		earnings = append(earnings, financeEarnings{
			Symbol:    symbol,
			Quarter:   q,
			RevenueM:  round2(500 + rng.Float64()*9500),
			EPS:       round2(rng.Float64() * 8),
			Surprise:  round2((rng.Float64() - 0.5) * 20),
			Simulated: true,
		})
	}
	return earnings
}

func lastFourQuarters(now time.Time) []string {
	quarters := make([]string, 0, 4)
	year, quarter := now.Year(), (int(now.Month())-1)/3+1
	for i := 0; i < 4; i++ {
		quarter--
		if quarter == 0 {
			quarter = 4
			year--
		}
		quarters = append(quarters, quarterLabel(year, quarter))
	}
	return quarters
}

func quarterLabel(year, quarter int) string {
	return fmt.Sprintf("Q%d %d", quarter, year)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
