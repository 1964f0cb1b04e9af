package inventory

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"thriftbot-go/internal/config"
	"thriftbot-go/internal/models"
	"thriftbot-go/internal/pricing"
)

// ErrNotFound is returned when a SKU has no inventory record.
var ErrNotFound = errors.New("item not found")

// Service joins the storage layer with the pricing engine. It owns all
// reads and writes of inventory records; the engine stays pure underneath.
type Service struct {
	logger *zap.Logger
	db     *gorm.DB
	cfg    *config.Config
}

// NewService creates the inventory service.
func NewService(logger *zap.Logger, db *gorm.DB, cfg *config.Config) *Service {
	return &Service{logger: logger, db: db, cfg: cfg}
}

// AddItemParams carries the fields a reseller logs for a new find.
type AddItemParams struct {
	SKU       string
	Category  string
	Brand     string
	Name      string
	Size      string
	Color     string
	Condition string
	Cost      float64
}

// AddItem records a new find. SKU is minted from the category and a short
// unique suffix when the caller does not supply one.
func (s *Service) AddItem(p AddItemParams) (*models.InventoryItem, error) {
	if p.Cost < 0 {
		return nil, fmt.Errorf("%w: negative cost %.2f", pricing.ErrInvalidInput, p.Cost)
	}
	if p.Name == "" {
		return nil, fmt.Errorf("%w: item name is required", pricing.ErrInvalidInput)
	}
	if p.Condition == "" {
		p.Condition = string(pricing.ConditionGood)
	}
	if p.SKU == "" {
		p.SKU = mintSKU(p.Category)
	}

	item := models.InventoryItem{
		SKU:       p.SKU,
		Category:  p.Category,
		Brand:     p.Brand,
		Name:      p.Name,
		Size:      p.Size,
		Color:     p.Color,
		Condition: p.Condition,
		Cost:      pricing.RoundCents(p.Cost),
		Status:    models.StatusInventory,
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("could not create item %s: %w", p.SKU, err)
	}

	s.logger.Info("Item added to inventory",
		zap.String("sku", item.SKU),
		zap.String("category", item.Category),
		zap.Float64("cost", item.Cost))
	return &item, nil
}

// mintSKU builds SKUs like "TB-CLO-1A2B3C4D".
func mintSKU(category string) string {
	prefix := "GEN"
	if c := strings.ToUpper(strings.TrimSpace(category)); len(c) >= 3 {
		prefix = c[:3]
	}
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("TB-%s-%s", prefix, suffix)
}

// GetItem loads one inventory record by SKU.
func (s *Service) GetItem(sku string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := s.db.Where("sku = ?", sku).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, sku)
		}
		return nil, fmt.Errorf("could not load item %s: %w", sku, err)
	}
	return &item, nil
}

// ListItems returns inventory records, optionally filtered by status.
func (s *Service) ListItems(status string) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	q := s.db.Order("created_at desc")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("could not list items: %w", err)
	}
	return items, nil
}

// TierLedger pairs a strategy tier with its full profit picture.
type TierLedger struct {
	Tier   string         `json:"tier"`
	Price  float64        `json:"price"`
	Ledger pricing.Ledger `json:"ledger"`
}

// Analysis is the full pricing workup for one item.
type Analysis struct {
	Item           models.InventoryItem   `json:"item"`
	MarketStats    pricing.Stats          `json:"market_stats"`
	Recommendation pricing.Recommendation `json:"recommendation"`
	Scenarios      []TierLedger           `json:"scenarios"`
	Auction        pricing.AuctionPlan    `json:"auction"`
}

// Analyze prices an item: aggregates stored comparables, runs the strategy
// engine, computes a profit ledger per tier, derives the auction plan, and
// persists the competitive tier as the item's suggested price.
func (s *Service) Analyze(sku string) (*Analysis, error) {
	item, err := s.GetItem(sku)
	if err != nil {
		return nil, err
	}

	obs, err := s.observationsFor(item)
	if err != nil {
		return nil, err
	}
	stats := pricing.Aggregate(obs, s.cfg.Pricing.OutlierMultiplier)
	if stats.Empty() {
		s.logger.Info("No market signal, using multiplier-only pricing", zap.String("sku", sku))
	}

	sched := s.cfg.Pricing.FeeSchedule()
	rec, err := pricing.SuggestPrices(pricingItem(item), stats, sched, s.cfg.Pricing.MultiplierTable(), s.cfg.Pricing.StrategyConfig())
	if err != nil {
		return nil, fmt.Errorf("could not price item %s: %w", sku, err)
	}
	if rec.FloorApplied {
		s.logger.Warn("Break-even floor applied: multiplier pricing would not cover fees",
			zap.String("sku", sku),
			zap.Float64("break_even", rec.BreakEven))
	}

	scenarios, err := s.tierLedgers(item.Cost, rec, sched)
	if err != nil {
		return nil, err
	}

	auction, err := pricing.DeriveAuction(rec.Competitive, s.cfg.Pricing.Auction.ShippingCost, s.cfg.Pricing.Auction.FreeShipping)
	if err != nil {
		return nil, fmt.Errorf("could not derive auction for %s: %w", sku, err)
	}

	item.SuggestedPrice = rec.Competitive
	if err := s.db.Model(item).Update("suggested_price", item.SuggestedPrice).Error; err != nil {
		return nil, fmt.Errorf("could not persist suggested price for %s: %w", sku, err)
	}

	return &Analysis{
		Item:           *item,
		MarketStats:    stats,
		Recommendation: rec,
		Scenarios:      scenarios,
		Auction:        auction,
	}, nil
}

func pricingItem(item *models.InventoryItem) pricing.Item {
	return pricing.Item{
		SKU:       item.SKU,
		Category:  item.Category,
		Condition: pricing.Condition(item.Condition),
		Cost:      item.Cost,
	}
}

func (s *Service) tierLedgers(cost float64, rec pricing.Recommendation, sched pricing.FeeSchedule) ([]TierLedger, error) {
	tiers := []struct {
		name  string
		price float64
	}{
		{"conservative", rec.Conservative},
		{"competitive", rec.Competitive},
		{"aggressive", rec.Aggressive},
	}

	out := make([]TierLedger, 0, len(tiers))
	for _, t := range tiers {
		ledger, err := pricing.ProfitLedger(cost, t.price, sched)
		if err != nil {
			return nil, fmt.Errorf("could not compute %s ledger: %w", t.name, err)
		}
		out = append(out, TierLedger{Tier: t.name, Price: t.price, Ledger: ledger})
	}
	return out, nil
}

// observationsFor pulls stored comparables matching the item's search terms.
func (s *Service) observationsFor(item *models.InventoryItem) ([]pricing.Observation, error) {
	term := strings.TrimSpace(item.Brand + " " + item.Name)
	limit := s.cfg.Research.MaxResults
	if limit <= 0 {
		limit = 20
	}

	var comps []models.MarketComparable
	err := s.db.
		Where("search_term LIKE ? OR (category = ? AND category != '')", "%"+term+"%", item.Category).
		Order("scraped_at desc").
		Limit(limit).
		Find(&comps).Error
	if err != nil {
		return nil, fmt.Errorf("could not load comparables for %s: %w", item.SKU, err)
	}

	obs := make([]pricing.Observation, 0, len(comps))
	for _, c := range comps {
		obs = append(obs, c.ToObservation())
	}
	return obs, nil
}

// SaveComparables persists researched observations for later pricing runs.
func (s *Service) SaveComparables(comps []models.MarketComparable) (int, error) {
	saved := 0
	for i := range comps {
		if comps[i].TotalPrice <= 0 {
			continue
		}
		if comps[i].ScrapedAt.IsZero() {
			comps[i].ScrapedAt = time.Now()
		}
		if err := s.db.Create(&comps[i]).Error; err != nil {
			s.logger.Warn("Failed to save comparable", zap.String("title", comps[i].Title), zap.Error(err))
			continue
		}
		saved++
	}
	return saved, nil
}

// MarkListed moves an item to the listed state at the given price.
func (s *Service) MarkListed(sku string, price float64) (*models.InventoryItem, error) {
	if price < 0 {
		return nil, fmt.Errorf("%w: negative listing price %.2f", pricing.ErrInvalidInput, price)
	}
	item, err := s.GetItem(sku)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	item.ListedPrice = pricing.RoundCents(price)
	item.Status = models.StatusListed
	item.ListedAt = &now
	if err := s.db.Save(item).Error; err != nil {
		return nil, fmt.Errorf("could not mark %s listed: %w", sku, err)
	}

	s.logger.Info("Item listed", zap.String("sku", sku), zap.Float64("price", item.ListedPrice))
	return item, nil
}

// MarkSold finalizes a sale: the profit ledger is computed at the actual
// sale price and the fee and profit columns are written back to the record.
func (s *Service) MarkSold(sku string, salePrice float64) (*models.InventoryItem, error) {
	item, err := s.GetItem(sku)
	if err != nil {
		return nil, err
	}

	ledger, err := pricing.ProfitLedger(item.Cost, salePrice, s.cfg.Pricing.FeeSchedule())
	if err != nil {
		return nil, fmt.Errorf("could not compute sale ledger for %s: %w", sku, err)
	}

	now := time.Now()
	item.SoldPrice = ledger.SalePrice
	item.ListingFee = ledger.Fees.ListingFee
	item.PlatformFee = ledger.Fees.PlatformFee
	item.ProcessorFee = ledger.Fees.ProcessorFee
	item.TotalFees = ledger.Fees.TotalFees
	item.NetProfit = ledger.NetProfit
	item.ROIPercentage = ledger.ROI
	item.ROIDefined = ledger.ROIDefined
	item.Status = models.StatusSold
	item.SoldAt = &now

	if err := s.db.Save(item).Error; err != nil {
		return nil, fmt.Errorf("could not mark %s sold: %w", sku, err)
	}

	s.logger.Info("Item sold",
		zap.String("sku", sku),
		zap.Float64("sale_price", item.SoldPrice),
		zap.Float64("net_profit", item.NetProfit))
	return item, nil
}

// StaleAdjustment is one advisor recommendation produced by a sweep.
type StaleAdjustment struct {
	SKU          string  `json:"sku"`
	CurrentPrice float64 `json:"current_price"`
	NewPrice     float64 `json:"new_price"`
	DaysListed   int     `json:"days_listed"`
}

// SweepStale runs the adjustment advisor over every listed item and, when
// apply is set, writes the recommended prices back.
func (s *Service) SweepStale(apply bool) ([]StaleAdjustment, error) {
	items, err := s.ListItems(models.StatusListed)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var out []StaleAdjustment
	for i := range items {
		adj, days, err := s.adviseItem(&items[i], now)
		if err != nil {
			s.logger.Warn("Skipping item in stale sweep", zap.String("sku", items[i].SKU), zap.Error(err))
			continue
		}
		if adj == nil {
			continue
		}

		res := StaleAdjustment{
			SKU:          items[i].SKU,
			CurrentPrice: items[i].ListedPrice,
			NewPrice:     adj.NewPrice,
			DaysListed:   days,
		}
		out = append(out, res)

		if apply {
			if err := s.db.Model(&items[i]).Update("listed_price", adj.NewPrice).Error; err != nil {
				return out, fmt.Errorf("could not apply adjustment to %s: %w", items[i].SKU, err)
			}
		}
		s.logger.Info("Stale listing adjustment",
			zap.String("sku", res.SKU),
			zap.Float64("current", res.CurrentPrice),
			zap.Float64("suggested", res.NewPrice),
			zap.Int("days_listed", days),
			zap.Bool("applied", apply))
	}
	return out, nil
}

// adviseItem rebuilds the item's recommendation from current market data and
// asks the advisor whether the listed price should move.
func (s *Service) adviseItem(item *models.InventoryItem, now time.Time) (*pricing.Adjustment, int, error) {
	obs, err := s.observationsFor(item)
	if err != nil {
		return nil, 0, err
	}
	stats := pricing.Aggregate(obs, s.cfg.Pricing.OutlierMultiplier)

	rec, err := pricing.SuggestPrices(pricingItem(item), stats, s.cfg.Pricing.FeeSchedule(), s.cfg.Pricing.MultiplierTable(), s.cfg.Pricing.StrategyConfig())
	if err != nil {
		return nil, 0, err
	}

	days := item.DaysListed(now)
	return pricing.SuggestAdjustment(item.ListedPrice, days, rec, s.cfg.Pricing.Adjust), days, nil
}
