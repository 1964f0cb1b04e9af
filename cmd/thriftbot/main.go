package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"thriftbot-go/internal/config"
	"thriftbot-go/internal/content"
	"thriftbot-go/internal/database"
	"thriftbot-go/internal/inventory"
	"thriftbot-go/internal/logger"
	"thriftbot-go/internal/research"
)

const usage = `thriftbot - reseller inventory and listing assistant

Usage:
  thriftbot <command> [flags]

Commands:
  add       Log a new find into inventory
  analyze   Price an item: market stats, tiers, profit scenarios, auction plan
  list      Show inventory, optionally filtered by status
  research  Scrape market comparables for a search term
  listed    Mark an item listed at a price
  sold      Mark an item sold at a price
  adjust    Run the stale-listing advisor (dry run unless -apply)
  describe  Generate listing copy for an item
  export    Write the eBay bulk-upload CSV or a JSON dump
  sweep     Run the scheduled stale-listing sweeper until interrupted
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(cfg.Logger.Level, cfg.Logger.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	db, err := database.NewDatabase(cfg.Database.DSN)
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}

	app := &app{
		cfg:     &cfg,
		log:     log,
		service: inventory.NewService(log, db, &cfg),
	}

	if err := app.run(os.Args[1], os.Args[2:]); err != nil {
		log.Fatal("Command failed", zap.String("command", os.Args[1]), zap.Error(err))
	}
}

type app struct {
	cfg     *config.Config
	log     *zap.Logger
	service *inventory.Service
}

func (a *app) run(command string, args []string) error {
	switch command {
	case "add":
		return a.cmdAdd(args)
	case "analyze":
		return a.cmdAnalyze(args)
	case "list":
		return a.cmdList(args)
	case "research":
		return a.cmdResearch(args)
	case "listed":
		return a.cmdListed(args)
	case "sold":
		return a.cmdSold(args)
	case "adjust":
		return a.cmdAdjust(args)
	case "describe":
		return a.cmdDescribe(args)
	case "export":
		return a.cmdExport(args)
	case "sweep":
		return a.cmdSweep()
	case "help", "-h", "--help":
		fmt.Print(usage)
		return nil
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) cmdAdd(args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	category := fs.String("category", "", "item category")
	brand := fs.String("brand", "", "brand")
	name := fs.String("name", "", "item name (required)")
	size := fs.String("size", "", "size")
	color := fs.String("color", "", "color")
	condition := fs.String("condition", "", "condition grade (New, Like-New, Good, Fair, Poor)")
	cost := fs.Float64("cost", 0, "acquisition cost")
	sku := fs.String("sku", "", "explicit SKU (minted when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	item, err := a.service.AddItem(inventory.AddItemParams{
		SKU:       *sku,
		Category:  *category,
		Brand:     *brand,
		Name:      *name,
		Size:      *size,
		Color:     *color,
		Condition: *condition,
		Cost:      *cost,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Added %s: %s %s ($%.2f)\n", item.SKU, item.Brand, item.Name, item.Cost)
	return nil
}

func (a *app) cmdAnalyze(args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	sku := fs.String("sku", "", "item SKU (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	analysis, err := a.service.Analyze(*sku)
	if err != nil {
		return err
	}

	printAnalysis(analysis)
	return nil
}

func printAnalysis(a *inventory.Analysis) {
	fmt.Printf("\n%s: %s %s (%s, cost $%.2f)\n",
		a.Item.SKU, a.Item.Brand, a.Item.Name, a.Item.Condition, a.Item.Cost)

	if a.MarketStats.Empty() {
		fmt.Println("Market signal: none (multiplier-only pricing)")
	} else {
		fmt.Printf("Market signal: %d comps, median $%.2f, range $%.2f-$%.2f\n",
			a.MarketStats.Count, a.MarketStats.Median, a.MarketStats.Min, a.MarketStats.Max)
	}

	fmt.Printf("Break-even: $%.2f\n", a.Recommendation.BreakEven)
	if a.Recommendation.FloorApplied {
		fmt.Println("Note: break-even floor applied to the conservative tier")
	}

	fmt.Println("\nTier          Price     Fees      Net Profit  ROI")
	for _, s := range a.Scenarios {
		roi := "N/A"
		if s.Ledger.ROIDefined {
			roi = fmt.Sprintf("%.1f%%", s.Ledger.ROI)
		}
		fmt.Printf("%-12s  $%-7.2f  $%-7.2f  $%-9.2f  %s\n",
			s.Tier, s.Price, s.Ledger.Fees.TotalFees, s.Ledger.NetProfit, roi)
	}

	fmt.Printf("\nAuction: start $%.2f, %d days, BIN $%.2f\n",
		a.Auction.StartingPrice, a.Auction.DurationDays, a.Auction.BuyItNow)
}

func (a *app) cmdList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	status := fs.String("status", "", "filter by status (inventory, listed, sold)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	items, err := a.service.ListItems(*status)
	if err != nil {
		return err
	}

	fmt.Printf("%-16s  %-12s  %-24s  %-9s  %8s  %10s\n",
		"SKU", "Category", "Item", "Status", "Cost", "Price")
	for _, item := range items {
		price := item.SuggestedPrice
		if item.ListedPrice > 0 {
			price = item.ListedPrice
		}
		if item.SoldPrice > 0 {
			price = item.SoldPrice
		}
		fmt.Printf("%-16s  %-12s  %-24s  %-9s  $%7.2f  $%9.2f\n",
			item.SKU, item.Category, item.Brand+" "+item.Name, item.Status, item.Cost, price)
	}
	return nil
}

func (a *app) cmdResearch(args []string) error {
	fs := flag.NewFlagSet("research", flag.ExitOnError)
	term := fs.String("term", "", "search term (required)")
	category := fs.String("category", "", "category tag for the stored comparables")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client := research.NewClient(&a.cfg.Research, a.log)
	comps, err := client.Search(context.Background(), *term, *category)
	if err != nil {
		return err
	}

	saved, err := a.service.SaveComparables(comps)
	if err != nil {
		return err
	}
	fmt.Printf("Saved %d of %d comparables for %q\n", saved, len(comps), *term)
	return nil
}

func (a *app) cmdListed(args []string) error {
	fs := flag.NewFlagSet("listed", flag.ExitOnError)
	sku := fs.String("sku", "", "item SKU (required)")
	price := fs.Float64("price", 0, "listing price")
	if err := fs.Parse(args); err != nil {
		return err
	}

	item, err := a.service.MarkListed(*sku, *price)
	if err != nil {
		return err
	}
	fmt.Printf("%s listed at $%.2f\n", item.SKU, item.ListedPrice)
	return nil
}

func (a *app) cmdSold(args []string) error {
	fs := flag.NewFlagSet("sold", flag.ExitOnError)
	sku := fs.String("sku", "", "item SKU (required)")
	price := fs.Float64("price", 0, "sale price")
	if err := fs.Parse(args); err != nil {
		return err
	}

	item, err := a.service.MarkSold(*sku, *price)
	if err != nil {
		return err
	}

	roi := "N/A"
	if item.ROIDefined {
		roi = fmt.Sprintf("%.1f%%", item.ROIPercentage)
	}
	fmt.Printf("%s sold at $%.2f, fees $%.2f, net profit $%.2f, ROI %s\n",
		item.SKU, item.SoldPrice, item.TotalFees, item.NetProfit, roi)
	return nil
}

func (a *app) cmdAdjust(args []string) error {
	fs := flag.NewFlagSet("adjust", flag.ExitOnError)
	apply := fs.Bool("apply", false, "write recommended prices back to the listings")
	if err := fs.Parse(args); err != nil {
		return err
	}

	adjustments, err := a.service.SweepStale(*apply)
	if err != nil {
		return err
	}
	if len(adjustments) == 0 {
		fmt.Println("No stale listings need adjustment.")
		return nil
	}

	for _, adj := range adjustments {
		fmt.Printf("%s: %d days listed, $%.2f -> $%.2f\n",
			adj.SKU, adj.DaysListed, adj.CurrentPrice, adj.NewPrice)
	}
	if !*apply {
		fmt.Println("Dry run; re-run with -apply to update listings.")
	}
	return nil
}

func (a *app) cmdDescribe(args []string) error {
	fs := flag.NewFlagSet("describe", flag.ExitOnError)
	sku := fs.String("sku", "", "item SKU (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	item, err := a.service.GetItem(*sku)
	if err != nil {
		return err
	}

	generator := content.NewClient(&a.cfg.Content, a.log)
	result := generator.Listing(context.Background(), *item)

	fmt.Printf("[%s]\n%s\n\n%s\n", result.Source, result.Title, result.Description)
	return nil
}

func (a *app) cmdSweep() error {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sigchan := make(chan os.Signal, 1)
		signal.Notify(sigchan, syscall.SIGINT, syscall.SIGTERM)
		<-sigchan
		a.log.Info("Shutdown signal received, stopping sweeper...")
		cancel()
	}()

	sweeper := inventory.NewSweeper(a.log, a.service, a.cfg.Sweep.CronSpec)
	return sweeper.Run(ctx)
}
