package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"thriftbot-go/internal/content"
	"thriftbot-go/internal/export"
	"thriftbot-go/internal/models"
	"thriftbot-go/internal/pricing"
)

func (a *app) cmdExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	format := fs.String("format", "csv", "export format: csv or json")
	out := fs.String("out", "", "output file (required)")
	includeSold := fs.Bool("include-sold", false, "include sold items")
	auction := fs.Bool("auction", false, "export auction-format rows instead of fixed price")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *out == "" {
		return fmt.Errorf("export requires -out")
	}

	items, err := a.service.ListItems("")
	if err != nil {
		return err
	}
	if !*includeSold {
		filtered := items[:0]
		for _, item := range items {
			if item.Status != models.StatusSold {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}

	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", *out, err)
	}
	defer f.Close()

	switch *format {
	case "json":
		err = export.WriteJSON(f, items)
	case "csv":
		listings, buildErr := a.buildListings(items, *auction)
		if buildErr != nil {
			return buildErr
		}
		err = export.WriteEbayCSV(f, listings)
	default:
		return fmt.Errorf("unknown export format %q", *format)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Exported %d items to %s\n", len(items), *out)
	return nil
}

// buildListings pairs each item with listing copy and, when requested, an
// auction plan derived from its current price.
func (a *app) buildListings(items []models.InventoryItem, auction bool) ([]export.Listing, error) {
	generator := content.NewClient(&a.cfg.Content, a.log)
	ctx := context.Background()

	listings := make([]export.Listing, 0, len(items))
	for _, item := range items {
		l := export.Listing{
			Item: item,
			Copy: generator.Listing(ctx, item),
		}

		if auction {
			price := item.ListedPrice
			if price == 0 {
				price = item.SuggestedPrice
			}
			if price > 0 {
				plan, err := pricing.DeriveAuction(price, a.cfg.Pricing.Auction.ShippingCost, a.cfg.Pricing.Auction.FreeShipping)
				if err != nil {
					return nil, fmt.Errorf("could not derive auction for %s: %w", item.SKU, err)
				}
				l.Auction = &plan
			}
		}
		listings = append(listings, l)
	}
	return listings, nil
}
