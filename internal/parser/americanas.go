package parser

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/matheusmoreno/quichesaver/internal/domain"
	"github.com/shopspring/decimal"
)

const siteAmericanas = "americanas.com.br"

// Americanas covers the B2W storefronts (americanas, submarino, shoptime),
// which all publish a schema.org ld+json graph with a Product node carrying
// the lowest offer price. A zero or missing low price means out of stock.
type Americanas struct {
	site string
}

type ldGraphNode struct {
	Type   string `json:"@type"`
	Name   string `json:"name"`
	Offers struct {
		LowPrice decimal.Decimal `json:"lowPrice"`
	} `json:"offers"`
}

func (p Americanas) Parse(html string) (*domain.ParsedProduct, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, elementNotFound(p.site, err.Error())
	}

	var product *ldGraphNode
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var payload struct {
			Graph []ldGraphNode `json:"@graph"`
		}
		if err := json.Unmarshal([]byte(s.Text()), &payload); err != nil {
			return true
		}
		for i := range payload.Graph {
			if payload.Graph[i].Type == "Product" {
				product = &payload.Graph[i]
				return false
			}
		}
		return true
	})
	if product == nil {
		return nil, elementNotFound(p.site, "ld+json Product node")
	}

	if product.Offers.LowPrice.IsZero() {
		return unavailable(product.Name), nil
	}
	return available(product.Name, product.Offers.LowPrice), nil
}
