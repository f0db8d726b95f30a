package parser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/matheusmoreno/quichesaver/internal/domain"
)

const siteCasasBahia = "casasbahia.com.br"

// CasasBahia covers the Via group storefronts (casasbahia, extra, pontofrio).
// Name and price sit directly in the markup; the price span disappears when
// the item is out of stock.
type CasasBahia struct {
	site string
}

func (p CasasBahia) Parse(html string) (*domain.ParsedProduct, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, elementNotFound(p.site, err.Error())
	}

	name := strings.TrimSpace(doc.Find("h1").First().Text())
	if name == "" {
		return nil, elementNotFound(p.site, "h1 product name")
	}

	priceText := strings.TrimSpace(doc.Find("span#product-price").First().Text())
	if priceText == "" {
		return unavailable(name), nil
	}

	price, err := ParseBRL(priceText)
	if err != nil {
		return nil, priceUnparseable(p.site, priceText)
	}
	return available(name, price), nil
}
