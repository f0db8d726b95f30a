package parser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/matheusmoreno/quichesaver/internal/domain"
)

const siteAmazon = "amazon.com.br"

// Amazon extracts the buy-box price. The price block comes in two class
// variants depending on the offer; the readable value lives in the hidden
// a-offscreen span. No buy-box price means the item cannot be bought.
type Amazon struct{}

func (Amazon) Parse(html string) (*domain.ParsedProduct, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, elementNotFound(siteAmazon, err.Error())
	}

	name := strings.TrimSpace(doc.Find("span#productTitle").First().Text())
	if name == "" {
		return nil, elementNotFound(siteAmazon, "span#productTitle")
	}

	priceSpan := doc.Find("span.priceToPay").First()
	if priceSpan.Length() == 0 {
		priceSpan = doc.Find("span.apexPriceToPay").First()
	}
	priceText := strings.TrimSpace(priceSpan.Find("span.a-offscreen").First().Text())
	if priceText == "" {
		return unavailable(name), nil
	}

	price, err := ParseBRL(priceText)
	if err != nil {
		return nil, priceUnparseable(siteAmazon, priceText)
	}
	return available(name, price), nil
}
