package parser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/matheusmoreno/quichesaver/internal/domain"
)

const siteFastShop = "fastshop.com.br"

// FastShop splits the price into integer and cents spans. The store serves a
// page without the title element when the product does not exist, which is
// treated as unavailable rather than an error.
type FastShop struct{}

func (FastShop) Parse(html string) (*domain.ParsedProduct, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, elementNotFound(siteFastShop, err.Error())
	}

	name := strings.TrimSpace(doc.Find("h1.title").First().Text())
	if name == "" {
		return unavailable(""), nil
	}

	fraction := strings.TrimSpace(doc.Find("span.price-fraction").First().Text())
	cents := strings.TrimSpace(doc.Find("span.price-cents").First().Text())
	if fraction == "" || cents == "" {
		return unavailable(name), nil
	}

	price, err := ParseBRL(fraction + cents)
	if err != nil {
		return nil, priceUnparseable(siteFastShop, fraction+cents)
	}
	return available(name, price), nil
}
