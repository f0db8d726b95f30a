package parser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/matheusmoreno/quichesaver/internal/domain"
)

const siteBoadica = "boadica.com.br"

// Boadica is a price aggregator: the page shows a min and max quote. Both at
// R$ 0,00 means no store currently carries the item.
type Boadica struct{}

func (Boadica) Parse(html string) (*domain.ParsedProduct, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, elementNotFound(siteBoadica, err.Error())
	}

	name := strings.TrimSpace(doc.Find("div.nome").First().Text())
	if name == "" {
		return nil, elementNotFound(siteBoadica, "div.nome")
	}

	var quotes []string
	doc.Find("span").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if strings.HasPrefix(text, "R$") {
			quotes = append(quotes, text)
		}
	})
	if len(quotes) < 2 {
		return nil, elementNotFound(siteBoadica, "min/max quote spans")
	}

	minQuote, maxQuote := quotes[0], quotes[1]
	if minQuote == "R$ 0,00" && maxQuote == "R$ 0,00" {
		return unavailable(name), nil
	}

	price, err := ParseBRL(minQuote)
	if err != nil {
		return nil, priceUnparseable(siteBoadica, minQuote)
	}
	return available(name, price), nil
}
