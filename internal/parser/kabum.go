package parser

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/matheusmoreno/quichesaver/internal/domain"
	"github.com/shopspring/decimal"
)

const siteKabum = "kabum.com.br"

// Kabum reads the Next.js data blob at the end of the page.
type Kabum struct{}

func (Kabum) Parse(html string) (*domain.ParsedProduct, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, elementNotFound(siteKabum, err.Error())
	}

	raw := doc.Find("script#__NEXT_DATA__").First().Text()
	if strings.TrimSpace(raw) == "" {
		return nil, elementNotFound(siteKabum, "script#__NEXT_DATA__")
	}

	var payload struct {
		Props struct {
			PageProps struct {
				ProductData struct {
					Name         string `json:"name"`
					Available    bool   `json:"available"`
					PriceDetails struct {
						DiscountPrice decimal.Decimal `json:"discountPrice"`
					} `json:"priceDetails"`
				} `json:"productData"`
			} `json:"pageProps"`
		} `json:"props"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, elementNotFound(siteKabum, "__NEXT_DATA__ json: "+err.Error())
	}

	product := payload.Props.PageProps.ProductData
	if product.Name == "" {
		return nil, elementNotFound(siteKabum, "productData.name")
	}
	if !product.Available || product.PriceDetails.DiscountPrice.IsZero() {
		return unavailable(product.Name), nil
	}
	return available(product.Name, product.PriceDetails.DiscountPrice), nil
}
