package parser

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/matheusmoreno/quichesaver/internal/domain"
)

const siteMagazineLuiza = "magazineluiza.com.br"

// MagazineLuiza reads the product JSON the page embeds in a data attribute.
// When the item is unavailable the full JSON is gone and only a reduced one
// (without the best price) remains on the wishlist element.
type MagazineLuiza struct{}

func (MagazineLuiza) Parse(html string) (*domain.ParsedProduct, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, elementNotFound(siteMagazineLuiza, err.Error())
	}

	if doc.Find("h1.header-product__title").Length() > 0 {
		raw, ok := doc.Find("div.js-header-product").Attr("data-product")
		if !ok {
			return nil, elementNotFound(siteMagazineLuiza, "div.js-header-product[data-product]")
		}
		var info struct {
			FullTitle         string `json:"fullTitle"`
			BestPriceTemplate string `json:"bestPriceTemplate"`
		}
		if err := json.Unmarshal([]byte(raw), &info); err != nil {
			return nil, elementNotFound(siteMagazineLuiza, "data-product json: "+err.Error())
		}
		price, err := ParseBRL(info.BestPriceTemplate)
		if err != nil {
			return nil, priceUnparseable(siteMagazineLuiza, info.BestPriceTemplate)
		}
		return available(info.FullTitle, price), nil
	}

	raw, ok := doc.Find("i.js-wishlist").Attr("data-product")
	if !ok {
		return nil, elementNotFound(siteMagazineLuiza, "i.js-wishlist[data-product]")
	}
	var info struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal([]byte(raw), &info); err != nil {
		return nil, elementNotFound(siteMagazineLuiza, "wishlist json: "+err.Error())
	}
	return unavailable(info.Name), nil
}
