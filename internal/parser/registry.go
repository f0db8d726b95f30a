// Package parser extracts product snapshots from store pages. Each supported
// store contributes one SiteParser; the Registry dispatches on the registrable
// domain of the product URL. Supporting a new store means writing its parser
// and adding one register call below.
package parser

import (
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/matheusmoreno/quichesaver/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/net/publicsuffix"
)

type Registry struct {
	sites map[string]domain.SiteParser
}

// NewRegistry builds the registry with every supported store. The registry is
// read-only after construction.
func NewRegistry() *Registry {
	r := &Registry{sites: make(map[string]domain.SiteParser)}

	r.register(siteBoadica, Boadica{})
	r.register(siteMagazineLuiza, MagazineLuiza{})

	// americanas, submarino and shoptime share one storefront engine.
	r.register(siteAmericanas, Americanas{site: siteAmericanas})
	r.register("submarino.com.br", Americanas{site: "submarino.com.br"})
	r.register("shoptime.com.br", Americanas{site: "shoptime.com.br"})

	// Same for the Via group stores.
	r.register(siteCasasBahia, CasasBahia{site: siteCasasBahia})
	r.register("extra.com.br", CasasBahia{site: "extra.com.br"})
	r.register("pontofrio.com.br", CasasBahia{site: "pontofrio.com.br"})

	r.register(siteKabum, Kabum{})
	r.register(siteFastShop, FastShop{})
	r.register(siteAmazon, Amazon{})

	return r
}

func (r *Registry) register(siteID string, p domain.SiteParser) {
	r.sites[siteID] = p
}

// Resolve maps a product URL to the parser for its store. An URL whose
// registrable domain matches no registered store fails with ErrUnsupportedSite;
// there is no default parser.
func (r *Registry) Resolve(rawURL string) (domain.SiteParser, string, error) {
	siteID, err := StoreDomain(rawURL)
	if err != nil {
		return nil, "", domain.ErrUnsupportedSite
	}
	p, ok := r.sites[siteID]
	if !ok {
		return nil, "", domain.ErrUnsupportedSite
	}
	return p, siteID, nil
}

// BySite looks up a parser by the site identifier Resolve produced earlier.
func (r *Registry) BySite(siteID string) (domain.SiteParser, error) {
	p, ok := r.sites[siteID]
	if !ok {
		return nil, domain.ErrUnsupportedSite
	}
	return p, nil
}

// Sites lists the registered site identifiers, sorted, for display.
func (r *Registry) Sites() []string {
	out := make([]string, 0, len(r.sites))
	for siteID := range r.sites {
		out = append(out, siteID)
	}
	sort.Strings(out)
	return out
}

// StoreDomain derives the registrable domain of a product URL, e.g.
// "https://www.magazineluiza.com.br/p/123" -> "magazineluiza.com.br".
func StoreDomain(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", err
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return "", domain.ErrUnsupportedSite
	}
	return publicsuffix.EffectiveTLDPlusOne(host)
}

func available(name string, price decimal.Decimal) *domain.ParsedProduct {
	return &domain.ParsedProduct{
		Name: strings.TrimSpace(name),
		Snapshot: domain.ProductSnapshot{
			Price:      &price,
			Available:  true,
			ObservedAt: time.Now().UTC(),
		},
	}
}

func unavailable(name string) *domain.ParsedProduct {
	return &domain.ParsedProduct{
		Name: strings.TrimSpace(name),
		Snapshot: domain.ProductSnapshot{
			Available:  false,
			ObservedAt: time.Now().UTC(),
		},
	}
}

func elementNotFound(site, detail string) *domain.ParseError {
	return &domain.ParseError{Site: site, Reason: domain.ParseElementNotFound, Detail: detail}
}

func priceUnparseable(site, detail string) *domain.ParseError {
	return &domain.ParseError{Site: site, Reason: domain.ParsePriceUnparseable, Detail: detail}
}
