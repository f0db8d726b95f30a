package parser

import (
	"errors"
	"testing"

	"github.com/matheusmoreno/quichesaver/internal/domain"
)

func TestResolveKnownStores(t *testing.T) {
	r := NewRegistry()
	tests := []struct {
		url      string
		wantSite string
	}{
		{"https://www.magazineluiza.com.br/notebook/p/123", "magazineluiza.com.br"},
		{"https://magazineluiza.com.br/p/123", "magazineluiza.com.br"},
		{"https://www.americanas.com.br/produto/42", "americanas.com.br"},
		{"https://www.submarino.com.br/produto/42", "submarino.com.br"},
		{"https://www.shoptime.com.br/produto/42", "shoptime.com.br"},
		{"https://www.casasbahia.com.br/tv/p/55", "casasbahia.com.br"},
		{"https://www.extra.com.br/tv/p/55", "extra.com.br"},
		{"https://www.pontofrio.com.br/tv/p/55", "pontofrio.com.br"},
		{"https://www.kabum.com.br/produto/99", "kabum.com.br"},
		{"https://www.fastshop.com.br/web/p/d/X", "fastshop.com.br"},
		{"https://www.amazon.com.br/dp/B000000000", "amazon.com.br"},
		{"https://www.boadica.com.br/produto/1", "boadica.com.br"},
	}
	for _, tt := range tests {
		p, siteID, err := r.Resolve(tt.url)
		if err != nil {
			t.Errorf("Resolve(%q): unexpected error %v", tt.url, err)
			continue
		}
		if siteID != tt.wantSite {
			t.Errorf("Resolve(%q) site = %q, want %q", tt.url, siteID, tt.wantSite)
		}
		if p == nil {
			t.Errorf("Resolve(%q) returned nil parser", tt.url)
		}
	}
}

// An unregistered domain must fail; there is no default parser to fall
// through to.
func TestResolveUnsupportedSite(t *testing.T) {
	r := NewRegistry()
	urls := []string{
		"https://www.example.com/p/1",
		"https://mercadolivre.com.br/p/1",
		"https://amazon.com/dp/B000000000", // .com, not the .com.br store
		"not a url at all",
		"",
	}
	for _, url := range urls {
		_, _, err := r.Resolve(url)
		if !errors.Is(err, domain.ErrUnsupportedSite) {
			t.Errorf("Resolve(%q) error = %v, want ErrUnsupportedSite", url, err)
		}
	}
}

func TestBySite(t *testing.T) {
	r := NewRegistry()
	if _, err := r.BySite("kabum.com.br"); err != nil {
		t.Errorf("BySite(kabum.com.br): %v", err)
	}
	if _, err := r.BySite("example.com"); !errors.Is(err, domain.ErrUnsupportedSite) {
		t.Errorf("BySite(example.com) error = %v, want ErrUnsupportedSite", err)
	}
}

func TestStoreDomain(t *testing.T) {
	got, err := StoreDomain("https://produto.mercado.magazineluiza.com.br/x/y")
	if err != nil {
		t.Fatalf("StoreDomain: %v", err)
	}
	if got != "magazineluiza.com.br" {
		t.Errorf("StoreDomain = %q, want magazineluiza.com.br", got)
	}
}

func TestSitesSortedAndComplete(t *testing.T) {
	r := NewRegistry()
	sites := r.Sites()
	if len(sites) != 11 {
		t.Fatalf("expected 11 registered stores, got %d: %v", len(sites), sites)
	}
	for i := 1; i < len(sites); i++ {
		if sites[i-1] >= sites[i] {
			t.Fatalf("sites not sorted: %v", sites)
		}
	}
}
