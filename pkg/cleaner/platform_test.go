package cleaner

import (
	"regexp"
	"testing"

	"github.com/jmylchreest/ordermail/pkg/platform"
)

func TestPlatformCleaner(t *testing.T) {
	tests := []struct {
		name     string
		platform platform.Platform
		input    string
		want     string
	}{
		{
			name:     "flipkart_supercoins",
			platform: platform.Flipkart,
			input:    "Order ID: OD123456789012345\nYou earned 12 SuperCoins on this order\nWireless Mouse",
			want:     "Order ID: OD123456789012345\nWireless Mouse",
		},
		{
			name:     "flipkart_plus",
			platform: platform.Flipkart,
			input:    "Wireless Mouse\nFlipkart Plus members get free delivery",
			want:     "Wireless Mouse",
		},
		{
			name:     "flipkart_trailing",
			platform: platform.Flipkart,
			input:    "Wireless Mouse\nDid you know?\nYou can return within 7 days",
			want:     "Wireless Mouse",
		},
		{
			name:     "amazon_prime",
			platform: platform.Amazon,
			input:    "Order #123-4567890-1234567\nTry Prime free for 30 days\nArriving Friday",
			want:     "Order #123-4567890-1234567\nArriving Friday",
		},
		{
			name:     "amazon_recommendations",
			platform: platform.Amazon,
			input:    "Arriving Friday\n\nCustomers who bought this also bought\nUSB Hub ₹799\nHDMI Cable ₹299",
			want:     "Arriving Friday",
		},
		{
			name:     "myntra_insider",
			platform: platform.Myntra,
			input:    "Running Shoes\nYou earned 40 Insider Points\nSize 9",
			want:     "Running Shoes\nSize 9",
		},
		{
			name:     "ajio_points",
			platform: platform.Ajio,
			input:    "Denim Jacket\nAJIO Points credited",
			want:     "Denim Jacket",
		},
		{
			name:     "meesho_balance",
			platform: platform.Meesho,
			input:    "Cotton Kurti\nUse your Meesho Balance on the next order",
			want:     "Cotton Kurti",
		},
		{
			name:     "nykaa_prive",
			platform: platform.Nykaa,
			input:    "Lip Balm\nJoin Nykaa Prive today\nQty 2",
			want:     "Lip Balm\nQty 2",
		},
		{
			name:     "other_platform_rules_not_applied",
			platform: platform.Amazon,
			input:    "You earned 12 SuperCoins",
			want:     "You earned 12 SuperCoins",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewPlatform(tt.platform).Clean(tt.input)
			if err != nil {
				t.Fatalf("Clean() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Clean() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPlatformCleaner_GenericIsIdentity(t *testing.T) {
	inputs := []string{
		"",
		"  untouched  \n\n\n spacing ",
		"Try Prime free\nSuperCoins\nCustomers who bought this",
	}

	for _, p := range []platform.Platform{platform.Generic, platform.Parse("ebay"), platform.Platform("")} {
		c := NewPlatform(p)
		for _, in := range inputs {
			got, err := c.Clean(in)
			if err != nil {
				t.Fatalf("Clean() error = %v", err)
			}
			if got != in {
				t.Errorf("platform %q: Clean(%q) = %q, want unchanged", p, in, got)
			}
		}
	}
}

func TestPlatformCleaner_ExtraRules(t *testing.T) {
	c := NewPlatform(platform.Generic, PlatformRule{
		Action: DropLine,
		Expr:   regexp.MustCompile(`(?im)^[^\n]*\brate your purchase\b[^\n]*\n?`),
	})

	got, _ := c.Clean("Wireless Mouse\nRate your purchase\nDelivered")
	if got != "Wireless Mouse\nDelivered" {
		t.Errorf("Clean() = %q", got)
	}
}

func TestPlatformCleaner_Name(t *testing.T) {
	if got := NewPlatform(platform.Flipkart).Name(); got != "platform(flipkart)" {
		t.Errorf("Name() = %q, want %q", got, "platform(flipkart)")
	}
}
