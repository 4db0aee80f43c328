package catalog

import (
	"testing"

	"github.com/sweetslice/storefront/pkg/enums"
)

func TestBadgesFor(t *testing.T) {
	badges := BadgesFor(SampleProducts()[0])
	if len(badges) != 3 {
		t.Fatalf("expected customizable, category and one tag badge, got %+v", badges)
	}
	if badges[0].Label != "Customizable" || badges[0].Variant != enums.BadgeVariantDefault {
		t.Fatalf("unexpected first badge %+v", badges[0])
	}
	if badges[1].Label != "cakes" || badges[1].Variant != enums.BadgeVariantSecondary {
		t.Fatalf("unexpected category badge %+v", badges[1])
	}
	if badges[2].Variant != enums.BadgeVariantOutline || badges[2].Class == "" {
		t.Fatalf("unexpected tag badge %+v", badges[2])
	}

	plain := BadgesFor(SampleProducts()[1])
	if len(plain) != 1 || plain[0].Variant != enums.BadgeVariantSecondary {
		t.Fatalf("expected category badge only, got %+v", plain)
	}
}

func TestNewProductDTOFormatsPrice(t *testing.T) {
	dto := NewProductDTO(SampleProducts()[2])
	if dto.BasePrice != "7.50" {
		t.Fatalf("expected 7.50, got %s", dto.BasePrice)
	}
	if dto.DietaryTags == nil || dto.Images == nil {
		t.Fatal("expected empty slices rather than nil")
	}
}
