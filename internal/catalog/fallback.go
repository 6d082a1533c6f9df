package catalog

import "github.com/da-nn-yy/Ethio-Farmers-Shop-sub001/internal/domain"

// FallbackListings returns the fixed built-in dataset used whenever the
// listing service is unreachable, returns a malformed payload, or
// returns nothing. The browse page is never empty-by-error. Fallback
// records carry no created_at, matching data that never hit the
// service.
func FallbackListings() []domain.Listing {
	return []domain.Listing{
		{
			ID:                1,
			Name:              "White Teff",
			LocalizedName:     "ነጭ ጤፍ",
			PricePerUnit:      85,
			AvailableQuantity: 120,
			Category:          "teff",
			Location:          "Debre Zeit, Oromia",
			Image:             PlaceholderAvatar,
			Freshness:         PlaceholderFreshness,
			Farmer: domain.Farmer{
				ID: 101, Name: "Abebe Kebede", Location: "Debre Zeit, Oromia",
				Rating: 4.8, ReviewCount: 124, Phone: PlaceholderPhone, IsVerified: true,
			},
		},
		{
			ID:                2,
			Name:              "Yirgacheffe Coffee",
			LocalizedName:     "ይርጋጨፌ ቡና",
			PricePerUnit:      320,
			AvailableQuantity: 45,
			Category:          "coffee",
			Location:          "Yirgacheffe, SNNPR",
			Image:             PlaceholderAvatar,
			Freshness:         PlaceholderFreshness,
			Farmer: domain.Farmer{
				ID: 102, Name: "Tigist Haile", Location: "Yirgacheffe, SNNPR",
				Rating: 4.9, ReviewCount: 89, Phone: PlaceholderPhone, IsVerified: true,
			},
		},
		{
			ID:                3,
			Name:              "Red Onion",
			LocalizedName:     "ቀይ ሽንኩርት",
			PricePerUnit:      35,
			AvailableQuantity: 300,
			Category:          "vegetables",
			Location:          "Meki, Oromia",
			Image:             PlaceholderAvatar,
			Freshness:         PlaceholderFreshness,
			Farmer: domain.Farmer{
				ID: 103, Name: "Getachew Alemu", Location: "Meki, Oromia",
				Rating: 4.3, ReviewCount: 51, Phone: PlaceholderPhone, IsVerified: false,
			},
		},
		{
			ID:                4,
			Name:              "Maize",
			LocalizedName:     "በቆሎ",
			PricePerUnit:      28,
			AvailableQuantity: 500,
			Category:          "maize",
			Location:          "Bahir Dar, Amhara",
			Image:             PlaceholderAvatar,
			Freshness:         PlaceholderFreshness,
			Farmer: domain.Farmer{
				ID: 104, Name: "Mulu Tadesse", Location: "Bahir Dar, Amhara",
				Rating: 4.1, ReviewCount: 33, Phone: PlaceholderPhone, IsVerified: false,
			},
		},
		{
			ID:                5,
			Name:              "Durum Wheat",
			LocalizedName:     "ስንዴ",
			PricePerUnit:      52,
			AvailableQuantity: 220,
			Category:          "wheat",
			Location:          "Gondar, Amhara",
			Image:             PlaceholderAvatar,
			Freshness:         PlaceholderFreshness,
			Farmer: domain.Farmer{
				ID: 105, Name: "Solomon Bekele", Location: "Gondar, Amhara",
				Rating: 4.5, ReviewCount: 67, Phone: PlaceholderPhone, IsVerified: true,
			},
		},
		{
			ID:                6,
			Name:              "Forest Honey",
			LocalizedName:     "ማር",
			PricePerUnit:      410,
			AvailableQuantity: 60,
			Category:          "honey",
			Location:          "Masha, SNNPR",
			Image:             PlaceholderAvatar,
			Freshness:         PlaceholderFreshness,
			Farmer: domain.Farmer{
				ID: 106, Name: "Hana Girma", Location: "Masha, SNNPR",
				Rating: 4.7, ReviewCount: 42, Phone: PlaceholderPhone, IsVerified: true,
			},
		},
	}
}
