package catalog

import "strings"

const marketplacePrefix = "MLM"

// MercadoLibreLink derives the public listing URL for a product ID. The
// marketplace encodes IDs as MLM<digits> but publishes listings under
// MLM-<digits>, so a single hyphen is inserted after the prefix. IDs
// without the prefix yield an empty string.
func MercadoLibreLink(productID string) string {
	if productID == "" || !strings.HasPrefix(productID, marketplacePrefix) {
		return ""
	}
	return "https://articulo.mercadolibre.com.mx/" + marketplacePrefix + "-" + productID[len(marketplacePrefix):]
}
