package prompts

import _ "embed"

// Embedded prompt files

//go:embed seller_system.txt
var sellerSystem string

func SellerSystem() string { return sellerSystem }
