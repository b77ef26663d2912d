package retrieval

// The tables below are the configuration surface of the whole retrieval
// subsystem. They are matched against the folded (lower-case, accent-free)
// message text, so every term here is written accent-free. Keep them
// declarative: downstream behavior is meant to be auditable from this one
// file.

// genericTerms mark a message as browsing/greeting rather than a product
// question. A bare category mention ("co2", "fibra") counts as browse
// intent on purpose: someone typing one word wants the catalog, not a spec
// sheet.
var genericTerms = []string{
	"hola",
	"buenas",
	"buenos dias",
	"buenas tardes",
	"buenas noches",
	"saludos",
	"catalogo",
	"que venden",
	"que tienen",
	"que ofrecen",
	"que productos",
	"lista de productos",
	"precios",
	"co2",
	"fibra",
	"cnc",
	"router",
}

// storeInfoTerms trigger the verbatim store-policy section.
var storeInfoTerms = []string{
	"envio",
	"envios",
	"entrega",
	"garantia",
	"pago",
	"pagos",
	"factura",
	"facturacion",
	"meses sin intereses",
	"contacto",
	"telefono",
	"whatsapp",
	"correo",
	"direccion",
	"ubicacion",
	"sucursal",
	"horario",
	"tienda fisica",
}

// filterGroup names one product category and the message terms that imply
// it.
type filterGroup struct {
	Name  string
	Terms []string
}

// filterGroups drive both the embedding-search category constraint and the
// category recommendations. Order matters only for output stability.
var filterGroups = []filterGroup{
	{Name: "co2", Terms: []string{"co2"}},
	{Name: "fibra", Terms: []string{"fibra", "metal"}},
	{Name: "cnc", Terms: []string{"cnc", "router"}},
	{Name: "plasma", Terms: []string{"plasma"}},
	{Name: "chiller", Terms: []string{"chiller", "enfriador"}},
	{Name: "extractor", Terms: []string{"extractor", "extraccion"}},
	{Name: "compresor", Terms: []string{"compresor"}},
	{Name: "acrilico", Terms: []string{"acrilico"}},
	{Name: "pet", Terms: []string{"pet"}},
	{Name: "tubo", Terms: []string{"tubo", "tubos"}},
}

// machineFilterNames are the groups forwarded to the embedding search as
// category constraints; the accessory groups stay out so a chiller mention
// does not hide the machines it cools.
var machineFilterNames = map[string]bool{
	"co2":    true,
	"fibra":  true,
	"cnc":    true,
	"plasma": true,
}

// machineCategoryMarkers identify categories that denote a complete
// machine rather than a part or consumable.
var machineCategoryMarkers = []string{"maquina", "cortadora", "grabadora"}

// tubeTerms plus the brand names below trigger the laser-tube fallback.
var tubeTerms = []string{"tubo", "tubos", "tube"}

// tubeBrands are the known laser tube manufacturers in the catalog.
var tubeBrands = []string{"reci", "puri", "pury", "purui"}

// chillerTriggers and rotaryTriggers fire the cross-sell additions.
var chillerTriggers = []string{"chiller", "enfriador", "enfriamiento", "refrigeracion"}

var rotaryTriggers = []string{"rotativo", "rotatorio", "rotary", "eje rotativo"}

// rotaryMatchTerms are what a record must mention to count as a rotary
// accessory or rotary-capable machine.
var rotaryMatchTerms = []string{"rotativo", "rotary"}

// productNouns trigger the generic-product fallback when nothing more
// specific matched.
var productNouns = []string{
	"maquina",
	"maquinas",
	"cortadora",
	"cortadoras",
	"grabadora",
	"grabadoras",
	"laser",
	"equipo",
	"equipos",
}
