package domain

import "errors"

// Column names the catalog spreadsheet must carry. All cells are consumed as
// text so identity codes and form numbers keep their leading zeros.
const (
	ColItem         = "item"
	ColFormNumber   = "NUM_FIC"
	ColOrgCode      = "COD_OP"
	ColIdentityCode = "COD_DNI"
)

var ErrCatalogFormat = errors.New("catalog missing required columns")

// CatalogRecord is one ficha row from the external catalog. Records are
// read-only reference data; they are never persisted by this system.
type CatalogRecord struct {
	Item         string `json:"item"`
	FormNumber   string `json:"num_fic"`
	OrgCode      string `json:"cod_op"`
	IdentityCode string `json:"dni"`
}

// Organizations maps organization codes to their display labels.
var Organizations = map[string]string{
	"1": "Partido 1",
	"2": "Partido 2",
}

// OrganizationLabel returns the label for code, falling back to the raw code
// for organizations not in the map.
func OrganizationLabel(code string) string {
	if label, ok := Organizations[code]; ok {
		return label
	}
	return code
}
