package handler

import (
	"github.com/jneverifica/firmas-system/internal/core/ports"
)

// Field names mirror the worksheet columns the workers already know,
// hence the Spanish JSON keys.
type screeningItemRequest struct {
	Date         string `json:"fecha"         validate:"required"`
	Organization string `json:"partido"       validate:"required"`
	Shift        string `json:"turno"`
	StartTime    string `json:"hora_inicio"`
	EndTime      string `json:"hora_fin"`
	FormNumber   string `json:"num_fic"       validate:"required"`
	IdentityCode string `json:"dni"           validate:"required"`
	Conforms     *bool  `json:"conforme"      validate:"required"`
	Escalate     bool   `json:"para_perito"`
	Notes        string `json:"observaciones"`
}

type screeningSubmitResponse struct {
	Recorded int `json:"recorded"`
}

type verdictItemRequest struct {
	Date         string `json:"fecha"           validate:"required"`
	Organization string `json:"partido"         validate:"required"`
	TransitTime  string `json:"traslado_reniec"`
	StartTime    string `json:"inicio_informes"`
	EndTime      string `json:"fin_informes"`
	IdentityCode string `json:"dni"             validate:"required"`
	FormNumber   string `json:"num_fic"         validate:"required"`
	Authentic    bool   `json:"autentica"`
	Forged       bool   `json:"falsa"`
	MinutesSpent int    `json:"tiempo_min"      validate:"min=0"`
	Notes        string `json:"observaciones"`
	Report       string `json:"informe"`
}

type verdictSubmitResponse struct {
	Accepted int                  `json:"accepted"`
	Rejected int                  `json:"rejected"`
	Results  []ports.VerdictResult `json:"results"`
}

func (r screeningItemRequest) toInput() ports.ScreeningInput {
	return ports.ScreeningInput{
		Date:         r.Date,
		Organization: r.Organization,
		Shift:        r.Shift,
		StartTime:    r.StartTime,
		EndTime:      r.EndTime,
		FormNumber:   r.FormNumber,
		IdentityCode: r.IdentityCode,
		Conforms:     r.Conforms,
		Escalate:     r.Escalate,
		Notes:        r.Notes,
	}
}

func (r verdictItemRequest) toInput() ports.VerdictInput {
	return ports.VerdictInput{
		Date:         r.Date,
		Organization: r.Organization,
		TransitTime:  r.TransitTime,
		StartTime:    r.StartTime,
		EndTime:      r.EndTime,
		IdentityCode: r.IdentityCode,
		FormNumber:   r.FormNumber,
		Authentic:    r.Authentic,
		Forged:       r.Forged,
		MinutesSpent: r.MinutesSpent,
		Notes:        r.Notes,
		Report:       r.Report,
	}
}
