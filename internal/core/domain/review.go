package domain

import (
	"errors"
	"time"
	"unicode/utf8"
)

// MinReportLength is the minimum character count for an expert's full report.
const MinReportLength = 200

var ErrMissingDisposition = errors.New("screening result missing disposition")
var ErrReportTooShort = errors.New("expert report below minimum length")
var ErrVerdictFlags = errors.New("verdict must set exactly one of authentic or forged")

// ScreeningOutcome is one append-only row in the "analistas" table: a single
// first-pass conformity decision by an analyst.
type ScreeningOutcome struct {
	ID           int64     `json:"id"`
	Date         string    `json:"fecha"`
	Worker       string    `json:"usuario"`
	Organization string    `json:"partido"`
	Shift        string    `json:"turno"`
	StartTime    string    `json:"hora_inicio"`
	EndTime      string    `json:"hora_fin"`
	FormNumber   string    `json:"num_fic"`
	IdentityCode string    `json:"dni"`
	Conforms     bool      `json:"conforme"`
	Escalate     bool      `json:"para_perito"`
	Notes        string    `json:"observaciones"`
	Timestamp    time.Time `json:"timestamp"`
}

// ExpertVerdict is one append-only row in the "peritos" table: a binding
// authenticity verdict on an escalated record. Exactly one of Authentic and
// Forged must be set.
type ExpertVerdict struct {
	ID           int64     `json:"id"`
	Date         string    `json:"fecha"`
	Worker       string    `json:"usuario"`
	Organization string    `json:"partido"`
	TransitTime  string    `json:"traslado_reniec"`
	StartTime    string    `json:"inicio_informes"`
	EndTime      string    `json:"fin_informes"`
	IdentityCode string    `json:"dni"`
	FormNumber   string    `json:"num_fic"`
	Authentic    bool      `json:"autentica"`
	Forged       bool      `json:"falsa"`
	MinutesSpent int       `json:"tiempo_min"`
	Notes        string    `json:"observaciones"`
	Report       string    `json:"informe"`
	Timestamp    time.Time `json:"timestamp"`
}

// Validate checks the verdict's intrinsic invariants before persistence.
func (v ExpertVerdict) Validate() error {
	// Characters, not bytes: accented text must not get a discount.
	if utf8.RuneCountInString(v.Report) < MinReportLength {
		return ErrReportTooShort
	}
	if v.Authentic == v.Forged {
		return ErrVerdictFlags
	}
	return nil
}
