package chi

import (
	"github.com/cmarsiglia/habitai/internal/domain/amenity"
	"github.com/cmarsiglia/habitai/internal/domain/ranking"
)

// criteriaBody is the criteria object of a recommendation request.
type criteriaBody struct {
	Positives []string `json:"positives"`
	Negatives []string `json:"negatives"`
}

// legacyCriteriaBody is the Spanish criteria object accepted on /api/zonas.
type legacyCriteriaBody struct {
	Positivos []string `json:"positivos"`
	Negativos []string `json:"negativos"`
}

// recommendBody accepts both the English and the legacy Spanish field names.
// English names win when both are present.
type recommendBody struct {
	City             string              `json:"city"`
	Criteria         *criteriaBody       `json:"criteria"`
	Ciudad           string              `json:"ciudad"`
	CriteriosUsuario *legacyCriteriaBody `json:"criterios_usuario"`
}

// recommendInput is the normalized request checked by the validator.
type recommendInput struct {
	City      string   `validate:"required"`
	Positives []string `validate:"omitempty,max=32"`
	Negatives []string `validate:"omitempty,max=32"`
}

func (b recommendBody) normalize() recommendInput {
	in := recommendInput{City: b.City}
	if in.City == "" {
		in.City = b.Ciudad
	}
	switch {
	case b.Criteria != nil:
		in.Positives = b.Criteria.Positives
		in.Negatives = b.Criteria.Negatives
	case b.CriteriosUsuario != nil:
		in.Positives = b.CriteriosUsuario.Positivos
		in.Negatives = b.CriteriosUsuario.Negativos
	}
	return in
}

// contributionResponse is one criterion's share of a heuristic score.
type contributionResponse struct {
	Keyword  string  `json:"keyword"`
	Metric   string  `json:"metric"`
	Polarity string  `json:"polarity"`
	Value    float64 `json:"value"`
}

// resultResponse is one ranked neighborhood. Exactly one of Score and
// PredictedRating is set.
type resultResponse struct {
	Barrio           string                 `json:"barrio"`
	Ciudad           string                 `json:"ciudad"`
	DistParquesKm    float64                `json:"dist_parques_km"`
	DistColegiosKm   float64                `json:"dist_colegios_km"`
	DistClinicasKm   float64                `json:"dist_clinicas_km"`
	DistCentroscomKm float64                `json:"dist_centroscom_km"`
	Score            *float64               `json:"score,omitempty"`
	PredictedRating  *float64               `json:"predicted_rating,omitempty"`
	Contributions    []contributionResponse `json:"contributions,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type rootResponse struct {
	Message string `json:"message"`
	Name    string `json:"name"`
	Version string `json:"version"`
}

type readinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func resultToResponse(r ranking.Result, explain bool) resultResponse {
	n := r.Neighborhood()
	out := resultResponse{
		Barrio:           n.Name(),
		Ciudad:           n.City(),
		DistParquesKm:    n.Distance(amenity.Parks),
		DistColegiosKm:   n.Distance(amenity.Schools),
		DistClinicasKm:   n.Distance(amenity.Clinics),
		DistCentroscomKm: n.Distance(amenity.Malls),
	}
	if s, ok := r.Score(); ok {
		out.Score = &s
	}
	if p, ok := r.PredictedRating(); ok {
		out.PredictedRating = &p
	}
	if explain {
		for _, c := range r.Contributions() {
			out.Contributions = append(out.Contributions, contributionResponse{
				Keyword:  c.Keyword,
				Metric:   c.Category.Column(),
				Polarity: string(c.Polarity),
				Value:    c.Value,
			})
		}
	}
	return out
}
