package endpoints

import (
	"net/http"

	"github.com/aatuh/api-shield/httpx"
	"github.com/aatuh/api-shield/identifier"
	"github.com/aatuh/api-shield/validation"
)

// ValidateRequest is the body of POST /v1/validate. Every field is
// optional; an empty field is not checked.
type ValidateRequest struct {
	CPF     string `json:"cpf" validate:"omitempty,cpf"`
	Phone   string `json:"phone" validate:"omitempty,br_phone"`
	CEP     string `json:"cep" validate:"omitempty,cep"`
	Price   any    `json:"price" validate:"omitempty,price"`
	Comment string `json:"comment" validate:"omitempty,max=2000,nosqli,noxss"`
}

// ValidateResponse echoes the accepted identifiers in display format.
type ValidateResponse struct {
	Valid bool   `json:"valid"`
	CPF   string `json:"cpf,omitempty"`
	Phone string `json:"phone,omitempty"`
	CEP   string `json:"cep,omitempty"`
}

// Validate checks the submitted fields and answers 200 with the formatted
// identifiers, or 422 with one entry per failing field.
func (a *API) Validate(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if !a.decode(w, r, &req) {
		return
	}

	if err := a.validator.ValidateStruct(r.Context(), req); err != nil {
		if !validation.IsInvalid(err) {
			if a.log != nil {
				a.log.Error("validate request", "err", err)
			}
			httpx.WriteSimpleProblem(w, http.StatusInternalServerError,
				http.StatusText(http.StatusInternalServerError), "internal server error")
			return
		}
		httpx.WriteValidationProblem(w, "request has invalid fields", validation.Flatten(err))
		return
	}

	resp := ValidateResponse{Valid: true}
	if req.CPF != "" {
		resp.CPF = identifier.FormatCPF(req.CPF)
	}
	if req.Phone != "" {
		resp.Phone = identifier.FormatPhone(req.Phone)
	}
	if req.CEP != "" {
		resp.CEP = identifier.FormatCEP(req.CEP)
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}
