package persona

import "regexp"

// MaxFotoBytes is the photo attachment size limit.
const MaxFotoBytes = 2 * 1024 * 1024

var (
	documentNumberRe = regexp.MustCompile(`^\d{1,10}$`)
	allDigitsRe      = regexp.MustCompile(`^\d+$`)
	emailRe          = regexp.MustCompile(`^[\w.-]+@[a-zA-Z\d.-]+\.[a-zA-Z]{2,}$`)
	celularRe        = regexp.MustCompile(`^\d{10}$`)
)

// rule is a single independent validation check. Rules never short-circuit:
// every rule runs on every Validate call and violations accumulate in
// declaration order, which is also the display order.
type rule struct {
	check   func(Draft) bool
	message string
}

var rules = []rule{
	{
		check:   func(d Draft) bool { return documentNumberRe.MatchString(d.NumeroDocumento) },
		message: "El número de documento debe ser numérico y no mayor a 10 caracteres",
	},
	{
		check: func(d Draft) bool {
			return d.PrimerNombre != "" && len([]rune(d.PrimerNombre)) <= 30 && !allDigitsRe.MatchString(d.PrimerNombre)
		},
		message: "El primer nombre es obligatorio, no debe ser numérico y debe tener máximo 30 caracteres",
	},
	{
		check: func(d Draft) bool {
			if d.SegundoNombre == "" {
				return true
			}
			return len([]rune(d.SegundoNombre)) <= 30 && !allDigitsRe.MatchString(d.SegundoNombre)
		},
		message: "El segundo nombre no debe ser numérico y debe tener máximo 30 caracteres",
	},
	{
		check: func(d Draft) bool {
			return d.Apellidos != "" && len([]rune(d.Apellidos)) <= 60 && !allDigitsRe.MatchString(d.Apellidos)
		},
		message: "Los apellidos son obligatorios, no deben ser numéricos y deben tener máximo 60 caracteres",
	},
	{
		check:   func(d Draft) bool { return d.FechaNacimiento != "" },
		message: "La fecha de nacimiento es obligatoria",
	},
	{
		check:   func(d Draft) bool { return emailRe.MatchString(d.Email) },
		message: "El correo electrónico no es válido",
	},
	{
		check:   func(d Draft) bool { return celularRe.MatchString(d.Celular) },
		message: "El número de celular debe tener exactamente 10 dígitos",
	},
	{
		check:   func(d Draft) bool { return len(d.Foto) <= MaxFotoBytes },
		message: "La imagen no debe superar los 2MB",
	},
}

// Validate runs every rule against the draft and returns the violation
// messages in rule-declaration order. An empty result means the draft is
// submittable. The result is a fresh slice on every call — no state is
// carried between submit attempts.
func Validate(d Draft) []string {
	var violations []string
	for _, r := range rules {
		if !r.check(d) {
			violations = append(violations, r.message)
		}
	}
	return violations
}

// ValidDocumentNumber reports whether a bare document number has the valid
// shape. Used by the lookup and delete screens before any request is made.
func ValidDocumentNumber(num string) bool {
	return documentNumberRe.MatchString(num)
}
