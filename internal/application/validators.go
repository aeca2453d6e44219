package application

import (
	"fmt"
	"regexp"
	"strings"
)

// Validator contiene funciones de validación de datos de personas y cuentas
type Validator struct{}

// ValidateEmail valida el formato de un email
func (v *Validator) ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("el email es requerido")
	}

	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

	if !emailRegex.MatchString(email) {
		return fmt.Errorf("el formato del email '%s' no es válido", email)
	}

	return nil
}

// ValidatePhone valida el formato de un teléfono
func (v *Validator) ValidatePhone(phone string) error {
	if phone == "" {
		return fmt.Errorf("el teléfono es requerido")
	}

	cleanPhone := strings.ReplaceAll(phone, " ", "")
	cleanPhone = strings.ReplaceAll(cleanPhone, "-", "")
	cleanPhone = strings.ReplaceAll(cleanPhone, "(", "")
	cleanPhone = strings.ReplaceAll(cleanPhone, ")", "")

	phoneRegex := regexp.MustCompile(`^\+?\d{7,15}$`)

	if !phoneRegex.MatchString(cleanPhone) {
		return fmt.Errorf("el teléfono '%s' debe tener entre 7 y 15 dígitos", phone)
	}

	return nil
}

// ValidateDocumentNumber valida el número de documento de un operador
func (v *Validator) ValidateDocumentNumber(docNumber string) error {
	if docNumber == "" {
		return fmt.Errorf("el número de documento es requerido")
	}

	cleanDoc := strings.ReplaceAll(docNumber, " ", "")
	cleanDoc = strings.ReplaceAll(cleanDoc, "-", "")

	if len(cleanDoc) < 6 || len(cleanDoc) > 15 {
		return fmt.Errorf("el número de documento debe tener entre 6 y 15 caracteres")
	}

	docRegex := regexp.MustCompile(`^[a-zA-Z0-9]+$`)

	if !docRegex.MatchString(cleanDoc) {
		return fmt.Errorf("el número de documento solo puede contener letras y números")
	}

	return nil
}

// ValidateName valida que un nombre no esté vacío y tenga formato válido
func (v *Validator) ValidateName(name, fieldName string) error {
	if name == "" {
		return fmt.Errorf("el %s es requerido", fieldName)
	}

	name = strings.TrimSpace(name)

	if len(name) < 2 {
		return fmt.Errorf("el %s debe tener al menos 2 caracteres", fieldName)
	}

	if len(name) > 50 {
		return fmt.Errorf("el %s no puede tener más de 50 caracteres", fieldName)
	}

	nameRegex := regexp.MustCompile(`^[a-zA-ZáéíóúÁÉÍÓÚñÑ\s\-']+$`)

	if !nameRegex.MatchString(name) {
		return fmt.Errorf("el %s contiene caracteres no válidos", fieldName)
	}

	return nil
}

// ValidateDatosPersona valida los datos de cliente que llegan con reservas y consultas
func (v *Validator) ValidateDatosPersona(datos DatosPersona) []error {
	var errors []error

	if err := v.ValidateName(datos.Name, "nombre"); err != nil {
		errors = append(errors, err)
	}

	if err := v.ValidateName(datos.Surname, "apellido"); err != nil {
		errors = append(errors, err)
	}

	if err := v.ValidateEmail(datos.Email); err != nil {
		errors = append(errors, err)
	}

	// Teléfono es opcional
	if datos.Phone != nil && *datos.Phone != "" {
		if err := v.ValidatePhone(*datos.Phone); err != nil {
			errors = append(errors, err)
		}
	}

	return errors
}

// FormatValidationErrors formatea una lista de errores en un mensaje legible
func (v *Validator) FormatValidationErrors(errors []error) string {
	if len(errors) == 0 {
		return ""
	}

	msgs := make([]string, len(errors))
	for i, err := range errors {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}
