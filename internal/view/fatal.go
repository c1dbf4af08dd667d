package view

import "fmt"

// FatalError is the blocking full-screen state shown when the API cannot be
// reached at startup.
type FatalError struct {
	Title      string
	Message    string
	RetryLabel string
	HelpLabel  string
	Help       []string
}

// NewFatalError builds the overlay. local selects the development variant
// that points at the local API server.
func NewFatalError(local bool, apiBaseURL string) FatalError {
	f := FatalError{
		Title:      "Error de Conexión",
		RetryLabel: "Reintentar",
		HelpLabel:  "Ayuda",
	}
	if local {
		f.Message = "No se puede conectar con el servidor. Verifica que esté ejecutándose en http://localhost:5000"
		f.Help = []string{
			"Verifica que el servidor esté ejecutándose: python app.py",
			"Confirma que esté en el puerto 5000: http://localhost:5000",
			"Verifica tu conexión a internet",
			"Refresca la página",
		}
		return f
	}
	f.Message = "No se puede conectar con el servidor. Por favor, inténtalo más tarde."
	f.Help = []string{
		"Verifica tu conexión a internet",
		"El servidor está siendo configurado, inténtalo en unos minutos",
		"Contacta al administrador si el problema persiste",
		fmt.Sprintf("URL de la API: %s", apiBaseURL),
	}
	return f
}
