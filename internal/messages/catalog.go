// Package messages resolves message keys to the short user-facing texts the
// UI renders. A built-in catalog covers every key the services reference; an
// external YAML file can overlay it at composition time.
package messages

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// builtin is the fallback catalog. Texts are the product's default locale.
var builtin = map[string]string{
	"auth_ok":       "Inicio de sesión correcto",
	"auth_fail":     "Usuario o contraseña no válidos",
	"user_exists":   "El usuario ya existe",
	"invalid_input": "Datos incompletos o inválidos",

	"email_invalid":     "El correo no es válido",
	"password_weak":     "La contraseña es débil",
	"too_many_attempts": "Demasiados intentos, espera un momento",

	"task_added":       "Tarea agregada",
	"task_updated":     "Tarea actualizada",
	"task_marked_done": "Tarea marcada como hecha",
	"task_not_found":   "No se encontró la tarea",
	"task_list_header": "Tus tareas:",
	"due_date_invalid": "La fecha no es válida (usa DD/MM)",

	"section_today":    "Hoy",
	"section_upcoming": "Próximas",
	"section_past":     "Anteriores",

	"status_overdue":   "VENCIDO",
	"status_due_today": "HOY",
	"status_due_soon":  "PRONTO",
	"status_on_time":   "A TIEMPO",

	"unexpected_error": "Ocurrió un error inesperado",
	"db_error":         "Error de base de datos",

	"greeting": "Hola {name}",
}

// Catalog maps message keys to templates with optional {placeholder} slots.
type Catalog struct {
	entries map[string]string
}

// Default returns a catalog backed only by the built-in texts.
func Default() *Catalog {
	entries := make(map[string]string, len(builtin))
	for k, v := range builtin {
		entries[k] = v
	}
	return &Catalog{entries: entries}
}

// Load reads a YAML key→text file and overlays it on the built-in catalog,
// so a partial translation still resolves every key.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var overlay map[string]string
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c := Default()
	for k, v := range overlay {
		c.entries[k] = v
	}
	return c, nil
}

// T resolves key to its text, substituting {name} placeholders from the
// alternating name/value pairs. Unknown keys resolve to the key itself so a
// missing translation never blanks the UI.
func (c *Catalog) T(key string, pairs ...string) string {
	text, ok := c.entries[key]
	if !ok {
		text = key
	}
	if len(pairs) < 2 {
		return text
	}

	oldnew := make([]string, 0, len(pairs))
	for i := 0; i+1 < len(pairs); i += 2 {
		oldnew = append(oldnew, "{"+pairs[i]+"}", pairs[i+1])
	}
	return strings.NewReplacer(oldnew...).Replace(text)
}

// Has reports whether key exists in the catalog.
func (c *Catalog) Has(key string) bool {
	_, ok := c.entries[key]
	return ok
}

// Keys returns the available message keys, sorted.
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Missing returns the required keys absent from the catalog. Used at
// composition time to fail loudly on an incomplete external catalog.
func (c *Catalog) Missing(required []string) []string {
	var missing []string
	for _, k := range required {
		if !c.Has(k) {
			missing = append(missing, k)
		}
	}
	return missing
}
