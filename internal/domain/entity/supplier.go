package entity

// Supplier proveedor de la cocina (tarjetas de la vista de pedidos).
type Supplier struct {
	ID          string
	Name        string
	Contact     string // email de pedidos
	Phone       string // formato internacional sin "+", p. ej. 34600112233
	Category    string
	Reliability int // 0–100
}

// WhatsAppURL devuelve el enlace de contacto directo, vacío si no hay teléfono.
func (s Supplier) WhatsAppURL() string {
	if s.Phone == "" {
		return ""
	}
	return "https://wa.me/" + s.Phone
}
