package inventory

// MetricsRecorder puerto de observabilidad del almacén. Lo implementa el adaptador de
// Prometheus; en tests se usa NopMetrics.
type MetricsRecorder interface {
	UsageRecorded()
	OperationRejected(op, reason string)
	AlertsDerived(total, unread, lowStock int)
	InventorySize(items int)
}

// NopMetrics descarta todas las métricas.
type NopMetrics struct{}

func (NopMetrics) UsageRecorded()                   {}
func (NopMetrics) OperationRejected(string, string) {}
func (NopMetrics) AlertsDerived(int, int, int)      {}
func (NopMetrics) InventorySize(int)                {}
