package exporter

// Exporter is a registered exporting firm. Records are immutable after
// registration; the workflow core only ever reads them back.
type Exporter struct {
	ID            int64
	FirmName      string
	IEC           string
	ContactPerson string
	Country       string
}
