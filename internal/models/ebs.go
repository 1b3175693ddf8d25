package models

import "time"

// VolumeRecord represents one unattached EBS volume tracked by a scan
type VolumeRecord struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name,omitempty"`
	Status               string    `json:"status"`
	Size                 int       `json:"size"`
	VolumeType           string    `json:"volumeType,omitempty"`
	Region               string    `json:"region,omitempty"`
	AvailabilityZone     string    `json:"availabilityZone,omitempty"`
	CreationTime         time.Time `json:"creationTime"`
	TTL                  string    `json:"ttl"` // Remaining days as a decimal string, "0" means due for deletion
	EstimatedMonthlyCost float64   `json:"estimatedMonthlyCost,omitempty"`
	PricingSource        string    `json:"pricingSource,omitempty"` // "API", "Cache", "Default" or "N/A"
}

// Expired reports whether the volume's TTL has counted down to zero
func (v VolumeRecord) Expired() bool {
	return v.TTL == "0"
}

// ListedVolume is a volume as returned by the provider listing, before its TTL is resolved
type ListedVolume struct {
	VolumeRecord
	Tags map[string]string
}
