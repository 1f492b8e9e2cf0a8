package domain

import "time"

// ModuleCode identifies one of the product modules a tenant can enable
type ModuleCode string

const (
	ModuleScheduling ModuleCode = "scheduling"
	ModuleLinkInBio  ModuleCode = "link_in_bio"
	ModuleInvoicing  ModuleCode = "invoicing"
)

// AllModules lists every known module code
var AllModules = []ModuleCode{
	ModuleScheduling,
	ModuleLinkInBio,
	ModuleInvoicing,
}

// IsValid returns true if the code is a known module
func (c ModuleCode) IsValid() bool {
	for _, m := range AllModules {
		if m == c {
			return true
		}
	}
	return false
}

// TenantModule is a per-tenant module enablement record.
// Feature routes are gated on Enabled.
type TenantModule struct {
	ID        int64
	TenantID  int64
	Module    ModuleCode
	Enabled   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
