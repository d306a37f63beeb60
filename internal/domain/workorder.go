package domain

// MaintenanceCategory is the work-order category a field may link to.
type MaintenanceCategory string

const (
	CategoryUnspecified     MaintenanceCategory = "MAINTENANCE_CATEGORY_UNSPECIFIED"
	CategoryPlumbing        MaintenanceCategory = "MAINTENANCE_CATEGORY_PLUMBING"
	CategoryElectrical      MaintenanceCategory = "MAINTENANCE_CATEGORY_ELECTRICAL"
	CategoryHVAC            MaintenanceCategory = "MAINTENANCE_CATEGORY_HVAC"
	CategoryPestControl     MaintenanceCategory = "MAINTENANCE_CATEGORY_PEST_CONTROL"
	CategoryCleaning        MaintenanceCategory = "MAINTENANCE_CATEGORY_CLEANING"
	CategoryCarpentry       MaintenanceCategory = "MAINTENANCE_CATEGORY_CARPENTRY"
	CategoryExterior        MaintenanceCategory = "MAINTENANCE_CATEGORY_EXTERIOR"
	CategoryApplianceRepair MaintenanceCategory = "MAINTENANCE_CATEGORY_APPLIANCE_REPAIR"
	CategorySecurity        MaintenanceCategory = "MAINTENANCE_CATEGORY_SECURITY"
	CategoryPainting        MaintenanceCategory = "MAINTENANCE_CATEGORY_PAINTING"
)

var maintenanceCategories = map[MaintenanceCategory]struct{}{
	CategoryUnspecified:     {},
	CategoryPlumbing:        {},
	CategoryElectrical:      {},
	CategoryHVAC:            {},
	CategoryPestControl:     {},
	CategoryCleaning:        {},
	CategoryCarpentry:       {},
	CategoryExterior:        {},
	CategoryApplianceRepair: {},
	CategorySecurity:        {},
	CategoryPainting:        {},
}

// Valid reports whether the category is one of the recognized values.
// The empty string is accepted and treated as unspecified.
func (c MaintenanceCategory) Valid() bool {
	if c == "" {
		return true
	}
	_, ok := maintenanceCategories[c]
	return ok
}

// WorkOrderSubCategory is the fine-grained work-order classification.
type WorkOrderSubCategory string

// SubCategoryUnspecified is the default sub-category.
const SubCategoryUnspecified WorkOrderSubCategory = "WORK_ORDER_SUB_CATEGORY_UNSPECIFIED"

var workOrderSubCategories = map[WorkOrderSubCategory]struct{}{
	SubCategoryUnspecified: {},
	// Plumbing
	"WORK_ORDER_SUB_CATEGORY_PLUMBING_CLOGGED_DRAIN":             {},
	"WORK_ORDER_SUB_CATEGORY_PLUMBING_FAUCET_LEAK":               {},
	"WORK_ORDER_SUB_CATEGORY_PLUMBING_TOILET_REPAIR_REPLACEMENT": {},
	"WORK_ORDER_SUB_CATEGORY_PLUMBING_PIPE_LEAK_BURST":           {},
	"WORK_ORDER_SUB_CATEGORY_PLUMBING_WATER_HEATER_REPAIR":       {},
	"WORK_ORDER_SUB_CATEGORY_PLUMBING_SEWER_BACKUP":              {},
	"WORK_ORDER_SUB_CATEGORY_PLUMBING_LOW_WATER_PRESSURE":        {},
	"WORK_ORDER_SUB_CATEGORY_PLUMBING_SHOWER_TUB_ISSUES":         {},
	"WORK_ORDER_SUB_CATEGORY_PLUMBING_GARBAGE_DISPOSAL_REPAIR":   {},
	// Electrical
	"WORK_ORDER_SUB_CATEGORY_ELECTRICAL_POWER_OUTAGE":                      {},
	"WORK_ORDER_SUB_CATEGORY_ELECTRICAL_LIGHT_FIXTURE_INSTALLATION_REPAIR": {},
	"WORK_ORDER_SUB_CATEGORY_ELECTRICAL_OUTLET_OR_SWITCH_NOT_WORKING":      {},
	"WORK_ORDER_SUB_CATEGORY_ELECTRICAL_CIRCUIT_BREAKER_TRIPPING":          {},
	"WORK_ORDER_SUB_CATEGORY_ELECTRICAL_WIRING_ISSUES":                     {},
	"WORK_ORDER_SUB_CATEGORY_ELECTRICAL_CEILING_FAN_INSTALLATION_REPAIR":   {},
	"WORK_ORDER_SUB_CATEGORY_ELECTRICAL_SMOKE_DETECTOR_ISSUE":              {},
	// HVAC
	"WORK_ORDER_SUB_CATEGORY_HVAC_AC_NOT_COOLING":          {},
	"WORK_ORDER_SUB_CATEGORY_HVAC_FURNACE_NOT_HEATING":     {},
	"WORK_ORDER_SUB_CATEGORY_HVAC_THERMOSTAT_MALFUNCTION":  {},
	"WORK_ORDER_SUB_CATEGORY_HVAC_AIR_FILTER_REPLACEMENT":  {},
	"WORK_ORDER_SUB_CATEGORY_HVAC_VENT_CLEANING":           {},
	// Pest control
	"WORK_ORDER_SUB_CATEGORY_PEST_CONTROL_RODENT_INFESTATION":      {},
	"WORK_ORDER_SUB_CATEGORY_PEST_CONTROL_COCKROACH_TREATMENT":     {},
	"WORK_ORDER_SUB_CATEGORY_PEST_CONTROL_PREVENTATIVE_PEST_CONTROL": {},
	"WORK_ORDER_SUB_CATEGORY_PEST_CONTROL_TERMITE_CONTROL":         {},
	"WORK_ORDER_SUB_CATEGORY_PEST_CONTROL_BEE_WASP_REMOVAL":        {},
	// Carpentry
	"WORK_ORDER_SUB_CATEGORY_CARPENTRY_DOOR_REPAIR_INSTALLATION": {},
	"WORK_ORDER_SUB_CATEGORY_CARPENTRY_WINDOW_FRAME_REPAIR":      {},
	"WORK_ORDER_SUB_CATEGORY_CARPENTRY_CABINET_REPAIR":           {},
	"WORK_ORDER_SUB_CATEGORY_CARPENTRY_DRYWALL_REPAIR":           {},
	"WORK_ORDER_SUB_CATEGORY_CARPENTRY_FLOORBOARD_REPAIR":        {},
	// Appliance repair
	"WORK_ORDER_SUB_CATEGORY_APPLIANCE_REPAIR_REFRIGERATOR_FAILURE":    {},
	"WORK_ORDER_SUB_CATEGORY_APPLIANCE_REPAIR_STOVE_OVEN_MALFUNCTION":  {},
	"WORK_ORDER_SUB_CATEGORY_APPLIANCE_REPAIR_DISHWASHER_FAILURE":      {},
	// Security
	"WORK_ORDER_SUB_CATEGORY_SECURITY_DOOR_LOCK_REPAIR":                        {},
	"WORK_ORDER_SUB_CATEGORY_SECURITY_SECURITY_SYSTEM_INTERCOM_MALFUNCTION":    {},
	// Painting
	"WORK_ORDER_SUB_CATEGORY_PAINTING_MOLD_REMEDIATION": {},
}

// Valid reports whether the sub-category is one of the recognized values.
// The empty string is accepted and treated as unspecified.
func (c WorkOrderSubCategory) Valid() bool {
	if c == "" {
		return true
	}
	_, ok := workOrderSubCategories[c]
	return ok
}
