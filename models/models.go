package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the lifecycle stage of an order.
type OrderStatus string

const (
	StatusDraft      OrderStatus = "Draft"
	StatusQuote      OrderStatus = "Quote"
	StatusConfirmed  OrderStatus = "Confirmed"
	StatusInProgress OrderStatus = "In Progress"
	StatusReady      OrderStatus = "Ready"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
)

// OrderStatuses lists every status in lifecycle order.
var OrderStatuses = []OrderStatus{
	StatusDraft, StatusQuote, StatusConfirmed, StatusInProgress,
	StatusReady, StatusDelivered, StatusCancelled,
}

// PaymentMethod is how the customer pays for an order.
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "Cash"
	PaymentVodafoneCash PaymentMethod = "Vodafone Cash"
	PaymentInstaPay     PaymentMethod = "InstaPay"
)

// SpoolCategory distinguishes full-priced spools from leftover filament.
type SpoolCategory string

const (
	CategoryStandard  SpoolCategory = "standard"
	CategoryRemaining SpoolCategory = "remaining"
)

// SpoolStatus is the inventory state of a spool.
type SpoolStatus string

const (
	SpoolActive   SpoolStatus = "active"
	SpoolLow      SpoolStatus = "low"
	SpoolTrash    SpoolStatus = "trash"
	SpoolArchived SpoolStatus = "archived"
)

// FailureReason is a common cause of a failed print.
type FailureReason string

const (
	ReasonNozzleClog     FailureReason = "Nozzle Clog"
	ReasonBedAdhesion    FailureReason = "Bed Adhesion"
	ReasonLayerShift     FailureReason = "Layer Shift"
	ReasonFilamentTangle FailureReason = "Filament Tangle"
	ReasonPowerOutage    FailureReason = "Power Outage"
	ReasonStringing      FailureReason = "Stringing/Blobs"
	ReasonWarping        FailureReason = "Warping"
	ReasonUnderExtrusion FailureReason = "Under Extrusion"
	ReasonOverExtrusion  FailureReason = "Over Extrusion"
	ReasonBrokenPart     FailureReason = "Broken Part"
	ReasonWrongSettings  FailureReason = "Wrong Settings"
	ReasonFilamentRanOut FailureReason = "Filament Ran Out"
	ReasonMachineError   FailureReason = "Machine Error"
	ReasonOther          FailureReason = "Other"
)

// FailureReasons lists every reason for reporting and validation.
var FailureReasons = []FailureReason{
	ReasonNozzleClog, ReasonBedAdhesion, ReasonLayerShift, ReasonFilamentTangle,
	ReasonPowerOutage, ReasonStringing, ReasonWarping, ReasonUnderExtrusion,
	ReasonOverExtrusion, ReasonBrokenPart, ReasonWrongSettings,
	ReasonFilamentRanOut, ReasonMachineError, ReasonOther,
}

// FailureSource says where a failed print came from.
type FailureSource string

const (
	SourceCustomerOrder FailureSource = "Customer Order"
	SourceRDProject     FailureSource = "R&D Project"
	SourcePersonal      FailureSource = "Personal/Test"
	SourceOther         FailureSource = "Other"
)

// ExpenseCategory groups business expenses.
type ExpenseCategory string

const (
	ExpenseBills       ExpenseCategory = "Bills"
	ExpenseEngineer    ExpenseCategory = "Engineer"
	ExpenseTools       ExpenseCategory = "Tools"
	ExpenseConsumables ExpenseCategory = "Consumables"
	ExpenseMaintenance ExpenseCategory = "Maintenance"
	ExpenseFilament    ExpenseCategory = "Filament"
	ExpensePackaging   ExpenseCategory = "Packaging"
	ExpenseShipping    ExpenseCategory = "Shipping"
	ExpenseSoftware    ExpenseCategory = "Software"
	ExpenseOtherCat    ExpenseCategory = "Other"
)

// ExpenseCategories lists every category for reporting and validation.
var ExpenseCategories = []ExpenseCategory{
	ExpenseBills, ExpenseEngineer, ExpenseTools, ExpenseConsumables,
	ExpenseMaintenance, ExpenseFilament, ExpensePackaging, ExpenseShipping,
	ExpenseSoftware, ExpenseOtherCat,
}

// timeLayout matches the timestamp format used by existing data files.
const timeLayout = "2006-01-02 15:04:05"

// GenerateID returns a short random identifier for a new record.
func GenerateID() string {
	return uuid.NewString()[:8]
}

// NowStr returns the current local time in the datastore's timestamp format.
func NowStr() string {
	return time.Now().Format(timeLayout)
}

// ParseTimestamp parses a datastore timestamp. Returns the zero time on failure.
func ParseTimestamp(s string) time.Time {
	t, err := time.ParseInLocation(timeLayout, s, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

// FormatMinutes renders a duration in minutes as "1d 2h 3m".
func FormatMinutes(minutes int) string {
	if minutes <= 0 {
		return "0m"
	}
	days := minutes / (24 * 60)
	remaining := minutes % (24 * 60)
	hours := remaining / 60
	mins := remaining % 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if mins > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%dm", mins))
	}
	return strings.Join(parts, " ")
}
